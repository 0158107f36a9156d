package krx

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bobmcallan/krxdata/internal/models"
)

// parseCell converts a portal cell to a typed value. Numbers arrive as
// comma-grouped strings; "-" and "" mean missing.
func parseCell(s string, kind models.Kind) (models.Value, error) {
	s = strings.TrimSpace(s)
	switch kind {
	case models.KindString:
		return models.String(s), nil

	case models.KindInt:
		n := strings.ReplaceAll(s, ",", "")
		if n == "" || n == "-" {
			return models.Int(0), nil
		}
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return models.Int(i), nil
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return models.Value{}, fmt.Errorf("not a number: %q", s)
		}
		return models.Int(int64(math.Round(f))), nil

	case models.KindFloat:
		n := strings.ReplaceAll(s, ",", "")
		if n == "" || n == "-" {
			return models.Float(math.NaN()), nil
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return models.Value{}, fmt.Errorf("not a number: %q", s)
		}
		return models.Float(f), nil

	case models.KindDate:
		for _, layout := range []string{"2006/01/02", "20060102", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return models.Date(t), nil
			}
		}
		return models.Value{}, fmt.Errorf("not a date: %q", s)
	}
	return models.Null(), nil
}

// sortByDate orders date-indexed rows oldest first; the portal returns
// newest first.
func sortByDate(t *models.Table) {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i].Key.Time().Before(t.Rows[j].Key.Time())
	})
}

// sortByColumnDesc orders rows by a numeric column, largest first.
func sortByColumnDesc(t *models.Table, column string) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return
	}
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i].Values[idx].Float64() > t.Rows[j].Values[idx].Float64()
	})
}
