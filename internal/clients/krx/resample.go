package krx

import (
	"math"

	"github.com/bobmcallan/krxdata/internal/models"
)

// resample aggregates a daily OHLCV table into monthly ("m") or yearly
// ("y") bars labelled with the last trading day of each period. The
// daily table must be sorted oldest first.
func resample(daily *models.Table, freq string) *models.Table {
	if freq != "m" && freq != "y" {
		return daily
	}

	period := func(v models.Value) int {
		t := v.Time()
		if freq == "y" {
			return t.Year()
		}
		return t.Year()*100 + int(t.Month())
	}

	out := models.NewTable(daily.IndexName, daily.Columns...)
	var (
		current int
		bar     []models.Value
		label   models.Value
	)
	flush := func() {
		if bar != nil {
			out.Append(label, bar...)
		}
	}

	for _, row := range daily.Rows {
		p := period(row.Key)
		if bar == nil || p != current {
			flush()
			current = p
			bar = append([]models.Value(nil), row.Values...)
			label = row.Key
			continue
		}
		label = row.Key
		for i, col := range daily.Columns {
			bar[i] = combine(col, bar[i], row.Values[i])
		}
	}
	flush()
	return out
}

func combine(column string, acc, next models.Value) models.Value {
	switch column {
	case "시가":
		return acc
	case "고가":
		return pick(acc, next, math.Max)
	case "저가":
		return pick(acc, next, math.Min)
	case "거래량", "거래대금":
		if acc.Kind() == models.KindInt {
			return models.Int(acc.Int64() + next.Int64())
		}
		return models.Float(acc.Float64() + next.Float64())
	default:
		return next
	}
}

func pick(a, b models.Value, f func(x, y float64) float64) models.Value {
	if f(a.Float64(), b.Float64()) == a.Float64() {
		return a
	}
	return b
}
