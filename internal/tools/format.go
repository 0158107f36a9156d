package tools

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/krxdata/internal/models"
)

// defaultIndexName names the demoted index column when the table has none.
const defaultIndexName = "index"

// ErrorEnvelope builds {error: message, ...context}. Context is given as
// alternating key/value pairs.
func ErrorEnvelope(message string, context ...any) *models.Record {
	return models.NewRecord().Set("error", message).Merge(pairs(context...))
}

// pairs builds a record from alternating key/value arguments.
func pairs(kv ...any) *models.Record {
	rec := models.NewRecord()
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		rec.Set(key, kv[i+1])
	}
	return rec
}

// FormatSequence renders a row-ordered table as
// {...meta, row_count: N, data: [row, ...]}. The row index becomes the first
// column of each row and dates render as YYYY-MM-DD.
func FormatSequence(t *models.Table, meta *models.Record) (*models.Record, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid table: %w", err)
	}

	indexName := t.IndexName
	if indexName == "" {
		indexName = defaultIndexName
	}

	rows := make([]*models.Record, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := models.NewRecord().Set(indexName, r.Key)
		for i, col := range t.Columns {
			row.Set(col, r.Values[i])
		}
		rows = append(rows, row)
	}

	return meta.Clone().
		Set("row_count", len(t.Rows)).
		Set("data", rows), nil
}

// KeyedData maps each row key (as text) to its column/value record. A
// repeated key keeps its first position and takes the later row's values.
func KeyedData(t *models.Table) (*models.Record, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid table: %w", err)
	}
	data := models.NewRecord()
	for _, r := range t.Rows {
		row := models.NewRecord()
		for i, col := range t.Columns {
			row.Set(col, r.Values[i])
		}
		data.Set(r.Key.Text(), row)
	}
	return data, nil
}

// FormatKeyed renders a key-ordered table as
// {...meta, data: {key: {col: val}}, table: <text>}.
func FormatKeyed(t *models.Table, meta *models.Record) (*models.Record, error) {
	data, err := KeyedData(t)
	if err != nil {
		return nil, err
	}
	return meta.Clone().
		Set("data", data).
		Set("table", RenderTable(data)), nil
}

// RenderTable renders a record as indented text. Nested records print their
// key followed by "  col: val" lines; flat records print "key: val" lines.
func RenderTable(data *models.Record) string {
	if data.Len() == 0 {
		return ""
	}

	keys := data.Keys()
	first, _ := data.Get(keys[0])
	var lines []string
	if _, nested := first.(*models.Record); nested {
		for _, k := range keys {
			lines = append(lines, k+":")
			v, _ := data.Get(k)
			inner, ok := v.(*models.Record)
			if !ok {
				continue
			}
			for _, col := range inner.Keys() {
				cv, _ := inner.Get(col)
				lines = append(lines, "  "+col+": "+cellText(cv))
			}
		}
		return strings.Join(lines, "\n")
	}

	for _, k := range keys {
		v, _ := data.Get(k)
		lines = append(lines, k+": "+cellText(v))
	}
	return strings.Join(lines, "\n")
}

func cellText(v any) string {
	switch x := v.(type) {
	case models.Value:
		return x.Text()
	case nil:
		return "None"
	default:
		return fmt.Sprint(x)
	}
}
