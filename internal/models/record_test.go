package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_PreservesInsertionOrder(t *testing.T) {
	r := NewRecord().
		Set("ticker", "005930").
		Set("start_date", "20240101").
		Set("end_date", "20240105")
	r.Set("ticker", "000660")

	assert.Equal(t, []string{"ticker", "start_date", "end_date"}, r.Keys())

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"ticker":"000660","start_date":"20240101","end_date":"20240105"}`, string(out))
}

func TestRecord_IsError(t *testing.T) {
	ok := NewRecord().Set("data", []any{})
	assert.False(t, ok.IsError())
	assert.Equal(t, "", ok.ErrorMessage())

	bad := NewRecord().Set("error", "Network error").Set("function", "get_stock_ohlcv")
	assert.True(t, bad.IsError())
	assert.Equal(t, "Network error", bad.ErrorMessage())
}

func TestRecord_MergeAndClone(t *testing.T) {
	meta := NewRecord().Set("date", "20240102").Set("market", "KOSPI")
	env := meta.Clone().Set("count", 2)

	assert.Equal(t, 2, meta.Len())
	assert.Equal(t, []string{"date", "market", "count"}, env.Keys())

	env.Merge(NewRecord().Set("market", "KOSDAQ").Set("extra", true))
	v, _ := env.GetString("market")
	assert.Equal(t, "KOSDAQ", v)
	assert.Equal(t, []string{"date", "market", "count", "extra"}, env.Keys())
}

func TestRecord_NilSafe(t *testing.T) {
	var r *Record
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.Has("error"))
	assert.Nil(t, r.Keys())

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestRecord_UnmarshalKeepsOrder(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"z":1,"a":"x","m":true}`), &r))
	assert.Equal(t, []string{"z", "a", "m"}, r.Keys())

	v, _ := r.Get("z")
	assert.Equal(t, json.Number("1"), v)

	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &r))
}

func TestRecord_NestedValuesMarshal(t *testing.T) {
	day := time.Date(2024, 1, 2, 15, 30, 0, 0, time.UTC)
	row := NewRecord().Set("날짜", Date(day)).Set("종가", Int(72600)).Set("등락률", Float(-1.5))
	env := NewRecord().Set("row_count", 1).Set("data", []*Record{row})

	out, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Equal(t, `{"row_count":1,"data":[{"날짜":"2024-01-02","종가":72600,"등락률":-1.5}]}`, string(out))
}

func TestValue_TextAndJSON(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		text string
		json string
	}{
		{"string", String("삼성전자"), "삼성전자", `"삼성전자"`},
		{"int", Int(1234567), "1234567", `1234567`},
		{"float", Float(12.34), "12.34", `12.34`},
		{"whole float", Float(3), "3", `3`},
		{"nan", Float(math.NaN()), "NaN", `null`},
		{"date", Date(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)), "2024-03-09", `"2024-03-09"`},
		{"null", Null(), "", `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.text, tt.v.Text())
			out, err := json.Marshal(tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.json, string(out))
		})
	}
}

func TestValue_NumericAccessors(t *testing.T) {
	assert.Equal(t, int64(5), Float(5.9).Int64())
	assert.Equal(t, 7.0, Int(7).Float64())
	assert.Equal(t, 0.0, String("x").Float64())
	assert.True(t, Null().IsNull())
}

func TestTable_Validate(t *testing.T) {
	tbl := NewTable("날짜", "시가", "종가")
	tbl.Append(Date(time.Now()), Int(1), Int(2))
	require.NoError(t, tbl.Validate())
	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, 1, tbl.ColumnIndex("종가"))
	assert.Equal(t, -1, tbl.ColumnIndex("고가"))

	tbl.Append(Date(time.Now()), Int(1))
	assert.ErrorContains(t, tbl.Validate(), "row 1 has 1 values")

	dup := NewTable("날짜", "시가", "시가")
	assert.ErrorContains(t, dup.Validate(), "duplicate column")

	clash := NewTable("티커", "티커")
	assert.ErrorContains(t, clash.Validate(), "clashes")

	var nilTable *Table
	assert.True(t, nilTable.Empty())
	assert.Error(t, nilTable.Validate())
}
