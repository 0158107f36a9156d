package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputSchema(t *testing.T) {
	svc := NewService(&fakeClient{}, nil)

	op, ok := svc.Lookup("get_stock_ohlcv")
	require.True(t, ok)

	schema := op.InputSchema()
	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"ticker", "start_date", "end_date"}, schema.Required)

	adjusted := schema.Properties["adjusted"]
	require.NotNil(t, adjusted)
	assert.Equal(t, "boolean", adjusted.Type)
	assert.JSONEq(t, `true`, string(adjusted.Default))

	assert.Equal(t, []string{"ticker", "start_date", "end_date", "adjusted"}, op.ParamNames())
}

func TestInputSchema_Enum(t *testing.T) {
	svc := NewService(&fakeClient{}, nil)

	op, ok := svc.Lookup("get_index_ohlcv")
	require.True(t, ok)

	freq := op.InputSchema().Properties["freq"]
	require.NotNil(t, freq)
	assert.Equal(t, []any{"d", "m", "y"}, freq.Enum)
	assert.JSONEq(t, `"d"`, string(freq.Default))
}

func TestInputSchema_Marshal(t *testing.T) {
	svc := NewService(&fakeClient{}, nil)

	op, ok := svc.Lookup("get_market_ticker_name")
	require.True(t, ok)

	body, err := json.Marshal(op.InputSchema())
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "object", out["type"])
	assert.Equal(t, []any{"ticker"}, out["required"])
	ticker := out["properties"].(map[string]any)["ticker"].(map[string]any)
	assert.Equal(t, "string", ticker["type"])
	assert.NotContains(t, ticker, "default")
}

func TestInputSchema_EveryOperation(t *testing.T) {
	svc := NewService(&fakeClient{}, nil)
	ops := svc.Operations()
	assert.Len(t, ops, 23)

	for _, op := range ops {
		schema := op.InputSchema()
		assert.Len(t, schema.Properties, len(op.Params), op.Name)
		for _, name := range schema.Required {
			assert.Contains(t, schema.Properties, name, op.Name)
		}
	}
}
