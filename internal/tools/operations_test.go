package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/bobmcallan/krxdata/internal/common"
	"github.com/bobmcallan/krxdata/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(f *fakeClient) *Service {
	return NewService(f, common.NewSilentLogger())
}

// validArgs holds a valid argument set for every operation.
var validArgs = map[string]map[string]any{
	"get_stock_ohlcv":                            {"ticker": "005930", "start_date": "20240101", "end_date": "20240105"},
	"get_market_ticker_list":                     {"date": "20240102"},
	"get_market_ticker_name":                     {"ticker": "005930"},
	"get_market_fundamental_by_date":             {"ticker": "005930", "start_date": "20240101", "end_date": "20240105"},
	"get_market_cap_by_date":                     {"ticker": "005930", "start_date": "20240101", "end_date": "20240105"},
	"get_market_trading_value_by_date":           {"ticker": "005930", "start_date": "20240101", "end_date": "20240105"},
	"get_etf_ohlcv_by_date":                      {"ticker": "069500", "start_date": "20240101", "end_date": "20240105"},
	"get_etf_ticker_list":                        {"date": "20240102"},
	"get_index_ticker_list":                      {"date": "20240102", "market": "KOSPI"},
	"get_index_ticker_name":                      {"ticker": "1001"},
	"get_index_ohlcv":                            {"ticker": "1001", "start_date": "20240101", "end_date": "20240131"},
	"get_index_fundamental":                      {"start_date": "20240102"},
	"get_index_portfolio_deposit_file":           {"ticker": "1005"},
	"get_shorting_status_by_date":                {"ticker": "005930", "start_date": "20240101", "end_date": "20240105"},
	"get_shorting_volume_by_ticker":              {"date": "20240102"},
	"get_shorting_balance_top50":                 {"date": "20240102"},
	"get_shorting_volume_top50":                  {"date": "20240102"},
	"get_market_trading_volume_by_investor":      {"start_date": "20240101", "end_date": "20240105", "ticker": "005930"},
	"get_market_trading_value_by_investor":       {"start_date": "20240101", "end_date": "20240105", "ticker": "KOSPI"},
	"get_market_net_purchases_of_equities":       {"start_date": "20240101", "end_date": "20240105", "market": "KOSPI", "investor": "외국인"},
	"get_exhaustion_rates_of_foreign_investment": {"start_date": "20240102"},
	"get_market_ohlcv_by_date":                   {"date": "20240102"},
	"get_market_price_change":                    {"start_date": "20240101", "end_date": "20240105"},
}

func TestService_RegistersAllOperations(t *testing.T) {
	svc := newTestService(&fakeClient{})
	ops := svc.Operations()
	assert.Len(t, ops, len(validArgs))
	for _, op := range ops {
		_, ok := validArgs[op.Name]
		assert.True(t, ok, "no test arguments for %s", op.Name)
		assert.NotEmpty(t, op.Description, op.Name)
	}
}

func TestOperations_EmptyResultIsError(t *testing.T) {
	svc := newTestService(&fakeClient{})
	for name, args := range validArgs {
		t.Run(name, func(t *testing.T) {
			env := svc.Call(context.Background(), name, args)
			require.True(t, env.IsError(), "expected error envelope, got %v", env.Keys())
			assert.Contains(t, env.ErrorMessage(), "No data found")
			assert.False(t, env.Has("data"))
			assert.False(t, env.Has("function"))
		})
	}
}

func TestOperations_CollaboratorErrorEchoesArguments(t *testing.T) {
	for name, args := range validArgs {
		t.Run(name, func(t *testing.T) {
			svc := newTestService(&fakeClient{err: errors.New("Network error")})
			env := svc.Call(context.Background(), name, args)

			assert.Equal(t, "Network error", env.ErrorMessage())
			fn, _ := env.GetString("function")
			assert.Equal(t, name, fn)
			for k, v := range args {
				got, ok := env.Get(k)
				assert.True(t, ok, "argument %s not echoed", k)
				assert.Equal(t, v, got)
			}
		})
	}
}

func TestOperations_CollaboratorErrorOmitsDefaults(t *testing.T) {
	svc := newTestService(&fakeClient{err: errors.New("Network error")})

	env := svc.Call(context.Background(), "get_stock_ohlcv", map[string]any{
		"ticker": "005930", "start_date": "20240102", "end_date": "20240105",
	})
	assert.Equal(t, []string{"error", "function", "ticker", "start_date", "end_date"}, env.Keys())
	assert.False(t, env.Has("adjusted"))

	env = svc.Call(context.Background(), "get_index_ohlcv", map[string]any{
		"ticker": "1001", "start_date": "20240102", "end_date": "20240105",
	})
	assert.Equal(t, "Network error", env.ErrorMessage())
	assert.False(t, env.Has("freq"))
}

func TestOperations_PanicBecomesEnvelope(t *testing.T) {
	svc := newTestService(&fakeClient{panicMsg: "index out of range"})
	env := svc.Call(context.Background(), "get_market_cap_by_date", validArgs["get_market_cap_by_date"])

	assert.Equal(t, "index out of range", env.ErrorMessage())
	fn, _ := env.GetString("function")
	assert.Equal(t, "get_market_cap_by_date", fn)
}

func TestGetStockOHLCV_ValidQuery(t *testing.T) {
	f := &fakeClient{table: ohlcvTable()}
	svc := newTestService(f)

	env := svc.Call(context.Background(), "get_stock_ohlcv", validArgs["get_stock_ohlcv"])
	require.False(t, env.IsError(), env.ErrorMessage())

	assert.Equal(t, []string{"ticker", "start_date", "end_date", "adjusted", "row_count", "data"}, env.Keys())
	ticker, _ := env.GetString("ticker")
	assert.Equal(t, "005930", ticker)
	count, _ := env.Get("row_count")
	assert.Equal(t, 2, count)
	data, _ := env.Get("data")
	assert.Len(t, data.([]*models.Record), 2)

	require.Len(t, f.calls, 1)
	assert.Equal(t, fakeCall{method: "GetStockOHLCV", args: []any{"20240101", "20240105", "005930", true}}, f.calls[0])
}

func TestGetStockOHLCV_AdjustedFalse(t *testing.T) {
	f := &fakeClient{table: ohlcvTable()}
	svc := newTestService(f)

	env := svc.Call(context.Background(), "get_stock_ohlcv", map[string]any{
		"ticker": "005930", "start_date": "20240101", "end_date": "20240105", "adjusted": "false",
	})
	require.False(t, env.IsError())
	adjusted, _ := env.Get("adjusted")
	assert.Equal(t, false, adjusted)
	assert.Equal(t, false, f.calls[0].args[3])
}

func TestGetStockOHLCV_MalformedTicker(t *testing.T) {
	f := &fakeClient{table: ohlcvTable()}
	svc := newTestService(f)

	env := svc.Call(context.Background(), "get_stock_ohlcv", map[string]any{
		"ticker": "5930", "start_date": "20240101", "end_date": "20240105",
	})

	assert.Equal(t, []string{"error", "ticker"}, env.Keys())
	assert.Contains(t, env.ErrorMessage(), "6-digit")
	ticker, _ := env.GetString("ticker")
	assert.Equal(t, "5930", ticker)
	assert.Empty(t, f.calls)
}

func TestGetStockOHLCV_EmptyWindow(t *testing.T) {
	svc := newTestService(&fakeClient{})

	env := svc.Call(context.Background(), "get_stock_ohlcv", validArgs["get_stock_ohlcv"])
	assert.Equal(t, []string{"error", "ticker", "start_date", "end_date"}, env.Keys())
	assert.Contains(t, env.ErrorMessage(), "No data found")
}

func TestGetStockOHLCV_BadDateEchoesField(t *testing.T) {
	svc := newTestService(&fakeClient{})

	env := svc.Call(context.Background(), "get_stock_ohlcv", map[string]any{
		"ticker": "005930", "start_date": "20240101", "end_date": "2024-01-05",
	})
	assert.Equal(t, []string{"error", "end_date"}, env.Keys())
}

func TestBinding_MissingAndWrongType(t *testing.T) {
	f := &fakeClient{}
	svc := newTestService(f)

	env := svc.Call(context.Background(), "get_stock_ohlcv", map[string]any{"ticker": "005930"})
	assert.Equal(t, "Missing required argument: start_date", env.ErrorMessage())

	env = svc.Call(context.Background(), "get_stock_ohlcv", map[string]any{
		"ticker": 5930.0, "start_date": "20240101", "end_date": "20240105",
	})
	assert.Contains(t, env.ErrorMessage(), "must be a string")
	v, _ := env.Get("ticker")
	assert.Equal(t, 5930.0, v)

	env = svc.Call(context.Background(), "get_stock_ohlcv", map[string]any{
		"ticker": "005930", "start_date": "20240101", "end_date": "20240105", "adjusted": "maybe",
	})
	assert.Contains(t, env.ErrorMessage(), "must be a boolean")
	assert.Empty(t, f.calls)
}

func TestCall_UnknownTool(t *testing.T) {
	svc := newTestService(&fakeClient{})
	env := svc.Call(context.Background(), "get_everything", nil)
	assert.Contains(t, env.ErrorMessage(), "Unknown tool")
}

func TestInvalidMarketEnum(t *testing.T) {
	cases := map[string]string{
		"get_market_ticker_list":                     "KOSPI, KOSDAQ, KONEX",
		"get_index_ticker_list":                      "KOSPI, KOSDAQ",
		"get_shorting_volume_by_ticker":              "KOSPI, KOSDAQ, KONEX",
		"get_shorting_balance_top50":                 "KOSPI, KOSDAQ",
		"get_shorting_volume_top50":                  "KOSPI, KOSDAQ",
		"get_market_net_purchases_of_equities":       "KOSPI, KOSDAQ, KONEX, ALL",
		"get_exhaustion_rates_of_foreign_investment": "KOSPI, KOSDAQ, KONEX",
		"get_market_ohlcv_by_date":                   "KOSPI, KOSDAQ, KONEX, ALL",
		"get_market_price_change":                    "KOSPI, KOSDAQ, KONEX, ALL",
	}
	for name, set := range cases {
		t.Run(name, func(t *testing.T) {
			f := &fakeClient{table: tickerTable(), list: []string{"1001"}}
			svc := newTestService(f)

			args := map[string]any{}
			for k, v := range validArgs[name] {
				args[k] = v
			}
			args["market"] = "INVALID"

			env := svc.Call(context.Background(), name, args)
			assert.Contains(t, env.ErrorMessage(), "Invalid market")
			assert.Contains(t, env.ErrorMessage(), set)
			market, _ := env.GetString("market")
			assert.Equal(t, "INVALID", market)
			assert.Empty(t, f.calls)
		})
	}
}

func TestMarketNormalizedOnSuccess(t *testing.T) {
	f := &fakeClient{table: tickerTable()}
	svc := newTestService(f)

	env := svc.Call(context.Background(), "get_market_ohlcv_by_date", map[string]any{"date": "20240102", "market": "kosdaq"})
	require.False(t, env.IsError(), env.ErrorMessage())

	market, _ := env.GetString("market")
	assert.Equal(t, "KOSDAQ", market)
	count, _ := env.Get("count")
	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"date", "market", "data", "table", "count"}, env.Keys())
	assert.Equal(t, "KOSDAQ", f.calls[0].args[1])
}

func TestMarketTickerList(t *testing.T) {
	svc := newTestService(&fakeClient{list: []string{"005930", "000660"}})

	env := svc.Call(context.Background(), "get_market_ticker_list", map[string]any{"date": "20240102", "market": "konex"})
	require.False(t, env.IsError())
	out, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"20240102","market":"KONEX","count":2,"tickers":["005930","000660"]}`, string(out))
}

func TestMarketTickerName(t *testing.T) {
	svc := newTestService(&fakeClient{name: "삼성전자"})
	env := svc.Call(context.Background(), "get_market_ticker_name", map[string]any{"ticker": "005930"})

	out, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Equal(t, `{"ticker":"005930","name":"삼성전자"}`, string(out))
}

func TestIndexTickerList_LatestDate(t *testing.T) {
	f := &fakeClient{list: []string{"1001", "1002"}}
	svc := newTestService(f)

	env := svc.Call(context.Background(), "get_index_ticker_list", map[string]any{})
	require.False(t, env.IsError())
	date, _ := env.GetString("date")
	assert.Equal(t, "latest", date)
	assert.Equal(t, fakeCall{method: "GetIndexTickerList", args: []any{"", "KOSPI"}}, f.calls[0])
}

func TestIndexTickerName_Empty(t *testing.T) {
	f := &fakeClient{name: "코스피"}
	svc := newTestService(f)

	env := svc.Call(context.Background(), "get_index_ticker_name", map[string]any{"ticker": ""})
	assert.Equal(t, "Ticker is required.", env.ErrorMessage())
	assert.Empty(t, f.calls)
}

func TestIndexOHLCV_Frequency(t *testing.T) {
	f := &fakeClient{table: ohlcvTable()}
	svc := newTestService(f)

	args := map[string]any{"ticker": "1001", "start_date": "20240101", "end_date": "20241231", "freq": "M"}
	env := svc.Call(context.Background(), "get_index_ohlcv", args)
	require.False(t, env.IsError())
	freq, _ := env.GetString("frequency")
	assert.Equal(t, "m", freq)
	assert.Equal(t, "m", f.calls[0].args[3])

	args["freq"] = "w"
	env = svc.Call(context.Background(), "get_index_ohlcv", args)
	assert.Contains(t, env.ErrorMessage(), "Invalid frequency")
	assert.Contains(t, env.ErrorMessage(), "d, m, y")
}

func TestIndexFundamental_Branches(t *testing.T) {
	f := &fakeClient{table: tickerTable()}
	svc := newTestService(f)

	env := svc.Call(context.Background(), "get_index_fundamental", map[string]any{"start_date": "20240102", "end_date": "20240131"})
	assert.Equal(t, "ticker is required when end_date is provided.", env.ErrorMessage())

	env = svc.Call(context.Background(), "get_index_fundamental", map[string]any{
		"start_date": "20240102", "end_date": "20240131", "ticker": "1001",
	})
	require.False(t, env.IsError())
	assert.Equal(t, "GetIndexFundamentalByDate", f.calls[0].method)

	env = svc.Call(context.Background(), "get_index_fundamental", map[string]any{"start_date": "20240102"})
	require.False(t, env.IsError())
	assert.Equal(t, "GetIndexFundamental", f.calls[1].method)

	out, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"end_date":null,"ticker":null`)
}

func TestInvestorFlow_MarketBeforeTicker(t *testing.T) {
	f := &fakeClient{table: tickerTable()}
	svc := newTestService(f)

	env := svc.Call(context.Background(), "get_market_trading_volume_by_investor", map[string]any{
		"start_date": "20240101", "end_date": "20240105", "ticker": "kosdaq",
	})
	require.False(t, env.IsError())
	assert.Equal(t, "KOSDAQ", f.calls[0].args[2])
	ticker, _ := env.GetString("ticker")
	assert.Equal(t, "kosdaq", ticker)

	env = svc.Call(context.Background(), "get_market_trading_volume_by_investor", map[string]any{
		"start_date": "20240101", "end_date": "20240105", "ticker": "SAMSUNG",
	})
	assert.Contains(t, env.ErrorMessage(), "6-digit")
	assert.Contains(t, env.ErrorMessage(), "market name")
	assert.Len(t, f.calls, 1)
}

func TestNetPurchases_InvalidInvestor(t *testing.T) {
	f := &fakeClient{table: tickerTable()}
	svc := newTestService(f)

	env := svc.Call(context.Background(), "get_market_net_purchases_of_equities", map[string]any{
		"start_date": "20240101", "end_date": "20240105", "market": "ALL", "investor": "whale",
	})
	assert.Contains(t, env.ErrorMessage(), "Invalid investor")
	assert.Contains(t, env.ErrorMessage(), "기타외국인")
	investor, _ := env.GetString("investor")
	assert.Equal(t, "whale", investor)
	assert.Empty(t, f.calls)
}

func TestNetPurchases_MarketRequired(t *testing.T) {
	svc := newTestService(&fakeClient{})
	env := svc.Call(context.Background(), "get_market_net_purchases_of_equities", map[string]any{
		"start_date": "20240101", "end_date": "20240105", "investor": "개인",
	})
	assert.Equal(t, "Missing required argument: market", env.ErrorMessage())
}

func TestForeignExhaustion_Branches(t *testing.T) {
	f := &fakeClient{table: tickerTable()}
	svc := newTestService(f)

	env := svc.Call(context.Background(), "get_exhaustion_rates_of_foreign_investment", map[string]any{
		"start_date": "20240102", "market": "kosdaq", "balance_limit": true,
	})
	require.False(t, env.IsError())
	assert.Equal(t, fakeCall{method: "GetForeignExhaustion", args: []any{"20240102", "KOSDAQ", true}}, f.calls[0])
	assert.Equal(t, []string{"date", "market", "balance_limit", "data", "table"}, env.Keys())

	env = svc.Call(context.Background(), "get_exhaustion_rates_of_foreign_investment", map[string]any{
		"start_date": "20240102", "end_date": "20240131", "ticker": "005930",
	})
	require.False(t, env.IsError())
	assert.Equal(t, "GetForeignExhaustionByDate", f.calls[1].method)

	env = svc.Call(context.Background(), "get_exhaustion_rates_of_foreign_investment", map[string]any{
		"start_date": "20240102", "end_date": "20240131", "ticker": "59",
	})
	assert.Contains(t, env.ErrorMessage(), "6-digit")
}

func TestOperations_Idempotent(t *testing.T) {
	svc := newTestService(&fakeClient{table: tickerTable()})
	args := validArgs["get_shorting_volume_by_ticker"]

	first, err := json.Marshal(svc.Call(context.Background(), "get_shorting_volume_by_ticker", args))
	require.NoError(t, err)
	second, err := json.Marshal(svc.Call(context.Background(), "get_shorting_volume_by_ticker", args))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOperations_InvalidTableIsFault(t *testing.T) {
	bad := models.NewTable("날짜", "시가", "종가")
	bad.Append(models.Date(day("20240102")), models.Int(1))
	svc := newTestService(&fakeClient{table: bad})

	env := svc.Call(context.Background(), "get_market_cap_by_date", validArgs["get_market_cap_by_date"])
	assert.Contains(t, env.ErrorMessage(), "invalid table")
	fn, _ := env.GetString("function")
	assert.Equal(t, "get_market_cap_by_date", fn)
}
