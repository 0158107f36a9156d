package tools

import (
	"context"
	"time"

	"github.com/bobmcallan/krxdata/internal/models"
)

// fakeClient returns the same canned result from every method and records
// which methods were called with which arguments.
type fakeClient struct {
	table    *models.Table
	list     []string
	name     string
	err      error
	panicMsg string
	calls    []fakeCall
}

type fakeCall struct {
	method string
	args   []any
}

func (f *fakeClient) record(method string, args ...any) {
	f.calls = append(f.calls, fakeCall{method: method, args: args})
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
}

func (f *fakeClient) tableResult(method string, args ...any) (*models.Table, error) {
	f.record(method, args...)
	if f.err != nil {
		return nil, f.err
	}
	if f.table == nil {
		return models.NewTable(""), nil
	}
	return f.table, nil
}

func (f *fakeClient) listResult(method string, args ...any) ([]string, error) {
	f.record(method, args...)
	return f.list, f.err
}

func (f *fakeClient) nameResult(method string, args ...any) (string, error) {
	f.record(method, args...)
	return f.name, f.err
}

func (f *fakeClient) GetStockOHLCV(_ context.Context, fromDate, toDate, ticker string, adjusted bool) (*models.Table, error) {
	return f.tableResult("GetStockOHLCV", fromDate, toDate, ticker, adjusted)
}

func (f *fakeClient) GetMarketTickerList(_ context.Context, date, market string) ([]string, error) {
	return f.listResult("GetMarketTickerList", date, market)
}

func (f *fakeClient) GetMarketTickerName(_ context.Context, ticker string) (string, error) {
	return f.nameResult("GetMarketTickerName", ticker)
}

func (f *fakeClient) GetMarketFundamental(_ context.Context, fromDate, toDate, ticker string) (*models.Table, error) {
	return f.tableResult("GetMarketFundamental", fromDate, toDate, ticker)
}

func (f *fakeClient) GetMarketCap(_ context.Context, fromDate, toDate, ticker string) (*models.Table, error) {
	return f.tableResult("GetMarketCap", fromDate, toDate, ticker)
}

func (f *fakeClient) GetTradingValueByDate(_ context.Context, fromDate, toDate, ticker string) (*models.Table, error) {
	return f.tableResult("GetTradingValueByDate", fromDate, toDate, ticker)
}

func (f *fakeClient) GetETFOHLCV(_ context.Context, fromDate, toDate, ticker string) (*models.Table, error) {
	return f.tableResult("GetETFOHLCV", fromDate, toDate, ticker)
}

func (f *fakeClient) GetETFTickerList(_ context.Context, date string) ([]string, error) {
	return f.listResult("GetETFTickerList", date)
}

func (f *fakeClient) GetIndexTickerList(_ context.Context, date, market string) ([]string, error) {
	return f.listResult("GetIndexTickerList", date, market)
}

func (f *fakeClient) GetIndexTickerName(_ context.Context, ticker string) (string, error) {
	return f.nameResult("GetIndexTickerName", ticker)
}

func (f *fakeClient) GetIndexOHLCV(_ context.Context, fromDate, toDate, ticker, freq string) (*models.Table, error) {
	return f.tableResult("GetIndexOHLCV", fromDate, toDate, ticker, freq)
}

func (f *fakeClient) GetIndexFundamental(_ context.Context, date string) (*models.Table, error) {
	return f.tableResult("GetIndexFundamental", date)
}

func (f *fakeClient) GetIndexFundamentalByDate(_ context.Context, fromDate, toDate, ticker string) (*models.Table, error) {
	return f.tableResult("GetIndexFundamentalByDate", fromDate, toDate, ticker)
}

func (f *fakeClient) GetIndexConstituents(_ context.Context, ticker, date string) ([]string, error) {
	return f.listResult("GetIndexConstituents", ticker, date)
}

func (f *fakeClient) GetShortingStatus(_ context.Context, fromDate, toDate, ticker string) (*models.Table, error) {
	return f.tableResult("GetShortingStatus", fromDate, toDate, ticker)
}

func (f *fakeClient) GetShortingVolumeByTicker(_ context.Context, date, market string) (*models.Table, error) {
	return f.tableResult("GetShortingVolumeByTicker", date, market)
}

func (f *fakeClient) GetShortingBalanceTop50(_ context.Context, date, market string) (*models.Table, error) {
	return f.tableResult("GetShortingBalanceTop50", date, market)
}

func (f *fakeClient) GetShortingVolumeTop50(_ context.Context, date, market string) (*models.Table, error) {
	return f.tableResult("GetShortingVolumeTop50", date, market)
}

func (f *fakeClient) GetTradingVolumeByInvestor(_ context.Context, fromDate, toDate, tickerOrMarket string) (*models.Table, error) {
	return f.tableResult("GetTradingVolumeByInvestor", fromDate, toDate, tickerOrMarket)
}

func (f *fakeClient) GetTradingValueByInvestor(_ context.Context, fromDate, toDate, tickerOrMarket string) (*models.Table, error) {
	return f.tableResult("GetTradingValueByInvestor", fromDate, toDate, tickerOrMarket)
}

func (f *fakeClient) GetNetPurchases(_ context.Context, fromDate, toDate, market, investor string) (*models.Table, error) {
	return f.tableResult("GetNetPurchases", fromDate, toDate, market, investor)
}

func (f *fakeClient) GetForeignExhaustion(_ context.Context, date, market string, balanceLimit bool) (*models.Table, error) {
	return f.tableResult("GetForeignExhaustion", date, market, balanceLimit)
}

func (f *fakeClient) GetForeignExhaustionByDate(_ context.Context, fromDate, toDate, ticker string) (*models.Table, error) {
	return f.tableResult("GetForeignExhaustionByDate", fromDate, toDate, ticker)
}

func (f *fakeClient) GetMarketOHLCV(_ context.Context, date, market string) (*models.Table, error) {
	return f.tableResult("GetMarketOHLCV", date, market)
}

func (f *fakeClient) GetMarketPriceChange(_ context.Context, fromDate, toDate, market string) (*models.Table, error) {
	return f.tableResult("GetMarketPriceChange", fromDate, toDate, market)
}

func day(s string) time.Time {
	t, err := time.Parse("20060102", s)
	if err != nil {
		panic(err)
	}
	return t
}

// ohlcvTable is a two-row daily price table.
func ohlcvTable() *models.Table {
	t := models.NewTable("날짜", "시가", "고가", "저가", "종가", "거래량")
	t.Append(models.Date(day("20240102")), models.Int(78200), models.Int(79800), models.Int(78200), models.Int(79600), models.Int(17142847))
	t.Append(models.Date(day("20240103")), models.Int(78500), models.Int(78800), models.Int(77000), models.Int(77000), models.Int(21753644))
	return t
}

// tickerTable is a two-row per-ticker snapshot.
func tickerTable() *models.Table {
	t := models.NewTable("티커", "종가", "등락률")
	t.Append(models.String("005930"), models.Int(79600), models.Float(1.27))
	t.Append(models.String("000660"), models.Int(137500), models.Float(-0.36))
	return t
}
