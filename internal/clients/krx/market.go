package krx

import (
	"context"
	"net/url"

	"github.com/bobmcallan/krxdata/internal/interfaces"
	"github.com/bobmcallan/krxdata/internal/models"
)

var _ interfaces.MarketDataClient = (*Client)(nil)

// byTicker resolves the ticker and fetches a date-ranged endpoint for it.
// An unknown ticker yields an empty table.
func (c *Client) byTicker(ctx context.Context, ep endpoint, fromDate, toDate, ticker string, extra url.Values) (*models.Table, error) {
	isin, err := c.isin(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if isin == "" {
		return emptyTable(ep), nil
	}
	params := url.Values{
		"isuCd":  {isin},
		"strtDd": {c.orToday(fromDate)},
		"endDd":  {c.orToday(toDate)},
	}
	for k, v := range extra {
		params[k] = v
	}
	return c.fetch(ctx, ep, params)
}

func emptyTable(ep endpoint) *models.Table {
	names := make([]string, len(ep.cols))
	for i, f := range ep.cols {
		names[i] = f.name
	}
	return models.NewTable(ep.index.name, names...)
}

func keys(t *models.Table) []string {
	out := make([]string, 0, t.Len())
	for _, r := range t.Rows {
		out = append(out, r.Key.Text())
	}
	return out
}

// GetStockOHLCV retrieves daily OHLCV for one stock
func (c *Client) GetStockOHLCV(ctx context.Context, fromDate, toDate, ticker string, adjusted bool) (*models.Table, error) {
	adj := "1"
	if adjusted {
		adj = "2"
	}
	return c.byTicker(ctx, stockDaily, fromDate, toDate, ticker, url.Values{"adjStkPrc": {adj}})
}

// GetMarketTickerList lists tickers on a market at a date
func (c *Client) GetMarketTickerList(ctx context.Context, date, market string) ([]string, error) {
	t, err := c.GetMarketOHLCV(ctx, date, market)
	if err != nil {
		return nil, err
	}
	return keys(t), nil
}

// GetMarketTickerName returns the name for a ticker, or "" if unknown
func (c *Client) GetMarketTickerName(ctx context.Context, ticker string) (string, error) {
	s, ok, err := c.lookup(ctx, ticker)
	if err != nil || !ok {
		return "", err
	}
	return s.name, nil
}

// GetMarketFundamental retrieves daily fundamentals for one stock
func (c *Client) GetMarketFundamental(ctx context.Context, fromDate, toDate, ticker string) (*models.Table, error) {
	return c.byTicker(ctx, stockFundamental, fromDate, toDate, ticker, url.Values{
		"searchType": {"2"},
		"mktId":      {"ALL"},
	})
}

// GetMarketCap retrieves daily market capitalisation for one stock
func (c *Client) GetMarketCap(ctx context.Context, fromDate, toDate, ticker string) (*models.Table, error) {
	return c.byTicker(ctx, stockCap, fromDate, toDate, ticker, url.Values{"adjStkPrc": {"1"}})
}

// GetTradingValueByDate retrieves daily net trading value by investor group
func (c *Client) GetTradingValueByDate(ctx context.Context, fromDate, toDate, ticker string) (*models.Table, error) {
	return c.byTicker(ctx, stockValueByDate, fromDate, toDate, ticker, url.Values{
		"inqTpCd":   {"2"},
		"trdVolVal": {"2"},
		"askBid":    {"3"},
	})
}

// GetETFOHLCV retrieves daily OHLCV and NAV for one ETF
func (c *Client) GetETFOHLCV(ctx context.Context, fromDate, toDate, ticker string) (*models.Table, error) {
	return c.byTicker(ctx, etfDaily, fromDate, toDate, ticker, nil)
}

// GetETFTickerList lists ETF tickers at a date
func (c *Client) GetETFTickerList(ctx context.Context, date string) ([]string, error) {
	t, err := c.fetch(ctx, etfSnapshot, url.Values{"trdDd": {c.orToday(date)}})
	if err != nil {
		return nil, err
	}
	return keys(t), nil
}

// GetIndexTickerList lists the index codes of a market that were quoted on
// date. The finder supplies codes; the day's all-index screen decides which
// of them existed then.
func (c *Client) GetIndexTickerList(ctx context.Context, date, market string) ([]string, error) {
	hits, err := c.indexes(ctx, market)
	if err != nil {
		return nil, err
	}
	rows, err := c.rows(ctx, indexListing, "output", url.Values{
		"trdDd":           {c.orToday(date)},
		"idxIndMidclssCd": {indexListingCode(market)},
	})
	if err != nil {
		return nil, err
	}
	quoted := make(map[string]bool, len(rows))
	for _, r := range rows {
		quoted[r["IDX_NM"]] = true
	}

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		if quoted[h.name] {
			out = append(out, h.isin+h.code)
		}
	}
	return out, nil
}

// GetIndexTickerName returns the index name for a code, or "" if unknown
func (c *Client) GetIndexTickerName(ctx context.Context, ticker string) (string, error) {
	for _, market := range []string{"KOSPI", "KOSDAQ"} {
		hits, err := c.indexes(ctx, market)
		if err != nil {
			return "", err
		}
		for _, h := range hits {
			if h.isin+h.code == ticker {
				return h.name, nil
			}
		}
	}
	return "", nil
}

// GetIndexOHLCV retrieves index OHLCV resampled to freq
func (c *Client) GetIndexOHLCV(ctx context.Context, fromDate, toDate, ticker, freq string) (*models.Table, error) {
	group, code, err := splitIndex(ticker)
	if err != nil {
		return nil, err
	}
	t, err := c.fetch(ctx, indexDaily, url.Values{
		"indIdx":  {group},
		"indIdx2": {code},
		"strtDd":  {c.orToday(fromDate)},
		"endDd":   {c.orToday(toDate)},
	})
	if err != nil {
		return nil, err
	}
	return resample(t, freq), nil
}

// GetIndexFundamental retrieves fundamentals for every index on a date
func (c *Client) GetIndexFundamental(ctx context.Context, date string) (*models.Table, error) {
	return c.fetch(ctx, indexFundamentalAll, url.Values{
		"trdDd": {c.orToday(date)},
		"mktId": {"02"},
	})
}

// GetIndexFundamentalByDate retrieves daily fundamentals for one index
func (c *Client) GetIndexFundamentalByDate(ctx context.Context, fromDate, toDate, ticker string) (*models.Table, error) {
	group, code, err := splitIndex(ticker)
	if err != nil {
		return nil, err
	}
	return c.fetch(ctx, indexFundamentalDaily, url.Values{
		"indIdx":  {group},
		"indIdx2": {code},
		"strtDd":  {c.orToday(fromDate)},
		"endDd":   {c.orToday(toDate)},
	})
}

// GetIndexConstituents lists an index's member tickers at a date
func (c *Client) GetIndexConstituents(ctx context.Context, ticker, date string) ([]string, error) {
	group, code, err := splitIndex(ticker)
	if err != nil {
		return nil, err
	}
	t, err := c.fetch(ctx, indexConstituents, url.Values{
		"indIdx":  {group},
		"indIdx2": {code},
		"trdDd":   {c.orToday(date)},
	})
	if err != nil {
		return nil, err
	}
	return keys(t), nil
}

// GetShortingStatus retrieves daily short selling for one stock
func (c *Client) GetShortingStatus(ctx context.Context, fromDate, toDate, ticker string) (*models.Table, error) {
	return c.byTicker(ctx, shortingStatus, fromDate, toDate, ticker, nil)
}

// GetShortingVolumeByTicker retrieves short volume for every stock on a market
func (c *Client) GetShortingVolumeByTicker(ctx context.Context, date, market string) (*models.Table, error) {
	return c.fetch(ctx, shortingVolume, url.Values{
		"trdDd":   {c.orToday(date)},
		"mktId":   {marketID(market)},
		"inqCond": {"STMFRTSCIFDRFS"},
	})
}

// GetShortingBalanceTop50 retrieves the top 50 short balances
func (c *Client) GetShortingBalanceTop50(ctx context.Context, date, market string) (*models.Table, error) {
	return c.fetch(ctx, shortingBalanceTop, url.Values{
		"trdDd":   {c.orToday(date)},
		"mktTpCd": {marketTypeCode(market)},
	})
}

// GetShortingVolumeTop50 retrieves the top 50 short trading ratios
func (c *Client) GetShortingVolumeTop50(ctx context.Context, date, market string) (*models.Table, error) {
	return c.fetch(ctx, shortingVolumeTop, url.Values{
		"trdDd":   {c.orToday(date)},
		"mktTpCd": {marketTypeCode(market)},
	})
}

// GetTradingVolumeByInvestor retrieves traded volume per investor type
func (c *Client) GetTradingVolumeByInvestor(ctx context.Context, fromDate, toDate, tickerOrMarket string) (*models.Table, error) {
	return c.byInvestor(ctx, fromDate, toDate, tickerOrMarket, false)
}

// GetTradingValueByInvestor retrieves traded value per investor type
func (c *Client) GetTradingValueByInvestor(ctx context.Context, fromDate, toDate, tickerOrMarket string) (*models.Table, error) {
	return c.byInvestor(ctx, fromDate, toDate, tickerOrMarket, true)
}

func (c *Client) byInvestor(ctx context.Context, fromDate, toDate, tickerOrMarket string, byValue bool) (*models.Table, error) {
	trdVolVal := "1"
	if byValue {
		trdVolVal = "2"
	}
	extra := url.Values{
		"inqTpCd":   {"1"},
		"trdVolVal": {trdVolVal},
		"askBid":    {"3"},
	}

	switch tickerOrMarket {
	case "KOSPI", "KOSDAQ", "KONEX", "ALL":
		ep := investorMarket
		ep.cols = investorColumns(byValue)
		extra.Set("mktId", marketID(tickerOrMarket))
		extra.Set("strtDd", c.orToday(fromDate))
		extra.Set("endDd", c.orToday(toDate))
		return c.fetch(ctx, ep, extra)
	default:
		ep := investorTicker
		ep.cols = investorColumns(byValue)
		return c.byTicker(ctx, ep, fromDate, toDate, tickerOrMarket, extra)
	}
}

// GetNetPurchases retrieves per-stock net purchases for one investor type,
// largest net purchase value first
func (c *Client) GetNetPurchases(ctx context.Context, fromDate, toDate, market, investor string) (*models.Table, error) {
	code, ok := investorCodes[investor]
	if !ok {
		code = investorCodes["전체"]
	}
	t, err := c.fetch(ctx, netPurchases, url.Values{
		"mktId":     {marketID(market)},
		"strtDd":    {c.orToday(fromDate)},
		"endDd":     {c.orToday(toDate)},
		"invstTpCd": {code},
	})
	if err != nil {
		return nil, err
	}
	sortByColumnDesc(t, "순매수거래대금")
	return t, nil
}

// GetForeignExhaustion retrieves foreign ownership for every stock on a date
func (c *Client) GetForeignExhaustion(ctx context.Context, date, market string, balanceLimit bool) (*models.Table, error) {
	limit := "0"
	if balanceLimit {
		limit = "1"
	}
	return c.fetch(ctx, foreignAll, url.Values{
		"trdDd":      {c.orToday(date)},
		"mktId":      {marketID(market)},
		"searchType": {"1"},
		"isuLmtRto":  {limit},
	})
}

// GetForeignExhaustionByDate retrieves daily foreign ownership for one stock
func (c *Client) GetForeignExhaustionByDate(ctx context.Context, fromDate, toDate, ticker string) (*models.Table, error) {
	return c.byTicker(ctx, foreignByDate, fromDate, toDate, ticker, url.Values{"searchType": {"2"}})
}

// GetMarketOHLCV retrieves the OHLCV snapshot of every stock on a market
func (c *Client) GetMarketOHLCV(ctx context.Context, date, market string) (*models.Table, error) {
	return c.fetch(ctx, marketSnapshot, url.Values{
		"mktId": {marketID(market)},
		"trdDd": {c.orToday(date)},
	})
}

// GetMarketPriceChange retrieves per-stock price change between two dates
func (c *Client) GetMarketPriceChange(ctx context.Context, fromDate, toDate, market string) (*models.Table, error) {
	return c.fetch(ctx, priceChange, url.Values{
		"mktId":     {marketID(market)},
		"strtDd":    {c.orToday(fromDate)},
		"endDd":     {c.orToday(toDate)},
		"adjStkPrc": {"2"},
	})
}
