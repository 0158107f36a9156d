// Package resources holds the static reference documents served to agents
package resources

const (
	InfoURI   = "krx://info"
	ManualURI = "krx://pykrx-manual"

	markdown = "text/markdown"
)

// Document is a read-only text resource addressed by URI
type Document struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
	Text        string
}

// All returns the documents in registration order
func All() []Document {
	return []Document{
		{
			URI:         InfoURI,
			Name:        "krx_info",
			Description: "General information about the Korean stock market (KRX)",
			MIMEType:    markdown,
			Text:        info,
		},
		{
			URI:         ManualURI,
			Name:        "pykrx_manual",
			Description: "Usage guide for the KRX market data tools",
			MIMEType:    markdown,
			Text:        manual,
		},
	}
}

// Lookup finds a document by URI
func Lookup(uri string) (Document, bool) {
	for _, d := range All() {
		if d.URI == uri {
			return d, true
		}
	}
	return Document{}, false
}

const info = `# Korea Exchange (KRX)

The Korea Exchange runs the Korean equity markets:

- **KOSPI**: the main board, home to the large caps
- **KOSDAQ**: the growth and technology board
- **KONEX**: a small board for early stage companies

Regular session: 09:00 to 15:30 KST, Monday to Friday, excluding Korean public holidays.

Stocks and ETFs are identified by six digit codes with leading zeros, for
example 005930 (Samsung Electronics). Index codes are four digits, for
example 1001 (KOSPI) and 1028 (KOSPI 200).
`

const manual = `# KRX market data tools

These tools return end-of-day data for Korean equities, ETFs and indices.
Every tool answers with a JSON object. Failures carry an "error" field along
with the arguments that were supplied, so a failed call can be corrected and
retried.

## Argument formats

| Argument | Format | Good | Bad |
|---|---|---|---|
| ticker | 6 digits, leading zeros kept | "005930" | "5930", "SSNLF" |
| dates | YYYYMMDD | "20240102" | "2024-01-02", "01/02/2024" |
| market | KOSPI, KOSDAQ, KONEX (some tools accept ALL) | "KOSPI" | "kospi200" |
| freq | d, m or y | "m" | "w" |

Dates are checked for shape only. A weekend or holiday is accepted and simply
returns no rows.

## Choosing a tool

- Prices for one stock: get_stock_ohlcv
- Valuation (PER, PBR, EPS, dividend yield): get_market_fundamental_by_date
- Market capitalisation over time: get_market_cap_by_date
- Who bought and sold a stock each day: get_market_trading_value_by_date
- Investor totals for a stock or a whole market: get_market_trading_value_by_investor, get_market_trading_volume_by_investor
- Top stocks bought by one investor group: get_market_net_purchases_of_equities
- Every stock on a market for one day: get_market_ohlcv_by_date
- Returns between two dates for every stock: get_market_price_change
- Listing tickers and names: get_market_ticker_list, get_market_ticker_name
- ETFs: get_etf_ticker_list, get_etf_ohlcv_by_date
- Indices: get_index_ticker_list, get_index_ticker_name, get_index_ohlcv, get_index_fundamental, get_index_portfolio_deposit_file
- Short selling: get_shorting_status_by_date, get_shorting_volume_by_ticker, get_shorting_volume_top50, get_shorting_balance_top50
- Foreign ownership limits: get_exhaustion_rates_of_foreign_investment

Some frequently used tickers: Samsung Electronics 005930, SK Hynix 000660,
NAVER 035420, Kakao 035720. For anything else, list a market with
get_market_ticker_list and resolve names with get_market_ticker_name.

## Working within limits

- Request long histories a year or two at a time rather than a decade in one call.
- Space out large batches of calls; the exchange throttles aggressive clients.
- Data is end of day and usually appears the following business day.
- There is no intraday, options or futures data, and no markets outside Korea.

## When a call returns nothing

An error mentioning "No data found" usually means one of:

1. the ticker does not exist or has been delisted
2. the range falls before the listing date
3. every date in the range was a non-trading day

Check the ticker, widen the range, and try again.

## Examples

    get_stock_ohlcv(ticker="005930", start_date="20240101", end_date="20240131", adjusted=true)
    get_index_ohlcv(ticker="1001", start_date="20230101", end_date="20231231", freq="m")
    get_market_net_purchases_of_equities(start_date="20240101", end_date="20240131", market="KOSPI", investor="외국인")
`
