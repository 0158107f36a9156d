// Package interfaces defines service contracts for krxdata
package interfaces

import (
	"context"

	"github.com/bobmcallan/krxdata/internal/models"
)

// MarketDataClient provides access to Korea Exchange market data.
//
// Dates are YYYYMMDD strings. An empty date means the latest business day.
// Methods returning a table signal "no data" with an empty table, never an
// error; errors are reserved for upstream failures.
type MarketDataClient interface {
	// GetStockOHLCV retrieves daily open/high/low/close/volume for one stock
	GetStockOHLCV(ctx context.Context, fromDate, toDate, ticker string, adjusted bool) (*models.Table, error)

	// GetMarketTickerList lists the tickers listed on a market at a date
	GetMarketTickerList(ctx context.Context, date, market string) ([]string, error)

	// GetMarketTickerName returns the company name for a ticker, or "" if unknown
	GetMarketTickerName(ctx context.Context, ticker string) (string, error)

	// GetMarketFundamental retrieves daily BPS/PER/PBR/EPS/DIV/DPS for one stock
	GetMarketFundamental(ctx context.Context, fromDate, toDate, ticker string) (*models.Table, error)

	// GetMarketCap retrieves daily market capitalisation for one stock
	GetMarketCap(ctx context.Context, fromDate, toDate, ticker string) (*models.Table, error)

	// GetTradingValueByDate retrieves daily trading value by investor group for one stock
	GetTradingValueByDate(ctx context.Context, fromDate, toDate, ticker string) (*models.Table, error)

	// GetETFOHLCV retrieves daily OHLCV and NAV for one ETF
	GetETFOHLCV(ctx context.Context, fromDate, toDate, ticker string) (*models.Table, error)

	// GetETFTickerList lists ETF tickers at a date
	GetETFTickerList(ctx context.Context, date string) ([]string, error)

	// GetIndexTickerList lists index codes for a market at a date
	GetIndexTickerList(ctx context.Context, date, market string) ([]string, error)

	// GetIndexTickerName returns the index name for an index code, or "" if unknown
	GetIndexTickerName(ctx context.Context, ticker string) (string, error)

	// GetIndexOHLCV retrieves index OHLCV at daily, monthly or yearly frequency (d, m, y)
	GetIndexOHLCV(ctx context.Context, fromDate, toDate, ticker, freq string) (*models.Table, error)

	// GetIndexFundamental retrieves PER/PBR/dividend yield for every index on a date
	GetIndexFundamental(ctx context.Context, date string) (*models.Table, error)

	// GetIndexFundamentalByDate retrieves daily PER/PBR/dividend yield for one index
	GetIndexFundamentalByDate(ctx context.Context, fromDate, toDate, ticker string) (*models.Table, error)

	// GetIndexConstituents lists the stocks making up an index at a date
	GetIndexConstituents(ctx context.Context, ticker, date string) ([]string, error)

	// GetShortingStatus retrieves daily short selling volume and balance for one stock
	GetShortingStatus(ctx context.Context, fromDate, toDate, ticker string) (*models.Table, error)

	// GetShortingVolumeByTicker retrieves short selling volume for every stock on a market
	GetShortingVolumeByTicker(ctx context.Context, date, market string) (*models.Table, error)

	// GetShortingBalanceTop50 retrieves the 50 stocks with the highest short balance ratio
	GetShortingBalanceTop50(ctx context.Context, date, market string) (*models.Table, error)

	// GetShortingVolumeTop50 retrieves the 50 stocks with the highest short trading ratio
	GetShortingVolumeTop50(ctx context.Context, date, market string) (*models.Table, error)

	// GetTradingVolumeByInvestor retrieves traded volume per investor type for a stock or market
	GetTradingVolumeByInvestor(ctx context.Context, fromDate, toDate, tickerOrMarket string) (*models.Table, error)

	// GetTradingValueByInvestor retrieves traded value per investor type for a stock or market
	GetTradingValueByInvestor(ctx context.Context, fromDate, toDate, tickerOrMarket string) (*models.Table, error)

	// GetNetPurchases retrieves per-stock net purchases of one investor type
	GetNetPurchases(ctx context.Context, fromDate, toDate, market, investor string) (*models.Table, error)

	// GetForeignExhaustion retrieves foreign ownership limits for every stock on a date
	GetForeignExhaustion(ctx context.Context, date, market string, balanceLimit bool) (*models.Table, error)

	// GetForeignExhaustionByDate retrieves daily foreign ownership for one stock
	GetForeignExhaustionByDate(ctx context.Context, fromDate, toDate, ticker string) (*models.Table, error)

	// GetMarketOHLCV retrieves the OHLCV snapshot of every stock on a market at a date
	GetMarketOHLCV(ctx context.Context, date, market string) (*models.Table, error)

	// GetMarketPriceChange retrieves per-stock price change between two dates
	GetMarketPriceChange(ctx context.Context, fromDate, toDate, market string) (*models.Table, error)
}
