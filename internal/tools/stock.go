package tools

import (
	"context"
	"fmt"

	"github.com/bobmcallan/krxdata/internal/models"
)

func (s *Service) registerStockOperations() {
	s.register("get_stock_ohlcv",
		"Retrieve OHLCV (Open, High, Low, Close, Volume) data for a Korean stock. "+
			"Use this to analyze price movements, calculate technical indicators, or chart price trends. "+
			"Returns one row per trading day with 시가, 고가, 저가, 종가, 거래량, 거래대금 and 등락률.",
		[]Param{
			tickerParam("Stock ticker symbol (e.g., \"005930\" for Samsung Electronics). Korean stock tickers are 6-digit numbers."),
			startDateParam,
			endDateParam,
			{Name: "adjusted", Type: TypeBoolean, Default: true,
				Description: "Whether to return adjusted prices that account for splits and dividends (default: true)"},
		},
		s.stockOHLCV)

	s.register("get_market_ticker_list",
		"Retrieve the list of stock tickers listed on a market at a date.",
		[]Param{
			dayParam,
			marketParam(StockMarkets, "KOSPI", "Market name - KOSPI, KOSDAQ, or KONEX (default: KOSPI)"),
		},
		s.marketTickerList)

	s.register("get_market_ticker_name",
		"Get the company name of a stock from its ticker code (e.g., \"005930\" returns 삼성전자).",
		[]Param{tickerParam("6-digit stock ticker code (e.g., \"005930\")")},
		s.marketTickerName)

	s.register("get_market_fundamental_by_date",
		"Retrieve fundamental data (BPS, PER, PBR, EPS, DIV, DPS) for a stock over a date range. "+
			"Use this to evaluate stock valuation.",
		[]Param{
			tickerParam("Stock ticker symbol (e.g., \"005930\" for Samsung Electronics)"),
			startDateParam,
			endDateParam,
		},
		s.marketFundamental)

	s.register("get_market_cap_by_date",
		"Retrieve market capitalization data for a stock: 시가총액, 거래량, 거래대금, 상장주식수.",
		[]Param{
			tickerParam("6-digit stock ticker code (e.g., \"005930\" for Samsung Electronics)"),
			startDateParam,
			endDateParam,
		},
		s.marketCap)

	s.register("get_market_trading_value_by_date",
		"Retrieve daily trading value by investor type for supply/demand analysis. "+
			"Positive values are net buying, negative values are net selling.",
		[]Param{
			tickerParam("6-digit stock ticker code (e.g., \"005930\" for Samsung Electronics)"),
			startDateParam,
			endDateParam,
		},
		s.tradingValueByDate)
}

// dateRangeChecks validates ticker, start_date and end_date in that order.
func dateRangeChecks(ticker, from, to string) *models.Record {
	return firstError(
		checkTicker("ticker", ticker),
		checkDate("start_date", from),
		checkDate("end_date", to),
	)
}

func (s *Service) stockOHLCV(ctx context.Context, a Args) (*models.Record, error) {
	ticker, from, to, adjusted := a.Str("ticker"), a.Str("start_date"), a.Str("end_date"), a.Bool("adjusted")
	if env := dateRangeChecks(ticker, from, to); env != nil {
		return env, nil
	}

	tbl, err := s.client.GetStockOHLCV(ctx, from, to, ticker, adjusted)
	if err != nil {
		return nil, err
	}
	if tbl.Empty() {
		return ErrorEnvelope(fmt.Sprintf("No data found for ticker %s in the specified date range", ticker),
			"ticker", ticker, "start_date", from, "end_date", to), nil
	}

	return FormatSequence(tbl, pairs("ticker", ticker, "start_date", from, "end_date", to, "adjusted", adjusted))
}

func (s *Service) marketTickerList(ctx context.Context, a Args) (*models.Record, error) {
	date, market := a.Str("date"), a.Str("market")
	if env := checkDate("date", date); env != nil {
		return env, nil
	}
	m, ok := normalizeMarket(market, StockMarkets)
	if !ok {
		return ErrorEnvelope(invalidMarketMessage(StockMarkets), "market", market), nil
	}

	tickers, err := s.client.GetMarketTickerList(ctx, date, m)
	if err != nil {
		return nil, err
	}
	if len(tickers) == 0 {
		return ErrorEnvelope(fmt.Sprintf("No data found: no tickers listed on %s at %s", m, date),
			"date", date, "market", market), nil
	}

	return pairs("date", date, "market", m, "count", len(tickers), "tickers", tickers), nil
}

func (s *Service) marketTickerName(ctx context.Context, a Args) (*models.Record, error) {
	ticker := a.Str("ticker")
	if env := checkTicker("ticker", ticker); env != nil {
		return env, nil
	}

	name, err := s.client.GetMarketTickerName(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return ErrorEnvelope(fmt.Sprintf("No data found: ticker %s not found or delisted", ticker), "ticker", ticker), nil
	}

	return pairs("ticker", ticker, "name", name), nil
}

func (s *Service) marketFundamental(ctx context.Context, a Args) (*models.Record, error) {
	ticker, from, to := a.Str("ticker"), a.Str("start_date"), a.Str("end_date")
	if env := dateRangeChecks(ticker, from, to); env != nil {
		return env, nil
	}

	tbl, err := s.client.GetMarketFundamental(ctx, from, to, ticker)
	if err != nil {
		return nil, err
	}
	if tbl.Empty() {
		return ErrorEnvelope(fmt.Sprintf("No data found: no fundamental data for ticker %s in the date range", ticker),
			"ticker", ticker, "start_date", from, "end_date", to), nil
	}

	return FormatSequence(tbl, pairs("ticker", ticker, "start_date", from, "end_date", to))
}

func (s *Service) marketCap(ctx context.Context, a Args) (*models.Record, error) {
	ticker, from, to := a.Str("ticker"), a.Str("start_date"), a.Str("end_date")
	if env := dateRangeChecks(ticker, from, to); env != nil {
		return env, nil
	}

	tbl, err := s.client.GetMarketCap(ctx, from, to, ticker)
	if err != nil {
		return nil, err
	}
	if tbl.Empty() {
		return ErrorEnvelope(fmt.Sprintf("No data found: no market cap data for ticker %s between %s and %s", ticker, from, to),
			"ticker", ticker, "start_date", from, "end_date", to), nil
	}

	return FormatSequence(tbl, pairs("ticker", ticker, "start_date", from, "end_date", to))
}

func (s *Service) tradingValueByDate(ctx context.Context, a Args) (*models.Record, error) {
	ticker, from, to := a.Str("ticker"), a.Str("start_date"), a.Str("end_date")
	if env := dateRangeChecks(ticker, from, to); env != nil {
		return env, nil
	}

	tbl, err := s.client.GetTradingValueByDate(ctx, from, to, ticker)
	if err != nil {
		return nil, err
	}
	if tbl.Empty() {
		return ErrorEnvelope(fmt.Sprintf("No data found: no trading value data for ticker %s between %s and %s", ticker, from, to),
			"ticker", ticker, "start_date", from, "end_date", to), nil
	}

	return FormatSequence(tbl, pairs("ticker", ticker, "start_date", from, "end_date", to))
}
