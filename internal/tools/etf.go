package tools

import (
	"context"
	"fmt"

	"github.com/bobmcallan/krxdata/internal/models"
)

func (s *Service) registerETFOperations() {
	s.register("get_etf_ohlcv_by_date",
		"Retrieve ETF OHLCV (Open, High, Low, Close, Volume) data with NAV and underlying index level.",
		[]Param{
			tickerParam("ETF ticker symbol (e.g., \"069500\" for KODEX 200)"),
			startDateParam,
			endDateParam,
		},
		s.etfOHLCV)

	s.register("get_etf_ticker_list",
		"Retrieve the list of all ETF tickers traded on a specific date.",
		[]Param{dayParam},
		s.etfTickerList)
}

func (s *Service) etfOHLCV(ctx context.Context, a Args) (*models.Record, error) {
	ticker, from, to := a.Str("ticker"), a.Str("start_date"), a.Str("end_date")
	if env := dateRangeChecks(ticker, from, to); env != nil {
		return env, nil
	}

	tbl, err := s.client.GetETFOHLCV(ctx, from, to, ticker)
	if err != nil {
		return nil, err
	}
	if tbl.Empty() {
		return ErrorEnvelope(fmt.Sprintf("No data found: no ETF data for ticker %s in the date range", ticker),
			"ticker", ticker, "start_date", from, "end_date", to), nil
	}

	return FormatSequence(tbl, pairs("ticker", ticker, "start_date", from, "end_date", to))
}

func (s *Service) etfTickerList(ctx context.Context, a Args) (*models.Record, error) {
	date := a.Str("date")
	if env := checkDate("date", date); env != nil {
		return env, nil
	}

	tickers, err := s.client.GetETFTickerList(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(tickers) == 0 {
		return ErrorEnvelope(fmt.Sprintf("No data found: no ETFs listed on %s", date), "date", date), nil
	}

	return pairs("date", date, "count", len(tickers), "tickers", tickers), nil
}
