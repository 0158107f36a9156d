package tools

import (
	"context"

	"github.com/bobmcallan/krxdata/internal/interfaces"
	"github.com/bobmcallan/krxdata/internal/models"
)

// snapshotFetch reads a per-ticker table for one market on one date.
type snapshotFetch func(c interfaces.MarketDataClient, ctx context.Context, date, market string) (*models.Table, error)

func (s *Service) registerShortingOperations() {
	s.register("get_shorting_status_by_date",
		"Get short selling status for a stock: daily short volume, balance, short value and balance value.",
		[]Param{
			tickerParam("6-digit stock ticker"),
			startDateParam,
			endDateParam,
		},
		s.shortingStatus)

	s.register("get_shorting_volume_by_ticker",
		"Get short selling volume for all stocks of a market on a date.",
		[]Param{
			dayParam,
			marketParam(StockMarkets, "KOSPI", "Market type - KOSPI/KOSDAQ/KONEX"),
		},
		s.marketSnapshot(StockMarkets, interfaces.MarketDataClient.GetShortingVolumeByTicker))

	s.register("get_shorting_balance_top50",
		"Get the top 50 stocks by short selling balance ratio.",
		[]Param{
			dayParam,
			marketParam(IndexMarkets, "KOSPI", "Market type - KOSPI or KOSDAQ"),
		},
		s.marketSnapshot(IndexMarkets, interfaces.MarketDataClient.GetShortingBalanceTop50))

	s.register("get_shorting_volume_top50",
		"Get the top 50 stocks by short selling trading ratio.",
		[]Param{
			dayParam,
			marketParam(IndexMarkets, "KOSPI", "Market type - KOSPI or KOSDAQ"),
		},
		s.marketSnapshot(IndexMarkets, interfaces.MarketDataClient.GetShortingVolumeTop50))
}

func (s *Service) shortingStatus(ctx context.Context, a Args) (*models.Record, error) {
	ticker, from, to := a.Str("ticker"), a.Str("start_date"), a.Str("end_date")
	if env := dateRangeChecks(ticker, from, to); env != nil {
		return env, nil
	}

	tbl, err := s.client.GetShortingStatus(ctx, from, to, ticker)
	if err != nil {
		return nil, err
	}
	if tbl.Empty() {
		return ErrorEnvelope("No data found for the given period.",
			"ticker", ticker, "start_date", from, "end_date", to), nil
	}

	return FormatKeyed(tbl, pairs("ticker", ticker, "start_date", from, "end_date", to))
}

// marketSnapshot builds the core shared by the date+market keyed operations.
func (s *Service) marketSnapshot(markets []string, fetch snapshotFetch) Core {
	return func(ctx context.Context, a Args) (*models.Record, error) {
		date, market := a.Str("date"), a.Str("market")
		if env := checkDate("date", date); env != nil {
			return env, nil
		}
		m, ok := normalizeMarket(market, markets)
		if !ok {
			return ErrorEnvelope(invalidMarketMessage(markets), "market", market), nil
		}

		tbl, err := fetch(s.client, ctx, date, m)
		if err != nil {
			return nil, err
		}
		if tbl.Empty() {
			return ErrorEnvelope("No data found for the given date.", "date", date, "market", market), nil
		}

		return FormatKeyed(tbl, pairs("date", date, "market", m))
	}
}
