package tools

import (
	"context"

	"github.com/bobmcallan/krxdata/internal/models"
)

func (s *Service) registerMarketOperations() {
	s.register("get_market_ohlcv_by_date",
		"Get the OHLCV of every stock on a market for a specific date.",
		[]Param{
			dayParam,
			marketParam(AllMarkets, "KOSPI", "Market type - KOSPI/KOSDAQ/KONEX/ALL"),
		},
		s.marketOHLCV)

	s.register("get_market_price_change",
		"Get the price change of every stock on a market over a period.",
		[]Param{
			startDateParam,
			endDateParam,
			marketParam(AllMarkets, "KOSPI", "Market type - KOSPI/KOSDAQ/KONEX/ALL"),
		},
		s.marketPriceChange)
}

func (s *Service) marketOHLCV(ctx context.Context, a Args) (*models.Record, error) {
	date, market := a.Str("date"), a.Str("market")
	if env := checkDate("date", date); env != nil {
		return env, nil
	}
	m, ok := normalizeMarket(market, AllMarkets)
	if !ok {
		return ErrorEnvelope(invalidMarketMessage(AllMarkets), "market", market), nil
	}

	tbl, err := s.client.GetMarketOHLCV(ctx, date, m)
	if err != nil {
		return nil, err
	}
	if tbl.Empty() {
		return ErrorEnvelope("No data found for the given date.", "date", date, "market", market), nil
	}

	return withKeyCount(FormatKeyed(tbl, pairs("date", date, "market", m)))
}

func (s *Service) marketPriceChange(ctx context.Context, a Args) (*models.Record, error) {
	from, to, market := a.Str("start_date"), a.Str("end_date"), a.Str("market")
	if env := firstError(checkDate("start_date", from), checkDate("end_date", to)); env != nil {
		return env, nil
	}
	m, ok := normalizeMarket(market, AllMarkets)
	if !ok {
		return ErrorEnvelope(invalidMarketMessage(AllMarkets), "market", market), nil
	}

	tbl, err := s.client.GetMarketPriceChange(ctx, from, to, m)
	if err != nil {
		return nil, err
	}
	if tbl.Empty() {
		return ErrorEnvelope("No data found for the given period.",
			"start_date", from, "end_date", to, "market", market), nil
	}

	return withKeyCount(FormatKeyed(tbl, pairs("start_date", from, "end_date", to, "market", m)))
}

// withKeyCount appends the number of distinct keys in data as count.
func withKeyCount(env *models.Record, err error) (*models.Record, error) {
	if err != nil {
		return nil, err
	}
	data, _ := env.Get("data")
	keyed, _ := data.(*models.Record)
	return env.Set("count", keyed.Len()), nil
}
