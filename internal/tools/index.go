package tools

import (
	"context"

	"github.com/bobmcallan/krxdata/internal/models"
)

const latestDate = "latest"

func (s *Service) registerIndexOperations() {
	s.register("get_index_ticker_list",
		"Get the list of index tickers (KOSPI/KOSDAQ indices).",
		[]Param{
			optionalDateParam("date", "Date in YYYYMMDD format, omit for the latest business day (e.g., \"20240101\")"),
			marketParam(IndexMarkets, "KOSPI", "Market type - KOSPI or KOSDAQ (default: KOSPI)"),
		},
		s.indexTickerList)

	s.register("get_index_ticker_name",
		"Get the name of an index from its ticker (e.g., \"1001\" returns 코스피).",
		[]Param{tickerParam("Index ticker (e.g., \"1001\" for KOSPI)")},
		s.indexTickerName)

	s.register("get_index_ohlcv",
		"Get index OHLCV data at daily, monthly or yearly frequency.",
		[]Param{
			tickerParam("Index ticker (e.g., \"1001\" for KOSPI)"),
			startDateParam,
			endDateParam,
			{Name: "freq", Type: TypeString, Default: "d", Enum: Frequencies,
				Description: "Frequency - d (daily), m (monthly), y (yearly)"},
		},
		s.indexOHLCV)

	s.register("get_index_fundamental",
		"Get index fundamental data (PER/PBR/dividend yield). With only start_date, returns every index on that date; "+
			"with end_date and ticker, returns one index over time.",
		[]Param{
			startDateParam,
			optionalDateParam("end_date", "End date in YYYYMMDD format (optional, for a specific index over time)"),
			{Name: "ticker", Type: TypeString, Description: "Index ticker (optional, required with end_date)"},
		},
		s.indexFundamental)

	s.register("get_index_portfolio_deposit_file",
		"Get the constituent stocks of an index.",
		[]Param{
			tickerParam("Index ticker (e.g., \"1005\" for textile/clothing)"),
			optionalDateParam("date", "Date in YYYYMMDD format (optional, defaults to latest)"),
		},
		s.indexConstituents)
}

func (s *Service) indexTickerList(ctx context.Context, a Args) (*models.Record, error) {
	date, market := a.Str("date"), a.Str("market")
	if a.Present("date") {
		if env := checkDate("date", date); env != nil {
			return env, nil
		}
	}
	m, ok := normalizeMarket(market, IndexMarkets)
	if !ok {
		return ErrorEnvelope(invalidMarketMessage(IndexMarkets), "market", market), nil
	}

	tickers, err := s.client.GetIndexTickerList(ctx, date, m)
	if err != nil {
		return nil, err
	}
	if len(tickers) == 0 {
		return ErrorEnvelope("No data found: no index tickers", "date", a.Opt("date"), "market", market), nil
	}

	shown := date
	if shown == "" {
		shown = latestDate
	}
	return pairs("date", shown, "market", m, "data", tickers, "count", len(tickers)), nil
}

func (s *Service) indexTickerName(ctx context.Context, a Args) (*models.Record, error) {
	ticker := a.Str("ticker")
	if ticker == "" {
		return ErrorEnvelope("Ticker is required.", "ticker", ticker), nil
	}

	name, err := s.client.GetIndexTickerName(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return ErrorEnvelope("No data found: index name not found", "ticker", ticker), nil
	}

	return pairs("ticker", ticker, "name", name), nil
}

func (s *Service) indexOHLCV(ctx context.Context, a Args) (*models.Record, error) {
	ticker, from, to, freq := a.Str("ticker"), a.Str("start_date"), a.Str("end_date"), a.Str("freq")
	if ticker == "" {
		return ErrorEnvelope("Ticker is required.", "ticker", ticker), nil
	}
	if env := firstError(checkDate("start_date", from), checkDate("end_date", to)); env != nil {
		return env, nil
	}
	f, ok := normalizeFrequency(freq)
	if !ok {
		return ErrorEnvelope(invalidFrequencyMessage(), "freq", freq), nil
	}

	tbl, err := s.client.GetIndexOHLCV(ctx, from, to, ticker, f)
	if err != nil {
		return nil, err
	}
	if tbl.Empty() {
		return ErrorEnvelope("No data found for the given period.",
			"ticker", ticker, "start_date", from, "end_date", to), nil
	}

	return FormatKeyed(tbl, pairs("ticker", ticker, "start_date", from, "end_date", to, "frequency", f))
}

func (s *Service) indexFundamental(ctx context.Context, a Args) (*models.Record, error) {
	from, to, ticker := a.Str("start_date"), a.Str("end_date"), a.Str("ticker")
	if env := checkDate("start_date", from); env != nil {
		return env, nil
	}

	var (
		tbl *models.Table
		err error
	)
	if a.Present("end_date") {
		if env := checkDate("end_date", to); env != nil {
			return env, nil
		}
		if !a.Present("ticker") {
			return ErrorEnvelope("ticker is required when end_date is provided.",
				"start_date", from, "end_date", to), nil
		}
		tbl, err = s.client.GetIndexFundamentalByDate(ctx, from, to, ticker)
	} else {
		tbl, err = s.client.GetIndexFundamental(ctx, from)
	}
	if err != nil {
		return nil, err
	}

	meta := pairs("start_date", from, "end_date", a.Opt("end_date"), "ticker", a.Opt("ticker"))
	if tbl.Empty() {
		return ErrorEnvelope("No data found.").Merge(meta), nil
	}

	return FormatKeyed(tbl, meta)
}

func (s *Service) indexConstituents(ctx context.Context, a Args) (*models.Record, error) {
	ticker, date := a.Str("ticker"), a.Str("date")
	if ticker == "" {
		return ErrorEnvelope("Ticker is required.", "ticker", ticker), nil
	}
	if a.Present("date") {
		if env := checkDate("date", date); env != nil {
			return env, nil
		}
	}

	tickers, err := s.client.GetIndexConstituents(ctx, ticker, date)
	if err != nil {
		return nil, err
	}
	if len(tickers) == 0 {
		return ErrorEnvelope("No data found: no constituents", "ticker", ticker, "date", a.Opt("date")), nil
	}

	shown := date
	if shown == "" {
		shown = latestDate
	}
	return pairs("ticker", ticker, "date", shown, "data", tickers, "count", len(tickers)), nil
}
