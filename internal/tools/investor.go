package tools

import (
	"context"
	"strings"

	"github.com/bobmcallan/krxdata/internal/interfaces"
	"github.com/bobmcallan/krxdata/internal/models"
)

// rangeFetch reads a table for a stock or market over a date range.
type rangeFetch func(c interfaces.MarketDataClient, ctx context.Context, fromDate, toDate, tickerOrMarket string) (*models.Table, error)

func (s *Service) registerInvestorOperations() {
	subject := Param{Name: "ticker", Type: TypeString, Required: true,
		Description: "Stock ticker (6 digits) or market (KOSPI/KOSDAQ/KONEX/ALL)"}

	s.register("get_market_trading_volume_by_investor",
		"Get traded volume (sell/buy/net) by investor type for a stock or a whole market.",
		[]Param{startDateParam, endDateParam, subject},
		s.investorFlow(interfaces.MarketDataClient.GetTradingVolumeByInvestor))

	s.register("get_market_trading_value_by_investor",
		"Get traded value (sell/buy/net) by investor type for a stock or a whole market.",
		[]Param{startDateParam, endDateParam, subject},
		s.investorFlow(interfaces.MarketDataClient.GetTradingValueByInvestor))

	s.register("get_market_net_purchases_of_equities",
		"Get stocks ranked by net purchases of a specific investor type.",
		[]Param{
			startDateParam,
			endDateParam,
			marketParam(AllMarkets, "", "Market type (KOSPI/KOSDAQ/KONEX/ALL)"),
			{Name: "investor", Type: TypeString, Required: true, Enum: Investors,
				Description: "Investor type (금융투자/보험/투신/사모/은행/기타금융/연기금/기관합계/기타법인/개인/외국인/기타외국인/전체)"},
		},
		s.netPurchases)

	s.register("get_exhaustion_rates_of_foreign_investment",
		"Get foreign ownership and foreign investment limit exhaustion rates. "+
			"With end_date and ticker, returns one stock over time; otherwise every stock of a market on start_date.",
		[]Param{
			startDateParam,
			optionalDateParam("end_date", "End date in YYYYMMDD format (optional, for a specific stock over time)"),
			{Name: "ticker", Type: TypeString, Description: "Stock ticker (optional, for a specific stock)"},
			marketParam(StockMarkets, "KOSPI", "Market type - KOSPI/KOSDAQ/KONEX"),
			{Name: "balance_limit", Type: TypeBoolean, Default: false,
				Description: "Only show stocks with foreign ownership limits"},
		},
		s.foreignExhaustion)
}

// investorFlow builds the core for the ticker-or-market investor operations.
// Market names are checked before ticker format.
func (s *Service) investorFlow(fetch rangeFetch) Core {
	return func(ctx context.Context, a Args) (*models.Record, error) {
		from, to, ticker := a.Str("start_date"), a.Str("end_date"), a.Str("ticker")
		if env := firstError(checkDate("start_date", from), checkDate("end_date", to)); env != nil {
			return env, nil
		}

		subject, isMarket := normalizeMarket(ticker, AllMarkets)
		if !isMarket {
			if ok, msg := ValidateTicker(ticker); !ok {
				return ErrorEnvelope(msg+"; or a market name: "+strings.Join(AllMarkets, ", "), "ticker", ticker), nil
			}
			subject = ticker
		}

		tbl, err := fetch(s.client, ctx, from, to, subject)
		if err != nil {
			return nil, err
		}
		if tbl.Empty() {
			return ErrorEnvelope("No data found for the given period.",
				"ticker", ticker, "start_date", from, "end_date", to), nil
		}

		return FormatKeyed(tbl, pairs("ticker", ticker, "start_date", from, "end_date", to))
	}
}

func (s *Service) netPurchases(ctx context.Context, a Args) (*models.Record, error) {
	from, to, market, investor := a.Str("start_date"), a.Str("end_date"), a.Str("market"), a.Str("investor")
	if env := firstError(checkDate("start_date", from), checkDate("end_date", to)); env != nil {
		return env, nil
	}
	m, ok := normalizeMarket(market, AllMarkets)
	if !ok {
		return ErrorEnvelope(invalidMarketMessage(AllMarkets), "market", market), nil
	}
	inv, ok := normalizeInvestor(investor)
	if !ok {
		return ErrorEnvelope(invalidInvestorMessage(), "investor", investor), nil
	}

	tbl, err := s.client.GetNetPurchases(ctx, from, to, m, inv)
	if err != nil {
		return nil, err
	}
	if tbl.Empty() {
		return ErrorEnvelope("No data found for the given period.",
			"market", market, "investor", investor, "start_date", from, "end_date", to), nil
	}

	return FormatKeyed(tbl, pairs("market", m, "investor", inv, "start_date", from, "end_date", to))
}

func (s *Service) foreignExhaustion(ctx context.Context, a Args) (*models.Record, error) {
	from := a.Str("start_date")
	if env := checkDate("start_date", from); env != nil {
		return env, nil
	}

	if a.Present("end_date") && a.Present("ticker") {
		to, ticker := a.Str("end_date"), a.Str("ticker")
		if env := firstError(checkDate("end_date", to), checkTicker("ticker", ticker)); env != nil {
			return env, nil
		}

		tbl, err := s.client.GetForeignExhaustionByDate(ctx, from, to, ticker)
		if err != nil {
			return nil, err
		}
		if tbl.Empty() {
			return ErrorEnvelope("No data found for the given period.",
				"ticker", ticker, "start_date", from, "end_date", to), nil
		}
		return FormatKeyed(tbl, pairs("ticker", ticker, "start_date", from, "end_date", to))
	}

	market, balanceLimit := a.Str("market"), a.Bool("balance_limit")
	m, ok := normalizeMarket(market, StockMarkets)
	if !ok {
		return ErrorEnvelope(invalidMarketMessage(StockMarkets), "market", market), nil
	}

	tbl, err := s.client.GetForeignExhaustion(ctx, from, m, balanceLimit)
	if err != nil {
		return nil, err
	}
	if tbl.Empty() {
		return ErrorEnvelope("No data found for the given date.", "date", from, "market", market), nil
	}
	return FormatKeyed(tbl, pairs("date", from, "market", m, "balance_limit", balanceLimit))
}
