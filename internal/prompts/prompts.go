// Package prompts generates guided analysis workflows for agents
package prompts

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Argument describes one prompt argument
type Argument struct {
	Name        string
	Description string
	Required    bool
	Default     string
}

// Prompt is a named workflow template
type Prompt struct {
	Name        string
	Description string
	Arguments   []Argument
	render      func(args map[string]string, now time.Time) (string, error)
}

// Render fills the template. Missing optional arguments take their defaults.
func (p Prompt) Render(args map[string]string, now time.Time) (string, error) {
	filled := make(map[string]string, len(p.Arguments))
	for _, a := range p.Arguments {
		v := strings.TrimSpace(args[a.Name])
		if v == "" {
			if a.Required {
				return "", fmt.Errorf("missing required argument: %s", a.Name)
			}
			v = a.Default
		}
		filled[a.Name] = v
	}
	return p.render(filled, now)
}

// All returns the prompts in registration order
func All() []Prompt {
	return []Prompt{
		{
			Name:        "analyze_stock_by_name",
			Description: "Analyze a Korean stock by company name, looking up its ticker first when needed",
			Arguments: []Argument{
				{Name: "stock_name", Description: "Company name, e.g. 삼성전자 or NAVER", Required: true},
				{Name: "period", Description: "Analysis period: 1W, 1M, 3M, 6M or 1Y", Default: "1M"},
				{Name: "analysis_type", Description: "price, fundamental or investor", Default: "price"},
			},
			render: func(a map[string]string, now time.Time) (string, error) {
				return AnalyzeStockByName(a["stock_name"], a["period"], a["analysis_type"], now), nil
			},
		},
		{
			Name:        "analyze_investor_flow",
			Description: "Analyze foreign, institutional and individual investor flow for a stock",
			Arguments: []Argument{
				{Name: "stock_name", Description: "Company name, e.g. 삼성전자", Required: true},
				{Name: "period", Description: "Analysis period: 1W, 1M, 3M, 6M or 1Y", Default: "1M"},
				{Name: "focus_investor", Description: "foreign, institution, individual or all", Default: "all"},
			},
			render: func(a map[string]string, now time.Time) (string, error) {
				return AnalyzeInvestorFlow(a["stock_name"], a["period"], a["focus_investor"], now), nil
			},
		},
		{
			Name:        "screen_undervalued_stocks",
			Description: "Screen a market for stocks with low PER and PBR",
			Arguments: []Argument{
				{Name: "max_per", Description: "Maximum PER", Default: "10"},
				{Name: "max_pbr", Description: "Maximum PBR", Default: "1"},
				{Name: "market", Description: "KOSPI, KOSDAQ or ALL", Default: "KOSPI"},
				{Name: "min_market_cap", Description: "Minimum market cap in 억원 (1000 = 1천억원)", Default: "1000"},
				{Name: "sort_by", Description: "PER, PBR, MarketCap or EPS", Default: "PER"},
			},
			render: func(a map[string]string, now time.Time) (string, error) {
				maxPER, err := strconv.ParseFloat(a["max_per"], 64)
				if err != nil {
					return "", fmt.Errorf("max_per must be a number, got %q", a["max_per"])
				}
				maxPBR, err := strconv.ParseFloat(a["max_pbr"], 64)
				if err != nil {
					return "", fmt.Errorf("max_pbr must be a number, got %q", a["max_pbr"])
				}
				minCap, err := strconv.Atoi(a["min_market_cap"])
				if err != nil {
					return "", fmt.Errorf("min_market_cap must be an integer, got %q", a["min_market_cap"])
				}
				return ScreenUndervaluedStocks(maxPER, maxPBR, strings.ToUpper(a["market"]), minCap, a["sort_by"], now), nil
			},
		},
	}
}

// Lookup finds a prompt by name
func Lookup(name string) (Prompt, bool) {
	for _, p := range All() {
		if p.Name == name {
			return p, true
		}
	}
	return Prompt{}, false
}

// MajorStock pairs a well known company with its ticker
type MajorStock struct {
	Name   string
	Ticker string
}

// MajorStocks is the quick-reference table, largest names first
var MajorStocks = []MajorStock{
	{"삼성전자", "005930"},
	{"SK하이닉스", "000660"},
	{"LG에너지솔루션", "373220"},
	{"삼성바이오로직스", "207940"},
	{"현대차", "005380"},
	{"기아", "000270"},
	{"셀트리온", "068270"},
	{"NAVER", "035420"},
	{"네이버", "035420"},
	{"카카오", "035720"},
	{"POSCO홀딩스", "005490"},
	{"LG화학", "051910"},
	{"삼성SDI", "006400"},
	{"KB금융", "105560"},
	{"신한지주", "055550"},
	{"현대모비스", "012330"},
	{"삼성물산", "028260"},
	{"삼성전자우", "005935"},
}

// PeriodDays maps a period code to calendar days
var PeriodDays = map[string]int{
	"1W": 7,
	"1M": 30,
	"3M": 90,
	"6M": 180,
	"1Y": 365,
}

const defaultDays = 30

// TickerFor returns the ticker of a major stock. The name is NFC
// normalized so decomposed Hangul input still matches.
func TickerFor(name string) (string, bool) {
	n := norm.NFC.String(strings.TrimSpace(name))
	for _, s := range MajorStocks {
		if s.Name == n {
			return s.Ticker, true
		}
	}
	return "", false
}

// window returns the day count and the YYYYMMDD start and end of a period
// ending at now.
func window(period string, now time.Time) (int, string, string) {
	days, ok := PeriodDays[strings.ToUpper(period)]
	if !ok {
		days = defaultDays
	}
	return days, now.AddDate(0, 0, -days).Format("20060102"), now.Format("20060102")
}

func majorStockList(limit int) string {
	var b strings.Builder
	for i, s := range MajorStocks {
		if i == limit {
			break
		}
		fmt.Fprintf(&b, "- %s: %s\n", s.Name, s.Ticker)
	}
	if len(MajorStocks) > limit {
		fmt.Fprintf(&b, "... 외 %d개", len(MajorStocks)-limit)
	}
	return strings.TrimRight(b.String(), "\n")
}

// groupThousands formats n with comma separators
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
