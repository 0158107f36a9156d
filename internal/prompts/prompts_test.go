package prompts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func TestTickerFor(t *testing.T) {
	ticker, ok := TickerFor("삼성전자")
	assert.True(t, ok)
	assert.Equal(t, "005930", ticker)

	ticker, ok = TickerFor(norm.NFD.String("카카오"))
	assert.True(t, ok, "decomposed Hangul should match")
	assert.Equal(t, "035720", ticker)

	_, ok = TickerFor("없는회사")
	assert.False(t, ok)
}

func TestAnalyzeStockByName_Known(t *testing.T) {
	out := AnalyzeStockByName("삼성전자", "3M", "price", fixedNow)
	assert.Contains(t, out, "005930")
	assert.Contains(t, out, `get_stock_ohlcv(ticker="005930", start_date="20231216", end_date="20240315")`)
	assert.Contains(t, out, "최근 90일")
	assert.NotContains(t, out, "%!")
}

func TestAnalyzeStockByName_Types(t *testing.T) {
	out := AnalyzeStockByName("SK하이닉스", "1M", "fundamental", fixedNow)
	assert.Contains(t, out, `get_market_fundamental_by_date(ticker="000660", start_date="20240214", end_date="20240315")`)
	assert.NotContains(t, out, "%!")

	out = AnalyzeStockByName("SK하이닉스", "1W", "investor", fixedNow)
	assert.Contains(t, out, `get_market_trading_value_by_investor(ticker="000660", start_date="20240308", end_date="20240315")`)
	assert.NotContains(t, out, "%!")
}

func TestAnalyzeStockByName_UnknownNeedsLookup(t *testing.T) {
	out := AnalyzeStockByName("에코프로", "1M", "price", fixedNow)
	assert.Contains(t, out, "티커 미확인")
	assert.Contains(t, out, `get_market_ticker_list(date="20240315", market="KOSPI")`)
	assert.Contains(t, out, `get_market_ticker_list(date="20240315", market="KOSDAQ")`)
	assert.Contains(t, out, "- 삼성전자: 005930")
	assert.Contains(t, out, "... 외 8개")
	assert.NotContains(t, out, "%!")
}

func TestAnalyzeStockByName_UnknownPeriodFallsBack(t *testing.T) {
	out := AnalyzeStockByName("삼성전자", "2Y", "price", fixedNow)
	assert.Contains(t, out, "최근 30일")
}

func TestAnalyzeInvestorFlow(t *testing.T) {
	out := AnalyzeInvestorFlow("삼성전자", "1M", "foreign", fixedNow)
	assert.Contains(t, out, "외국인 수급")
	assert.Contains(t, out, `get_market_trading_value_by_date(ticker="005930", start_date="20240214", end_date="20240315")`)
	assert.NotContains(t, out, "%!")

	out = AnalyzeInvestorFlow("삼성전자", "1M", "martians", fixedNow)
	assert.Contains(t, out, "전체 투자자")

	out = AnalyzeInvestorFlow("모르는종목", "1M", "all", fixedNow)
	assert.Contains(t, out, "티커 미확인")
	assert.NotContains(t, out, "%!")
}

func TestScreenUndervaluedStocks(t *testing.T) {
	out := ScreenUndervaluedStocks(8.5, 0.8, "ALL", 5000, "PBR", fixedNow)
	assert.Contains(t, out, "PER ≤ 8.5")
	assert.Contains(t, out, "PBR ≤ 0.8")
	assert.Contains(t, out, "5,000억원")
	assert.Contains(t, out, `get_market_ticker_list(date="20240315", market="KOSPI")`)
	assert.Contains(t, out, `get_market_ticker_list(date="20240315", market="KOSDAQ")`)
	assert.NotContains(t, out, "%!")

	out = ScreenUndervaluedStocks(10, 1, "KOSDAQ", 1000, "PER", fixedNow)
	assert.NotContains(t, out, `market="KOSPI"`)
}

func TestPromptRender_Defaults(t *testing.T) {
	p, ok := Lookup("screen_undervalued_stocks")
	require.True(t, ok)

	out, err := p.Render(nil, fixedNow)
	require.NoError(t, err)
	assert.Contains(t, out, "PER ≤ 10")
	assert.Contains(t, out, "시장: KOSPI")
	assert.Contains(t, out, "1,000억원")

	_, err = p.Render(map[string]string{"max_per": "cheap"}, fixedNow)
	assert.ErrorContains(t, err, "max_per")
}

func TestPromptRender_MissingRequired(t *testing.T) {
	p, ok := Lookup("analyze_stock_by_name")
	require.True(t, ok)

	_, err := p.Render(map[string]string{"period": "1M"}, fixedNow)
	assert.ErrorContains(t, err, "stock_name")
}

func TestAllPromptNames(t *testing.T) {
	var names []string
	for _, p := range All() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"analyze_stock_by_name", "analyze_investor_flow", "screen_undervalued_stocks"}, names)

	_, ok := Lookup("prompt_analyze_stock_by_name")
	assert.False(t, ok)
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "0", groupThousands(0))
	assert.Equal(t, "999", groupThousands(999))
	assert.Equal(t, "1,000", groupThousands(1000))
	assert.Equal(t, "12,345,678", groupThousands(12345678))
	assert.Equal(t, "-1,000", groupThousands(-1000))
}
