package prompts

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

var focusLabels = map[string]string{
	"foreign":     "외국인",
	"institution": "기관",
	"individual":  "개인",
	"all":         "전체 투자자",
}

// AnalyzeInvestorFlow builds a supply/demand workflow for one stock
func AnalyzeInvestorFlow(stockName, period, focusInvestor string, now time.Time) string {
	name := norm.NFC.String(strings.TrimSpace(stockName))
	days, start, end := window(period, now)

	focus, ok := focusLabels[strings.ToLower(focusInvestor)]
	if !ok {
		focus = focusLabels["all"]
	}

	ticker, ok := TickerFor(name)
	if !ok {
		return fmt.Sprintf(flowLookupTemplate, name, focus, name, period, end, name, end)
	}
	return fmt.Sprintf(flowTemplate,
		name, focus,
		name, ticker, period, days, focus,
		ticker, start, end,
		ticker, start, end,
		ticker, start, end,
		period)
}

const flowTemplate = `%s %s 수급 분석을 아래 순서로 진행해 주세요.

**종목**
- 종목명: %s
- 티커: %s
- 기간: %s (최근 %d일)
- 집중 대상: %s

**1. 투자자 매매 데이터**

일별 투자자 순매수:

    get_market_trading_value_by_date(ticker="%s", start_date="%s", end_date="%s")

기간 합계(매도, 매수, 순매수):

    get_market_trading_value_by_investor(ticker="%s", start_date="%s", end_date="%s")

**2. 주가 데이터**

    get_stock_ohlcv(ticker="%s", start_date="%s", end_date="%s")

**3. 투자자별 분석**

외국인
- 누적 순매수 금액
- 보유 비중 변화 (get_exhaustion_rates_of_foreign_investment)
- 주가와의 동행 여부

기관
- 연기금, 보험, 투신 등 세부 주체의 방향
- 순매수 규모와 지속 기간

개인
- 순매수 방향
- 주가 하락 시 매수, 상승 시 매도하는 역추세 성향

**4. 시각화**
- 종가와 투자자별 누적 순매수를 겹친 이중 축 차트
- 투자자별 일별 순매수 막대 차트 (단위: 억원, 양수는 순매수)

**5. 정리**
1. 최근 %s 동안 매수를 주도한 주체는 누구인가?
2. 외국인과 기관의 방향이 같은가?
3. 수급과 주가는 얼마나 같이 움직였나?
4. 최근 수급이 바뀐 시점이 있는가?

참고: 외국인과 기관이 함께 사면 강세 신호로, 개인만 사는 구간은 주의 신호로 보는 경우가 많습니다.
`

const flowLookupTemplate = `%s %s 수급 분석을 아래 순서로 진행해 주세요.

**종목**
- 종목명: %s (티커 미확인)
- 기간: %s

**1. 티커 찾기**

    get_market_ticker_list(date="%s", market="KOSPI")

목록의 티커를 get_market_ticker_name(ticker=...)으로 확인해 "%s"와 일치하는 티커를 찾습니다.
KOSPI에 없으면 KOSDAQ 목록에서 찾습니다.

    get_market_ticker_list(date="%s", market="KOSDAQ")

**2. 티커를 찾은 뒤**

get_market_trading_value_by_date, get_market_trading_value_by_investor, get_stock_ohlcv로
투자자별 매매와 주가를 가져와 외국인, 기관, 개인의 수급을 비교해 주세요.
`
