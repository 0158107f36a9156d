package prompts

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// AnalyzeStockByName builds a stock analysis workflow. Known names get a
// direct workflow; unknown names get a ticker lookup step first.
func AnalyzeStockByName(stockName, period, analysisType string, now time.Time) string {
	name := norm.NFC.String(strings.TrimSpace(stockName))
	days, start, end := window(period, now)

	ticker, ok := TickerFor(name)
	if !ok {
		return fmt.Sprintf(stockLookupTemplate,
			name, name, period, days,
			end, name, end,
			start, end, name, majorStockList(10))
	}

	switch strings.ToLower(analysisType) {
	case "fundamental":
		return fmt.Sprintf(stockFundamentalTemplate, name, name, ticker, ticker, start, end)
	case "investor":
		return fmt.Sprintf(stockInvestorTemplate, name, name, ticker, period, ticker, start, end, ticker, start, end, ticker, start, end)
	default:
		return fmt.Sprintf(stockPriceTemplate, name, name, ticker, period, days, ticker, start, end)
	}
}

const stockPriceTemplate = `%s 주가 분석을 아래 순서로 진행해 주세요.

**종목**
- 종목명: %s
- 티커: %s
- 기간: %s (최근 %d일)

**1. 가격 데이터 가져오기**

    get_stock_ohlcv(ticker="%s", start_date="%s", end_date="%s")

**2. 분석**
- 기간 최고가와 최저가
- 기간 시작 대비 수익률
- 평균 거래량과 거래량이 급증한 날
- 큰 변동이 있었던 날짜

**3. 시각화**
- 캔들 차트 또는 종가 라인 차트
- 하단에 거래량 막대
- 5일, 20일, 60일 이동평균선

**4. 정리**
- 추세: 상승, 하락 또는 횡보
- 변동성 수준
- 거래량 패턴이 말해주는 것
`

const stockFundamentalTemplate = `%s 밸류에이션 분석을 아래 순서로 진행해 주세요.

**종목**
- 종목명: %s
- 티커: %s

**1. 지표 가져오기**

    get_market_fundamental_by_date(ticker="%s", start_date="%s", end_date="%s")

**2. 지표 읽기**
- PER 추이
- PBR 추이
- EPS 변화
- 배당수익률(DIV)

**3. 비교**
- 같은 업종 종목과 비교
- 과거 평균 대비 현재 위치

**4. 의견**
- 저평가, 적정, 고평가 중 어디에 가까운지
- 확인이 필요한 위험 요인
`

const stockInvestorTemplate = `%s 투자자별 수급 분석을 아래 순서로 진행해 주세요.

**종목**
- 종목명: %s
- 티커: %s
- 기간: %s

**1. 일별 투자자 매매 가져오기**

    get_market_trading_value_by_date(ticker="%s", start_date="%s", end_date="%s")

**2. 기간 합계 가져오기**

    get_market_trading_value_by_investor(ticker="%s", start_date="%s", end_date="%s")

**3. 같은 기간 주가**

    get_stock_ohlcv(ticker="%s", start_date="%s", end_date="%s")

**4. 분석**
- 외국인 누적 순매수
- 기관 매매 방향과 지속성
- 개인 매매 패턴
- 수급과 주가의 상관관계

**5. 시각화**
- 주가와 누적 순매수를 겹친 이중 축 차트
- 투자자별 일별 순매수 막대 차트
`

const stockLookupTemplate = `%s 주가 분석을 아래 순서로 진행해 주세요.

**종목**
- 종목명: %s (티커 미확인)
- 기간: %s (최근 %d일)

**1. 티커 찾기**

KOSPI 종목 목록부터 확인합니다.

    get_market_ticker_list(date="%s", market="KOSPI")

목록의 티커마다 get_market_ticker_name(ticker=...)으로 이름을 확인하고 "%s"와 일치하는 티커를 찾습니다.
KOSPI에 없으면 KOSDAQ에서 같은 방법으로 찾습니다.

    get_market_ticker_list(date="%s", market="KOSDAQ")

**2. 가격 데이터 가져오기**

    get_stock_ohlcv(ticker=<찾은 티커>, start_date="%s", end_date="%s")

**3. 분석과 시각화**

기간 최고가와 최저가, 수익률, 거래량 패턴, 이동평균선을 정리해 주세요.

---

다음에 바로 조회할 수 있도록 "%s"의 티커를 기억해 두세요.

**자주 찾는 종목**
%s
`
