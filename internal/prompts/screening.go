package prompts

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ScreenUndervaluedStocks builds a low PER/PBR screening workflow
func ScreenUndervaluedStocks(maxPER, maxPBR float64, market string, minMarketCap int, sortBy string, now time.Time) string {
	today := now.Format("20060102")
	per := strconv.FormatFloat(maxPER, 'f', -1, 64)
	pbr := strconv.FormatFloat(maxPBR, 'f', -1, 64)

	markets := []string{market}
	if market == "ALL" {
		markets = []string{"KOSPI", "KOSDAQ"}
	}

	var listing strings.Builder
	for _, m := range markets {
		fmt.Fprintf(&listing, "    get_market_ticker_list(date=%q, market=%q)\n", today, m)
	}

	return fmt.Sprintf(screenTemplate,
		per, pbr, market, groupThousands(minMarketCap), sortBy,
		strings.Join(markets, ", "), listing.String(),
		today, today, today,
		per, pbr, minMarketCap,
		sortBy,
		today,
		per, pbr)
}

const screenTemplate = `아래 조건으로 저평가 종목을 찾아 주세요.

**조건**
- PER ≤ %s
- PBR ≤ %s
- 시장: %s
- 최소 시가총액: %s억원
- 정렬: %s

**1. 종목 목록** (%s)

%s
**2. 시가총액으로 먼저 거르기**

시장 전체 시세에는 시가총액이 없으므로 종목별로 확인합니다. 호출 수가 많으니 목록을 나눠 천천히 진행하세요.

    get_market_cap_by_date(ticker=<티커>, start_date="%s", end_date="%s")

**3. 밸류에이션 지표**

남은 종목마다:

    get_market_fundamental_by_date(ticker=<티커>, start_date="%s", end_date=<같은 날짜>)

**4. 필터**
- 0 < PER ≤ %s
- 0 < PBR ≤ %s
- 시가총액 ≥ %d억원
- EPS > 0 (적자 기업 제외)

**5. 정렬과 선별**

%s 오름차순으로 정렬한 뒤 상위 30개를 고릅니다. 종목명은 get_market_ticker_name으로 채웁니다.

| 순위 | 종목명 | 티커 | PER | PBR | EPS | 시가총액 |
|---|---|---|---|---|---|---|

**6. 추가 확인 (선택)**
- 1위 종목의 최근 한 달 주가: get_stock_ohlcv(ticker=<티커>, start_date=<한 달 전>, end_date="%s")
- 저PER 종목이 특정 업종에 몰려 있는지

**해석할 때 주의할 점**
1. 진짜 저평가: 시장이 놓친 우량 기업
2. 밸류 트랩: 이익이 급감해 PER이 낮아진 경우
3. 구조적 문제: 사양 산업이나 지배구조 위험

PER %s 이하는 이익 대비, PBR %s 이하는 순자산 대비 싸다는 뜻입니다. 두 조건을 모두 만족하는 종목이 가치 투자 후보입니다.
다음 단계로 최근 뉴스, 재무제표, 업종 전망을 확인해 주세요.
`
