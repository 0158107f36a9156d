package krx

import (
	"context"
	"fmt"
	"net/url"

	"github.com/bobmcallan/krxdata/internal/models"
)

// field maps a portal response key to a column.
type field struct {
	key  string
	name string
	kind models.Kind
}

// endpoint describes one portal screen and the shape of its rows.
type endpoint struct {
	bld   string
	block string
	index field
	cols  []field
}

var (
	dateIndex   = field{"TRD_DD", "날짜", models.KindDate}
	tickerIndex = field{"ISU_SRT_CD", "티커", models.KindString}
	shortIndex  = field{"ISU_CD", "티커", models.KindString}
)

var (
	// 개별종목 시세 추이
	stockDaily = endpoint{
		bld:   statPrefix + "MDCSTAT01701",
		block: "output",
		index: dateIndex,
		cols: []field{
			{"TDD_OPNPRC", "시가", models.KindInt},
			{"TDD_HGPRC", "고가", models.KindInt},
			{"TDD_LWPRC", "저가", models.KindInt},
			{"TDD_CLSPRC", "종가", models.KindInt},
			{"ACC_TRDVOL", "거래량", models.KindInt},
			{"ACC_TRDVAL", "거래대금", models.KindInt},
			{"FLUC_RT", "등락률", models.KindFloat},
		},
	}

	stockCap = endpoint{
		bld:   statPrefix + "MDCSTAT01701",
		block: "output",
		index: dateIndex,
		cols: []field{
			{"MKTCAP", "시가총액", models.KindInt},
			{"ACC_TRDVOL", "거래량", models.KindInt},
			{"ACC_TRDVAL", "거래대금", models.KindInt},
			{"LIST_SHRS", "상장주식수", models.KindInt},
		},
	}

	// 개별종목 PER/PBR/배당수익률
	stockFundamental = endpoint{
		bld:   statPrefix + "MDCSTAT03502",
		block: "output",
		index: dateIndex,
		cols: []field{
			{"BPS", "BPS", models.KindInt},
			{"PER", "PER", models.KindFloat},
			{"PBR", "PBR", models.KindFloat},
			{"EPS", "EPS", models.KindInt},
			{"DVD_YLD", "DIV", models.KindFloat},
			{"DPS", "DPS", models.KindInt},
		},
	}

	// 투자자별 거래실적 개별종목 일별추이
	stockValueByDate = endpoint{
		bld:   statPrefix + "MDCSTAT02303",
		block: "output",
		index: dateIndex,
		cols: []field{
			{"TRDVAL1", "기관합계", models.KindInt},
			{"TRDVAL2", "기타법인", models.KindInt},
			{"TRDVAL3", "개인", models.KindInt},
			{"TRDVAL4", "외국인합계", models.KindInt},
			{"TRDVAL_TOT", "전체", models.KindInt},
		},
	}

	// 전종목 시세
	marketSnapshot = endpoint{
		bld:   statPrefix + "MDCSTAT01501",
		block: "OutBlock_1",
		index: tickerIndex,
		cols: []field{
			{"TDD_OPNPRC", "시가", models.KindInt},
			{"TDD_HGPRC", "고가", models.KindInt},
			{"TDD_LWPRC", "저가", models.KindInt},
			{"TDD_CLSPRC", "종가", models.KindInt},
			{"ACC_TRDVOL", "거래량", models.KindInt},
			{"ACC_TRDVAL", "거래대금", models.KindInt},
			{"FLUC_RT", "등락률", models.KindFloat},
		},
	}

	// 전종목 등락률
	priceChange = endpoint{
		bld:   statPrefix + "MDCSTAT01602",
		block: "OutBlock_1",
		index: tickerIndex,
		cols: []field{
			{"ISU_ABBRV", "종목명", models.KindString},
			{"BAS_PRC", "시가", models.KindInt},
			{"TDD_CLSPRC", "종가", models.KindInt},
			{"CMPPREVDD_PRC", "변동폭", models.KindInt},
			{"FLUC_RT", "등락률", models.KindFloat},
			{"ACC_TRDVOL", "거래량", models.KindInt},
			{"ACC_TRDVAL", "거래대금", models.KindInt},
		},
	}

	// ETF 개별종목 시세 추이
	etfDaily = endpoint{
		bld:   statPrefix + "MDCSTAT04501",
		block: "output",
		index: dateIndex,
		cols: []field{
			{"LST_NAV", "NAV", models.KindFloat},
			{"TDD_OPNPRC", "시가", models.KindInt},
			{"TDD_HGPRC", "고가", models.KindInt},
			{"TDD_LWPRC", "저가", models.KindInt},
			{"TDD_CLSPRC", "종가", models.KindInt},
			{"ACC_TRDVOL", "거래량", models.KindInt},
			{"ACC_TRDVAL", "거래대금", models.KindInt},
			{"OBJ_STKPRC_IDX", "기초지수", models.KindFloat},
		},
	}

	// ETF 전종목 시세
	etfSnapshot = endpoint{
		bld:   statPrefix + "MDCSTAT04301",
		block: "output",
		index: tickerIndex,
		cols: []field{
			{"ISU_ABBRV", "종목명", models.KindString},
		},
	}

	// 개별지수 시세 추이
	indexDaily = endpoint{
		bld:   statPrefix + "MDCSTAT00301",
		block: "output",
		index: dateIndex,
		cols: []field{
			{"OPNPRC_IDX", "시가", models.KindFloat},
			{"HGPRC_IDX", "고가", models.KindFloat},
			{"LWPRC_IDX", "저가", models.KindFloat},
			{"CLSPRC_IDX", "종가", models.KindFloat},
			{"ACC_TRDVOL", "거래량", models.KindInt},
			{"ACC_TRDVAL", "거래대금", models.KindInt},
			{"MKTCAP", "상장시가총액", models.KindInt},
		},
	}

	// 전체지수 PER/PBR/배당수익률
	indexFundamentalAll = endpoint{
		bld:   statPrefix + "MDCSTAT00701",
		block: "output",
		index: field{"IDX_NM", "지수명", models.KindString},
		cols: []field{
			{"CLSPRC_IDX", "종가", models.KindFloat},
			{"FLUC_RT", "등락률", models.KindFloat},
			{"WT_PER", "PER", models.KindFloat},
			{"WT_STKPRC_NETASST_RTO", "PBR", models.KindFloat},
			{"DIV_YD", "배당수익률", models.KindFloat},
		},
	}

	// 개별지수 PER/PBR/배당수익률 추이
	indexFundamentalDaily = endpoint{
		bld:   statPrefix + "MDCSTAT00702",
		block: "output",
		index: dateIndex,
		cols: []field{
			{"CLSPRC_IDX", "종가", models.KindFloat},
			{"FLUC_RT", "등락률", models.KindFloat},
			{"WT_PER", "PER", models.KindFloat},
			{"WT_STKPRC_NETASST_RTO", "PBR", models.KindFloat},
			{"DIV_YD", "배당수익률", models.KindFloat},
		},
	}

	// 지수구성종목
	indexConstituents = endpoint{
		bld:   statPrefix + "MDCSTAT00601",
		block: "output",
		index: tickerIndex,
		cols: []field{
			{"ISU_ABBRV", "종목명", models.KindString},
		},
	}

	// 개별종목 공매도 종합정보
	shortingStatus = endpoint{
		bld:   statPrefix + "MDCSTAT30001",
		block: "OutBlock_1",
		index: dateIndex,
		cols: []field{
			{"CVSRTSELL_TRDVOL", "공매도", models.KindInt},
			{"STR_CONST_VAL1", "잔고", models.KindInt},
			{"CVSRTSELL_TRDVAL", "공매도금액", models.KindInt},
			{"STR_CONST_VAL2", "잔고금액", models.KindInt},
		},
	}

	// 전종목 공매도 거래
	shortingVolume = endpoint{
		bld:   statPrefix + "MDCSTAT30101",
		block: "OutBlock_1",
		index: shortIndex,
		cols: []field{
			{"CVSRTSELL_TRDVOL", "공매도", models.KindInt},
			{"ACC_TRDVOL", "매수", models.KindInt},
			{"TRDVOL_WT", "비중", models.KindFloat},
		},
	}

	// 공매도 거래 상위 50
	shortingVolumeTop = endpoint{
		bld:   statPrefix + "MDCSTAT30801",
		block: "OutBlock_1",
		index: shortIndex,
		cols: []field{
			{"RANK", "순위", models.KindInt},
			{"CVSRTSELL_TRDVAL", "공매도거래대금", models.KindInt},
			{"ACC_TRDVAL", "총거래대금", models.KindInt},
			{"TRDVAL_WT", "공매도비중", models.KindFloat},
		},
	}

	// 공매도 잔고 상위 50
	shortingBalanceTop = endpoint{
		bld:   statPrefix + "MDCSTAT30901",
		block: "OutBlock_1",
		index: shortIndex,
		cols: []field{
			{"RANK", "순위", models.KindInt},
			{"BAL_QTY", "공매도잔고", models.KindInt},
			{"LIST_SHRS", "상장주식수", models.KindInt},
			{"BAL_AMT", "공매도금액", models.KindInt},
			{"MKTCAP", "시가총액", models.KindInt},
			{"BAL_RTO", "비중", models.KindFloat},
		},
	}

	// 투자자별 거래실적 (개별종목 / 시장 기간합계)
	investorTicker = investorEndpoint(statPrefix + "MDCSTAT02301")
	investorMarket = investorEndpoint(statPrefix + "MDCSTAT02201")

	// 투자자별 순매수상위종목
	netPurchases = endpoint{
		bld:   statPrefix + "MDCSTAT02401",
		block: "output",
		index: tickerIndex,
		cols: []field{
			{"ISU_NM", "종목명", models.KindString},
			{"ASK_TRDVOL", "매도거래량", models.KindInt},
			{"BID_TRDVOL", "매수거래량", models.KindInt},
			{"NETBID_TRDVOL", "순매수거래량", models.KindInt},
			{"ASK_TRDVAL", "매도거래대금", models.KindInt},
			{"BID_TRDVAL", "매수거래대금", models.KindInt},
			{"NETBID_TRDVAL", "순매수거래대금", models.KindInt},
		},
	}

	foreignCols = []field{
		{"LIST_SHRS", "상장주식수", models.KindInt},
		{"FORN_HD_QTY", "보유수량", models.KindInt},
		{"FORN_SHR_RT", "지분율", models.KindFloat},
		{"FORN_ORD_LMT_QTY", "한도수량", models.KindInt},
		{"FORN_LMT_EXHST_RT", "한도소진률", models.KindFloat},
	}

	// 외국인보유량 (전종목 / 개별종목 추이)
	foreignAll    = endpoint{bld: statPrefix + "MDCSTAT03701", block: "output", index: tickerIndex, cols: foreignCols}
	foreignByDate = endpoint{bld: statPrefix + "MDCSTAT03702", block: "output", index: dateIndex, cols: foreignCols}
)

// investorEndpoint carries both volume and value fields; the caller picks
// one set with investorColumns.
func investorEndpoint(bld string) endpoint {
	return endpoint{
		bld:   bld,
		block: "output",
		index: field{"INVST_TP_NM", "투자자구분", models.KindString},
	}
}

func investorColumns(byValue bool) []field {
	if byValue {
		return []field{
			{"ASK_TRDVAL", "매도", models.KindInt},
			{"BID_TRDVAL", "매수", models.KindInt},
			{"NETBID_TRDVAL", "순매수", models.KindInt},
		}
	}
	return []field{
		{"ASK_TRDVOL", "매도", models.KindInt},
		{"BID_TRDVOL", "매수", models.KindInt},
		{"NETBID_TRDVOL", "순매수", models.KindInt},
	}
}

// fetch requests an endpoint and builds its table. Date-indexed tables are
// returned oldest first.
func (c *Client) fetch(ctx context.Context, ep endpoint, params url.Values) (*models.Table, error) {
	rows, err := c.rows(ctx, ep.bld, ep.block, params)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(ep.cols))
	for i, f := range ep.cols {
		names[i] = f.name
	}
	t := models.NewTable(ep.index.name, names...)

	for n, row := range rows {
		key, err := parseCell(row[ep.index.key], ep.index.kind)
		if err != nil {
			return nil, fmt.Errorf("%s row %d %s: %w", ep.bld, n, ep.index.key, err)
		}
		values := make([]models.Value, len(ep.cols))
		for i, f := range ep.cols {
			if values[i], err = parseCell(row[f.key], f.kind); err != nil {
				return nil, fmt.Errorf("%s row %d %s: %w", ep.bld, n, f.key, err)
			}
		}
		t.Append(key, values...)
	}

	if ep.index.kind == models.KindDate {
		sortByDate(t)
	}
	return t, nil
}

// marketID maps a market name to the portal's mktId.
func marketID(market string) string {
	switch market {
	case "KOSPI":
		return "STK"
	case "KOSDAQ":
		return "KSQ"
	case "KONEX":
		return "KNX"
	default:
		return "ALL"
	}
}

// marketTypeCode maps a market name to the shorting screens' mktTpCd.
func marketTypeCode(market string) string {
	switch market {
	case "KOSDAQ":
		return "2"
	case "KONEX":
		return "6"
	default:
		return "1"
	}
}

// indexListing is the all-index daily quote screen.
const indexListing = statPrefix + "MDCSTAT00101"

// indexListingCode maps a market name to the all-index screen's group code.
func indexListingCode(market string) string {
	if market == "KOSDAQ" {
		return "03"
	}
	return "02"
}

// indexMarketCode maps a market name to the index screens' group code.
func indexMarketCode(market string) string {
	if market == "KOSDAQ" {
		return "2"
	}
	return "1"
}

// investorCodes maps investor categories to the portal's invstTpCd.
var investorCodes = map[string]string{
	"금융투자":  "1000",
	"보험":    "2000",
	"투신":    "3000",
	"사모":    "3100",
	"은행":    "4000",
	"기타금융":  "5000",
	"연기금":   "6000",
	"기관합계":  "7050",
	"기타법인":  "7100",
	"개인":    "8000",
	"외국인":   "9000",
	"기타외국인": "9001",
	"전체":    "9999",
}
