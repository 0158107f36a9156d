package tools

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/krxdata/internal/models"
	"golang.org/x/text/unicode/norm"
)

// Market sets accepted by the operations. Each operation declares its own.
var (
	StockMarkets = []string{"KOSPI", "KOSDAQ", "KONEX"}
	AllMarkets   = []string{"KOSPI", "KOSDAQ", "KONEX", "ALL"}
	IndexMarkets = []string{"KOSPI", "KOSDAQ"}
	Frequencies  = []string{"d", "m", "y"}
	Investors    = []string{
		"금융투자", "보험", "투신", "사모", "은행", "기타금융", "연기금",
		"기관합계", "기타법인", "개인", "외국인", "기타외국인", "전체",
	}
)

func isASCIIDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ValidateTicker checks that s is exactly six ASCII digits. Leading zeros are
// significant and s is never converted to a number.
func ValidateTicker(s string) (bool, string) {
	if len(s) != 6 {
		return false, fmt.Sprintf("Ticker must be 6-digit string (e.g., '005930' for Samsung), got: '%s'", s)
	}
	if !isASCIIDigits(s) {
		return false, fmt.Sprintf("Ticker must be 6-digit numeric string (e.g., '005930'), got: '%s'", s)
	}
	return true, ""
}

// ValidateDate checks that s is exactly eight ASCII digits (YYYYMMDD).
// Calendar validity is left to the upstream source.
func ValidateDate(s string) (bool, string) {
	if len(s) != 8 || !isASCIIDigits(s) {
		return false, fmt.Sprintf("Date must be YYYYMMDD format (e.g., '20240101'), got: '%s'", s)
	}
	return true, ""
}

// matchFold returns the member of set equal to v ignoring case.
func matchFold(v string, set []string) (string, bool) {
	for _, m := range set {
		if strings.EqualFold(v, m) {
			return m, true
		}
	}
	return "", false
}

// normalizeMarket upper-cases v and checks it against set.
func normalizeMarket(v string, set []string) (string, bool) {
	return matchFold(strings.TrimSpace(v), set)
}

// normalizeInvestor matches v against the investor categories after NFC
// normalization, so decomposed Hangul input still matches.
func normalizeInvestor(v string) (string, bool) {
	n := norm.NFC.String(strings.TrimSpace(v))
	for _, inv := range Investors {
		if n == inv {
			return inv, true
		}
	}
	return "", false
}

func normalizeFrequency(v string) (string, bool) {
	return matchFold(strings.TrimSpace(v), Frequencies)
}

func invalidMarketMessage(set []string) string {
	return "Invalid market. Must be one of: " + strings.Join(set, ", ")
}

func invalidInvestorMessage() string {
	return "Invalid investor. Must be one of: " + strings.Join(Investors, ", ")
}

func invalidFrequencyMessage() string {
	return "Invalid frequency. Must be one of: " + strings.Join(Frequencies, ", ")
}

// checkTicker returns an error envelope echoing field when v is not a ticker.
func checkTicker(field, v string) *models.Record {
	if ok, msg := ValidateTicker(v); !ok {
		return ErrorEnvelope(msg, field, v)
	}
	return nil
}

// checkDate returns an error envelope echoing field when v is not a date.
func checkDate(field, v string) *models.Record {
	if ok, msg := ValidateDate(v); !ok {
		return ErrorEnvelope(msg, field, v)
	}
	return nil
}

// firstError returns the first non-nil envelope.
func firstError(envs ...*models.Record) *models.Record {
	for _, e := range envs {
		if e != nil {
			return e
		}
	}
	return nil
}
