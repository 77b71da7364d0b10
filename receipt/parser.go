package receipt

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ErrNoTransaction is returned when no known receipt layout matches the text.
var ErrNoTransaction = errors.New("no transaction found in recognized text")

// Parse extracts a transaction from recognized receipt text. The layout is
// detected from marker strings; unknown layouts fall back to trying every
// parser in turn.
func Parse(filename, text string) (Transaction, error) {
	format := DetectFormat(text)

	var (
		when     time.Time
		merchant string
		amount   uint64
		err      error
	)
	switch format {
	case FormatHanaCard:
		when, merchant, amount, err = parseHanaCard(text)
	case FormatNaverHyundai:
		when, merchant, amount, err = parseNaverHyundai(text)
	case FormatCardApp:
		when, merchant, amount, err = parseCardApp(text)
	default:
		when, merchant, amount, err = parseFallback(text)
	}
	if err != nil {
		return Transaction{}, fmt.Errorf("%s: %w", filename, err)
	}

	return Transaction{
		Filename: filename,
		Time:     when,
		Merchant: merchant,
		Amount:   amount,
		RawText:  text,
		Format:   format,
	}, nil
}

// DetectFormat guesses the receipt layout from marker strings.
func DetectFormat(text string) Format {
	switch {
	case strings.Contains(text, "하나카드") || strings.Contains(text, "거래일시"):
		return FormatHanaCard
	case strings.Contains(text, "결제 정보") || strings.Contains(text, "현대카드") ||
		strings.Contains(text, "거래 일자"):
		return FormatNaverHyundai
	case strings.Contains(text, "카드이용내역") || strings.Contains(text, "매출전표") ||
		strings.Contains(text, "상세 이용내역"):
		return FormatCardApp
	}
	return FormatUnknown
}

var (
	// 거래일시 2026.01.22 16:35:39
	hanaDateRe = regexp.MustCompile(`거래일시\s+(\d{4})[.\s](\d{2})[.\s](\d{2})\s*(\d{2}):(\d{2}):?(\d{2})?`)
	// 거래 일자 26. 1. 31 · 14:59:27
	naverDateRe  = regexp.MustCompile(`거래\s*일자\s+(\d{2})[.\s]+(\d{1,2})[.\s]+(\d{1,2})\s*[·\-:]\s*(\d{2}):(\d{2}):?(\d{2})?`)
	naverDateRe2 = regexp.MustCompile(`거래\s*일\s*자\s+(\d{2})\.\s*(\d{1,2})\.\s*(\d{1,2})\s*[·\-]\s*(\d{2}):(\d{2}):?(\d{2})?`)
	// 거래일 2026.01.23 11:59
	cardAppDateRe = regexp.MustCompile(`거래일\s+(\d{4})[.\s](\d{2})[.\s](\d{2})\s*(\d{2}):(\d{2}):?(\d{2})?`)

	amountRe = regexp.MustCompile(`([\d,]+)\s*원`)
)

// parseHanaCard handles the Hana card web receipt:
//
//	거래일시 2026.01.22 16:35:39
//	승인금액 27,600 원
//	가맹점명 네이버파이낸셜(주)
func parseHanaCard(text string) (time.Time, string, uint64, error) {
	m := hanaDateRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, "", 0, fmt.Errorf("transaction datetime not found: %w", ErrNoTransaction)
	}
	when, err := buildTime(m[1], m[2], m[3], m[4], m[5], m[6])
	if err != nil {
		return time.Time{}, "", 0, err
	}

	amount, err := amountAfterLabel(text, "승인금액")
	if err != nil {
		amount, err = firstAmount(text)
	}
	if err != nil {
		return time.Time{}, "", 0, err
	}

	merchant, ok := textAfterLabel(text, "가맹점명")
	if !ok {
		merchant = merchantBeforeAmount(text)
	}
	return when, merchant, amount, nil
}

// parseNaverHyundai handles the Naver Hyundai card app screenshot:
//
//	해진구도일주유소일산지점
//	43,489원
//	거래 일자 26. 1. 31 · 14:59:27
func parseNaverHyundai(text string) (time.Time, string, uint64, error) {
	m := naverDateRe.FindStringSubmatch(text)
	if m == nil {
		m = naverDateRe2.FindStringSubmatch(text)
	}
	if m == nil {
		return time.Time{}, "", 0, fmt.Errorf("transaction date not found: %w", ErrNoTransaction)
	}
	// Two-digit year.
	when, err := buildTime("20"+m[1], m[2], m[3], m[4], m[5], m[6])
	if err != nil {
		return time.Time{}, "", 0, err
	}

	amount, err := amountAfterLabel(text, "금액")
	if err != nil {
		amount, err = firstNonzeroAmount(text)
	}
	if err != nil {
		amount, err = firstAmount(text)
	}
	if err != nil {
		return time.Time{}, "", 0, err
	}
	return when, merchantBeforeAmount(text), amount, nil
}

// parseCardApp handles the sales-slip modal of card app screenshots:
//
//	상세 이용내역
//	스타한국물류
//	16,500원
//	거래일 2026.01.23 11:59
func parseCardApp(text string) (time.Time, string, uint64, error) {
	m := cardAppDateRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, "", 0, fmt.Errorf("transaction date not found: %w", ErrNoTransaction)
	}
	when, err := buildTime(m[1], m[2], m[3], m[4], m[5], m[6])
	if err != nil {
		return time.Time{}, "", 0, err
	}

	// Prefer the labeled supply amount, then skip zero-amount lines such as
	// 부가세 0원 / 봉사료 0원.
	amount, err := amountAfterLabel(text, "공급가액")
	if err != nil {
		amount, err = firstNonzeroAmount(text)
	}
	if err != nil {
		amount, err = firstAmount(text)
	}
	if err != nil {
		return time.Time{}, "", 0, err
	}

	merchant, ok := merchantFromCardDetail(text)
	if !ok {
		merchant, ok = textAfterLabel(text, "상세 이용내역")
	}
	if !ok {
		merchant = merchantBeforeAmount(text)
	}
	return when, merchant, amount, nil
}

func parseFallback(text string) (time.Time, string, uint64, error) {
	if when, merchant, amount, err := parseHanaCard(text); err == nil {
		return when, merchant, amount, nil
	}
	if when, merchant, amount, err := parseNaverHyundai(text); err == nil {
		return when, merchant, amount, nil
	}
	if when, merchant, amount, err := parseCardApp(text); err == nil {
		return when, merchant, amount, nil
	}
	return time.Time{}, "", 0, fmt.Errorf("unrecognized receipt layout: %w", ErrNoTransaction)
}

func buildTime(year, month, day, hour, minute, second string) (time.Time, error) {
	if second == "" {
		second = "00"
	}
	var parts [6]int
	for i, s := range []string{year, month, day, hour, minute, second} {
		n, err := strconv.Atoi(s)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse datetime field %q: %w", s, err)
		}
		parts[i] = n
	}
	return time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], 0, time.Local), nil
}

func amountAfterLabel(text, label string) (uint64, error) {
	re := regexp.MustCompile(regexp.QuoteMeta(label) + `\s+([\d,]+)\s*원`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("no amount after label %q", label)
	}
	return parseKRW(m[1])
}

func firstAmount(text string) (uint64, error) {
	m := amountRe.FindStringSubmatch(text)
	if m == nil {
		return 0, errors.New("no amount found")
	}
	return parseKRW(m[1])
}

func firstNonzeroAmount(text string) (uint64, error) {
	for _, m := range amountRe.FindAllStringSubmatch(text, -1) {
		if amount, err := parseKRW(m[1]); err == nil && amount > 0 {
			return amount, nil
		}
	}
	return 0, errors.New("no non-zero amount found")
}

func parseKRW(s string) (uint64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	amount, err := strconv.ParseUint(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return amount, nil
}

// textAfterLabel finds a value either after the label on the same line or on
// the following line.
func textAfterLabel(text, label string) (string, bool) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !strings.Contains(line, label) {
			continue
		}
		if _, after, found := strings.Cut(line, label); found {
			trimmed := strings.TrimSpace(after)
			if trimmed != "" && trimmed != "X" && trimmed != "x" {
				return trimmed, true
			}
		}
		if i+1 < len(lines) {
			if trimmed := strings.TrimSpace(lines[i+1]); trimmed != "" {
				return trimmed, true
			}
		}
	}
	return "", false
}

// nonMerchantLabels are right-panel field labels of the 상세 이용내역 popup
// that two-column recognition may intersperse between the header and the
// merchant name.
var nonMerchantLabels = []string{
	"거래구분", "승인번호", "거래상태", "이용카드", "가맹점", "공급가액",
	"부가세", "봉사료", "자원순환", "거래일", "결제확정", "일시불", "본인",
	"신용", "체크", "카드이용내역", "매출전표", "구글페이",
}

// merchantFromCardDetail extracts the merchant name from the 상세 이용내역
// popup in card app screenshots.
func merchantFromCardDetail(text string) (string, bool) {
	foundHeader := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.Contains(trimmed, "상세 이용내역") {
			foundHeader = true
			continue
		}
		if !foundHeader {
			continue
		}
		// Skip empty lines, the close button, and one-rune recognition noise.
		if trimmed == "" || trimmed == "X" || trimmed == "x" ||
			strings.HasPrefix(trimmed, "~") || len([]rune(trimmed)) <= 1 {
			continue
		}
		if containsAny(trimmed, nonMerchantLabels) {
			continue
		}
		if amountRe.MatchString(trimmed) {
			continue
		}
		if isNumericLine(trimmed) {
			continue
		}
		return trimmed, true
	}
	return "", false
}

// merchantSkipPatterns are headers, card program names and field labels that
// precede the merchant line in receipts.
var merchantSkipPatterns = []string{
	"카드이용내역", "매출전표", "상세 이용내역", "하나카드", "현대카드",
	"결제 정보", "결제 구분", "결제 카드", "금액 상세", "카드번호",
	"카드 소지자", "가상카드번호", "거래유형", "거래구분", "일시불",
	"승인번호", "승인상태", "거래상태", "이용카드", "결제확정",
	"현지승인금액", "CNY", "USD", "JPY", "EUR", "VISA", "MasterCard",
	"UnionPay", "실제 결제금액", "해외이용수수료", "가맹점 번호",
	"가맹점 상세", "대표자명", "사업자 등록번호", "업종",
}

// merchantBeforeAmount returns the last plausible merchant line seen before
// the first amount line.
func merchantBeforeAmount(text string) string {
	candidate := ""
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if amountRe.MatchString(trimmed) {
			break
		}
		if containsAny(trimmed, merchantSkipPatterns) {
			continue
		}
		if len([]rune(trimmed)) > 1 {
			candidate = trimmed
		}
	}
	return candidate
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func isNumericLine(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != ',' && r != ' ' {
			return false
		}
	}
	return true
}
