package receipt

import "strings"

// Recommendation is an expense classification derived from the merchant name.
type Recommendation struct {
	// Label is the short display label, e.g. "Taxi" or "Gas".
	Label string
	// Category is the accounting category the label maps to.
	Category string
	// TwoLine reports whether the fee note uses the two-line format
	// (label plus merchant).
	TwoLine bool
}

type expenseRule struct {
	keywords []string
	category string
	label    string
	twoLine  bool
}

var expenseRules = []expenseRule{
	{
		keywords: []string{"파이낸셜", "네이버파이낸셜"},
		category: "办公费(Office expenses)",
		label:    "Office expense",
		twoLine:  true,
	},
	{
		keywords: []string{"텔레콤", "통신", "KT", "SKT", "LGU"},
		category: "通讯费(Communication service fee)",
		label:    "Telecom",
		twoLine:  true,
	},
	{
		keywords: []string{"흥덕", "식당", "레스토랑", "카페", "음식", "투다리", "치킨", "피자"},
		category: "业务招待(Entertainment expenses)",
		label:    "Business meal",
		twoLine:  true,
	},
	{
		keywords: []string{"카카오모빌리티", "택시", "DIDI", "Taxi", "taxi"},
		category: "市内交通(Traffic expense in base city)",
		label:    "Taxi",
	},
	{
		keywords: []string{"스타한국물류", "물류", "택배", "배송", "CJ대한통운"},
		category: "快递费(Express fee)",
		label:    "Express",
	},
	{
		keywords: []string{"하이패스", "도로공사", "순환도로", "하이웨이", "톨게이트"},
		category: "车辆费(Vehicle expense)",
		label:    "Tallgate(ETC)",
	},
	{
		keywords: []string{"주유소", "에너지", "GS칼텍스", "현대오일"},
		category: "车辆费(Vehicle expense)",
		label:    "Gas",
	},
}

// knownLabels are labels the downstream expense tool recognizes directly; a
// merchant already set to one of these needs no recommendation.
var knownLabels = map[string]bool{
	"Gas":      true,
	"Tallgate": true,
	"Highpass": true,
	"Taxi":     true,
	"Express":  true,
	"Telecom":  true,
}

// RecommendExpense classifies a merchant by keyword matching. It returns
// false when no rule matches or the merchant is already a known label.
func RecommendExpense(merchant string) (Recommendation, bool) {
	trimmed := strings.TrimSpace(merchant)
	if knownLabels[trimmed] {
		return Recommendation{}, false
	}
	for _, rule := range expenseRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(trimmed, keyword) {
				return Recommendation{
					Label:    rule.label,
					Category: rule.category,
					TwoLine:  rule.twoLine,
				}, true
			}
		}
	}
	return Recommendation{}, false
}
