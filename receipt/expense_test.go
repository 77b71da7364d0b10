package receipt

import "testing"

func TestRecommendExpense(t *testing.T) {
	cases := []struct {
		merchant string
		label    string
		ok       bool
	}{
		{"해진구도일주유소일산지점", "Gas", true},
		{"카카오모빌리티", "Taxi", true},
		{"스타한국물류", "Express", true},
		{"네이버파이낸셜(주)", "Office expense", true},
		{"투다리 수지점", "Business meal", true},
		{"알 수 없는 가게", "", false},
		// Already a known downstream label: no recommendation needed.
		{"Taxi", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.merchant, func(t *testing.T) {
			rec, ok := RecommendExpense(tc.merchant)
			if ok != tc.ok {
				t.Fatalf("RecommendExpense(%q) ok = %v, want %v", tc.merchant, ok, tc.ok)
			}
			if ok && rec.Label != tc.label {
				t.Fatalf("label = %q, want %q", rec.Label, tc.label)
			}
		})
	}
}

func TestRecommendExpenseCarriesCategory(t *testing.T) {
	rec, ok := RecommendExpense("GS칼텍스 주유소")
	if !ok {
		t.Fatal("expected a recommendation")
	}
	if rec.Category == "" {
		t.Fatal("expected a non-empty category")
	}
	if rec.TwoLine {
		t.Fatal("gas rule should not use two-line format")
	}
}
