package utils

import "testing"

func TestFindAssociatedNumber(t *testing.T) {
	testCases := []struct {
		name     string
		markup   string
		keyword  string
		expected string
	}{
		{"Number in enclosing block", `<div>positive <span>87%</span></div>`, "positive", "87%"},
		{"Grouped count", `<div><span>1,234 customers said positive things</span></div>`, "positive", "1,234"},
		{"Keyword missing", `<div>nothing relevant here</div>`, "positive", "N/A"},
		{"Keyword but no digits", `<div><span>mostly positive</span><span>feedback</span></div>`, "positive", "N/A"},
		{"Preceding sibling fallback", `<div><span>42</span><p>positive mentions</p></div>`, "positive", "42"},
		{"Following sibling fallback", `<div><p>negative mentions</p><span>17%</span></div>`, "negative", "17%"},
		{"Case insensitive keyword", `<div>Positive <b>9</b></div>`, "positive", "9"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FindAssociatedNumber(tc.markup, tc.keyword)
			if got != tc.expected {
				t.Errorf("FindAssociatedNumber(%q, %q) = %q; want %q", tc.markup, tc.keyword, got, tc.expected)
			}
		})
	}
}

// The block text wins over closer siblings outside the block; this pins the
// fallback order rather than a distance metric.
func TestFindAssociatedNumberPrefersEnclosingBlock(t *testing.T) {
	markup := `<div><span>99</span></div><div><p>positive <em>12</em></p></div>`
	if got := FindAssociatedNumber(markup, "positive"); got != "12" {
		t.Errorf("got %q; want %q", got, "12")
	}
}
