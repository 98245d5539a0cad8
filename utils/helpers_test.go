package utils

import "testing"

func TestCleanText(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"Punctuation stripped", "boAt Airdopes 141, TWS!", "boat airdopes 141 tws"},
		{"Already clean", "sony wh1000xm4", "sony wh1000xm4"},
		{"Only punctuation", "!!!", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanText(tc.input); got != tc.expected {
				t.Errorf("CleanText(%q) = %q; want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestExtractASIN(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"dp path", "https://www.amazon.in/boAt-Airdopes/dp/B0BTYC6P5F/ref=sr_1_3", "B0BTYC6P5F"},
		{"gp product path", "https://www.amazon.in/gp/product/B09G9BL5CP", "B09G9BL5CP"},
		{"asin query param", "https://www.amazon.in/product-reviews?asin=B0BTYC6P5F", "B0BTYC6P5F"},
		{"bare trailing segment", "https://www.amazon.in/whatever/B0BTYC6P5F", "B0BTYC6P5F"},
		{"no asin", "https://www.amazon.in/s?k=headphones", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractASIN(tc.input); got != tc.expected {
				t.Errorf("ExtractASIN(%q) = %q; want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestCreateSlug(t *testing.T) {
	if got := CreateSlug("boAt Airdopes 141"); got != "boat-airdopes-141" {
		t.Errorf("CreateSlug = %q; want %q", got, "boat-airdopes-141")
	}
}
