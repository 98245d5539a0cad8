package scraper

import "testing"

func TestClassifySentiment(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"green check icon", `<i class="a-icon a-icon-check" style="color:#067d62"></i>`, "positive"},
		{"orange minus icon", `<i class="a-icon" style="color:#f09300">−</i>`, "negative"},
		{"positive wins over negative", `<span class="green">check</span><span>minus</span>`, "positive"},
		{"case insensitive", `<span>GREEN</span>`, "positive"},
		{"no indicators", `<div><span>312</span> mentions</div>`, "neutral"},
		{"empty markup", ``, "neutral"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifySentiment(tt.markup); got != tt.want {
				t.Errorf("ClassifySentiment() = %q; want %q", got, tt.want)
			}
		})
	}
}
