package amazon

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Adapter implements the shared scraper capability set for Amazon-style
// product pages. Selectors follow the data-hook convention Amazon uses for
// review widgets; everything else is best-effort with sentinel fallbacks.
type Adapter struct {
	BaseURL string

	// settle is the pause after interaction-driven content refreshes.
	settle time.Duration
	// regionWait bounds the wait for an aspect region to materialize.
	regionWait time.Duration
}

func New(baseURL string) *Adapter {
	return &Adapter{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		settle:     2 * time.Second,
		regionWait: 8 * time.Second,
	}
}

func (a *Adapter) Name() string { return "amazon" }

func parseMarkup(markup string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(markup))
}

// ContentMarker accepts either the product page container or a review block.
func (a *Adapter) ContentMarker(markup string) bool {
	doc, err := parseMarkup(markup)
	if err != nil {
		return false
	}
	return doc.Find(`#productTitle, #ppd, [data-hook="review"]`).Length() > 0
}
