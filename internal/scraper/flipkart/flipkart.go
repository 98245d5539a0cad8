package flipkart

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Adapter implements the shared scraper capability set for Flipkart-style
// product pages. Flipkart ships obfuscated class names that rotate between
// deployments, so every selector here is best-effort and falls back to
// sentinels.
type Adapter struct {
	BaseURL string

	settle     time.Duration
	regionWait time.Duration
}

func New(baseURL string) *Adapter {
	return &Adapter{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		settle:     2 * time.Second,
		regionWait: 8 * time.Second,
	}
}

func (a *Adapter) Name() string { return "flipkart" }

func parseMarkup(markup string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(markup))
}

// ContentMarker accepts the rating widget, a review block or the listing grid.
func (a *Adapter) ContentMarker(markup string) bool {
	doc, err := parseMarkup(markup)
	if err != nil {
		return false
	}
	return doc.Find(`div.ipqd2A, div.EKFha-, a.wjcEIp`).Length() > 0
}
