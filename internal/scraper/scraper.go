package scraper

import (
	"ReviewScope/internal/browser"
	"ReviewScope/internal/models"
)

// Adapter is the capability set every supported site implements. The
// navigation controller and the pipeline are written against this interface
// only; site-specific selectors never leak past it.
//
// Markup-taking methods are pure functions over a page snapshot so they can
// be tested against fixtures. Session-taking methods drive live interaction.
type Adapter interface {
	// Name returns the site tag used in logs and run records.
	Name() string

	// SearchProduct runs the site search and returns the first listing whose
	// cleaned title contains the cleaned query.
	SearchProduct(s browser.Session, query string) (title, url string, err error)

	// ContentMarker reports whether the markup carries the site's known
	// product-content marker. Used as the navigation success predicate.
	ContentMarker(markup string) bool

	// ProductSummary extracts the overall rating and total-ratings text,
	// substituting "N/A" for missing markers. Never fails.
	ProductSummary(markup string) models.ProductSummary

	// FeatureSentiment interacts with the site's feature/aspect controls and
	// returns per-label sentiment, keyed by label. A nil or empty features
	// slice means every discoverable control.
	FeatureSentiment(s browser.Session, features []string) map[string]models.FeatureSentiment

	// OpenReviews brings the session onto the full review listing for the
	// product the session is currently on.
	OpenReviews(s browser.Session, productURL string) error

	// ReviewPage extracts every review block from the markup. An empty
	// result signals the end of pagination, not an error.
	ReviewPage(markup string) []models.Review

	// HasNextPage reports whether a further-page control is present.
	HasNextPage(markup string) bool

	// GoToNextPage triggers the next-page control and pauses briefly for the
	// listing to refresh.
	GoToNextPage(s browser.Session) error
}
