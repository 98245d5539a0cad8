package models

import "time"

// Review holds one scraped review block. Missing sub-markers are replaced with
// sentinel values at extraction time, so every field is always populated.
type Review struct {
	ProductName   string `db:"product_name" json:"product_name"`
	OverallRating string `db:"overall_rating" json:"overall_rating"`
	TotalRatings  string `db:"total_ratings" json:"total_ratings"`
	ReviewerName  string `db:"reviewer_name" json:"reviewer_name"`
	StarRating    string `db:"star_rating" json:"star_rating"`
	ReviewDate    string `db:"review_date" json:"review_date"`
	ReviewBody    string `db:"review_body" json:"review_body"`
}

// ProductSummary is the rating block of a product page. Either field may be
// the "N/A" sentinel when its marker is absent from the markup.
type ProductSummary struct {
	OverallRating string `json:"overall_rating"`
	TotalRatings  string `json:"total_ratings"`
}

// FeatureSentiment holds the extracted counts for one feature/aspect chip.
// Positive and Negative are raw tokens (counts or percentages) or "N/A".
type FeatureSentiment struct {
	Label     string `json:"label"`
	Positive  string `json:"positive"`
	Negative  string `json:"negative"`
	Sentiment string `json:"sentiment"` // "positive", "negative" or "neutral"
	Rating    string `json:"rating,omitempty"`
}

// Section names recognized by the analysis output parser and the result API.
const (
	SectionOverallImpression = "Overall Impression"
	SectionPositiveFeedback  = "Summary of Positive Feedbacks"
	SectionNegativeFeedback  = "Summary of Negative Feedbacks"
	SectionStarRating        = "Product Overall Star Rating"
	SectionFeatureRatings    = "Feature Ratings"
)

// AnalysisSections maps section names to accumulated text.
type AnalysisSections map[string]string

// NewAnalysisSections initializes the three parser-owned sections to empty text.
func NewAnalysisSections() AnalysisSections {
	return AnalysisSections{
		SectionOverallImpression: "",
		SectionPositiveFeedback:  "",
		SectionNegativeFeedback:  "",
	}
}

// PaginationCursor tracks progress through a paginated review listing.
type PaginationCursor struct {
	Current int
	Max     int
}

// Done reports whether the page cap has been reached.
func (c PaginationCursor) Done() bool { return c.Current > c.Max }

// NavigationOutcome is the tagged result of one navigation call. It is
// consumed immediately by the caller and never held as long-lived state.
type NavigationOutcome int

const (
	OutcomeSuccess NavigationOutcome = iota
	OutcomeLoginRequired
	OutcomeFailed
)

func (o NavigationOutcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeLoginRequired:
		return "login_required"
	default:
		return "failed"
	}
}

// ScrapeRun is the run-history record stored per scrape.
type ScrapeRun struct {
	ID            string    `db:"id" json:"id"`
	Query         string    `db:"query" json:"query"`
	Platform      string    `db:"platform" json:"platform"`
	ProductName   string    `db:"product_name" json:"product_name"`
	OverallRating string    `db:"overall_rating" json:"overall_rating"`
	TotalRatings  string    `db:"total_ratings" json:"total_ratings"`
	ReviewCount   int       `db:"review_count" json:"review_count"`
	StartedAt     time.Time `db:"started_at" json:"started_at"`
	FinishedAt    time.Time `db:"finished_at" json:"finished_at"`
}
