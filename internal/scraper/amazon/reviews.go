package amazon

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"ReviewScope/internal/browser"
	"ReviewScope/internal/models"
	"ReviewScope/utils"

	"github.com/PuerkitoBio/goquery"
)

// SearchProduct runs the site search and picks the first result whose
// cleaned title contains the cleaned query.
func (a *Adapter) SearchProduct(s browser.Session, query string) (string, string, error) {
	searchURL := fmt.Sprintf("%s/s?k=%s", a.BaseURL, url.QueryEscape(query))
	if err := s.Navigate(searchURL); err != nil {
		return "", "", err
	}
	time.Sleep(a.settle)

	markup, err := s.PageMarkup()
	if err != nil {
		return "", "", err
	}
	doc, err := parseMarkup(markup)
	if err != nil {
		return "", "", err
	}

	wanted := utils.CleanText(query)
	var matchedTitle, matchedURL string
	doc.Find(`div[data-component-type="s-search-result"]`).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Find("h2 span").First().Text())
		if title == "" || !strings.Contains(utils.CleanText(title), wanted) {
			return true
		}
		href := ""
		sel.Find("a").EachWithBreak(func(j int, link *goquery.Selection) bool {
			h, ok := link.Attr("href")
			if ok && (strings.Contains(h, "/dp/") || strings.Contains(h, "/gp/product/")) {
				href = h
				return false
			}
			return true
		})
		if href == "" {
			return true
		}
		matchedTitle = title
		matchedURL = a.BaseURL + strings.SplitN(href, "?", 2)[0]
		return false
	})

	if matchedURL == "" {
		return "", "", fmt.Errorf("no search result matched %q", query)
	}
	log.Printf("[Amazon] Product matched: %s", matchedTitle)
	return matchedTitle, matchedURL, nil
}

// ProductSummary reads the rating block off the product page markup.
func (a *Adapter) ProductSummary(markup string) models.ProductSummary {
	summary := models.ProductSummary{OverallRating: "N/A", TotalRatings: "N/A"}
	doc, err := parseMarkup(markup)
	if err != nil {
		return summary
	}

	if ratingText := strings.TrimSpace(doc.Find("span.a-icon-alt").First().Text()); ratingText != "" {
		summary.OverallRating = strings.Fields(ratingText)[0]
	}
	if total := strings.TrimSpace(doc.Find("span#acrCustomerReviewText").First().Text()); total != "" {
		summary.TotalRatings = total
	}
	return summary
}

// OpenReviews navigates to the full review listing built from the ASIN.
func (a *Adapter) OpenReviews(s browser.Session, productURL string) error {
	asin := utils.ExtractASIN(productURL)
	if asin == "" {
		return fmt.Errorf("could not extract ASIN from %s", productURL)
	}
	reviewsURL := fmt.Sprintf("%s/product-reviews/%s/?pageNumber=1&reviewerType=all_reviews", a.BaseURL, asin)
	if err := s.Navigate(reviewsURL); err != nil {
		return err
	}
	time.Sleep(a.settle)
	return nil
}

// ReviewPage extracts every review block. Missing sub-markers become
// sentinels; a page with no blocks returns an empty slice, which the
// pagination loop treats as the end of the listing.
func (a *Adapter) ReviewPage(markup string) []models.Review {
	doc, err := parseMarkup(markup)
	if err != nil {
		return nil
	}

	var reviews []models.Review
	doc.Find(`[data-hook="review"]`).Each(func(i int, sel *goquery.Selection) {
		reviews = append(reviews, models.Review{
			ReviewerName: textOr(sel.Find("span.a-profile-name").First(), "Anonymous"),
			StarRating:   textOr(sel.Find("span.a-icon-alt").First(), "N/A"),
			ReviewDate:   textOr(sel.Find(`span[data-hook="review-date"]`).First(), "N/A"),
			ReviewBody:   textOr(sel.Find(`span[data-hook="review-body"]`).First(), "No Content"),
		})
	})
	return reviews
}

// HasNextPage reports whether the pagination bar still has a live link.
func (a *Adapter) HasNextPage(markup string) bool {
	doc, err := parseMarkup(markup)
	if err != nil {
		return false
	}
	return doc.Find("li.a-last a").Length() > 0
}

// GoToNextPage clicks the next-page link and pauses for the refresh.
func (a *Adapter) GoToNextPage(s browser.Session) error {
	link, ok := s.FindElement("li.a-last a")
	if !ok {
		return fmt.Errorf("next-page control not found")
	}
	if err := link.Click(); err != nil {
		return fmt.Errorf("failed to click next page: %w", err)
	}
	time.Sleep(a.settle)
	return nil
}

func textOr(sel *goquery.Selection, sentinel string) string {
	text := strings.TrimSpace(sel.Text())
	if text == "" {
		return sentinel
	}
	return text
}
