package flipkart

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

// SearchProduct runs the site search, dismisses the login overlay if one
// pops up, and picks the first listing whose title contains the query.
func (a *Adapter) SearchProduct(s browser.Session, query string) (string, string, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s", a.BaseURL, url.QueryEscape(query))
	if err := s.Navigate(searchURL); err != nil {
		return "", "", err
	}
	time.Sleep(a.settle)

	// The login overlay, when present, has a ✕ close button.
	_ = s.EvaluateScript(`() => {
		const btn = [...document.querySelectorAll('button')].find(b => b.textContent.includes('✕'));
		if (btn) btn.click();
	}`)

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
	doc.Find("a.wjcEIp").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		title, _ := sel.Attr("title")
		if title == "" || !strings.Contains(utils.CleanText(title), wanted) {
			return true
		}
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return true
		}
		matchedTitle = title
		matchedURL = a.absoluteURL(href)
		return false
	})

	if matchedURL == "" {
		return "", "", fmt.Errorf("no search result matched %q", query)
	}
	log.Printf("[Flipkart] Product matched: %s", matchedTitle)
	return matchedTitle, matchedURL, nil
}

// ProductSummary reads the rating widget and the first "Ratings" count text.
func (a *Adapter) ProductSummary(markup string) models.ProductSummary {
	summary := models.ProductSummary{OverallRating: "N/A", TotalRatings: "N/A"}
	doc, err := parseMarkup(markup)
	if err != nil {
		return summary
	}

	if rating := strings.TrimSpace(doc.Find("div.ipqd2A").First().Text()); rating != "" {
		summary.OverallRating = rating
	}
	doc.Find("span").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if strings.Contains(text, "Ratings") {
			summary.TotalRatings = text
			return false
		}
		return true
	})
	return summary
}

// OpenReviews clicks the "All N reviews" control when present. Some product
// pages render all reviews inline, so a missing control is not an error.
func (a *Adapter) OpenReviews(s browser.Session, productURL string) error {
	err := s.EvaluateScript(`() => {
		const el = [...document.querySelectorAll('span')]
			.find(sp => sp.textContent.includes('All') && sp.textContent.toLowerCase().includes('reviews'));
		if (el) el.click();
	}`)
	if err != nil {
		log.Printf("[Flipkart] Could not click 'All reviews' control: %v", err)
	}
	time.Sleep(a.settle)
	return nil
}

// ReviewPage extracts every review block. Flipkart prefixes its rotating
// class names consistently, so prefix selectors are used where the suffix
// drifts.
func (a *Adapter) ReviewPage(markup string) []models.Review {
	doc, err := parseMarkup(markup)
	if err != nil {
		return nil
	}

	var reviews []models.Review
	doc.Find("div.EKFha-").Each(func(i int, sel *goquery.Selection) {
		body := strings.TrimSpace(strings.ReplaceAll(sel.Find(`div[class^="ZmyHeo"]`).First().Text(), "READ MORE", ""))
		if body == "" {
			body = "No Content"
		}

		date := "N/A"
		if userInfo := sel.Find("div.gHqwa8").First(); userInfo.Length() > 0 {
			if stamps := userInfo.Find("p._2NsDsF"); stamps.Length() > 0 {
				if text := strings.TrimSpace(stamps.Last().Text()); text != "" {
					date = text
				}
			}
		}

		reviews = append(reviews, models.Review{
			ReviewerName: textOr(sel.Find("p._2NsDsF.AwS1CA").First(), "Anonymous"),
			StarRating:   textOr(sel.Find(`div[class^="XQDdHH"]`).First(), "N/A"),
			ReviewDate:   date,
			ReviewBody:   body,
		})
	})
	return reviews
}

// HasNextPage looks for the "Next" pagination control.
func (a *Adapter) HasNextPage(markup string) bool {
	doc, err := parseMarkup(markup)
	if err != nil {
		return false
	}
	found := false
	doc.Find("span").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if strings.TrimSpace(sel.Text()) == "Next" {
			found = true
			return false
		}
		return true
	})
	return found
}

// GoToNextPage clicks "Next" through the DOM API; the control sits under an
// overlay-prone footer where synthesized clicks are unreliable.
func (a *Adapter) GoToNextPage(s browser.Session) error {
	err := s.EvaluateScript(`() => {
		const el = [...document.querySelectorAll('span')].find(sp => sp.textContent.trim() === 'Next');
		if (!el) throw new Error('next control not found');
		el.click();
	}`)
	if err != nil {
		return fmt.Errorf("failed to click next page: %w", err)
	}
	time.Sleep(a.settle)
	return nil
}

func (a *Adapter) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return a.BaseURL + href
}

func textOr(sel *goquery.Selection, sentinel string) string {
	text := strings.TrimSpace(sel.Text())
	if text == "" {
		return sentinel
	}
	return text
}
