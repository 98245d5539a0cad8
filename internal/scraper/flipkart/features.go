package flipkart

import (
	"log"
	"strings"
	"time"

	"ReviewScope/internal/browser"
	"ReviewScope/internal/models"
	"ReviewScope/internal/scraper"

	"github.com/PuerkitoBio/goquery"
)

// featureLink pairs a review-category label with its filtered listing URL.
type featureLink struct {
	label string
	href  string
}

// FeatureSentiment visits each review-category link on the listing and mines
// the filtered page for a per-category rating plus positive/negative mention
// counts. The session is returned to its original URL afterwards so the
// pagination loop can resume where it left off.
func (a *Adapter) FeatureSentiment(s browser.Session, features []string) map[string]models.FeatureSentiment {
	wanted := make(map[string]bool, len(features))
	for _, f := range features {
		wanted[strings.ToLower(f)] = true
	}

	markup, err := s.PageMarkup()
	if err != nil {
		log.Printf("[Flipkart] Could not read page for category links: %v", err)
		return map[string]models.FeatureSentiment{}
	}
	links := a.categoryLinks(markup)
	if len(links) == 0 {
		log.Println("[Flipkart] No review-category links found on page.")
		return map[string]models.FeatureSentiment{}
	}
	log.Printf("[Flipkart] Found %d review-category links on page.", len(links))

	returnURL := s.CurrentURL()

	results := make(map[string]models.FeatureSentiment)
	for _, link := range links {
		if len(wanted) > 0 && !wanted[strings.ToLower(link.label)] {
			continue
		}

		if err := s.Navigate(a.absoluteURL(link.href)); err != nil {
			log.Printf("[Flipkart] Could not open category '%s': %v", link.label, err)
			continue
		}
		if !s.WaitUntil(func(m string) bool {
			doc, err := parseMarkup(m)
			return err == nil && doc.Find("text._2DdnFS, div.SmC0g8").Length() > 0
		}, a.regionWait) {
			log.Printf("[Flipkart] Category page for '%s' did not render its rating widget.", link.label)
		}

		pageMarkup, err := s.PageMarkup()
		if err != nil {
			log.Printf("[Flipkart] Could not read category page for '%s': %v", link.label, err)
			continue
		}
		results[link.label] = a.categorySentiment(link.label, pageMarkup)
		fs := results[link.label]
		log.Printf("[Flipkart] %s: rating %s | +%s | -%s | sentiment: %s",
			link.label, fs.Rating, fs.Positive, fs.Negative, fs.Sentiment)
	}

	if returnURL != "" {
		if err := s.Navigate(returnURL); err != nil {
			log.Printf("[Flipkart] Could not return to review listing: %v", err)
		}
		time.Sleep(a.settle)
	}
	return results
}

// categoryLinks collects the sidebar links that filter reviews by category.
// The "Overall" entry, bare digit badges and the pagination "Next" control
// share markup with the real categories and are skipped.
func (a *Adapter) categoryLinks(markup string) []featureLink {
	doc, err := parseMarkup(markup)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var links []featureLink
	doc.Find(`a[href*="/product-reviews/"]`).Each(func(i int, sel *goquery.Selection) {
		label := strings.TrimSpace(sel.Find("div.NTiEl0").First().Text())
		if label == "" {
			label = strings.TrimSpace(sel.Find(`span[class*="AgRA"]`).First().Text())
		}
		if label == "" || skipCategoryLabel(label) || seen[label] {
			return
		}
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		seen[label] = true
		links = append(links, featureLink{label: label, href: href})
	})
	return links
}

func skipCategoryLabel(label string) bool {
	if strings.EqualFold(label, "Overall") || strings.EqualFold(label, "Next") {
		return true
	}
	for _, r := range label {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// categorySentiment reads the category rating widget and the mention counter
// off a filtered review page.
func (a *Adapter) categorySentiment(label, markup string) models.FeatureSentiment {
	fs := models.FeatureSentiment{
		Label:    label,
		Rating:   "N/A",
		Positive: "N/A",
		Negative: "N/A",
	}
	doc, err := parseMarkup(markup)
	if err != nil {
		fs.Sentiment = "neutral"
		return fs
	}

	if rating := strings.TrimSpace(doc.Find("text._2DdnFS").First().Text()); rating != "" {
		fs.Rating = rating
	}

	region := markup
	if counter := doc.Find("div.SmC0g8").First(); counter.Length() > 0 {
		if positive := strings.TrimSpace(counter.Find("span.WtBCuZ").First().Text()); positive != "" {
			fs.Positive = positive
		}
		if negative := strings.TrimSpace(counter.Find("span._9VjbDx").First().Text()); negative != "" {
			fs.Negative = negative
		}
		if html, err := counter.Html(); err == nil && strings.TrimSpace(html) != "" {
			region = html
		}
	}
	fs.Sentiment = scraper.ClassifySentiment(region)
	return fs
}
