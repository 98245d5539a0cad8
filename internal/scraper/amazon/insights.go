package amazon

import (
	"log"
	"strings"
	"time"

	"ReviewScope/internal/browser"
	"ReviewScope/internal/models"
	"ReviewScope/internal/scraper"
	"ReviewScope/utils"
)

const aspectChipSelector = `a[data-hook="cr-insights-aspect-link"]`

// FeatureSentiment walks the review-insight aspect chips on the product
// page: scroll each into view, trigger it, wait for the region its
// aria-controls attribute names, and mine that region for counts. When the
// region never materializes the whole page markup is parsed instead, which
// is lower confidence but never fatal.
func (a *Adapter) FeatureSentiment(s browser.Session, features []string) map[string]models.FeatureSentiment {
	wanted := make(map[string]bool, len(features))
	for _, f := range features {
		wanted[strings.ToLower(f)] = true
	}

	chips := s.FindElements(aspectChipSelector)
	if len(chips) == 0 {
		log.Println("[Amazon] No review-insight aspect chips found on page.")
		return map[string]models.FeatureSentiment{}
	}
	log.Printf("[Amazon] Found %d aspect chips on page.", len(chips))

	results := make(map[string]models.FeatureSentiment)
	for _, chip := range chips {
		label := chip.Text()
		if label == "" {
			if aria, ok := chip.Attribute("aria-label"); ok {
				label = strings.TrimSpace(aria)
			}
		}
		if label == "" {
			continue
		}
		if len(wanted) > 0 && !wanted[strings.ToLower(label)] {
			continue
		}

		if err := chip.ScrollIntoView(); err != nil {
			log.Printf("[Amazon] Scroll to aspect '%s' failed: %v", label, err)
		}
		if err := chip.ClickViaScript(); err != nil {
			log.Printf("[Amazon] Script click failed for '%s': %v. Trying normal click...", label, err)
			if err := chip.Click(); err != nil {
				log.Printf("[Amazon] Could not trigger aspect '%s': %v", label, err)
				continue
			}
		}

		region := a.waitForRegion(s, chip)
		if region == "" {
			log.Printf("[Amazon] Region for '%s' did not materialize, parsing whole page.", label)
			if markup, err := s.PageMarkup(); err == nil {
				region = markup
			}
		}

		results[label] = models.FeatureSentiment{
			Label:     label,
			Positive:  utils.FindAssociatedNumber(region, "positive"),
			Negative:  utils.FindAssociatedNumber(region, "negative"),
			Sentiment: scraper.ClassifySentiment(region),
		}
		fs := results[label]
		log.Printf("[Amazon] %s: +%s | -%s | sentiment: %s", label, fs.Positive, fs.Negative, fs.Sentiment)

		// Close whatever overlay the chip opened; a failure here only means
		// the next chip gets clicked through the overlay.
		_ = s.SendKey("escape")
		time.Sleep(500 * time.Millisecond)

		if len(features) == 1 {
			break
		}
	}
	return results
}

// waitForRegion polls for the element named by the chip's aria-controls
// association and returns its serialized markup, or "" after the bound.
func (a *Adapter) waitForRegion(s browser.Session, chip browser.Element) string {
	regionID, ok := chip.Attribute("aria-controls")
	if !ok || regionID == "" {
		return ""
	}

	deadline := time.Now().Add(a.regionWait)
	for time.Now().Before(deadline) {
		markup, err := s.PageMarkup()
		if err == nil {
			doc, err := parseMarkup(markup)
			if err == nil {
				region := doc.Find("#" + regionID)
				if region.Length() > 0 {
					if html, err := region.Html(); err == nil && strings.TrimSpace(html) != "" {
						return html
					}
				}
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	return ""
}
