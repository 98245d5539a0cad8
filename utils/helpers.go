package utils

import (
	"regexp"
	"strings"
)

// cleanRegex strips everything that is not a letter, digit or whitespace.
var cleanRegex = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// CleanText lowercases text and removes punctuation so user queries can be
// matched against listing titles by plain substring containment.
func CleanText(text string) string {
	return strings.TrimSpace(strings.ToLower(cleanRegex.ReplaceAllString(text, "")))
}

var (
	asinPathRegex  = regexp.MustCompile(`/(?:dp|gp/product)/([A-Z0-9]{10})`)
	asinQueryRegex = regexp.MustCompile(`asin=([A-Z0-9]{10})`)
	asinBareRegex  = regexp.MustCompile(`^[A-Z0-9]{10}$`)
)

// ExtractASIN pulls the 10-character product id out of an Amazon URL. It
// checks the /dp/ and /gp/product/ path forms first, then the asin= query
// parameter, then any bare path segment that looks like an ASIN.
func ExtractASIN(productURL string) string {
	if m := asinPathRegex.FindStringSubmatch(productURL); len(m) > 1 {
		return m[1]
	}
	if m := asinQueryRegex.FindStringSubmatch(productURL); len(m) > 1 {
		return m[1]
	}
	segments := strings.Split(productURL, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if asinBareRegex.MatchString(segments[i]) {
			return segments[i]
		}
	}
	return ""
}

// slugRegex matches any character that is NOT a letter, a number, or a hyphen.
var slugRegex = regexp.MustCompile(`[^\p{L}\p{N}-]+`)

// CreateSlug generates a filesystem-friendly slug from a product query,
// used to derive per-query output file names.
func CreateSlug(title string) string {
	slug := strings.ReplaceAll(title, " ", "-")
	slug = slugRegex.ReplaceAllString(slug, "")
	return strings.ToLower(slug)
}
