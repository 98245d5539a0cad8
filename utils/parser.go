package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// countRegex finds the first grouped integer in a string.
var countRegex = regexp.MustCompile(`[\d,]+`)

// ParseCount extracts the first integer from loosely formatted count text
// like "1,234 ratings" or "12,050 Ratings & 1,043 Reviews". Returns 0 when
// no number is present.
func ParseCount(text string) int {
	if text == "" {
		return 0
	}
	found := countRegex.FindString(text)
	if found == "" {
		return 0
	}
	cleaned := strings.ReplaceAll(found, ",", "")
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return n
}

// ParseStarValue extracts the leading numeric star value from rating text
// like "4.3 out of 5 stars". Returns 0 when the text has no parsable value.
func ParseStarValue(text string) float64 {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return v
}
