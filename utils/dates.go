package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// reviewedOnRegex pulls the date clause out of strings like
// "Reviewed in India on 5 June 2022".
var reviewedOnRegex = regexp.MustCompile(`Reviewed in .* on (\d{1,2} [A-Za-z]+ \d{4})`)

// relativeRegex matches relative dates like "3 months ago" or "1 year ago".
var relativeRegex = regexp.MustCompile(`(?i)^(\d+)\s*(month|year)s?\s+ago$`)

// ParseDate normalizes the date formats the two sites emit. The supported
// shapes are tried in a fixed order:
//
//  1. "Reviewed in <country> on <day> <month-name> <year>"
//  2. "<3-letter-month>, <year>"
//  3. "<n> month(s)/year(s) ago", computed from now with calendar arithmetic
//
// Any other shape returns ok=false. Relative dates need the caller's notion
// of "now" so tests can pin them.
func ParseDate(raw string, now time.Time) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if m := reviewedOnRegex.FindStringSubmatch(raw); len(m) > 1 {
		if t, err := time.Parse("2 January 2006", m[1]); err == nil {
			return t, true
		}
		return time.Time{}, false
	}

	if t, err := time.Parse("Jan, 2006", raw); err == nil {
		return t, true
	}

	if m := relativeRegex.FindStringSubmatch(raw); len(m) > 2 {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false
		}
		if strings.EqualFold(m[2], "year") {
			return now.AddDate(-n, 0, 0), true
		}
		return now.AddDate(0, -n, 0), true
	}

	// Bare "<day> <month-name> <year>" shows up when the site drops the
	// "Reviewed in" prefix.
	if t, err := time.Parse("2 January 2006", raw); err == nil {
		return t, true
	}

	return time.Time{}, false
}

// DateRange parses every entry and returns the oldest and newest of the ones
// that parsed. Unparsable entries are skipped silently. ok is false when
// nothing parsed at all.
func DateRange(raws []string, now time.Time) (oldest, newest time.Time, ok bool) {
	for _, raw := range raws {
		t, parsed := ParseDate(raw, now)
		if !parsed {
			continue
		}
		if !ok {
			oldest, newest, ok = t, t, true
			continue
		}
		if t.Before(oldest) {
			oldest = t
		}
		if t.After(newest) {
			newest = t
		}
	}
	return oldest, newest, ok
}
