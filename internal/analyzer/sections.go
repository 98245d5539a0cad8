package analyzer

import (
	"regexp"
	"strings"

	"ReviewScope/internal/models"
)

var asterisks = regexp.MustCompile(`\*+`)

// ParseSections reads free-form model output into the three named summary
// sections. Header lines are matched loosely (any line mentioning the section
// keyword switches the accumulator), markdown bold markers are stripped, and
// body lines under the feedback sections are normalized into "- " bullets.
func ParseSections(output string) models.AnalysisSections {
	sections := models.NewAnalysisSections()

	current := ""
	for _, line := range strings.Split(output, "\n") {
		l := strings.TrimSpace(line)
		if l == "" {
			continue
		}
		lowered := strings.ToLower(l)

		switch {
		case strings.Contains(lowered, "overall impression"):
			current = models.SectionOverallImpression
			appendAfterColon(sections, current, l)
			continue
		case strings.Contains(lowered, "positive"):
			current = models.SectionPositiveFeedback
			appendAfterColon(sections, current, l)
			continue
		case strings.Contains(lowered, "negative"):
			current = models.SectionNegativeFeedback
			appendAfterColon(sections, current, l)
			continue
		}

		if current == "" {
			continue
		}
		clean := strings.TrimSpace(asterisks.ReplaceAllString(l, ""))
		if clean == "" {
			continue
		}
		if current != models.SectionOverallImpression && !strings.HasPrefix(clean, "-") {
			sections[current] += "- " + clean + "\n\n"
		} else {
			sections[current] += clean + "\n\n"
		}
	}
	return sections
}

// appendAfterColon pulls inline text off a header line ("Overall Impression:
// solid product") into its section.
func appendAfterColon(sections models.AnalysisSections, section, line string) {
	parts := strings.SplitN(asterisks.ReplaceAllString(line, ""), ":", 2)
	if len(parts) > 1 {
		if rest := strings.TrimSpace(parts[1]); rest != "" {
			sections[section] += rest + "\n\n"
		}
	}
}
