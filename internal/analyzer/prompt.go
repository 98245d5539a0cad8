package analyzer

import (
	"fmt"
	"strings"
)

// BuildSummaryPrompt asks the model for the sectioned summary that
// ParseSections knows how to read back.
func BuildSummaryPrompt(reviews []string) string {
	return fmt.Sprintf(`Summarize the following product reviews.
Format:
- Product Overall Star Rating
- Overall Impression
- Summary of Positive Feedbacks
- Summary of Negative Feedbacks

Reviews: %s`, strings.Join(reviews, " "))
}

// BuildQuestionPrompt grounds a follow-up question on an existing summary.
func BuildQuestionPrompt(summary, question string) string {
	return fmt.Sprintf(`Product Review Summary:
%s

User Question:
%s

Answer based on the above summary.`, summary, question)
}
