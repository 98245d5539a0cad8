package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"ReviewScope/internal/models"
)

// csvHeader is the stable column contract for exported review files.
// Downstream analysis reads columns back by these exact names.
var csvHeader = []string{
	"product_name",
	"overall_rating",
	"total_ratings",
	"reviewer_name",
	"star_rating",
	"review_date",
	"review_body",
}

// utf8BOM keeps spreadsheet tools from misreading non-ASCII review text.
const utf8BOM = "\xEF\xBB\xBF"

// WriteReviews replaces the file at path with a fresh export of all reviews.
// Each run owns the whole file; there is no append mode.
func WriteReviews(path string, reviews []models.Review) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range reviews {
		record := []string{
			r.ProductName,
			r.OverallRating,
			r.TotalRatings,
			r.ReviewerName,
			r.StarRating,
			r.ReviewDate,
			r.ReviewBody,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadColumn returns the non-empty values of one named column. Rows where the
// column is blank are skipped rather than reported as errors.
func ReadColumn(path, column string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv file %s has no header row", path)
	}

	index := -1
	for i, name := range records[0] {
		if strings.TrimPrefix(name, utf8BOM) == column {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, fmt.Errorf("column %q not found in %s", column, path)
	}

	var values []string
	for _, record := range records[1:] {
		if index >= len(record) {
			continue
		}
		if value := strings.TrimSpace(record[index]); value != "" {
			values = append(values, value)
		}
	}
	return values, nil
}
