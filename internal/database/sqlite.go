package database

import (
	"database/sql"
	"log"
	"time"

	"ReviewScope/internal/models"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DBRepository is the run-history layer around the database connection. Every
// scrape run is recorded with its reviews, feature sentiment and analysis
// sections so past results stay queryable after the CSV is overwritten.
type DBRepository struct {
	DB *sql.DB
}

// InitDB opens the database file and creates the schema if needed.
func InitDB(filepath string) *DBRepository {
	db, err := sql.Open("sqlite", filepath)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	if err = db.Ping(); err != nil {
		log.Fatalf("Error pinging database: %v", err)
	}

	createRunsTableSQL := `
	CREATE TABLE IF NOT EXISTS runs (
		"id" TEXT NOT NULL PRIMARY KEY,
		"query" TEXT,
		"platform" TEXT,
		"product_name" TEXT,
		"overall_rating" TEXT,
		"total_ratings" TEXT,
		"review_count" INTEGER,
		"started_at" DATETIME,
		"finished_at" DATETIME
	);`
	if _, err = db.Exec(createRunsTableSQL); err != nil {
		log.Fatalf("Error creating runs table: %v", err)
	}

	createReviewsTableSQL := `
	CREATE TABLE IF NOT EXISTS reviews (
		"id" INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
		"run_id" TEXT,
		"reviewer_name" TEXT,
		"star_rating" TEXT,
		"review_date" TEXT,
		"review_body" TEXT,
		FOREIGN KEY(run_id) REFERENCES runs(id)
	);`
	if _, err = db.Exec(createReviewsTableSQL); err != nil {
		log.Fatalf("Error creating reviews table: %v", err)
	}

	createSentimentTableSQL := `
	CREATE TABLE IF NOT EXISTS feature_sentiment (
		"id" INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
		"run_id" TEXT,
		"label" TEXT,
		"positive" TEXT,
		"negative" TEXT,
		"sentiment" TEXT,
		"rating" TEXT,
		FOREIGN KEY(run_id) REFERENCES runs(id)
	);`
	if _, err = db.Exec(createSentimentTableSQL); err != nil {
		log.Fatalf("Error creating feature_sentiment table: %v", err)
	}

	createSectionsTableSQL := `
	CREATE TABLE IF NOT EXISTS sections (
		"id" INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
		"run_id" TEXT,
		"name" TEXT,
		"content" TEXT,
		FOREIGN KEY(run_id) REFERENCES runs(id)
	);`
	if _, err = db.Exec(createSectionsTableSQL); err != nil {
		log.Fatalf("Error creating sections table: %v", err)
	}

	log.Println("Database and tables initialized successfully.")
	return &DBRepository{DB: db}
}

// Close closes the database connection.
func (repo *DBRepository) Close() {
	repo.DB.Close()
}

// CreateRun inserts a new run row and returns its generated id.
func (repo *DBRepository) CreateRun(query, platform string) (string, error) {
	id := uuid.NewString()
	_, err := repo.DB.Exec(
		`INSERT INTO runs (id, query, platform, review_count, started_at) VALUES (?, ?, ?, 0, ?)`,
		id, query, platform, time.Now(),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// FinishRun stamps a run with its final product details and counters.
func (repo *DBRepository) FinishRun(id string, summary models.ProductSummary, productName string, reviewCount int) error {
	_, err := repo.DB.Exec(
		`UPDATE runs SET product_name = ?, overall_rating = ?, total_ratings = ?, review_count = ?, finished_at = ? WHERE id = ?`,
		productName, summary.OverallRating, summary.TotalRatings, reviewCount, time.Now(), id,
	)
	return err
}

// SaveReviews stores the full review set of a run in one transaction.
func (repo *DBRepository) SaveReviews(runID string, reviews []models.Review) error {
	tx, err := repo.DB.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO reviews (run_id, reviewer_name, star_rating, review_date, review_body) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range reviews {
		if _, err := stmt.Exec(runID, r.ReviewerName, r.StarRating, r.ReviewDate, r.ReviewBody); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// SaveFeatureSentiment stores the per-feature extraction results of a run.
func (repo *DBRepository) SaveFeatureSentiment(runID string, features map[string]models.FeatureSentiment) error {
	stmt, err := repo.DB.Prepare(
		`INSERT INTO feature_sentiment (run_id, label, positive, negative, sentiment, rating) VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, fs := range features {
		if _, err := stmt.Exec(runID, fs.Label, fs.Positive, fs.Negative, fs.Sentiment, fs.Rating); err != nil {
			log.Printf("Failed to save feature sentiment %s: %v", fs.Label, err)
			return err
		}
	}
	return nil
}

// SaveSections stores the parsed analysis sections of a run.
func (repo *DBRepository) SaveSections(runID string, sections models.AnalysisSections) error {
	stmt, err := repo.DB.Prepare(
		`INSERT INTO sections (run_id, name, content) VALUES (?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for name, content := range sections {
		if _, err := stmt.Exec(runID, name, content); err != nil {
			log.Printf("Failed to save section %s: %v", name, err)
			return err
		}
	}
	return nil
}

// GetAllRuns returns every recorded run, newest first.
func (repo *DBRepository) GetAllRuns() ([]models.ScrapeRun, error) {
	rows, err := repo.DB.Query(`
		SELECT id, query, platform,
		       COALESCE(product_name, ''), COALESCE(overall_rating, ''), COALESCE(total_ratings, ''),
		       review_count, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.ScrapeRun
	for rows.Next() {
		var r models.ScrapeRun
		var finished sql.NullTime
		if err := rows.Scan(
			&r.ID, &r.Query, &r.Platform, &r.ProductName, &r.OverallRating, &r.TotalRatings,
			&r.ReviewCount, &r.StartedAt, &finished,
		); err != nil {
			log.Printf("Error scanning run row: %v", err)
			continue
		}
		if finished.Valid {
			r.FinishedAt = finished.Time
		} else {
			r.FinishedAt = r.StartedAt
		}
		runs = append(runs, r)
	}
	return runs, nil
}

// GetLatestRun returns the most recently started run.
func (repo *DBRepository) GetLatestRun() (models.ScrapeRun, error) {
	var r models.ScrapeRun
	var finished sql.NullTime
	err := repo.DB.QueryRow(`
		SELECT id, query, platform,
		       COALESCE(product_name, ''), COALESCE(overall_rating, ''), COALESCE(total_ratings, ''),
		       review_count, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT 1
	`).Scan(
		&r.ID, &r.Query, &r.Platform, &r.ProductName, &r.OverallRating, &r.TotalRatings,
		&r.ReviewCount, &r.StartedAt, &finished,
	)
	if err == nil {
		if finished.Valid {
			r.FinishedAt = finished.Time
		} else {
			r.FinishedAt = r.StartedAt
		}
	}
	return r, err
}

// GetRunSections reads back the analysis sections of one run.
func (repo *DBRepository) GetRunSections(runID string) (models.AnalysisSections, error) {
	rows, err := repo.DB.Query(`SELECT name, content FROM sections WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := models.AnalysisSections{}
	for rows.Next() {
		var name, content string
		if err := rows.Scan(&name, &content); err != nil {
			log.Printf("Error scanning section row: %v", err)
			continue
		}
		sections[name] = content
	}
	return sections, nil
}

// GetRunFeatures reads back the feature sentiment rows of one run.
func (repo *DBRepository) GetRunFeatures(runID string) ([]models.FeatureSentiment, error) {
	rows, err := repo.DB.Query(
		`SELECT label, positive, negative, sentiment, rating FROM feature_sentiment WHERE run_id = ?`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var features []models.FeatureSentiment
	for rows.Next() {
		var fs models.FeatureSentiment
		if err := rows.Scan(&fs.Label, &fs.Positive, &fs.Negative, &fs.Sentiment, &fs.Rating); err != nil {
			log.Printf("Error scanning feature sentiment row: %v", err)
			continue
		}
		features = append(features, fs)
	}
	return features, nil
}
