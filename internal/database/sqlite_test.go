package database

import (
	"path/filepath"
	"testing"

	"ReviewScope/internal/models"
)

func testRepo(t *testing.T) *DBRepository {
	t.Helper()
	repo := InitDB(filepath.Join(t.TempDir(), "runs.db"))
	t.Cleanup(repo.Close)
	return repo
}

func TestRunLifecycle(t *testing.T) {
	repo := testRepo(t)

	id, err := repo.CreateRun("boat airdopes", "amazon")
	if err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}
	if id == "" {
		t.Fatal("run id should not be empty")
	}

	reviews := []models.Review{
		{ReviewerName: "Asha", StarRating: "5.0 out of 5 stars", ReviewDate: "N/A", ReviewBody: "Good"},
		{ReviewerName: "Anonymous", StarRating: "N/A", ReviewDate: "N/A", ReviewBody: "No Content"},
	}
	if err := repo.SaveReviews(id, reviews); err != nil {
		t.Fatalf("SaveReviews() error = %v", err)
	}
	if err := repo.SaveFeatureSentiment(id, map[string]models.FeatureSentiment{
		"Sound quality": {Label: "Sound quality", Positive: "87", Negative: "13", Sentiment: "positive"},
	}); err != nil {
		t.Fatalf("SaveFeatureSentiment() error = %v", err)
	}
	if err := repo.SaveSections(id, models.AnalysisSections{
		models.SectionOverallImpression: "Great product\n\n",
	}); err != nil {
		t.Fatalf("SaveSections() error = %v", err)
	}

	summary := models.ProductSummary{OverallRating: "4.1", TotalRatings: "12,345 ratings"}
	if err := repo.FinishRun(id, summary, "boAt Airdopes 141", len(reviews)); err != nil {
		t.Fatalf("FinishRun() error = %v", err)
	}

	latest, err := repo.GetLatestRun()
	if err != nil {
		t.Fatalf("GetLatestRun() error = %v", err)
	}
	if latest.ID != id || latest.ProductName != "boAt Airdopes 141" || latest.ReviewCount != 2 {
		t.Errorf("latest run = %+v", latest)
	}

	sections, err := repo.GetRunSections(id)
	if err != nil {
		t.Fatalf("GetRunSections() error = %v", err)
	}
	if sections[models.SectionOverallImpression] != "Great product\n\n" {
		t.Errorf("sections = %#v", sections)
	}

	features, err := repo.GetRunFeatures(id)
	if err != nil {
		t.Fatalf("GetRunFeatures() error = %v", err)
	}
	if len(features) != 1 || features[0].Positive != "87" {
		t.Errorf("features = %#v", features)
	}

	runs, err := repo.GetAllRuns()
	if err != nil {
		t.Fatalf("GetAllRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("got %d runs; want 1", len(runs))
	}
}
