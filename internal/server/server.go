package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"ReviewScope/internal/database"
	"ReviewScope/internal/models"
	"ReviewScope/pkg/config"
)

// Start serves the run-history API backed by the run database.
func Start(repo *database.DBRepository, cfg *config.Config) {
	http.HandleFunc("/runs", runsHandler(repo))
	http.HandleFunc("/runs/latest", latestRunHandler(repo))
	http.HandleFunc("/runs/", runDetailHandler(repo))

	port := fmt.Sprintf("%d", cfg.Server.Port)
	log.Printf("Starting API server on port %s", port)
	log.Printf("Endpoints available at http://localhost:%s/runs and /runs/latest", port)

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func runsHandler(repo *database.DBRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs, err := repo.GetAllRuns()
		if err != nil {
			http.Error(w, "Failed to get runs", http.StatusInternalServerError)
			return
		}
		if runs == nil {
			runs = []models.ScrapeRun{}
		}
		writeJSON(w, runs)
	}
}

func latestRunHandler(repo *database.DBRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, err := repo.GetLatestRun()
		if err != nil {
			http.Error(w, "No runs recorded yet", http.StatusNotFound)
			return
		}
		writeJSON(w, runDetail(repo, run))
	}
}

// runDetailHandler serves /runs/{id} with the run's sections and features.
func runDetailHandler(repo *database.DBRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/runs/")
		if id == "" || id == "latest" || strings.Contains(id, "/") {
			http.NotFound(w, r)
			return
		}

		runs, err := repo.GetAllRuns()
		if err != nil {
			http.Error(w, "Failed to get runs", http.StatusInternalServerError)
			return
		}
		for _, run := range runs {
			if run.ID == id {
				writeJSON(w, runDetail(repo, run))
				return
			}
		}
		http.NotFound(w, r)
	}
}

// RunDetailResponse is one run with its analysis output attached.
type RunDetailResponse struct {
	Run      models.ScrapeRun          `json:"run"`
	Sections models.AnalysisSections   `json:"sections"`
	Features []models.FeatureSentiment `json:"features"`
}

func runDetail(repo *database.DBRepository, run models.ScrapeRun) RunDetailResponse {
	sections, err := repo.GetRunSections(run.ID)
	if err != nil {
		log.Printf("Failed to load sections for run %s: %v", run.ID, err)
		sections = models.AnalysisSections{}
	}
	features, err := repo.GetRunFeatures(run.ID)
	if err != nil {
		log.Printf("Failed to load features for run %s: %v", run.ID, err)
	}
	if features == nil {
		features = []models.FeatureSentiment{}
	}
	return RunDetailResponse{Run: run, Sections: sections, Features: features}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
