package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yml := `scraper:
  headless: true
  workers: "2"
  max_pages: 3
  automation_binary_path: "/opt/chromium/chrome"
  persistent_profile_dir: "/tmp/profile"
analyzer:
  binary_path: "gemini"
queries:
  - product: "wireless earbuds"
    platform: "flipkart"
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfig(path)

	if cfg.Scraper.AutomationBinaryPath != "/opt/chromium/chrome" {
		t.Errorf("automation_binary_path = %q; want /opt/chromium/chrome", cfg.Scraper.AutomationBinaryPath)
	}
	if !cfg.Scraper.Headless {
		t.Error("headless should be true")
	}
	if cfg.Scraper.MaxPages != 3 {
		t.Errorf("max_pages = %d; want 3", cfg.Scraper.MaxPages)
	}
	if len(cfg.Queries) != 1 || cfg.Queries[0].Platform != "flipkart" {
		t.Errorf("queries = %+v", cfg.Queries)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("queries: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfig(path)

	if cfg.Scraper.AutomationBinaryPath != "" {
		t.Errorf("automation_binary_path should default empty, got %q", cfg.Scraper.AutomationBinaryPath)
	}
	if cfg.Amazon.BaseURL != "https://www.amazon.in" {
		t.Errorf("amazon base_url = %q", cfg.Amazon.BaseURL)
	}
	if cfg.Flipkart.BaseURL != "https://www.flipkart.com" {
		t.Errorf("flipkart base_url = %q", cfg.Flipkart.BaseURL)
	}
	if cfg.Scraper.MaxPages != 10 {
		t.Errorf("max_pages default = %d; want 10", cfg.Scraper.MaxPages)
	}
	if cfg.Scraper.NavTimeoutSeconds != 8 {
		t.Errorf("nav_timeout_seconds default = %d; want 8", cfg.Scraper.NavTimeoutSeconds)
	}
	if cfg.Output.CsvFile != "reviews.csv" {
		t.Errorf("csv_file default = %q", cfg.Output.CsvFile)
	}
	if cfg.Output.ReviewColumnName != "review_body" {
		t.Errorf("review_column_name default = %q", cfg.Output.ReviewColumnName)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server port default = %d; want 8080", cfg.Server.Port)
	}
}
