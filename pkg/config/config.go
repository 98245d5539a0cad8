package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// ScraperConfig holds general scraper settings.
type ScraperConfig struct {
	Workers              string `yaml:"workers"`
	Headless             bool   `yaml:"headless"`
	MaxPages             int    `yaml:"max_pages"`
	AutomationBinaryPath string `yaml:"automation_binary_path"`
	PersistentProfileDir string `yaml:"persistent_profile_dir"`
	NavTimeoutSeconds    int    `yaml:"nav_timeout_seconds"`
}

// SiteConfig holds per-site settings.
type SiteConfig struct {
	BaseURL string `yaml:"base_url"`
}

// CredentialsConfig holds the sign-in pair used when a login wall blocks
// navigation. Leave both empty to fall back to manual sign-in polling.
type CredentialsConfig struct {
	Identifier string `yaml:"identifier"`
	Secret     string `yaml:"secret"`
}

// FallbackConfig points the analyzer at an OpenAI-compatible API used when
// the local CLI binary fails.
type FallbackConfig struct {
	ApiURL string `yaml:"api_url"`
	ApiKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// AnalyzerConfig holds analysis backend settings.
type AnalyzerConfig struct {
	BinaryPath string         `yaml:"binary_path"`
	Fallback   FallbackConfig `yaml:"fallback"`
}

// OutputConfig holds export destinations and analysis input settings.
type OutputConfig struct {
	CsvFile          string   `yaml:"csv_file"`
	DatabaseFile     string   `yaml:"database_file"`
	ReviewColumnName string   `yaml:"review_column_name"`
	ColumnsToAnalyze []string `yaml:"columns_to_analyze"`
}

// Query is one product to scrape and the site to scrape it from.
type Query struct {
	Product  string `yaml:"product"`
	Platform string `yaml:"platform"`
}

// Config is the complete structure for the config.yml file.
type Config struct {
	Scraper     ScraperConfig     `yaml:"scraper"`
	Amazon      SiteConfig        `yaml:"amazon"`
	Flipkart    SiteConfig        `yaml:"flipkart"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Analyzer    AnalyzerConfig    `yaml:"analyzer"`
	Output      OutputConfig      `yaml:"output"`
	Queries     []Query           `yaml:"queries"`
	Server      struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
}

// LoadConfig reads and parses the YAML config file, then fills defaults for
// settings the file leaves out.
func LoadConfig(filepath string) *Config {
	data, err := os.ReadFile(filepath)
	if err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}
	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		log.Fatalf("Error unmarshalling config YAML: %v", err)
	}
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Amazon.BaseURL == "" {
		c.Amazon.BaseURL = "https://www.amazon.in"
	}
	if c.Flipkart.BaseURL == "" {
		c.Flipkart.BaseURL = "https://www.flipkart.com"
	}
	if c.Scraper.MaxPages <= 0 {
		c.Scraper.MaxPages = 10
	}
	if c.Scraper.NavTimeoutSeconds <= 0 {
		c.Scraper.NavTimeoutSeconds = 8
	}
	if c.Output.CsvFile == "" {
		c.Output.CsvFile = "reviews.csv"
	}
	if c.Output.DatabaseFile == "" {
		c.Output.DatabaseFile = "reviewscope.db"
	}
	if c.Output.ReviewColumnName == "" {
		c.Output.ReviewColumnName = "review_body"
	}
	if c.Server.Port <= 0 {
		c.Server.Port = 8080
	}
}
