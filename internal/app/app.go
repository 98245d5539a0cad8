package app

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"ReviewScope/internal/analyzer"
	"ReviewScope/internal/browser"
	"ReviewScope/internal/database"
	"ReviewScope/internal/models"
	"ReviewScope/internal/nav"
	"ReviewScope/internal/scraper"
	"ReviewScope/internal/scraper/amazon"
	"ReviewScope/internal/scraper/flipkart"
	"ReviewScope/internal/store"
	"ReviewScope/pkg/config"
	"ReviewScope/utils"

	"github.com/go-rod/rod"
)

// App is the main application structure holding all dependencies.
type App struct {
	Config *config.Config
	Repo   *database.DBRepository
}

// New creates a new application instance with all initial settings.
func New() *App {
	cfg := config.LoadConfig("config.yml")
	repo := database.InitDB(cfg.Output.DatabaseFile)
	return &App{
		Config: cfg,
		Repo:   repo,
	}
}

// RunScraper works through every configured query with a pool of workers,
// one browser per worker. Each query produces a CSV export, a run record and
// an analysis summary.
func (a *App) RunScraper() {
	log.Println("--- Starting Review Scraping Task ---")

	queries := a.Config.Queries
	if len(queries) == 0 {
		log.Println("No queries configured. Task finished.")
		return
	}

	numWorkers := utils.WorkerCount(a.Config.Scraper.Workers, len(queries))
	log.Printf("Processing %d queries with %d workers.", len(queries), numWorkers)

	dispatchQueries(numWorkers, queries, func(workerID int) (func(config.Query), func(), error) {
		b, err := browser.Launch(
			a.Config.Scraper.Headless,
			a.Config.Scraper.AutomationBinaryPath,
			a.Config.Scraper.PersistentProfileDir,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("browser launch failed: %w", err)
		}
		process := func(q config.Query) {
			log.Printf("[Worker %d] Scraping '%s' on %s", workerID, q.Product, q.Platform)
			if err := a.scrapeQuery(b, q); err != nil {
				log.Printf("[Worker %d] Query '%s' failed: %v", workerID, q.Product, err)
			}
		}
		return process, func() { b.Close() }, nil
	})

	log.Println("--- Review Scraping Task Finished ---")
}

// dispatchQueries fans the queries out to a pool of workers. setup acquires a
// worker's resources and returns its per-query processor plus a cleanup func.
// A worker whose setup fails exits without ever consuming from the queue, so
// the surviving workers process every configured query.
func dispatchQueries(numWorkers int, queries []config.Query, setup func(workerID int) (func(config.Query), func(), error)) {
	jobs := make(chan config.Query, len(queries))
	var wg sync.WaitGroup

	for w := 1; w <= numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			process, cleanup, err := setup(workerID)
			if err != nil {
				log.Printf("[Worker %d] Setup failed: %v", workerID, err)
				return
			}
			defer cleanup()

			for q := range jobs {
				process(q)
			}
		}(w)
	}

	for _, q := range queries {
		jobs <- q
	}
	close(jobs)
	wg.Wait()
}

func (a *App) adapterFor(platform string) (scraper.Adapter, error) {
	switch strings.ToLower(platform) {
	case "amazon", "":
		return amazon.New(a.Config.Amazon.BaseURL), nil
	case "flipkart":
		return flipkart.New(a.Config.Flipkart.BaseURL), nil
	default:
		return nil, fmt.Errorf("unknown platform: %s", platform)
	}
}

// scrapeQuery runs the full pipeline for one query: search, product summary,
// feature sentiment, paginated review extraction, persistence and analysis.
func (a *App) scrapeQuery(b *rod.Browser, q config.Query) error {
	adapter, err := a.adapterFor(q.Platform)
	if err != nil {
		return err
	}

	navTimeout := time.Duration(a.Config.Scraper.NavTimeoutSeconds) * time.Second
	session, err := browser.NewSession(b, navTimeout)
	if err != nil {
		return err
	}
	defer session.Close()

	runID, err := a.Repo.CreateRun(q.Product, adapter.Name())
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	productName, productURL, err := adapter.SearchProduct(session, q.Product)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	auth := nav.NewAuthHandler(nav.Credentials{
		Identifier: a.Config.Credentials.Identifier,
		Secret:     a.Config.Credentials.Secret,
	}, navTimeout)
	controller := nav.NewController(session, auth, navTimeout)

	outcome := controller.NavigateTo(productURL, adapter.ContentMarker, 3)
	if outcome != models.OutcomeSuccess {
		log.Printf("[App] Navigation ended with '%s', retrying once after a pause...", outcome)
		time.Sleep(5 * time.Second)
		outcome = controller.NavigateTo(productURL, adapter.ContentMarker, 3)
	}
	switch outcome {
	case models.OutcomeSuccess:
	case models.OutcomeLoginRequired:
		if !auth.WaitForManualCompletion(session, 5*time.Second, 24) {
			return fmt.Errorf("login wall never cleared for %s", productURL)
		}
	default:
		return fmt.Errorf("could not reach product page %s", productURL)
	}

	markup, err := session.PageMarkup()
	if err != nil {
		return fmt.Errorf("failed to read product page: %w", err)
	}
	summary := adapter.ProductSummary(markup)
	if stars := utils.ParseStarValue(summary.OverallRating); stars > 0 {
		log.Printf("[App] %s: %.1f stars across %d ratings.", productName, stars, utils.ParseCount(summary.TotalRatings))
	} else {
		log.Printf("[App] %s: rating %s, %s", productName, summary.OverallRating, summary.TotalRatings)
	}

	features := adapter.FeatureSentiment(session, nil)

	if err := adapter.OpenReviews(session, productURL); err != nil {
		return fmt.Errorf("failed to open reviews: %w", err)
	}
	if wall, err := session.PageMarkup(); err == nil && auth.IsLoginWall(wall) {
		if !auth.SignIn(session) {
			auth.WaitForManualCompletion(session, 5*time.Second, 24)
		}
	}

	reviews := a.collectReviews(session, adapter)
	for i := range reviews {
		reviews[i].ProductName = productName
		reviews[i].OverallRating = summary.OverallRating
		reviews[i].TotalRatings = summary.TotalRatings
	}
	log.Printf("[App] Collected %d reviews for '%s'.", len(reviews), productName)
	a.logDateRange(reviews)

	csvPath := a.csvPathFor(q)
	if err := store.WriteReviews(csvPath, reviews); err != nil {
		return fmt.Errorf("csv export failed: %w", err)
	}
	if err := a.Repo.SaveReviews(runID, reviews); err != nil {
		log.Printf("[App] Failed to save reviews to database: %v", err)
	}
	if err := a.Repo.SaveFeatureSentiment(runID, features); err != nil {
		log.Printf("[App] Failed to save feature sentiment: %v", err)
	}
	if err := a.Repo.FinishRun(runID, summary, productName, len(reviews)); err != nil {
		log.Printf("[App] Failed to finish run record: %v", err)
	}

	sections := a.analyzeExport(csvPath, summary, features)
	if sections != nil {
		if err := a.Repo.SaveSections(runID, sections); err != nil {
			log.Printf("[App] Failed to save analysis sections: %v", err)
		}
	}
	return nil
}

// collectReviews walks the paginated listing until the page cap, an empty
// page or a missing next control stops it.
func (a *App) collectReviews(session browser.Session, adapter scraper.Adapter) []models.Review {
	cursor := models.PaginationCursor{Current: 1, Max: a.Config.Scraper.MaxPages}
	var reviews []models.Review

	for {
		markup, err := session.PageMarkup()
		if err != nil {
			log.Printf("[App] Could not read review page %d: %v", cursor.Current, err)
			break
		}
		pageReviews := adapter.ReviewPage(markup)
		if len(pageReviews) == 0 {
			log.Printf("[App] Page %d has no review blocks, stopping.", cursor.Current)
			break
		}
		reviews = append(reviews, pageReviews...)
		log.Printf("[App] Page %d: %d reviews (%d total).", cursor.Current, len(pageReviews), len(reviews))

		cursor.Current++
		if cursor.Done() {
			log.Printf("[App] Page cap of %d reached, stopping.", cursor.Max)
			break
		}
		if !adapter.HasNextPage(markup) {
			log.Println("[App] No next-page control, listing exhausted.")
			break
		}
		if err := adapter.GoToNextPage(session); err != nil {
			log.Printf("[App] Could not advance to page %d: %v", cursor.Current, err)
			break
		}
	}
	return reviews
}

// analyzeExport reads review bodies back off the CSV, runs the summary
// prompt through the backend chain and parses the sections, then injects the
// two sections the model is not asked to produce from scratch.
func (a *App) analyzeExport(csvPath string, summary models.ProductSummary, features map[string]models.FeatureSentiment) models.AnalysisSections {
	columns := a.Config.Output.ColumnsToAnalyze
	if len(columns) == 0 {
		columns = []string{a.Config.Output.ReviewColumnName}
	}
	var bodies []string
	for _, column := range columns {
		values, err := store.ReadColumn(csvPath, column)
		if err != nil {
			log.Printf("[App] Could not read column %q back for analysis: %v", column, err)
			continue
		}
		bodies = append(bodies, values...)
	}
	if len(bodies) == 0 {
		log.Println("[App] No review bodies to analyze.")
		return nil
	}
	log.Printf("[App] Collected %d reviews from CSV for analysis...", len(bodies))

	backends := []analyzer.Analyzer{
		analyzer.NewCLIAnalyzer(a.Config.Analyzer.BinaryPath, 0),
	}
	if fb := a.Config.Analyzer.Fallback; fb.ApiURL != "" {
		backends = append(backends, analyzer.NewHTTPAnalyzer(fb.ApiURL, fb.ApiKey, fb.Model))
	}
	chain := analyzer.NewChain(backends...)

	progress := analyzer.StartProgress("Summarizing reviews", 10*time.Second)
	output, err := chain.Analyze(context.Background(), analyzer.BuildSummaryPrompt(bodies))
	progress.Stop()
	if err != nil {
		log.Printf("[App] Analysis failed: %v", err)
		return nil
	}

	sections := analyzer.ParseSections(output)
	sections[models.SectionStarRating] = formatStarRating(summary)
	sections[models.SectionFeatureRatings] = formatFeatureRatings(features)
	return sections
}

// formatStarRating renders the product summary as the star-rating section,
// e.g. "Rating: 4.3/5\nTotal Ratings: 1,234".
func formatStarRating(summary models.ProductSummary) string {
	return fmt.Sprintf("Rating: %s/5\nTotal Ratings: %s", summary.OverallRating, summary.TotalRatings)
}

// Ask answers a follow-up question grounded on the latest run's summary
// sections and prints the response.
func (a *App) Ask(question string) {
	run, err := a.Repo.GetLatestRun()
	if err != nil {
		log.Fatalf("No completed run to ask about: %v", err)
	}
	sections, err := a.Repo.GetRunSections(run.ID)
	if err != nil {
		log.Fatalf("Could not load sections for run %s: %v", run.ID, err)
	}

	summaryText := strings.Join([]string{
		sections[models.SectionOverallImpression],
		sections[models.SectionPositiveFeedback],
		sections[models.SectionNegativeFeedback],
	}, "\n")

	backends := []analyzer.Analyzer{
		analyzer.NewCLIAnalyzer(a.Config.Analyzer.BinaryPath, 0),
	}
	if fb := a.Config.Analyzer.Fallback; fb.ApiURL != "" {
		backends = append(backends, analyzer.NewHTTPAnalyzer(fb.ApiURL, fb.ApiKey, fb.Model))
	}
	chain := analyzer.NewChain(backends...)

	answer, err := chain.Analyze(context.Background(), analyzer.BuildQuestionPrompt(summaryText, question))
	if err != nil {
		log.Fatalf("Could not answer question: %v", err)
	}
	fmt.Printf("\n%s\n", answer)
}

// csvPathFor keeps the configured file name for a single-query run. With
// several queries the workers would clobber one shared file, so each query
// gets a slugged file name instead.
func (a *App) csvPathFor(q config.Query) string {
	if len(a.Config.Queries) <= 1 {
		return a.Config.Output.CsvFile
	}
	base := strings.TrimSuffix(a.Config.Output.CsvFile, ".csv")
	return fmt.Sprintf("%s_%s.csv", base, utils.CreateSlug(q.Product))
}

func formatFeatureRatings(features map[string]models.FeatureSentiment) string {
	if len(features) == 0 {
		return ""
	}
	labels := make([]string, 0, len(features))
	for label := range features {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var b strings.Builder
	for _, label := range labels {
		fs := features[label]
		if fs.Rating != "" && fs.Rating != "N/A" {
			fmt.Fprintf(&b, "- %s: %s (+%s | -%s, %s)\n", fs.Label, fs.Rating, fs.Positive, fs.Negative, fs.Sentiment)
		} else {
			fmt.Fprintf(&b, "- %s: +%s | -%s, %s\n", fs.Label, fs.Positive, fs.Negative, fs.Sentiment)
		}
	}
	return b.String()
}

// logDateRange reports the span of review dates so a run's coverage is
// visible in the logs.
func (a *App) logDateRange(reviews []models.Review) {
	raws := make([]string, 0, len(reviews))
	for _, r := range reviews {
		raws = append(raws, r.ReviewDate)
	}
	oldest, newest, ok := utils.DateRange(raws, time.Now())
	if !ok {
		return
	}
	log.Printf("[App] Reviews span %s to %s.", oldest.Format("2006-01-02"), newest.Format("2006-01-02"))
}
