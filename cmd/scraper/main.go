package main

import (
	"flag"
	"log"

	"ReviewScope/internal/app"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	task := flag.String("task", "scrape", "Task to run: scrape or ask")
	question := flag.String("question", "", "Question for the ask task")
	flag.Parse()

	application := app.New()
	defer application.Repo.Close()

	log.Printf("Running task: %s", *task)

	switch *task {
	case "scrape":
		application.RunScraper()

	case "ask":
		if *question == "" {
			log.Fatal("The ask task needs -question.")
		}
		application.Ask(*question)

	default:
		log.Fatalf("Unknown task: %s.", *task)
	}
}
