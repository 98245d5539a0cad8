package main

import (
	"log"

	"ReviewScope/internal/database"
	"ReviewScope/internal/server"
	"ReviewScope/pkg/config"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.LoadConfig("config.yml")

	repo := database.InitDB(cfg.Output.DatabaseFile)
	defer repo.Close()

	log.Println("Starting run-history API server...")
	server.Start(repo, cfg)
}
