package main

import (
	"log"
	"net/http"

	"symrand/adapters/generator"
	"symrand/app"
	"symrand/internal"
	"symrand/internal/config"
	"symrand/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	logger := internal.NewLogger(cfg.LogLevel())

	kernel := app.NewKernel(generator.NewMersenneTwister(), logger)
	docs, err := ui.NewApp(ui.Config{}, kernel.Docs(), logger)
	if err != nil {
		log.Fatal("Failed to create UI app:", err)
	}

	log.Printf("Starting symrand docs on http://localhost:%s", cfg.Server.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Server.Port, docs))
}
