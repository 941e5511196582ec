package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"roboshorts/api"
	"roboshorts/archive"
	"roboshorts/config"
	"roboshorts/feeds"
	"roboshorts/pipeline"
	"roboshorts/publish"
	"roboshorts/script"
	"roboshorts/video"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	count := flag.Int("count", 1, "number of videos to produce in one run")
	serve := flag.Bool("serve", false, "expose the pipeline over HTTP instead of running once")
	flag.Parse()

	cfg := config.Load()
	runner := buildRunner(cfg)

	if *serve {
		addr := ":8080"
		if v := os.Getenv("PORT"); v != "" {
			addr = ":" + v
		}

		srv := api.NewServer(runner)
		log.Printf("Starting API server on %s", addr)
		log.Println("API endpoints available:")
		log.Println("  GET  /api/health")
		log.Println("  POST /api/run")
		if err := http.ListenAndServe(addr, srv.Router()); err != nil {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	if err := runner.Run(context.Background(), *count); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}

// buildRunner wires every pipeline stage from the loaded configuration.
// Optional stages (stock footage, upload, archive) degrade to no-ops when
// their credentials are absent, so a bare checkout still produces videos.
func buildRunner(cfg config.Config) *pipeline.Runner {
	runner := &pipeline.Runner{
		Feeds:     feeds.NewAggregator(cfg.Feeds),
		Scripts:   script.NewComposer(cfg),
		Video:     video.NewComposer(cfg),
		Publisher: publish.NewPublisher(cfg.YouTube),
		Enrich:    feeds.ArticleExcerpt,
		Delay:     config.ItemDelay,
	}

	arch, err := archive.New(context.Background(), cfg)
	switch {
	case err != nil:
		log.Printf("Warning: failed to init S3 client: %v (archive disabled)", err)
	case arch == nil:
		log.Println("S3 not configured; skipping artifact archive")
	default:
		runner.Archiver = arch
	}
	return runner
}
