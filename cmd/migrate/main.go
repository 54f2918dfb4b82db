package main

import (
	"context"
	"log"
	"os"

	"symrand/adapters/sqlstore"
	"symrand/domain/core"
	"symrand/internal"
	"symrand/internal/config"
	"symrand/internal/container"
	"symrand/internal/migration"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Store.Driver == config.DriverMemory {
		log.Fatal("Usage: STORE_DRIVER=sqlite|postgres migrate [session-id...]")
	}

	c, err := container.New(cfg, internal.NewLogger(cfg.LogLevel()))
	if err != nil {
		log.Fatalf("Failed to create container: %v", err)
	}

	// Opening the store applies the schema migrations.
	ctx := context.Background()
	if err := c.OpenStore(ctx); err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer c.Shutdown(ctx)

	log.Printf("Schema at version %s for %s store", migration.NewRunner().Version(), cfg.Store.Driver)

	repo, ok := c.Repo.(*sqlstore.Repository)
	if !ok {
		log.Fatalf("Store %T does not support session deletion", c.Repo)
	}

	deleted := 0
	for _, arg := range os.Args[1:] {
		id, err := core.ParseSessionID(arg)
		if err != nil {
			log.Printf("Skipping %q: %v", arg, err)
			continue
		}
		if err := repo.DeleteSession(ctx, id); err != nil {
			log.Fatalf("Failed to delete session %s: %v", id, err)
		}
		deleted++
	}
	if deleted > 0 {
		log.Printf("Deleted random state of %d sessions", deleted)
	}
}
