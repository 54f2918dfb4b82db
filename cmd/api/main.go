package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"symrand/internal"
	"symrand/internal/api"
	"symrand/internal/config"
	"symrand/internal/container"
	"symrand/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewLogger(cfg.LogLevel())

	c, err := container.New(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create container: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.OpenStore(ctx); err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	router, err := newRouter(c)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting symrand API on %s (docs at %s)", srv.Addr, cfg.Server.DocsPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed: %v", err)
	}
	if err := c.Shutdown(shutdownCtx); err != nil {
		logger.Error("Store shutdown failed: %v", err)
	}
}

// newRouter serves the evaluation API and mounts the docs app under the
// configured prefix
func newRouter(c *container.Container) (*gin.Engine, error) {
	prefix := c.Config.Server.DocsPrefix

	docs, err := ui.NewApp(ui.Config{Prefix: prefix}, c.Kernel.Docs(), c.Logger)
	if err != nil {
		return nil, err
	}

	handler := api.NewHandler(c.Kernel, c.Repo, c.Logger)
	router := api.NewRouter(handler, c.Config.Server.GinMode)
	router.Any(prefix+"/*path", gin.WrapH(http.StripPrefix(prefix, docs)))
	return router, nil
}
