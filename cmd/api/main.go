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

	"github.com/joho/godotenv"

	"github.com/arvinlabs/arvin-backend/internal/analysis/sentiment"
	"github.com/arvinlabs/arvin-backend/internal/config"
	"github.com/arvinlabs/arvin-backend/internal/handler"
	"github.com/arvinlabs/arvin-backend/internal/service/ai"
	"github.com/arvinlabs/arvin-backend/internal/service/session"
	"github.com/arvinlabs/arvin-backend/internal/service/turn"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	store := session.NewMemoryStore(cfg.Session.HistoryCap)

	// Provision the sentiment lexicon before the first turn needs it.
	classifier := sentiment.NewClassifier()
	classifier.Prime()

	var generator turn.Generator
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize generation service: %v", err)
			log.Println("continuing without generation - chat turns will fail until credentials are fixed")
		} else {
			generator = aiService
			log.Println("generation service initialized successfully")
		}
	} else {
		log.Println("warning: ANTHROPIC_API_KEY not set - crisis detection and session operations remain available")
	}

	orchestrator := turn.NewOrchestrator(store, classifier, generator, cfg.AI.Timeout)
	router := handler.NewRouter(orchestrator, store)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("ARVIN backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
