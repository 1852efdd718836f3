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

	"github.com/myrecovery365/sobrio/backend/internal/config"
	"github.com/myrecovery365/sobrio/backend/internal/handler"
	"github.com/myrecovery365/sobrio/backend/internal/service/ai"
	chatservice "github.com/myrecovery365/sobrio/backend/internal/service/chat"
	"github.com/myrecovery365/sobrio/backend/internal/service/session"
	"github.com/myrecovery365/sobrio/backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	sessions := session.NewMemoryStore(session.Config{
		HistoryWindow: cfg.Session.HistoryWindow,
		TTL:           cfg.Session.TTL,
		MaxSessions:   cfg.Session.MaxSessions,
	})
	defer sessions.Close()

	var completer ai.Completer
	if cfg.AI.Enabled() {
		completer, err = ai.New(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize completion backend: %v", err)
			log.Println("continuing without a backend - every non-crisis turn will serve the fallback response")
		} else {
			log.Printf("completion backend initialized (provider=%s)", cfg.AI.Provider)
		}
	} else {
		log.Println("completion backend credentials not configured, serving fallback responses only")
	}

	chatSvc := chatservice.NewService(sessions, completer, cfg.AI.Timeout)

	var feedbackRepo store.Repository
	if cfg.Store.FeedbackDBPath != "" {
		sqliteStore, err := store.NewSQLite(cfg.Store.FeedbackDBPath)
		if err != nil {
			log.Printf("warning: failed to open feedback store: %v", err)
			log.Println("continuing without feedback endpoints")
		} else {
			feedbackRepo = sqliteStore
			defer sqliteStore.Close()
		}
	}

	router := handler.NewRouter(cfg.Server, chatSvc, feedbackRepo)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Sobrio backend listening on %s", serverCfg.Addr)
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
