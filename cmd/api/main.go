package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/suyoungkwon2/phonitale-backend/internal/consent"
	consentrepo "github.com/suyoungkwon2/phonitale-backend/internal/consent/repo"
	"github.com/suyoungkwon2/phonitale-backend/internal/migrations"
	"github.com/suyoungkwon2/phonitale-backend/internal/pages"
	"github.com/suyoungkwon2/phonitale-backend/internal/response"
	responserepo "github.com/suyoungkwon2/phonitale-backend/internal/response/repo"
	"github.com/suyoungkwon2/phonitale-backend/internal/router"
	"github.com/suyoungkwon2/phonitale-backend/internal/word"
	wordrepo "github.com/suyoungkwon2/phonitale-backend/internal/word/repo"
	"github.com/suyoungkwon2/phonitale-backend/pkg/database"
	"github.com/suyoungkwon2/phonitale-backend/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.InitLogger(utilities.LogConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting phonitale-backend")

	// init db
	cfg := database.ConfigFromEnv()
	db, err := database.Connect(cfg)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// apply schema migrations
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migrations.Up(migrateCtx, db.DB); err != nil {
		cancelMigrate()
		sugar.Fatalf("migrations: %v", err)
	}
	cancelMigrate()

	// wire services and handlers
	consentSvc := consent.NewService(consentrepo.NewConsentRepo(db), sugar)
	responseSvc := response.NewService(responserepo.NewResponseRepo(db), sugar)
	wordSvc := word.NewService(wordrepo.NewWordRepo(db), sugar)

	consentHandler := consent.NewHandler(consentSvc, sugar)
	responseHandler := response.NewHandler(responseSvc, consentSvc, sugar)
	wordHandler := word.NewHandler(wordSvc, sugar)

	// seed the vocabulary when a CSV is configured
	if path := os.Getenv("WORDS_CSV"); path != "" {
		seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := wordSvc.ImportCSV(seedCtx, path); err != nil {
			sugar.Warnf("word csv import failed: %v", err)
		}
		cancelSeed()
	}

	// the page layer is optional: without templates the service runs API-only
	var pageHandler *pages.Handler
	pagesCfg := pages.ConfigFromEnv()
	pageHandler, err = pages.NewHandler(pagesCfg, sugar)
	if err != nil {
		sugar.Warnf("page templates unavailable, serving API only: %v", err)
		pageHandler = nil
	}

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8431"
	}

	handler := router.RegisterRoutes(sugar, consentHandler, responseHandler, wordHandler, pageHandler)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// run server in background
	go func() {
		sugar.Infow("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// ping db once more
	if err := db.PingContext(doneCtx); err != nil {
		sugar.Warnf("db ping on shutdown failed: %v", err)
	}

	// shutdown http server
	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
