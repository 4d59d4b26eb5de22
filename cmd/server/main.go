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

	"supershopcart/backend/internal/audit"
	auditrepo "supershopcart/backend/internal/audit/repository"
	authhandler "supershopcart/backend/internal/auth/handler"
	authservice "supershopcart/backend/internal/auth/service"
	"supershopcart/backend/internal/config"
	"supershopcart/backend/internal/db"
	"supershopcart/backend/internal/identity/google"
	"supershopcart/backend/internal/security"
	"supershopcart/backend/internal/server"
	"supershopcart/backend/internal/server/middleware"
	"supershopcart/backend/internal/session/cleanup"
	sessionrepo "supershopcart/backend/internal/session/repository"
	shopperrepo "supershopcart/backend/internal/shopper/repository"
	"supershopcart/backend/internal/telemetry/otel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "supershopcart-auth", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()
	defer func() {
		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		_ = providers.Shutdown(sctx)
	}()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer database.Close()

	key, err := security.SigningKey(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("jwt: %v", err)
	}
	tokens := security.NewTokenCodec(key, cfg.AccessTTL(), cfg.RefreshTTL())
	verifier := google.NewTokenVerifier(cfg.GoogleClientID, cfg.VerifyTimeout())

	shoppers := shopperrepo.NewPostgresRepository(database)
	sessions := sessionrepo.NewPostgresRepository(database)
	auditor := audit.NewLogger(auditrepo.NewPostgresRepository(database), middleware.GetClientIP)

	svc := authservice.NewAuthService(shoppers, sessions, verifier, tokens, auditor)

	handler := server.NewHTTPHandler(server.Options{
		Auth:            authhandler.NewHandler(svc),
		Tokens:          tokens,
		DB:              database,
		DevLoginEnabled: cfg.DevLoginEnabled,
	})

	go cleanup.NewPurger(sessions, cfg.CleanupInterval()).Run(ctx)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("http server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down http server...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("http server stopped")
}
