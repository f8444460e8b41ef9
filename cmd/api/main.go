package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/harmonyhub/portal-api/internal/config"
	jwtinfra "github.com/harmonyhub/portal-api/internal/infrastructure/jwt"
	"github.com/harmonyhub/portal-api/internal/infrastructure/memstore"
	"github.com/harmonyhub/portal-api/internal/infrastructure/resend"
	transporthttp "github.com/harmonyhub/portal-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Session provider (optional — login answers 503 until a secret is set).
	var sessions *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg.SessionSecret, cfg.SessionTTL); err == nil {
		sessions = p
	} else {
		log.Printf("WARN: session tokens not available: %v", err)
	}

	deps := &transporthttp.Deps{
		Verifications: memstore.NewVerificationStore(),
		Approvals:     memstore.NewApprovalStore(),
		Verified:      memstore.NewVerifiedSet(),
		Mailer:        resend.NewMailer(cfg),
		Sessions:      sessions,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
