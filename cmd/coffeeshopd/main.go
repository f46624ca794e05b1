package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/brewcrew/coffeeshop/internal/auth"
	"github.com/brewcrew/coffeeshop/internal/config"
	"github.com/brewcrew/coffeeshop/internal/drinks"
	"github.com/brewcrew/coffeeshop/internal/handler"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
	log.Info("starting coffee shop service")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if !cfg.Production {
		log.Warn("running with development configuration")
	}

	store, err := drinks.Open(cfg.DBPath())
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Error("failed to close database")
		}
	}()

	keys := auth.NewRemoteKeySet(cfg.JWKSURL(), nil)
	verifier := auth.NewVerifier(keys, cfg.Issuer(), cfg.Auth.Audience)
	authn := auth.NewMiddleware(verifier)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler.New(store, authn),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithFields(log.Fields{
			"address": server.Addr,
			"issuer":  cfg.Issuer(),
		}).Info("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	waitForShutdown(server)
}

// waitForShutdown blocks until a termination signal arrives, then drains the
// server.
func waitForShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	log.WithField("signal", sig).Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("failed to shut down HTTP server gracefully")
		return
	}
	log.Info("HTTP server shut down")
}
