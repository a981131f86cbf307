package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/odemir/go-teklif/internal/config"
	"github.com/odemir/go-teklif/internal/kvstore"
	"github.com/odemir/go-teklif/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	if cfg.LogJSON {
		log.SetFormatter(&log.JSONFormatter{})
	}

	store, err := kvstore.Open(cfg.StoreOptions())
	if err != nil {
		log.WithError(err).Fatal("Failed to open store")
	}
	defer store.Close()

	repo := repository.New(store)
	app := NewApp(repo)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      withLogging(app),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}

	go func() {
		log.WithFields(log.Fields{"port": cfg.Port, "store": cfg.StoreDriver}).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Error during shutdown")
	}
	log.Info("Server stopped gracefully")
}

// withLogging adds request logging middleware.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}
