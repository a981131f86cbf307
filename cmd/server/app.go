package main

import (
	"net/http"

	"github.com/odemir/go-teklif/internal/handlers"
	"github.com/odemir/go-teklif/internal/repository"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux  *http.ServeMux
	repo *repository.Repository
}

// NewApp creates a new application with all routes configured.
func NewApp(repo *repository.Repository) *App {
	app := &App{
		mux:  http.NewServeMux(),
		repo: repo,
	}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	ch := handlers.NewCompanyHandler(a.repo)
	ph := handlers.NewProductHandler(a.repo)
	oh := handlers.NewOfferHandler(a.repo)
	dh := handlers.NewDraftHandler(a.repo)
	sh := handlers.NewSnapshotHandler(a.repo)

	a.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	a.mux.HandleFunc("GET /api/company", ch.Get)
	a.mux.HandleFunc("PUT /api/company", ch.Update)

	a.mux.HandleFunc("GET /api/products", ph.List)
	a.mux.HandleFunc("POST /api/products", ph.Create)
	a.mux.HandleFunc("PUT /api/products/{id}", ph.Update)
	a.mux.HandleFunc("DELETE /api/products/{id}", ph.Delete)

	a.mux.HandleFunc("GET /api/offers", oh.List)
	a.mux.HandleFunc("POST /api/offers", oh.Create)
	a.mux.HandleFunc("GET /api/offers/{id}", oh.Get)
	a.mux.HandleFunc("PUT /api/offers/{id}", oh.Update)
	a.mux.HandleFunc("DELETE /api/offers/{id}", oh.Delete)
	a.mux.HandleFunc("GET /api/offers/{id}/pdf", oh.PDF)

	a.mux.HandleFunc("GET /api/draft", dh.Get)
	a.mux.HandleFunc("PUT /api/draft", dh.Save)
	a.mux.HandleFunc("DELETE /api/draft", dh.Clear)

	a.mux.HandleFunc("GET /api/export", sh.Export)
	a.mux.HandleFunc("POST /api/import", sh.Import)
}
