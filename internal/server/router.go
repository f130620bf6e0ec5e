// Package server exposes the search pipeline as a small HTTP JSON API.
package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/AbdulAhadRauf/best-train-finder/internal/search"
)

// NewRouter builds the HTTP router with middleware applied.
func NewRouter(searcher *search.Searcher, logger *logrus.Logger) http.Handler {
	h := &searchHandler{searcher: searcher, logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/search", h.Search).Methods(http.MethodGet)

	r.Use(recoveryMiddleware(logger))
	r.Use(loggingMiddleware(logger))

	return r
}
