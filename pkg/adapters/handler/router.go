package handler

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wadjakorntonsri/qr-shortener/pkg/config"
	"github.com/wadjakorntonsri/qr-shortener/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, service ports.LinkService, renderer ports.QRRenderer, logger *slog.Logger) http.Handler {
	h := NewHTTPHandler(service, renderer, cfg.BaseURL, logger)
	mw := NewMiddleware(logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /favicon.ico", h.Favicon)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/shorten", h.Shorten)
	mux.HandleFunc("GET /api/qr/{short_id}", h.QRCode)

	// Literal routes above take precedence over the wildcard
	mux.HandleFunc("GET /{short_id}", h.Redirect)

	return mw.Instrument(mux)
}
