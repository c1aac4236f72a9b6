package handler

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/wadjakorntonsri/qr-shortener/pkg/adapters/handler"
	"github.com/wadjakorntonsri/qr-shortener/pkg/adapters/qr"
	"github.com/wadjakorntonsri/qr-shortener/pkg/adapters/repository/sqlstore"
	"github.com/wadjakorntonsri/qr-shortener/pkg/config"
	"github.com/wadjakorntonsri/qr-shortener/pkg/core/services"
)

var mux http.Handler

func init() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	// On Vercel the filesystem is ephemeral; point DATABASE_URL at Postgres or Turso
	repo, err := sqlstore.NewRepository(context.Background(), cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}

	renderer, err := qr.NewRenderer(cfg.QRColor)
	if err != nil {
		panic(err)
	}

	service := services.NewLinkService(repo, cfg.ShortIDLength, logger)
	mux = handler.NewRouter(cfg, service, renderer, logger)
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
