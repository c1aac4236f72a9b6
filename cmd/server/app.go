package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/wadjakorntonsri/qr-shortener/pkg/adapters/handler"
	"github.com/wadjakorntonsri/qr-shortener/pkg/adapters/qr"
	"github.com/wadjakorntonsri/qr-shortener/pkg/adapters/repository/sqlstore"
	"github.com/wadjakorntonsri/qr-shortener/pkg/config"
	"github.com/wadjakorntonsri/qr-shortener/pkg/core/services"
)

// buildApp wires storage, services and the router. The returned close func
// releases the database handle.
func buildApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (http.Handler, func() error, error) {
	repo, err := sqlstore.NewRepository(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	renderer, err := qr.NewRenderer(cfg.QRColor)
	if err != nil {
		_ = repo.Close()
		return nil, nil, fmt.Errorf("qr renderer: %w", err)
	}

	service := services.NewLinkService(repo, cfg.ShortIDLength, logger)
	return handler.NewRouter(cfg, service, renderer, logger), repo.Close, nil
}
