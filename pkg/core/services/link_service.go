package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wadjakorntonsri/qr-shortener/pkg/core/domain"
	"github.com/wadjakorntonsri/qr-shortener/pkg/ports"
)

type LinkService struct {
	repo   ports.LinkRepository
	ids    *ShortIDGenerator
	logger *slog.Logger
	now    func() time.Time
}

func NewLinkService(repo ports.LinkRepository, shortIDLength int, logger *slog.Logger) *LinkService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LinkService{
		repo:   repo,
		ids:    NewShortIDGenerator(repo, shortIDLength),
		logger: logger,
		now:    time.Now,
	}
}

// Shorten validates rawURL and stores it under a fresh short id. An insert
// that loses the race for its id is retried with a new one until it succeeds
// or ctx is done.
func (s *LinkService) Shorten(ctx context.Context, rawURL string) (*domain.Link, error) {
	originalURL, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		shortID, err := s.ids.Generate(ctx)
		if err != nil {
			return nil, fmt.Errorf("generate short id: %w", err)
		}

		link := &domain.Link{
			ShortID:     shortID,
			OriginalURL: originalURL,
			CreatedAt:   s.now().UTC().Truncate(time.Microsecond),
		}

		err = s.repo.Create(ctx, link)
		if err == nil {
			return link, nil
		}
		if !errors.Is(err, domain.ErrShortIDTaken) {
			return nil, fmt.Errorf("create link: %w", err)
		}
		s.logger.Warn("short id taken on insert, regenerating",
			slog.String("short_id", shortID), slog.Int("attempt", attempt))
	}
}

// Resolve returns the destination for shortID and records the click.
func (s *LinkService) Resolve(ctx context.Context, shortID string) (string, error) {
	if shortID == "" {
		return "", domain.ErrNotFound
	}
	return s.repo.Resolve(ctx, shortID, s.now().UTC())
}

func (s *LinkService) Exists(ctx context.Context, shortID string) (bool, error) {
	if shortID == "" {
		return false, nil
	}
	return s.repo.Exists(ctx, shortID)
}
