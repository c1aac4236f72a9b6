package ports

import (
	"context"
	"time"

	"github.com/wadjakorntonsri/qr-shortener/pkg/core/domain"
)

// LinkRepository defines storage operations for links and their clicks
type LinkRepository interface {
	// Create inserts a new link. Returns domain.ErrShortIDTaken when the
	// short id already exists.
	Create(ctx context.Context, link *domain.Link) error
	// Resolve increments the click counter and appends a click event in one
	// transaction, returning the destination URL. Returns domain.ErrNotFound
	// for unknown ids.
	Resolve(ctx context.Context, shortID string, clickedAt time.Time) (string, error)
	Exists(ctx context.Context, shortID string) (bool, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Link, error)
	CountClicks(ctx context.Context, shortID string) (int64, error)
	Dump(ctx context.Context) ([]domain.Link, error) // For export
}

// LinkService defines the business logic operations
type LinkService interface {
	Shorten(ctx context.Context, rawURL string) (*domain.Link, error)
	Resolve(ctx context.Context, shortID string) (string, error)
	Exists(ctx context.Context, shortID string) (bool, error)
}

// QRRenderer encodes content into a PNG image
type QRRenderer interface {
	Render(content string) ([]byte, error)
}
