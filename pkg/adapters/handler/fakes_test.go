package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/wadjakorntonsri/qr-shortener/pkg/core/domain"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeService struct {
	mu       sync.Mutex
	links    map[string]string
	next     string
	storeErr error
	resolved []string
}

func newFakeService() *fakeService {
	return &fakeService{links: map[string]string{}, next: "abc123"}
}

func (s *fakeService) Shorten(ctx context.Context, rawURL string) (*domain.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rawURL == "" || rawURL == "https://" {
		return nil, domain.ErrInvalidURL
	}
	if s.storeErr != nil {
		return nil, s.storeErr
	}
	s.links[s.next] = rawURL
	return &domain.Link{
		ShortID:     s.next,
		OriginalURL: rawURL,
		CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil
}

func (s *fakeService) Resolve(ctx context.Context, shortID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.storeErr != nil {
		return "", s.storeErr
	}
	u, ok := s.links[shortID]
	if !ok {
		return "", domain.ErrNotFound
	}
	s.resolved = append(s.resolved, shortID)
	return u, nil
}

func (s *fakeService) Exists(ctx context.Context, shortID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.storeErr != nil {
		return false, s.storeErr
	}
	_, ok := s.links[shortID]
	return ok, nil
}

type fakeRenderer struct {
	err      error
	rendered []string
}

func (r *fakeRenderer) Render(content string) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.rendered = append(r.rendered, content)
	return []byte("png:" + content), nil
}

var errStore = errors.New("connection reset")
