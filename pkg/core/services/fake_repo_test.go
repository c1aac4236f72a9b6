package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wadjakorntonsri/qr-shortener/pkg/core/domain"
)

// memoryRepo is an in-memory ports.LinkRepository with knobs for forcing
// collisions and failures.
type memoryRepo struct {
	mu     sync.Mutex
	links  map[string]*domain.Link
	clicks map[string][]time.Time

	existsCalls   int
	createCalls   int
	takenOnExists int // first N Exists calls report the id as taken
	takenOnCreate int // first N Create calls fail with ErrShortIDTaken
	existsErr     error
	createErr     error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		links:  make(map[string]*domain.Link),
		clicks: make(map[string][]time.Time),
	}
}

func (r *memoryRepo) Create(ctx context.Context, link *domain.Link) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	if r.createCalls <= r.takenOnCreate {
		return domain.ErrShortIDTaken
	}
	if _, ok := r.links[link.ShortID]; ok {
		return domain.ErrShortIDTaken
	}
	stored := *link
	r.links[link.ShortID] = &stored
	return nil
}

func (r *memoryRepo) Resolve(ctx context.Context, shortID string, clickedAt time.Time) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	link, ok := r.links[shortID]
	if !ok {
		return "", domain.ErrNotFound
	}
	link.Clicks++
	r.clicks[shortID] = append(r.clicks[shortID], clickedAt)
	return link.OriginalURL, nil
}

func (r *memoryRepo) Exists(ctx context.Context, shortID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.existsCalls++
	if r.existsErr != nil {
		return false, r.existsErr
	}
	if r.existsCalls <= r.takenOnExists {
		return true, nil
	}
	_, ok := r.links[shortID]
	return ok, nil
}

func (r *memoryRepo) GetByShortID(ctx context.Context, shortID string) (*domain.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	link, ok := r.links[shortID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *link
	return &cp, nil
}

func (r *memoryRepo) CountClicks(ctx context.Context, shortID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.clicks[shortID])), nil
}

func (r *memoryRepo) Dump(ctx context.Context) ([]domain.Link, error) {
	return nil, errors.New("not implemented")
}
