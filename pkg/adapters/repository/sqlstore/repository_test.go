package sqlstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadjakorntonsri/qr-shortener/pkg/core/domain"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	dbURL := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	repo, err := NewRepository(context.Background(), dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func newLink(shortID, url string) *domain.Link {
	return &domain.Link{
		ShortID:     shortID,
		OriginalURL: url,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestDialectFor(t *testing.T) {
	tests := []struct {
		url  string
		want Dialect
	}{
		{"postgres://u:p@localhost/db?sslmode=disable", DialectPostgres},
		{"postgresql://u:p@localhost/db", DialectPostgres},
		{"libsql://my-db.turso.io?authToken=x", DialectLibSQL},
		{"wss://my-db.turso.io", DialectLibSQL},
		{"file:db.sqlite", DialectSQLite},
		{"file:memdb1?mode=memory&cache=shared", DialectSQLite},
		{"", DialectSQLite},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DialectFor(tt.url), tt.url)
	}
}

func TestRepositoryCreate(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	assert.Equal(t, DialectSQLite, repo.Dialect())

	link := newLink("abc123", "https://example.com")
	require.NoError(t, repo.Create(ctx, link))
	assert.NotZero(t, link.ID)

	got, err := repo.GetByShortID(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, link.ID, got.ID)
	assert.Equal(t, "https://example.com", got.OriginalURL)
	assert.Zero(t, got.Clicks)
	assert.WithinDuration(t, link.CreatedAt, got.CreatedAt, time.Millisecond)

	t.Run("duplicate short id is a conflict", func(t *testing.T) {
		err := repo.Create(ctx, newLink("abc123", "https://other.example"))
		assert.ErrorIs(t, err, domain.ErrShortIDTaken)

		got, err := repo.GetByShortID(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", got.OriginalURL)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.GetByShortID(ctx, "zzzzzz")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRepositoryExists(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	ok, err := repo.Exists(ctx, "abc123")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Create(ctx, newLink("abc123", "https://example.com")))

	ok, err = repo.Exists(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, "ABC123")
	require.NoError(t, err)
	assert.False(t, ok, "short ids are case sensitive")
}

func TestRepositoryResolve(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	require.NoError(t, repo.Create(ctx, newLink("go1234", "https://go.dev")))

	for i := int64(1); i <= 3; i++ {
		got, err := repo.Resolve(ctx, "go1234", time.Now().UTC())
		require.NoError(t, err)
		assert.Equal(t, "https://go.dev", got)

		link, err := repo.GetByShortID(ctx, "go1234")
		require.NoError(t, err)
		clicks, err := repo.CountClicks(ctx, "go1234")
		require.NoError(t, err)

		assert.Equal(t, i, link.Clicks)
		assert.Equal(t, link.Clicks, clicks)
	}

	t.Run("unknown id records nothing", func(t *testing.T) {
		_, err := repo.Resolve(ctx, "nope00", time.Now().UTC())
		assert.ErrorIs(t, err, domain.ErrNotFound)

		clicks, err := repo.CountClicks(ctx, "nope00")
		require.NoError(t, err)
		assert.Zero(t, clicks)
	})
}

func TestRepositoryResolveConcurrent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	require.NoError(t, repo.Create(ctx, newLink("hot001", "https://example.com/hot")))

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Resolve(ctx, "hot001", time.Now().UTC()); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("resolve failed: %v", err)
	}

	link, err := repo.GetByShortID(ctx, "hot001")
	require.NoError(t, err)
	clicks, err := repo.CountClicks(ctx, "hot001")
	require.NoError(t, err)
	assert.Equal(t, int64(workers), link.Clicks)
	assert.Equal(t, int64(workers), clicks)
}

func TestRepositoryDump(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	links, err := repo.Dump(ctx)
	require.NoError(t, err)
	assert.Empty(t, links)

	require.NoError(t, repo.Create(ctx, newLink("first1", "https://one.example")))
	require.NoError(t, repo.Create(ctx, newLink("secnd2", "https://two.example")))
	_, err = repo.Resolve(ctx, "secnd2", time.Now().UTC())
	require.NoError(t, err)

	links, err = repo.Dump(ctx)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "first1", links[0].ShortID)
	assert.Equal(t, "secnd2", links[1].ShortID)
	assert.Equal(t, int64(1), links[1].Clicks)
}

func TestMigrateIsIdempotent(t *testing.T) {
	dbURL := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	repo, err := NewRepository(context.Background(), dbURL)
	require.NoError(t, err)
	defer repo.Close()

	version, err := Migrate(dbURL)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
}
