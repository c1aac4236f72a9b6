package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	DefaultShortIDLength = 6
)

// Ids that would be shadowed by fixed routes.
var reservedShortIDs = map[string]struct{}{
	"health":  {},
	"metrics": {},
}

// ShortIDChecker reports whether a short id is already stored.
type ShortIDChecker interface {
	Exists(ctx context.Context, shortID string) (bool, error)
}

// ShortIDGenerator draws random alphanumeric ids and redraws until one is
// unused. There is no retry cap; the unique constraint in the store is the
// final arbiter for ids that race past the check.
type ShortIDGenerator struct {
	checker ShortIDChecker
	length  int
}

func NewShortIDGenerator(checker ShortIDChecker, length int) *ShortIDGenerator {
	if length < 1 {
		length = DefaultShortIDLength
	}
	return &ShortIDGenerator{checker: checker, length: length}
}

// Generate returns an id that was free at the moment of the check.
func (g *ShortIDGenerator) Generate(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		id, err := randomShortID(g.length)
		if err != nil {
			return "", err
		}
		if _, ok := reservedShortIDs[id]; ok {
			continue
		}

		taken, err := g.checker.Exists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("check short id %q: %w", id, err)
		}
		if !taken {
			return id, nil
		}
	}
}

func randomShortID(length int) (string, error) {
	b := make([]byte, length)
	base := big.NewInt(int64(len(charset)))
	for i := range b {
		num, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", err
		}
		b[i] = charset[num.Int64()]
	}
	return string(b), nil
}
