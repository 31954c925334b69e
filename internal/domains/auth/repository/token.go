package repository

//go:generate go run go.uber.org/mock/mockgen -source=./token.go -destination=../mocks/token_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotelbooking/shared"
	"hotelbooking/shared/cache"
)

const cacheKeyRevokedToken = "auth:revoked"

// Token remembers revoked token ids until the token would have expired anyway.
type Token interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type tokenImpl struct {
	cache cache.RedisCache
}

func NewToken(cache cache.RedisCache) Token {
	return &tokenImpl{cache: cache}
}

func (t *tokenImpl) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	seconds := int(ttl.Seconds())
	if seconds <= 0 {
		return nil
	}

	if err := t.cache.Save(ctx, shared.BuildCacheKey(cacheKeyRevokedToken, tokenID), "1", seconds); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (t *tokenImpl) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	revoked, err := t.cache.Exists(ctx, shared.BuildCacheKey(cacheKeyRevokedToken, tokenID))
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}

	return revoked, nil
}
