package usecase

import (
	"context"

	"lmsplatform/internal/domain"
)

// CatalogCache stores filtered published-course lists between requests.
type CatalogCache interface {
	Get(ctx context.Context, key string) ([]domain.Course, bool)
	Set(ctx context.Context, key string, courses []domain.Course) error
	Invalidate(ctx context.Context) error
}

// TokenStore tracks live refresh tokens.
type TokenStore interface {
	SaveRefresh(ctx context.Context, userID string, refreshToken string) error
	CheckRefresh(ctx context.Context, refreshToken string) (string, error)
	DeleteRefresh(ctx context.Context, refreshToken string) error
}

type noCache struct{}

func (noCache) Get(context.Context, string) ([]domain.Course, bool) { return nil, false }
func (noCache) Set(context.Context, string, []domain.Course) error  { return nil }
func (noCache) Invalidate(context.Context) error                    { return nil }

func orNoCache(c CatalogCache) CatalogCache {
	if c == nil {
		return noCache{}
	}
	return c
}
