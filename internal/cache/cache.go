package cache

import (
	"context"
	"time"

	"github.com/bilgisen/gamenews/internal/models"
)

// ArticleCache stores the fetched article collection between renders
type ArticleCache interface {
	// GetArticles returns the cached collection and whether it was present
	GetArticles(ctx context.Context, key string) ([]models.Article, bool, error)
	// SetArticles stores the collection. A zero ttl means no expiry.
	SetArticles(ctx context.Context, key string, articles []models.Article, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// New returns a Redis-backed cache for url, or an in-memory one when url is empty
func New(ctx context.Context, url, prefix string) (ArticleCache, error) {
	if url == "" {
		return NewMemoryCache(), nil
	}
	return NewRedisClient(ctx, url, prefix)
}
