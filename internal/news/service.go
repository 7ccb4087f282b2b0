// Package news owns the article collection: it fetches it once from the
// provider, keeps it in the cache and degrades to an empty list on failure.
package news

import (
	"context"
	"fmt"
	"time"

	"github.com/bilgisen/gamenews/internal/cache"
	"github.com/bilgisen/gamenews/internal/logger"
	"github.com/bilgisen/gamenews/internal/models"
	"golang.org/x/sync/singleflight"
)

// Fetcher is the external source of articles
type Fetcher interface {
	Everything(ctx context.Context) ([]models.Article, error)
}

type Service struct {
	fetcher    Fetcher
	cache      cache.ArticleCache
	normalizer *Normalizer
	key        string
	ttl        time.Duration
	group      singleflight.Group
}

// NewService builds a service caching the collection under key for ttl
func NewService(fetcher Fetcher, c cache.ArticleCache, key string, ttl time.Duration) *Service {
	return &Service{
		fetcher:    fetcher,
		cache:      c,
		normalizer: NewNormalizer(),
		key:        key,
		ttl:        ttl,
	}
}

// Articles returns the article collection. It never fails: a provider error
// is logged and yields an empty collection, which is not cached.
func (s *Service) Articles(ctx context.Context) []models.Article {
	log := logger.Get()

	articles, ok, err := s.cache.GetArticles(ctx, s.key)
	if err != nil {
		log.Warn().Err(err).Str("key", s.key).Msg("Error reading articles from cache")
	}
	if ok {
		log.Debug().Int("articles", len(articles)).Msg("Serving articles from cache")
		return articles
	}

	// The fetch is shared by every waiting caller, so one caller going away
	// must not cancel it for the others.
	shared := context.WithoutCancel(ctx)
	v, _, _ := s.group.Do(s.key, func() (any, error) {
		articles, err := s.fetch(shared)
		if err != nil {
			log.Error().Err(err).Msg("Error fetching articles, serving empty list")
			return []models.Article{}, nil
		}
		s.store(shared, articles)
		return articles, nil
	})

	return v.([]models.Article)
}

// Refresh fetches the collection again and replaces the cached copy. On
// failure the cached copy is kept and the error is returned.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do("refresh:"+s.key, func() (any, error) {
		articles, err := s.fetch(shared)
		if err != nil {
			return nil, err
		}
		if len(articles) == 0 {
			if err := s.cache.Delete(shared, s.key); err != nil {
				return nil, fmt.Errorf("error clearing cached articles: %w", err)
			}
			return articles, nil
		}
		s.store(shared, articles)
		return articles, nil
	})
	if err != nil {
		return 0, err
	}
	return len(v.([]models.Article)), nil
}

func (s *Service) fetch(ctx context.Context) ([]models.Article, error) {
	log := logger.Get()
	start := time.Now()

	raw, err := s.fetcher.Everything(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching articles: %w", err)
	}

	articles, errs := s.normalizer.Process(raw)
	if len(errs) > 0 {
		log.Warn().
			Errs("validation_errors", errs).
			Int("dropped", len(errs)).
			Msg("Dropped invalid articles")
	}

	log.Info().
		Int("fetched", len(raw)).
		Int("valid", len(articles)).
		Dur("duration", time.Since(start)).
		Msg("Fetched articles")

	return articles, nil
}

func (s *Service) store(ctx context.Context, articles []models.Article) {
	if len(articles) == 0 {
		return
	}
	if err := s.cache.SetArticles(ctx, s.key, articles, s.ttl); err != nil {
		logger.Get().Error().Err(err).Str("key", s.key).Msg("Error caching articles")
	}
}
