package currency

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fekuna/omnipos-portal/internal/logger"
	"github.com/fekuna/omnipos-portal/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	cacheKey = "portal:currency:rates"

	// sharedFetchTimeout bounds a refresh detached from its caller.
	sharedFetchTimeout = 15 * time.Second
)

// Service serves cached rates and refreshes them from a Fetcher when the
// cache is empty. It never returns an error: failures yield unknown rates.
type Service struct {
	fetcher Fetcher
	cache   Cache
	ttl     time.Duration
	base    string
	logger  logger.ZapLogger
	group   singleflight.Group
}

// NewService builds a Service. cache may be nil, in which case every call
// goes to the fetcher.
func NewService(fetcher Fetcher, cache Cache, ttl time.Duration, base string, log logger.ZapLogger) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   cache,
		ttl:     ttl,
		base:    base,
		logger:  log,
	}
}

func (s *Service) Current(ctx context.Context) model.Rates {
	if rates, ok := s.cached(ctx); ok {
		return rates
	}

	v, _, _ := s.group.Do(cacheKey, func() (interface{}, error) {
		// Shared by every waiter, so it must outlive the first caller's request.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()

		rates, err := s.fetcher.Fetch(ctx)
		if err != nil {
			if !errors.Is(err, ErrNoSource) {
				s.logger.Warn("currency rates unavailable", zap.Error(err))
			}
			return model.Rates{Base: s.base}, nil
		}
		s.store(ctx, rates)
		return rates, nil
	})
	return v.(model.Rates)
}

func (s *Service) cached(ctx context.Context) (model.Rates, bool) {
	if s.cache == nil {
		return model.Rates{}, false
	}

	b, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.Warn("currency cache read failed", zap.Error(err))
		}
		return model.Rates{}, false
	}

	var rates model.Rates
	if err := json.Unmarshal(b, &rates); err != nil {
		s.logger.Warn("currency cache entry corrupt", zap.Error(err))
		return model.Rates{}, false
	}
	return rates, true
}

func (s *Service) store(ctx context.Context, rates model.Rates) {
	if s.cache == nil {
		return
	}

	b, err := json.Marshal(rates)
	if err != nil {
		s.logger.Warn("currency rates not cacheable", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, cacheKey, b, s.ttl); err != nil {
		s.logger.Warn("currency cache write failed", zap.Error(err))
	}
}
