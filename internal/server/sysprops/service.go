// Package sysprops provides typed access to the system_properties table
// with an in-process cache in front of it. The cache replaces the
// method-level memoization of the previous design with an explicit
// component invalidated manually on writes.
package sysprops

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/systemproperties"
	"github.com/szrnka-peter/give-my-secret/internal/shared"
)

// Service reads and writes system properties.
type Service struct {
	repo  systemproperties.Repository
	cache *gocache.Cache
}

func NewService(repo systemproperties.Repository, ttl time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the property value, or the fallback when the key is not
// stored.
func (s *Service) Get(ctx context.Context, key, fallback string) (string, error) {
	if v, ok := s.cache.Get(key); ok {
		return v.(string), nil
	}

	p, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.cache.SetDefault(key, fallback)
			return fallback, nil
		}
		return "", fmt.Errorf("error loading system property %s: %w", key, err)
	}

	s.cache.SetDefault(key, p.Value)
	return p.Value, nil
}

// GetBool parses the property as a boolean, returning the fallback for
// missing or malformed values.
func (s *Service) GetBool(ctx context.Context, key string, fallback bool) (bool, error) {
	v, err := s.Get(ctx, key, strconv.FormatBool(fallback))
	if err != nil {
		return false, err
	}

	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, nil
	}
	return parsed, nil
}

// Set stores the property and invalidates its cache entry.
func (s *Service) Set(ctx context.Context, key, value string) error {
	if err := s.repo.Upsert(ctx, key, value); err != nil {
		return err
	}

	s.cache.Delete(key)
	return nil
}
