// Package snapshot remembers the summary of the last run per input workbook,
// keyed by the workbook checksum and the target residence.
package snapshot

import (
	"context"
	stderrors "errors"
	"time"

	"go.uber.org/zap"

	"aijobs/common/cache"
	"aijobs/common/checksum"
	"aijobs/services/dashboard/internal/errors"
	"aijobs/services/dashboard/internal/models"
)

const keyPrefix = "dashboard:run"

// Store keeps run summaries.
type Store interface {
	// Last returns the summary of the previous run over the same input, or
	// nil when there is none.
	Last(ctx context.Context, inputChecksum, target string) (*models.RunSummary, error)
	Save(ctx context.Context, summary *models.RunSummary) error
}

// Key is the cache key of the runs over one input and target.
func Key(inputChecksum, target string) string {
	return checksum.Key(keyPrefix, inputChecksum, target)
}

type CacheStore struct {
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCacheStore(c cache.Cache, ttl time.Duration, logger *zap.Logger) *CacheStore {
	return &CacheStore{cache: c, ttl: ttl, logger: logger}
}

func (s *CacheStore) Last(ctx context.Context, inputChecksum, target string) (*models.RunSummary, error) {
	var summary models.RunSummary
	err := s.cache.Get(ctx, Key(inputChecksum, target), &summary)
	if stderrors.Is(err, cache.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Unavailable("reading run snapshot", err)
	}
	return &summary, nil
}

func (s *CacheStore) Save(ctx context.Context, summary *models.RunSummary) error {
	key := Key(summary.InputChecksum, summary.TargetResidence)
	if err := s.cache.Set(ctx, key, summary, s.ttl); err != nil {
		return errors.Unavailable("writing run snapshot", err)
	}

	s.logger.Debug("saved run snapshot",
		zap.String("key", key),
		zap.String("run_id", summary.RunID),
		zap.Duration("ttl", s.ttl))
	return nil
}

// NopStore is used when no cache is configured.
type NopStore struct{}

func (NopStore) Last(context.Context, string, string) (*models.RunSummary, error) { return nil, nil }

func (NopStore) Save(context.Context, *models.RunSummary) error { return nil }
