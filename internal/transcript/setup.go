package transcript

import (
	"context"
	"fmt"

	"github.com/tuannvm/ai-toolbox/internal/config"
	log "github.com/tuannvm/ai-toolbox/internal/logging"
)

// Source bundles the transcript fetcher with the video details lookup
type Source struct {
	Fetcher Fetcher
	Details *YouTubeFetcher
	closers []func() error
}

// NewSource builds the transcript source from configuration. When REDIS_ADDR
// is set, fetched transcripts are cached in Redis.
func NewSource(ctx context.Context, cfg *config.Config) (*Source, error) {
	base := NewYouTubeFetcher()
	src := &Source{Fetcher: base, Details: base}

	if cfg.RedisAddr == "" {
		log.Debugf("Transcript cache disabled")
		return src, nil
	}

	cache, err := NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("failed to set up transcript cache: %w", err)
	}
	log.Infof("Caching transcripts in Redis at %s for %s", cfg.RedisAddr, cfg.TranscriptCacheTTL)
	src.Fetcher = NewCachedFetcher(base, cache, cfg.TranscriptCacheTTL)
	src.closers = append(src.closers, cache.Close)
	return src, nil
}

// Close releases the cache connection, if any
func (s *Source) Close() {
	for _, c := range s.closers {
		if err := c(); err != nil {
			log.Warnf("Failed to close transcript cache: %v", err)
		}
	}
}
