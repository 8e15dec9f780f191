package transcript

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/ytt/internal/shared"
)

// DisabledMessage is the user-facing error for videos with captions
// turned off. Downstream consumers match on this literal.
const DisabledMessage = "Transcript is disabled on this video"

// Fetcher orchestrates provider calls and optional read-through
// caching, producing the output envelope. Every failure becomes a
// failure envelope; nothing escapes as an error.
type Fetcher struct {
	provider Provider
	cache    Cache
	logger   *log.Logger
}

// NewFetcher creates a Fetcher. The cache may be nil to fetch
// uncached; the logger defaults to the shared stderr logger.
func NewFetcher(provider Provider, cache Cache, logger *log.Logger) *Fetcher {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Fetcher{
		provider: provider,
		cache:    cache,
		logger:   logger,
	}
}

// Fetch retrieves the transcript for a video ID and wraps the outcome.
//
// Fragment texts are joined with single spaces in caption order,
// untrimmed. A single attempt is made against the provider.
func (f *Fetcher) Fetch(ctx context.Context, videoID string) Envelope {
	if f.cache != nil {
		if cached, err := f.cache.Get(videoID); err != nil {
			f.logger.Warn("cache lookup failed", "video_id", videoID, "error", err)
		} else if cached != nil {
			f.logger.Debug("cache hit", "video_id", videoID)
			return Succeed(cached.Transcript, cached.Method)
		}
	}

	frags, err := f.provider.Fetch(ctx, videoID)
	if err != nil {
		if errors.Is(err, ErrTranscriptsDisabled) {
			return Fail(DisabledMessage)
		}
		return Fail(err.Error())
	}

	texts := make([]string, len(frags))
	for i, frag := range frags {
		texts[i] = frag.Text
	}
	text := strings.Join(texts, " ")

	if f.cache != nil {
		if err := f.cache.Put(videoID, text, f.provider.Name()); err != nil {
			f.logger.Warn("failed to cache transcript", "video_id", videoID, "error", err)
		}
	}

	return Succeed(text, f.provider.Name())
}
