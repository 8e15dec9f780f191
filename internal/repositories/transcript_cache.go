package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/ytt/internal/transcript"
)

// CacheAdapter implements transcript.Cache using TranscriptRepository.
//
// Duplicate video IDs are silently ignored (UNIQUE constraint
// violations), so concurrent runs never fail a fetch over the cache.
type CacheAdapter struct {
	repo *TranscriptRepository
}

// NewCacheAdapter creates a new CacheAdapter with the given repository
func NewCacheAdapter(repo *TranscriptRepository) *CacheAdapter {
	return &CacheAdapter{repo: repo}
}

// Get returns the cached transcript for a video, or nil on a miss.
func (a *CacheAdapter) Get(videoID string) (*transcript.CachedTranscript, error) {
	record, err := a.repo.GetByVideoID(videoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &transcript.CachedTranscript{
		VideoID:    record.VideoID,
		Transcript: record.Transcript,
		Method:     record.Method,
	}, nil
}

// Put stores a fetched transcript.
// Returns nil if the video is already cached (deduplication).
func (a *CacheAdapter) Put(videoID, text, method string) error {
	existing, err := a.repo.GetByVideoID(videoID)
	if err == nil && existing != nil {
		return nil
	}

	record := &Record{VideoID: videoID, Transcript: text, Method: method}

	if err := a.repo.Create(record); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache transcript: %w", err)
	}

	return nil
}
