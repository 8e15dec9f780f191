// package transcript resolves YouTube video identifiers and retrieves
// caption transcripts through pluggable providers.
//
// The youtube-transcript-api backend is the only provider; the
// interface keeps the retrieval mechanism opaque to the rest of the
// program and lets tests substitute a double.
package transcript

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/ytt/internal/shared"
)

// MethodYouTubeTranscriptAPI is the method tag stamped on successful
// envelopes. Downstream consumers match on this literal.
const MethodYouTubeTranscriptAPI = "youtube-transcript-api"

var (
	ErrTranscriptsDisabled = fmt.Errorf("transcripts are disabled")
	ErrUnknownBackend      = fmt.Errorf("unknown transcript backend")
)

// Fragment is one timed caption unit returned by a provider.
type Fragment struct {
	Text     string
	Start    float64
	Duration float64
}

// Provider fetches the ordered caption fragments for a video identifier.
//
// Failure kinds are enumerated through sentinel errors: a disabled
// caption track surfaces as [ErrTranscriptsDisabled] (wrapped or bare),
// anything else is a generic failure whose message is passed through.
type Provider interface {
	// Fetch retrieves fragments in caption order. Single attempt, no retries.
	Fetch(ctx context.Context, videoID string) ([]Fragment, error)

	// Name returns the method tag identifying this backend.
	Name() string
}

// Cache is the optional read-through store consulted before the provider.
type Cache interface {
	// Get returns the cached transcript for a video, or nil on a miss.
	Get(videoID string) (*CachedTranscript, error)

	// Put stores a fetched transcript. Duplicate video IDs are ignored.
	Put(videoID, transcript, method string) error
}

// CachedTranscript is a previously fetched transcript with the method
// tag of the backend that produced it.
type CachedTranscript struct {
	VideoID    string
	Transcript string
	Method     string
}

// Lookup resolves a configured backend name to a Provider.
//
// An empty name selects the default backend. Resolution happens before
// any argument handling so a misconfigured backend short-circuits the
// whole run.
func Lookup(name string, cfg shared.TranscriptConfig) (Provider, error) {
	switch name {
	case "", MethodYouTubeTranscriptAPI:
		return NewYTAPIProvider(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// Envelope is the single JSON object printed per invocation.
//
// Success envelopes always carry "transcript" and "method" keys, even
// for an empty transcript; failure envelopes carry only "error".
type Envelope struct {
	Success    bool
	Transcript string
	Method     string
	Err        string
}

// Succeed wraps a transcript and the method tag of the backend that produced it.
func Succeed(transcript, method string) Envelope {
	return Envelope{Success: true, Transcript: transcript, Method: method}
}

// Fail wraps a user-facing error message.
func Fail(message string) Envelope {
	return Envelope{Err: message}
}

// MarshalJSON renders the fixed wire shape for each outcome.
func (e Envelope) MarshalJSON() ([]byte, error) {
	if e.Success {
		return json.Marshal(struct {
			Success    bool   `json:"success"`
			Transcript string `json:"transcript"`
			Method     string `json:"method"`
		}{true, e.Transcript, e.Method})
	}
	return json.Marshal(struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{false, e.Err})
}
