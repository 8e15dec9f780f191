package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/ytt/internal/shared"
)

// stubProvider is an in-package test double for Provider.
type stubProvider struct {
	fragments []Fragment
	err       error
	calls     int
}

func (s *stubProvider) Fetch(ctx context.Context, videoID string) ([]Fragment, error) {
	s.calls++
	return s.fragments, s.err
}

func (s *stubProvider) Name() string { return MethodYouTubeTranscriptAPI }

// stubCache is an in-memory Cache double.
type stubCache struct {
	entries map[string]*CachedTranscript
	getErr  error
	putErr  error
	puts    int
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string]*CachedTranscript{}}
}

func (s *stubCache) Get(videoID string) (*CachedTranscript, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.entries[videoID], nil
}

func (s *stubCache) Put(videoID, transcript, method string) error {
	s.puts++
	if s.putErr != nil {
		return s.putErr
	}
	s.entries[videoID] = &CachedTranscript{VideoID: videoID, Transcript: transcript, Method: method}
	return nil
}

func TestFetcher(t *testing.T) {
	ctx := context.Background()

	t.Run("joins fragment texts with single spaces", func(t *testing.T) {
		provider := &stubProvider{fragments: []Fragment{
			{Text: "hello", Start: 0, Duration: 1.5},
			{Text: "world", Start: 1.5, Duration: 2},
		}}
		fetcher := NewFetcher(provider, nil, nil)

		env := fetcher.Fetch(ctx, "dQw4w9WgXcQ")
		if !env.Success {
			t.Fatalf("expected success, got error %q", env.Err)
		}
		if env.Transcript != "hello world" {
			t.Errorf("expected 'hello world', got %q", env.Transcript)
		}
		if env.Method != "youtube-transcript-api" {
			t.Errorf("expected method youtube-transcript-api, got %q", env.Method)
		}
	})

	t.Run("does not trim fragment text", func(t *testing.T) {
		provider := &stubProvider{fragments: []Fragment{{Text: "hello "}, {Text: "world"}}}
		fetcher := NewFetcher(provider, nil, nil)

		if env := fetcher.Fetch(ctx, "dQw4w9WgXcQ"); env.Transcript != "hello  world" {
			t.Errorf("expected untrimmed join, got %q", env.Transcript)
		}
	})

	t.Run("empty fragment list succeeds with empty transcript", func(t *testing.T) {
		fetcher := NewFetcher(&stubProvider{}, nil, nil)

		env := fetcher.Fetch(ctx, "dQw4w9WgXcQ")
		if !env.Success {
			t.Fatalf("expected success, got error %q", env.Err)
		}
		if env.Transcript != "" {
			t.Errorf("expected empty transcript, got %q", env.Transcript)
		}
	})

	t.Run("disabled transcripts map to the fixed message", func(t *testing.T) {
		provider := &stubProvider{err: ErrTranscriptsDisabled}
		fetcher := NewFetcher(provider, nil, nil)

		env := fetcher.Fetch(ctx, "dQw4w9WgXcQ")
		if env.Success {
			t.Fatal("expected failure envelope")
		}
		if env.Err != "Transcript is disabled on this video" {
			t.Errorf("expected disabled message, got %q", env.Err)
		}
	})

	t.Run("wrapped disabled errors still map to the fixed message", func(t *testing.T) {
		provider := &stubProvider{err: fmt.Errorf("video dQw4w9WgXcQ: %w", ErrTranscriptsDisabled)}
		fetcher := NewFetcher(provider, nil, nil)

		if env := fetcher.Fetch(ctx, "dQw4w9WgXcQ"); env.Err != DisabledMessage {
			t.Errorf("expected disabled message, got %q", env.Err)
		}
	})

	t.Run("generic failures pass the message through verbatim", func(t *testing.T) {
		provider := &stubProvider{err: errors.New("no transcript found for language en")}
		fetcher := NewFetcher(provider, nil, nil)

		env := fetcher.Fetch(ctx, "dQw4w9WgXcQ")
		if env.Success {
			t.Fatal("expected failure envelope")
		}
		if env.Err != "no transcript found for language en" {
			t.Errorf("expected verbatim message, got %q", env.Err)
		}
	})

	t.Run("cache", func(t *testing.T) {
		t.Run("hit short-circuits the provider", func(t *testing.T) {
			provider := &stubProvider{fragments: []Fragment{{Text: "fresh"}}}
			cache := newStubCache()
			cache.entries["dQw4w9WgXcQ"] = &CachedTranscript{
				VideoID:    "dQw4w9WgXcQ",
				Transcript: "cached words",
				Method:     MethodYouTubeTranscriptAPI,
			}
			fetcher := NewFetcher(provider, cache, nil)

			env := fetcher.Fetch(ctx, "dQw4w9WgXcQ")
			if env.Transcript != "cached words" {
				t.Errorf("expected cached transcript, got %q", env.Transcript)
			}
			if provider.calls != 0 {
				t.Errorf("expected provider not to be called, got %d calls", provider.calls)
			}
		})

		t.Run("miss stores the fetched transcript", func(t *testing.T) {
			provider := &stubProvider{fragments: []Fragment{{Text: "hello"}, {Text: "world"}}}
			cache := newStubCache()
			fetcher := NewFetcher(provider, cache, nil)

			fetcher.Fetch(ctx, "dQw4w9WgXcQ")
			stored := cache.entries["dQw4w9WgXcQ"]
			if stored == nil {
				t.Fatal("expected transcript to be cached")
			}
			if stored.Transcript != "hello world" {
				t.Errorf("expected cached text 'hello world', got %q", stored.Transcript)
			}
			if stored.Method != MethodYouTubeTranscriptAPI {
				t.Errorf("expected cached method tag, got %q", stored.Method)
			}
		})

		t.Run("lookup failure falls through to the provider", func(t *testing.T) {
			provider := &stubProvider{fragments: []Fragment{{Text: "fresh"}}}
			cache := newStubCache()
			cache.getErr = errors.New("database locked")
			fetcher := NewFetcher(provider, cache, nil)

			env := fetcher.Fetch(ctx, "dQw4w9WgXcQ")
			if !env.Success || env.Transcript != "fresh" {
				t.Errorf("expected provider result, got %+v", env)
			}
		})

		t.Run("store failure does not fail the fetch", func(t *testing.T) {
			provider := &stubProvider{fragments: []Fragment{{Text: "fresh"}}}
			cache := newStubCache()
			cache.putErr = errors.New("disk full")
			fetcher := NewFetcher(provider, cache, nil)

			if env := fetcher.Fetch(ctx, "dQw4w9WgXcQ"); !env.Success {
				t.Errorf("expected success despite cache error, got %q", env.Err)
			}
		})

		t.Run("failures are not cached", func(t *testing.T) {
			provider := &stubProvider{err: errors.New("boom")}
			cache := newStubCache()
			fetcher := NewFetcher(provider, cache, nil)

			fetcher.Fetch(ctx, "dQw4w9WgXcQ")
			if cache.puts != 0 {
				t.Errorf("expected no cache writes, got %d", cache.puts)
			}
		})
	})
}

func TestEnvelope(t *testing.T) {
	t.Run("success shape", func(t *testing.T) {
		data, err := json.Marshal(Succeed("hello world", MethodYouTubeTranscriptAPI))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		expected := `{"success":true,"transcript":"hello world","method":"youtube-transcript-api"}`
		if string(data) != expected {
			t.Errorf("expected %s, got %s", expected, data)
		}
	})

	t.Run("success keeps transcript key when empty", func(t *testing.T) {
		data, err := json.Marshal(Succeed("", MethodYouTubeTranscriptAPI))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		expected := `{"success":true,"transcript":"","method":"youtube-transcript-api"}`
		if string(data) != expected {
			t.Errorf("expected %s, got %s", expected, data)
		}
	})

	t.Run("failure shape", func(t *testing.T) {
		data, err := json.Marshal(Fail("Invalid YouTube URL or ID"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		expected := `{"success":false,"error":"Invalid YouTube URL or ID"}`
		if string(data) != expected {
			t.Errorf("expected %s, got %s", expected, data)
		}
	})

	t.Run("every branch is valid JSON", func(t *testing.T) {
		for _, env := range []Envelope{
			Succeed("text", MethodYouTubeTranscriptAPI),
			Succeed("", ""),
			Fail("boom"),
			Fail(""),
		} {
			data, err := json.Marshal(env)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !json.Valid(data) {
				t.Errorf("expected valid JSON, got %s", data)
			}
		}
	})
}

func TestClassify(t *testing.T) {
	t.Run("maps disabled messages to the sentinel", func(t *testing.T) {
		err := classify(errors.New("transcripts are disabled for video dQw4w9WgXcQ"))
		if !errors.Is(err, ErrTranscriptsDisabled) {
			t.Errorf("expected ErrTranscriptsDisabled, got %v", err)
		}
	})

	t.Run("passes other errors through", func(t *testing.T) {
		orig := errors.New("no transcript found")
		if err := classify(orig); err != orig {
			t.Errorf("expected original error, got %v", err)
		}
	})
}

func TestLookup(t *testing.T) {
	cfg := shared.TranscriptConfig{}

	t.Run("resolves the default backend", func(t *testing.T) {
		provider, err := Lookup("", cfg)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if provider.Name() != MethodYouTubeTranscriptAPI {
			t.Errorf("expected default backend, got %s", provider.Name())
		}
	})

	t.Run("resolves the backend by method tag", func(t *testing.T) {
		if _, err := Lookup(MethodYouTubeTranscriptAPI, cfg); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("rejects unknown backends", func(t *testing.T) {
		_, err := Lookup("whisper", cfg)
		if !errors.Is(err, ErrUnknownBackend) {
			t.Errorf("expected ErrUnknownBackend, got %v", err)
		}
	})
}
