package transcript

import (
	"context"
	"strings"

	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript"
	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript_models"
	"golang.org/x/time/rate"

	"github.com/desertthunder/ytt/internal/shared"
)

// transcriptClient is the slice of the youtube-transcript-api-go client
// this provider depends on.
type transcriptClient interface {
	GetTranscripts(videoID string, languages []string) ([]yt_transcript_models.Transcript, error)
}

// YTAPIProvider retrieves transcripts through the
// youtube-transcript-api-go client.
//
// The client has no context support of its own, so Fetch races the
// library call against ctx in a goroutine. A rate limiter throttles
// requests against YouTube when configured.
type YTAPIProvider struct {
	client             transcriptClient
	languages          []string
	preserveFormatting bool
	limiter            *rate.Limiter
}

// NewYTAPIProvider creates a provider from transcript settings.
// Languages default to English; a non-positive rate limit disables throttling.
func NewYTAPIProvider(cfg shared.TranscriptConfig) *YTAPIProvider {
	languages := cfg.Languages
	if len(languages) == 0 {
		languages = []string{"en"}
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	return &YTAPIProvider{
		client:             yt_transcript.NewClient(),
		languages:          languages,
		preserveFormatting: cfg.PreserveFormatting,
		limiter:            rate.NewLimiter(limit, 1),
	}
}

// Name returns the method tag for this backend.
func (p *YTAPIProvider) Name() string {
	return MethodYouTubeTranscriptAPI
}

// Fetch retrieves the caption fragments for videoID in caption order.
func (p *YTAPIProvider) Fetch(ctx context.Context, videoID string) ([]Fragment, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	type result struct {
		transcripts []yt_transcript_models.Transcript
		err         error
	}

	ch := make(chan result, 1)
	go func() {
		transcripts, err := p.client.GetTranscripts(videoID, p.languages)
		ch <- result{transcripts, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.err != nil {
			return nil, classify(res.err)
		}
		return fragments(res.transcripts), nil
	}
}

// classify maps library failures onto the package's sentinel errors.
// The client reports conditions through error messages only.
func classify(err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "disabled") {
		return ErrTranscriptsDisabled
	}
	return err
}

// fragments flattens the first returned transcript into caption fragments.
func fragments(transcripts []yt_transcript_models.Transcript) []Fragment {
	if len(transcripts) == 0 {
		return nil
	}

	lines := transcripts[0].Lines
	out := make([]Fragment, len(lines))
	for i, line := range lines {
		out[i] = Fragment{Text: line.Text, Start: line.Start, Duration: line.Duration}
	}

	return out
}
