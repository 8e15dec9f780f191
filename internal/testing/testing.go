// package testing contains shared testing utilities
package testing

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"

	"github.com/desertthunder/ytt/internal/shared"
	"github.com/desertthunder/ytt/internal/transcript"
)

// MockProvider is a test double for [transcript.Provider]
type MockProvider struct {
	Fragments []transcript.Fragment
	Err       error
	Calls     int
	Method    string
}

func (m *MockProvider) Fetch(ctx context.Context, videoID string) ([]transcript.Fragment, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Fragments, nil
}

func (m *MockProvider) Name() string {
	if m.Method != "" {
		return m.Method
	}
	return transcript.MethodYouTubeTranscriptAPI
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MustOpenDB opens an in-memory SQLite database with all migrations applied.
// The connection is closed when the test finishes.
func MustOpenDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}
