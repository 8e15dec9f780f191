package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/ytt/internal/shared"
)

// Record is one cached transcript row.
type Record struct {
	ID         string     `json:"id"`
	Sequence   int        `json:"-"`
	VideoID    string     `json:"video_id"`
	Transcript string     `json:"transcript"`
	Method     string     `json:"method"`
	Language   string     `json:"language,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"-"`
}

// TranscriptRepository handles CRUD operations for cached transcripts
// with soft-delete support and video-id lookups.
type TranscriptRepository struct {
	db *sql.DB
}

// NewTranscriptRepository creates a new TranscriptRepository with the given database connection
func NewTranscriptRepository(db *sql.DB) *TranscriptRepository {
	return &TranscriptRepository{db: db}
}

// Create inserts a new [Record] into the database with generated ID and sequence
func (r *TranscriptRepository) Create(record *Record) error {
	if record.VideoID == "" {
		return fmt.Errorf("%w: video_id is required", shared.ErrInvalidInput)
	}

	sequence, err := NextSequence(r.db, "transcripts")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now().UTC()
	record.ID = shared.GenerateID()
	record.Sequence = sequence
	record.CreatedAt = now
	record.UpdatedAt = now

	query := `
		INSERT INTO transcripts (id, sequence, video_id, transcript, method, language, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		record.ID,
		record.Sequence,
		record.VideoID,
		record.Transcript,
		record.Method,
		record.Language,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transcript: %w", err)
	}

	return nil
}

// Get retrieves a record by ID, excluding soft-deleted rows
func (r *TranscriptRepository) Get(id string) (*Record, error) {
	query := `
		SELECT id, sequence, video_id, transcript, method, language, created_at, updated_at, deleted_at
		FROM transcripts
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByVideoID retrieves a record by video ID, excluding soft-deleted rows
func (r *TranscriptRepository) GetByVideoID(videoID string) (*Record, error) {
	query := `
		SELECT id, sequence, video_id, transcript, method, language, created_at, updated_at, deleted_at
		FROM transcripts
		WHERE video_id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, videoID))
}

// List retrieves all cached transcripts ordered by sequence, excluding soft-deleted rows
func (r *TranscriptRepository) List() ([]Record, error) {
	query := `
		SELECT id, sequence, video_id, transcript, method, language, created_at, updated_at, deleted_at
		FROM transcripts
		WHERE deleted_at IS NULL
		ORDER BY sequence
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list transcripts: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transcripts: %w", err)
	}

	return records, nil
}

// Delete soft-deletes a record by ID
func (r *TranscriptRepository) Delete(id string) error {
	result, err := r.db.Exec("UPDATE transcripts SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete transcript: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Clear soft-deletes every cached transcript and returns the number of rows affected
func (r *TranscriptRepository) Clear() (int, error) {
	result, err := r.db.Exec("UPDATE transcripts SET deleted_at = ? WHERE deleted_at IS NULL", time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to clear transcripts: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check clear result: %w", err)
	}

	return int(affected), nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*Record, error) {
	var record Record
	var deletedAt sql.NullTime

	err := s.Scan(
		&record.ID,
		&record.Sequence,
		&record.VideoID,
		&record.Transcript,
		&record.Method,
		&record.Language,
		&record.CreatedAt,
		&record.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	if deletedAt.Valid {
		record.DeletedAt = &deletedAt.Time
	}

	return &record, nil
}

func (r *TranscriptRepository) scanOne(row *sql.Row) (*Record, error) {
	record, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan transcript: %w", err)
	}
	return record, nil
}
