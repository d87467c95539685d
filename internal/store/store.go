// Package store persists analysis results keyed by student and job. A second
// analysis for the same pair replaces the first.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/campus-match/internal/analysis"
	"github.com/spigell/campus-match/internal/matching"
	"github.com/spigell/campus-match/internal/resume"
)

var (
	ErrNotFound   = errors.New("analysis record not found")
	ErrInvalidKey = errors.New("student id and job id are required")
)

type Key struct {
	StudentID string `json:"studentId"`
	JobID     string `json:"jobId"`
}

func (k Key) Validate() error {
	if strings.TrimSpace(k.StudentID) == "" || strings.TrimSpace(k.JobID) == "" {
		return ErrInvalidKey
	}
	return nil
}

type Record struct {
	ID          uuid.UUID             `json:"id"`
	Key         Key                   `json:"key"`
	Match       *matching.Result      `json:"match,omitempty"`
	Profile     *resume.Profile       `json:"profile,omitempty"`
	Suggestions []analysis.Suggestion `json:"suggestions,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// Store is a keyed upsert store. Upsert keeps the ID and CreatedAt of an
// existing record and returns the stored version.
type Store interface {
	Upsert(ctx context.Context, rec Record) (Record, error)
	Get(ctx context.Context, key Key) (Record, error)
}
