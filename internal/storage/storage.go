// Package storage persists document text between sessions.
package storage

import (
	"context"
	"errors"

	"github.com/jonathan/resumeace/internal/types"
)

// ErrNotFound is returned by Get when no value is stored under the key
var ErrNotFound = errors.New("storage: key not found")

// Store is a small string key/value store
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Storage keys for the two document streams
const (
	ResumeKey      = "resumeace-resume-content"
	CoverLetterKey = "resumeace-coverletter-content"
)

// ContentKey returns the storage key holding the text of mode
func ContentKey(mode types.Mode) string {
	if mode == types.ModeCoverLetter {
		return CoverLetterKey
	}
	return ResumeKey
}
