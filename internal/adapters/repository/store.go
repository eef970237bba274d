// Package repository owns durable access to the submission history. The
// backing store is a flat CSV file shared by independent processes; an OS
// advisory file lock serializes every mutation.
package repository

import (
	"context"

	"github.com/okian/raceboard/internal/domain/model"
)

// Ledger provides append-and-read access to the full submission history.
type Ledger interface {
	// Initialize idempotently ensures the backing store exists with the
	// expected schema. It never truncates an existing store and is safe
	// to call from multiple processes at startup.
	Initialize(ctx context.Context) error

	// Append durably adds one record under the exclusive cross-process
	// lock. It blocks up to the configured timeout and returns ErrBusy on
	// expiry, leaving the store exactly as it was.
	Append(ctx context.Context, rec model.SubmissionRecord) error

	// ReadAll returns the current full history without taking the lock.
	// A read racing a writer observes either the pre- or post-append
	// contents, never a partial row.
	ReadAll(ctx context.Context) ([]model.SubmissionRecord, error)

	// ResetAll removes every record and reinitializes the empty store,
	// under the same lock and timeout contract as Append.
	ResetAll(ctx context.Context) error
}
