package repository

import "errors"

// Sentinel kinds for ledger errors.
var (
	// ErrBusy means the cross-process lock could not be acquired within
	// the configured timeout. The store is untouched; callers may retry.
	ErrBusy = errors.New("submission store busy")

	// ErrCorruptStore means the backing file does not match the expected
	// schema or holds an unparseable row. Surfaced, never papered over.
	ErrCorruptStore = errors.New("corrupt submission store")
)
