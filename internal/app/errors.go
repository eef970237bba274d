package service

import "errors"

// Sentinel kinds for service errors.
var (
	// ErrValidation covers malformed answer sets: empty team name, bad
	// round, missing required answers, out-of-range selections. Nothing
	// is persisted; the caller re-prompts.
	ErrValidation = errors.New("invalid submission")

	// ErrUnknownScenario means the submission names a scenario the loaded
	// document does not define.
	ErrUnknownScenario = errors.New("unknown scenario")

	// ErrUnauthorized means the provided admin code did not match.
	ErrUnauthorized = errors.New("wrong admin code")

	// ErrNotStarted means the service was used before Start.
	ErrNotStarted = errors.New("service not started")
)
