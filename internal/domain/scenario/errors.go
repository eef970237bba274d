package scenario

import "errors"

// Sentinel kinds for scenario document errors.
var (
	ErrInvalidScenario = errors.New("invalid scenario document")
)
