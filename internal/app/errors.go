package app

import "errors"

// Sentinel error kinds returned by Run.
var (
	// ErrNoPolars means no input file could be turned into a report entry.
	ErrNoPolars = errors.New("no valid polar files")

	ErrMissingPaths = errors.New("input directory and output path are required")
)
