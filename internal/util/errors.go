package util

import "errors"

// Sentinel errors for common failure modes
var (
	// ErrNotFound indicates a required resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidKey indicates an unknown sort or group key
	ErrInvalidKey = errors.New("invalid key")

	// ErrUnsupportedFormat indicates a catalog file format that cannot be decoded
	ErrUnsupportedFormat = errors.New("unsupported catalog format")

	// ErrFetch indicates the catalog endpoint could not be read
	ErrFetch = errors.New("catalog fetch failed")

	// ErrNoSnapshot indicates no stored snapshot exists for a source
	ErrNoSnapshot = errors.New("no snapshot")
)
