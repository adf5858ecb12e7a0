package util

import "errors"

// Sentinel errors for common failure modes
var (
	// ErrUnreadable indicates a file could not be decoded or parsed
	ErrUnreadable = errors.New("unreadable file")

	// ErrEmptyTable indicates a file parsed to no usable rows
	ErrEmptyTable = errors.New("empty table")

	// ErrUnsupported indicates a file format is not supported
	ErrUnsupported = errors.New("unsupported format")

	// ErrNotFound indicates a required resource was not found
	ErrNotFound = errors.New("not found")

	// ErrNoUsableRows indicates every row was rejected during cleaning
	ErrNoUsableRows = errors.New("no usable rows")

	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")
)
