package models

import (
	"errors"
)

// Sentinel errors shared across services and handlers. Wrap these with
// context via fmt.Errorf("...: %w", err) and test with errors.Is.
var (
	// ErrUnsupportedFileType marks an upload whose extension has no
	// extraction path.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrCapabilityUnavailable marks an operation whose backing tool or
	// credential is absent (OCR binary not installed, Drive token not
	// configured, no PDF renderer). Distinct from a parse failure on a
	// well-formed request.
	ErrCapabilityUnavailable = errors.New("capability unavailable")

	// ErrMemoNotFound marks a lookup for a memo record that does not exist.
	ErrMemoNotFound = errors.New("memo not found")

	// ErrEmptyDocument marks an extraction run that produced no usable text.
	ErrEmptyDocument = errors.New("no text content extracted")
)
