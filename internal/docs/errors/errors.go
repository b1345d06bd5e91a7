package errors

// Package errors provides sentinel errors for documentation tree operations.
// These enable consistent classification and improved error handling for walk failures.

import "errors"

var (
	// ErrDocsPathNotFound indicates a documentation root does not exist.
	ErrDocsPathNotFound = errors.New("documentation path not found")

	// ErrDocsDirWalkFailed indicates filesystem traversal of a docs directory failed.
	ErrDocsDirWalkFailed = errors.New("documentation directory walk failed")

	// ErrFileReadFailed indicates reading content from a discovered documentation file failed.
	ErrFileReadFailed = errors.New("documentation file read failed")

	// ErrMissingHeading indicates a content file has no first-level heading.
	ErrMissingHeading = errors.New("no # heading found")

	// ErrDuplicateTitle indicates two files in one language tree derive the same title.
	ErrDuplicateTitle = errors.New("duplicate title found")
)
