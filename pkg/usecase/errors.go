package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	// Submission errors
	ErrEmptySelection       = goerr.New("selection resolves to no checks")
	ErrSubjectNameRequired  = goerr.New("subject name is required")
	ErrInvalidSelectionMode = goerr.New("invalid selection mode")
	ErrInvalidEntityType    = goerr.New("invalid entity type")
)

// Context keys for error values
const (
	SubjectNameKey = "subject_name"
	ModeKey        = "mode"
)
