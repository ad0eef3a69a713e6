package errors

import "errors"

// Template errors indicate a required seed template could not be found.
var (
	// ErrTemplateMissing indicates no usable template exists for a target file.
	// The wrapping error names every path that was tried.
	ErrTemplateMissing = errors.New("template not found")
)

// Target errors indicate a managed path exists with the wrong shape.
var (
	// ErrTargetNotRegular indicates a target file path is occupied by a
	// directory or other non-regular file.
	ErrTargetNotRegular = errors.New("target exists but is not a regular file")

	// ErrSecretsPathNotDir indicates the secrets directory path is occupied by a file.
	ErrSecretsPathNotDir = errors.New("secrets path exists but is not a directory")
)
