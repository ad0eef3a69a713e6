// Package errors defines sentinel errors for Sprout operations.
//
// Callers match these with errors.Is to distinguish expected failure modes
// (a missing template, a path occupied by the wrong kind of entry) from
// plain filesystem errors, which are wrapped with path context and
// propagated unmodified.
package errors
