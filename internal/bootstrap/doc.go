// Package bootstrap seeds a project's environment-secrets layout.
//
// Run performs the idempotent bootstrap: it copies checked-in templates to
// the base and per-environment secrets files that don't exist yet and
// creates the secrets directory. Files that already exist are never
// touched, so user-edited secrets survive any number of runs.
//
// A missing template is a fatal condition surfaced as
// errors.ErrTemplateMissing naming every path that was tried. All other
// filesystem failures are wrapped with path context and propagated.
package bootstrap
