// Package errs provides standardized error types for the dispatch engine.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classification works against the sentinel
//
// Domain-rule violations that have their own identity (invalid status
// transition, already assigned, already resolved) live next to their
// aggregates as plain sentinel errors; this package carries the generic
// kinds shared by all of them.
package errs
