// Package errors provides classified error primitives used across docsgen.
//
// Key features:
//   - ErrorCategory: broad error classification (config, structure, template, filesystem, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity, and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and user-facing formatting
//
// Example usage:
//
//	err := errors.StructureError("no # heading found").
//		WithContext("path", path).
//		Build()
package errors
