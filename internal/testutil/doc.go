// Package testutil provides testing utilities for orawatch tests.
//
// This package contains fake implementations and test setup helpers used across
// test files. It should only be imported by test files (*_test.go) and will not
// be included in production binaries.
//
// The package includes:
//   - Fake spots counting discovery and close calls
//   - Mock readers for targets and sections
//   - Oracle Free container setup for integration tests
package testutil
