// Package compiletest provides public constants for external tools
// integrating with the compiletest harness.
package compiletest

// Exit codes returned by the compiletest CLI.
// These constants allow build scripts and CI pipelines to check exit codes
// symbolically rather than using magic numbers.
const (
	// ExitSuccess indicates every fixture's verdict matched its expectation.
	ExitSuccess = 0

	// ExitFailure indicates at least one fixture mismatched its expectation.
	ExitFailure = 1

	// ExitConfigError indicates a configuration error (invalid config file,
	// schema validation failure, etc.).
	ExitConfigError = 2

	// ExitEnvError indicates an environment error (missing dependency
	// artifact, compiler not found, unreadable fixture directory, etc.).
	ExitEnvError = 3
)
