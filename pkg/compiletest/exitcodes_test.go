package compiletest_test

import (
	"testing"

	"github.com/AndreyAkinshin/compiletest/internal/errors"
	"github.com/AndreyAkinshin/compiletest/pkg/compiletest"
)

// TestExitCodeValues verifies that exit code constants have the expected values.
func TestExitCodeValues(t *testing.T) {
	tests := []struct {
		name     string
		constant int
		expected int
	}{
		{"ExitSuccess", compiletest.ExitSuccess, 0},
		{"ExitFailure", compiletest.ExitFailure, 1},
		{"ExitConfigError", compiletest.ExitConfigError, 2},
		{"ExitEnvError", compiletest.ExitEnvError, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.expected {
				t.Errorf("compiletest.%s = %d, want %d", tt.name, tt.constant, tt.expected)
			}
		})
	}
}

// TestExitCodeConsistency verifies that public exit code constants match
// the internal errors package constants. This prevents drift between
// the public API and internal implementation.
func TestExitCodeConsistency(t *testing.T) {
	tests := []struct {
		name     string
		public   int
		internal int
	}{
		{"Success", compiletest.ExitSuccess, errors.ExitSuccess},
		{"Failure/RuntimeError", compiletest.ExitFailure, errors.ExitRuntimeError},
		{"ConfigError", compiletest.ExitConfigError, errors.ExitConfigError},
		{"EnvError/EnvironmentError", compiletest.ExitEnvError, errors.ExitEnvironmentError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.public != tt.internal {
				t.Errorf("exit code mismatch: compiletest constant = %d, errors constant = %d",
					tt.public, tt.internal)
			}
		})
	}
}
