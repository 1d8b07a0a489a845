package config

import (
	"os"
	"os/exec"

	"github.com/AndreyAkinshin/compiletest/internal/errors"
)

// Worker pool bounds, shared with the harness.
const (
	MinJobs = 1
	MaxJobs = 256
)

// Validate checks the configuration against the environment before any
// invocation starts. A missing dependency artifact or fixture directory is
// a fatal environment error, deliberately distinct from a per-fixture
// failure: it means the harness is misconfigured, not that a test is broken.
func Validate(cfg *Config) error {
	if _, err := cfg.Run.TimeoutDuration(); err != nil {
		return err
	}

	if cfg.Run.Jobs != 0 && (cfg.Run.Jobs < MinJobs || cfg.Run.Jobs > MaxJobs) {
		return errors.Configf("jobs must be 0 (auto) or in range [%d-%d], got %d", MinJobs, MaxJobs, cfg.Run.Jobs)
	}

	info, err := os.Stat(cfg.Fixtures.Dir)
	if err != nil {
		return errors.PathError(cfg.Fixtures.Dir, "fixture directory not readable", err)
	}
	if !info.IsDir() {
		return errors.PathError(cfg.Fixtures.Dir, "fixture path is not a directory", nil)
	}

	if _, err := exec.LookPath(cfg.Compiler.Path); err != nil {
		return errors.Environmentf("compiler not found: %s", cfg.Compiler.Path)
	}

	if cfg.Compiler.Deps != "" {
		if _, err := os.Stat(cfg.Compiler.Deps); err != nil {
			return errors.PathError(cfg.Compiler.Deps, "dependency search directory missing", err)
		}
	}

	for _, ext := range []*ExternConfig{cfg.Compiler.Library, cfg.Compiler.Derive} {
		if ext == nil {
			continue
		}
		if ext.Name == "" || ext.Path == "" {
			return errors.Config("extern entries require both name and path")
		}
		if _, err := os.Stat(ext.Path); err != nil {
			return errors.PathError(ext.Path, "dependency artifact missing", err)
		}
	}

	return nil
}
