package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/AndreyAkinshin/compiletest/internal/config"
	"github.com/AndreyAkinshin/compiletest/internal/errors"
	"github.com/AndreyAkinshin/compiletest/internal/harness"
	"github.com/AndreyAkinshin/compiletest/internal/report"
)

// loadConfig loads the configuration and applies command-line overrides.
// Returns the config and exit code 0 on success, or nil and the
// appropriate exit code on failure.
func loadConfig(opts *GlobalOptions) (*config.Config, int) {
	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return nil, errors.GetExitCode(err)
	}

	if opts.Dir != "" {
		cfg.Fixtures.Dir = opts.Dir
	}
	if opts.Jobs != 0 {
		cfg.Run.Jobs = opts.Jobs
	}
	if opts.Timeout != "" {
		cfg.Run.Timeout = opts.Timeout
	}
	if opts.Strict {
		cfg.Run.Strict = true
	}

	return cfg, 0
}

// cmdRun executes the whole conformance suite.
func cmdRun(opts *GlobalOptions) int {
	cfg, code := loadConfig(opts)
	if cfg == nil {
		return code
	}

	// Configuration problems are fatal before any invocation starts, with
	// an exit code distinct from fixture mismatches.
	if err := config.Validate(cfg); err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	// External interrupts terminate in-flight compilers but still report
	// the verdicts collected so far.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := harness.New(cfg, out)
	summary, err := h.Run(ctx)
	if err != nil {
		if summary.Total > 0 {
			report.Print(out, summary)
		}
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	report.Print(out, summary)
	return summary.ExitCode()
}
