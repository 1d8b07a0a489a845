// Package harness orchestrates a conformance run: discovery, parallel
// compiler invocation, evaluation, and aggregation.
package harness

import (
	"context"
	"os"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/AndreyAkinshin/compiletest/internal/config"
	"github.com/AndreyAkinshin/compiletest/internal/errors"
	"github.com/AndreyAkinshin/compiletest/internal/fixture"
	"github.com/AndreyAkinshin/compiletest/internal/invoke"
	"github.com/AndreyAkinshin/compiletest/internal/output"
	"github.com/AndreyAkinshin/compiletest/internal/report"
	"github.com/AndreyAkinshin/compiletest/internal/verdict"
)

// jobsEnvVar overrides the worker count without touching config or flags.
const jobsEnvVar = "COMPILETEST_JOBS"

// Compiler abstracts the toolchain invocation behind a narrow interface so
// the orchestration logic is testable with fabricated outcomes.
type Compiler interface {
	Compile(ctx context.Context, spec invoke.Spec) invoke.Result
}

// Harness runs the full fixture suite for one configuration.
type Harness struct {
	cfg      *config.Config
	compiler Compiler
	out      *output.Writer
}

// New creates a Harness that invokes the real compiler.
func New(cfg *config.Config, out *output.Writer) *Harness {
	return &Harness{cfg: cfg, compiler: invoke.NewRunner(), out: out}
}

// NewWithCompiler creates a Harness with a custom Compiler (for tests).
func NewWithCompiler(cfg *config.Config, compiler Compiler, out *output.Writer) *Harness {
	return &Harness{cfg: cfg, compiler: compiler, out: out}
}

// Run executes every discovered fixture and returns the aggregate summary.
//
// Fixtures are independent and run concurrently up to the configured
// worker limit. One slow or crashed invocation affects only its own
// verdict. On external cancellation, in-flight children are terminated
// and the summary still contains every verdict collected so far; the
// returned error then reports the interruption.
func (h *Harness) Run(ctx context.Context) (report.RunSummary, error) {
	fixtures, err := fixture.Discover(h.cfg.Fixtures.Dir, h.cfg.Fixtures.Pattern)
	if err != nil {
		return report.RunSummary{}, err
	}

	builder, err := invoke.NewBuilder(h.cfg)
	if err != nil {
		return report.RunSummary{}, err
	}

	reporter := report.NewReporter()
	strict := h.cfg.Run.Strict

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.workers())

	for _, fx := range fixtures {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			v := h.runOne(gctx, builder, fx, strict)
			if gctx.Err() != nil {
				// Canceled mid-invocation: the result reflects the kill,
				// not the compiler's judgment. Drop it.
				return gctx.Err()
			}

			reporter.Add(v)
			if v.Passed {
				h.out.FixturePassed(v.Fixture.Name)
			} else {
				h.out.FixtureFailed(v.Fixture.Name, v.Reason.String())
			}
			return nil
		})
	}

	waitErr := g.Wait()
	summary := reporter.Summary()

	if waitErr != nil {
		return summary, errors.Wrap(waitErr, "run interrupted")
	}
	return summary, nil
}

// runOne executes a single fixture in a scratch directory and evaluates
// the outcome. Scratch artifacts never survive past the invocation.
func (h *Harness) runOne(ctx context.Context, builder *invoke.Builder, fx fixture.Fixture, strict bool) verdict.Verdict {
	scratch, err := os.MkdirTemp("", "compiletest-*")
	if err != nil {
		// No scratch dir means the invocation cannot start; classify as
		// an infrastructure failure for this fixture only.
		return verdict.Evaluate(fx, invoke.Result{
			Status:   invoke.StatusLaunchFailed,
			ExitCode: -1,
			Stderr:   err.Error(),
		}, strict)
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	spec := builder.Build(fx, scratch)
	h.out.FixtureStart(fx.Name)
	h.out.Verbose("%s %s", spec.Executable, strings.Join(spec.Args, " "))

	res := h.compiler.Compile(ctx, spec)
	return verdict.Evaluate(fx, res, strict)
}

// workers resolves the worker pool size: explicit config wins, then the
// COMPILETEST_JOBS environment variable, then the CPU count. The result
// is always at least one so the pool cannot deadlock.
func (h *Harness) workers() int {
	if h.cfg.Run.Jobs != 0 {
		return clampWorkers(h.cfg.Run.Jobs)
	}

	env := os.Getenv(jobsEnvVar)
	if env == "" {
		return defaultWorkerCount()
	}

	n, err := strconv.Atoi(env)
	if err != nil {
		h.out.Warning("invalid %s value %q (not a number), using default", jobsEnvVar, env)
		return defaultWorkerCount()
	}
	if n < config.MinJobs || n > config.MaxJobs {
		h.out.Warning("%s=%d out of range [%d-%d], using default", jobsEnvVar, n, config.MinJobs, config.MaxJobs)
		return defaultWorkerCount()
	}
	return n
}

// defaultWorkerCount returns the CPU count, floored at one for
// containerized environments where CPU detection can fail.
func defaultWorkerCount() int {
	return max(config.MinJobs, runtime.NumCPU())
}

func clampWorkers(n int) int {
	if n < config.MinJobs {
		return config.MinJobs
	}
	if n > config.MaxJobs {
		return config.MaxJobs
	}
	return n
}
