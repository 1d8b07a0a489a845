package invoke

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"
)

// Status classifies how an invocation terminated.
type Status int

const (
	// StatusCompleted means the compiler ran to completion and reported
	// an exit code (zero or nonzero).
	StatusCompleted Status = iota
	// StatusTimedOut means the invocation exceeded its timeout and was killed.
	StatusTimedOut
	// StatusCrashed means the compiler was terminated by a signal rather
	// than exiting on its own.
	StatusCrashed
	// StatusLaunchFailed means the child process could not be started.
	StatusLaunchFailed
)

// String returns the human-readable form used in reports.
func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusTimedOut:
		return "timed out"
	case StatusCrashed:
		return "crashed"
	case StatusLaunchFailed:
		return "failed to launch"
	default:
		return "unknown"
	}
}

// Result is the outcome of running one Spec. A timeout or launch failure
// is represented as a result value, never as an error that aborts the run.
type Result struct {
	Status   Status
	ExitCode int
	Stderr   string
	Duration time.Duration
}

// Runner executes compiler invocations as isolated child processes.
// A Runner is stateless and safe for concurrent use.
type Runner struct{}

// NewRunner creates a Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Compile runs one invocation with a bounded wait time, capturing exit
// status and diagnostic output. It returns a Result in all cases; the
// caller decides what a given status means for the fixture's verdict.
func (r *Runner) Compile(ctx context.Context, spec Spec) Result {
	cctx, cancel := context.WithTimeout(ctx, spec.Timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, spec.Executable, spec.Args...)
	cmd.Dir = spec.WorkDir
	cmd.Env = os.Environ()
	cmd.Stdout = io.Discard

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	// Without a wait delay, an orphaned grandchild holding the stderr pipe
	// keeps Run blocked long after the compiler itself was killed.
	cmd.WaitDelay = 2 * time.Second

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	res := Result{
		Stderr:   stderr.String(),
		Duration: duration,
	}

	switch {
	case err == nil:
		res.Status = StatusCompleted
		res.ExitCode = 0
	case cctx.Err() == context.DeadlineExceeded:
		res.Status = StatusTimedOut
		res.ExitCode = -1
	default:
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// The process never started (executable missing, permission
			// denied, etc.). This is an infrastructure problem, not a
			// compile rejection.
			res.Status = StatusLaunchFailed
			res.ExitCode = -1
			res.Stderr = err.Error()
			break
		}
		if exitErr.ProcessState != nil && !exitErr.ProcessState.Exited() {
			// Killed by a signal. Not evidence of an intended
			// compile-time rejection.
			res.Status = StatusCrashed
			res.ExitCode = -1
			break
		}
		res.Status = StatusCompleted
		res.ExitCode = exitErr.ExitCode()
	}

	return res
}
