// Package verdict compares invocation outcomes against fixture expectations.
//
// Evaluation is pure: no I/O, deterministic given its inputs. This keeps
// the pass/fail logic unit-testable with fabricated outcomes, without ever
// spawning a real compiler process.
package verdict

import (
	"strings"

	"github.com/AndreyAkinshin/compiletest/internal/fixture"
	"github.com/AndreyAkinshin/compiletest/internal/invoke"
)

// Reason explains why a fixture failed.
type Reason int

const (
	// ReasonNone is the reason carried by passing verdicts.
	ReasonNone Reason = iota
	// ReasonCompileFailed: the fixture had to compile but the compiler rejected it.
	ReasonCompileFailed
	// ReasonCompileSucceeded: the fixture had to be rejected but compiled cleanly.
	ReasonCompileSucceeded
	// ReasonWrongDiagnostic: the compiler rejected the fixture but the
	// diagnostic did not contain the expected marker (strict mode).
	ReasonWrongDiagnostic
	// ReasonTimeout: the invocation exceeded its time budget.
	ReasonTimeout
	// ReasonCrash: the compiler died on a signal. A crash is not evidence
	// of an intended compile-time rejection, so it always fails.
	ReasonCrash
	// ReasonLaunchFailed: the compiler process could not be started.
	// Distinguished from compile outcomes so a broken environment is not
	// mistaken for a genuine regression.
	ReasonLaunchFailed
)

// String returns the report wording for the reason.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonCompileFailed:
		return "expected success, got failure"
	case ReasonCompileSucceeded:
		return "expected failure, compiled successfully"
	case ReasonWrongDiagnostic:
		return "expected failure, wrong diagnostic"
	case ReasonTimeout:
		return "timeout"
	case ReasonCrash:
		return "non-diagnostic failure (crash)"
	case ReasonLaunchFailed:
		return "failed to launch compiler"
	default:
		return "unknown"
	}
}

// Verdict is the harness's judgment for one fixture.
// Verdicts are immutable once produced and are the only data that crosses
// into the reporter.
type Verdict struct {
	Fixture fixture.Fixture
	Passed  bool
	Reason  Reason
	Result  invoke.Result
}

// Evaluate produces the verdict for one fixture given its invocation
// result. strict requires must-fail fixtures with a diagnostic marker to
// actually emit that marker; fixtures without a marker fall back to
// exit-status-only evaluation.
func Evaluate(fx fixture.Fixture, res invoke.Result, strict bool) Verdict {
	v := Verdict{Fixture: fx, Result: res}

	switch res.Status {
	case invoke.StatusTimedOut:
		v.Reason = ReasonTimeout
		return v
	case invoke.StatusCrashed:
		v.Reason = ReasonCrash
		return v
	case invoke.StatusLaunchFailed:
		v.Reason = ReasonLaunchFailed
		return v
	}

	compiled := res.ExitCode == 0

	switch fx.Expectation {
	case fixture.MustSucceed:
		if compiled {
			v.Passed = true
		} else {
			v.Reason = ReasonCompileFailed
		}
	case fixture.MustFail:
		switch {
		case compiled:
			v.Reason = ReasonCompileSucceeded
		case strict && fx.Marker != "" && !strings.Contains(res.Stderr, fx.Marker):
			v.Reason = ReasonWrongDiagnostic
		default:
			v.Passed = true
		}
	}

	return v
}
