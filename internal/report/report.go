// Package report aggregates verdicts and renders the run summary.
package report

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/compiletest/internal/errors"
	"github.com/AndreyAkinshin/compiletest/internal/invoke"
	"github.com/AndreyAkinshin/compiletest/internal/output"
	"github.com/AndreyAkinshin/compiletest/internal/verdict"
)

// maxExcerptLines bounds the diagnostic excerpt printed per failure.
// The full text stays in the verdict; only the report is trimmed.
const maxExcerptLines = 12

var titleCaser = cases.Title(language.English)

// RunSummary is the aggregate result of a run. Failures are ordered by
// fixture name so the report is stable across permutations of verdict
// arrival order.
type RunSummary struct {
	Total    int
	Passed   int
	Failed   int
	Failures []verdict.Verdict
}

// ExitCode maps the summary to the process exit status.
func (s *RunSummary) ExitCode() int {
	if s.Failed > 0 {
		return errors.ExitRuntimeError
	}
	return errors.ExitSuccess
}

// Reporter accumulates verdicts from concurrently running invocations.
// Aggregation is commutative: any arrival order yields the same summary.
type Reporter struct {
	mu       sync.Mutex
	verdicts []verdict.Verdict
}

// NewReporter creates an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Add records one verdict. Safe for concurrent use.
func (r *Reporter) Add(v verdict.Verdict) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verdicts = append(r.verdicts, v)
}

// Summary finalizes the aggregate. The reporter can keep receiving
// verdicts afterwards; Summary snapshots what has arrived so far, which
// is what makes partial reporting on cancellation possible.
func (r *Reporter) Summary() RunSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := RunSummary{Total: len(r.verdicts)}
	for _, v := range r.verdicts {
		if v.Passed {
			s.Passed++
		} else {
			s.Failed++
			s.Failures = append(s.Failures, v)
		}
	}

	sort.Slice(s.Failures, func(i, j int) bool {
		return s.Failures[i].Fixture.Name < s.Failures[j].Fixture.Name
	})

	return s
}

// Print renders the human-readable report for a finished (or interrupted)
// run: aggregate counts plus per-failure detail with enough context to
// reproduce the failing invocation manually.
func Print(out *output.Writer, s RunSummary) {
	out.SummaryHeader("Conformance Summary")

	out.SummaryPassed("Passed", fmt.Sprintf("%d", s.Passed))
	if s.Failed > 0 {
		out.SummaryFailed("Failed", fmt.Sprintf("%d", s.Failed))
	}
	out.SummaryItem("Total", fmt.Sprintf("%d", s.Total))

	if len(s.Failures) > 0 {
		out.Println("")
		out.SummarySectionLabel("Failures:")
		for _, v := range s.Failures {
			printFailure(out, v)
		}
	}

	if s.Failed == 0 {
		out.FinalSuccess("All %d fixtures passed.", s.Total)
	} else {
		out.FinalFailure("%d of %d fixtures failed.", s.Failed, s.Total)
	}
}

// printFailure renders one failing fixture: path, expected vs actual,
// and a diagnostic excerpt.
func printFailure(out *output.Writer, v verdict.Verdict) {
	out.Println("")
	out.Println("  %s: %s", v.Fixture.Name, titleCaser.String(v.Reason.String()))
	out.Println("    expected: %s", v.Fixture.Expectation)
	out.Println("    actual:   %s", describeResult(v.Result))

	excerpt := diagnosticExcerpt(v.Result.Stderr)
	if excerpt == "" {
		out.Println("    (no diagnostic output)")
		return
	}
	out.Println("    stderr:")
	for _, line := range strings.Split(excerpt, "\n") {
		out.Println("      %s", line)
	}
}

// describeResult summarizes the invocation outcome for the report.
func describeResult(res invoke.Result) string {
	switch res.Status {
	case invoke.StatusCompleted:
		return fmt.Sprintf("exit %d in %s", res.ExitCode, res.Duration.Round(time.Millisecond))
	default:
		return fmt.Sprintf("%s after %s", res.Status, res.Duration.Round(time.Millisecond))
	}
}

// diagnosticExcerpt returns at most maxExcerptLines of stderr, trimmed.
func diagnosticExcerpt(stderr string) string {
	trimmed := strings.TrimSpace(stderr)
	if trimmed == "" {
		return ""
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) > maxExcerptLines {
		omitted := len(lines) - maxExcerptLines
		lines = append(lines[:maxExcerptLines], fmt.Sprintf("... (%d more lines)", omitted))
	}
	return strings.Join(lines, "\n")
}
