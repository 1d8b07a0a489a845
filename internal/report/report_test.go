package report

import (
	"bytes"
	"math/rand"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AndreyAkinshin/compiletest/internal/fixture"
	"github.com/AndreyAkinshin/compiletest/internal/invoke"
	"github.com/AndreyAkinshin/compiletest/internal/output"
	"github.com/AndreyAkinshin/compiletest/internal/verdict"
)

func passVerdict(name string) verdict.Verdict {
	return verdict.Verdict{
		Fixture: fixture.Fixture{Name: name, Expectation: fixture.MustSucceed},
		Passed:  true,
		Result:  invoke.Result{Status: invoke.StatusCompleted},
	}
}

func failVerdict(name string, reason verdict.Reason, stderr string) verdict.Verdict {
	return verdict.Verdict{
		Fixture: fixture.Fixture{Name: name, Expectation: fixture.MustSucceed},
		Reason:  reason,
		Result: invoke.Result{
			Status:   invoke.StatusCompleted,
			ExitCode: 1,
			Stderr:   stderr,
			Duration: 250 * time.Millisecond,
		},
	}
}

func TestReporter_Summary(t *testing.T) {
	t.Parallel()
	r := NewReporter()
	r.Add(passVerdict("succ_a.rs"))
	r.Add(failVerdict("succ_b.rs", verdict.ReasonCompileFailed, "error: b"))
	r.Add(passVerdict("succ_c.rs"))
	r.Add(failVerdict("fail_d.rs", verdict.ReasonCompileSucceeded, ""))

	s := r.Summary()

	if s.Total != 4 || s.Passed != 2 || s.Failed != 2 {
		t.Errorf("Summary() = total %d passed %d failed %d", s.Total, s.Passed, s.Failed)
	}
	if len(s.Failures) != 2 {
		t.Fatalf("len(Failures) = %d, want 2", len(s.Failures))
	}
	// Failures sorted by fixture name.
	if s.Failures[0].Fixture.Name != "fail_d.rs" || s.Failures[1].Fixture.Name != "succ_b.rs" {
		t.Errorf("Failures order = [%s, %s]", s.Failures[0].Fixture.Name, s.Failures[1].Fixture.Name)
	}
}

// TestReporter_OrderIndependent feeds the same verdicts in random
// permutations and expects identical summaries.
func TestReporter_OrderIndependent(t *testing.T) {
	t.Parallel()
	verdicts := []verdict.Verdict{
		passVerdict("succ_a.rs"),
		failVerdict("succ_b.rs", verdict.ReasonCompileFailed, "error: b"),
		failVerdict("fail_c.rs", verdict.ReasonTimeout, ""),
		passVerdict("succ_d.rs"),
	}

	baseline := func() RunSummary {
		r := NewReporter()
		for _, v := range verdicts {
			r.Add(v)
		}
		return r.Summary()
	}()

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]verdict.Verdict, len(verdicts))
		copy(shuffled, verdicts)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		r := NewReporter()
		for _, v := range shuffled {
			r.Add(v)
		}
		if got := r.Summary(); !reflect.DeepEqual(got, baseline) {
			t.Fatalf("permutation %d produced different summary:\n%+v\nwant\n%+v", i, got, baseline)
		}
	}
}

func TestReporter_ConcurrentAdd(t *testing.T) {
	t.Parallel()
	r := NewReporter()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Add(passVerdict("succ.rs"))
		}()
	}
	wg.Wait()

	if s := r.Summary(); s.Total != 50 || s.Passed != 50 {
		t.Errorf("Summary() = total %d passed %d, want 50/50", s.Total, s.Passed)
	}
}

func TestRunSummary_ExitCode(t *testing.T) {
	t.Parallel()
	clean := RunSummary{Total: 3, Passed: 3}
	if clean.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0", clean.ExitCode())
	}

	dirty := RunSummary{Total: 3, Passed: 2, Failed: 1}
	if dirty.ExitCode() == 0 {
		t.Error("ExitCode() = 0 for failing summary, want nonzero")
	}
}

func TestPrint_FailureDetail(t *testing.T) {
	t.Parallel()
	r := NewReporter()
	r.Add(passVerdict("succ_a.rs"))
	r.Add(failVerdict("succ_b.rs", verdict.ReasonCompileFailed, "error[E0308]: mismatched types\n --> succ_b.rs:3:5"))

	var stdout, stderr bytes.Buffer
	out := output.NewWithWriters(&stdout, &stderr, false)

	Print(out, r.Summary())

	got := stdout.String()
	for _, want := range []string{
		"=== Conformance Summary ===",
		"Passed: 1",
		"Failed: 1",
		"Total: 2",
		"Failures:",
		"succ_b.rs: Expected Success, Got Failure",
		"expected: must succeed",
		"exit 1 in 250ms",
		"error[E0308]: mismatched types",
		"1 of 2 fixtures failed.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
}

func TestPrint_AllPassed(t *testing.T) {
	t.Parallel()
	r := NewReporter()
	r.Add(passVerdict("succ_a.rs"))
	r.Add(passVerdict("succ_b.rs"))

	var stdout, stderr bytes.Buffer
	out := output.NewWithWriters(&stdout, &stderr, false)

	Print(out, r.Summary())

	got := stdout.String()
	if !strings.Contains(got, "All 2 fixtures passed.") {
		t.Errorf("report missing success line:\n%s", got)
	}
	if strings.Contains(got, "Failures:") {
		t.Errorf("clean report mentions failures:\n%s", got)
	}
}

func TestDiagnosticExcerpt(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		in    string
		check func(t *testing.T, got string)
	}{
		{
			name: "empty",
			in:   "",
			check: func(t *testing.T, got string) {
				if got != "" {
					t.Errorf("excerpt = %q, want empty", got)
				}
			},
		},
		{
			name: "whitespace only",
			in:   "  \n\t\n",
			check: func(t *testing.T, got string) {
				if got != "" {
					t.Errorf("excerpt = %q, want empty", got)
				}
			},
		},
		{
			name: "short text preserved",
			in:   "error: one\nerror: two",
			check: func(t *testing.T, got string) {
				if got != "error: one\nerror: two" {
					t.Errorf("excerpt = %q", got)
				}
			},
		},
		{
			name: "long text truncated",
			in:   strings.Repeat("line\n", 40),
			check: func(t *testing.T, got string) {
				lines := strings.Split(got, "\n")
				if len(lines) != maxExcerptLines+1 {
					t.Fatalf("excerpt has %d lines, want %d + marker", len(lines), maxExcerptLines)
				}
				if !strings.Contains(lines[len(lines)-1], "more lines") {
					t.Errorf("missing omission marker: %q", lines[len(lines)-1])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.check(t, diagnosticExcerpt(tt.in))
		})
	}
}
