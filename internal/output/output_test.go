package output

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
)

// newTestWriter creates a Writer with captured output for testing.
func newTestWriter() (*Writer, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	w := &Writer{
		out:   stdout,
		err:   stderr,
		color: false, // Disable color for predictable test output
		quiet: false,
	}
	return w, stdout, stderr
}

func TestNew(t *testing.T) {
	w := New()
	if w == nil {
		t.Fatal("New() returned nil")
	}
	if w.out == nil {
		t.Error("out writer is nil")
	}
	if w.err == nil {
		t.Error("err writer is nil")
	}
}

func TestWriter_SetQuiet(t *testing.T) {
	w, _, _ := newTestWriter()

	w.SetQuiet(true)
	if !w.quiet {
		t.Error("SetQuiet(true) did not set quiet")
	}

	w.SetQuiet(false)
	if w.quiet {
		t.Error("SetQuiet(false) did not unset quiet")
	}
}

func TestWriter_Print(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.Print("hello %s", "world")

	if got := stdout.String(); got != "hello world" {
		t.Errorf("Print() = %q, want %q", got, "hello world")
	}
}

func TestWriter_Println(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.Println("hello %s", "world")

	if got := stdout.String(); got != "hello world\n" {
		t.Errorf("Println() = %q, want %q", got, "hello world\n")
	}
}

func TestWriter_Errorln(t *testing.T) {
	w, stdout, stderr := newTestWriter()

	w.Errorln("bad %s", "input")

	if got := stderr.String(); got != "bad input\n" {
		t.Errorf("Errorln() = %q, want %q", got, "bad input\n")
	}
	if stdout.Len() != 0 {
		t.Errorf("Errorln() wrote to stdout: %q", stdout.String())
	}
}

func TestWriter_Info_Quiet(t *testing.T) {
	w, stdout, _ := newTestWriter()
	w.SetQuiet(true)

	w.Info("should not appear")

	if stdout.Len() != 0 {
		t.Errorf("Info() in quiet mode wrote output: %q", stdout.String())
	}
}

func TestWriter_Verbose(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.Verbose("hidden")
	if stdout.Len() != 0 {
		t.Errorf("Verbose() without verbose mode wrote output: %q", stdout.String())
	}

	w.SetVerbose(true)
	w.Verbose("shown")
	if got := stdout.String(); got != "shown\n" {
		t.Errorf("Verbose() = %q, want %q", got, "shown\n")
	}
}

func TestWriter_Warning(t *testing.T) {
	w, _, stderr := newTestWriter()

	w.Warning("watch out")

	if got := stderr.String(); got != "warning: watch out\n" {
		t.Errorf("Warning() = %q", got)
	}
}

func TestWriter_ErrorPrefix(t *testing.T) {
	w, _, stderr := newTestWriter()

	w.ErrorPrefix("boom")

	if got := stderr.String(); got != "compiletest: boom\n" {
		t.Errorf("ErrorPrefix() = %q", got)
	}
}

func TestWriter_FixtureLines(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.FixturePassed("succ_basic.rs")
	w.FixtureFailed("fail_basic.rs", "compiled successfully")

	got := stdout.String()
	if !strings.Contains(got, "ok   succ_basic.rs") {
		t.Errorf("missing pass line in %q", got)
	}
	if !strings.Contains(got, "FAIL fail_basic.rs (compiled successfully)") {
		t.Errorf("missing fail line in %q", got)
	}
}

func TestWriter_FixturePassed_Quiet(t *testing.T) {
	w, stdout, _ := newTestWriter()
	w.SetQuiet(true)

	w.FixturePassed("succ_basic.rs")

	if stdout.Len() != 0 {
		t.Errorf("FixturePassed() in quiet mode wrote output: %q", stdout.String())
	}
}

// TestWriter_ConcurrentFixtureLines hammers one Writer from many
// goroutines, as parallel fixture workers do, and verifies every line
// arrives whole. Run with -race this also guards the Writer's locking.
func TestWriter_ConcurrentFixtureLines(t *testing.T) {
	w, stdout, _ := newTestWriter()

	const workers = 32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			name := fmt.Sprintf("succ_%02d.rs", n)
			if n%2 == 0 {
				w.FixturePassed(name)
			} else {
				w.FixtureFailed(name, "timeout")
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	if len(lines) != workers {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), workers, stdout.String())
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "ok   succ_") && !strings.HasPrefix(line, "FAIL succ_") {
			t.Errorf("garbled output line %q", line)
		}
	}
}

func TestWriter_Table(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.Table(
		[]string{"FIXTURE", "EXPECTATION"},
		[][]string{
			{"fail_basic.rs", "must fail"},
			{"succ_basic.rs", "must succeed"},
		},
	)

	lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Table() produced %d lines, want 4:\n%s", len(lines), stdout.String())
	}
	if !strings.HasPrefix(lines[0], "FIXTURE") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "---") {
		t.Errorf("separator line = %q", lines[1])
	}
}

func TestWriter_Summary(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.SummaryHeader("Conformance Summary")
	w.SummaryPassed("Passed", "3")
	w.SummaryFailed("Failed", "1")
	w.SummaryItem("Total", "4")
	w.FinalFailure("%d of %d fixtures failed.", 1, 4)

	got := stdout.String()
	for _, want := range []string{
		"=== Conformance Summary ===",
		"  Passed: 3",
		"  Failed: 1",
		"  Total: 4",
		"1 of 4 fixtures failed.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary output missing %q:\n%s", want, got)
		}
	}
}
