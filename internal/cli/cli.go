// Package cli provides command-line interface functionality for compiletest.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AndreyAkinshin/compiletest/internal/errors"
	"github.com/AndreyAkinshin/compiletest/internal/output"
)

// Version is set at build time.
var Version = "dev"

// out is the shared output writer for CLI commands.
var out = output.New()

// GlobalOptions holds flags that apply to every command. Zero values mean
// "not set"; set values override the corresponding config file fields.
type GlobalOptions struct {
	ConfigPath string // --config
	Dir        string // --dir
	Jobs       int    // --jobs
	Timeout    string // --timeout
	Strict     bool   // --strict
	Quiet      bool   // -q / --quiet
	Verbose    bool   // -v / --verbose
	NoColor    bool   // --no-color
}

// apply configures the shared output writer from the parsed options.
func (o *GlobalOptions) apply() {
	out.SetQuiet(o.Quiet)
	out.SetVerbose(o.Verbose)
	if o.NoColor {
		out.SetColor(false)
	}
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) > 0 {
		switch args[0] {
		case "-h", "--help", "help":
			printUsage()
			return 0
		case "--version", "version":
			out.Println("compiletest %s", Version)
			return 0
		}
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	// No command means "run the suite" - the harness has no required arguments.
	cmd := "run"
	if len(remaining) > 0 {
		cmd = remaining[0]
	}

	switch cmd {
	case "run":
		return cmdRun(opts)
	case "list":
		return cmdList(opts)
	case "config":
		return cmdConfig(opts)
	case "version":
		out.Println("compiletest %s", Version)
		return 0
	case "help":
		printUsage()
		return 0
	default:
		out.ErrorPrefix("unknown command %q", cmd)
		out.Errorln("run 'compiletest help' for usage")
		return errors.ExitConfigError
	}
}

// parseGlobalFlags manually parses global flags from arguments.
//
// Manual parsing is used instead of stdlib flag package because flags can
// appear anywhere in the argument list, not just before the command, and
// custom error messages with usage hints are needed.
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	takeValue := func(i int, name string) (string, int, error) {
		if i+1 >= len(args) {
			return "", i, fmt.Errorf("%s requires a value", name)
		}
		return args[i+1], i + 2, nil
	}

	i := 0
	for i < len(args) {
		arg := args[i]

		var err error
		switch {
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
			i++
		case arg == "-v" || arg == "--verbose":
			opts.Verbose = true
			i++
		case arg == "--strict":
			opts.Strict = true
			i++
		case arg == "--no-color":
			opts.NoColor = true
			i++
		case arg == "--config":
			opts.ConfigPath, i, err = takeValue(i, "--config")
		case strings.HasPrefix(arg, "--config="):
			opts.ConfigPath = strings.TrimPrefix(arg, "--config=")
			i++
		case arg == "--dir":
			opts.Dir, i, err = takeValue(i, "--dir")
		case strings.HasPrefix(arg, "--dir="):
			opts.Dir = strings.TrimPrefix(arg, "--dir=")
			i++
		case arg == "--timeout":
			opts.Timeout, i, err = takeValue(i, "--timeout")
		case strings.HasPrefix(arg, "--timeout="):
			opts.Timeout = strings.TrimPrefix(arg, "--timeout=")
			i++
		case arg == "--jobs":
			var v string
			v, i, err = takeValue(i, "--jobs")
			if err == nil {
				opts.Jobs, err = parseJobsValue(v)
			}
		case strings.HasPrefix(arg, "--jobs="):
			opts.Jobs, err = parseJobsValue(strings.TrimPrefix(arg, "--jobs="))
			i++
		case strings.HasPrefix(arg, "-"):
			err = fmt.Errorf("unknown flag %q", arg)
		default:
			remaining = append(remaining, arg)
			i++
		}
		if err != nil {
			return nil, nil, err
		}
	}

	if err := validateGlobalOptions(opts); err != nil {
		return nil, nil, err
	}

	opts.apply()

	return opts, remaining, nil
}

// parseJobsValue parses the --jobs flag value. strconv rejects the
// trailing garbage that scanf-style parsing silently accepts.
func parseJobsValue(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("--jobs requires a number, got %q", v)
	}
	return n, nil
}

// validateGlobalOptions checks that global options are valid.
func validateGlobalOptions(opts *GlobalOptions) error {
	if opts.Quiet && opts.Verbose {
		return fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}
	if opts.Jobs < 0 {
		return fmt.Errorf("--jobs must be positive, got %d", opts.Jobs)
	}
	return nil
}

// Help text alignment widths for consistent formatting.
const (
	helpCommandWidth = 8
	helpFlagWidth    = 18
)

func printUsage() {
	w := output.New()

	w.HelpTitle("compiletest - conformance harness for compile-pass/compile-fail fixtures")

	w.HelpSection("Usage:")
	w.HelpUsage("compiletest [command] [flags]")

	w.HelpSection("Commands:")
	w.HelpCommand("run", "run every fixture and report verdicts (default)", helpCommandWidth)
	w.HelpCommand("list", "list discovered fixtures without compiling", helpCommandWidth)
	w.HelpCommand("config", "print the resolved configuration", helpCommandWidth)
	w.HelpCommand("version", "print the compiletest version", helpCommandWidth)
	w.HelpCommand("help", "show this help", helpCommandWidth)

	w.HelpSection("Flags:")
	w.HelpFlag("--config <file>", "config file path (default compiletest.yml)", helpFlagWidth)
	w.HelpFlag("--dir <dir>", "fixture directory override", helpFlagWidth)
	w.HelpFlag("--jobs <n>", "worker count override (default: CPU count)", helpFlagWidth)
	w.HelpFlag("--timeout <dur>", "per-invocation timeout override (e.g. 90s)", helpFlagWidth)
	w.HelpFlag("--strict", "require expected diagnostic markers on fail fixtures", helpFlagWidth)
	w.HelpFlag("-q, --quiet", "suppress per-fixture progress output", helpFlagWidth)
	w.HelpFlag("-v, --verbose", "print each invocation before it runs", helpFlagWidth)
	w.HelpFlag("--no-color", "disable colored output", helpFlagWidth)

	w.HelpSection("Examples:")
	w.HelpExample("compiletest", "run the suite with compiletest.yml defaults")
	w.HelpExample("compiletest --dir tests/compile --jobs 4", "override fixture dir and parallelism")
	w.HelpExample("compiletest --strict", "also match expected diagnostics on fail fixtures")
	w.Println("")
}
