// Package invoke builds and executes compiler invocations for fixtures.
package invoke

import (
	"time"

	"github.com/AndreyAkinshin/compiletest/internal/config"
	"github.com/AndreyAkinshin/compiletest/internal/fixture"
)

// Spec is the fully resolved command description for one fixture.
// Built fresh per fixture and never mutated after construction.
type Spec struct {
	// Executable is the compiler binary name or path.
	Executable string
	// Args is the complete argument list, fixture path included.
	Args []string
	// WorkDir is the scratch directory confining build artifacts.
	// Removed by the caller after the invocation completes.
	WorkDir string
	// Timeout bounds the wall-clock time of the invocation.
	Timeout time.Duration
}

// Builder constructs invocation specs from the run configuration.
// The configuration is supplied once per run; per-fixture state never
// leaks into the builder. The builder never inspects fixture source
// content; classification is filename-based only.
type Builder struct {
	compiler config.CompilerConfig
	timeout  time.Duration
}

// NewBuilder creates a Builder from a validated configuration.
// Dependency artifact existence is checked by config.Validate before the
// run starts; the builder assumes a well-formed configuration.
func NewBuilder(cfg *config.Config) (*Builder, error) {
	timeout, err := cfg.Run.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	return &Builder{
		compiler: cfg.Compiler,
		timeout:  timeout,
	}, nil
}

// Build produces the invocation spec for one fixture. outDir is the
// scratch directory that receives the compiler's build artifacts.
func (b *Builder) Build(fx fixture.Fixture, outDir string) Spec {
	args := make([]string, 0, len(b.compiler.Args)+9)
	args = append(args, b.compiler.Args...)

	if b.compiler.Deps != "" {
		args = append(args, "-L", b.compiler.Deps)
	}
	for _, ext := range []*config.ExternConfig{b.compiler.Library, b.compiler.Derive} {
		if ext != nil {
			args = append(args, "--extern", ext.Name+"="+ext.Path)
		}
	}
	args = append(args, "--out-dir", outDir, fx.Path)

	return Spec{
		Executable: b.compiler.Path,
		Args:       args,
		WorkDir:    outDir,
		Timeout:    b.timeout,
	}
}
