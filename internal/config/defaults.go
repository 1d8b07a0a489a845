package config

// Default configuration values.
const (
	DefaultFixturesDir     = "tests/compile"
	DefaultFixturesPattern = "*.rs"
	DefaultCompiler        = "rustc"
	DefaultTimeout         = "60s"
)

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Fixtures.Dir == "" {
		cfg.Fixtures.Dir = DefaultFixturesDir
	}
	if cfg.Fixtures.Pattern == "" {
		cfg.Fixtures.Pattern = DefaultFixturesPattern
	}
	if cfg.Compiler.Path == "" {
		cfg.Compiler.Path = DefaultCompiler
	}
	if cfg.Run.Timeout == "" {
		cfg.Run.Timeout = DefaultTimeout
	}
	// Jobs 0 means "number of CPUs", resolved by the harness at run time.
}
