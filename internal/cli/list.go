package cli

import (
	"github.com/AndreyAkinshin/compiletest/internal/errors"
	"github.com/AndreyAkinshin/compiletest/internal/fixture"
)

// cmdList prints the discovered fixture table without invoking the
// compiler. Useful for auditing the filename classification.
func cmdList(opts *GlobalOptions) int {
	cfg, code := loadConfig(opts)
	if cfg == nil {
		return code
	}

	fixtures, err := fixture.Discover(cfg.Fixtures.Dir, cfg.Fixtures.Pattern)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	if len(fixtures) == 0 {
		out.Info("no fixtures found in %s (pattern %s)", cfg.Fixtures.Dir, cfg.Fixtures.Pattern)
		return 0
	}

	rows := make([][]string, 0, len(fixtures))
	for _, fx := range fixtures {
		marker := "-"
		if fx.Marker != "" {
			marker = "yes"
		}
		rows = append(rows, []string{fx.Name, fx.Expectation.String(), marker})
	}

	out.Table([]string{"FIXTURE", "EXPECTATION", "MARKER"}, rows)
	out.Info("")
	out.Info("%d fixtures in %s", len(fixtures), cfg.Fixtures.Dir)
	return 0
}
