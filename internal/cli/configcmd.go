package cli

import (
	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/compiletest/internal/errors"
)

// cmdConfig prints the resolved configuration after defaults and
// overrides, for debugging misconfigured runs.
func cmdConfig(opts *GlobalOptions) int {
	cfg, code := loadConfig(opts)
	if cfg == nil {
		return code
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		out.ErrorPrefix("failed to render config: %v", err)
		return errors.ExitRuntimeError
	}

	out.Print("%s", string(data))
	return 0
}
