package am

import (
	"github.com/teranos/commonargs/argdecl"
	"github.com/teranos/commonargs/errors"
)

// OutputFormats are the values accepted for format
var OutputFormats = []string{"json", "yaml", "toml", "table", "sh"}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Module == "" && c.Table == "" {
		return errors.New("either module or table must be set")
	}

	// Empty format falls back to the default
	if c.Format != "" && !isOutputFormat(c.Format) {
		return errors.WithHintf(errors.Newf("format %q is not supported", c.Format),
			"supported formats: json, yaml, toml, table, sh")
	}

	transforms := map[string]string{
		"keys.env.transform":    c.Keys.Env.Transform,
		"keys.var.transform":    c.Keys.Var.Transform,
		"keys.opt.transform":    c.Keys.Opt.Transform,
		"keys.option_transform": c.Keys.OptionTransform,
	}
	for key, name := range transforms {
		if _, err := argdecl.TransformFrom(key, name); err != nil {
			return err
		}
	}

	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	// 0 = regenerate on every event, negative = invalid
	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	return nil
}

func isOutputFormat(f string) bool {
	for _, known := range OutputFormats {
		if f == known {
			return true
		}
	}
	return false
}
