package am

import "github.com/teranos/commonargs/argdecl"

// Bag renders the configuration as a keyword bag for argdecl.OptionsFromMap.
// Unset settings are left out so the library defaults apply.
func (c *Config) Bag() map[string]any {
	bag := make(map[string]any)

	if len(c.Defaults) > 0 {
		bag["defaults"] = c.Defaults
	}
	if len(c.Names) > 0 {
		bag["name_filter"] = c.Names
	}
	if c.Type != "" {
		bag["type"] = c.Type
	}
	if c.Metavar != "" {
		bag["metavar"] = c.Metavar
	}
	for family, include := range c.Families {
		bag["include_"+family] = include
	}

	endpoints := []struct {
		kind string
		keys EndpointKeys
	}{
		{"env", c.Keys.Env},
		{"var", c.Keys.Var},
		{"opt", c.Keys.Opt},
	}
	for _, e := range endpoints {
		setString(bag, e.kind+"_key_prefix", e.keys.Prefix)
		setString(bag, e.kind+"_key_suffix", e.keys.Suffix)
		setString(bag, e.kind+"_key_transform", e.keys.Transform)
	}

	if c.Keys.OptPrefix != nil {
		bag["opt_prefix"] = *c.Keys.OptPrefix
	}
	setString(bag, "opt_name_prefix", c.Keys.OptNamePrefix)
	setString(bag, "opt_name_suffix", c.Keys.OptNameSuffix)
	setString(bag, "option_transform", c.Keys.OptionTransform)

	return bag
}

// Options converts the configuration into argdecl.Options
func (c *Config) Options() (argdecl.Options, error) {
	return argdecl.OptionsFromMap(c.Bag())
}

func setString(bag map[string]any, key, value string) {
	if value != "" {
		bag[key] = value
	}
}
