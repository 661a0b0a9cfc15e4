package argdecl

import (
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/teranos/commonargs/errors"
)

// includePrefix starts the per-family switches of a keyword bag (include_progs, include_flags)
const includePrefix = "include_"

// bagFields are the plain keywords of a bag, decoded by mapstructure.
type bagFields struct {
	Type    string `mapstructure:"type"`
	Metavar string `mapstructure:"metavar"`

	EnvKeyPrefix string `mapstructure:"env_key_prefix"`
	EnvKeySuffix string `mapstructure:"env_key_suffix"`
	VarKeyPrefix string `mapstructure:"var_key_prefix"`
	VarKeySuffix string `mapstructure:"var_key_suffix"`
	OptKeyPrefix string `mapstructure:"opt_key_prefix"`
	OptKeySuffix string `mapstructure:"opt_key_suffix"`

	OptPrefix     *string `mapstructure:"opt_prefix"`
	OptNamePrefix string  `mapstructure:"opt_name_prefix"`
	OptNameSuffix string  `mapstructure:"opt_name_suffix"`
}

// transformKeys are bag keywords holding a transform; they accept bools,
// names and functions, so they are resolved outside mapstructure.
var transformKeys = []string{
	"env_key_transform",
	"var_key_transform",
	"opt_key_transform",
	"option_transform",
}

// OptionsFromMap builds Options from a keyword bag such as a decoded config
// file section or a host's keyword arguments.
//
// Recognized keywords: defaults, name_filter, type, metavar, nameconv,
// include_<family>, env_key_{prefix,suffix,transform},
// var_key_{prefix,suffix,transform}, opt_key_{prefix,suffix,transform},
// opt_prefix, opt_name_prefix, opt_name_suffix and option_transform.
// Any other keyword fails with errors.ErrUnknownOption.
func OptionsFromMap(bag map[string]any) (Options, error) {
	var opts Options
	rest := make(map[string]any, len(bag))
	for k, v := range bag {
		rest[k] = v
	}

	if raw, ok := rest["name_filter"]; ok {
		delete(rest, "name_filter")
		filter, err := FilterFrom(raw)
		if err != nil {
			return Options{}, err
		}
		opts.Filter = filter
	}

	if raw, ok := rest["defaults"]; ok {
		delete(rest, "defaults")
		defaults, err := defaultsFrom(raw)
		if err != nil {
			return Options{}, err
		}
		opts.Defaults = defaults
	}

	if raw, ok := rest["nameconv"]; ok {
		delete(rest, "nameconv")
		conv, ok := raw.(*NameConv)
		if !ok {
			return Options{}, errors.Newf("nameconv must be a *NameConv, got %T", raw)
		}
		opts.Converter = conv
	}

	transforms := make(map[string]Transform, len(transformKeys))
	for _, key := range transformKeys {
		raw, ok := rest[key]
		if !ok {
			continue
		}
		delete(rest, key)
		t, err := TransformFrom(key, raw)
		if err != nil {
			return Options{}, err
		}
		transforms[key] = t
	}

	for key, raw := range rest {
		if !strings.HasPrefix(key, includePrefix) {
			continue
		}
		delete(rest, key)
		include, ok := raw.(bool)
		if !ok {
			return Options{}, errors.Newf("%s must be a bool, got %T", key, raw)
		}
		if opts.Families == nil {
			opts.Families = make(map[string]bool)
		}
		opts.Families[strings.TrimPrefix(key, includePrefix)] = include
	}

	var fields bagFields
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata: &md,
		Result:   &fields,
	})
	if err != nil {
		return Options{}, errors.Wrap(err, "failed to create options decoder")
	}
	if err := dec.Decode(rest); err != nil {
		return Options{}, errors.Wrap(err, "failed to decode options")
	}
	if len(md.Unused) > 0 {
		sort.Strings(md.Unused)
		return Options{}, errors.Wrapf(errors.ErrUnknownOption, "%s", strings.Join(md.Unused, ", "))
	}

	opts.Type = fields.Type
	opts.Metavar = fields.Metavar
	opts.NameConv = NameConvConfig{
		Store:            EndpointConfig{Prefix: fields.EnvKeyPrefix, Suffix: fields.EnvKeySuffix, Transform: transforms["env_key_transform"]},
		Variable:         EndpointConfig{Prefix: fields.VarKeyPrefix, Suffix: fields.VarKeySuffix, Transform: transforms["var_key_transform"]},
		Option:           EndpointConfig{Prefix: fields.OptKeyPrefix, Suffix: fields.OptKeySuffix, Transform: transforms["opt_key_transform"]},
		OptionPrefix:     fields.OptPrefix,
		OptionNamePrefix: fields.OptNamePrefix,
		OptionNameSuffix: fields.OptNameSuffix,
		OptionTransform:  transforms["option_transform"],
	}
	return opts, nil
}

func defaultsFrom(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	case map[string]string:
		defaults := make(map[string]any, len(v))
		for k, val := range v {
			defaults[k] = val
		}
		return defaults, nil
	default:
		return nil, errors.Newf("defaults must be a mapping of names to values, got %T", raw)
	}
}
