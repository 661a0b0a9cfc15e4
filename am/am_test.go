package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/commonargs/argdecl"
	"github.com/teranos/commonargs/common/cc"
	"github.com/teranos/commonargs/errors"
)

const projectConfig = `
module = "cc"
format = "json"
names = ["CC", "CXX", "CFLAGS"]

[families]
flags = false

[defaults]
CC = "gcc"

[keys.var]
prefix = "MY_"

[keys.opt]
transform = "option"
`

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ProjectConfigName)
	require.NoError(t, os.WriteFile(path, []byte(content), DefaultFilePermissions))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Isolated viper instance without user/system config
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, DefaultModule, cfg.Module)
	assert.Equal(t, DefaultFormat, cfg.Format)
	assert.Equal(t, DefaultDebounceMS, cfg.Watch.DebounceMS)
	assert.Empty(t, cfg.Sources)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), projectConfig)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, cfg.Sources)
	assert.Equal(t, "json", cfg.Format)

	// Argument names keep their case
	assert.Equal(t, map[string]any{"CC": "gcc"}, cfg.Defaults)
	assert.Equal(t, map[string]bool{"flags": false}, cfg.Families)

	opts, err := cfg.Options()
	require.NoError(t, err)
	decls, err := cc.Declarations(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"CC", "CXX"}, decls.Names())

	d, _ := decls.Get("CC")
	assert.Equal(t, "gcc", d.Default.OrElse(nil))
	assert.Equal(t, "MY_CC", d.VariableKey)
	assert.Equal(t, "cc", d.OptionKey)
}

func TestLoadFromFile_UnknownKey(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "module = \"cc\"\nformatt = \"json\"\n")

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formatt")
}

func TestLoad_ProjectConfigAndEnv(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, projectConfig)
	nested := filepath.Join(root, "src", "lib")
	require.NoError(t, os.MkdirAll(nested, DefaultDirPermissions))
	t.Chdir(nested)
	t.Setenv("COMMONARGS_FORMAT", "yaml")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	Reset()
	t.Cleanup(Reset)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format, "environment beats project file")
	assert.Equal(t, "cc", cfg.Module)
	assert.Equal(t, []string{"CC", "CXX", "CFLAGS"}, cfg.Names)
	require.NotEmpty(t, cfg.Sources)
	assert.Equal(t, filepath.Join(root, ProjectConfigName), cfg.Sources[len(cfg.Sources)-1])

	same, err := Load()
	require.NoError(t, err)
	assert.Same(t, cfg, same)

	ci, err := GetConfigIntrospection()
	require.NoError(t, err)
	sources := make(map[string]SettingInfo)
	for _, s := range ci.Settings {
		sources[s.Key] = s
	}
	assert.Equal(t, SourceEnvironment, sources["format"].Source)
	assert.Equal(t, "COMMONARGS_FORMAT", sources["format"].SourcePath)
	assert.Equal(t, SourceProject, sources["module"].Source)
	assert.Equal(t, SourceDefault, sources["watch.debounce_ms"].Source)
	assert.Positive(t, ci.Summary()[SourceProject])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"module only", Config{Module: "cc"}, false},
		{"table only", Config{Table: "fortran.toml"}, false},
		{"neither module nor table", Config{}, true},
		{"unknown format", Config{Module: "cc", Format: "xml"}, true},
		{"known transform", Config{Module: "cc", Keys: KeysConfig{Env: EndpointKeys{Transform: "screaming_snake"}}}, false},
		{"unknown transform", Config{Module: "cc", Keys: KeysConfig{OptionTransform: "shout"}}, true},
		{"negative verbosity", Config{Module: "cc", Log: LogConfig{Verbosity: -1}}, true},
		{"zero debounce is valid", Config{Module: "cc", Watch: WatchConfig{DebounceMS: 0}}, false},
		{"negative debounce", Config{Module: "cc", Watch: WatchConfig{DebounceMS: -5}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_TransformErrorIsTyped(t *testing.T) {
	cfg := Config{Module: "cc", Keys: KeysConfig{Var: EndpointKeys{Transform: "shout"}}}
	err := cfg.Validate()
	assert.True(t, errors.IsUnresolvedEndpointTransform(err))
}

func TestBag(t *testing.T) {
	empty := ""
	cfg := Config{
		Module:   "cc",
		Type:     "path",
		Names:    []string{"CC"},
		Families: map[string]bool{"progs": true},
		Keys: KeysConfig{
			Env:           EndpointKeys{Prefix: "E_", Transform: "upper"},
			OptPrefix:     &empty,
			OptNameSuffix: "-path",
		},
	}

	bag := cfg.Bag()
	assert.Equal(t, map[string]any{
		"name_filter":       []string{"CC"},
		"type":              "path",
		"include_progs":     true,
		"env_key_prefix":    "E_",
		"env_key_transform": "upper",
		"opt_prefix":        "",
		"opt_name_suffix":   "-path",
	}, bag)

	opts, err := argdecl.OptionsFromMap(bag)
	require.NoError(t, err)
	decls, err := cc.Declarations(opts)
	require.NoError(t, err)
	d, _ := decls.Get("CC")
	assert.Equal(t, "cc-path", d.Option)
	assert.Equal(t, "E_CC", d.StoreKey)

	assert.Empty(t, (&Config{}).Bag())
}

func TestSave_RoundTripAndBackups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", ProjectConfigName)

	cfg := Starter("ar")
	cfg.Defaults = map[string]any{"AR": "llvm-ar"}
	cfg.Keys.Var.Prefix = "TARGET_"
	require.NoError(t, Save(cfg, path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ar", loaded.Module)
	assert.Equal(t, "TARGET_", loaded.Keys.Var.Prefix)
	assert.Equal(t, map[string]any{"AR": "llvm-ar"}, loaded.Defaults)

	for i := 0; i < 4; i++ {
		require.NoError(t, Save(cfg, path))
	}
	for n := 1; n <= 3; n++ {
		assert.FileExists(t, BackupPath(path, n))
	}
	assert.NoFileExists(t, BackupPath(path, 4))
}
