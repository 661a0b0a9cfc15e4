package argdecl

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDeclaration_JSONOmitsAbsent(t *testing.T) {
	decls, err := Declare(mixedTable(), Options{Filter: FilterNames("LDFLAGS", "LINK")})
	require.NoError(t, err)

	data, err := json.Marshal(decls)
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	ldflags := raw["LDFLAGS"]
	assert.NotContains(t, ldflags, "default")
	assert.NotContains(t, ldflags, "help")
	assert.Equal(t, "LDFLAGS", ldflags["env_key"])

	link := raw["LINK"]
	assert.Equal(t, "ld", link["default"])
	assert.Equal(t, "A linker to use", link["help"])
	assert.Equal(t, float64(1), link["nargs"])
}

func TestDeclarations_JSONOrder(t *testing.T) {
	decls, err := Declare(mixedTable(), Options{})
	require.NoError(t, err)

	data, err := json.Marshal(decls)
	require.NoError(t, err)

	var keys []string
	dec := json.NewDecoder(bytes.NewReader(data))
	_, err = dec.Token() // {
	require.NoError(t, err)
	for dec.More() {
		tok, err := dec.Token()
		require.NoError(t, err)
		keys = append(keys, tok.(string))
		var skip json.RawMessage
		require.NoError(t, dec.Decode(&skip))
	}
	assert.Equal(t, decls.Names(), keys)
}

func TestDeclarations_YAMLOrder(t *testing.T) {
	decls, err := Declare(mixedTable(), Options{Filter: FilterNames("prefix", "CC", "LDFLAGS")})
	require.NoError(t, err)

	data, err := yaml.Marshal(decls)
	require.NoError(t, err)

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal(data, &node))
	mapping := node.Content[0]
	require.Equal(t, yaml.MappingNode, mapping.Kind)

	var keys []string
	for i := 0; i < len(mapping.Content); i += 2 {
		keys = append(keys, mapping.Content[i].Value)
	}
	assert.Equal(t, []string{"CC", "LDFLAGS", "prefix"}, keys)

	var decoded map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded["LDFLAGS"], "default")
	assert.Equal(t, "/usr/local", decoded["prefix"]["default"])
	assert.Equal(t, "DIR", decoded["prefix"]["metavar"])
}

func TestDeclarations_Update(t *testing.T) {
	a, err := Declare(compilerTable(), Options{})
	require.NoError(t, err)
	b, err := Declare(mixedTable(), Options{Filter: FilterNames("LINK", "CC"), Defaults: map[string]any{"CC": "tcc"}})
	require.NoError(t, err)

	a.Update(b)
	assert.Equal(t, []string{"CC", "CXX", "LINK"}, a.Names())
	cc, _ := a.Get("CC")
	assert.Equal(t, "tcc", cc.Default.OrElse(nil))

	a.Update(nil)
	assert.Equal(t, 3, a.Len())
}

func TestBuild_KeepAndType(t *testing.T) {
	conv := MustNameConv(NameConvConfig{})
	decls := Build(mixedTable().Select(nil), func(n string) bool { return n == "bindir" }, conv, BuildParams{})

	require.Equal(t, 1, decls.Len())
	bindir, _ := decls.Get("bindir")
	assert.Equal(t, DefaultType, bindir.Type)
	assert.Equal(t, MetavarDir, bindir.Metavar)
	assert.Equal(t, "--bindir", bindir.Option)
}

