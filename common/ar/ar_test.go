package ar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/commonargs/argdecl"
)

func TestDeclarations(t *testing.T) {
	decls, err := Declarations(argdecl.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"AR", "RANLIB", "ARFLAGS", "RANLIBFLAGS"}, decls.Names())

	tests := []struct {
		name    string
		help    string
		metavar string
	}{
		{"AR", "The static library archiver", "PROG"},
		{"ARFLAGS", "General options passed to the static library archiver", "FLAGS"},
		{"RANLIB", "The archive indexer", "PROG"},
		{"RANLIBFLAGS", "General options passed to the archive indexer", "FLAGS"},
	}
	for _, tt := range tests {
		d, ok := decls.Get(tt.name)
		require.True(t, ok, tt.name)
		assert.Equal(t, tt.help, d.Help.OrElse(""))
		assert.Equal(t, tt.metavar, d.Metavar)
		assert.False(t, d.Default.IsSet())
	}
}

func TestDeclarations_MetavarOverride(t *testing.T) {
	decls, err := Declarations(argdecl.Options{Metavar: "CMD", Filter: argdecl.FilterNames("AR")})
	require.NoError(t, err)
	ar, _ := decls.Get("AR")
	assert.Equal(t, "CMD", ar.Metavar)
}

func TestNames_Prefixed(t *testing.T) {
	names, err := Names(argdecl.Options{Families: map[string]bool{FamilyProgs: false}})
	require.NoError(t, err)
	assert.Equal(t, []string{"ARFLAGS", "RANLIBFLAGS"}, names)

	decls, err := Declarations(argdecl.Options{NameConv: argdecl.NameConvConfig{
		Store:    argdecl.EndpointConfig{Prefix: "TARGET_"},
		Variable: argdecl.EndpointConfig{Prefix: "TARGET_"},
	}})
	require.NoError(t, err)
	ranlib, _ := decls.Get("RANLIB")
	assert.Equal(t, "TARGET_RANLIB", ranlib.StoreKey)
	assert.Equal(t, "TARGET_RANLIB", ranlib.VariableKey)
	assert.Equal(t, "RANLIB", ranlib.OptionKey)
}

func TestTableReturnsCopy(t *testing.T) {
	table := Table()
	table.Families[0].Specs[0].Name = "CHANGED"
	table.Families[1].Specs[0].Metavar = "X"

	names, err := Names(argdecl.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"AR", "RANLIB", "ARFLAGS", "RANLIBFLAGS"}, names)

	decls, err := Declarations(argdecl.Options{})
	require.NoError(t, err)
	d, ok := decls.Get("ARFLAGS")
	require.True(t, ok)
	assert.Equal(t, "FLAGS", d.Metavar)
}
