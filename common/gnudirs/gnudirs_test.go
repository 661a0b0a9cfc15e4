package gnudirs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/commonargs/argdecl"
)

func TestTable(t *testing.T) {
	table := Table()
	assert.Equal(t, []string{FamilyDirs, FamilyManExts}, table.FamilyNames())
	assert.Empty(t, argdecl.Duplicates(table.Select(nil)))
}

func TestDeclarations_Metavars(t *testing.T) {
	decls, err := Declarations(argdecl.Options{})
	require.NoError(t, err)

	for _, d := range decls.All() {
		switch {
		case strings.HasSuffix(d.Name, "ext"):
			assert.Equal(t, argdecl.MetavarExt, d.Metavar, d.Name)
		default:
			assert.Equal(t, argdecl.MetavarDir, d.Metavar, d.Name)
		}
		assert.True(t, d.Default.IsSet(), d.Name)
	}
}

func TestDeclarations_Defaults(t *testing.T) {
	decls, err := Declarations(argdecl.Options{
		Defaults: map[string]any{"prefix": "/opt/app"},
		Filter:   argdecl.FilterNames("prefix", "bindir", "man3dir", "man3ext"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"prefix", "bindir", "man3dir", "man3ext"}, decls.Names())

	prefix, _ := decls.Get("prefix")
	assert.Equal(t, "/opt/app", prefix.Default.OrElse(nil))
	bindir, _ := decls.Get("bindir")
	assert.Equal(t, "${exec_prefix}/bin", bindir.Default.OrElse(nil))
	man3dir, _ := decls.Get("man3dir")
	assert.Equal(t, "${mandir}/man3", man3dir.Default.OrElse(nil))
	man3ext, _ := decls.Get("man3ext")
	assert.Equal(t, ".3", man3ext.Default.OrElse(nil))
}

func TestNames_ManExtsOnly(t *testing.T) {
	names, err := Names(argdecl.Options{Families: map[string]bool{FamilyDirs: false}})
	require.NoError(t, err)
	assert.Len(t, names, 10)
	assert.Equal(t, "manext", names[0])
	assert.Equal(t, "man9ext", names[9])
}

func TestTableReturnsCopy(t *testing.T) {
	table := Table()
	table.Families[0].Specs[0] = argdecl.ArgDefault("prefix", "changed", "/opt")

	decls, err := Declarations(argdecl.Options{})
	require.NoError(t, err)
	d, ok := decls.Get("prefix")
	require.True(t, ok)
	def, _ := d.Default.Get()
	assert.Equal(t, "/usr/local", def)
}
