package argdecl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/commonargs/errors"
)

func compilerTable() Table {
	return Table{
		Module: "test",
		Families: []Family{
			{Name: "progs", Specs: []Spec{
				Arg("CC", "A C compiler to use"),
				Arg("CXX", "A C++ compiler to use"),
			}},
		},
	}
}

func mixedTable() Table {
	return Table{
		Module: "mixed",
		Families: []Family{
			{Name: "progs", Specs: []Spec{
				Arg("CC", "A C compiler to use"),
				ArgDefault("LINK", "A linker to use", "ld"),
			}},
			{Name: "flags", Specs: []Spec{
				Arg("CFLAGS", "Flags for C compiler"),
				{Name: "LDFLAGS"},
			}},
			{Name: "dirs", Specs: []Spec{
				ArgDefault("prefix", "Installation prefix", "/usr/local"),
				ArgDefault("bindir", "User executables", "${exec_prefix}/bin"),
			}},
		},
	}
}

func TestDeclare_ScenarioA(t *testing.T) {
	decls, err := Declare(compilerTable(), Options{})
	require.NoError(t, err)
	require.Equal(t, 2, decls.Len())
	assert.Equal(t, []string{"CC", "CXX"}, decls.Names())

	cc, ok := decls.Get("CC")
	require.True(t, ok)
	help, ok := cc.Help.Get()
	require.True(t, ok)
	assert.Equal(t, "A C compiler to use", help)
	assert.False(t, cc.Default.IsSet())
	assert.Equal(t, "CC", cc.OptionKey)
	assert.Equal(t, "CC", cc.StoreKey)
	assert.Equal(t, "CC", cc.VariableKey)
	assert.Equal(t, "--cc", cc.Option)
	assert.Equal(t, DefaultType, cc.Type)
	assert.Equal(t, 1, cc.Nargs)
	assert.Equal(t, MetavarGeneric, cc.Metavar)
}

func TestDeclare_ScenarioB_OverrideDefault(t *testing.T) {
	decls, err := Declare(compilerTable(), Options{Defaults: map[string]any{"CC": "gcc"}})
	require.NoError(t, err)

	cc, _ := decls.Get("CC")
	def, ok := cc.Default.Get()
	require.True(t, ok)
	assert.Equal(t, "gcc", def)

	cxx, _ := decls.Get("CXX")
	assert.False(t, cxx.Default.IsSet())
}

func TestDeclare_ScenarioC_NameSet(t *testing.T) {
	decls, err := Declare(compilerTable(), Options{Filter: FilterNames("CXX")})
	require.NoError(t, err)
	assert.Equal(t, []string{"CXX"}, decls.Names())
}

func TestDeclare_ScenarioD_VariablePrefix(t *testing.T) {
	decls, err := Declare(compilerTable(), Options{
		NameConv: NameConvConfig{Variable: EndpointConfig{Prefix: "MY_"}},
	})
	require.NoError(t, err)

	cc, _ := decls.Get("CC")
	assert.Equal(t, "MY_CC", cc.VariableKey)
	assert.Equal(t, "CC", cc.StoreKey)
	assert.Equal(t, "CC", cc.OptionKey)
}

func TestDeclare_OverridePrecedence(t *testing.T) {
	decls, err := Declare(mixedTable(), Options{Defaults: map[string]any{
		"LINK":   "gold",
		"prefix": nil,
		"CFLAGS": "-O2",
	}})
	require.NoError(t, err)

	link, _ := decls.Get("LINK")
	assert.Equal(t, "gold", link.Default.OrElse(nil))

	// A nil override is still an override, distinct from absent
	prefix, _ := decls.Get("prefix")
	v, ok := prefix.Default.Get()
	assert.True(t, ok)
	assert.Nil(t, v)

	cflags, _ := decls.Get("CFLAGS")
	assert.Equal(t, "-O2", cflags.Default.OrElse(nil))

	bindir, _ := decls.Get("bindir")
	assert.Equal(t, "${exec_prefix}/bin", bindir.Default.OrElse(nil))

	ldflags, _ := decls.Get("LDFLAGS")
	assert.False(t, ldflags.Default.IsSet())
	assert.False(t, ldflags.Help.IsSet())
}

func TestDeclare_Idempotent(t *testing.T) {
	opts := Options{
		Defaults: map[string]any{"CC": "clang"},
		Filter:   FilterFunc(func(n string) bool { return n != "LDFLAGS" }),
		NameConv: NameConvConfig{Store: EndpointConfig{Prefix: "X_", Transform: NamedTransform("upper")}},
	}

	first, err := Declare(mixedTable(), opts)
	require.NoError(t, err)
	second, err := Declare(mixedTable(), opts)
	require.NoError(t, err)

	assert.Equal(t, first.Names(), second.Names())
	assert.Equal(t, first.All(), second.All())
}

func TestNames_FilteringLaw(t *testing.T) {
	table := mixedTable()
	filters := []func(string) bool{
		func(n string) bool { return strings.HasPrefix(n, "C") },
		func(n string) bool { return strings.ToLower(n) == n },
		func(string) bool { return false },
	}

	all, err := Names(table, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"CC", "LINK", "CFLAGS", "LDFLAGS", "prefix", "bindir"}, all)

	for _, f := range filters {
		got, err := Names(table, Options{Filter: FilterFunc(f)})
		require.NoError(t, err)

		var want []string
		for _, n := range all {
			if f(n) {
				want = append(want, n)
			}
		}
		assert.Equal(t, want, got)
	}
}

func TestNames_FamilySwitches(t *testing.T) {
	table := mixedTable()

	names, err := Names(table, Options{Families: map[string]bool{"flags": false, "dirs": false}})
	require.NoError(t, err)
	assert.Equal(t, []string{"CC", "LINK"}, names)

	// Unknown switches are ignored
	names, err = Names(table, Options{Families: map[string]bool{"nonexistent": false, "progs": true}})
	require.NoError(t, err)
	assert.Len(t, names, 6)
}

func TestDeclare_ExplicitMetavarAndType(t *testing.T) {
	decls, err := Declare(mixedTable(), Options{Metavar: "PATH", Type: "path"})
	require.NoError(t, err)
	for _, d := range decls.All() {
		assert.Equal(t, "PATH", d.Metavar, d.Name)
		assert.Equal(t, "path", d.Type, d.Name)
	}

	decls, err = Declare(mixedTable(), Options{})
	require.NoError(t, err)
	prefix, _ := decls.Get("prefix")
	assert.Equal(t, MetavarDir, prefix.Metavar)
}

func TestDeclare_PrebuiltConverter(t *testing.T) {
	conv := MustNameConv(NameConvConfig{Option: EndpointConfig{Transform: NamedTransform("lower")}})
	decls, err := Declare(compilerTable(), Options{
		Converter: conv,
		// ignored in favour of Converter
		NameConv: NameConvConfig{Store: EndpointConfig{Transform: NamedTransform("bogus")}},
	})
	require.NoError(t, err)
	cc, _ := decls.Get("CC")
	assert.Equal(t, "cc", cc.OptionKey)
}

func TestDeclare_ErrorsBeforeBuilding(t *testing.T) {
	_, err := Declare(compilerTable(), Options{Filter: FilterFunc(nil)})
	assert.True(t, errors.IsInvalidFilterKind(err))

	_, err = Names(compilerTable(), Options{Filter: FilterFunc(nil)})
	assert.True(t, errors.IsInvalidFilterKind(err))

	decls, err := Declare(compilerTable(), Options{
		NameConv: NameConvConfig{Variable: EndpointConfig{Transform: NamedTransform("bogus")}},
	})
	assert.Nil(t, decls)
	assert.True(t, errors.IsUnresolvedEndpointTransform(err))
}

func TestDeclare_DuplicateNamesLastWins(t *testing.T) {
	table := Table{Families: []Family{
		{Name: "a", Specs: []Spec{Arg("CC", "first"), Arg("CXX", "c++")}},
		{Name: "b", Specs: []Spec{ArgDefault("CC", "second", "cc")}},
	}}

	specs := table.Select(nil)
	assert.Equal(t, []string{"CC"}, Duplicates(specs))

	decls, err := Declare(table, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"CC", "CXX"}, decls.Names())
	cc, _ := decls.Get("CC")
	assert.Equal(t, "second", cc.Help.OrElse(""))
	assert.Equal(t, "cc", cc.Default.OrElse(nil))
}

type recordingSink struct {
	got *Declarations
	err error
}

func (s *recordingSink) Declare(decls *Declarations) error {
	s.got = decls
	return s.err
}

func TestDeclareTo(t *testing.T) {
	sink := &recordingSink{}
	decls, err := DeclareTo(sink, compilerTable(), Options{})
	require.NoError(t, err)
	assert.Same(t, decls, sink.got)

	failing := &recordingSink{err: errors.New("host rejected")}
	_, err = DeclareTo(failing, compilerTable(), Options{})
	assert.EqualError(t, err, "host rejected")

	untouched := &recordingSink{}
	_, err = DeclareTo(untouched, compilerTable(), Options{Filter: FilterFunc(nil)})
	assert.Error(t, err)
	assert.Nil(t, untouched.got)
}
