package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/commonargs/errors"
)

func TestModules(t *testing.T) {
	assert.Equal(t, []string{"ar", "cc", "gnudirs"}, Modules())
}

func TestLookup(t *testing.T) {
	table, err := Lookup("cc")
	require.NoError(t, err)
	assert.Equal(t, "cc", table.Module)
	assert.Equal(t, []string{"progs", "flags"}, table.FamilyNames())

	_, err = Lookup("fortran")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownModule))
	assert.Contains(t, errors.FlattenHints(err), "ar, cc, gnudirs")
}

func TestDescribe(t *testing.T) {
	infos := Describe()
	require.Len(t, infos, 3)

	byName := make(map[string]Info)
	for _, info := range infos {
		byName[info.Name] = info
		assert.NotEmpty(t, info.Description)
	}
	assert.Equal(t, 14, byName["cc"].Count)
	assert.Equal(t, 4, byName["ar"].Count)
	assert.Equal(t, []string{"dirs", "man_exts"}, byName["gnudirs"].Families)
}
