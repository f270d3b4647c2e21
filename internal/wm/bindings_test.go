package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindingTableUpsert(t *testing.T) {
	var tbl BindingTable
	require.NoError(t, tbl.Add(Binding{Mods: 4, Keysym: 0x74, Command: "a"}))
	require.NoError(t, tbl.Add(Binding{Mods: 4, Keysym: 0x75, Command: "b"}))
	require.NoError(t, tbl.Add(Binding{Mods: 4, Keysym: 0x74, Command: "c"}))

	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "c", tbl.Entries()[0].Command, "upsert keeps the original slot")
	assert.NotEmpty(t, tbl.Entries()[0].UUID)
}

func TestBindingTableRejectsZeroKeysym(t *testing.T) {
	var tbl BindingTable
	assert.ErrorIs(t, tbl.Add(Binding{Mods: 4, Command: "a"}), ErrInvalidParameter)
	assert.Equal(t, 0, tbl.Len())
}

func TestBindingTableMatch(t *testing.T) {
	var tbl BindingTable
	require.NoError(t, tbl.Add(Binding{Mods: 4, Keysym: 0x74, Command: "first"}))
	require.NoError(t, tbl.Add(Binding{Mods: 4, Keysym: 0x54, Command: "second"}))

	// Candidate order does not matter; table order decides.
	b := tbl.Match(4, []uint32{0x54, 0x74})
	require.NotNil(t, b)
	assert.Equal(t, "first", b.Command)

	assert.Nil(t, tbl.Match(8, []uint32{0x74}))
	assert.Nil(t, tbl.Match(4, []uint32{0x99}))
}

func TestBindingTableReplace(t *testing.T) {
	var tbl BindingTable
	require.NoError(t, tbl.Add(Binding{Mods: 4, Keysym: 0x74, Command: "old"}))
	tbl.Replace([]Binding{{UUID: "u", Mods: 1, Keysym: 0x20, Command: "new"}})

	require.Equal(t, 1, tbl.Len())
	assert.Nil(t, tbl.Match(4, []uint32{0x74}))
	assert.NotNil(t, tbl.Match(1, []uint32{0x20}))
}
