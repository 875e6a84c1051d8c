package intern

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTable_Intern(t *testing.T) {
	table := NewTable()

	id1, added := table.Intern([]byte("Mo-Fr 09:00-18:00"))
	require.True(t, added)
	require.Equal(t, uint32(0), id1)

	id2, added := table.Intern([]byte("+1 555 0100"))
	require.True(t, added)
	require.Equal(t, uint32(1), id2)

	again, added := table.Intern([]byte("Mo-Fr 09:00-18:00"))
	require.False(t, added)
	require.Equal(t, id1, again)

	require.Equal(t, 2, table.Len())
	require.Equal(t, len("Mo-Fr 09:00-18:00")+len("+1 555 0100"), table.TotalBytes())
	require.Equal(t, []byte("+1 555 0100"), table.At(id2))
}

func TestTable_OwnsCopies(t *testing.T) {
	table := NewTable()
	buf := []byte("pizza")

	id, _ := table.Intern(buf)
	buf[0] = 'P'

	require.Equal(t, []byte("pizza"), table.At(id))
}

func TestTable_EmptyString(t *testing.T) {
	table := NewTable()

	id, added := table.Intern(nil)
	require.True(t, added)

	same, added := table.Intern([]byte{})
	require.False(t, added)
	require.Equal(t, id, same)
	require.Empty(t, table.At(id))
}

func TestTable_ManyStrings(t *testing.T) {
	table := NewTable()
	for i := range 1000 {
		id, added := table.Intern(fmt.Appendf(nil, "value-%d", i))
		require.True(t, added)
		require.Equal(t, uint32(i), id)
	}
	for i := range 1000 {
		id, added := table.Intern(fmt.Appendf(nil, "value-%d", i))
		require.False(t, added)
		require.Equal(t, uint32(i), id)
	}
	require.Zero(t, table.Collisions())
}

func TestTable_Reset(t *testing.T) {
	table := NewTable()
	table.Intern([]byte("a"))
	table.Reset()

	require.Zero(t, table.Len())
	require.Zero(t, table.TotalBytes())

	id, added := table.Intern([]byte("a"))
	require.True(t, added)
	require.Equal(t, uint32(0), id)
}
