package offsettable

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/section"
	"github.com/arloliu/featidx/sparse"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func buildTable(t *testing.T, pairs [][2]uint32, opts ...sparse.BuilderOption) []byte {
	t.Helper()

	b, err := NewBuilder(opts...)
	require.NoError(t, err)
	for _, p := range pairs {
		b.Put(p[0], p[1])
	}

	var buf bytes.Buffer
	_, err = b.Freeze(&buf)
	require.NoError(t, err)

	return buf.Bytes()
}

func TestTable_HeightScenario(t *testing.T) {
	data := buildTable(t, [][2]uint32{{10, 100}, {20, 200}, {55, 9999}}, sparse.WithBlockSize(2))

	table, err := Load(data)
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	tests := []struct {
		featureID uint32
		offset    uint32
		found     bool
	}{
		{10, 100, true},
		{20, 200, true},
		{55, 9999, true},
		{11, 0, false},
		{0, 0, false},
		{56, 0, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("feature_%d", tt.featureID), func(t *testing.T) {
			offset, ok := table.Get(tt.featureID)
			require.Equal(t, tt.found, ok)
			require.Equal(t, tt.offset, offset)
		})
	}
}

func TestTable_HeaderLayout(t *testing.T) {
	data := buildTable(t, [][2]uint32{{1, 1}})

	var header section.OffsetHeader
	require.NoError(t, header.Parse(data))
	require.Equal(t, uint32(16), header.IndexOffset)
	require.Equal(t, len(data), int(header.IndexOffset+header.IndexSize))

	// padding after the 12-byte header is zero
	require.Equal(t, []byte{0, 0, 0, 0}, data[section.OffsetHeaderSize:header.IndexOffset])
}

func TestLoad_PatchedVersion(t *testing.T) {
	data := buildTable(t, [][2]uint32{{10, 100}, {20, 200}, {55, 9999}}, sparse.WithBlockSize(2))
	data[0] = 0x09

	table, err := Load(data)
	require.ErrorIs(t, err, errs.ErrVersionMismatch)
	require.Nil(t, table)
}

func TestLoad_PatchedIndexVersion(t *testing.T) {
	data := buildTable(t, [][2]uint32{{10, 100}})
	data[16] = 0x09

	_, err := Load(data)
	require.ErrorIs(t, err, errs.ErrVersionMismatch)
}

func TestLoad_Truncated(t *testing.T) {
	data := buildTable(t, [][2]uint32{{10, 100}, {20, 200}})

	for _, n := range []int{0, 5, section.OffsetHeaderSize, len(data) - 1} {
		t.Run(fmt.Sprintf("len_%d", n), func(t *testing.T) {
			table, err := Load(data[:n])
			require.Error(t, err)
			require.Nil(t, table)
		})
	}

	_, err := Load(data[:len(data)-1])
	require.ErrorIs(t, err, errs.ErrTruncatedSection)
}

func TestTable_ConcurrentGet(t *testing.T) {
	pairs := make([][2]uint32, 5000)
	for i := range pairs {
		pairs[i] = [2]uint32{uint32(i*2 + 1), uint32(i * 40)}
	}
	table, err := Load(buildTable(t, pairs))
	require.NoError(t, err)

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for _, p := range pairs {
				if off, ok := table.Get(p[0]); !ok || off != p[1] {
					return fmt.Errorf("feature %d: got %d, %v", p[0], off, ok)
				}
				if _, ok := table.Get(p[0] + 1); ok {
					return fmt.Errorf("feature %d should be absent", p[0]+1)
				}
			}

			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestLoad_MisalignedIndexOffset(t *testing.T) {
	data := buildTable(t, [][2]uint32{{10, 100}, {20, 200}})
	require.Equal(t, byte(section.Align8(section.OffsetHeaderSize)), data[4])
	data[4]++

	table, err := Load(data)
	require.ErrorIs(t, err, errs.ErrTruncatedSection)
	require.ErrorContains(t, err, "aligned")
	require.Nil(t, table)
}
