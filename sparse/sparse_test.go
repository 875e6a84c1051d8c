package sparse

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"fmt"
	"slices"
	"testing"

	"github.com/arloliu/featidx/encoding"
	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/section"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type pair struct {
	key   uint32
	value uint32
}

func randomPairs(seed int64, maxCount int) []pair {
	fz := fuzz.NewWithSeed(seed).NilChance(0).NumElements(0, maxCount)

	var m map[uint32]uint32
	fz.Fuzz(&m)

	pairs := make([]pair, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, pair{k, v})
	}
	slices.SortFunc(pairs, func(a, b pair) int {
		return cmp.Compare(a.key, b.key)
	})

	return pairs
}

func freeze(t testing.TB, codec encoding.BlockCodec[uint32], pairs []pair, opts ...BuilderOption) []byte {
	t.Helper()

	b, err := NewBuilder(codec, opts...)
	require.NoError(t, err)
	for _, p := range pairs {
		b.Put(p.key, p.value)
	}
	require.Equal(t, len(pairs), b.Len())

	var buf bytes.Buffer
	n, err := b.Freeze(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)

	return buf.Bytes()
}

func TestMap_RoundTrip(t *testing.T) {
	codecs := map[string]encoding.BlockCodec[uint32]{
		"uvarint": encoding.NewUvarintBlockCodec(),
		"delta":   encoding.NewDeltaBlockCodec(),
	}

	for name, codec := range codecs {
		for _, blockSize := range []int{1, 2, 7, 64, 1000} {
			t.Run(fmt.Sprintf("%s/block_%d", name, blockSize), func(t *testing.T) {
				pairs := randomPairs(int64(blockSize), 300)
				data := freeze(t, codec, pairs, WithBlockSize(blockSize))

				m, err := Load[uint32](data, codec)
				require.NoError(t, err)
				require.Equal(t, len(pairs), m.Len())

				present := make(map[uint32]bool, len(pairs))
				for _, p := range pairs {
					present[p.key] = true
					v, ok := m.Get(p.key)
					require.True(t, ok, "key %d", p.key)
					require.Equal(t, p.value, v, "key %d", p.key)
				}

				for _, p := range pairs {
					for _, probe := range []uint32{p.key - 1, p.key + 1} {
						if present[probe] {
							continue
						}
						_, ok, err := m.Lookup(probe)
						require.NoError(t, err)
						require.False(t, ok, "key %d was never put", probe)
					}
				}
			})
		}
	}
}

func TestMap_BlockBoundaries(t *testing.T) {
	pairs := randomPairs(42, 500)
	data := freeze(t, encoding.NewUvarintBlockCodec(), pairs, WithBlockSize(5))

	m, err := Load[uint32](data, encoding.NewUvarintBlockCodec())
	require.NoError(t, err)
	require.Equal(t, (len(pairs)+4)/5, m.BlockCount())

	for i := 0; i < m.BlockCount(); i++ {
		lo, hi := m.BlockBounds(i)
		require.LessOrEqual(t, lo, hi)
		if i+1 < m.BlockCount() {
			nextLo, _ := m.BlockBounds(i + 1)
			require.Less(t, hi, nextLo, "block %d overlaps block %d", i, i+1)
		}
	}
}

func TestMap_All(t *testing.T) {
	pairs := randomPairs(3, 100)
	data := freeze(t, encoding.NewUvarintBlockCodec(), pairs, WithBlockSize(3))

	m, err := Load[uint32](data, encoding.NewUvarintBlockCodec())
	require.NoError(t, err)

	var got []pair
	for k, v := range m.All() {
		got = append(got, pair{k, v})
	}
	if len(pairs) == 0 {
		require.Empty(t, got)
	} else {
		require.Equal(t, pairs, got)
	}

	// early break
	count := 0
	for range m.All() {
		count++
		if count == 2 {
			break
		}
	}
	require.LessOrEqual(t, count, 2)
}

func TestMap_Empty(t *testing.T) {
	data := freeze(t, encoding.NewUvarintBlockCodec(), nil)

	m, err := Load[uint32](data, encoding.NewUvarintBlockCodec())
	require.NoError(t, err)
	require.Zero(t, m.Len())
	require.Zero(t, m.BlockCount())

	_, ok := m.Get(0)
	require.False(t, ok)
}

func TestMap_Layout(t *testing.T) {
	pairs := []pair{{1, 10}, {2, 20}, {3, 30}}
	data := freeze(t, encoding.NewUvarintBlockCodec(), pairs, WithBlockSize(2))

	var header section.MapHeader
	require.NoError(t, header.Parse(data))
	require.Equal(t, uint32(3), header.KeyCount)
	require.Equal(t, uint32(2), header.BlockCount)
	require.Equal(t, uint32(2), header.BlockSize)

	for _, off := range []uint32{header.KeysOffset, header.BlockOffsetsOffset, header.BlocksOffset} {
		require.True(t, section.IsAligned(int64(off)), "offset %d", off)
	}
	require.Equal(t, uint32(section.MapHeaderSize), header.KeysOffset)
	require.Equal(t, len(data), int(header.BlocksOffset+header.BlocksSize))

	// keys are a plain little-endian array
	for i, p := range pairs {
		require.Equal(t, p.key, binary.LittleEndian.Uint32(data[header.KeysOffset+uint32(4*i):]))
	}
}

func TestBuilder_FreezeTwice(t *testing.T) {
	b, err := NewBuilder[uint32](encoding.NewUvarintBlockCodec())
	require.NoError(t, err)
	b.Put(1, 1)

	var buf bytes.Buffer
	_, err = b.Freeze(&buf)
	require.NoError(t, err)

	_, err = b.Freeze(&buf)
	require.ErrorIs(t, err, errs.ErrBuilderFrozen)
}

func TestBuilder_InvalidBlockSize(t *testing.T) {
	for _, n := range []int{0, -1, MaxBlockSize + 1} {
		_, err := NewBuilder[uint32](encoding.NewUvarintBlockCodec(), WithBlockSize(n))
		require.ErrorIs(t, err, errs.ErrInvalidBlockSize, "block size %d", n)
	}
}

func TestLoad_Failures(t *testing.T) {
	pairs := []pair{{10, 100}, {20, 200}, {55, 9999}}
	codec := encoding.NewUvarintBlockCodec()
	data := freeze(t, codec, pairs, WithBlockSize(2))

	t.Run("short header", func(t *testing.T) {
		_, err := Load[uint32](data[:section.MapHeaderSize-1], codec)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("version mismatch", func(t *testing.T) {
		patched := slices.Clone(data)
		patched[0] = 0x7F
		_, err := Load[uint32](patched, codec)
		require.ErrorIs(t, err, errs.ErrVersionMismatch)
	})

	t.Run("codec mismatch", func(t *testing.T) {
		_, err := Load[uint32](data, encoding.NewDeltaBlockCodec())
		require.ErrorIs(t, err, errs.ErrCodecMismatch)
	})

	t.Run("truncated blocks", func(t *testing.T) {
		_, err := Load[uint32](data[:len(data)-1], codec)
		require.ErrorIs(t, err, errs.ErrTruncatedSection)
	})

	t.Run("truncated keys", func(t *testing.T) {
		_, err := Load[uint32](data[:section.MapHeaderSize+4], codec)
		require.ErrorIs(t, err, errs.ErrTruncatedSection)
	})

	t.Run("inconsistent block count", func(t *testing.T) {
		patched := slices.Clone(data)
		binary.LittleEndian.PutUint32(patched[12:], 5)
		_, err := Load[uint32](patched, codec)
		require.ErrorIs(t, err, errs.ErrTruncatedSection)
	})
}

func TestMap_CorruptBlock(t *testing.T) {
	pairs := []pair{{10, 100}, {20, 200}, {55, 9999}}
	codec := encoding.NewUvarintBlockCodec()
	data := slices.Clone(freeze(t, codec, pairs, WithBlockSize(2)))

	var header section.MapHeader
	require.NoError(t, header.Parse(data))
	// end offset of block 0 points past the blocks region
	binary.LittleEndian.PutUint32(data[header.BlockOffsetsOffset+4:], 0xFFFF)

	m, err := Load[uint32](data, codec)
	require.NoError(t, err)

	_, ok, err := m.Lookup(10)
	require.ErrorIs(t, err, errs.ErrMalformedBlock)
	require.False(t, ok)

	_, ok = m.Get(10)
	require.False(t, ok)
}

func TestMap_ConcurrentReaders(t *testing.T) {
	pairs := randomPairs(99, 1000)
	codec := encoding.NewUvarintBlockCodec()
	data := freeze(t, codec, pairs, WithBlockSize(16))

	m, err := Load[uint32](data, codec)
	require.NoError(t, err)

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for i := w; i < len(pairs); i += 8 {
				v, ok := m.Get(pairs[i].key)
				if !ok || v != pairs[i].value {
					return fmt.Errorf("key %d: got (%d, %v), want %d", pairs[i].key, v, ok, pairs[i].value)
				}
			}

			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func BenchmarkMap_Get(b *testing.B) {
	pairs := make([]pair, 100_000)
	for i := range pairs {
		pairs[i] = pair{uint32(i * 3), uint32(i * 17)}
	}
	codec := encoding.NewUvarintBlockCodec()
	data := freeze(b, codec, pairs)

	m, err := Load[uint32](data, codec)
	require.NoError(b, err)

	b.ReportAllocs()
	i := 0
	for b.Loop() {
		m.Get(pairs[i%len(pairs)].key)
		i++
	}
}
