package metadata

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/format"
	"github.com/arloliu/featidx/section"
	"github.com/arloliu/featidx/textpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func freezeMetadata(t testing.TB, b *Builder) []byte {
	t.Helper()

	var buf bytes.Buffer
	n, err := b.Freeze(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)

	return buf.Bytes()
}

func sampleMetadata(i int) Metadata {
	var md Metadata
	md.Set(FieldCuisine, []string{"italian", "thai", "burger"}[i%3])
	md.Set(FieldOpeningHours, "Mo-Fr 08:00-20:00")
	if i%2 == 0 {
		md.Set(FieldPhoneNumber, fmt.Sprintf("+1 555 %04d", i))
	}
	if i%5 == 0 {
		md.Set(FieldWebsite, fmt.Sprintf("https://poi-%d.example.org", i))
	}

	return md
}

func TestMetadataIndex_RoundTrip(t *testing.T) {
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionNone, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			b, err := NewBuilder(WithBlockSize(4), WithPoolBlockBytes(128), WithCompression(ct))
			require.NoError(t, err)

			const n = 200
			for i := 0; i < n; i++ {
				b.Put(uint32(i*3), sampleMetadata(i))
			}
			require.Equal(t, n, b.Len())

			d, err := Load(freezeMetadata(t, b))
			require.NoError(t, err)
			require.Equal(t, n, d.Len())

			for i := 0; i < n; i++ {
				var got Metadata
				ok, err := d.Get(uint32(i*3), &got)
				require.NoError(t, err)
				require.True(t, ok)
				require.Equal(t, sampleMetadata(i), got, "feature %d", i*3)

				var absent Metadata
				ok, err = d.Get(uint32(i*3+1), &absent)
				require.NoError(t, err)
				require.False(t, ok)
				require.True(t, absent.Empty())
			}
		})
	}
}

func TestMetadataIndex_TagOrderIndependent(t *testing.T) {
	entries := []Entry{
		{FieldWikipedia, "en:Brandenburg Gate"},
		{FieldCuisine, "none"},
		{FieldPostcode, "10117"},
		{FieldElevation, "34"},
	}

	var want Metadata
	for _, e := range entries {
		want.Set(e.Field, e.Value)
	}

	r := rand.New(rand.NewPCG(5, 6))
	b, err := NewBuilder()
	require.NoError(t, err)
	for id := uint32(1); id <= 10; id++ {
		shuffled := append([]Entry(nil), entries...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		b.PutEntries(id, shuffled)
	}

	d, err := Load(freezeMetadata(t, b))
	require.NoError(t, err)
	for id := uint32(1); id <= 10; id++ {
		var got Metadata
		ok, err := d.Get(id, &got)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, want, got)
	}
}

func TestMetadataIndex_UnknownTagsIgnored(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)
	b.PutEntries(7, []Entry{
		{Field(0), "zero tag"},
		{FieldStars, "3"},
		{Field(200), "from a newer build"},
		{FieldCount, "one past the end"},
	})

	d, err := Load(freezeMetadata(t, b))
	require.NoError(t, err)

	var got Metadata
	ok, err := d.Get(7, &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, got.Len())
	require.Equal(t, "3", got.Get(FieldStars))

	entries, ok, err := d.Entries(7)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []Entry{{FieldStars, "3"}}, entries)
}

func TestMetadataIndex_RepeatedFields(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)
	b.PutEntries(1, []Entry{{FieldLevel, "1"}, {FieldLevel, "2"}})

	d, err := Load(freezeMetadata(t, b))
	require.NoError(t, err)

	entries, ok, err := d.Entries(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []Entry{{FieldLevel, "1"}, {FieldLevel, "2"}}, entries)

	// the last stored value wins when assigning by tag
	var md Metadata
	ok, err = d.Get(1, &md)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2", md.Get(FieldLevel))
}

func TestMetadataIndex_GetKeepsOtherFields(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)
	var md Metadata
	md.Set(FieldBrand, "ACME")
	b.Put(1, md)

	d, err := Load(freezeMetadata(t, b))
	require.NoError(t, err)

	var out Metadata
	out.Set(FieldRating, "9.1")
	ok, err := d.Get(1, &out)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "ACME", out.Get(FieldBrand))
	require.Equal(t, "9.1", out.Get(FieldRating))
}

func TestMetadataIndex_EmptyRecordSkipped(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)
	b.Put(1, Metadata{})
	b.PutEntries(2, nil)
	require.Zero(t, b.Len())

	d, err := Load(freezeMetadata(t, b))
	require.NoError(t, err)

	var md Metadata
	ok, err := d.Get(1, &md)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMetadataIndex_Layout(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)
	b.Put(1, sampleMetadata(0))
	data := freezeMetadata(t, b)

	var header section.MetadataHeader
	require.NoError(t, header.Parse(data))
	require.Equal(t, uint32(24), header.StringsOffset)
	require.True(t, section.IsAligned(int64(header.MetadataMapOffset)))
	require.GreaterOrEqual(t, header.MetadataMapOffset, header.StringsOffset+header.StringsSize)
	require.Equal(t, len(data), int(header.MetadataMapOffset+header.MetadataMapSize))
}

func TestMetadataIndex_StringsDeduplicated(t *testing.T) {
	build := func(n int) int {
		b, err := NewBuilder(WithCompression(format.CompressionNone))
		require.NoError(t, err)
		for i := 0; i < n; i++ {
			var md Metadata
			md.Set(FieldOpeningHours, "24/7")
			md.Set(FieldOperator, "Deutsche Bahn")
			b.Put(uint32(i), md)
		}

		var header section.MetadataHeader
		require.NoError(t, header.Parse(freezeMetadata(t, b)))

		return int(header.StringsSize)
	}

	require.Equal(t, build(1), build(500))
}

func TestLoad_Failures(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)
	b.Put(1, sampleMetadata(1))
	data := freezeMetadata(t, b)

	t.Run("version", func(t *testing.T) {
		patched := bytes.Clone(data)
		patched[0] = 1
		d, err := Load(patched)
		require.ErrorIs(t, err, errs.ErrVersionMismatch)
		require.Nil(t, d)
	})

	t.Run("truncated", func(t *testing.T) {
		for _, n := range []int{0, section.MetadataHeaderSize, len(data) - 1} {
			d, err := Load(data[:n])
			require.Error(t, err)
			require.Nil(t, d)
		}
	})

	t.Run("misaligned strings offset", func(t *testing.T) {
		patched := bytes.Clone(data)
		require.Equal(t, byte(24), patched[4])
		patched[4]++
		d, err := Load(patched)
		require.ErrorIs(t, err, errs.ErrTruncatedSection)
		require.ErrorContains(t, err, "aligned")
		require.Nil(t, d)
	})

	t.Run("misaligned map offset", func(t *testing.T) {
		patched := bytes.Clone(data)
		patched[12] |= 0x01
		_, err := Load(patched)
		require.ErrorIs(t, err, errs.ErrTruncatedSection)
		require.ErrorContains(t, err, "aligned")
	})

	t.Run("pool version", func(t *testing.T) {
		patched := bytes.Clone(data)
		patched[24] = 9
		_, err := Load(patched)
		require.ErrorIs(t, err, errs.ErrVersionMismatch)
	})
}

func TestBuilder_FreezeTwice(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)
	freezeMetadata(t, b)

	_, err = b.Freeze(&bytes.Buffer{})
	require.ErrorIs(t, err, errs.ErrBuilderFrozen)
}

func TestBuilder_InvalidOptions(t *testing.T) {
	_, err := NewBuilder(WithBlockSize(0))
	require.ErrorIs(t, err, errs.ErrInvalidBlockSize)

	_, err = NewBuilder(WithCompression(format.CompressionType(99)))
	require.ErrorIs(t, err, errs.ErrUnknownCompression)
}

func TestDeserializer_ConcurrentGet(t *testing.T) {
	b, err := NewBuilder(WithPoolBlockBytes(64))
	require.NoError(t, err)
	const n = 1000
	for i := 0; i < n; i++ {
		b.Put(uint32(i), sampleMetadata(i))
	}
	d, err := Load(freezeMetadata(t, b), textpool.WithCacheBytes(512))
	require.NoError(t, err)

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for i := w; i < n; i += 5 {
				var md Metadata
				ok, err := d.Get(uint32(i), &md)
				if err != nil {
					return err
				}
				if !ok || md != sampleMetadata(i) {
					return fmt.Errorf("feature %d: mismatch", i)
				}
			}

			return nil
		})
	}
	require.NoError(t, g.Wait())
}
