package encoding

import (
	"math"
	"testing"

	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/format"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
)

func TestUvarintBlockCodec_RoundTrip(t *testing.T) {
	codec := NewUvarintBlockCodec()
	require.Equal(t, format.EncodingUvarint, codec.Encoding())

	values := []uint32{0, 1, 127, 128, 9999, 100, math.MaxUint32}
	data := codec.AppendBlock(nil, values)

	decoded, err := codec.DecodeBlock(data, len(values), nil)
	require.NoError(t, err)
	require.Equal(t, values, decoded)

	for i, want := range values {
		got, err := codec.DecodeAt(data, len(values), i)
		require.NoError(t, err)
		require.Equal(t, want, got, "DecodeAt(%d)", i)
	}
}

func TestUvarintBlockCodec_AbsoluteEncoding(t *testing.T) {
	codec := NewUvarintBlockCodec()

	// 300 is written as-is, not as a delta from 200
	data := codec.AppendBlock(nil, []uint32{200, 300})
	require.Equal(t, []byte{0xC8, 0x01, 0xAC, 0x02}, data)
}

func TestUvarintBlockCodec_Truncated(t *testing.T) {
	codec := NewUvarintBlockCodec()
	data := codec.AppendBlock(nil, []uint32{1000, 2000})

	_, err := codec.DecodeBlock(data[:3], 2, nil)
	require.ErrorIs(t, err, errs.ErrMalformedBlock)

	_, err = codec.DecodeBlock(data, 3, nil)
	require.ErrorIs(t, err, errs.ErrMalformedBlock)

	_, err = codec.DecodeAt(data, 2, 2)
	require.ErrorIs(t, err, errs.ErrMalformedBlock)

	_, err = codec.DecodeAt(data[:1], 2, 1)
	require.ErrorIs(t, err, errs.ErrMalformedBlock)
}

func TestUvarintBlockCodec_ReusesDst(t *testing.T) {
	codec := NewUvarintBlockCodec()
	data := codec.AppendBlock(nil, []uint32{5, 6})

	dst := make([]uint32, 10, 16)
	decoded, err := codec.DecodeBlock(data, 2, dst)
	require.NoError(t, err)
	require.Equal(t, []uint32{5, 6}, decoded)
}

func TestReadUvarint32_Overflow(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x7F} // 2^35-1
	_, _, err := ReadUvarint32(data)
	require.ErrorIs(t, err, errs.ErrMalformedBlock)
}

func TestUvarintBlockCodec_Fuzz(t *testing.T) {
	fz := fuzz.NewWithSeed(1).NilChance(0).NumElements(1, 64)
	codec := NewUvarintBlockCodec()

	for range 200 {
		var values []uint32
		fz.Fuzz(&values)

		decoded, err := codec.DecodeBlock(codec.AppendBlock(nil, values), len(values), nil)
		require.NoError(t, err)
		require.Equal(t, values, decoded)
	}
}
