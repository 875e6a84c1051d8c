package section

import (
	"testing"

	"github.com/arloliu/featidx/errs"
	"github.com/stretchr/testify/require"
)

func TestMetadataHeader_RoundTrip(t *testing.T) {
	original := NewMetadataHeader()
	original.StringsOffset = 24
	original.StringsSize = 1000
	original.MetadataMapOffset = 1024
	original.MetadataMapSize = 77

	data := original.Bytes()
	require.Len(t, data, MetadataHeaderSize)

	var parsed MetadataHeader
	require.NoError(t, parsed.Parse(data))
	require.Equal(t, original, parsed)
}

func TestMetadataHeader_ParseErrors(t *testing.T) {
	t.Run("Too short", func(t *testing.T) {
		var h MetadataHeader
		require.ErrorIs(t, h.Parse(make([]byte, MetadataHeaderSize-1)), errs.ErrInvalidHeaderSize)
	})

	t.Run("Version mismatch", func(t *testing.T) {
		h := NewMetadataHeader()
		data := h.Bytes()
		data[0] = 1

		var parsed MetadataHeader
		require.ErrorIs(t, parsed.Parse(data), errs.ErrVersionMismatch)
	})
}
