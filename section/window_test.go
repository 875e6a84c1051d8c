package section

import (
	"bytes"
	"testing"

	"github.com/arloliu/featidx/errs"
	"github.com/stretchr/testify/require"
)

func TestAlign8(t *testing.T) {
	cases := map[int64]int64{0: 0, 1: 8, 7: 8, 8: 8, 9: 16, 12: 16, 20: 24, 24: 24}
	for in, want := range cases {
		require.Equal(t, want, Align8(in), "Align8(%d)", in)
		require.True(t, IsAligned(Align8(in)))
	}
	require.False(t, IsAligned(12))
}

func TestWritePadding(t *testing.T) {
	var buf bytes.Buffer
	n, err := WritePadding(&buf, 12)
	require.NoError(t, err)
	require.Equal(t, int64(4), n)
	require.Equal(t, []byte{0, 0, 0, 0}, buf.Bytes())

	n, err = WritePadding(&buf, 16)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestAppendPadding(t *testing.T) {
	dst := AppendPadding([]byte{1, 2, 3})
	require.Len(t, dst, 8)
	require.Equal(t, []byte{1, 2, 3, 0, 0, 0, 0, 0}, dst)

	require.Len(t, AppendPadding(dst), 8)
}

func TestWindow(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4, 5, 6, 7}

	t.Run("Inside", func(t *testing.T) {
		w, err := Window(data, 2, 3)
		require.NoError(t, err)
		require.Equal(t, []byte{2, 3, 4}, w)
		require.Equal(t, 3, cap(w), "window must not expose bytes past its end")
	})

	t.Run("Exact end", func(t *testing.T) {
		w, err := Window(data, 8, 0)
		require.NoError(t, err)
		require.Empty(t, w)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := Window(data, 6, 3)
		require.ErrorIs(t, err, errs.ErrTruncatedSection)
	})

	t.Run("Overflowing offset", func(t *testing.T) {
		_, err := Window(data, 0xFFFFFFFF, 0xFFFFFFFF)
		require.ErrorIs(t, err, errs.ErrTruncatedSection)
	})
}

func TestCheckOffset(t *testing.T) {
	v, err := CheckOffset(123)
	require.NoError(t, err)
	require.Equal(t, uint32(123), v)

	_, err = CheckOffset(MaxOffset + 1)
	require.ErrorIs(t, err, errs.ErrOffsetOverflow)

	_, err = CheckOffset(-1)
	require.ErrorIs(t, err, errs.ErrOffsetOverflow)
}

func TestCheckAligned(t *testing.T) {
	require.NoError(t, CheckAligned("index", 0))
	require.NoError(t, CheckAligned("index", 24))

	err := CheckAligned("index", 17)
	require.ErrorIs(t, err, errs.ErrTruncatedSection)
	require.ErrorContains(t, err, "index offset 17")
}
