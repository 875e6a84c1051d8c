package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogSectionLoad(t *testing.T) {
	var buf bytes.Buffer
	log := NewText(&buf, slog.LevelDebug).WithRegion("berlin.fidx")

	log.LogSectionLoad(context.Background(), "heights", 128, nil)
	require.Contains(t, buf.String(), "auxiliary section loaded")
	require.Contains(t, buf.String(), "section=heights")
	require.Contains(t, buf.String(), "region=berlin.fidx")

	buf.Reset()
	log.LogSectionLoad(context.Background(), "metadata", 64, errors.New("format version mismatch"))
	require.Contains(t, buf.String(), "level=WARN")
	require.Contains(t, buf.String(), "format version mismatch")
}

func TestLogSectionWrite(t *testing.T) {
	var buf bytes.Buffer
	log := NewText(&buf, slog.LevelDebug)

	log.LogSectionWrite(context.Background(), "locality", 64, 1024)
	require.Contains(t, buf.String(), "offset=64")
	require.Contains(t, buf.String(), "size=1024")
}

func TestNoop(t *testing.T) {
	log := Noop()
	require.False(t, log.Enabled(context.Background(), slog.LevelError))
}

func TestNew_DefaultHandler(t *testing.T) {
	log := New(nil)
	require.True(t, log.Enabled(context.Background(), slog.LevelInfo))
	require.False(t, log.Enabled(context.Background(), slog.LevelDebug))
}

func TestWrap(t *testing.T) {
	var buf bytes.Buffer
	log := Wrap(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	log.LogSectionAbsent(context.Background(), "locality")
	require.Contains(t, buf.String(), "auxiliary section absent")
	require.Contains(t, buf.String(), "section=locality")

	require.NotNil(t, Wrap(nil))
	require.False(t, Wrap(nil).Enabled(context.Background(), slog.LevelError))
}
