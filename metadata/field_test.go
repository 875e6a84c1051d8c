package metadata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestField_String(t *testing.T) {
	require.Equal(t, "cuisine", FieldCuisine.String())
	require.Equal(t, "opening_hours", FieldOpeningHours.String())
	require.Equal(t, "duration", FieldDuration.String())
	require.Equal(t, "field(0)", Field(0).String())
	require.Equal(t, "field(200)", Field(200).String())
}

func TestField_AllNamed(t *testing.T) {
	seen := make(map[string]Field)
	for f := FieldCuisine; f < FieldCount; f++ {
		name := f.String()
		require.NotEmpty(t, fieldNames[f], "field %d has no name", f)
		require.NotContains(t, seen, name, "duplicate name %q", name)
		seen[name] = f

		parsed, ok := ParseField(name)
		require.True(t, ok)
		require.Equal(t, f, parsed)
	}

	_, ok := ParseField("no_such_field")
	require.False(t, ok)
}

func TestField_Known(t *testing.T) {
	require.False(t, Field(0).Known())
	require.True(t, FieldCuisine.Known())
	require.True(t, (FieldCount - 1).Known())
	require.False(t, FieldCount.Known())
}
