package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	assert.True(t, StatusDeleted.Valid())
	assert.False(t, StatusDeleted.Editable())
	assert.True(t, StatusDisabled.Editable())
	assert.False(t, Status(2).Valid())

	assert.Equal(t, "Active", StatusActive.Label())
	assert.Equal(t, "Inactive", StatusDisabled.Label())
	assert.Equal(t, "Inactive", StatusInactive.Label())
	assert.Equal(t, "Deleted", StatusDeleted.Label())
	assert.Equal(t, "Unknown", Status(9).Label())

	assert.Equal(t, []int{-2, -1, 0, 1}, AllStatuses())
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus(" -1 ")
	assert.True(t, ok)
	assert.Equal(t, StatusDisabled, s)

	_, ok = ParseStatus("5")
	assert.False(t, ok)
	_, ok = ParseStatus("active")
	assert.False(t, ok)
}

func TestCanonicalizeEntity(t *testing.T) {
	tests := map[string]Entity{
		"categories":  EntityCategories,
		"Category":    EntityCategories,
		"hard-drives": EntityStorages,
		" storages ":  EntityStorages,
		"screen":      EntityDisplays,
	}
	for in, want := range tests {
		got, ok := CanonicalizeEntity(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := CanonicalizeEntity("printers")
	assert.False(t, ok)
	_, ok = CanonicalizeEntity("")
	assert.False(t, ok)
}

func TestCanonicalOption(t *testing.T) {
	got, ok := CanonicalOption([]string{"SSD", "HDD"}, " ssd ")
	assert.True(t, ok)
	assert.Equal(t, "SSD", got)

	_, ok = CanonicalOption([]string{"SSD"}, "floppy")
	assert.False(t, ok)
}
