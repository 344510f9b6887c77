package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStretches(count int) []Stretch {
	stretches := make([]Stretch, 0, count)
	for i := 0; i < count; i++ {
		stretches = append(stretches, Stretch{
			ID:              string(rune('a' + i)),
			Name:            "Stretch",
			DurationSeconds: 20,
			Category:        CategoryDeskFriendly,
			TargetArea:      "neck",
		})
	}
	return stretches
}

func TestSession_TotalDurationSeconds(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		stretch int
		rest    int
		want    int
	}{
		{"empty", 0, 20, 5, 0},
		{"single stretch has no rest", 1, 20, 5, 20},
		{"three stretches", 3, 20, 5, 70},
		{"zero rest", 4, 15, 0, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := NewSession(sampleStretches(tt.count), tt.stretch, tt.rest, time.Now())
			assert.Equal(t, tt.want, session.TotalDurationSeconds())
		})
	}
}

func TestNewSession_UniqueIDsAndCopiedPlaylist(t *testing.T) {
	stretches := sampleStretches(2)
	first := NewSession(stretches, 20, 5, time.Now())
	second := NewSession(stretches, 20, 5, time.Now())

	assert.NotEqual(t, first.ID, second.ID)

	stretches[0].Name = "changed"
	assert.Equal(t, "Stretch", first.Stretches[0].Name)
}

func TestParseCategory(t *testing.T) {
	category, err := ParseCategory("mat_required")
	require.NoError(t, err)
	assert.Equal(t, CategoryMatRequired, category)
	assert.Equal(t, "Mat Required", category.DisplayName())

	_, err = ParseCategory("standing")
	assert.Error(t, err)
}

func TestCategory_DisplayName(t *testing.T) {
	assert.Equal(t, "Desk-Friendly", CategoryDeskFriendly.DisplayName())
	assert.Equal(t, "other", Category("other").DisplayName())
	assert.Equal(t, []Category{CategoryDeskFriendly, CategoryMatRequired}, Categories())
}
