package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalValidateMoodRange(t *testing.T) {
	for _, mood := range []int{1, 3, 5} {
		j := &Journal{UserID: 1, Title: "A day", Content: "It was fine.", Mood: mood}
		require.NoError(t, j.Validate())
	}
	for _, mood := range []int{0, -1, 6, 42} {
		j := &Journal{UserID: 1, Title: "A day", Content: "It was fine.", Mood: mood}
		if err := j.Validate(); err == nil {
			t.Fatalf("expected mood %d to fail validation", mood)
		}
	}
}

func TestJournalValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		journal Journal
	}{
		{name: "missing title", journal: Journal{Content: "text", Mood: 3}},
		{name: "missing content", journal: Journal{Title: "t", Mood: 3}},
	}

	for _, tt := range tests {
		if err := tt.journal.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tt.name)
		}
	}
}

func TestJournalOwnerID(t *testing.T) {
	j := &Journal{UserID: 42}
	assert.Equal(t, uint(42), j.OwnerID())
}

func TestMoodValidateRatingRange(t *testing.T) {
	for _, rating := range []int{1, 5} {
		m := &Mood{UserID: 1, Rating: rating}
		require.NoError(t, m.Validate())
	}
	for _, rating := range []int{0, 6} {
		m := &Mood{UserID: 1, Rating: rating}
		if err := m.Validate(); err == nil {
			t.Fatalf("expected rating %d to fail validation", rating)
		}
	}
}

func TestMoodOwnerID(t *testing.T) {
	m := &Mood{UserID: 7}
	assert.Equal(t, uint(7), m.OwnerID())
}
