package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_AddPlace(t *testing.T) {
	t.Parallel()

	u := &User{}
	u.AddPlace("p1")
	u.AddPlace("p2")
	u.AddPlace("p1")

	assert.Equal(t, []string{"p1", "p2"}, u.PlaceIDs, "duplicate ids must not be appended")
	assert.True(t, u.HasPlace("p2"))
	assert.False(t, u.HasPlace("p3"))
}

func TestUser_RemovePlace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		initial  []string
		remove   string
		expected []string
	}{
		{"remove existing id", []string{"p1", "p2", "p3"}, "p2", []string{"p1", "p3"}},
		{"remove missing id", []string{"p1"}, "p9", []string{"p1"}},
		{"remove from empty set", nil, "p1", nil},
		{"remove last id", []string{"p1"}, "p1", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u := &User{PlaceIDs: tt.initial}
			u.RemovePlace(tt.remove)

			assert.Equal(t, tt.expected, u.PlaceIDs)
			assert.False(t, u.HasPlace(tt.remove))
		})
	}
}
