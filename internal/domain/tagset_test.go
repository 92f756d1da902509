package domain_test

import (
	"testing"

	"go-outreach-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestTagSetAdd(t *testing.T) {
	t.Run("Should preserve insertion order", func(t *testing.T) {
		s := domain.NewTagSet()
		assert.True(t, s.Add("Go"))
		assert.True(t, s.Add("Docker"))
		assert.True(t, s.Add("AWS"))
		assert.Equal(t, []string{"Go", "Docker", "AWS"}, s.Values())
	})

	t.Run("Should ignore duplicates", func(t *testing.T) {
		s := domain.NewTagSet("Go")
		assert.False(t, s.Add("Go"))
		assert.Equal(t, 1, s.Len())
	})

	t.Run("Should trim and reject empty", func(t *testing.T) {
		s := domain.NewTagSet()
		assert.True(t, s.Add("  Go  "))
		assert.False(t, s.Add("Go"))
		assert.False(t, s.Add("   "))
		assert.Equal(t, []string{"Go"}, s.Values())
	})
}

func TestTagSetRemove(t *testing.T) {
	s := domain.NewTagSet("a", "b", "c")

	t.Run("Should keep order of remaining entries", func(t *testing.T) {
		assert.True(t, s.Remove(1))
		assert.Equal(t, []string{"a", "c"}, s.Values())
	})

	t.Run("Should ignore out of range index", func(t *testing.T) {
		assert.False(t, s.Remove(-1))
		assert.False(t, s.Remove(5))
		assert.Equal(t, 2, s.Len())
	})

	t.Run("Should allow re-adding a removed value", func(t *testing.T) {
		assert.True(t, s.Add("b"))
		assert.Equal(t, []string{"a", "c", "b"}, s.Values())
	})
}

func TestTagSetSuggestions(t *testing.T) {
	t.Run("Should disable candidates already present", func(t *testing.T) {
		s := domain.NewTagSet("Go")
		got := s.Suggestions([]string{"Go", "Rust"})
		assert.Equal(t, []domain.TagSuggestion{
			{Value: "Go", Disabled: true},
			{Value: "Rust", Disabled: false},
		}, got)
	})

	t.Run("Should cap candidate count", func(t *testing.T) {
		s := domain.NewTagSet()
		got := s.Suggestions(domain.CommonTechKeywords)
		assert.Len(t, got, domain.MaxTagSuggestions)
	})

	t.Run("Should re-enable after removal", func(t *testing.T) {
		s := domain.NewTagSet("Go")
		s.Remove(0)
		got := s.Suggestions([]string{"Go"})
		assert.False(t, got[0].Disabled)
	})
}
