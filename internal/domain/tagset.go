package domain

import "strings"

// MaxTagSuggestions caps how many predefined candidates are offered per field.
const MaxTagSuggestions = 12

// TagSet is an ordered collection of unique strings backing the multi-valued
// context fields (roles, industries, keywords, geography). Insertion order is
// preserved; equality is case-sensitive.
type TagSet struct {
	values []string
}

func NewTagSet(values ...string) *TagSet {
	s := &TagSet{}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add trims the value and appends it. Empty values and values already present
// are ignored, so calling Add twice with the same input is a no-op the second
// time.
func (s *TagSet) Add(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" || s.Contains(value) {
		return false
	}
	s.values = append(s.values, value)
	return true
}

// Remove deletes the value at index, preserving the relative order of the
// remaining entries. Out-of-range indexes are ignored.
func (s *TagSet) Remove(index int) bool {
	if index < 0 || index >= len(s.values) {
		return false
	}
	s.values = append(s.values[:index], s.values[index+1:]...)
	return true
}

func (s *TagSet) Contains(value string) bool {
	for _, v := range s.values {
		if v == value {
			return true
		}
	}
	return false
}

func (s *TagSet) Len() int {
	return len(s.values)
}

// Values returns a copy of the ordered contents.
func (s *TagSet) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// TagSuggestion is a predefined candidate offered next to a tag field. A
// candidate already present in the set is rendered disabled, not hidden.
type TagSuggestion struct {
	Value    string `json:"value"`
	Disabled bool   `json:"disabled"`
}

// Suggestions pairs up to MaxTagSuggestions candidates with their disabled
// state relative to the current set contents.
func (s *TagSet) Suggestions(candidates []string) []TagSuggestion {
	if len(candidates) > MaxTagSuggestions {
		candidates = candidates[:MaxTagSuggestions]
	}
	out := make([]TagSuggestion, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, TagSuggestion{Value: c, Disabled: s.Contains(c)})
	}
	return out
}
