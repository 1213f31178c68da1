package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabels_KeepsFirstOrder(t *testing.T) {
	l := NewLabels("b", "a", "b")
	l.Add("c", "a")

	assert.Equal(t, []string{"b", "a", "c"}, l.Names())
	assert.Equal(t, 3, l.Len())
	assert.True(t, l.Contains("c"))
	assert.False(t, l.Contains("d"))
}

func TestLabels_NamesIsCopy(t *testing.T) {
	l := NewLabels("a")
	names := l.Names()
	names[0] = "z"

	assert.Equal(t, []string{"a"}, l.Names())
}

func TestEntry_Joined(t *testing.T) {
	e := &Entry{Title: []string{" Go ", "fast"}, Desc: []string{"line\n", ""}}

	assert.Equal(t, "Go  fast", e.JoinedTitle())
	assert.Equal(t, "line", e.JoinedDesc())
}
