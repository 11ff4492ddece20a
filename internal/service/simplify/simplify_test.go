package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimplifySplitsSentences(t *testing.T) {
	s := New(9)
	got := s.Simplify("The cat sat.   It was  happy! Was it?\nYes...   really")
	assert.Equal(t, "The cat sat.\nIt was happy!\nWas it?\nYes...\nreally", got)
}

func TestSimplifyKeepsParagraphs(t *testing.T) {
	s := New(9)
	got := s.Simplify("First one. Second.\r\n\r\n\r\nNext paragraph.")
	assert.Equal(t, "First one.\nSecond.\n\nNext paragraph.", got)
}

func TestSimplifyEmpty(t *testing.T) {
	assert.Empty(t, New(9).Simplify("  \n\n "))
}

func TestHighlightDifficult(t *testing.T) {
	s := New(9)
	got := s.HighlightDifficult("An extraordinary day, <b> & unbelievable.")
	assert.Equal(t,
		`An <mark class="difficult">extraordinary</mark> day, &lt;b&gt; &amp; <mark class="difficult">unbelievable</mark>.`,
		got)
}

func TestIsDifficult(t *testing.T) {
	s := New(5)
	assert.True(t, s.IsDifficult("house"))
	assert.False(t, s.IsDifficult("it's"))
	assert.False(t, s.IsDifficult("a-b-c"))
	assert.Equal(t, 9, New(0).minLen)
}
