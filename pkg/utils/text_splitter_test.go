package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentences_ShortTextSingleChunk(t *testing.T) {
	chunks := SplitSentences("Koperasi menawarkan pembiayaan peribadi.", 500)
	assert.Len(t, chunks, 1)
	assert.Equal(t, "Koperasi menawarkan pembiayaan peribadi.", chunks[0])
}

func TestSplitSentences_EmptyText(t *testing.T) {
	assert.Nil(t, SplitSentences("", 500))
	assert.Nil(t, SplitSentences("   \n  ", 500))
}

func TestSplitSentences_BreaksOnSentenceBoundaries(t *testing.T) {
	first := strings.Repeat("a", 200) + "."
	second := strings.Repeat("b", 200) + "."
	third := strings.Repeat("c", 200) + "."
	text := first + " " + second + " " + third

	chunks := SplitSentences(text, 500)

	assert.Len(t, chunks, 2)
	assert.Equal(t, first+" "+second, chunks[0])
	assert.Equal(t, third, chunks[1])
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 500)
	}
}

func TestSplitSentences_OversizedSentenceBecomesOwnChunk(t *testing.T) {
	long := strings.Repeat("x", 700) + "."
	text := "Pendek. " + long

	chunks := SplitSentences(text, 500)

	assert.Len(t, chunks, 2)
	assert.Equal(t, "Pendek.", chunks[0])
	assert.Equal(t, long, chunks[1])
}

func TestSplitSentences_NewlinesActAsBoundaries(t *testing.T) {
	text := strings.Repeat("m", 300) + "\n" + strings.Repeat("n", 300)

	chunks := SplitSentences(text, 500)

	assert.Len(t, chunks, 2)
	assert.Equal(t, strings.Repeat("m", 300), chunks[0])
	assert.Equal(t, strings.Repeat("n", 300), chunks[1])
}
