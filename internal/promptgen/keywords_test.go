package promptgen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ytbench/ytbench/internal/models"
)

func segs(texts ...string) []models.Segment {
	out := make([]models.Segment, len(texts))
	for i, text := range texts {
		out[i] = models.Segment{Start: float64(i), End: float64(i + 1), Text: text}
	}
	return out
}

func TestExtractKeywords(t *testing.T) {
	segments := segs(
		"neural networks learn patterns from data",
		"neural networks need lots of data",
		"patterns emerge when networks train on data",
	)

	got := ExtractKeywords(segments, 3)
	// "networks" and "data" appear three times, "patterns" and "neural" twice;
	// ties break alphabetically.
	assert.Equal(t, []string{"data", "networks", "neural"}, got)
}

func TestExtractKeywordsSkipsStopwordsAndShortWords(t *testing.T) {
	segments := segs("the cat and the dog sat on a big mat")

	got := ExtractKeywords(segments, 10)
	assert.NotContains(t, got, "the")
	assert.NotContains(t, got, "and")
	assert.NotContains(t, got, "on")
	assert.Contains(t, got, "cat")
	assert.Contains(t, got, "big")
}

func TestExtractKeywordsFoldsDiacritics(t *testing.T) {
	segments := segs("café culture and cafe reviews about café life")

	got := ExtractKeywords(segments, 2)
	assert.Contains(t, got, "cafe")
	assert.NotContains(t, got, "café")
}

func TestExtractKeywordsEmptyInput(t *testing.T) {
	assert.Empty(t, ExtractKeywords(nil, 5))
}
