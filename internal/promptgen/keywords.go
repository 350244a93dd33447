package promptgen

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ytbench/ytbench/internal/models"
)

// defaultKeywordCount is how many theme keywords are fed to the prompt
// instruction.
const defaultKeywordCount = 8

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "to": {}, "a": {}, "of": {}, "in": {}, "that": {},
	"is": {}, "it": {}, "you": {}, "i": {}, "we": {}, "this": {}, "for": {},
	"on": {}, "are": {}, "be": {}, "with": {}, "as": {}, "was": {}, "have": {},
	"but": {}, "not": {}, "your": {}, "from": {}, "they": {}, "their": {},
	"our": {}, "will": {}, "about": {}, "what": {}, "when": {}, "like": {},
	"just": {}, "really": {}, "going": {},
}

var wordPattern = regexp.MustCompile(`[a-z]{3,}`)

// foldDiacritics strips combining marks so that accented words in
// auto-generated captions collapse onto their base form.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ExtractKeywords returns the topN most frequent non-stopword terms across
// the transcript segments. Ties break alphabetically so the output is
// deterministic.
func ExtractKeywords(segments []models.Segment, topN int) []string {
	if topN <= 0 {
		topN = defaultKeywordCount
	}

	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteString(seg.Text)
		sb.WriteByte(' ')
	}

	text, _, err := transform.String(foldDiacritics, sb.String())
	if err != nil {
		text = sb.String()
	}
	text = strings.ToLower(text)

	freq := make(map[string]int)
	for _, w := range wordPattern.FindAllString(text, -1) {
		if _, skip := stopwords[w]; skip {
			continue
		}
		freq[w]++
	}

	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > topN {
		words = words[:topN]
	}
	return words
}
