package eval

import "strings"

// Rubric dimensions are scored 1..5 with cheap lexical heuristics: they are
// noisy proxies, good enough to rank attempts and gate acceptance, not a
// substitute for human review.

var reasoningConnectors = []string{
	"because", "therefore", "thus", "hence", "so", "thereby", "inference", "imply",
}

var placeholderPhrases = []string{
	"i'm not sure", "i do not know", "cannot determine", "no data", "unable to",
}

func sentences(s string) int {
	n := 0
	for _, part := range strings.Split(s, ".") {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	if n == 0 {
		n = 1
	}
	return n
}

func clampScore(n int) int {
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}

// scoreReasoningDepth counts logical connectors and sentence structure.
func scoreReasoningDepth(output string) int {
	if output == "" {
		return 1
	}

	lower := strings.ToLower(output)
	connectors := 0
	for _, tok := range reasoningConnectors {
		connectors += strings.Count(lower, tok)
	}
	bonus := connectors + sentences(output) - 1
	if bonus > 4 {
		bonus = 4
	}
	return clampScore(1 + bonus)
}

func contentTokens(s string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		w = strings.ToLower(strings.Trim(w, `.,;:()"'`))
		if len(w) > 3 {
			tokens[w] = struct{}{}
		}
	}
	return tokens
}

// scoreFactualAccuracy measures token overlap between the output and the
// golden answer. With no golden to compare against it stays neutral.
func scoreFactualAccuracy(output, golden string) int {
	if output == "" || golden == "" {
		return 3
	}

	goldTokens := contentTokens(golden)
	if len(goldTokens) == 0 {
		return 3
	}

	outTokens := contentTokens(output)
	shared := 0
	for tok := range outTokens {
		if _, ok := goldTokens[tok]; ok {
			shared++
		}
	}

	overlap := float64(shared) / float64(len(goldTokens))
	switch {
	case overlap > 0.6:
		return 5
	case overlap > 0.4:
		return 4
	case overlap > 0.25:
		return 3
	case overlap > 0.1:
		return 2
	default:
		return 1
	}
}

// scoreCoherence looks only at surface shape: enough sentences and words to
// plausibly carry a structured paragraph.
func scoreCoherence(output string) int {
	if output == "" {
		return 1
	}

	nSentences := sentences(output)
	nWords := len(strings.Fields(output))

	switch {
	case nSentences >= 3 && nWords > 40:
		return 5
	case nSentences >= 2 && nWords > 20:
		return 4
	case nSentences == 1 && nWords > 10:
		return 3
	case nWords > 5:
		return 2
	default:
		return 1
	}
}

// wellFormed rejects answers that are too short or contain refusal
// placeholders; those never count as accepted regardless of score.
func wellFormed(output string, minWords int) (bool, string) {
	if len(strings.Fields(output)) < minWords {
		return false, "response too short"
	}

	lower := strings.ToLower(output)
	for _, phrase := range placeholderPhrases {
		if strings.Contains(lower, phrase) {
			return false, "placeholder response"
		}
	}
	return true, ""
}
