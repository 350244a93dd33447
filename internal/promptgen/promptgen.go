// Package promptgen turns a transcript into a small set of multi-step
// reasoning prompts by way of a single LLM call. A failed or unparseable
// call fails the stage; there is no retry here.
package promptgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/ytbench/ytbench/internal/llm"
	"github.com/ytbench/ytbench/internal/models"
)

// excerptSegments is how many leading transcript segments ground the
// instruction; excerptMaxLen caps the excerpt size in bytes.
const (
	excerptSegments = 6
	excerptMaxLen   = 600
)

var knownDomains = map[string]struct{}{
	"tech": {}, "education": {}, "psychology": {}, "science": {}, "general": {},
}

var knownDifficulties = map[string]struct{}{
	"easy": {}, "medium": {}, "hard": {},
}

const instructionTemplate = `You are a dataset-generation assistant. Produce %d reasoning-heavy prompts based on a YouTube video.

Video title: %q
Channel: %q
Themes/keywords: %s

Rules:
- Return ONLY a JSON array.
- Each item must include: prompt_id, prompt, domain (tech|education|psychology|science|general), difficulty (easy|medium|hard), and golden_answer_guidance.
- Prompts must require multi-step reasoning (comparison, inference, causal reasoning, synthesis, critique).
- Avoid simple recall or fact listing.
- Prompts must be 1-2 sentences.
- Golden guidance must be 1-2 sentences describing what a correct answer must include.
- No repeated phrasing.

Context excerpt: %q

Return ONLY the JSON array.`

// promptItem is the shape of one element of the model's JSON array.
type promptItem struct {
	PromptID   string `json:"prompt_id"`
	Prompt     string `json:"prompt"`
	Domain     string `json:"domain"`
	Difficulty string `json:"difficulty"`
	Guidance   string `json:"golden_answer_guidance"`
}

var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// Excerpt joins the first few transcript segments into a grounding snippet.
func Excerpt(segments []models.Segment) string {
	n := len(segments)
	if n > excerptSegments {
		n = excerptSegments
	}

	parts := make([]string, 0, n)
	for _, seg := range segments[:n] {
		parts = append(parts, seg.Text)
	}
	excerpt := strings.TrimSpace(strings.Join(parts, " "))
	if len(excerpt) > excerptMaxLen {
		excerpt = excerpt[:excerptMaxLen]
	}
	return excerpt
}

// Generate asks the service for count reasoning prompts grounded in the
// transcript and returns the normalized prompt set. It returns
// llm.ErrGeneration when the response contains no schema-valid JSON array.
func Generate(ctx context.Context, gen llm.Generator, model string, t *models.Transcript, count int) (*models.PromptSet, error) {
	keywords := ExtractKeywords(t.Segments, defaultKeywordCount)

	instruction := fmt.Sprintf(instructionTemplate,
		count, t.Title, t.Channel, strings.Join(keywords, ", "), Excerpt(t.Segments))

	raw, err := gen.Generate(ctx, model, instruction)
	if err != nil {
		return nil, fmt.Errorf("prompt generation for %s: %w", t.VideoID, err)
	}

	items, err := parsePromptArray(raw)
	if err != nil {
		return nil, fmt.Errorf("prompt generation for %s: %w", t.VideoID, err)
	}

	now := time.Now().UTC()
	prompts := make([]models.Prompt, 0, len(items))
	for i, item := range items {
		prompts = append(prompts, normalizeItem(item, t.VideoID, i+1, model, now))
	}

	slog.Debug("generated prompts", "video_id", t.VideoID, "count", len(prompts))

	return &models.PromptSet{
		VideoID:     t.VideoID,
		Title:       t.Title,
		Channel:     t.Channel,
		Keywords:    keywords,
		Prompts:     prompts,
		GeneratedAt: now,
		Generator:   models.GeneratorInfo{Provider: "gemini", Model: model},
	}, nil
}

// parsePromptArray extracts the first JSON array from the model reply and
// validates it against the prompt schema.
func parsePromptArray(raw string) ([]promptItem, error) {
	match := jsonArrayPattern.FindString(raw)
	if match == "" {
		return nil, fmt.Errorf("%w: no JSON array in response", llm.ErrGeneration)
	}

	if err := validatePromptArray(match); err != nil {
		return nil, err
	}

	var items []promptItem
	if err := json.Unmarshal([]byte(match), &items); err != nil {
		return nil, fmt.Errorf("%w: %w", llm.ErrGeneration, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty prompt array", llm.ErrGeneration)
	}
	return items, nil
}

// normalizeItem fills defaults the model omitted or got wrong.
func normalizeItem(item promptItem, videoID string, ordinal int, model string, now time.Time) models.Prompt {
	p := models.Prompt{
		PromptID:       strings.TrimSpace(item.PromptID),
		VideoID:        videoID,
		Question:       strings.TrimSpace(item.Prompt),
		Domain:         strings.ToLower(strings.TrimSpace(item.Domain)),
		Difficulty:     strings.ToLower(strings.TrimSpace(item.Difficulty)),
		Guidance:       strings.TrimSpace(item.Guidance),
		GeneratedAt:    now,
		GeneratorModel: model,
	}

	if p.PromptID == "" {
		p.PromptID = fmt.Sprintf("%s_prompt_%d", videoID, ordinal)
	}
	if _, ok := knownDomains[p.Domain]; !ok {
		p.Domain = "general"
	}
	if _, ok := knownDifficulties[p.Difficulty]; !ok {
		p.Difficulty = "medium"
	}
	return p
}
