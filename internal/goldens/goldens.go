// Package goldens produces the gold-standard reference answer for each
// prompt, grounded in the source transcript. Like prompt generation it is
// fail-fast: one bad call fails the stage.
package goldens

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ytbench/ytbench/internal/llm"
	"github.com/ytbench/ytbench/internal/models"
	"github.com/ytbench/ytbench/internal/promptgen"
)

const answerTemplate = `You are generating a gold-standard reference answer for a reasoning dataset.

PROMPT:
%s

GUIDANCE:
%s

CONTEXT EXCERPT:
%s

Write a concise, 3-6 sentence answer that:
- follows the guidance exactly
- includes multi-step reasoning
- states causal relationships
- avoids fluff or emotional tone
- is deterministic and unambiguous`

// Generate produces one golden answer per prompt, in prompt order. An empty
// or failed response for any prompt aborts the stage with llm.ErrGeneration.
func Generate(ctx context.Context, gen llm.Generator, model string, ps *models.PromptSet, t *models.Transcript) ([]models.GoldenAnswer, error) {
	if len(ps.Prompts) == 0 {
		return nil, fmt.Errorf("%w: prompt set for %s is empty", llm.ErrGeneration, ps.VideoID)
	}

	excerpt := promptgen.Excerpt(t.Segments)

	answers := make([]models.GoldenAnswer, 0, len(ps.Prompts))
	for _, p := range ps.Prompts {
		request := fmt.Sprintf(answerTemplate, p.Question, p.Guidance, excerpt)

		answer, err := gen.Generate(ctx, model, request)
		if err != nil {
			return nil, fmt.Errorf("golden answer for %s: %w", p.PromptID, err)
		}

		slog.Debug("generated golden answer", "prompt_id", p.PromptID, "len", len(answer))

		answers = append(answers, models.GoldenAnswer{
			PromptID:    p.PromptID,
			Prompt:      p.Question,
			Domain:      p.Domain,
			Difficulty:  p.Difficulty,
			Answer:      answer,
			GeneratedAt: time.Now().UTC(),
			Model:       model,
		})
	}

	return answers, nil
}
