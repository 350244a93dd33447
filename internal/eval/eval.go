// Package eval asks a model to answer each prompt, scores the answers
// against the golden answers with a three-dimension rubric, and retries
// rejected answers up to a configured attempt limit. Every attempt is
// recorded; an exhausted prompt still gets a score record from its last
// attempt rather than being dropped.
package eval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ytbench/ytbench/internal/llm"
	"github.com/ytbench/ytbench/internal/models"
	"github.com/ytbench/ytbench/internal/promptgen"
)

// ErrExhausted is returned when one or more prompts spent the whole retry
// budget without producing an accepted answer.
var ErrExhausted = errors.New("evaluation attempts exhausted")

// parallelWorkers bounds concurrent prompt evaluation when Parallel is set.
const parallelWorkers = 4

// Options control a single evaluation run.
type Options struct {
	Model           string
	MaxAttempts     int
	MinWords        int
	AcceptThreshold float64

	// Parallel evaluates independent prompts concurrently. Attempts for a
	// single prompt stay sequential either way.
	Parallel bool
}

// Result is the stage-4 output for one video.
type Result struct {
	RunID     string
	Outputs   []models.ModelOutput
	Scores    []models.ScoreRecord
	Exhausted []string // prompt ids that never produced an accepted answer
}

const answerRequestTemplate = `Context excerpt: %s

Task prompt: %s

Guidance (what golden answer should include): %s

Provide a concise paragraph answer (3-6 sentences) that addresses the task with clear multi-step reasoning.`

const refineRequestTemplate = `Previous answer:
%s

Please improve this answer. Provide a concise, well-structured paragraph that directly answers the prompt below and includes explicit multi-step reasoning.

PROMPT:
%s

Return only the improved answer text.`

// Evaluate runs the evaluator for every prompt in the set. The returned
// Result is valid even when the error wraps ErrExhausted, so callers can
// persist all attempts before surfacing the failure.
func Evaluate(ctx context.Context, gen llm.Generator, ps *models.PromptSet, goldenAnswers []models.GoldenAnswer, t *models.Transcript, opts Options) (*Result, error) {
	if opts.MaxAttempts < 1 {
		return nil, fmt.Errorf("max attempts must be at least 1, got %d", opts.MaxAttempts)
	}

	goldenByPrompt, err := indexGoldens(ps, goldenAnswers)
	if err != nil {
		return nil, err
	}

	res := &Result{RunID: uuid.NewString()}
	excerpt := promptgen.Excerpt(t.Segments)

	perPromptOutputs := make([][]models.ModelOutput, len(ps.Prompts))
	perPromptScores := make([]models.ScoreRecord, len(ps.Prompts))
	perPromptExhausted := make([]bool, len(ps.Prompts))

	evalOne := func(i int) {
		p := ps.Prompts[i]
		outputs, score, accepted := evaluatePrompt(ctx, gen, p, goldenByPrompt[p.PromptID], excerpt, res.RunID, opts)
		perPromptOutputs[i] = outputs
		perPromptScores[i] = score
		perPromptExhausted[i] = !accepted
	}

	if opts.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(parallelWorkers)
		for i := range ps.Prompts {
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				evalOne(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range ps.Prompts {
			evalOne(i)
		}
	}

	// Flatten in prompt order so output files are deterministic regardless
	// of scheduling.
	for i, p := range ps.Prompts {
		res.Outputs = append(res.Outputs, perPromptOutputs[i]...)
		res.Scores = append(res.Scores, perPromptScores[i])
		if perPromptExhausted[i] {
			res.Exhausted = append(res.Exhausted, p.PromptID)
		}
	}

	if len(res.Exhausted) > 0 {
		return res, fmt.Errorf("%w: %d of %d prompts (%s)",
			ErrExhausted, len(res.Exhausted), len(ps.Prompts), strings.Join(res.Exhausted, ", "))
	}
	return res, nil
}

// indexGoldens enforces the precondition that every prompt has exactly one
// golden answer before any model call is made.
func indexGoldens(ps *models.PromptSet, goldenAnswers []models.GoldenAnswer) (map[string]string, error) {
	byPrompt := make(map[string]string, len(goldenAnswers))
	for _, g := range goldenAnswers {
		if _, dup := byPrompt[g.PromptID]; dup {
			return nil, fmt.Errorf("duplicate golden answer for prompt %s", g.PromptID)
		}
		if ps.Find(g.PromptID) == nil {
			return nil, fmt.Errorf("golden answer references unknown prompt %s", g.PromptID)
		}
		byPrompt[g.PromptID] = g.Answer
	}

	for _, p := range ps.Prompts {
		if _, ok := byPrompt[p.PromptID]; !ok {
			return nil, fmt.Errorf("no golden answer for prompt %s", p.PromptID)
		}
	}
	return byPrompt, nil
}

// evaluatePrompt runs the bounded attempt loop for one prompt. It returns
// all recorded attempts, the score record (from the accepted attempt, or
// the last one when exhausted), and whether an attempt was accepted.
func evaluatePrompt(ctx context.Context, gen llm.Generator, p models.Prompt, golden, excerpt, runID string, opts Options) ([]models.ModelOutput, models.ScoreRecord, bool) {
	var outputs []models.ModelOutput
	var lastScore models.ScoreRecord
	var lastResponse string

	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		var request string
		if attempt == 1 {
			request = fmt.Sprintf(answerRequestTemplate, excerpt, p.Question, p.Guidance)
		} else {
			request = fmt.Sprintf(refineRequestTemplate, lastResponse, p.Question)
		}

		output := models.ModelOutput{
			VideoID:     p.VideoID,
			PromptID:    p.PromptID,
			RunID:       runID,
			Attempt:     attempt,
			Model:       opts.Model,
			GeneratedAt: time.Now().UTC(),
		}

		response, err := gen.Generate(ctx, opts.Model, request)
		if err != nil {
			slog.Warn("model call failed",
				"prompt_id", p.PromptID, "attempt", attempt, "error", err)
			output.Outcome = models.OutcomeError
			output.Detail = err.Error()
			outputs = append(outputs, output)
			lastScore = scorePrompt(p, "", golden, opts.Model, attempt, false)
			lastResponse = ""
			continue
		}

		response = strings.TrimSpace(response)
		output.Response = response
		lastResponse = response

		ok, reason := wellFormed(response, opts.MinWords)
		score := scorePrompt(p, response, golden, opts.Model, attempt, false)
		lastScore = score

		if ok && score.Mean() >= opts.AcceptThreshold {
			output.Outcome = models.OutcomeAccepted
			outputs = append(outputs, output)
			score.Accepted = true
			slog.Debug("attempt accepted",
				"prompt_id", p.PromptID, "attempt", attempt, "mean", score.Mean())
			return outputs, score, true
		}

		if reason == "" {
			reason = fmt.Sprintf("score %.2f below threshold %.2f", score.Mean(), opts.AcceptThreshold)
		}
		output.Outcome = models.OutcomeRejected
		output.Detail = reason
		outputs = append(outputs, output)

		slog.Debug("attempt rejected",
			"prompt_id", p.PromptID, "attempt", attempt, "reason", reason)
	}

	return outputs, lastScore, false
}

func scorePrompt(p models.Prompt, response, golden, model string, attempt int, accepted bool) models.ScoreRecord {
	return models.ScoreRecord{
		VideoID:         p.VideoID,
		PromptID:        p.PromptID,
		Model:           model,
		Attempt:         attempt,
		ReasoningDepth:  scoreReasoningDepth(response),
		FactualAccuracy: scoreFactualAccuracy(response, golden),
		Coherence:       scoreCoherence(response),
		Accepted:        accepted,
	}
}
