package eval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytbench/ytbench/internal/llm"
	"github.com/ytbench/ytbench/internal/models"
)

// goodAnswer is long enough, multi-sentence, and full of causal connectors,
// so it scores well on every rubric dimension when compared against itself.
const goodAnswer = "The compiler reorders instructions because modern processors execute several operations at once, and independent work can fill otherwise wasted cycles. Therefore the scheduler tracks data dependencies between registers and memory locations before moving anything. Hence a reordering is only legal when every dependency is preserved, which keeps observable behavior identical for the original program."

func testOptions() Options {
	return Options{
		Model:           "eval-model",
		MaxAttempts:     3,
		MinWords:        5,
		AcceptThreshold: 3.0,
	}
}

func promptSet(ids ...string) *models.PromptSet {
	ps := &models.PromptSet{VideoID: "vid1"}
	for _, id := range ids {
		ps.Prompts = append(ps.Prompts, models.Prompt{
			PromptID: id, VideoID: "vid1",
			Question: "Why does the compiler reorder instructions?",
			Guidance: "Must mention data dependencies.",
		})
	}
	return ps
}

func goldensFor(ps *models.PromptSet) []models.GoldenAnswer {
	var out []models.GoldenAnswer
	for _, p := range ps.Prompts {
		out = append(out, models.GoldenAnswer{PromptID: p.PromptID, Answer: goodAnswer})
	}
	return out
}

func testTranscript() *models.Transcript {
	return &models.Transcript{
		VideoID:  "vid1",
		Segments: []models.Segment{{Start: 0, End: 3, Text: "a talk about compilers"}},
	}
}

func TestEvaluateAllAcceptedFirstAttempt(t *testing.T) {
	ps := promptSet("p1", "p2", "p3", "p4")
	gen := llm.NewStatic(goodAnswer)

	res, err := Evaluate(context.Background(), gen, ps, goldensFor(ps), testTranscript(), testOptions())
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Empty(t, res.Exhausted)
	require.Len(t, res.Outputs, 4)
	require.Len(t, res.Scores, 4)

	for i, out := range res.Outputs {
		assert.Equal(t, ps.Prompts[i].PromptID, out.PromptID)
		assert.Equal(t, 1, out.Attempt)
		assert.Equal(t, models.OutcomeAccepted, out.Outcome)
		assert.Equal(t, res.RunID, out.RunID)
	}
	for _, s := range res.Scores {
		assert.True(t, s.Accepted)
		assert.GreaterOrEqual(t, s.Mean(), 3.0)
	}
}

func TestEvaluateRetriesUntilAccepted(t *testing.T) {
	ps := promptSet("p1")
	gen := llm.NewStatic("too short", "still too short", goodAnswer)

	res, err := Evaluate(context.Background(), gen, ps, goldensFor(ps), testTranscript(), testOptions())
	require.NoError(t, err)

	require.Len(t, res.Outputs, 3)
	assert.Equal(t, models.OutcomeRejected, res.Outputs[0].Outcome)
	assert.Equal(t, "response too short", res.Outputs[0].Detail)
	assert.Equal(t, models.OutcomeRejected, res.Outputs[1].Outcome)
	assert.Equal(t, models.OutcomeAccepted, res.Outputs[2].Outcome)
	assert.Equal(t, 3, res.Outputs[2].Attempt)

	require.Len(t, res.Scores, 1)
	assert.True(t, res.Scores[0].Accepted)
	assert.Equal(t, 3, res.Scores[0].Attempt)
}

func TestEvaluateRejectsLowScore(t *testing.T) {
	ps := promptSet("p1")
	// Well-formed but single-sentence, connector-free, and unrelated to the
	// golden answer, so the rubric mean stays below threshold.
	gen := llm.NewStatic("Bananas ripen quickly near apples and that makes them tasty at breakfast every day during mild weather")

	opts := testOptions()
	opts.MaxAttempts = 1

	res, err := Evaluate(context.Background(), gen, ps, goldensFor(ps), testTranscript(), opts)
	require.ErrorIs(t, err, ErrExhausted)

	require.Len(t, res.Outputs, 1)
	assert.Equal(t, models.OutcomeRejected, res.Outputs[0].Outcome)
	assert.Contains(t, res.Outputs[0].Detail, "below threshold")
}

func TestEvaluateExhaustion(t *testing.T) {
	ps := promptSet("p1", "p2")
	gen := llm.NewStatic("nope") // rejected every time, for both prompts

	opts := testOptions()
	opts.MaxAttempts = 2

	res, err := Evaluate(context.Background(), gen, ps, goldensFor(ps), testTranscript(), opts)
	require.ErrorIs(t, err, ErrExhausted)
	require.NotNil(t, res)

	// Every attempt is still recorded, one score row per prompt.
	assert.Len(t, res.Outputs, 4)
	require.Len(t, res.Scores, 2)
	assert.False(t, res.Scores[0].Accepted)
	assert.False(t, res.Scores[1].Accepted)
	assert.Equal(t, []string{"p1", "p2"}, res.Exhausted)
	assert.Equal(t, 4, gen.Calls())
}

func TestEvaluateRecordsEngineErrors(t *testing.T) {
	ps := promptSet("p1")
	gen := llm.NewStatic() // every call fails

	opts := testOptions()
	opts.MaxAttempts = 2

	res, err := Evaluate(context.Background(), gen, ps, goldensFor(ps), testTranscript(), opts)
	require.ErrorIs(t, err, ErrExhausted)

	require.Len(t, res.Outputs, 2)
	for _, out := range res.Outputs {
		assert.Equal(t, models.OutcomeError, out.Outcome)
		assert.NotEmpty(t, out.Detail)
	}
}

func TestEvaluateParallel(t *testing.T) {
	ps := promptSet("p1", "p2", "p3", "p4", "p5")
	gen := llm.NewStatic(goodAnswer)

	opts := testOptions()
	opts.Parallel = true

	res, err := Evaluate(context.Background(), gen, ps, goldensFor(ps), testTranscript(), opts)
	require.NoError(t, err)

	// Outputs stay in prompt order regardless of scheduling.
	require.Len(t, res.Outputs, 5)
	for i, out := range res.Outputs {
		assert.Equal(t, ps.Prompts[i].PromptID, out.PromptID)
	}
}

func TestEvaluateInvalidMaxAttempts(t *testing.T) {
	ps := promptSet("p1")

	_, err := Evaluate(context.Background(), llm.NewStatic(goodAnswer), ps, goldensFor(ps), testTranscript(), Options{MaxAttempts: 0})
	require.Error(t, err)
}

func TestEvaluateGoldenPrecondition(t *testing.T) {
	ps := promptSet("p1", "p2")

	tests := []struct {
		name    string
		goldens []models.GoldenAnswer
		wantErr string
	}{
		{
			name:    "missing golden",
			goldens: []models.GoldenAnswer{{PromptID: "p1", Answer: goodAnswer}},
			wantErr: "no golden answer for prompt p2",
		},
		{
			name: "duplicate golden",
			goldens: []models.GoldenAnswer{
				{PromptID: "p1", Answer: goodAnswer},
				{PromptID: "p1", Answer: goodAnswer},
				{PromptID: "p2", Answer: goodAnswer},
			},
			wantErr: "duplicate golden answer",
		},
		{
			name: "unknown prompt",
			goldens: []models.GoldenAnswer{
				{PromptID: "p1", Answer: goodAnswer},
				{PromptID: "p2", Answer: goodAnswer},
				{PromptID: "ghost", Answer: goodAnswer},
			},
			wantErr: "unknown prompt ghost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := llm.NewStatic(goodAnswer)

			_, err := Evaluate(context.Background(), gen, ps, tt.goldens, testTranscript(), testOptions())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			// Precondition failures happen before any model call.
			assert.Equal(t, 0, gen.Calls())
		})
	}
}
