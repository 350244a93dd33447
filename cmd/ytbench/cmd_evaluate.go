package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytbench/ytbench/internal/eval"
)

func newEvaluateCommand() *cobra.Command {
	var model string
	var maxAttempts int
	var parallel bool

	cmd := &cobra.Command{
		Use:   "evaluate <video-id>",
		Short: "Evaluate model answers against the rubric with bounded retries",
		Long: `Ask the evaluation model to answer every prompt, score each answer on
the reasoning rubric against the golden answer, and retry rejected
answers up to the attempt budget.

Every attempt is recorded to models_outputs/<video_id>_outputs.jsonl and
the final score per prompt to models_outputs/<video_id>_results.csv.
Both files are written even when prompts exhaust their budget; exhaustion
is then reported as a failure (exit code 1).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if model == "" {
				model = settings.Models.Evaluation
			}
			if maxAttempts == 0 {
				maxAttempts = settings.Evaluation.MaxAttempts
			}
			if !parallel {
				parallel = settings.Evaluation.Parallel
			}

			ws := openWorkspace(settings)
			t, err := ws.ReadTranscript(args[0])
			if err != nil {
				return fmt.Errorf("read transcript for %s: %w", args[0], err)
			}
			ps, err := ws.ReadPromptSet(args[0])
			if err != nil {
				return fmt.Errorf("read prompts for %s: %w", args[0], err)
			}
			goldenAnswers, err := ws.ReadGoldens(args[0])
			if err != nil {
				return fmt.Errorf("read golden answers for %s: %w", args[0], err)
			}

			gen, err := newGenerator(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer gen.Close() //nolint:errcheck

			result, evalErr := eval.Evaluate(cmd.Context(), gen, ps, goldenAnswers, t, eval.Options{
				Model:           model,
				MaxAttempts:     maxAttempts,
				MinWords:        settings.Evaluation.MinWords,
				AcceptThreshold: settings.Evaluation.AcceptThreshold,
				Parallel:        parallel,
			})
			if evalErr != nil && !errors.Is(evalErr, eval.ErrExhausted) {
				return evalErr
			}

			// Persist before surfacing exhaustion so no attempt is lost.
			if err := ws.WriteOutputs(args[0], result.Outputs); err != nil {
				return err
			}
			if err := ws.WriteScores(args[0], result.Scores); err != nil {
				return err
			}

			printScoreTable(cmd.OutOrStdout(), result)

			if evalErr != nil {
				return &ExhaustedError{
					Message: fmt.Sprintf("%d prompt(s) exhausted the attempt budget: %s",
						len(result.Exhausted), strings.Join(result.Exhausted, ", ")),
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "Evaluation model (defaults to models.evaluation)")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "Attempt budget per prompt (defaults to evaluation.max_attempts)")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Evaluate prompts concurrently")

	return cmd
}
