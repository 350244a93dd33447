package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytbench/ytbench/internal/collector"
	"github.com/ytbench/ytbench/internal/eval"
	"github.com/ytbench/ytbench/internal/goldens"
	"github.com/ytbench/ytbench/internal/packager"
	"github.com/ytbench/ytbench/internal/promptgen"
)

func newRunCommand() *cobra.Command {
	var archive bool
	var parallel bool

	cmd := &cobra.Command{
		Use:   "run <url-or-video-id>",
		Short: "Run the full pipeline for one video",
		Long: `Run every pipeline stage for one video: collect the transcript,
generate prompts and golden answers, evaluate model answers, and package
the results into the dataset.

If evaluation exhausts the attempt budget for any prompt, the outputs and
scores are still written but the video is not packaged and the command
exits with code 1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			ws := openWorkspace(settings)
			if err := ws.Scaffold(); err != nil {
				return err
			}

			gen, err := newGenerator(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer gen.Close() //nolint:errcheck

			out := cmd.OutOrStdout()
			ctx := cmd.Context()

			fmt.Fprintf(out, "[1/5] Collecting transcript\n") //nolint:errcheck
			t, err := collector.New().Collect(ctx, args[0])
			if err != nil {
				return err
			}
			if err := ws.WriteTranscript(t); err != nil {
				return err
			}

			fmt.Fprintf(out, "[2/5] Generating %d prompts\n", settings.Prompts.Count) //nolint:errcheck
			ps, err := promptgen.Generate(ctx, gen, settings.Models.Generation, t, settings.Prompts.Count)
			if err != nil {
				return err
			}
			if err := ws.WritePromptSet(ps); err != nil {
				return err
			}

			fmt.Fprintf(out, "[3/5] Generating golden answers\n") //nolint:errcheck
			answers, err := goldens.Generate(ctx, gen, settings.Models.Generation, ps, t)
			if err != nil {
				return err
			}
			if err := ws.WriteGoldens(t.VideoID, answers); err != nil {
				return err
			}

			fmt.Fprintf(out, "[4/5] Evaluating model answers\n") //nolint:errcheck
			result, evalErr := eval.Evaluate(ctx, gen, ps, answers, t, eval.Options{
				Model:           settings.Models.Evaluation,
				MaxAttempts:     settings.Evaluation.MaxAttempts,
				MinWords:        settings.Evaluation.MinWords,
				AcceptThreshold: settings.Evaluation.AcceptThreshold,
				Parallel:        parallel || settings.Evaluation.Parallel,
			})
			if evalErr != nil && !errors.Is(evalErr, eval.ErrExhausted) {
				return evalErr
			}
			if err := ws.WriteOutputs(t.VideoID, result.Outputs); err != nil {
				return err
			}
			if err := ws.WriteScores(t.VideoID, result.Scores); err != nil {
				return err
			}
			printScoreTable(out, result)

			if evalErr != nil {
				return &ExhaustedError{
					Message: fmt.Sprintf("not packaged: %d prompt(s) exhausted the attempt budget: %s",
						len(result.Exhausted), strings.Join(result.Exhausted, ", ")),
				}
			}

			fmt.Fprintf(out, "[5/5] Packaging dataset\n") //nolint:errcheck
			var opts []packager.BuildOption
			if archive {
				opts = append(opts, packager.WithArchive())
			}
			folder, err := packager.New(ws).Build(t.VideoID, opts...)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Done: %s\n", folder) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().BoolVar(&archive, "archive", false, "Also write dataset/<video_id>.tar.gz")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Evaluate prompts concurrently")

	return cmd
}
