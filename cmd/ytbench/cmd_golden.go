package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytbench/ytbench/internal/goldens"
)

func newGenerateGoldenAnswersCommand() *cobra.Command {
	var model string

	cmd := &cobra.Command{
		Use:   "generate-golden-answers <video-id>",
		Short: "Generate the golden reference answer for every prompt",
		Long: `Generate a gold-standard reference answer for each prompt of a video.

Each answer is produced from the prompt, its answer guidance, and the
transcript context, then written as one JSON line per prompt to
prompts/<video_id>_gold.jsonl. Rerunning replaces the previous answers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if model == "" {
				model = settings.Models.Generation
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

			gen, err := newGenerator(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer gen.Close() //nolint:errcheck

			answers, err := goldens.Generate(cmd.Context(), gen, model, ps, t)
			if err != nil {
				return err
			}
			if err := ws.WriteGoldens(args[0], answers); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d golden answers for %s -> %s\n", //nolint:errcheck
				len(answers), args[0], ws.GoldensPath(args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "Generation model (defaults to models.generation)")

	return cmd
}
