package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytbench/ytbench/internal/promptgen"
)

func newGeneratePromptsCommand() *cobra.Command {
	var model string
	var count int

	cmd := &cobra.Command{
		Use:   "generate-prompts <video-id>",
		Short: "Generate reasoning prompts for a collected transcript",
		Long: `Generate reasoning prompts for a collected transcript.

Reads the stored transcript, extracts topic keywords, asks the configured
generation model for a batch of reasoning questions, and writes the
validated prompt set to prompts/<video_id>.json. Rerunning replaces the
previous prompt set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if model == "" {
				model = settings.Models.Generation
			}
			if count == 0 {
				count = settings.Prompts.Count
			}

			ws := openWorkspace(settings)
			t, err := ws.ReadTranscript(args[0])
			if err != nil {
				return fmt.Errorf("read transcript for %s: %w", args[0], err)
			}

			gen, err := newGenerator(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer gen.Close() //nolint:errcheck

			ps, err := promptgen.Generate(cmd.Context(), gen, model, t, count)
			if err != nil {
				return err
			}
			if err := ws.WritePromptSet(ps); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated %d prompts for %s -> %s\n", //nolint:errcheck
				len(ps.Prompts), t.VideoID, ws.PromptsPath(t.VideoID))
			for _, p := range ps.Prompts {
				fmt.Fprintf(out, "  [%s/%s] %s\n", p.Domain, p.Difficulty, p.Question) //nolint:errcheck
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "Generation model (defaults to models.generation)")
	cmd.Flags().IntVar(&count, "count", 0, "Number of prompts to request (defaults to prompts.count)")

	return cmd
}
