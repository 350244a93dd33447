package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytbench/ytbench/internal/packager"
)

func newBuildDatasetCommand() *cobra.Command {
	var archive bool

	cmd := &cobra.Command{
		Use:   "build-dataset <video-id>",
		Short: "Package a fully evaluated video into the dataset",
		Long: `Package the artifacts of a fully evaluated video into
dataset/<video_id>/ and update the dataset manifest.

Packaging requires every prompt to have a golden answer, at least one
recorded model output, and a final score. The folder is staged and
renamed into place, so an interrupted build never leaves a partial
dataset entry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			ws := openWorkspace(settings)

			var opts []packager.BuildOption
			if archive {
				opts = append(opts, packager.WithArchive())
			}
			folder, err := packager.New(ws).Build(args[0], opts...)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Packaged %s -> %s\n", args[0], folder) //nolint:errcheck
			if archive {
				fmt.Fprintf(cmd.OutOrStdout(), "  archive: %s.tar.gz\n", folder) //nolint:errcheck
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&archive, "archive", false, "Also write dataset/<video_id>.tar.gz")

	return cmd
}
