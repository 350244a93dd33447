package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytbench/ytbench/internal/collector"
)

func newCollectCommand() *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "collect <url-or-video-id>",
		Short: "Download a video transcript and metadata",
		Long: `Download the subtitle track and metadata for a YouTube video using
yt-dlp, normalize it into timed transcript segments, and store it under
the raw data directory as <video_id>.json.

Accepts a full watch URL, a youtu.be short link, or a bare video ID.`,
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

			c := collector.New(collector.WithLanguage(language))
			t, err := c.Collect(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := ws.WriteTranscript(t); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Collected %s (%s)\n", t.VideoID, t.Title)               //nolint:errcheck
			fmt.Fprintf(out, "  %d segments -> %s\n", len(t.Segments), ws.TranscriptPath(t.VideoID)) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().StringVar(&language, "language", "en", "Subtitle language to request")

	return cmd
}
