package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ytbench/ytbench/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var port int
	var noBrowser bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only dataset viewer",
		Long: `Start a local HTTP server with a browser UI for the packaged dataset.

The viewer lists packaged videos from the manifest and drills down into
prompts, golden answers, and model attempts. It is read-only and works
even before any video has been packaged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			ws := openWorkspace(settings)

			srv, err := webserver.New(webserver.Config{
				Port:       port,
				DatasetDir: ws.DatasetDir(),
				NoBrowser:  noBrowser,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 3000, "Port to listen on")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open the browser automatically")

	return cmd
}
