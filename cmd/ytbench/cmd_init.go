package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ytbench/ytbench/internal/config"
	"github.com/ytbench/ytbench/internal/wizard"
	"github.com/ytbench/ytbench/internal/workspace"
)

func newInitCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new benchmark workspace",
		Long: `Initialize a benchmark workspace with the pipeline directory layout
and a ytbench.yaml settings file.

Use --interactive to run a guided wizard that collects the model and
evaluation settings instead of writing defaults.

If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCommandE(cmd, args, interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run guided setup wizard")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string, interactive bool) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	settings := config.Default()
	if interactive {
		s, err := wizard.RunSetupWizard(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		settings = s
	}

	ws := workspace.New(dir, workspace.WithDirs(settings))
	if err := ws.Scaffold(); err != nil {
		return err
	}

	configPath := filepath.Join(dir, config.DefaultConfigFile)
	if err := settings.Save(configPath); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Initialized benchmark workspace:")  //nolint:errcheck
	fmt.Fprintf(out, "  %s\n", configPath)                 //nolint:errcheck
	fmt.Fprintf(out, "  %s/\n", ws.RawDir())               //nolint:errcheck
	fmt.Fprintf(out, "  %s/\n", ws.PromptsDir())           //nolint:errcheck
	fmt.Fprintf(out, "  %s/\n", ws.OutputsDir())           //nolint:errcheck
	fmt.Fprintf(out, "  %s/\n", ws.DatasetDir())           //nolint:errcheck
	fmt.Fprintln(out, "Set GOOGLE_API_KEY (or a .env file) before generating.") //nolint:errcheck
	return nil
}
