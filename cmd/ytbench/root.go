package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ytbench/ytbench/internal/config"
	"github.com/ytbench/ytbench/internal/llm"
	"github.com/ytbench/ytbench/internal/workspace"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ytbench",
		Short: "ytbench - build reasoning benchmarks from YouTube transcripts",
		Long: `ytbench builds reasoning-benchmark datasets from YouTube videos.

It collects transcripts, generates reasoning prompts and golden answers
with an LLM, evaluates model answers against a scoring rubric with bounded
retries, and packages accepted results into a versioned dataset.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().String("config", config.DefaultConfigFile, "Path to the settings file")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newCollectCommand())
	cmd.AddCommand(newGeneratePromptsCommand())
	cmd.AddCommand(newGenerateGoldenAnswersCommand())
	cmd.AddCommand(newEvaluateCommand())
	cmd.AddCommand(newBuildDatasetCommand())
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newServeCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// loadSettings reads the settings file named by the persistent --config flag.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// openWorkspace builds the working-directory workspace from settings.
func openWorkspace(settings *config.Settings) *workspace.Workspace {
	return workspace.New(".", workspace.WithDirs(settings))
}

// newGenerator builds the configured text-generation engine. The API
// credential is only required for engines that call a remote service.
func newGenerator(ctx context.Context, settings *config.Settings) (llm.Generator, error) {
	var apiKey string
	if settings.Engine.Type == llm.EngineGemini {
		key, err := config.Credential()
		if err != nil {
			return nil, err
		}
		apiKey = key
	}
	return llm.New(ctx, settings.Engine.Type, apiKey, settings.Engine.Options)
}
