// Package wizard runs the interactive setup form for a new benchmark
// workspace.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/ytbench/ytbench/internal/config"
	"github.com/ytbench/ytbench/internal/llm"
)

// RunSetupWizard runs an interactive huh form to collect pipeline settings.
// Fields start from defaults so pressing through the form yields a working
// configuration.
func RunSetupWizard(in io.Reader, out io.Writer) (*config.Settings, error) {
	defaults := config.Default()

	var (
		generationModel = defaults.Models.Generation
		evaluationModel = defaults.Models.Evaluation
		promptCount     = strconv.Itoa(defaults.Prompts.Count)
		maxAttempts     = strconv.Itoa(defaults.Evaluation.MaxAttempts)
		engineType      = defaults.Engine.Type
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Generation model").
				Description("Model used for prompts and golden answers").
				Value(&generationModel).
				Validate(required("generation model")),
			huh.NewInput().
				Title("Evaluation model").
				Description("Model whose answers are scored").
				Value(&evaluationModel).
				Validate(required("evaluation model")),
			huh.NewInput().
				Title("Prompts per video").
				Description("Between 3 and 5").
				Value(&promptCount).
				Validate(intInRange(3, 5)),
			huh.NewInput().
				Title("Attempt budget").
				Description("Evaluation retries per prompt").
				Value(&maxAttempts).
				Validate(intInRange(1, 10)),
			huh.NewSelect[string]().
				Title("Engine").
				Options(
					huh.NewOption("gemini", llm.EngineGemini),
					huh.NewOption("static", llm.EngineStatic),
				).
				Value(&engineType),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	settings := config.Default()
	settings.Models.Generation = strings.TrimSpace(generationModel)
	settings.Models.Evaluation = strings.TrimSpace(evaluationModel)
	settings.Prompts.Count, _ = strconv.Atoi(strings.TrimSpace(promptCount))
	settings.Evaluation.MaxAttempts, _ = strconv.Atoi(strings.TrimSpace(maxAttempts))
	settings.Engine.Type = engineType

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func intInRange(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("enter a number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}
