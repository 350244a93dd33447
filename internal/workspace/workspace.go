// Package workspace owns the on-disk layout of pipeline artifacts: per-stage
// intermediate files under the working directory and the packaged dataset
// tree. Each writer overwrites the prior file for its video id, so re-running
// a stage never duplicates artifacts.
package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ytbench/ytbench/internal/config"
	"github.com/ytbench/ytbench/internal/models"
)

// Workspace resolves artifact paths under a root directory.
type Workspace struct {
	root string
	dirs dirSet
}

type dirSet struct {
	raw     string
	prompts string
	outputs string
	dataset string
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithDirs overrides directory names from settings.
func WithDirs(s *config.Settings) Option {
	return func(w *Workspace) {
		w.dirs = dirSet{
			raw:     s.Dirs.Raw,
			prompts: s.Dirs.Prompts,
			outputs: s.Dirs.Outputs,
			dataset: s.Dirs.Dataset,
		}
	}
}

// New creates a Workspace rooted at root.
func New(root string, opts ...Option) *Workspace {
	w := &Workspace{
		root: root,
		dirs: dirSet{
			raw:     "data/raw",
			prompts: "prompts",
			outputs: "models_outputs",
			dataset: "dataset",
		},
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Root returns the workspace root directory.
func (w *Workspace) Root() string { return w.root }

// RawDir is where stage-1 transcripts land.
func (w *Workspace) RawDir() string { return filepath.Join(w.root, w.dirs.raw) }

// PromptsDir holds prompt sets and golden answers.
func (w *Workspace) PromptsDir() string { return filepath.Join(w.root, w.dirs.prompts) }

// OutputsDir holds model outputs and score CSVs.
func (w *Workspace) OutputsDir() string { return filepath.Join(w.root, w.dirs.outputs) }

// DatasetDir is the packaged dataset root.
func (w *Workspace) DatasetDir() string { return filepath.Join(w.root, w.dirs.dataset) }

// TranscriptPath returns the raw transcript file for a video.
func (w *Workspace) TranscriptPath(videoID string) string {
	return filepath.Join(w.RawDir(), videoID+".json")
}

// PromptsPath returns the prompt set file for a video.
func (w *Workspace) PromptsPath(videoID string) string {
	return filepath.Join(w.PromptsDir(), videoID+".json")
}

// GoldensPath returns the golden answers file for a video.
func (w *Workspace) GoldensPath(videoID string) string {
	return filepath.Join(w.PromptsDir(), videoID+"_gold.jsonl")
}

// OutputsPath returns the model outputs file for a video.
func (w *Workspace) OutputsPath(videoID string) string {
	return filepath.Join(w.OutputsDir(), videoID+"_outputs.jsonl")
}

// ResultsPath returns the score CSV for a video.
func (w *Workspace) ResultsPath(videoID string) string {
	return filepath.Join(w.OutputsDir(), videoID+"_results.csv")
}

// VideoDir returns the packaged folder for a video.
func (w *Workspace) VideoDir(videoID string) string {
	return filepath.Join(w.DatasetDir(), videoID)
}

// ManifestPath returns the global manifest file.
func (w *Workspace) ManifestPath() string {
	return filepath.Join(w.DatasetDir(), "manifest.json")
}

// Scaffold creates all workspace directories.
func (w *Workspace) Scaffold() error {
	for _, dir := range []string{w.RawDir(), w.PromptsDir(), w.OutputsDir(), w.DatasetDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// WriteTranscript stores the stage-1 record.
func (w *Workspace) WriteTranscript(t *models.Transcript) error {
	return writeJSON(w.TranscriptPath(t.VideoID), t)
}

// ReadTranscript loads a stage-1 record.
func (w *Workspace) ReadTranscript(videoID string) (*models.Transcript, error) {
	var t models.Transcript
	if err := readJSON(w.TranscriptPath(videoID), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// WritePromptSet stores the stage-2 record.
func (w *Workspace) WritePromptSet(ps *models.PromptSet) error {
	return writeJSON(w.PromptsPath(ps.VideoID), ps)
}

// ReadPromptSet loads a stage-2 record.
func (w *Workspace) ReadPromptSet(videoID string) (*models.PromptSet, error) {
	var ps models.PromptSet
	if err := readJSON(w.PromptsPath(videoID), &ps); err != nil {
		return nil, err
	}
	return &ps, nil
}

// WriteGoldens stores stage-3 golden answers, one JSON line each.
func (w *Workspace) WriteGoldens(videoID string, answers []models.GoldenAnswer) error {
	return writeJSONL(w.GoldensPath(videoID), answers)
}

// ReadGoldens loads stage-3 golden answers.
func (w *Workspace) ReadGoldens(videoID string) ([]models.GoldenAnswer, error) {
	return readJSONL[models.GoldenAnswer](w.GoldensPath(videoID))
}

// WriteOutputs stores stage-4 model outputs, one JSON line per attempt.
func (w *Workspace) WriteOutputs(videoID string, outputs []models.ModelOutput) error {
	return writeJSONL(w.OutputsPath(videoID), outputs)
}

// ReadOutputs loads stage-4 model outputs.
func (w *Workspace) ReadOutputs(videoID string) ([]models.ModelOutput, error) {
	return readJSONL[models.ModelOutput](w.OutputsPath(videoID))
}
