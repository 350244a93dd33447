// Package packager validates that a video ran through every pipeline stage
// and assembles its artifacts into the fixed dataset folder layout plus the
// global manifest. Packaging is all-or-nothing: files are staged in a
// scratch directory and renamed into place, so a failed build never leaves
// a partial dataset/<video_id>/ folder behind.
package packager

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ytbench/ytbench/internal/models"
	"github.com/ytbench/ytbench/internal/workspace"
)

// ErrIncomplete is returned when any prompt of the video lacks a required
// artifact, or a whole stage output is missing.
var ErrIncomplete = errors.New("pipeline incomplete")

// Packager builds dataset folders from workspace artifacts.
type Packager struct {
	ws *workspace.Workspace
}

// New creates a Packager over the given workspace.
func New(ws *workspace.Workspace) *Packager {
	return &Packager{ws: ws}
}

// BuildOption configures a Build call.
type BuildOption func(*buildOptions)

type buildOptions struct {
	archive bool
}

// WithArchive also writes dataset/<video_id>.tar.gz next to the folder.
func WithArchive() BuildOption {
	return func(o *buildOptions) { o.archive = true }
}

// Build validates the completeness invariant for videoID, writes the
// per-video file set, and updates the manifest. It returns the packaged
// folder path.
func (p *Packager) Build(videoID string, opts ...BuildOption) (string, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	t, ps, goldenAnswers, outputs, scores, err := p.validate(videoID)
	if err != nil {
		return "", err
	}

	staging := filepath.Join(p.ws.DatasetDir(), ".staging-"+videoID)
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(staging) //nolint:errcheck // no-op after successful rename

	files := map[string]string{
		"transcript.json":      p.ws.TranscriptPath(videoID),
		"prompts.json":         p.ws.PromptsPath(videoID),
		"golden_answers.jsonl": p.ws.GoldensPath(videoID),
		"model_outputs.jsonl":  p.ws.OutputsPath(videoID),
		"results.csv":          p.ws.ResultsPath(videoID),
	}
	for name, src := range files {
		if err := copyFile(src, filepath.Join(staging, name)); err != nil {
			return "", fmt.Errorf("stage %s: %w", name, err)
		}
	}

	if err := writeMetadata(filepath.Join(staging, "metadata.json"), t); err != nil {
		return "", err
	}

	// Last-write-wins on concurrent packaging of the same id; no lock is
	// taken here.
	target := p.ws.VideoDir(videoID)
	if err := os.RemoveAll(target); err != nil {
		return "", fmt.Errorf("clear existing dataset folder: %w", err)
	}
	if err := os.Rename(staging, target); err != nil {
		return "", fmt.Errorf("publish dataset folder: %w", err)
	}

	manifest, err := models.LoadManifest(p.ws.ManifestPath())
	if err != nil {
		return "", err
	}
	manifest.Upsert(models.ManifestEntry{
		VideoID:       videoID,
		Title:         t.Title,
		Prompts:       len(ps.Prompts),
		GoldenAnswers: len(goldenAnswers),
		ModelOutputs:  len(outputs),
		Evaluations:   len(scores),
		PackagedAt:    time.Now().UTC(),
	})
	if err := manifest.Save(p.ws.ManifestPath()); err != nil {
		return "", err
	}

	if o.archive {
		archivePath := filepath.Join(p.ws.DatasetDir(), videoID+".tar.gz")
		if err := writeArchive(archivePath, target, videoID); err != nil {
			return "", err
		}
		slog.Debug("wrote dataset archive", "path", archivePath)
	}

	slog.Debug("packaged video",
		"video_id", videoID, "prompts", len(ps.Prompts), "outputs", len(outputs))

	return target, nil
}

// validate loads every stage artifact and checks the completeness
// invariant: each prompt has one golden answer, at least one model output,
// and exactly one score record.
func (p *Packager) validate(videoID string) (*models.Transcript, *models.PromptSet, []models.GoldenAnswer, []models.ModelOutput, []models.ScoreRecord, error) {
	fail := func(format string, args ...any) (*models.Transcript, *models.PromptSet, []models.GoldenAnswer, []models.ModelOutput, []models.ScoreRecord, error) {
		return nil, nil, nil, nil, nil,
			fmt.Errorf("%w: %s", ErrIncomplete, fmt.Sprintf(format, args...))
	}

	t, err := p.ws.ReadTranscript(videoID)
	if err != nil {
		return fail("transcript for %s: %v", videoID, err)
	}

	ps, err := p.ws.ReadPromptSet(videoID)
	if err != nil {
		return fail("prompts for %s: %v", videoID, err)
	}
	if len(ps.Prompts) == 0 {
		return fail("prompt set for %s is empty", videoID)
	}
	if ps.VideoID != videoID {
		return fail("prompt set video id %s does not match %s", ps.VideoID, videoID)
	}

	goldenAnswers, err := p.ws.ReadGoldens(videoID)
	if err != nil {
		return fail("golden answers for %s: %v", videoID, err)
	}
	outputs, err := p.ws.ReadOutputs(videoID)
	if err != nil {
		return fail("model outputs for %s: %v", videoID, err)
	}
	scores, err := p.ws.ReadScores(videoID)
	if err != nil {
		return fail("results for %s: %v", videoID, err)
	}

	goldenCount := make(map[string]int)
	for _, g := range goldenAnswers {
		goldenCount[g.PromptID]++
	}
	outputCount := make(map[string]int)
	for _, out := range outputs {
		outputCount[out.PromptID]++
	}
	scoreCount := make(map[string]int)
	for _, s := range scores {
		scoreCount[s.PromptID]++
	}

	for _, prompt := range ps.Prompts {
		id := prompt.PromptID
		if goldenCount[id] != 1 {
			return fail("prompt %s has %d golden answers, want 1", id, goldenCount[id])
		}
		if outputCount[id] == 0 {
			return fail("prompt %s has no model outputs", id)
		}
		if scoreCount[id] != 1 {
			return fail("prompt %s has %d score records, want 1", id, scoreCount[id])
		}
	}

	return t, ps, goldenAnswers, outputs, scores, nil
}

func writeMetadata(path string, t *models.Transcript) error {
	data, err := json.MarshalIndent(t.Metadata(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write metadata.json: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close() //nolint:errcheck

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
