package workspace

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ytbench/ytbench/internal/models"
)

// resultsHeader is the fixed column order of results.csv.
var resultsHeader = []string{
	"video_id", "prompt_id", "model", "attempt",
	"reasoning_depth", "factual_accuracy", "coherence", "accepted",
}

// WriteScores writes results.csv for a video, one row per prompt, replacing
// any existing file.
func (w *Workspace) WriteScores(videoID string, scores []models.ScoreRecord) error {
	path := w.ResultsPath(videoID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	cw := csv.NewWriter(f)
	if err := cw.Write(resultsHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, s := range scores {
		row := []string{
			s.VideoID, s.PromptID, s.Model, strconv.Itoa(s.Attempt),
			strconv.Itoa(s.ReasoningDepth), strconv.Itoa(s.FactualAccuracy),
			strconv.Itoa(s.Coherence), strconv.FormatBool(s.Accepted),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv: write row for %s: %w", s.PromptID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: flush %s: %w", path, err)
	}
	return f.Close()
}

// ReadScores reads a results.csv back into score records. The first row must
// be the header; rows with a wrong column count are an error.
func (w *Workspace) ReadScores(videoID string) ([]models.ScoreRecord, error) {
	return ReadScoresFile(w.ResultsPath(videoID))
}

// ReadScoresFile reads score records from an arbitrary results.csv path.
func ReadScoresFile(path string) ([]models.ScoreRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %s is empty (no header row)", path)
	}

	var scores []models.ScoreRecord
	for i, rec := range records[1:] {
		if len(rec) != len(resultsHeader) {
			return nil, fmt.Errorf("csv: row %d has %d columns, expected %d", i+2, len(rec), len(resultsHeader))
		}

		attempt, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: bad attempt %q", i+2, rec[3])
		}
		rd, err := strconv.Atoi(rec[4])
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: bad reasoning_depth %q", i+2, rec[4])
		}
		fa, err := strconv.Atoi(rec[5])
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: bad factual_accuracy %q", i+2, rec[5])
		}
		co, err := strconv.Atoi(rec[6])
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: bad coherence %q", i+2, rec[6])
		}
		accepted, err := strconv.ParseBool(rec[7])
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: bad accepted %q", i+2, rec[7])
		}

		scores = append(scores, models.ScoreRecord{
			VideoID:         rec[0],
			PromptID:        rec[1],
			Model:           rec[2],
			Attempt:         attempt,
			ReasoningDepth:  rd,
			FactualAccuracy: fa,
			Coherence:       co,
			Accepted:        accepted,
		})
	}
	return scores, nil
}
