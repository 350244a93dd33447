package webapi

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/ytbench/ytbench/internal/models"
	"github.com/ytbench/ytbench/internal/workspace"
)

// ErrVideoNotFound is returned when a video ID does not match any packaged
// video.
var ErrVideoNotFound = errors.New("video not found")

// ErrPromptNotFound is returned when a prompt ID does not exist within a
// packaged video.
var ErrPromptNotFound = errors.New("prompt not found")

// DatasetStore provides read access to packaged dataset folders.
type DatasetStore interface {
	// ListVideos returns the manifest entries, newest-packaged first.
	ListVideos() (*VideoListResponse, error)
	// GetVideo returns one video with its per-prompt results.
	GetVideo(id string) (*VideoDetail, error)
	// GetPrompt returns the full golden-answer and attempt history for one
	// prompt.
	GetPrompt(videoID, promptID string) (*PromptDetail, error)
}

// FileStore reads packaged artifacts from a dataset directory. It is
// deliberately forgiving: a missing or malformed dataset yields an empty
// listing rather than an error, so the viewer stays usable while the
// pipeline is still running.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore over the given dataset directory.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// ListVideos returns the manifest entries, newest-packaged first. A missing
// or unreadable manifest yields Available=false with no videos.
func (fs *FileStore) ListVideos() (*VideoListResponse, error) {
	resp := &VideoListResponse{Videos: []VideoSummary{}}

	manifest, err := models.LoadManifest(filepath.Join(fs.dir, "manifest.json"))
	if err != nil || len(manifest.Videos) == 0 {
		return resp, nil
	}

	for _, e := range manifest.Videos {
		resp.Videos = append(resp.Videos, entryToSummary(e))
	}
	sort.Slice(resp.Videos, func(i, j int) bool {
		return resp.Videos[i].PackagedAt.After(resp.Videos[j].PackagedAt)
	})
	resp.Available = true
	return resp, nil
}

// GetVideo returns one video with its per-prompt results.
func (fs *FileStore) GetVideo(id string) (*VideoDetail, error) {
	entry, folder, err := fs.lookup(id)
	if err != nil {
		return nil, err
	}

	detail := &VideoDetail{
		VideoSummary: entryToSummary(*entry),
		Items:        []PromptResult{},
	}

	if t := readTranscript(filepath.Join(folder, "transcript.json")); t != nil {
		detail.Channel = t.Channel
		detail.UploadDate = t.UploadDate
		detail.Duration = t.Duration
		detail.VideoURL = t.VideoURL
	}

	ps := readPromptSet(filepath.Join(folder, "prompts.json"))
	if ps == nil {
		return detail, nil
	}

	outputs, _ := workspace.ReadOutputsFile(filepath.Join(folder, "model_outputs.jsonl"))
	scores, _ := workspace.ReadScoresFile(filepath.Join(folder, "results.csv"))
	scoreByPrompt := indexScores(scores)
	attemptsByPrompt := countAttempts(outputs)

	for _, p := range ps.Prompts {
		detail.Items = append(detail.Items, promptResult(p, scoreByPrompt[p.PromptID], attemptsByPrompt[p.PromptID]))
	}
	return detail, nil
}

// GetPrompt returns the golden answer and every attempt for one prompt,
// with the long-form text rendered to HTML.
func (fs *FileStore) GetPrompt(videoID, promptID string) (*PromptDetail, error) {
	_, folder, err := fs.lookup(videoID)
	if err != nil {
		return nil, err
	}

	ps := readPromptSet(filepath.Join(folder, "prompts.json"))
	if ps == nil {
		return nil, ErrPromptNotFound
	}
	prompt := ps.Find(promptID)
	if prompt == nil {
		return nil, ErrPromptNotFound
	}

	outputs, _ := workspace.ReadOutputsFile(filepath.Join(folder, "model_outputs.jsonl"))
	scores, _ := workspace.ReadScoresFile(filepath.Join(folder, "results.csv"))

	var attempts []models.ModelOutput
	for _, out := range outputs {
		if out.PromptID == promptID {
			attempts = append(attempts, out)
		}
	}
	sort.Slice(attempts, func(i, j int) bool { return attempts[i].Attempt < attempts[j].Attempt })

	detail := &PromptDetail{
		PromptResult: promptResult(*prompt, indexScores(scores)[promptID], len(attempts)),
		VideoID:      videoID,
		Guidance:     prompt.Guidance,
		AttemptHistory:    []AttemptView{},
	}

	goldenAnswers, _ := workspace.ReadGoldensFile(filepath.Join(folder, "golden_answers.jsonl"))
	for _, g := range goldenAnswers {
		if g.PromptID == promptID {
			detail.GoldenAnswer = g.Answer
			detail.GoldenAnswerHTML = renderMarkdown(g.Answer)
			break
		}
	}

	for _, out := range attempts {
		detail.AttemptHistory = append(detail.AttemptHistory, AttemptView{
			Attempt:      out.Attempt,
			Model:        out.Model,
			Outcome:      out.Outcome,
			Detail:       out.Detail,
			Response:     out.Response,
			ResponseHTML: renderMarkdown(out.Response),
			GeneratedAt:  out.GeneratedAt,
		})
	}
	return detail, nil
}

// lookup resolves a video ID against the manifest and its dataset folder.
func (fs *FileStore) lookup(id string) (*models.ManifestEntry, string, error) {
	manifest, err := models.LoadManifest(filepath.Join(fs.dir, "manifest.json"))
	if err != nil {
		return nil, "", ErrVideoNotFound
	}
	entry := manifest.Find(id)
	if entry == nil {
		return nil, "", ErrVideoNotFound
	}
	folder := filepath.Join(fs.dir, id)
	if _, err := os.Stat(folder); err != nil {
		return nil, "", ErrVideoNotFound
	}
	return entry, folder, nil
}

func entryToSummary(e models.ManifestEntry) VideoSummary {
	return VideoSummary{
		VideoID:       e.VideoID,
		Title:         e.Title,
		Prompts:       e.Prompts,
		GoldenAnswers: e.GoldenAnswers,
		ModelOutputs:  e.ModelOutputs,
		Evaluations:   e.Evaluations,
		PackagedAt:    e.PackagedAt,
	}
}

func promptResult(p models.Prompt, score *models.ScoreRecord, attempts int) PromptResult {
	pr := PromptResult{
		PromptID:   p.PromptID,
		Prompt:     p.Question,
		Domain:     p.Domain,
		Difficulty: p.Difficulty,
		Attempts:   attempts,
	}
	if score != nil {
		pr.Accepted = score.Accepted
		pr.Score = &ScoreView{
			ReasoningDepth:  score.ReasoningDepth,
			FactualAccuracy: score.FactualAccuracy,
			Coherence:       score.Coherence,
			Mean:            score.Mean(),
		}
	}
	return pr
}

func indexScores(scores []models.ScoreRecord) map[string]*models.ScoreRecord {
	byPrompt := make(map[string]*models.ScoreRecord, len(scores))
	for i := range scores {
		byPrompt[scores[i].PromptID] = &scores[i]
	}
	return byPrompt
}

func countAttempts(outputs []models.ModelOutput) map[string]int {
	counts := make(map[string]int)
	for _, out := range outputs {
		counts[out.PromptID]++
	}
	return counts
}

func readTranscript(path string) *models.Transcript {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var t models.Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil
	}
	return &t
}

func readPromptSet(path string) *models.PromptSet {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var ps models.PromptSet
	if err := json.Unmarshal(data, &ps); err != nil {
		return nil
	}
	return &ps
}

// Ensure FileStore satisfies DatasetStore.
var _ DatasetStore = (*FileStore)(nil)
