// Package models defines the flat records exchanged between pipeline stages
// and serialized into the per-video artifact files.
package models

import "time"

// Segment is one timestamped unit of transcript text. Start and End are
// offsets from the beginning of the video, in seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is the stage-1 output for a single video. It is written once
// per video and never modified afterwards.
type Transcript struct {
	VideoID        string    `json:"video_id"`
	VideoURL       string    `json:"video_url"`
	SubtitleFormat string    `json:"subtitle_format"`
	Segments       []Segment `json:"transcript"`

	Title       string   `json:"title"`
	Channel     string   `json:"channel"`
	UploadDate  string   `json:"upload_date"`
	Duration    int64    `json:"duration"`
	Description string   `json:"description"`
	Views       int64    `json:"views"`
	Likes       int64    `json:"likes"`
	Tags        []string `json:"tags"`

	CollectedAt time.Time `json:"collected_at"`
}

// Metadata returns the video metadata subset that is packaged as
// metadata.json, without the transcript body.
func (t *Transcript) Metadata() VideoMetadata {
	return VideoMetadata{
		VideoID:    t.VideoID,
		Title:      t.Title,
		Channel:    t.Channel,
		UploadDate: t.UploadDate,
		Duration:   t.Duration,
		Views:      t.Views,
		Likes:      t.Likes,
		Tags:       t.Tags,
	}
}

// VideoMetadata is the metadata.json record in a packaged dataset folder.
type VideoMetadata struct {
	VideoID    string   `json:"video_id"`
	Title      string   `json:"title"`
	Channel    string   `json:"channel"`
	UploadDate string   `json:"upload_date"`
	Duration   int64    `json:"duration"`
	Views      int64    `json:"views"`
	Likes      int64    `json:"likes"`
	Tags       []string `json:"tags"`
}

// Prompt is a single generated reasoning question.
type Prompt struct {
	PromptID       string    `json:"prompt_id"`
	VideoID        string    `json:"video_id"`
	Question       string    `json:"prompt"`
	Domain         string    `json:"domain"`
	Difficulty     string    `json:"difficulty"`
	Guidance       string    `json:"golden_answer_guidance"`
	GeneratedAt    time.Time `json:"generated_at"`
	GeneratorModel string    `json:"generator_model"`
}

// GeneratorInfo identifies the service and model that produced a prompt set.
type GeneratorInfo struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// PromptSet is the prompts.json envelope for one video.
type PromptSet struct {
	VideoID     string        `json:"video_id"`
	Title       string        `json:"title"`
	Channel     string        `json:"channel"`
	Keywords    []string      `json:"keywords"`
	Prompts     []Prompt      `json:"prompts"`
	GeneratedAt time.Time     `json:"generated_at"`
	Generator   GeneratorInfo `json:"generator"`
}

// Find returns the prompt with the given id, or nil.
func (ps *PromptSet) Find(promptID string) *Prompt {
	for i := range ps.Prompts {
		if ps.Prompts[i].PromptID == promptID {
			return &ps.Prompts[i]
		}
	}
	return nil
}

// GoldenAnswer is the reference answer for one prompt. Exactly one per
// prompt; one JSON line in golden_answers.jsonl.
type GoldenAnswer struct {
	PromptID    string    `json:"prompt_id"`
	Prompt      string    `json:"prompt"`
	Domain      string    `json:"domain"`
	Difficulty  string    `json:"difficulty"`
	Answer      string    `json:"golden_answer"`
	GeneratedAt time.Time `json:"generated_at"`
	Model       string    `json:"model"`
}

// Attempt outcomes recorded on ModelOutput.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// ModelOutput is one evaluation attempt for one prompt. Every attempt is
// recorded, including rejected and errored ones.
type ModelOutput struct {
	VideoID     string    `json:"video_id"`
	PromptID    string    `json:"prompt_id"`
	RunID       string    `json:"run_id"`
	Attempt     int       `json:"attempt"`
	Model       string    `json:"model"`
	Response    string    `json:"response"`
	Outcome     string    `json:"outcome"`
	Detail      string    `json:"detail,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ScoreRecord is the rubric score for one prompt, taken from the final
// attempt. Exactly one per prompt after evaluation completes.
type ScoreRecord struct {
	VideoID         string `json:"video_id"`
	PromptID        string `json:"prompt_id"`
	Model           string `json:"model"`
	Attempt         int    `json:"attempt"`
	ReasoningDepth  int    `json:"reasoning_depth"`
	FactualAccuracy int    `json:"factual_accuracy"`
	Coherence       int    `json:"coherence"`
	Accepted        bool   `json:"accepted"`
}

// Mean returns the average of the three rubric dimensions.
func (s ScoreRecord) Mean() float64 {
	return float64(s.ReasoningDepth+s.FactualAccuracy+s.Coherence) / 3.0
}
