package webapi

import "time"

// VideoSummary is the API response for a single packaged video in the list.
type VideoSummary struct {
	VideoID       string    `json:"videoId"`
	Title         string    `json:"title"`
	Prompts       int       `json:"prompts"`
	GoldenAnswers int       `json:"goldenAnswers"`
	ModelOutputs  int       `json:"modelOutputs"`
	Evaluations   int       `json:"evaluations"`
	PackagedAt    time.Time `json:"packagedAt"`
}

// VideoListResponse wraps the video list with an availability flag so the
// viewer can render a friendly empty state before any dataset exists.
type VideoListResponse struct {
	Available bool           `json:"available"`
	Videos    []VideoSummary `json:"videos"`
}

// VideoDetail is the API response for a single video with its prompts and
// evaluation results.
type VideoDetail struct {
	VideoSummary
	Channel    string         `json:"channel"`
	UploadDate string         `json:"uploadDate"`
	Duration   int64          `json:"duration"`
	VideoURL   string         `json:"videoUrl"`
	Items      []PromptResult `json:"items"`
}

// PromptResult is a per-prompt row within a video detail.
type PromptResult struct {
	PromptID   string     `json:"promptId"`
	Prompt     string     `json:"prompt"`
	Domain     string     `json:"domain"`
	Difficulty string     `json:"difficulty"`
	Accepted   bool       `json:"accepted"`
	Attempts   int        `json:"attempts"`
	Score      *ScoreView `json:"score,omitempty"`
}

// ScoreView is the rubric breakdown for an accepted prompt.
type ScoreView struct {
	ReasoningDepth  int     `json:"reasoningDepth"`
	FactualAccuracy int     `json:"factualAccuracy"`
	Coherence       int     `json:"coherence"`
	Mean            float64 `json:"mean"`
}

// PromptDetail is the full view of one prompt: golden answer and every
// model attempt, with answers rendered to HTML for display.
type PromptDetail struct {
	PromptResult
	VideoID          string        `json:"videoId"`
	Guidance         string        `json:"guidance"`
	GoldenAnswer     string        `json:"goldenAnswer"`
	GoldenAnswerHTML string        `json:"goldenAnswerHtml"`
	AttemptHistory   []AttemptView `json:"attemptDetails"`
}

// AttemptView is a single model attempt for a prompt.
type AttemptView struct {
	Attempt      int       `json:"attempt"`
	Model        string    `json:"model"`
	Outcome      string    `json:"outcome"`
	Detail       string    `json:"detail,omitempty"`
	Response     string    `json:"response"`
	ResponseHTML string    `json:"responseHtml"`
	GeneratedAt  time.Time `json:"generatedAt"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
