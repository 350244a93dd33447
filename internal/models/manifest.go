package models

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ManifestEntry summarizes one packaged video.
type ManifestEntry struct {
	VideoID       string    `json:"video_id"`
	Title         string    `json:"title,omitempty"`
	Prompts       int       `json:"prompts"`
	GoldenAnswers int       `json:"golden_answers"`
	ModelOutputs  int       `json:"model_outputs"`
	Evaluations   int       `json:"evaluations"`
	PackagedAt    time.Time `json:"packaged_at"`
}

// Manifest is the global index of packaged videos, one entry per video,
// in packaging order.
type Manifest struct {
	Videos    []ManifestEntry `json:"videos"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LoadManifest reads a manifest file. A missing file yields an empty
// manifest rather than an error, so first-time packaging works.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// Save writes the manifest, stamping UpdatedAt.
func (m *Manifest) Save(path string) error {
	m.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Find returns the entry for a video id, or nil.
func (m *Manifest) Find(videoID string) *ManifestEntry {
	for i := range m.Videos {
		if m.Videos[i].VideoID == videoID {
			return &m.Videos[i]
		}
	}
	return nil
}

// Upsert replaces the entry for entry.VideoID, or appends it when the video
// has not been packaged before. Re-packaging a video keeps its position.
func (m *Manifest) Upsert(entry ManifestEntry) {
	if existing := m.Find(entry.VideoID); existing != nil {
		*existing = entry
		return
	}
	m.Videos = append(m.Videos, entry)
}
