package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()

	assert.Equal(t, "gemini-2.5-flash", s.Models.Generation)
	assert.Equal(t, s.Models.Generation, s.Models.Evaluation)
	assert.Equal(t, 4, s.Prompts.Count)
	assert.Equal(t, 3, s.Evaluation.MaxAttempts)
	assert.Equal(t, 30, s.Evaluation.MinWords)
	assert.InDelta(t, 3.0, s.Evaluation.AcceptThreshold, 1e-9)
	assert.Equal(t, "gemini", s.Engine.Type)
	assert.Equal(t, "data/raw", s.Dirs.Raw)
	require.NoError(t, s.Validate())
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadAppliesDefaultsToPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ytbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models:\n  generation: other-model\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other-model", s.Models.Generation)
	assert.Equal(t, "other-model", s.Models.Evaluation)
	assert.Equal(t, 4, s.Prompts.Count)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "count too low", content: "prompts:\n  count: 2\n"},
		{name: "count too high", content: "prompts:\n  count: 9\n"},
		{name: "negative attempts", content: "evaluation:\n  max_attempts: -1\n"},
		{name: "threshold out of range", content: "evaluation:\n  accept_threshold: 7\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "ytbench.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ytbench.yaml")

	s := Default()
	s.Models.Generation = "custom"
	s.Evaluation.Parallel = true
	require.NoError(t, s.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", got.Models.Generation)
	assert.True(t, got.Evaluation.Parallel)
}

func TestCredential(t *testing.T) {
	t.Setenv(CredentialEnvVar, "")
	_, err := Credential()
	require.ErrorIs(t, err, ErrMissingCredential)

	t.Setenv(CredentialEnvVar, "key-123")
	key, err := Credential()
	require.NoError(t, err)
	assert.Equal(t, "key-123", key)
}
