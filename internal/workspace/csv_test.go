package workspace

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytbench/ytbench/internal/models"
)

func TestScoresRoundTrip(t *testing.T) {
	w := New(t.TempDir())

	scores := []models.ScoreRecord{
		{VideoID: "v", PromptID: "p1", Model: "m", Attempt: 1, ReasoningDepth: 4, FactualAccuracy: 3, Coherence: 5, Accepted: true},
		{VideoID: "v", PromptID: "p2", Model: "m", Attempt: 3, ReasoningDepth: 2, FactualAccuracy: 2, Coherence: 2, Accepted: false},
	}
	require.NoError(t, w.WriteScores("v", scores))

	got, err := w.ReadScores("v")
	require.NoError(t, err)
	assert.Equal(t, scores, got)
}

func TestWriteScoresHeaderOnly(t *testing.T) {
	w := New(t.TempDir())
	require.NoError(t, w.WriteScores("v", nil))

	got, err := w.ReadScores("v")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadScoresFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "empty file",
			content: "",
			wantErr: "no header row",
		},
		{
			name:    "short row",
			content: "video_id,prompt_id,model,attempt,reasoning_depth,factual_accuracy,coherence,accepted\nv,p1,m\n",
			wantErr: "wrong number of fields",
		},
		{
			name:    "bad score",
			content: "video_id,prompt_id,model,attempt,reasoning_depth,factual_accuracy,coherence,accepted\nv,p1,m,1,four,3,5,true\n",
			wantErr: "bad reasoning_depth",
		},
		{
			name:    "bad accepted",
			content: "video_id,prompt_id,model,attempt,reasoning_depth,factual_accuracy,coherence,accepted\nv,p1,m,1,4,3,5,maybe\n",
			wantErr: "bad accepted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := t.TempDir() + "/results.csv"
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := ReadScoresFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
