package webapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore implements DatasetStore for testing.
type mockStore struct {
	videos  map[string]*VideoDetail
	prompts map[string]*PromptDetail
	listErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		videos:  make(map[string]*VideoDetail),
		prompts: make(map[string]*PromptDetail),
	}
}

func (m *mockStore) ListVideos() (*VideoListResponse, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	resp := &VideoListResponse{Videos: []VideoSummary{}}
	for _, v := range m.videos {
		resp.Videos = append(resp.Videos, v.VideoSummary)
	}
	resp.Available = len(resp.Videos) > 0
	return resp, nil
}

func (m *mockStore) GetVideo(id string) (*VideoDetail, error) {
	v, ok := m.videos[id]
	if !ok {
		return nil, ErrVideoNotFound
	}
	return v, nil
}

func (m *mockStore) GetPrompt(videoID, promptID string) (*PromptDetail, error) {
	if _, ok := m.videos[videoID]; !ok {
		return nil, ErrVideoNotFound
	}
	p, ok := m.prompts[promptID]
	if !ok {
		return nil, ErrPromptNotFound
	}
	return p, nil
}

func newTestServer(store DatasetStore) *httptest.Server {
	mux := http.NewServeMux()
	RegisterRoutes(mux, store)
	return httptest.NewServer(mux)
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(newMockStore())
	defer srv.Close()

	var health HealthResponse
	code := getJSON(t, srv.URL+"/api/health", &health)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", health.Status)
}

func TestHandleVideosEmptyDataset(t *testing.T) {
	srv := newTestServer(newMockStore())
	defer srv.Close()

	var list VideoListResponse
	code := getJSON(t, srv.URL+"/api/videos", &list)
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, list.Available)
	assert.Empty(t, list.Videos)
}

func TestHandleVideos(t *testing.T) {
	store := newMockStore()
	store.videos["vid1"] = &VideoDetail{
		VideoSummary: VideoSummary{VideoID: "vid1", Title: "First", Prompts: 4},
	}
	srv := newTestServer(store)
	defer srv.Close()

	var list VideoListResponse
	code := getJSON(t, srv.URL+"/api/videos", &list)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, list.Available)
	require.Len(t, list.Videos, 1)
	assert.Equal(t, "vid1", list.Videos[0].VideoID)
}

func TestHandleVideoDetail(t *testing.T) {
	store := newMockStore()
	store.videos["vid1"] = &VideoDetail{
		VideoSummary: VideoSummary{VideoID: "vid1", Title: "First"},
		Items: []PromptResult{
			{PromptID: "p1", Prompt: "why?", Accepted: true},
		},
	}
	srv := newTestServer(store)
	defer srv.Close()

	var detail VideoDetail
	code := getJSON(t, srv.URL+"/api/videos/vid1", &detail)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "First", detail.Title)
	require.Len(t, detail.Items, 1)
	assert.True(t, detail.Items[0].Accepted)
}

func TestHandleVideoDetailNotFound(t *testing.T) {
	srv := newTestServer(newMockStore())
	defer srv.Close()

	var errResp ErrorResponse
	code := getJSON(t, srv.URL+"/api/videos/ghost", &errResp)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "video not found", errResp.Error)
}

func TestHandlePromptDetail(t *testing.T) {
	store := newMockStore()
	store.videos["vid1"] = &VideoDetail{VideoSummary: VideoSummary{VideoID: "vid1"}}
	store.prompts["p1"] = &PromptDetail{
		PromptResult: PromptResult{PromptID: "p1", Prompt: "why?"},
		VideoID:      "vid1",
		GoldenAnswer: "because",
	}
	srv := newTestServer(store)
	defer srv.Close()

	var detail PromptDetail
	code := getJSON(t, srv.URL+"/api/videos/vid1/prompts/p1", &detail)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "because", detail.GoldenAnswer)
}

func TestHandlePromptDetailNotFound(t *testing.T) {
	store := newMockStore()
	store.videos["vid1"] = &VideoDetail{VideoSummary: VideoSummary{VideoID: "vid1"}}
	srv := newTestServer(store)
	defer srv.Close()

	var errResp ErrorResponse
	code := getJSON(t, srv.URL+"/api/videos/vid1/prompts/ghost", &errResp)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "prompt not found", errResp.Error)
}
