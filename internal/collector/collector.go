// Package collector fetches subtitles and video metadata with yt-dlp and
// normalizes them into a Transcript record. yt-dlp is an external
// collaborator; the collector adds no retry logic beyond what the tool
// itself provides.
package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/ytbench/ytbench/internal/models"
)

// ErrSourceUnavailable is returned when no subtitles exist for a video in
// any supported format.
var ErrSourceUnavailable = errors.New("no usable subtitles found")

// ErrMetadataFetch is returned when video metadata cannot be retrieved.
var ErrMetadataFetch = errors.New("metadata fetch failed")

// Runner executes the subtitle extraction tool. It exists so tests can
// substitute a fake that writes fixture files.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// ExecRunner runs yt-dlp as a subprocess.
type ExecRunner struct {
	// Binary overrides the executable name, default "yt-dlp".
	Binary string
}

// Run implements [Runner].
func (r ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	bin := r.Binary
	if bin == "" {
		bin = "yt-dlp"
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w: %s", bin, err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// subtitle extensions in preference order, matching what yt-dlp emits.
var subtitleExts = []string{"vtt", "srt", "json3", "srv1", "srv2", "srv3"}

// Collector downloads subtitles into a working directory and parses them.
type Collector struct {
	runner  Runner
	workDir string
	lang    string
}

// Option configures a Collector.
type Option func(*Collector)

// WithRunner substitutes the command runner.
func WithRunner(r Runner) Option {
	return func(c *Collector) { c.runner = r }
}

// WithWorkDir sets the directory subtitle files are downloaded into.
func WithWorkDir(dir string) Option {
	return func(c *Collector) { c.workDir = dir }
}

// WithLanguage sets the subtitle language code, default "en".
func WithLanguage(lang string) Option {
	return func(c *Collector) { c.lang = lang }
}

// New creates a Collector. Without WithWorkDir, downloads go to a temp
// directory that is removed after Collect.
func New(opts ...Option) *Collector {
	c := &Collector{
		runner: ExecRunner{},
		lang:   "en",
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ExtractVideoID pulls the video id out of a YouTube URL. Anything that is
// not recognizably a URL is assumed to already be an id.
func ExtractVideoID(url string) string {
	if i := strings.Index(url, "v="); i >= 0 {
		id := url[i+2:]
		if j := strings.IndexByte(id, '&'); j >= 0 {
			id = id[:j]
		}
		return id
	}
	if i := strings.Index(url, "youtu.be/"); i >= 0 {
		id := url[i+len("youtu.be/"):]
		if j := strings.IndexByte(id, '?'); j >= 0 {
			id = id[:j]
		}
		return id
	}
	return url
}

// Collect runs the full stage-1 flow: download subtitles, parse them into
// segments, fetch metadata, and assemble the Transcript record.
func (c *Collector) Collect(ctx context.Context, videoURL string) (*models.Transcript, error) {
	videoID := ExtractVideoID(videoURL)

	workDir := c.workDir
	if workDir == "" {
		tmp, err := os.MkdirTemp("", "ytbench-subs-*")
		if err != nil {
			return nil, fmt.Errorf("create subtitle work dir: %w", err)
		}
		defer os.RemoveAll(tmp) //nolint:errcheck
		workDir = tmp
	}

	subPath, format, err := c.downloadSubtitles(ctx, videoURL, videoID, workDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(subPath)
	if err != nil {
		return nil, fmt.Errorf("read subtitle file: %w", err)
	}

	segments, err := ParseSubtitles(format, data)
	if err != nil {
		return nil, err
	}

	meta, err := c.fetchMetadata(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	slog.Debug("collected transcript",
		"video_id", videoID, "format", format, "segments", len(segments))

	return &models.Transcript{
		VideoID:        videoID,
		VideoURL:       videoURL,
		SubtitleFormat: format,
		Segments:       segments,
		Title:          meta.Title,
		Channel:        meta.Channel,
		UploadDate:     meta.UploadDate,
		Duration:       meta.Duration,
		Description:    meta.Description,
		Views:          meta.ViewCount,
		Likes:          meta.LikeCount,
		Tags:           meta.Tags,
		CollectedAt:    time.Now().UTC(),
	}, nil
}

// downloadSubtitles asks yt-dlp for manual and auto subtitles and returns
// the first downloaded file in a supported format.
func (c *Collector) downloadSubtitles(ctx context.Context, videoURL, videoID, workDir string) (path, format string, err error) {
	_, err = c.runner.Run(ctx,
		"--write-auto-sub",
		"--write-sub",
		"--sub-langs", c.lang,
		"--skip-download",
		"-o", filepath.Join(workDir, videoID+".%(ext)s"),
		videoURL,
	)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	for _, ext := range subtitleExts {
		matches, globErr := filepath.Glob(filepath.Join(workDir, videoID+"*."+ext))
		if globErr != nil {
			continue
		}
		if len(matches) > 0 {
			return matches[0], ext, nil
		}
	}

	return "", "", fmt.Errorf("%w: video %s", ErrSourceUnavailable, videoID)
}

// videoInfo is the subset of yt-dlp --dump-json output we keep.
type videoInfo struct {
	Title       string   `json:"title"`
	Channel     string   `json:"channel"`
	UploadDate  string   `json:"upload_date"`
	Duration    int64    `json:"duration"`
	Description string   `json:"description"`
	ViewCount   int64    `json:"view_count"`
	LikeCount   int64    `json:"like_count"`
	Tags        []string `json:"tags"`
}

func (c *Collector) fetchMetadata(ctx context.Context, videoURL string) (*videoInfo, error) {
	out, err := c.runner.Run(ctx, "--skip-download", "--dump-json", videoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMetadataFetch, err)
	}

	var info videoInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("%w: parse yt-dlp output: %w", ErrMetadataFetch, err)
	}
	return &info, nil
}
