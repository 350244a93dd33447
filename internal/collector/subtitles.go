package collector

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/ytbench/ytbench/internal/models"
)

// ParseSubtitles dispatches to the parser for a subtitle format and returns
// normalized segments with second-based timestamps.
func ParseSubtitles(format string, data []byte) ([]models.Segment, error) {
	switch {
	case format == "vtt":
		return parseVTT(data)
	case format == "srt":
		return parseSRT(data)
	case format == "json3":
		return parseJSON3(data)
	case strings.HasPrefix(format, "srv"):
		return parseSRV(data)
	default:
		return nil, fmt.Errorf("unsupported subtitle format: %s", format)
	}
}

// parseClock converts "HH:MM:SS.mmm" (or comma-millis, or without the hour
// part) to seconds.
func parseClock(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	parts := strings.Split(s, ":")

	var h, m int
	var sec float64
	var err error

	switch len(parts) {
	case 3:
		if h, err = strconv.Atoi(parts[0]); err != nil {
			return 0, fmt.Errorf("bad timestamp %q", s)
		}
		parts = parts[1:]
		fallthrough
	case 2:
		if m, err = strconv.Atoi(parts[0]); err != nil {
			return 0, fmt.Errorf("bad timestamp %q", s)
		}
		if sec, err = strconv.ParseFloat(parts[1], 64); err != nil {
			return 0, fmt.Errorf("bad timestamp %q", s)
		}
	default:
		return 0, fmt.Errorf("bad timestamp %q", s)
	}

	return float64(h)*3600 + float64(m)*60 + sec, nil
}

var inlineTags = regexp.MustCompile(`<[^>]*>`)

func cleanCueText(lines []string) string {
	text := strings.Join(lines, " ")
	text = inlineTags.ReplaceAllString(text, "")
	return strings.TrimSpace(html.UnescapeString(text))
}

// parseVTT handles WebVTT, including the inline timing tags yt-dlp emits
// for auto-generated captions.
func parseVTT(data []byte) ([]models.Segment, error) {
	var segments []models.Segment

	blocks := splitBlocks(string(data))
	for _, block := range blocks {
		lines := block

		// Skip header and non-cue blocks.
		first := strings.TrimSpace(lines[0])
		if strings.HasPrefix(first, "WEBVTT") || strings.HasPrefix(first, "NOTE") ||
			strings.HasPrefix(first, "STYLE") || strings.HasPrefix(first, "Kind:") ||
			strings.HasPrefix(first, "Language:") {
			continue
		}

		// Optional cue identifier line before the timing line.
		timingIdx := -1
		for i, l := range lines {
			if strings.Contains(l, "-->") {
				timingIdx = i
				break
			}
		}
		if timingIdx < 0 || timingIdx == len(lines)-1 {
			continue
		}

		timing := strings.SplitN(lines[timingIdx], "-->", 2)
		// Cue settings like "align:start position:0%" follow the end time.
		endField := strings.Fields(strings.TrimSpace(timing[1]))
		if len(endField) == 0 {
			continue
		}

		start, err := parseClock(timing[0])
		if err != nil {
			continue
		}
		end, err := parseClock(endField[0])
		if err != nil {
			continue
		}

		text := cleanCueText(lines[timingIdx+1:])
		if text == "" {
			continue
		}

		segments = append(segments, models.Segment{Start: start, End: end, Text: text})
	}

	return segments, nil
}

// parseSRT handles SubRip blocks: index line, timing line, text lines.
func parseSRT(data []byte) ([]models.Segment, error) {
	var segments []models.Segment

	for _, lines := range splitBlocks(string(data)) {
		if len(lines) < 3 || !strings.Contains(lines[1], "-->") {
			continue
		}

		timing := strings.SplitN(lines[1], "-->", 2)
		start, err := parseClock(timing[0])
		if err != nil {
			continue
		}
		end, err := parseClock(timing[1])
		if err != nil {
			continue
		}

		text := cleanCueText(lines[2:])
		if text == "" {
			continue
		}

		segments = append(segments, models.Segment{Start: start, End: end, Text: text})
	}

	return segments, nil
}

// json3Event mirrors YouTube's json3 timedtext events.
type json3Event struct {
	StartMs    int64 `json:"tStartMs"`
	DurationMs int64 `json:"dDurationMs"`
	Segs       []struct {
		UTF8 string `json:"utf8"`
	} `json:"segs"`
}

func parseJSON3(data []byte) ([]models.Segment, error) {
	var doc struct {
		Events []json3Event `json:"events"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse json3 subtitles: %w", err)
	}

	var segments []models.Segment
	for _, ev := range doc.Events {
		if len(ev.Segs) == 0 {
			continue
		}
		var sb strings.Builder
		for _, seg := range ev.Segs {
			sb.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(sb.String())
		if text == "" {
			continue
		}

		start := float64(ev.StartMs) / 1000
		segments = append(segments, models.Segment{
			Start: start,
			End:   start + float64(ev.DurationMs)/1000,
			Text:  text,
		})
	}

	return segments, nil
}

var srvEntry = regexp.MustCompile(`(?s)<p[^>]*t="(\d+)"[^>]*d="(\d+)"[^>]*>(.*?)</p>`)

// parseSRV handles the srv1/srv2/srv3 XML variants.
func parseSRV(data []byte) ([]models.Segment, error) {
	var segments []models.Segment

	for _, m := range srvEntry.FindAllStringSubmatch(string(data), -1) {
		startMs, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		durMs, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			continue
		}

		text := strings.TrimSpace(html.UnescapeString(inlineTags.ReplaceAllString(m[3], "")))
		if text == "" {
			continue
		}

		start := float64(startMs) / 1000
		segments = append(segments, models.Segment{
			Start: start,
			End:   start + float64(durMs)/1000,
			Text:  text,
		})
	}

	return segments, nil
}

// splitBlocks splits subtitle text into blank-line separated blocks of
// non-empty lines.
func splitBlocks(s string) [][]string {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var blocks [][]string
	var current []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}
