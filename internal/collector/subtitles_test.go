package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "00:00:01.500", want: 1.5},
		{in: "01:02:03.250", want: 3723.25},
		{in: "02:05.000", want: 125},
		{in: "00:00:07,200", want: 7.2},
		{in: "garbage", wantErr: true},
		{in: "1:2:3:4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseClock(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseVTT(t *testing.T) {
	data := []byte(`WEBVTT
Kind: captions
Language: en

00:00:00.000 --> 00:00:02.500 align:start position:0%
hello <c>everyone</c> and welcome

NOTE this block is ignored

cue-2
00:00:02.500 --> 00:00:05.000
today we talk about &amp; compare things
`)

	segments, err := ParseSubtitles("vtt", data)
	require.NoError(t, err)
	require.Len(t, segments, 2)

	assert.Equal(t, 0.0, segments[0].Start)
	assert.Equal(t, 2.5, segments[0].End)
	assert.Equal(t, "hello everyone and welcome", segments[0].Text)

	assert.Equal(t, 2.5, segments[1].Start)
	assert.Equal(t, "today we talk about & compare things", segments[1].Text)
}

func TestParseSRT(t *testing.T) {
	data := []byte(`1
00:00:01,000 --> 00:00:03,000
first line
continued

2
00:00:03,000 --> 00:00:06,500
second cue
`)

	segments, err := ParseSubtitles("srt", data)
	require.NoError(t, err)
	require.Len(t, segments, 2)

	assert.Equal(t, 1.0, segments[0].Start)
	assert.Equal(t, 3.0, segments[0].End)
	assert.Equal(t, "first line continued", segments[0].Text)
	assert.Equal(t, 6.5, segments[1].End)
}

func TestParseJSON3(t *testing.T) {
	data := []byte(`{"events":[
		{"tStartMs":0,"dDurationMs":1500,"segs":[{"utf8":"hello "},{"utf8":"world"}]},
		{"tStartMs":1500,"dDurationMs":1000},
		{"tStartMs":2500,"dDurationMs":2000,"segs":[{"utf8":"next segment"}]}
	]}`)

	segments, err := ParseSubtitles("json3", data)
	require.NoError(t, err)
	require.Len(t, segments, 2)

	assert.Equal(t, "hello world", segments[0].Text)
	assert.Equal(t, 1.5, segments[0].End)
	assert.Equal(t, 2.5, segments[1].Start)
}

func TestParseSRV(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <p t="0" d="2000">first &amp; foremost</p>
  <p t="2000" d="1500"><s>with</s> <s>tags</s></p>
  <p t="4000" d="1000"></p>
</transcript>`)

	segments, err := ParseSubtitles("srv3", data)
	require.NoError(t, err)
	require.Len(t, segments, 2)

	assert.Equal(t, "first & foremost", segments[0].Text)
	assert.Equal(t, 2.0, segments[0].End)
	assert.Equal(t, "with tags", segments[1].Text)
}

func TestParseSubtitlesUnsupportedFormat(t *testing.T) {
	_, err := ParseSubtitles("ass", []byte("whatever"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported subtitle format")
}
