package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/ytbench/ytbench/internal/eval"
)

const (
	colAttempts = 8
	colScore    = 6
	colMean     = 6
	colStatus   = 8

	minPromptWidth     = 24
	defaultPromptWidth = 44
)

// printScoreTable renders the per-prompt evaluation summary.
func printScoreTable(w io.Writer, result *eval.Result) {
	attempts := make(map[string]int)
	for _, out := range result.Outputs {
		attempts[out.PromptID]++
	}

	promptWidth := promptColumnWidth()

	fmt.Fprintf(w, "\nRun %s\n", result.RunID) //nolint:errcheck
	fmt.Fprintf(w, "%s  %s  %s  %s  %s  %s  %s\n", //nolint:errcheck
		padRight("PROMPT", promptWidth),
		padRight("ATTEMPTS", colAttempts),
		padRight("DEPTH", colScore),
		padRight("ACC", colScore),
		padRight("COH", colScore),
		padRight("MEAN", colMean),
		"STATUS")

	for _, s := range result.Scores {
		status := "accepted"
		if !s.Accepted {
			status = "rejected"
		}
		fmt.Fprintf(w, "%s  %s  %s  %s  %s  %s  %s\n", //nolint:errcheck
			padRight(truncate(s.PromptID, promptWidth), promptWidth),
			padRight(fmt.Sprintf("%d", attempts[s.PromptID]), colAttempts),
			padRight(fmt.Sprintf("%d", s.ReasoningDepth), colScore),
			padRight(fmt.Sprintf("%d", s.FactualAccuracy), colScore),
			padRight(fmt.Sprintf("%d", s.Coherence), colScore),
			padRight(fmt.Sprintf("%.1f", s.Mean()), colMean),
			padRight(status, colStatus))
	}
	fmt.Fprintln(w) //nolint:errcheck
}

// promptColumnWidth sizes the prompt column to the terminal, leaving room
// for the fixed columns.
func promptColumnWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultPromptWidth
	}
	fixed := colAttempts + 3*colScore + colMean + colStatus + 12
	if w := width - fixed; w >= minPromptWidth {
		return w
	}
	return minPromptWidth
}

// truncate shortens a string to maxLen runes, replacing the last rune with
// "…" if needed.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
