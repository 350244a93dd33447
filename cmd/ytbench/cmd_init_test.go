package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand_CreatesWorkspace(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "my-benchmark")

	var buf bytes.Buffer
	cmd := newInitCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{target})
	require.NoError(t, cmd.Execute())

	// Verify directories created
	assert.DirExists(t, filepath.Join(target, "data", "raw"))
	assert.DirExists(t, filepath.Join(target, "prompts"))
	assert.DirExists(t, filepath.Join(target, "models_outputs"))
	assert.DirExists(t, filepath.Join(target, "dataset"))

	// Verify settings file created
	assert.FileExists(t, filepath.Join(target, "ytbench.yaml"))

	output := buf.String()
	assert.Contains(t, output, "Initialized benchmark workspace")
	assert.Contains(t, output, "ytbench.yaml")
	assert.Contains(t, output, "GOOGLE_API_KEY")
}

func TestInitCommand_DefaultDir(t *testing.T) {
	dir := t.TempDir()

	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		os.Chdir(origDir) //nolint:errcheck // best-effort cleanup
	})

	cmd := newInitCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.DirExists(t, filepath.Join(dir, "data", "raw"))
	assert.FileExists(t, filepath.Join(dir, "ytbench.yaml"))
}

func TestInitCommand_SettingsContent(t *testing.T) {
	dir := t.TempDir()

	cmd := newInitCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{dir})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "ytbench.yaml"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "generation: gemini-2.5-flash")
	assert.Contains(t, content, "max_attempts: 3")
	assert.Contains(t, content, "accept_threshold: 3")
	assert.Contains(t, content, "type: gemini")
}

func TestInitCommand_Idempotent(t *testing.T) {
	dir := t.TempDir()

	cmd1 := newInitCommand()
	cmd1.SetOut(&bytes.Buffer{})
	cmd1.SetArgs([]string{dir})
	require.NoError(t, cmd1.Execute())

	// A second run over the same directory succeeds.
	cmd2 := newInitCommand()
	cmd2.SetOut(&bytes.Buffer{})
	cmd2.SetArgs([]string{dir})
	require.NoError(t, cmd2.Execute())

	assert.FileExists(t, filepath.Join(dir, "ytbench.yaml"))
}

func TestInitCommand_TooManyArgs(t *testing.T) {
	cmd := newInitCommand()
	cmd.SetArgs([]string{"a", "b"})
	err := cmd.Execute()
	assert.Error(t, err)
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	root := newRootCommand()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{
		"collect", "generate-prompts", "generate-golden-answers",
		"evaluate", "build-dataset", "run", "init", "serve",
	} {
		assert.True(t, names[want], "root command should have %q subcommand", want)
	}
}
