package workspace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ytbench/ytbench/internal/models"
)

// ReadGoldensFile parses golden answers from an arbitrary JSONL path, such
// as a packaged dataset folder.
func ReadGoldensFile(path string) ([]models.GoldenAnswer, error) {
	return readJSONL[models.GoldenAnswer](path)
}

// ReadOutputsFile parses model outputs from an arbitrary JSONL path.
func ReadOutputsFile(path string) ([]models.ModelOutput, error) {
	return readJSONL[models.ModelOutput](path)
}

// writeJSONL writes records as newline-delimited JSON, replacing any
// existing file.
func writeJSONL[T any](path string, records []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	enc := json.NewEncoder(f)
	for i, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode line %d of %s: %w", i+1, path, err)
		}
	}
	return f.Close()
}

// readJSONL parses newline-delimited JSON records. Blank lines are skipped;
// an unparseable line is an error rather than a silent drop.
func readJSONL[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var records []T
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("parse line %d of %s: %w", line, path, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}
