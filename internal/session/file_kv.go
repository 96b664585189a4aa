package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

const sessionFileName = "session.json"

// fileState is the on-disk layout of the session file.
type fileState struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

// FileKV stores session values in a single JSON file, rewritten atomically on
// every change.
type FileKV struct {
	baseDir string
}

// NewFileKV creates a file backed KV.
// If baseDir is empty, uses ~/.devmarket/
func NewFileKV(baseDir string) (*FileKV, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".devmarket")
	}

	// Session data includes the bearer token so keep it private
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	log.Debug().Str("baseDir", baseDir).Msg("session file store initialized")

	return &FileKV{baseDir: baseDir}, nil
}

// Path returns the location of the session file.
func (f *FileKV) Path() string {
	return filepath.Join(f.baseDir, sessionFileName)
}

func (f *FileKV) Get(ctx context.Context, keys ...string) (map[string]string, error) {
	state, err := f.load()
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := state.Values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (f *FileKV) Set(ctx context.Context, values map[string]string) error {
	state, err := f.load()
	if err != nil {
		// A corrupt file is replaced rather than blocking new sessions
		log.Warn().Err(err).Str("path", f.Path()).Msg("discarding unreadable session file")
		state = newFileState()
	}

	for k, v := range values {
		state.Values[k] = v
	}

	return f.save(state)
}

func (f *FileKV) Delete(ctx context.Context, keys ...string) error {
	state, err := f.load()
	if err != nil {
		log.Warn().Err(err).Str("path", f.Path()).Msg("discarding unreadable session file")
		state = newFileState()
	}

	for _, k := range keys {
		delete(state.Values, k)
	}

	return f.save(state)
}

func newFileState() *fileState {
	return &fileState{Version: 1, Values: make(map[string]string)}
}

// load reads the session file, a missing file is an empty state.
func (f *FileKV) load() (*fileState, error) {
	data, err := os.ReadFile(f.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return newFileState(), nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	if state.Values == nil {
		state.Values = make(map[string]string)
	}

	return &state, nil
}

// save writes the session file atomically.
func (f *FileKV) save(state *fileState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Write to temp file first
	path := f.Path()
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save session file: %w", err)
	}

	return nil
}
