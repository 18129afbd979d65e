// Package store persists the chat snapshot as a single JSON document,
// written atomically so a crash mid-save never corrupts history.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"murmur/internal/types"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

const snapshotSchemaVersion = 1

type SnapshotStore interface {
	Load(ctx context.Context) (*types.Snapshot, error)
	Save(ctx context.Context, snap *types.Snapshot) error
}

type FileSnapshotStore struct {
	path string
	mu   sync.Mutex
}

type snapshotFile struct {
	Version  int             `json:"version"`
	Channels []types.Channel `json:"channels"`
	Input    string          `json:"input"`
}

func NewFileSnapshotStore(path string) *FileSnapshotStore {
	return &FileSnapshotStore{path: path}
}

func (s *FileSnapshotStore) Load(ctx context.Context) (*types.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := &snapshotFile{}
	if err := readJSON(s.path, file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}
	if file.Channels == nil {
		file.Channels = []types.Channel{}
	}
	return &types.Snapshot{Channels: file.Channels, Input: file.Input}, nil
}

func (s *FileSnapshotStore) Save(ctx context.Context, snap *types.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap == nil {
		return errors.New("snapshot is required")
	}
	file := &snapshotFile{
		Version:  snapshotSchemaVersion,
		Channels: snap.Channels,
		Input:    snap.Input,
	}
	if file.Channels == nil {
		file.Channels = []types.Channel{}
	}
	return writeJSONAtomic(s.path, file)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return errors.New("empty snapshot file")
	}
	return json.Unmarshal(data, v)
}

// writeJSONAtomic writes to a temp file in the target directory and renames
// it into place. Readers always see either the old document or the new one.
func writeJSONAtomic(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	file, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(file.Name())
	}()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Rename(file.Name(), path)
}
