package lfscheck

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/google/vectorio"
	"golang.org/x/sys/unix"
)

// persistedState is the on-disk state record. Only the hash field is
// recognized; unknown fields written by a future format are ignored
// on load.
type persistedState struct {
	Hash string `json:"hash"`
}

// StateStore persists the last known digest as a small JSON record.
// At most one process is expected to touch a given state file at a
// time; concurrent writers may lose an update but never corrupt the
// record, since every write goes through a rename.
type StateStore struct{}

// NewStateStore creates a state store.
func NewStateStore() *StateStore {
	return &StateStore{}
}

// Save writes the digest to the state file at path, creating missing
// parent directories first. The record is written to a temp file in
// the destination directory, synced, and renamed over the target, so
// a failed save never leaves a partially written state file behind.
func (ss *StateStore) Save(path string, digest string) error {
	if path == "" {
		return fmt.Errorf("state file path is empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory %s: %w", dir, err)
	}

	payload, err := json.Marshal(&persistedState{Hash: digest})
	if err != nil {
		return fmt.Errorf("failed to encode state record: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".lfscheck-state-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file in %s: %w", dir, err)
	}
	tmpPath := tmpFile.Name()
	renamed := false
	defer func() {
		tmpFile.Close()
		if !renamed {
			os.Remove(tmpPath)
		}
	}()

	newline := []byte{'\n'}
	iovecs := []syscall.Iovec{
		{Base: &payload[0], Len: uint64(len(payload))},
		{Base: &newline[0], Len: uint64(len(newline))},
	}
	want := len(payload) + len(newline)
	if nw, err := vectorio.WritevRaw(uintptr(tmpFile.Fd()), iovecs); err != nil {
		return fmt.Errorf("failed to write state record: %w", err)
	} else if nw != want {
		return fmt.Errorf("state write incomplete: wrote %d bytes, expected %d", nw, want)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync state file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close state file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace state file %s: %w", path, err)
	}
	renamed = true

	// Make the rename itself durable.
	if dirFile, err := os.Open(dir); err == nil {
		unix.Fsync(int(dirFile.Fd()))
		dirFile.Close()
	}

	Tracef(1, "saved digest %s to %s", digest, path)
	return nil
}

// Load reads the digest stored at path. A missing file, an unreadable
// file, malformed JSON, or a record without a hash all mean "no prior
// state" and return ok == false; none of them is an error, a prior
// run is simply not required to exist.
func (ss *StateStore) Load(path string) (digest string, ok bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		Tracef(2, "no prior state at %s: %v", path, err)
		return "", false
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		Tracef(1, "malformed state file %s, treating as no prior state: %v", path, err)
		return "", false
	}
	if state.Hash == "" {
		return "", false
	}
	return state.Hash, true
}
