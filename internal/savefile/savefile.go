// Package savefile persists an in-progress match so an interrupted game can
// be resumed. The engine itself never touches the filesystem; whoever drives
// it owns the read-modify-write cycle, and this package gives that caller an
// atomic one.
package savefile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lox/cribbage/internal/game"
)

// Snapshot is everything needed to pick a match back up: the engine state
// plus the match scores the caller folds outside it.
type Snapshot struct {
	SavedAt time.Time       `json:"savedAt"`
	Level   string          `json:"level"`
	Seed    int64           `json:"seed"`
	Scores  [2]int          `json:"scores"`
	State   *game.GameState `json:"state"`
}

// Save writes the snapshot atomically: readers see the previous save or the
// new one, never a torn file.
func Save(path string, snap *Snapshot) error {
	if snap.State == nil {
		return fmt.Errorf("refusing to save a snapshot with no game state")
	}
	snap.SavedAt = time.Now()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return writeFileAtomic(path, data, 0o600)
}

// Load reads a snapshot written by Save.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", path, err)
	}
	if snap.State == nil {
		return nil, fmt.Errorf("snapshot %s has no game state", path)
	}
	return &snap, nil
}

// Remove deletes the save file. A missing file is not an error; the match
// most likely finished without ever being interrupted.
func Remove(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// writeFileAtomic writes to a temp file in the target directory and renames
// it into place. The temp file must be on the same filesystem as the target
// for the rename to be atomic.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmpFile, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	tmpFile = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
