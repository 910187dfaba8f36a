package corpus

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/minio/sha256-simd"
	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Snapshot format changes
const snapshotSchemaVersion uint16 = 1

// ErrSchemaMismatch is returned when a snapshot was written by an
// incompatible version.
var ErrSchemaMismatch = errors.New("corpus snapshot schema mismatch")

// Snapshot is the on-disk form of a corpus.
type Snapshot struct {
	Schema  uint16
	Created time.Time
	Seeds   []string // FIFO order, oldest first
}

// SaveSnapshot writes seeds to path atomically.
func SaveSnapshot(path string, seeds []string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	payload := Snapshot{
		Schema:  snapshotSchemaVersion,
		Created: time.Now().UTC(),
		Seeds:   seeds,
	}
	if err = msgpack.NewEncoder(f).Encode(&payload); err != nil {
		return fmt.Errorf("failed to encode corpus snapshot: %w", err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), path)
}

// LoadSnapshot reads a snapshot written by SaveSnapshot.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var payload Snapshot
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: failed to decode corpus snapshot: %w", path, err)
	}
	if payload.Schema != snapshotSchemaVersion {
		return nil, fmt.Errorf("%s: schema %d, want %d: %w", path, payload.Schema, snapshotSchemaVersion, ErrSchemaMismatch)
	}
	return &payload, nil
}

// SeedName returns the content-addressed file name for a seed.
func SeedName(seed, ext string) string {
	if ext == "" {
		ext = DefaultExtension
	}
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:]) + ext
}

// ExportDir writes each seed to dir as a content-addressed file so the
// directory can be used as a seed corpus. Existing files are overwritten.
// It returns the number of files written.
func ExportDir(dir string, seeds []string, ext string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	written := 0
	for _, seed := range seeds {
		path := filepath.Join(dir, SeedName(seed, ext))
		if err := os.WriteFile(path, []byte(seed+"\n"), 0o644); err != nil {
			return written, fmt.Errorf("failed to write seed %q: %w", path, err)
		}
		written++
	}
	return written, nil
}
