package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "corpus.mp")
	seeds := []string{"1 + 2", "abs(x)", ""}
	if err := SaveSnapshot(path, seeds); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	snap, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if !slices.Equal(snap.Seeds, seeds) {
		t.Errorf("Seeds = %q, want %q", snap.Seeds, seeds)
	}
	if snap.Created.IsZero() {
		t.Error("Created not recorded")
	}
	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), "tmp-*"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestSnapshotSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.mp")
	data, err := msgpack.Marshal(&Snapshot{Schema: snapshotSchemaVersion + 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("LoadSnapshot error = %v, want ErrSchemaMismatch", err)
	}
}

func TestExportDirFeedsLoadDir(t *testing.T) {
	dir := t.TempDir()
	seeds := []string{"x * 2", "min(1, 2)", "x * 2"}
	n, err := ExportDir(dir, seeds, "")
	if err != nil {
		t.Fatalf("ExportDir: %v", err)
	}
	if n != 3 {
		t.Errorf("written = %d, want 3", n)
	}
	res, err := LoadDir(dir, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	got := slices.Clone(res.Seeds)
	slices.Sort(got)
	if want := []string{"min(1, 2)", "x * 2"}; !slices.Equal(got, want) {
		t.Errorf("reloaded = %q, want %q", got, want)
	}
}

func TestSeedNameStable(t *testing.T) {
	a := SeedName("1/0", ".txt")
	if a != SeedName("1/0", "") {
		t.Error("default extension differs from .txt")
	}
	if a == SeedName("1/1", ".txt") {
		t.Error("distinct seeds share a name")
	}
	if filepath.Ext(a) != ".txt" || len(a) != 64+4 {
		t.Errorf("SeedName = %q", a)
	}
}
