package campaign

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"exprfuzz/internal/corpus"
	"exprfuzz/internal/oracle"
)

// writeFinding stores candidate under dir/<kind>/<sha256>.txt. It reports
// false without error when the same candidate was already recorded.
func writeFinding(dir, candidate string, out oracle.Outcome) (bool, error) {
	kindDir := filepath.Join(dir, out.Kind.String())
	if err := os.MkdirAll(kindDir, 0o755); err != nil {
		return false, err
	}
	path := filepath.Join(kindDir, corpus.SeedName(candidate, corpus.DefaultExtension))
	// #nosec G304 -- path is built from a content hash under the findings dir
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	_, werr := f.WriteString(candidate + "\n")
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return false, fmt.Errorf("failed to write finding %q: %w", path, werr)
	}
	return true, nil
}
