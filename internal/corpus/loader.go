package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultExtension is the seed file extension used when none is configured.
const DefaultExtension = ".txt"

// maxSeedBytes bounds a single seed file; longer files are clamped.
const maxSeedBytes = 64 << 10

// SkipFunc receives files that could not be loaded. Loading always continues.
type SkipFunc func(path string, err error)

// LoadResult describes one LoadDir call.
type LoadResult struct {
	Seeds   []string
	Files   int // files matching the extension
	Skipped int // unreadable files
	Empty   int // files whose trimmed content was empty
	// Truncated counts files longer than the seed size limit; their seeds
	// keep the leading characters that fit.
	Truncated int
	Missing   bool
}

// LoadDir reads every file with extension ext directly under dir. Each
// file's trimmed contents is one seed; empty files are skipped and
// unreadable files are reported through skip. A missing directory yields an
// empty result with Missing set. Only a failure to list an existing
// directory is returned as an error.
func LoadDir(dir, ext string, skip SkipFunc) (LoadResult, error) {
	var res LoadResult
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			res.Missing = true
			return res, nil
		}
		return res, fmt.Errorf("failed to list corpus directory %q: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	// детерминированный порядок, чтобы "последние" сиды были стабильны
	sort.Strings(paths)

	for _, path := range paths {
		res.Files++
		// #nosec G304 -- path comes from the configured corpus directory
		data, err := os.ReadFile(path)
		if err != nil {
			res.Skipped++
			if skip != nil {
				skip(path, err)
			}
			continue
		}
		seed, cut := normalizeSeed(data)
		if cut {
			res.Truncated++
		}
		if seed == "" {
			res.Empty++
			continue
		}
		res.Seeds = append(res.Seeds, seed)
	}
	return res, nil
}

// normalizeSeed clamps data to maxSeedBytes on a character boundary, then
// NFC-normalises and trims it.
func normalizeSeed(data []byte) (seed string, truncated bool) {
	if len(data) > maxSeedBytes {
		n := maxSeedBytes
		for n > 0 && !utf8.RuneStart(data[n]) {
			n--
		}
		data = data[:n]
		truncated = true
	}
	return strings.TrimSpace(norm.NFC.String(string(data))), truncated
}
