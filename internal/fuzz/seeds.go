package fuzztests

import (
	"path/filepath"
	"testing"

	"exprfuzz/internal/corpus"
)

const maxSeedBytes = 4 << 10 // 4 KiB на одно выражение достаточно

// builtinSeeds cover every operator family and error kind.
var builtinSeeds = []string{
	"2 + 3",
	"1/0",
	"undefined_var",
	"maximum(1, 2)",
	"",
	"-2 ** 2 ** 3",
	"'A' if x > y else 'B' if z < y else 'C'",
	"abs(x) << 3 >> 1 & 255 | 7 ^ 1",
	"round(pi * e, 3) // 2 % 5",
	"'ab' * 3 + 'c' in 'abcabc'",
	"not 1 < 2 <= 3 != 4 is not None",
	"advanced(value)",
	"__import__('os').system('ls')",
	"((((1))))",
	"0x1f + 0b101 - 0o17 + 1.5e3",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add(s)
	}
	addDirSeeds(f)
}

// addDirSeeds adds the repository seed corpus, if present.
func addDirSeeds(f *testing.F) {
	res, err := corpus.LoadDir(filepath.Join("..", "..", "corpus"), corpus.DefaultExtension, nil)
	if err != nil {
		return
	}
	for _, s := range res.Seeds {
		f.Add(clampSeed(s))
	}
}

func clampSeed(src string) string {
	if len(src) <= maxSeedBytes {
		return src
	}
	return src[:maxSeedBytes]
}
