package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"exprfuzz/internal/corpus"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect and convert seed corpora",
}

var corpusShowCmd = &cobra.Command{
	Use:   "show <dir|snapshot>",
	Short: "List the seeds of a corpus directory or snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runCorpusShow,
}

var corpusExportCmd = &cobra.Command{
	Use:   "export <snapshot> <dir>",
	Short: "Write the seeds of a snapshot into a seed directory",
	Args:  cobra.ExactArgs(2),
	RunE:  runCorpusExport,
}

var corpusPackCmd = &cobra.Command{
	Use:   "pack <dir> <snapshot>",
	Short: "Store the seeds of a directory as a snapshot",
	Args:  cobra.ExactArgs(2),
	RunE:  runCorpusPack,
}

func init() {
	corpusCmd.AddCommand(corpusShowCmd, corpusExportCmd, corpusPackCmd)
	corpusCmd.PersistentFlags().String("ext", corpus.DefaultExtension, "seed file extension")
	corpusShowCmd.Flags().Int("limit", 0, "print at most this many seeds (0 = all)")
}

func runCorpusShow(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	ext, err := cmd.Flags().GetString("ext")
	if err != nil {
		return err
	}
	seeds, err := readCorpus(cmd, args[0], ext)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	headerColor.Fprintf(out, "%s: %d seeds\n", args[0], len(seeds))
	for i, seed := range seeds {
		if limit > 0 && i >= limit {
			dimColor.Fprintf(out, "... %d more\n", len(seeds)-limit)
			break
		}
		fmt.Fprintf(out, "%4d  %s\n", i+1, strconv.Quote(seed))
	}
	return nil
}

func runCorpusExport(cmd *cobra.Command, args []string) error {
	ext, err := cmd.Flags().GetString("ext")
	if err != nil {
		return err
	}
	snap, err := corpus.LoadSnapshot(args[0])
	if err != nil {
		return err
	}
	n, err := corpus.ExportDir(args[1], snap.Seeds, ext)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d seeds to %s\n", n, args[1])
	return nil
}

func runCorpusPack(cmd *cobra.Command, args []string) error {
	ext, err := cmd.Flags().GetString("ext")
	if err != nil {
		return err
	}
	seeds, err := loadSeedDir(cmd, args[0], ext)
	if err != nil {
		return err
	}
	if err := corpus.SaveSnapshot(args[1], seeds); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "packed %d seeds into %s\n", len(seeds), args[1])
	return nil
}

// readCorpus loads a seed directory or, for a regular file, a snapshot.
func readCorpus(cmd *cobra.Command, path, ext string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return loadSeedDir(cmd, path, ext)
	}
	snap, err := corpus.LoadSnapshot(path)
	if err != nil {
		return nil, err
	}
	return snap.Seeds, nil
}

func loadSeedDir(cmd *cobra.Command, dir, ext string) ([]string, error) {
	res, err := corpus.LoadDir(dir, ext, func(path string, err error) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: skipping seed %s: %v\n", path, err)
	})
	if err != nil {
		return nil, err
	}
	if res.Missing {
		return nil, fmt.Errorf("corpus directory %q not found", dir)
	}
	return res.Seeds, nil
}
