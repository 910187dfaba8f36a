package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"exprfuzz/internal/mutate"
)

var mutateCmd = &cobra.Command{
	Use:   "mutate <seed>",
	Short: "Print mutations of a seed expression",
	Long: `Mutate applies random mutations to seed and prints one result per line.
Kinds are delete, insert, flip, structure and operator; without --kind each
line uses a uniformly drawn kind.`,
	Args: cobra.ExactArgs(1),
	RunE: runMutate,
}

func init() {
	mutateCmd.Flags().Int("count", 10, "number of mutations")
	mutateCmd.Flags().String("kind", "", "restrict to one mutation kind")
	mutateCmd.Flags().Uint64("seed", 0, "random seed (0 = random)")
	mutateCmd.Flags().Bool("show-kind", false, "prefix each line with its mutation kind")
}

func runMutate(cmd *cobra.Command, args []string) error {
	count, err := cmd.Flags().GetInt("count")
	if err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("--count must not be negative, got %d", count)
	}
	kindName, err := cmd.Flags().GetString("kind")
	if err != nil {
		return err
	}
	seed, err := cmd.Flags().GetUint64("seed")
	if err != nil {
		return err
	}
	showKind, err := cmd.Flags().GetBool("show-kind")
	if err != nil {
		return err
	}

	m := mutate.New(newRand(seed))
	next := m.Mutate
	if kindName != "" {
		kind, err := mutate.ParseKind(kindName)
		if err != nil {
			return err
		}
		next = func(s string) (string, mutate.Kind) { return m.Apply(kind, s), kind }
	}

	out := cmd.OutOrStdout()
	for range count {
		s, kind := next(args[0])
		if showKind {
			fmt.Fprintf(out, "%-10s %s\n", kind, s)
		} else {
			fmt.Fprintln(out, s)
		}
	}
	return nil
}
