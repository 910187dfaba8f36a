package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"exprfuzz/internal/grammar"
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Print generated candidate expressions",
	Long: `Gen prints expressions from the grammar generator, one per line.
Valid shapes are binary, value, variable, function and conditional; invalid
shapes are noise, malformed, unbalanced, escape and undefined-call.`,
	Args: cobra.NoArgs,
	RunE: runGen,
}

func init() {
	genCmd.Flags().Int("count", 10, "number of expressions")
	genCmd.Flags().Bool("invalid", false, "generate invalid expressions")
	genCmd.Flags().String("shape", "", "restrict to one shape")
	genCmd.Flags().Uint64("seed", 0, "random seed (0 = random)")
	genCmd.Flags().Bool("show-shape", false, "prefix each line with its shape")
}

func runGen(cmd *cobra.Command, args []string) error {
	count, err := cmd.Flags().GetInt("count")
	if err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("--count must not be negative, got %d", count)
	}
	invalid, err := cmd.Flags().GetBool("invalid")
	if err != nil {
		return err
	}
	shapeName, err := cmd.Flags().GetString("shape")
	if err != nil {
		return err
	}
	seed, err := cmd.Flags().GetUint64("seed")
	if err != nil {
		return err
	}
	showShape, err := cmd.Flags().GetBool("show-shape")
	if err != nil {
		return err
	}

	next, err := genFunc(grammar.New(newRand(seed)), invalid, shapeName)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for range count {
		expr, shape := next()
		if showShape {
			fmt.Fprintf(out, "%-14s %s\n", shape, expr)
		} else {
			fmt.Fprintln(out, expr)
		}
	}
	return nil
}

// genFunc resolves the flags into a producer of (expression, shape name).
func genFunc(g *grammar.Generator, invalid bool, shapeName string) (func() (string, string), error) {
	switch {
	case invalid && shapeName == "":
		return func() (string, string) {
			s, shape := g.GenerateInvalidShape()
			return s, shape.String()
		}, nil
	case invalid:
		shape, err := grammar.ParseInvalidShape(shapeName)
		if err != nil {
			return nil, err
		}
		return func() (string, string) { return g.InvalidOf(shape), shape.String() }, nil
	case shapeName == "":
		return func() (string, string) {
			s, shape := g.GenerateValidShape()
			return s, shape.String()
		}, nil
	default:
		shape, err := grammar.ParseValidShape(shapeName)
		if err != nil {
			return nil, err
		}
		return func() (string, string) { return g.ValidExprOf(shape).String(), shape.String() }, nil
	}
}

// newRand returns a PCG source; seed zero draws a random one.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, 0))
}
