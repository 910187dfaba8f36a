package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"exprfuzz/internal/oracle"
)

var execCmd = &cobra.Command{
	Use:   "exec [expression]",
	Short: "Run one candidate against the target and classify it",
	Long: `Exec runs a single candidate through the same oracle a campaign uses and
prints the classification. Without an argument the candidate is read from
stdin. The exit status is 0 for success and expected errors and 1 for
timeouts and crashes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().Duration("timeout", 0, "per-run timeout (default from config)")
	execCmd.Flags().String("target", "", "target command line, split on whitespace")
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyRunFlags(cmd, &cfg); err != nil {
		return err
	}

	var candidate string
	if len(args) == 1 {
		candidate = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read candidate: %w", err)
		}
		candidate = string(data)
	}

	_, cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	runner := oracle.NewRunner(cfg.Target.Command, cfg.Campaign.Timeout.Duration)
	if _, err := runner.Resolve(); err != nil {
		return err
	}
	out := runner.Run(cmd.Context(), candidate)
	printOutcome(cmd.OutOrStdout(), out)
	if out.IsFinding() {
		return fmt.Errorf("%s: %s", out.Kind, strings.TrimSpace(out.Summary()))
	}
	return nil
}

func printOutcome(w io.Writer, out oracle.Outcome) {
	c := successColor
	switch out.Kind {
	case oracle.ExpectedError:
		c = errorColor
	case oracle.Timeout, oracle.Crash:
		c = findingColor
	}
	c.Fprintf(w, "%s", out.Kind)
	fmt.Fprintf(w, " (exit %d, %s)\n", out.ExitCode, out.Elapsed.Round(time.Millisecond))
	switch out.Kind {
	case oracle.Success:
		fmt.Fprintf(w, "  stdout: %s\n", out.Output)
	case oracle.ExpectedError:
		fmt.Fprintf(w, "  kind:   %s\n", out.ErrorKind.Token())
		fmt.Fprintf(w, "  stderr: %s\n", out.Stderr)
	case oracle.Crash:
		fmt.Fprintf(w, "  reason: %s\n", out.Err)
		if out.Stderr != "" {
			fmt.Fprintf(w, "  stderr: %s\n", out.Stderr)
		}
	}
}
