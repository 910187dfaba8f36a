package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"exprfuzz/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "exprfuzz",
	Short: "Mutation-based fuzzer for sandboxed expression evaluators",
	Long: `exprfuzz feeds generated and mutated expressions to an evaluation target
and classifies every run as success, expected error, timeout or crash.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return applyColorMode(cmd)
	},
}

// main registers subcommands and global flags and runs the root command.
// Any returned error exits with status 1.
func main() {
	// версия для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(mutateCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(corpusCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("config", "", "path to exprfuzz.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress per-trial output")
	rootCmd.PersistentFlags().String("trace", "", "trace output file; .ndjson and .msgpack pick the format (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept in ring mode")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "heartbeat interval for long campaigns (0 disables)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile of the fuzzer to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile of the fuzzer to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace of the fuzzer to file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func applyColorMode(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}
