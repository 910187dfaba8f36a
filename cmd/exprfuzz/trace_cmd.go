package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"exprfuzz/internal/trace"
)

var traceCmd = &cobra.Command{
	Use:   "trace <file.msgpack>",
	Short: "Print a binary trace file as text or NDJSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runTraceShow,
}

func init() {
	traceCmd.Flags().String("format", "text", "output format (text|ndjson)")
	traceCmd.Flags().Bool("findings", false, "print finding events only")
}

func runTraceShow(cmd *cobra.Command, args []string) error {
	formatName, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format, err := trace.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if format == trace.FormatAuto || format == trace.FormatMsgpack {
		format = trace.FormatText
	}
	onlyFindings, err := cmd.Flags().GetBool("findings")
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	out := cmd.OutOrStdout()
	return trace.ReadEvents(f, func(ev trace.Event) error {
		if onlyFindings && ev.Kind != trace.KindFinding {
			return nil
		}
		_, err := out.Write(trace.Encode(&ev, format))
		if err != nil {
			return fmt.Errorf("write: %w", err)
		}
		return nil
	})
}
