// Command exprtarget is the reference evaluation target. It reads one
// expression from stdin and answers in the exprfuzz protocol.
package main

import (
	"fmt"
	"os"

	"exprfuzz/internal/protocol"
	"exprfuzz/internal/target"
)

func main() {
	opts, err := target.OptionsFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, protocol.FormatError(protocol.UnexpectedError, err.Error()))
		os.Exit(protocol.ExitFailure)
	}
	os.Exit(target.Main(os.Stdin, os.Stdout, os.Stderr, opts))
}
