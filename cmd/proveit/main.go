// Command proveit is the thin interactive shell over package core: it
// reads a proof script (stdin, -eval, or -load FILE), feeds it through
// core.Session.ProcessText, and prints the resulting status marker.
// It carries no session state of its own worth persisting across runs
// and has no history, variable bindings, or autosave — the core does
// not need them.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/orizon-lang/minihol/internal/cli"
	"github.com/orizon-lang/minihol/internal/core"
)

func main() {
	var (
		verbose    bool
		debugMode  bool
		jsonOutput bool
		evalStr    string
		loadFile   string
	)

	root := &cobra.Command{
		Use:   "proveit",
		Short: "minihol proof script driver",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cli.NewLogger(verbose, debugMode)

			text, err := scriptText(evalStr, loadFile)
			if err != nil {
				return err
			}

			log.Debug("processing %d bytes of script text", len(text))
			_, status := core.NewSession().ProcessText(text)

			if jsonOutput {
				fmt.Printf("{\"status\": %q}\n", status)
			} else {
				fmt.Println(status)
				log.Result(status)
			}
			if status != "all good" {
				os.Exit(1)
			}
			return nil
		},
	}

	root.Flags().BoolVar(&verbose, "verbose", false, "enable informational logging")
	root.Flags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	root.Flags().BoolVar(&jsonOutput, "json", false, "print the status as JSON")
	root.Flags().StringVar(&evalStr, "eval", "", "evaluate a script given directly on the command line")
	root.Flags().StringVar(&loadFile, "load", "", "evaluate a script loaded from FILE")

	if err := root.Execute(); err != nil {
		cli.ExitWithError("%v", err)
	}
}

// scriptText resolves the script to run: -eval takes priority, then
// -load, then stdin.
func scriptText(evalStr, loadFile string) (string, error) {
	if evalStr != "" {
		return evalStr, nil
	}
	if loadFile != "" {
		data, err := os.ReadFile(loadFile)
		if err != nil {
			return "", fmt.Errorf("failed to load file %s: %w", loadFile, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
