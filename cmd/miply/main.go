// Copyright 2025, The SimplyMiply Project

// miply drives the SimplyMiply toolchain: it assembles, disassembles,
// compiles, lints, and graphs listings.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"go.uber.org/zap"
)

var (
	rootCmd = &cobra.Command{
		Use:           "miply",
		Short:         "SimplyMiply toolchain",
		Long:          "miply assembles, disassembles, compiles, lints, and graphs SimplyMiply programs.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	verbose bool

	fs     = afero.NewOsFs()
	logger = zap.NewNop().Sugar()
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose mode")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			zl, _ := zap.NewDevelopment()
			logger = zl.Sugar()
			atexit.Register(func() { _ = logger.Sync() })
		}
	}

	rootCmd.AddCommand(asmCmd())
	rootCmd.AddCommand(disCmd())
	rootCmd.AddCommand(ccCmd())
	rootCmd.AddCommand(lintCmd())
	rootCmd.AddCommand(graphCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
	atexit.Exit(0)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "miply: %v\n", err)
	atexit.Exit(1)
}

// openInput opens a named file, or hands back the command input for
// "-".
func openInput(path string, def io.Reader) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(def), nil
	}
	return fs.Open(path)
}

// createOutput creates a named file, or hands back the command output
// for "-".
func createOutput(path string, def io.Writer) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{def}, nil
	}
	return fs.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
