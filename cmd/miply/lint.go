package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/simplymiply/miply/lint"
	"github.com/simplymiply/miply/translate"
)

// `miply lint` command
func lintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint file.mpsm...",
		Short: "Check listings and report every fault",
		Long:  "Check listings and report every fault. Exits non-zero when any listing has errors.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runLint,
	}
}

func runLint(cmd *cobra.Command, args []string) error {
	printer := translate.Printer()

	failed := false
	for _, path := range args {
		in, err := openInput(path, cmd.InOrStdin())
		if err != nil {
			return err
		}

		res, err := lint.Check(in)
		in.Close()
		if err != nil {
			return errors.Wrap(err, path)
		}

		for _, d := range res.Diagnostics {
			printer.Fprintf(cmd.OutOrStdout(), "%v: %v\n", path, d)
		}
		if res.HasErrors() {
			failed = true
		}
	}

	if failed {
		return errors.New("lint failed")
	}
	return nil
}
