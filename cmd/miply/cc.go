package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/simplymiply/miply/compiler"
)

var ccOutput string

// `miply cc` command
func ccCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cc [flags] file.c",
		Short: "Compile a C subset source into a listing",
		Args:  cobra.ExactArgs(1),
		RunE:  runCC,
	}
	cmd.Flags().StringVarP(&ccOutput, "output", "o", "", "output file (default input with .mpsm)")
	return cmd
}

func runCC(cmd *cobra.Command, args []string) error {
	in, err := openInput(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := createOutput(outputPath(args[0], ccOutput, ".mpsm"), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	cc := &compiler.Compiler{Verbose: verbose}
	if err := cc.Compile(in, out); err != nil {
		out.Close()
		return errors.Wrap(err, args[0])
	}
	if err := out.Close(); err != nil {
		return err
	}

	logger.Infow("compiled", "input", args[0])
	return nil
}
