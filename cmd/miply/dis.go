package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/simplymiply/miply/dis"
)

var disOutput string

// `miply dis` command
func disCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dis [flags] file.bin",
		Short: "Disassemble a word stream into a listing",
		Args:  cobra.ExactArgs(1),
		RunE:  runDis,
	}
	cmd.Flags().StringVarP(&disOutput, "output", "o", "-", "output file")
	return cmd
}

func runDis(cmd *cobra.Command, args []string) error {
	in, err := openInput(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer in.Close()

	d := &dis.Disassembler{Verbose: verbose}
	listing, err := d.Read(in)
	if err != nil {
		return errors.Wrap(err, args[0])
	}

	out, err := createOutput(disOutput, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if err := listing.Render(out); err != nil {
		out.Close()
		return errors.Wrap(err, args[0])
	}
	if err := out.Close(); err != nil {
		return err
	}

	logger.Infow("disassembled", "input", args[0], "words", len(listing.Entries))
	return nil
}
