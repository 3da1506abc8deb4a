package main

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/simplymiply/miply/asm"
	"github.com/simplymiply/miply/cfg"
)

var graphOutput string

// `miply graph` command
func graphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [flags] file.mpsm",
		Short: "Write a listing's control flow graph in DOT form",
		Args:  cobra.ExactArgs(1),
		RunE:  runGraph,
	}
	cmd.Flags().StringVarP(&graphOutput, "output", "o", "-", "output file")
	return cmd
}

func runGraph(cmd *cobra.Command, args []string) error {
	in, err := openInput(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer in.Close()

	prog, err := new(asm.Assembler).Parse(in)
	if err != nil {
		return errors.Wrap(err, args[0])
	}

	g, err := cfg.Build(cfg.FromProgram(prog))
	if err != nil {
		return err
	}

	out, err := createOutput(graphOutput, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	if name == "" || name == "-" {
		name = "program"
	}
	if err := cfg.WriteDOT(g, name, out); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	logger.Infow("graphed", "input", args[0], "nodes", len(prog.Lines))
	return nil
}
