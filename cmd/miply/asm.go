package main

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/simplymiply/miply/asm"
	"github.com/simplymiply/miply/object"
)

var (
	asmOutput  string
	asmDefines []string
	asmWatch   bool
)

// `miply asm` command
func asmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asm [flags] file.mpsm...",
		Short: "Assemble listings into word streams",
		Long:  "Assemble listings into word streams, one .bin per input.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAsm,
	}
	cmd.Flags().StringVarP(&asmOutput, "output", "o", "", "output file (default input with .bin)")
	cmd.Flags().StringArrayVarP(&asmDefines, "define", "D", nil, "predefine a NAME=VALUE equate")
	cmd.Flags().BoolVarP(&asmWatch, "watch", "w", false, "rebuild whenever an input changes")
	return cmd
}

func runAsm(cmd *cobra.Command, args []string) error {
	if asmOutput != "" && len(args) != 1 {
		return errors.New("-o takes a single input file")
	}

	if asmWatch {
		return watch(cmd, args, assembleAll)
	}
	return assembleAll(cmd, args)
}

func assembleAll(cmd *cobra.Command, paths []string) error {
	group := new(errgroup.Group)
	for _, path := range paths {
		group.Go(func() error {
			return assembleFile(cmd, path)
		})
	}
	return group.Wait()
}

func assembleFile(cmd *cobra.Command, path string) error {
	in, err := openInput(path, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer in.Close()

	a := &asm.Assembler{Verbose: verbose}
	for _, def := range asmDefines {
		name, value, ok := strings.Cut(def, "=")
		if !ok {
			return errors.Errorf("define %q is not NAME=VALUE", def)
		}
		a.Predefine(name, value)
	}

	prog, err := a.Parse(in)
	if err != nil {
		return errors.Wrap(err, path)
	}

	out, err := createOutput(outputPath(path, asmOutput, ".bin"), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if err := object.Write(out, prog.Words()); err != nil {
		out.Close()
		return errors.Wrap(err, path)
	}
	if err := out.Close(); err != nil {
		return err
	}

	logger.Infow("assembled", "input", path, "words", len(prog.Lines), "labels", len(prog.Labels))
	return nil
}

// outputPath derives an output path from the input path by swapping
// the extension. An explicit -o wins; stdin pairs with stdout.
func outputPath(input, explicit, ext string) string {
	if explicit != "" {
		return explicit
	}
	if input == "-" {
		return "-"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}
