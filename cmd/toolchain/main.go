// Command toolchain is the CLI front end over the three batch operations:
// assembling a program, burning the microcode ROM images, and compiling a
// C-subset source file down to assembly.
//
// Grounded on oisee-z80-optimizer/cmd/z80opt/main.go's cobra wiring: one
// root command, one cobra.Command per subcommand with flags bound via
// cmd.Flags().*Var, RunE returning an error straight from the matching
// internal package, and Execute's error turned into a non-zero exit code.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"microtoolchain/internal/asm"
	"microtoolchain/internal/burner"
	"microtoolchain/internal/compiler/codegen"
	"microtoolchain/internal/compiler/lexer"
	"microtoolchain/internal/compiler/parser"
	"microtoolchain/internal/isa"
	"microtoolchain/internal/rawimage"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "toolchain",
		Short: "Assembler, microcode burner, and compiler for an 8-bit microcoded CPU",
	}

	rootCmd.AddCommand(assembleCmd(), burnCmd(), compileCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func assembleCmd() *cobra.Command {
	var output string
	var listing bool

	cmd := &cobra.Command{
		Use:   "assemble <file.as>",
		Short: "Assemble a program into a RAM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("toolchain: open source: %w", err)
			}
			defer in.Close()

			var lw *asm.ListingWriter
			if listing {
				lw = asm.NewListingWriter(os.Stdout)
			}

			prog, err := asm.Assemble(in, isa.All, lw)
			if err != nil {
				return err
			}
			bytes, err := prog.Bytes()
			if err != nil {
				return err
			}
			return rawimage.WriteBytes(output, bytes)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "ram.img", "Output RAM image path")
	cmd.Flags().BoolVar(&listing, "listing", false, "Print an address/byte/source listing to stdout")
	return cmd
}

func burnCmd() *cobra.Command {
	var rom1Path, rom2Path string

	cmd := &cobra.Command{
		Use:   "burn",
		Short: "Expand the ISA table into the two microcode ROM images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rom1, rom2 := burner.Expand(isa.All)
			return burner.WriteROMImages(rom1Path, rom2Path, rom1, rom2)
		},
	}
	cmd.Flags().StringVar(&rom1Path, "o1", "rom01.img", "Output path for ROM1")
	cmd.Flags().StringVar(&rom2Path, "o2", "rom02.img", "Output path for ROM2")
	return cmd
}

func compileCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compile <file.src>",
		Short: "Compile a C-subset source file to assembly text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("toolchain: read source: %w", err)
			}
			tokens, err := lexer.Lex(string(source))
			if err != nil {
				return err
			}
			prog, err := parser.Parse(tokens)
			if err != nil {
				return err
			}
			out, err := codegen.Generate(prog)
			if err != nil {
				return err
			}
			return writeFileAtomic(output, []byte(out))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "source.as", "Output assembly file path")
	return cmd
}

// writeFileAtomic commits content to path via a temp file and rename, the
// same scoped-acquisition discipline rawimage.Write uses for RAM and ROM
// images, so a failure partway through compiling never leaves a partial
// assembly file for a downstream tool to pick up.
func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".toolchain-*.tmp")
	if err != nil {
		return fmt.Errorf("toolchain: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("toolchain: write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("toolchain: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("toolchain: rename into place: %w", err)
	}
	return nil
}
