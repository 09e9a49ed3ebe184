//go:build !js

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hackasm/pkg/asm"
	"hackasm/pkg/cpu"
	"hackasm/pkg/utils"
)

type options struct {
	outPath     string
	showSymbols bool
	runProgram  bool
	maxCycles   int
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "hackasm [file.asm]",
		Short: "Assemble Hack assembly into Hack machine code",
		Long: `Hackasm translates a Hack assembly program into the textual ".hack"
format: one line of 16 binary digits per instruction.

With a file argument the output goes next to the input with a ".hack"
extension unless -o is given. Without an argument, or with "-", the program
is read from stdin and written to stdout.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "output .hack path (default: input with .hack extension, or stdout)")
	cmd.Flags().BoolVar(&opts.showSymbols, "symbols", false, "print the symbol table to stderr")
	cmd.Flags().BoolVar(&opts.runProgram, "run", false, "run the assembled program on the Hack CPU")
	cmd.Flags().IntVar(&opts.maxCycles, "max-cycles", 10_000_000, "instruction limit for --run")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	inPath := ""
	if len(args) == 1 && args[0] != "-" {
		inPath = args[0]
	}

	lines, err := readSource(cmd, inPath)
	if err != nil {
		return err
	}

	assembler := asm.NewAssembler()
	words, _, err := assembler.AssembleSource(lines)
	if err != nil {
		return fmt.Errorf("assembly failed: %w", err)
	}

	for _, s := range assembler.Symbols().Shadowed() {
		fmt.Fprintf(stderr, "warning: label '%s' on line %d ignored, already bound to %d\n", s.Name, s.Line, boundAddress(assembler.Symbols(), s.Name))
	}
	if opts.showSymbols {
		printSymbols(stderr, assembler.Symbols())
	}

	code := make([]string, len(words))
	for i, w := range words {
		code[i] = asm.Format(w)
	}

	output := opts.outPath
	if output == "" && inPath != "" {
		output = utils.ReplaceExt(inPath, ".hack")
	}

	if output == "" || output == "-" {
		if err := asm.WriteLines(stdout, code); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		if err := writeHack(output, code); err != nil {
			return fmt.Errorf("failed to write output file %q: %w", output, err)
		}
		fmt.Fprintf(stderr, "assembled %d instructions -> %s\n", len(words), output)
	}

	if opts.runProgram {
		return runWords(stderr, words, opts.maxCycles)
	}
	return nil
}

func readSource(cmd *cobra.Command, inPath string) ([]string, error) {
	if inPath == "" {
		return asm.ReadLines(cmd.InOrStdin())
	}

	f, err := os.Open(inPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %q: %w", inPath, err)
	}
	defer f.Close()

	return asm.ReadLines(f)
}

func writeHack(path string, code []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := asm.WriteLines(f, code); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func boundAddress(table *asm.SymbolTable, name string) uint16 {
	addr, _ := table.Lookup(name)
	return addr
}

func printSymbols(w io.Writer, table *asm.SymbolTable) {
	for _, s := range table.Entries() {
		fmt.Fprintf(w, "%-24s %5d\n", s.Name, s.Address)
	}
}

func runWords(w io.Writer, words []uint16, maxCycles int) error {
	vm := cpu.NewCPU()
	if err := vm.LoadROM(words); err != nil {
		return err
	}

	ran := vm.RunCycles(maxCycles)

	state := "halted"
	if !vm.Halted {
		state = "cycle limit reached"
	}
	fmt.Fprintf(w,
		"run complete (%s after %d cycles): PC=%d A=%d D=%d R0=%d R1=%d R2=%d\n",
		state,
		ran,
		vm.PC,
		vm.A,
		int16(vm.D),
		int16(vm.RAM[0]),
		int16(vm.RAM[1]),
		int16(vm.RAM[2]),
	)
	return nil
}
