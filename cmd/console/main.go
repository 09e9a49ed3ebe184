package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"hackasm/pkg/cpu"
	"hackasm/pkg/utils"
)

type config struct {
	maxCycles  int
	screenshot string
	scale      int
	snapshot   string
	restore    string
	key        int
	dump       string
}

func main() {
	cfg := config{}
	flag.IntVar(&cfg.maxCycles, "max-cycles", 10_000_000, "stop after this many instructions")
	flag.StringVar(&cfg.screenshot, "screenshot", "", "write the screen to this PNG file when done")
	flag.IntVar(&cfg.scale, "scale", 1, "screenshot scale factor")
	flag.StringVar(&cfg.snapshot, "snapshot", "", "write a CPU snapshot archive when done")
	flag.StringVar(&cfg.restore, "restore", "", "resume from a snapshot archive instead of loading a program")
	flag.IntVar(&cfg.key, "key", 0, "key code held on KBD for the whole run")
	flag.StringVar(&cfg.dump, "dump", "0-15", "RAM range to print, as first-last")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: console [flags] <program.asm|program.hack>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	vm, err := setup(cfg, flag.Args())
	if err != nil {
		log.Fatalf("Failed to load program: %v", err)
	}

	if err := run(os.Stdout, vm, cfg); err != nil {
		log.Fatal(err)
	}
}

func setup(cfg config, args []string) (*cpu.CPU, error) {
	vm := cpu.NewCPU()

	if cfg.restore != "" {
		if err := vm.RestoreFromFile(cfg.restore); err != nil {
			return nil, err
		}
		return vm, nil
	}

	if len(args) != 1 {
		return nil, fmt.Errorf("expected one program file, got %d", len(args))
	}

	fullPath, _, err := utils.GetPathInfo(args[0])
	if err != nil {
		return nil, err
	}
	words, _, err := utils.LoadProgram(fullPath)
	if err != nil {
		return nil, err
	}
	if err := vm.LoadROM(words); err != nil {
		return nil, err
	}
	return vm, nil
}

func run(w io.Writer, vm *cpu.CPU, cfg config) error {
	first, last, err := parseRange(cfg.dump)
	if err != nil {
		return err
	}

	if cfg.key != 0 {
		vm.PushKey(uint16(cfg.key))
	}
	ran := vm.RunCycles(cfg.maxCycles)

	state := "halted"
	if !vm.Halted {
		state = "cycle limit reached"
	}
	fmt.Fprintf(w, "%s after %d cycles: PC=%d A=%d D=%d\n", state, ran, vm.PC, vm.A, int16(vm.D))
	for addr := first; addr <= last; addr++ {
		fmt.Fprintf(w, "RAM[%d] = %d\n", addr, int16(vm.Read(uint16(addr))))
	}

	if cfg.screenshot != "" {
		if err := vm.SaveScreenshot(cfg.screenshot, cfg.scale); err != nil {
			return fmt.Errorf("screenshot failed: %w", err)
		}
		fmt.Fprintf(w, "screen -> %s\n", cfg.screenshot)
	}
	if cfg.snapshot != "" {
		if err := vm.HibernateToFile(cfg.snapshot); err != nil {
			return fmt.Errorf("snapshot failed: %w", err)
		}
		fmt.Fprintf(w, "snapshot -> %s\n", cfg.snapshot)
	}
	return nil
}

// parseRange parses "first-last" (or a single address) into an inclusive
// RAM range.
func parseRange(s string) (int, int, error) {
	if s == "" {
		return 0, -1, nil
	}

	var first, last int
	if n, err := fmt.Sscanf(s, "%d-%d", &first, &last); err != nil || n != 2 {
		if _, err := fmt.Sscanf(s, "%d", &first); err != nil {
			return 0, 0, fmt.Errorf("invalid RAM range %q", s)
		}
		last = first
	}
	if first < 0 || last >= cpu.RAMSize || first > last {
		return 0, 0, fmt.Errorf("invalid RAM range %q", s)
	}
	return first, last, nil
}
