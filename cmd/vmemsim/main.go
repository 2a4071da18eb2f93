// Command vmemsim runs a virtual-memory script file against a fresh
// Engine and prints its event trace to stdout.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"vmemsim"
	"vmemsim/script"
	"vmemsim/storage/execimage"
	"vmemsim/storage/swapfile"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: vmemsim <script-file>")
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(scriptPath string) error {
	f, err := os.Open(scriptPath)
	if err != nil {
		return fmt.Errorf("opening script file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	cfg, err := script.ParseHeader(r)
	if err != nil {
		return fmt.Errorf("Error: Invalid script format: %w", err)
	}

	exe, err := execimage.Open(cfg.ExePath)
	if err != nil {
		return err
	}

	swap, err := swapfile.Open(cfg.SwapPath, cfg.SwapSize, cfg.PageSize)
	if err != nil {
		exe.Close()
		return err
	}

	engine, verr := vmemsim.NewEngine(cfg, swap, exe)
	if verr != vmemsim.ErrOk {
		exe.Close()
		swap.Close()
		return fmt.Errorf("Error: %s", verr)
	}
	defer engine.Close()

	script.Run(r, engine, os.Stderr)
	return nil
}
