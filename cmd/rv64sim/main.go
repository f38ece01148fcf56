// Package main provides the entry point for rv64sim, a functional RV64
// instruction-set simulator.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/archlab/rv64core/config"
	"github.com/archlab/rv64core/emu"
	"github.com/archlab/rv64core/loader"
)

var (
	configPath = flag.String("config", "", "Path to TOML configuration file")
	entryFlag  = flag.Uint64("entry", 0, "Entry point for a raw flat image")
	verbose    = flag.Bool("v", false, "Verbose output: register dump and instruction count")
	proxy      = flag.Bool("proxy", false, "Enable proxy syscalls for statically linked benchmark binaries")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: rv64sim [options] <program>\n\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := loadConfig()
	programPath := flag.Arg(0)

	exitCode, err := run(cfg, programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rv64sim: %v\n", err)
		os.Exit(1)
	}
	os.Exit(int(exitCode))
}

func loadConfig() *config.Config {
	if *configPath != "" {
		cfg, err := config.LoadFrom(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rv64sim: %v\n", err)
			os.Exit(1)
		}
		return cfg
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "rv64sim: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// isELF reports whether the file at path begins with the ELF magic.
func isELF(path string) bool {
	f, err := os.Open(path) // #nosec G304 -- user-supplied program path
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()
	magic := make([]byte, 4)
	if _, err := f.Read(magic); err != nil {
		return false
	}
	return bytes.Equal(magic, []byte{0x7f, 'E', 'L', 'F'})
}

func run(cfg *config.Config, programPath string) (int64, error) {
	opts := []emu.EmulatorOption{
		emu.WithMemorySize(cfg.Execution.MemorySize),
	}
	if cfg.Execution.MaxInstructions > 0 {
		opts = append(opts, emu.WithMaxInstructions(cfg.Execution.MaxInstructions))
	}
	if *proxy || cfg.Syscall.ProxyMode {
		opts = append(opts, emu.WithProxySyscalls())
	}

	var entry uint64
	var image []byte

	if isELF(programPath) {
		prog, err := loader.Load(programPath)
		if err != nil {
			return 0, fmt.Errorf("loading ELF program: %w", err)
		}
		image, err = prog.Flatten(cfg.Execution.MemorySize)
		if err != nil {
			return 0, fmt.Errorf("laying out ELF program: %w", err)
		}
		entry = prog.EntryPoint
		opts = append(opts, emu.WithStackPointer(loader.DefaultStackTop))
	} else {
		raw, err := loader.LoadFlat(programPath)
		if err != nil {
			return 0, fmt.Errorf("loading flat program: %w", err)
		}
		if uint64(len(raw)) > cfg.Execution.MemorySize {
			return 0, fmt.Errorf("flat program is %d bytes, memory is %d bytes", len(raw), cfg.Execution.MemorySize)
		}
		image = raw
		entry = *entryFlag
	}

	if cfg.Execution.ExitAddress != 0 {
		opts = append(opts, emu.WithExitAddress(cfg.Execution.ExitAddress))
	}

	emulator := emu.NewEmulator(opts...)
	emulator.LoadProgram(entry, image)

	exitCode := emulator.Run()

	if cfg.Execution.ExitAddress != 0 {
		if emulator.Memory().CheckResult() {
			fmt.Println("Result: PASS")
		} else {
			fmt.Println("Result: FAIL")
		}
	}

	if *verbose {
		fmt.Printf("\nProgram: %s\n", programPath)
		fmt.Printf("Entry point: 0x%x\n", entry)
		fmt.Printf("Exit code: %d\n", exitCode)
		fmt.Printf("Instructions executed: %d\n", emulator.InstructionCount())
		fmt.Printf("Final PC: 0x%x\n", emulator.RegFile().PC)
		for i, v := range emulator.RegFile().X {
			fmt.Printf("  x%-2d = 0x%016x\n", i, v)
		}
	}

	return exitCode, nil
}
