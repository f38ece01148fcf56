// Package main provides a pointer to the rv64sim CLI.
// rv64sim is a functional RV64 instruction-set simulator.
//
// For the full CLI, use: go run ./cmd/rv64sim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("rv64sim - RV64 instruction-set simulator")
	fmt.Println("")
	fmt.Println("Usage: rv64sim [options] <program>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config    Path to TOML configuration file")
	fmt.Println("  -entry     Entry point for a raw flat image")
	fmt.Println("  -proxy     Enable proxy syscalls")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/rv64sim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/rv64sim' instead.")
	}
}
