// fmsinfo is a CLI utility for inspecting FMS field-mesh files.
package main

import (
	"fmt"
	"os"

	"github.com/Faultbox/meshview/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "fields":
		cmdFields(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		// Bare path is shorthand for info
		if _, err := os.Stat(command); err == nil {
			cmdInfo(os.Args[1:])
			return
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`fmsinfo - FMS field-mesh file utility

Usage:
  fmsinfo <command> [options]

Commands:
  info <file.fms>     Show mesh summary
  fields <file.fms>   List fields and their components

Examples:
  fmsinfo info volume.fms
  fmsinfo fields volume.fms`)
}

func cmdInfo(args []string) {
	f := load(args, "info")

	fmt.Printf("File:        %s\n", args[0])
	fmt.Printf("Version:     %s\n", f.Version)
	fmt.Printf("Vertices:    %d\n", f.VertexCount)
	fmt.Printf("Triangles:   %d\n", len(f.Triangles)/3)
	fmt.Printf("Tetrahedra:  %d\n", len(f.Tetrahedra)/4)
	fmt.Printf("Fields:      %d\n", len(f.Fields))
}

func cmdFields(args []string) {
	f := load(args, "fields")

	if len(f.Fields) == 0 {
		fmt.Println("No fields.")
		return
	}
	for _, field := range f.Fields {
		fmt.Printf("%s\n", field.Name)
		for _, c := range field.Components {
			lo, hi := valueRange(c.Values)
			fmt.Printf("  .%-12s %8d values  [%g, %g]\n", c.Name, len(c.Values), lo, hi)
		}
	}
}

func load(args []string, cmd string) *formats.FMS {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: fmsinfo %s <file.fms>\n", cmd)
		os.Exit(1)
	}

	f, err := formats.LoadFMS(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return f
}

func valueRange(values []float32) (float32, float32) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
