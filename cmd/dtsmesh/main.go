// dtsmesh reads triangulated membrane meshes and reports per-vertex
// curvature, normals and areas.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// errUsage marks errors already explained by a usage message.
var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		printUsage(stderr)
		return errUsage
	}

	command, rest := args[0], args[1:]
	switch command {
	case "info":
		return cmdInfo(rest, stdout, stderr)
	case "curvature", "curv":
		return cmdCurvature(rest, stdout, stderr)
	case "export", "convert":
		return cmdExport(rest, stdout, stderr)
	case "config":
		return cmdConfig(rest, stdout, stderr)
	case "version":
		fmt.Fprintf(stdout, "dtsmesh %s\n", version)
		return nil
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return errUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `dtsmesh - membrane mesh curvature utility

Usage:
  dtsmesh <command> [options] <file>

Commands:
  info <mesh>                 Show mesh and curvature summary
  curvature <mesh>            Print per-vertex curvature, normal and area
  export <mesh> <out>         Convert between .tsi and .yaml/.yml
  config init [-force] [file] Write the default config (default: user config dir)
  config show                 Print the effective config
  version                     Print the version

Options (all commands):
  -config <file>   Config file (default ./dtsmesh.yaml or the user config dir)
  -debug           Enable debug logging
  -format <fmt>    table, csv or yaml
  -out <file>      Write output to a file
  -box x,y,z       Periodic box for meshes that do not carry one
  -precision <n>   Digits after the decimal point

Examples:
  dtsmesh info vesicle.tsi
  dtsmesh curvature -format csv -out curvature.csv vesicle.tsi
  dtsmesh export -box 40,40,40 patch.yaml patch.tsi`)
}
