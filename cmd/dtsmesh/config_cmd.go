package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/dtsmesh/internal/config"
)

func cmdConfig(args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		fmt.Fprintln(stderr, "Usage: dtsmesh config <init|show> [options]")
		return errUsage
	}

	switch args[0] {
	case "init":
		return cmdConfigInit(args[1:], stdout, stderr)
	case "show":
		cfg, _, err := setup("config show", args[1:], stderr, 0, "config show [options]")
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	default:
		fmt.Fprintf(stderr, "Unknown config command: %s\n", args[0])
		return errUsage
	}
}

// cmdConfigInit writes the default config, refusing to replace an existing
// file unless -force is given.
func cmdConfigInit(args []string, stdout, stderr io.Writer) error {
	fset := flag.NewFlagSet("config init", flag.ContinueOnError)
	fset.SetOutput(stderr)
	force := fset.Bool("force", false, "Overwrite an existing config file")
	if err := fset.Parse(args); err != nil {
		return err
	}

	path := config.DefaultPath()
	if fset.NArg() > 0 {
		path = fset.Arg(0)
	}
	if _, err := os.Stat(path); err == nil && !*force {
		return fmt.Errorf("%s already exists, use -force to overwrite", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg := config.Default()
	var err error
	if fset.NArg() > 0 {
		err = cfg.SaveTo(path)
	} else {
		err = cfg.Save()
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return nil
}
