// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

// Command bitwuzla is the SMT front end: it reads an SMT-LIB v2 or
// BTOR file (decided by extension), drives a solver session, and
// prints results as SMT-LIB text.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/matthewsot/bitwuzla/api"
	"github.com/matthewsot/bitwuzla/engine"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const copyright = `Copyright 2026 The Bitwuzla-Go Authors.
This software is released under the terms in the LICENSE file.`

func main() {
	var (
		showVersion   bool
		showCopyright bool
		aigerPath     string
	)
	optVals := map[string]interface{}{}

	root := &cobra.Command{
		Use:           "bitwuzla [options] <input>",
		Short:         "an SMT solver for bit-vectors, floating-point, arrays and uninterpreted functions",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Println(api.Version)
				return nil
			}
			if showCopyright {
				fmt.Println(copyright)
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("no input file")
			}
			collectFlags(cmd.Flags(), optVals)
			opts, err := api.OptionsFromMap(optVals)
			if err != nil {
				return err
			}
			return run(args[0], opts, aigerPath)
		},
	}

	root.Flags().BoolVarP(&showVersion, "version", "V", false, "print version and exit")
	root.Flags().BoolVarP(&showCopyright, "copyright", "c", false, "print copyright and exit")
	root.Flags().StringVar(&aigerPath, "print-aiger", "", "write the bit-blasted circuit to this file as ascii aiger")
	registerOptionFlags(root.Flags())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[error] %s\n", err)
		os.Exit(1)
	}
}

// registerOptionFlags exposes every recognised option as a flag with
// its short and long name.
func registerOptionFlags(fs *pflag.FlagSet) {
	for _, info := range engine.Describe() {
		short := info.Short
		// -c and -V are taken by the fixed surface
		if short == "c" || short == "V" {
			short = ""
		}
		switch info.Kind {
		case engine.OptBool:
			fs.BoolP(info.Long, short, info.Default.(bool), info.Desc)
		case engine.OptUint:
			fs.Uint64P(info.Long, short, info.Default.(uint64), info.Desc)
		case engine.OptMode:
			desc := fmt.Sprintf("%s (%s)", info.Desc, strings.Join(info.Modes, "|"))
			fs.StringP(info.Long, short, info.Default.(string), desc)
		case engine.OptString:
			fs.StringP(info.Long, short, info.Default.(string), info.Desc)
		}
	}
}

func collectFlags(fs *pflag.FlagSet, into map[string]interface{}) {
	for _, info := range engine.Describe() {
		f := fs.Lookup(info.Long)
		if f == nil || !f.Changed {
			continue
		}
		switch info.Kind {
		case engine.OptBool:
			v, _ := strconv.ParseBool(f.Value.String())
			into[info.Long] = v
		case engine.OptUint:
			v, _ := strconv.ParseUint(f.Value.String(), 10, 64)
			into[info.Long] = v
		case engine.OptMode, engine.OptString:
			into[info.Long] = f.Value.String()
		}
	}
}

func run(path string, opts api.Options, aigerPath string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	var b *api.Bitwuzla
	switch {
	case strings.HasSuffix(path, ".smt2"):
		b, err = runSmt2(f, opts)
	case strings.HasSuffix(path, ".btor"):
		b, err = runBtor(f, opts)
	default:
		return fmt.Errorf("unknown input extension on %q (want .smt2 or .btor)", path)
	}
	if err != nil {
		return err
	}
	if aigerPath != "" && b != nil {
		out, err := os.Create(aigerPath)
		if err != nil {
			return err
		}
		defer out.Close()
		return b.WriteAiger(out)
	}
	return nil
}
