// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// numgrok reads numerals, one per line, and prints what it makes of them as
// tab-separated values.
//
// Usage:
//
//	numgrok [-config numgrok.yaml] [-mode number] [-options a,b] [-locale de] [-parallelism N] [file...]
//
// With no files, standard input is read. Diagnostics are printed to standard
// error, prefixed with the file, line and column they apply to. Flags override
// whatever the config file sets.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
)

func main() {
	if err := Main(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "numgrok: %s\n", err)
		os.Exit(1)
	}
}

// Main runs the command with the given arguments.
func Main(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("numgrok", flag.ContinueOnError)
	var (
		config      = fs.String("config", "", "YAML file to load settings from")
		mode        = fs.String("mode", "", "what to grok each line as: "+strings.Join(modeNames(), ", "))
		options     = fs.String("options", "", "comma-separated scanning options")
		locale      = fs.String("locale", "", "BCP 47 tag of the locale whose radix to accept")
		parallelism = fs.Int("parallelism", 0, "how many lines or files to process at once")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	var cfg Config
	if *config != "" {
		loaded, err := LoadConfig(*config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *mode
		case "options":
			cfg.Options = nil
			for _, o := range strings.Split(*options, ",") {
				if o = strings.TrimSpace(o); o != "" {
					cfg.Options = append(cfg.Options, o)
				}
			}
		case "locale":
			cfg.Locale = *locale
		case "parallelism":
			cfg.Parallelism = *parallelism
		}
	})

	r, err := cfg.Runner()
	if err != nil {
		return err
	}

	if fs.NArg() == 0 {
		return r.Run(ctx, "<stdin>", os.Stdin, os.Stdout, os.Stderr)
	}
	return r.RunFiles(ctx, fs.Args(), os.Stdout, os.Stderr)
}
