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

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/numgrok"
	"github.com/bufbuild/numgrok/locale"
)

// Config is the settings file accepted by -config.
type Config struct {
	Mode        string   `yaml:"mode"`        // One of the keys of modes. Defaults to "number".
	Options     []string `yaml:"options"`     // Names accepted by numgrok.ParseOptions.
	Locale      string   `yaml:"locale"`      // A BCP 47 language tag.
	Parallelism int      `yaml:"parallelism"` // Zero means the number of CPUs.
}

// LoadConfig reads a Config from a YAML file. Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	text, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(text))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Runner validates the config and builds a Runner from it.
func (c Config) Runner() (*Runner, error) {
	name := c.Mode
	if name == "" {
		name = "number"
	}
	m, ok := modes[name]
	if !ok {
		return nil, fmt.Errorf("unknown mode %q; want one of %v", name, modeNames())
	}

	opts, err := numgrok.ParseOptions(c.Options...)
	if err != nil {
		return nil, err
	}

	var radix locale.Radix = locale.Standard
	if c.Locale != "" {
		tag, err := language.Parse(c.Locale)
		if err != nil {
			return nil, fmt.Errorf("bad locale %q: %w", c.Locale, err)
		}
		radix = locale.ForTag(tag)
	}

	return &Runner{
		mode:        m,
		opts:        opts,
		radix:       radix,
		parallelism: c.Parallelism,
	}, nil
}

func modeNames() []string {
	names := make([]string, 0, len(modes))
	for name := range modes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
