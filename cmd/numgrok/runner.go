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
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bufbuild/numgrok"
	"github.com/bufbuild/numgrok/locale"
	"github.com/bufbuild/numgrok/nanbits"
	"github.com/bufbuild/numgrok/reporter"
)

// Runner groks lines of text according to a [Config].
type Runner struct {
	mode        *mode
	opts        numgrok.Options
	radix       locale.Radix
	parallelism int
}

// mode is a way of grokking a line.
type mode struct {
	columns []string
	// batch, if set, groks all lines at once. Otherwise, line is called for
	// each of them.
	batch func(ctx context.Context, b *numgrok.Batch, opts numgrok.Options, lines [][]byte) ([][]string, error)
	line  func(g *numgrok.Grokker, opts numgrok.Options, line []byte) []string
}

var modes = map[string]*mode{
	"number": {
		columns: []string{"outcome", "value", "float"},
		batch: func(ctx context.Context, b *numgrok.Batch, opts numgrok.Options, lines [][]byte) ([][]string, error) {
			ns, err := b.Numbers(ctx, opts, lines...)
			rows := make([][]string, len(ns))
			for i, n := range ns {
				value, float := "-", "-"
				if n.Outcome&(numgrok.Integer|numgrok.TooLarge) != 0 {
					value = strconv.FormatUint(n.Value, 10)
				}
				if n.Outcome&(numgrok.Infinity|numgrok.NaN) != 0 {
					float = formatFloat(n.Float)
				}
				rows[i] = []string{n.Outcome.String(), value, float}
			}
			return rows, err
		},
	},
	"atof": {
		columns: []string{"float", "len"},
		batch: func(ctx context.Context, b *numgrok.Batch, _ numgrok.Options, lines [][]byte) ([][]string, error) {
			fs, err := b.Floats(ctx, lines...)
			rows := make([][]string, len(fs))
			for i, f := range fs {
				rows[i] = []string{formatFloat(f.Value), strconv.Itoa(f.Len)}
			}
			return rows, err
		},
	},
	"bin": {columns: scanColumns, line: scanLine((*numgrok.Grokker).Bin)},
	"oct": {columns: scanColumns, line: scanLine((*numgrok.Grokker).Oct)},
	"hex": {columns: scanColumns, line: scanLine((*numgrok.Grokker).Hex)},
	"infnan": {
		columns: []string{"outcome", "float", "len"},
		line: func(g *numgrok.Grokker, _ numgrok.Options, line []byte) []string {
			r := g.InfNaN(line)
			float := "-"
			if r.Len > 0 {
				float = formatFloat(r.Float)
			}
			return []string{r.Outcome.String(), float, strconv.Itoa(r.Len)}
		},
	},
	"atou": {
		columns: []string{"ok", "value", "len"},
		line: func(_ *numgrok.Grokker, _ numgrok.Options, line []byte) []string {
			value, ok := numgrok.Atou(line)
			_, end, _ := numgrok.AtouPrefix(line)
			return []string{strconv.FormatBool(ok), strconv.FormatUint(value, 10), strconv.Itoa(end)}
		},
	},
}

var scanColumns = []string{"outcome", "value", "float", "len"}

func scanLine(scan func(*numgrok.Grokker, []byte, numgrok.Options) numgrok.Scan) func(*numgrok.Grokker, numgrok.Options, []byte) []string {
	return func(g *numgrok.Grokker, opts numgrok.Options, line []byte) []string {
		s := scan(g, line, opts)
		float := "-"
		if s.Outcome&numgrok.TooLarge != 0 {
			float = formatFloat(s.Float)
		}
		return []string{s.Outcome.String(), strconv.FormatUint(s.Value, 10), float, strconv.Itoa(s.Len)}
	}
}

// formatFloat formats f the way strconv does, except that NaNs show their
// payload and whether they are signaling.
func formatFloat(f float64) string {
	if !math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	var out strings.Builder
	if nanbits.IsSignaling(f) {
		out.WriteString("s")
	}
	out.WriteString("NaN")
	payload := bytes.TrimLeft(nanbits.Payload(f), "\x00")
	if len(payload) > 0 {
		fmt.Fprintf(&out, "(0x%s)", strings.TrimLeft(hex.EncodeToString(payload), "0"))
	}
	return out.String()
}

// Run groks each line of in, writing a table to out and diagnostics to
// errOut. name is what diagnostics call the input.
func (r *Runner) Run(ctx context.Context, name string, in io.Reader, out, errOut io.Writer) error {
	text, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	return r.grok(ctx, name, text, out, errOut)
}

// RunFiles is like [Runner.Run], but for several files at once. Output is
// written in the order the files are given.
func (r *Runner) RunFiles(ctx context.Context, paths []string, out, errOut io.Writer) error {
	type buffers struct{ out, err bytes.Buffer }
	bufs := make([]buffers, len(paths))

	grp, ctx := errgroup.WithContext(ctx)
	if r.parallelism > 0 {
		grp.SetLimit(r.parallelism)
	}
	for i, path := range paths {
		grp.Go(func() error {
			text, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			return r.grok(ctx, path, text, &bufs[i].out, &bufs[i].err)
		})
	}
	err := grp.Wait()

	for i := range bufs {
		if _, err := bufs[i].err.WriteTo(errOut); err != nil {
			return err
		}
		if _, err := bufs[i].out.WriteTo(out); err != nil {
			return err
		}
	}
	return err
}

// grok groks each line of text.
func (r *Runner) grok(ctx context.Context, name string, text []byte, out, errOut io.Writer) error {
	lines := splitLines(text)
	collectors := make([]reporter.Collector, len(lines))

	var rows [][]string
	if r.mode.batch != nil {
		b := &numgrok.Batch{
			Grokker:        numgrok.Grokker{Radix: r.radix},
			ReporterFor:    func(i int) reporter.Reporter { return &collectors[i] },
			MaxParallelism: r.parallelism,
		}
		var err error
		rows, err = r.mode.batch(ctx, b, r.opts, lines)
		if err != nil {
			return err
		}
	} else {
		for i, line := range lines {
			g := &numgrok.Grokker{Reporter: &collectors[i], Radix: r.radix}
			rows = append(rows, r.mode.line(g, r.opts, line))
		}
	}

	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "input\t%s\n", strings.Join(r.mode.columns, "\t"))
	for i, row := range rows {
		fmt.Fprintf(w, "%s\t%s\n", strconv.Quote(string(lines[i])), strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	w = bufio.NewWriter(errOut)
	for i := range collectors {
		for _, d := range collectors[i].Diagnostics() {
			fmt.Fprintf(w, "%s:%d:%d: %s[%s]: %s\n", name, i+1, d.Offset+1, d.Level, d.Tag, d.Message)
		}
	}
	return w.Flush()
}

// splitLines splits text into lines, dropping line terminators.
func splitLines(text []byte) [][]byte {
	if len(text) == 0 {
		return nil
	}
	text = bytes.TrimSuffix(text, []byte("\n"))
	lines := bytes.Split(text, []byte("\n"))
	for i, line := range lines {
		lines[i] = bytes.TrimSuffix(line, []byte("\r"))
	}
	return lines
}
