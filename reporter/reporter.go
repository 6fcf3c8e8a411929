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

// Package reporter is the sink for diagnostics emitted while grokking
// numerals.
//
// Reporting is fire-and-forget: a [Reporter] cannot influence the parse, and
// a nil Reporter discards everything.
package reporter

import (
	"io"
	"sync"

	"github.com/tidwall/btree"
)

// Reporter receives diagnostics. Implementations must be safe to call from
// every goroutine that grokks with them.
type Reporter interface {
	Report(Diagnostic)
}

// Func adapts a function into a [Reporter]. A nil Func discards diagnostics.
type Func func(Diagnostic)

// Report implements [Reporter].
func (f Func) Report(d Diagnostic) {
	if f != nil {
		f(d)
	}
}

// Report sends d to r, unless r is nil.
func Report(r Reporter, d Diagnostic) {
	if r != nil {
		r.Report(d)
	}
}

// Shift returns a reporter that adds delta to the offset of every diagnostic
// before forwarding it to r.
//
// Sub-parsers that are handed a suffix of the caller's text report through a
// shifted reporter so that offsets stay relative to the outermost text.
func Shift(r Reporter, delta int) Reporter {
	if r == nil || delta == 0 {
		return r
	}
	if s, ok := r.(shifted); ok {
		return shifted{r: s.r, delta: s.delta + delta}
	}
	return shifted{r: r, delta: delta}
}

type shifted struct {
	r     Reporter
	delta int
}

func (s shifted) Report(d Diagnostic) {
	d.Offset += s.delta
	s.r.Report(d)
}

// Collector is a [Reporter] that records diagnostics, ordered by offset and
// then by arrival.
//
// A zero Collector is ready to use.
type Collector struct {
	mu   sync.Mutex
	tree *btree.BTreeG[entry]
	seq  int
}

type entry struct {
	seq int
	d   Diagnostic
}

func lessEntry(a, b entry) bool {
	if a.d.Offset != b.d.Offset {
		return a.d.Offset < b.d.Offset
	}
	return a.seq < b.seq
}

// Report implements [Reporter].
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tree == nil {
		c.tree = btree.NewBTreeG(lessEntry)
	}
	c.tree.Set(entry{seq: c.seq, d: d})
	c.seq++
}

// Len returns the number of diagnostics recorded so far.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tree == nil {
		return 0
	}
	return c.tree.Len()
}

// Diagnostics returns the recorded diagnostics in order.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tree == nil {
		return nil
	}
	out := make([]Diagnostic, 0, c.tree.Len())
	c.tree.Scan(func(e entry) bool {
		out = append(out, e.d)
		return true
	})
	return out
}

// Tagged returns whether any recorded diagnostic has the given tag.
func (c *Collector) Tagged(tag Tag) bool {
	for _, d := range c.Diagnostics() {
		if d.Tag == tag {
			return true
		}
	}
	return false
}

// Reset discards every recorded diagnostic.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tree = nil
	c.seq = 0
}

// Render writes one line per recorded diagnostic to w.
func (c *Collector) Render(w io.Writer) error {
	for _, d := range c.Diagnostics() {
		if _, err := io.WriteString(w, d.Error()+"\n"); err != nil {
			return err
		}
	}
	return nil
}
