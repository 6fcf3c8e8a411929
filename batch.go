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

package numgrok

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"

	"github.com/bufbuild/numgrok/reporter"
)

// chunkSize is how many texts a single goroutine handles in one go.
const chunkSize = 256

// Batch classifies or converts many numerals concurrently.
type Batch struct {
	// Grokker is used for every text. Its Reporter receives diagnostics from
	// all of them, so it must be safe for concurrent use; offsets are
	// relative to each text, in no particular order across texts.
	Grokker Grokker
	// ReporterFor, if not nil, overrides Grokker.Reporter for the text at
	// the given index. This gives each text diagnostics of its own.
	ReporterFor func(index int) reporter.Reporter

	// MaxParallelism is the maximum number of chunks of texts that will be
	// processed concurrently. If this value is zero or negative, then
	// min(runtime.NumCPU(), runtime.GOMAXPROCS(-1)) will be used.
	MaxParallelism int
}

// Numbers runs [Grokker.Number] over each of texts. The results are in the
// same order as texts.
//
// Returns an error only if ctx is done before every text is classified.
func (b *Batch) Numbers(ctx context.Context, opts Options, texts ...[]byte) ([]Number, error) {
	out := make([]Number, len(texts))
	err := b.run(ctx, len(texts), func(i int) {
		out[i] = b.grokker(i).Number(texts[i], opts)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Float is the result of converting a text with [Grokker.Atof].
type Float struct {
	Value float64
	Len   int // Bytes consumed; zero if the text is not a numeral.
}

// Floats runs [Grokker.Atof] over each of texts. The results are in the same
// order as texts.
//
// Returns an error only if ctx is done before every text is converted.
func (b *Batch) Floats(ctx context.Context, texts ...[]byte) ([]Float, error) {
	out := make([]Float, len(texts))
	err := b.run(ctx, len(texts), func(i int) {
		out[i].Value, out[i].Len = b.grokker(i).Atof(texts[i])
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// grokker returns the Grokker to use for the text at index i.
func (b *Batch) grokker(i int) *Grokker {
	if b.ReporterFor == nil {
		return &b.Grokker
	}
	g := b.Grokker
	g.Reporter = b.ReporterFor(i)
	return &g
}

// run calls do for each index in [0, n), in chunks, with at most
// MaxParallelism chunks in flight.
func (b *Batch) run(ctx context.Context, n int, do func(int)) error {
	if n == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	par := b.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
		cpus := runtime.NumCPU()
		if par > cpus {
			par = cpus
		}
	}
	s := semaphore.NewWeighted(int64(par))

	var chunks []chan error
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		ready := make(chan error, 1)
		chunks = append(chunks, ready)
		go func() {
			if err := s.Acquire(ctx, 1); err != nil {
				ready <- err
				return
			}
			defer s.Release(1)
			for i := start; i < end; i++ {
				if ctx.Err() != nil {
					ready <- ctx.Err()
					return
				}
				do(i)
			}
			ready <- nil
		}()
	}

	for _, ready := range chunks {
		select {
		case err := <-ready:
			if err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
