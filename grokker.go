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
	"errors"

	"github.com/bufbuild/numgrok/internal/ext/unicodex"
	"github.com/bufbuild/numgrok/locale"
	"github.com/bufbuild/numgrok/reporter"
)

var (
	// ErrSyntax is returned by [Number.Err] for text that is not a numeral.
	ErrSyntax = errors.New("numgrok: not a number")
	// ErrRange is returned by [Number.Err] for integers that do not fit in a
	// uint64.
	ErrRange = errors.New("numgrok: integer out of range")
)

// Grokker carries the collaborators that numeral scanning consults.
//
// A zero Grokker is ready to use: it discards diagnostics and only accepts
// "." as the radix. A Grokker is never mutated by scanning, so one may be
// shared by any number of goroutines, provided its Reporter and Radix are
// themselves safe for concurrent use.
type Grokker struct {
	// Reporter receives non-fatal diagnostics. May be nil.
	Reporter reporter.Reporter
	// Radix supplies the locale's radix string, which is accepted in
	// addition to ".". May be nil.
	Radix locale.Radix
}

// report emits a diagnostic at the given offset, if anyone is listening.
func (g *Grokker) report(offset int, tag reporter.Tag, format string, args ...any) {
	if g == nil || g.Reporter == nil {
		return
	}
	g.Reporter.Report(reporter.Errorf(tag, offset, format, args...))
}

// at returns a Grokker for scanning a suffix of the current text that starts
// delta bytes in, so that diagnostics keep pointing into the original text.
func (g *Grokker) at(delta int) *Grokker {
	if g == nil || g.Reporter == nil || delta == 0 {
		return g
	}
	sub := *g
	sub.Reporter = reporter.Shift(g.Reporter, delta)
	return &sub
}

// radix returns the locale radix string.
func (g *Grokker) radix() string {
	if g == nil {
		return string(locale.Standard)
	}
	return locale.String(g.Radix)
}

// matchRadix matches the radix string r, falling back to ".", at text[s:].
// Returns the position after the radix.
func matchRadix(text []byte, s int, r string) (int, bool) {
	if r != "." && len(text)-s >= len(r) && string(text[s:s+len(r)]) == r {
		return s + len(r), true
	}
	if s < len(text) && text[s] == '.' {
		return s + 1, true
	}
	return s, false
}

// skipDigits returns the position of the first non-decimal-digit at or after
// s.
func skipDigits(text []byte, s int) int {
	for s < len(text) && unicodex.IsDigit(text[s]) {
		s++
	}
	return s
}

// hasFoldPrefix returns whether text starts with lower, ignoring ASCII case.
// lower must consist of lowercase ASCII letters.
func hasFoldPrefix(text []byte, lower string) bool {
	if len(text) < len(lower) {
		return false
	}
	for i := range len(lower) {
		if !unicodex.FoldEq(text[i], lower[i]) {
			return false
		}
	}
	return true
}
