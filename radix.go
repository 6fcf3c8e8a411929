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
	"math"

	"github.com/bufbuild/numgrok/internal/ext/unicodex"
	"github.com/bufbuild/numgrok/reporter"
)

// Scan is the result of scanning a fixed-radix integer.
type Scan struct {
	// Value is the scanned value, or math.MaxUint64 if Outcome is TooLarge.
	Value uint64
	// Float approximates the value when Outcome is TooLarge, and is zero
	// otherwise.
	Float float64
	// Outcome is either zero or TooLarge.
	Outcome Outcome
	// Len is the number of bytes consumed, prefix included.
	Len int
}

// Float64 returns the scanned value from whichever channel is authoritative.
func (s Scan) Float64() float64 {
	if s.Outcome&TooLarge != 0 {
		return s.Float
	}
	return float64(s.Value)
}

type radix struct {
	base, prefix byte // prefix is zero if the radix has none.
	shift        uint // log2(base)

	name, title string
	portable    string // The largest 32-bit value, as spelled in this radix.
}

var (
	base2 = radix{
		base: 2, prefix: 'b', shift: 1,
		name: "binary", title: "Binary",
		portable: "0b11111111111111111111111111111111",
	}
	base8 = radix{
		base: 8, shift: 3,
		name: "octal", title: "Octal",
		portable: "037777777777",
	}
	base16 = radix{
		base: 16, prefix: 'x', shift: 4,
		name: "hexadecimal", title: "Hexadecimal",
		portable: "0xffffffff",
	}
)

// Bin scans a binary integer, optionally prefixed with "0b" or "b".
func (g *Grokker) Bin(text []byte, opts Options) Scan {
	return g.scan(text, &base2, opts)
}

// Oct scans an octal integer. Octal has no prefix; a leading 0 is just a
// digit.
//
// Only an 8 or a 9 stopping the scan is reported as an illegal digit: octal
// scanning is commonly used on text like "\0123" where the scan is expected
// to end at an arbitrary character.
func (g *Grokker) Oct(text []byte, opts Options) Scan {
	return g.scan(text, &base8, opts)
}

// Hex scans a hexadecimal integer, optionally prefixed with "0x" or "x".
func (g *Grokker) Hex(text []byte, opts Options) Scan {
	return g.scan(text, &base16, opts)
}

// ScanBin is like [Grokker.Bin], but only returns the value as a float and the
// number of bytes consumed.
func (g *Grokker) ScanBin(text []byte, opts Options) (float64, int) {
	s := g.Bin(text, opts)
	return s.Float64(), s.Len
}

// ScanOct is like [Grokker.Oct], but only returns the value as a float and the
// number of bytes consumed.
func (g *Grokker) ScanOct(text []byte, opts Options) (float64, int) {
	s := g.Oct(text, opts)
	return s.Float64(), s.Len
}

// ScanHex is like [Grokker.Hex], but only returns the value as a float and the
// number of bytes consumed.
func (g *Grokker) ScanHex(text []byte, opts Options) (float64, int) {
	s := g.Hex(text, opts)
	return s.Float64(), s.Len
}

// scan consumes the longest run of digits in the given radix at the start of
// text.
//
// The value is accumulated exactly until it no longer fits in a uint64, at
// which point accumulation continues in a float64 seeded with the exact
// value so far.
func (g *Grokker) scan(text []byte, r *radix, opts Options) Scan {
	s := 0
	if r.prefix != 0 && opts&DisallowPrefix == 0 {
		switch {
		case len(text) >= 1 && unicodex.FoldEq(text[0], r.prefix):
			s = 1
		case len(text) >= 2 && text[0] == '0' && unicodex.FoldEq(text[1], r.prefix):
			s = 2
		}
	}

	var (
		value      uint64
		valueF     float64
		overflowed bool
	)
	maxDiv := uint64(math.MaxUint64) >> r.shift
	start := s
	for ; s < len(text) && text[s] != 0; s++ {
		digit, ok := unicodex.Digit(text[s], r.base)
		if !ok && text[s] == '_' && opts&AllowUnderscores != 0 && s > start && s+1 < len(text) {
			// A separator only counts between two digits; otherwise the
			// separator itself is where the scan stops.
			if digit, ok = unicodex.Digit(text[s+1], r.base); ok {
				s++
			}
		}
		if !ok {
			if opts&SilentIllegalDigit == 0 && (r.base != 8 || unicodex.IsDigit(text[s])) {
				g.report(s, reporter.IllegalDigit,
					"Illegal %s digit '%s' ignored", r.name, reporter.Char(text[s:]))
			}
			break
		}

		if !overflowed {
			if value <= maxDiv {
				value = value<<r.shift | uint64(digit)
				continue
			}
			g.report(s, reporter.Overflow, "Integer overflow in %s number", r.name)
			overflowed = true
			valueF = float64(value)
		}
		valueF = valueF*float64(r.base) + float64(digit)
	}

	if (overflowed && valueF > math.MaxUint32) ||
		(!overflowed && value > math.MaxUint32 && opts&SilentNonPortable == 0) {
		g.report(0, reporter.NonPortable, "%s number > %s non-portable", r.title, r.portable)
	}

	if !overflowed {
		return Scan{Value: value, Len: s}
	}
	return Scan{
		Value:   math.MaxUint64,
		Float:   valueF,
		Outcome: TooLarge,
		Len:     s,
	}
}
