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
	"fmt"
	"strings"
)

// Options controls how a numeral is scanned. Options are independent bits.
type Options uint32

const (
	// AllowUnderscores accepts "_" between two digits of a radix-prefixed
	// integer.
	AllowUnderscores Options = 1 << iota
	// DisallowPrefix makes the binary and hexadecimal scanners treat a leading
	// "0b"/"b" or "0x"/"x" as an illegal digit.
	DisallowPrefix
	// SilentIllegalDigit suppresses the diagnostic for the character that
	// stopped a radix scan.
	SilentIllegalDigit
	// SilentNonPortable suppresses the diagnostic for exact values wider than
	// 32 bits.
	SilentNonPortable
	// AllowTrailing accepts text after an otherwise valid numeral, reporting
	// it with [Trailing] instead of failing.
	AllowTrailing
)

var optionNames = []struct {
	opt  Options
	name string
}{
	{AllowUnderscores, "allow-underscores"},
	{DisallowPrefix, "disallow-prefix"},
	{SilentIllegalDigit, "silent-illegal-digit"},
	{SilentNonPortable, "silent-non-portable"},
	{AllowTrailing, "allow-trailing"},
}

// ParseOptions converts option names, as printed by [Options.String], into
// an Options.
func ParseOptions(names ...string) (Options, error) {
	var opts Options
outer:
	for _, name := range names {
		for _, o := range optionNames {
			if o.name == name {
				opts |= o.opt
				continue outer
			}
		}
		return 0, fmt.Errorf("numgrok: unknown option %q", name)
	}
	return opts, nil
}

// String implements [fmt.Stringer].
func (o Options) String() string {
	if o == 0 {
		return "none"
	}
	var names []string
	for _, n := range optionNames {
		if o&n.opt != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// Outcome classifies a grokked numeral. Outcomes are independent bits; zero
// means the text was not recognized at all.
//
// At most one value channel is authoritative: if [Integer] is set, the
// integer value is; otherwise the floating-point value is. [TooLarge] is never
// set together with [Integer].
type Outcome uint32

const (
	// Integer: the integer value is valid. If NotInteger is also set, it is
	// the whole part of the numeral.
	Integer Outcome = 1 << iota
	// TooLarge: the integer part does not fit in a uint64.
	TooLarge
	// NotInteger: a fraction, an exponent, or an infinity or NaN was seen.
	NotInteger
	// Negative: the numeral had a leading "-". The integer value is the
	// absolute value.
	Negative
	// Infinity: the numeral spells an infinity.
	Infinity
	// NaN: the numeral spells a NaN.
	NaN
	// Trailing: there was text after the numeral.
	Trailing
)

var outcomeNames = []struct {
	out  Outcome
	name string
}{
	{Integer, "integer"},
	{TooLarge, "too-large"},
	{NotInteger, "not-integer"},
	{Negative, "negative"},
	{Infinity, "infinity"},
	{NaN, "nan"},
	{Trailing, "trailing"},
}

// String implements [fmt.Stringer].
func (o Outcome) String() string {
	if o == 0 {
		return "none"
	}
	var names []string
	for _, n := range outcomeNames {
		if o&n.out != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// Has returns whether every bit in want is set.
func (o Outcome) Has(want Outcome) bool {
	return o&want == want
}
