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
	"strings"

	"github.com/bufbuild/numgrok/internal/ext/unicodex"
)

const (
	maxDiv10 = math.MaxUint64 / 10
	maxMod10 = math.MaxUint64 % 10

	// unrolled is how many leading decimal digits are accumulated without
	// checking for overflow: nine digits stay below 10^9 < 2^32.
	unrolled = 9

	// butTrue is a zero that is true in a boolean context. It is exempt from
	// "isn't numeric" complaints.
	butTrue = "0 but true"
)

// Number is the result of classifying a decimal numeral.
type Number struct {
	// Value is the integer value, valid if Outcome has Integer. With TooLarge
	// it is math.MaxUint64.
	Value uint64
	// Float is the value of an infinity or NaN.
	Float float64
	// Outcome classifies the numeral.
	Outcome Outcome
}

// Err converts a classification that is of no use to an integer-only caller
// into an error: [ErrSyntax] if nothing numeric was recognized, [ErrRange] if
// the integer part overflowed.
func (n Number) Err() error {
	switch {
	case n.Outcome&^(Trailing|Negative) == 0:
		return ErrSyntax
	case n.Outcome&TooLarge != 0:
		return ErrRange
	default:
		return nil
	}
}

// LooksLikeNumber returns whether text, in its entirety, is a numeral that
// [Grokker.Number] recognizes.
func LooksLikeNumber(text []byte) bool {
	return new(Grokker).Number(text, 0).Outcome != 0
}

// Number classifies a decimal numeral: optional leading whitespace, an
// optional sign, digits with an optional fraction, an optional exponent, and
// optional trailing whitespace. Infinities and NaNs in any of the spellings
// accepted by [Grokker.InfNaN] are recognized too.
//
// The integer value is exact whenever Outcome has Integer; fractional digits
// are not added to it. An exponent discards it altogether. Overflowing
// integers are flagged TooLarge but no approximation is computed; use
// [Grokker.Atof] for the magnitude.
//
// The only option consulted is [AllowTrailing]. Without it, any text after the
// numeral makes the whole classification zero. Even with it, text that starts
// like an infinity or a NaN but is neither, as in "12nope", is rejected.
func (g *Grokker) Number(text []byte, opts Options) Number {
	s := unicodex.SkipSpace(text, 0)
	if s == len(text) {
		return Number{}
	}

	var n Number
	switch text[s] {
	case '-':
		n.Outcome = Negative
		s++
	case '+':
		s++
	}
	if s == len(text) {
		return Number{}
	}

	// d is where the digits (or an infinity, or the "1." of "1.#INF") start.
	d := s
	if unicodex.IsDigit(text[s]) {
		value, end, ok := decimalPrefix(text, s)
		s = end
		if ok {
			n.Outcome |= Integer
			n.Value = value
		} else {
			n.Outcome |= TooLarge
			n.Value = math.MaxUint64
		}

		if end, ok := matchRadix(text, s, g.radix()); ok {
			n.Outcome |= NotInteger
			s = skipDigits(text, end)
		}
	} else if end, ok := matchRadix(text, s, g.radix()); ok {
		// No digits before the radix means we need digits after it. The
		// integer part is then zero.
		if end == len(text) || !unicodex.IsDigit(text[end]) {
			return Number{}
		}
		n.Outcome |= NotInteger | Integer
		s = skipDigits(text, end)
	}

	if s > d && s < len(text) && unicodex.FoldEq(text[s], 'e') {
		s++
		if s < len(text) && (text[s] == '-' || text[s] == '+') {
			s++
		}
		switch {
		case s < len(text) && unicodex.IsDigit(text[s]):
			s = skipDigits(text, s)
		case opts&AllowTrailing != 0:
			n.Outcome |= Trailing
			return n
		default:
			return Number{}
		}

		// The only thing an exponent leaves intact is the sign.
		n.Outcome = n.Outcome&Negative | NotInteger
		n.Value = 0
	}

	s = unicodex.SkipSpace(text, s)
	if s == len(text) {
		return n
	}
	if string(text) == butTrue {
		return Number{Outcome: Integer}
	}

	// We could be at "Inf" or "NaN", or at the "#" of "1.#INF". Retry from d,
	// since the code above may have consumed the "1." already.
	if len(text)-s > 2 && strings.IndexByte("inqs#", text[s]|0x20) >= 0 {
		r := g.at(d).InfNaN(text[d:])
		switch {
		case r.Outcome&Infinity != 0:
			sign := n.Outcome & Negative
			r.Float = math.Inf(1)
			if (sign|r.Outcome)&Negative != 0 {
				r.Float = math.Inf(-1)
			}
			return Number{Float: r.Float, Outcome: sign | r.Outcome}
		case r.Outcome&NaN != 0:
			return Number{Float: r.Float, Outcome: r.Outcome &^ Negative}
		}
		// Text that starts like an infinity or a NaN but is neither is not
		// accepted as trailing junk.
	} else if opts&AllowTrailing != 0 {
		n.Outcome |= Trailing
		return n
	}
	return Number{}
}

// decimalPrefix accumulates the run of decimal digits at text[s:].
//
// If the run does not fit in a uint64, ok is false; the whole run is consumed
// regardless.
func decimalPrefix(text []byte, s int) (value uint64, end int, ok bool) {
	for i := 0; i < unrolled && s < len(text) && unicodex.IsDigit(text[s]); i++ {
		value = value*10 + uint64(text[s]-'0')
		s++
	}
	return checkedDecimal(text, s, value)
}

// checkedDecimal continues accumulating decimal digits onto value, checking
// every step for overflow.
func checkedDecimal(text []byte, s int, value uint64) (uint64, int, bool) {
	for s < len(text) && unicodex.IsDigit(text[s]) {
		digit := uint64(text[s] - '0')
		if value > maxDiv10 || (value == maxDiv10 && digit > maxMod10) {
			return value, skipDigits(text, s), false
		}
		value = value*10 + digit
		s++
	}
	return value, s, true
}
