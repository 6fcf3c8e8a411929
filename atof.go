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
	"bytes"
	"math"

	"github.com/bufbuild/numgrok/internal/ext/unicodex"
)

const (
	// maxSigDigits is the number of significant digits past which a float64
	// cannot be made more precise: DBL_DIG plus two guard digits.
	maxSigDigits = 15 + 2

	// maxAccumulate is the largest accumulator value that may still have a
	// digit appended to it.
	maxAccumulate = (math.MaxUint64 - 9) / 10

	// maxExp10 is the largest power of ten a float64 can represent.
	maxExp10 = 308

	// maxExponent bounds the explicit exponent accumulated by Atof. Anything
	// past it is already far out of float64 range.
	maxExponent = 1 << 20
)

// pow10u holds the powers of ten that fit in a significand.
var pow10u = [...]uint64{
	1, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9,
	1e10, 1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19,
}

// Atof converts a decimal numeral to the nearest float64 it can get to
// without deferring to strconv. It returns the value and the number of bytes
// of text consumed; zero bytes consumed means there was no numeral, and the
// value is zero.
//
// Leading whitespace and a sign are skipped, and then any spelling of an
// infinity or a NaN that [Grokker.InfNaN] accepts is converted as such.
// Otherwise, Atof consumes digits with an optional fraction, followed by an
// optional exponent. Digits past the seventeenth significant one are rounded
// away, half to even, but still count towards the magnitude.
//
// The radix is "." or the locale radix string, whichever appears first in
// text. The other one ends the numeral.
func (g *Grokker) Atof(text []byte) (float64, int) {
	s := unicodex.SkipSpace(text, 0)
	var negative bool
	if s < len(text) {
		switch text[s] {
		case '-':
			negative = true
			s++
		case '+':
			s++
		}
	}

	// The recognizer is given the minus sign, so that it picks the right
	// infinity.
	p0 := s
	if negative {
		p0--
	}
	if r := g.at(p0).InfNaN(text[p0:]); r.Len > 0 {
		return r.Float, p0 + r.Len
	}

	radix := g.atofRadix(text[s:])

	var (
		result      [2]float64 // Folded accumulators, before and after the radix.
		accumulator [2]uint64
		expAdjust   [2]int // Powers of ten the results are off by.
		expAcc      [2]int // Digits in each accumulator since it was last folded.

		seenDigit       bool
		seenDP          int // Index into the arrays above.
		digit, oldDigit int
		sigDigits       int
	)

digits:
	for s < len(text) {
		switch {
		case unicodex.IsDigit(text[s]):
			seenDigit = true
			oldDigit = digit
			digit = int(text[s] - '0')
			s++
			if seenDP == 1 {
				expAdjust[1]++
			}

			// Leading zeros only move the exponent.
			if sigDigits == 0 && digit == 0 {
				continue
			}

			sigDigits++
			if sigDigits <= maxSigDigits {
				if accumulator[seenDP] > maxAccumulate {
					result[seenDP] = mulExp10(result[seenDP], expAcc[seenDP]) +
						float64(accumulator[seenDP])
					accumulator[seenDP] = 0
					expAcc[seenDP] = 0
				}
				accumulator[seenDP] = accumulator[seenDP]*10 + uint64(digit)
				expAcc[seenDP]++
				continue
			}

			// Out of precision: round half to even on this digit, and skip
			// the rest, keeping track of their magnitude.
			if digit > 5 || (digit == 5 && oldDigit%2 == 1) {
				accumulator[seenDP]++
			}
			if seenDP == 1 {
				expAdjust[1]--
			} else {
				expAdjust[0]++
			}
			for s < len(text) && unicodex.IsDigit(text[s]) {
				s++
				if seenDP == 0 {
					expAdjust[0]++
				}
			}

		case seenDP == 0 && bytes.HasPrefix(text[s:], []byte(radix)):
			s += len(radix)
			seenDP = 1
			if sigDigits > maxSigDigits {
				s = skipDigits(text, s)
				break digits
			}

		default:
			break digits
		}
	}

	if !seenDigit {
		return 0, 0
	}

	var exponent int
	if s < len(text) && unicodex.FoldEq(text[s], 'e') {
		e := s + 1
		var expNegative bool
		if e < len(text) && (text[e] == '-' || text[e] == '+') {
			expNegative = text[e] == '-'
			e++
		}
		if e < len(text) && unicodex.IsDigit(text[e]) {
			for ; e < len(text) && unicodex.IsDigit(text[e]); e++ {
				if exponent < maxExponent {
					exponent = exponent*10 + int(text[e]-'0')
				}
			}
			if expNegative {
				exponent = -exponent
			}
			s = e
		}
	}

	var value float64
	if result == [2]float64{} {
		// Nothing was folded, so both parts fit in one significand of at
		// most maxSigDigits digits, and only the final scaling rounds.
		sig := accumulator[1]
		if accumulator[0] != 0 {
			sig += accumulator[0] * pow10u[expAdjust[1]]
		}
		value = scale(exactDouble(sig), exponent+expAdjust[0]-expAdjust[1])
	} else {
		result[0] = mulExp10(result[0], expAcc[0]) + float64(accumulator[0])
		result[1] = mulExp10(result[1], expAcc[1]) + float64(accumulator[1])
		value = mulExp10(result[0], exponent+expAdjust[0]) +
			mulExp10(result[1], exponent-expAdjust[1])
	}
	if negative {
		value = -value
	}
	return value, s
}

// Atof is a shorthand for a [Grokker.Atof] that discards diagnostics and uses
// the "." radix. It only returns the value.
func Atof(text []byte) float64 {
	f, _ := new(Grokker).Atof(text)
	return f
}

// atofRadix picks the radix string to use for text: "." if it occurs before
// the locale's radix string, or if the latter does not occur at all.
func (g *Grokker) atofRadix(text []byte) string {
	local := g.radix()
	if local == "." {
		return local
	}
	l := bytes.Index(text, []byte(local))
	dot := bytes.IndexByte(text, '.')
	if dot >= 0 && (l < 0 || dot < l) {
		return "."
	}
	return local
}

// mulExp10 returns value * 10^exponent. See [scale].
func mulExp10(value float64, exponent int) float64 {
	return scale(double{value, 0}, exponent)
}

// scale returns x * 10^exponent, rounded to a float64. The power of ten is
// computed by repeated squaring, in double-double precision so that the
// rounding error of the squares stays below that of the result.
//
// Results out of range saturate to an infinity or a zero of the appropriate
// sign.
func scale(x double, exponent int) float64 {
	if exponent == 0 {
		return x.float()
	}
	if x.hi == 0 {
		return 0
	}

	if exponent > 0 {
		if exponent > maxExp10 {
			return math.Copysign(math.Inf(1), x.hi)
		}
		return x.mul(pow10(exponent)).float()
	}

	// 1234e-309 is representable, but 1e309 is not: divide in steps no
	// larger than the largest power of ten.
	exponent = -exponent
	for exponent > maxExp10 {
		step := min(exponent-maxExp10, maxExp10)
		x = x.div(pow10(step))
		exponent -= step
		if x.hi == 0 {
			return x.hi
		}
	}
	return x.div(pow10(exponent)).float()
}

// pow10 returns 10^n for 0 <= n <= maxExp10.
func pow10(n int) double {
	result, power := double{1, 0}, double{10, 0}
	for bit := 1; n != 0; bit <<= 1 {
		if n&bit != 0 {
			n ^= bit
			result = result.mul(power)
			if n == 0 {
				break
			}
		}
		power = power.mul(power)
	}
	return result
}

// double is an unevaluated sum hi + lo of two float64s, with |lo| at most
// half an ulp of hi.
type double struct {
	hi, lo float64
}

// exactDouble returns v as a double, without rounding.
func exactDouble(v uint64) double {
	hi := float64(v)
	return double{hi, float64(int64(v - uint64(hi)))}
}

func (x double) float() float64 {
	return x.hi + x.lo
}

func (x double) mul(y double) double {
	p := x.hi * y.hi
	if p == 0 || math.IsInf(p, 0) {
		return double{p, 0}
	}
	e := math.FMA(x.hi, y.hi, -p)
	e += float64(x.hi*y.lo) + float64(x.lo*y.hi)
	return fastTwoSum(p, e)
}

func (x double) div(y double) double {
	q1 := x.hi / y.hi
	if q1 == 0 || math.IsInf(q1, 0) {
		return double{q1, 0}
	}
	p := y.mul(double{q1, 0})
	s, e := twoSum(x.hi, -p.hi)
	e = e - p.lo + x.lo
	return fastTwoSum(q1, (s+e)/y.hi)
}

// twoSum returns a + b and its rounding error.
func twoSum(a, b float64) (sum, e float64) {
	sum = a + b
	bb := sum - a
	return sum, (a - (sum - bb)) + (b - bb)
}

// fastTwoSum is twoSum for |a| >= |b|.
func fastTwoSum(a, b float64) double {
	sum := a + b
	return double{sum, b - (sum - a)}
}
