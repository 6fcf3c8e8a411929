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

// Package numgrok recognizes numerals in text, the way the Perl interpreter
// does when it converts a string to a number.
//
// Recognizing a numeral is separate from converting it. The functions in this
// package report what a numeral looks like, as a set of [Outcome] bits, along
// with whatever value could be extracted exactly:
//
//  1. Fixed-radix integers: [Grokker.Bin], [Grokker.Oct] and [Grokker.Hex].
//     These fall back to a float64 approximation on overflow.
//  2. Decimal numerals: [Grokker.Number] classifies them, and extracts the
//     value of integers that fit in a uint64.
//  3. Infinities and NaNs: [Grokker.InfNaN] accepts the spellings of various
//     C runtimes, including NaN payloads like "nan(0x42)". See package
//     nanbits for how payloads are stored.
//  4. Decimal-to-float conversion: [Grokker.Atof] converts without deferring
//     to strconv.
//  5. Strict unsigned integers: [Atou] and [AtouPrefix] reject anything but
//     canonical decimal digits.
//
// None of these ever fail outright. Malformed input yields a zero result,
// along with diagnostics sent to the Grokker's [reporter.Reporter], if any.
// Diagnostics never change the result.
//
// # Grokker
//
// A Grokker carries the two collaborators that scanning consults: a Reporter
// for diagnostics, and a [locale.Radix] supplying the locale's decimal
// separator. The zero Grokker discards diagnostics and uses ".". It can be
// had with new(numgrok.Grokker):
//
//	n := new(numgrok.Grokker).Number([]byte(" -12.5e3 "), 0)
//	n.Outcome // negative|not-integer
//
// A Grokker is never written to, so a single one can serve any number of
// goroutines. [Batch] takes advantage of this to process many numerals
// concurrently.
package numgrok
