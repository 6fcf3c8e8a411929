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

// Package unicodex contains the character classes shared by the numeral
// scanners.
//
// All of these operate on single bytes: numerals are ASCII, and any byte that
// is part of a multi-byte UTF-8 sequence is simply "not a digit".
package unicodex

// Digit parses a digit in the given base, up to base 36.
func Digit(d byte, base byte) (value byte, ok bool) {
	switch {
	case d >= '0' && d <= '9':
		value = d - '0'

	case d >= 'a' && d <= 'z':
		value = d - 'a' + 10

	case d >= 'A' && d <= 'Z':
		value = d - 'A' + 10

	default:
		value = 0xff
	}

	if value >= base {
		return 0, false
	}
	return value, true
}

// IsDigit returns whether d is an ASCII decimal digit.
func IsDigit(d byte) bool {
	return d >= '0' && d <= '9'
}

// IsHexDigit returns whether d is an ASCII hexadecimal digit of either case.
func IsHexDigit(d byte) bool {
	_, ok := Digit(d, 16)
	return ok
}

// IsSpace returns whether d is ASCII whitespace, in the C locale sense:
// space, \t, \n, \v, \f and \r.
func IsSpace(d byte) bool {
	switch d {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// FoldEq returns whether d is the ASCII letter lower in either case.
//
// lower must be a lowercase ASCII letter.
func FoldEq(d, lower byte) bool {
	return d|0x20 == lower
}

// SkipSpace returns the index of the first non-space byte in text at or after
// start.
func SkipSpace(text []byte, start int) int {
	for start < len(text) && IsSpace(text[start]) {
		start++
	}
	return start
}
