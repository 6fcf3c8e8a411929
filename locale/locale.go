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

// Package locale supplies the radix (decimal point) string that numeral
// scanners accept in addition to ".".
//
// The radix is an injected collaborator rather than process-wide state:
// whoever owns the locale decides which [Radix] to hand to the scanners.
package locale

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Radix looks up the current radix string. It may be more than one byte long.
//
// Implementations must be safe for concurrent use.
type Radix interface {
	RadixString() string
}

// Standard is the C locale radix, ".".
const Standard Fixed = "."

// Fixed is a [Radix] that always returns the same string. The empty Fixed
// behaves like [Standard].
type Fixed string

// RadixString implements [Radix].
func (f Fixed) RadixString() string {
	if f == "" {
		return string(Standard)
	}
	return string(f)
}

// String returns the radix string of r, falling back to "." if r is nil or
// returns the empty string.
func String(r Radix) string {
	if r == nil {
		return string(Standard)
	}
	if s := r.RadixString(); s != "" {
		return s
	}
	return string(Standard)
}

// ForTag returns the radix used by the given language, as recorded in CLDR.
//
// The radix is discovered by formatting a number with one fractional digit
// and taking whatever separates the two digits. Scripts with their own digits
// are handled, since any Unicode decimal digit counts as a digit here.
func ForTag(tag language.Tag) Fixed {
	text := message.NewPrinter(tag).Sprintf("%.1f", 1.5)

	start := strings.IndexFunc(text, unicode.IsDigit)
	if start < 0 {
		return Standard
	}
	rest := text[start:]
	sep := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsDigit(r) })
	if sep < 0 {
		return Standard
	}
	rest = rest[sep:]
	end := strings.IndexFunc(rest, unicode.IsDigit)
	if end <= 0 {
		return Standard
	}
	return Fixed(rest[:end])
}
