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
	"encoding/binary"
	"math"
	"slices"

	"github.com/bufbuild/numgrok/internal/ext/unicodex"
	"github.com/bufbuild/numgrok/nanbits"
	"github.com/bufbuild/numgrok/reporter"
)

// InfNaN is the result of recognizing an infinity or a NaN.
type InfNaN struct {
	// Outcome is zero if nothing was recognized. Otherwise it has Infinity or
	// NaN, and NotInteger, and possibly Negative and Trailing.
	Outcome Outcome
	// Float is the recognized value, with its NaN payload if any.
	Float float64
	// Len is the number of bytes recognized, including any whitespace after
	// them. It is zero if nothing was recognized, and also for a misspelled
	// "infinity" such as "infinite", which Outcome still classifies as an
	// infinity with trailing junk.
	Len int
}

// IsInfNaN returns whether f is an infinity or a NaN.
func IsInfNaN(f float64) bool {
	return math.IsInf(f, 0) || math.IsNaN(f)
}

// LooksInfNaN returns whether text starts with a spelling of infinity or NaN.
func LooksInfNaN(text []byte) bool {
	return new(Grokker).InfNaN(text).Len > 0
}

// InfNaN recognizes the many ways of spelling infinity and NaN, ignoring case:
//
//   - "inf" and "infinity";
//   - "nan", optionally preceded by "q" or "s" (quiet or signaling) or followed
//     by "q" or "s", optionally followed by a C99-style payload in
//     parentheses, such as "nan(0x7ff)";
//   - the MSVC runtime's "1.#INF" and "1.#IND" (a NaN), with optional
//     trailing zeros; the "." is optional.
//
// Any of these may have a leading sign. A NaN's sign is recorded in Outcome
// but not in Float.
//
// Text that does not spell one of these in full yields a zero result. Text
// after a complete spelling sets Trailing, but does not prevent recognition.
func (g *Grokker) InfNaN(text []byte) InfNaN {
	var (
		s     int
		flags Outcome
		odh   bool // one-dot-hash: 1.#INF
	)
	if len(text) == 0 {
		return InfNaN{}
	}

	switch text[s] {
	case '+':
		s++
	case '-':
		flags |= Negative
		s++
	}
	if s == len(text) {
		return InfNaN{}
	}

	if text[s] == '1' {
		s++
		if s < len(text) && text[s] == '.' {
			s++
		}
		if s == len(text) || text[s] != '#' {
			return InfNaN{}
		}
		s++
		if s == len(text) {
			return InfNaN{}
		}
		odh = true
	}

	if !unicodex.FoldEq(text[s], 'i') {
		return g.nan(text, s, flags)
	}

	// INF, or IND for 1.#IND.
	s++
	if s == len(text) || !unicodex.FoldEq(text[s], 'n') {
		return InfNaN{}
	}
	s++
	if s == len(text) {
		return InfNaN{}
	}

	var f float64
	switch {
	case unicodex.FoldEq(text[s], 'f'):
		s++
		flags |= Infinity | NotInteger
		f = math.Inf(1)
		if flags&Negative != 0 {
			f = math.Inf(-1)
		}

		if s < len(text) && unicodex.FoldEq(text[s], 'i') {
			if !hasFoldPrefix(text[s:], "inity") {
				// Something like "infinite": classified as an infinity followed
				// by junk, but nothing is consumed.
				return InfNaN{Outcome: flags | Trailing, Float: f}
			}
			s += len("inity")
		} else if odh {
			for s < len(text) && text[s] == '0' { // 1.#INF00
				s++
			}
		}

	case odh && unicodex.FoldEq(text[s], 'd'):
		s++
		flags |= NaN | NotInteger
		f = g.commitNaN(nil, false, 0)
		for s < len(text) && text[s] == '0' { // 1.#IND00
			s++
		}

	default:
		return InfNaN{}
	}

	return finishInfNaN(text, s, flags, f)
}

// finishInfNaN skips whitespace after a recognized spelling, and flags
// anything after that as trailing.
func finishInfNaN(text []byte, s int, flags Outcome, f float64) InfNaN {
	s = unicodex.SkipSpace(text, s)
	if s < len(text) && text[s] != 0 {
		flags |= Trailing
	}
	return InfNaN{Outcome: flags, Float: f, Len: s}
}

// nan recognizes "nan" and its variants at text[s:].
func (g *Grokker) nan(text []byte, s int, flags Outcome) InfNaN {
	var signaling bool
	switch {
	case unicodex.FoldEq(text[s], 's'):
		signaling = true
		s++
	case unicodex.FoldEq(text[s], 'q'):
		s++
	}

	if !hasFoldPrefix(text[s:], "nan") {
		return InfNaN{}
	}
	s += len("nan")
	flags |= NaN | NotInteger

	// Some platforms spell these NaNQ and NaNS.
	if s < len(text) {
		switch {
		case unicodex.FoldEq(text[s], 's'):
			signaling = true
			s++
		case unicodex.FoldEq(text[s], 'q'):
			s++
		}
	}

	var payload []byte
	open := s
	if s < len(text) && text[s] == '(' {
		p, n, ok := g.at(s).nanPayload(text[s:])
		if !ok {
			// Unterminated or empty: the NaN stands, without a payload, and
			// the parenthesis is trailing junk.
			f := g.commitNaN(nil, signaling, s)
			return InfNaN{Outcome: flags | Trailing, Float: f, Len: s}
		}
		payload = p
		s += n
	}

	f := g.commitNaN(payload, signaling, open)
	return finishInfNaN(text, s, flags, f)
}

// nanPayload parses the "(...)" after a NaN. text starts at the "(".
//
// The group is only considered closed if the last non-space byte of text is
// its ")". Inside it, exactly one component is accepted: a hexadecimal or
// binary literal, a quoted byte string, or a decimal integer. Multiple
// components are not combined.
//
// ok is false if the group is unterminated or empty. Otherwise n is the
// length of the group, and payload is its value, most significant byte
// first. A component that is unparsable or too wide is reported, and
// replaced by an empty payload.
func (g *Grokker) nanPayload(text []byte) (payload []byte, n int, ok bool) {
	t := len(text) - 1
	for t > 0 && unicodex.IsSpace(text[t]) {
		t--
	}
	if t == 0 || text[t] != ')' {
		return nil, 0, false
	}

	inner := text[1:t]
	if len(inner) == 0 {
		return nil, 0, false
	}

	payload, used, valid := g.at(1).payloadComponent(inner)
	if !valid {
		g.report(1, reporter.MalformedPayload, "NaN payload error")
		return nil, t + 1, true
	}
	if used < len(inner) {
		// There is junk after the component, e.g. nan(12 34). Keep the first
		// component, but flag the rest.
		g.report(1+used, reporter.MalformedPayload, "NaN payload error")
	}
	return payload, t + 1, true
}

// payloadComponent parses one NaN payload component at the start of text,
// returning the payload bytes, most significant first, and how many bytes of
// text were used.
func (g *Grokker) payloadComponent(text []byte) (payload []byte, used int, ok bool) {
	const scan = AllowUnderscores | SilentIllegalDigit | SilentNonPortable

	switch {
	case len(text) > 2 && text[0] == '0' && unicodex.FoldEq(text[1], 'x') &&
		unicodex.IsHexDigit(text[2]):
		r := g.Hex(text, scan)
		return uintPayload(r.Value), r.Len, r.Outcome&TooLarge == 0

	case len(text) > 2 && text[0] == '0' && unicodex.FoldEq(text[1], 'b') &&
		(text[2] == '0' || text[2] == '1'):
		r := g.Bin(text, scan)
		return uintPayload(r.Value), r.Len, r.Outcome&TooLarge == 0

	case len(text) > 2 && (text[0] == '\'' || text[0] == '"') && text[len(text)-1] == text[0]:
		// A string constant: its bytes are taken as they come, so 'AB' is the
		// same payload as 0x4142.
		raw := text[1 : len(text)-1]
		if len(raw) > nanbits.MaxPayloadBytes || len(raw)*8 > nanbits.Float64.MantissaBits {
			return nil, len(text), false
		}
		return slices.Clone(raw), len(text), true

	case unicodex.IsDigit(text[0]):
		n := g.Number(text, AllowTrailing)
		return uintPayload(n.Value), skipDigits(text, 0),
			n.Outcome&Integer != 0 && n.Outcome&(NotInteger|TooLarge) == 0

	default:
		return nil, 0, false
	}
}

// uintPayload converts v into a minimal big-endian byte string.
func uintPayload(v uint64) []byte {
	if v == 0 {
		return nil
	}
	b := binary.BigEndian.AppendUint64(nil, v)
	for b[0] == 0 {
		b = b[1:]
	}
	return b
}

// commitNaN constructs the NaN for the given payload. An empty payload is a
// single zero byte, and so is one that does not fit; the latter is reported
// at offset.
func (g *Grokker) commitNaN(payload []byte, signaling bool, offset int) float64 {
	if len(payload) == 0 {
		payload = []byte{0}
	}
	f, err := nanbits.NaN(payload, signaling)
	if err != nil {
		g.report(offset, reporter.MalformedPayload, "NaN payload error")
		f, _ = nanbits.NaN([]byte{0}, signaling)
	}
	return f
}
