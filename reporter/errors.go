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

package reporter

import "fmt"

// Tag identifies the kind of anomaly a [Diagnostic] describes.
type Tag string

const (
	// Overflow: an exact integer value did not fit, and a floating-point
	// approximation was used instead.
	Overflow Tag = "overflow"
	// IllegalDigit: scanning stopped at a character that is not a digit of
	// the radix being scanned.
	IllegalDigit Tag = "illegal-digit"
	// NonPortable: the value is fine here, but does not fit in 32 bits.
	NonPortable Tag = "non-portable"
	// MalformedPayload: a NaN payload could not be parsed or did not fit,
	// and was replaced by an empty one.
	MalformedPayload Tag = "malformed-payload"
)

// Level represents the severity of a diagnostic message.
type Level int8

const (
	// Indicates something that probably should not be ignored.
	Warning Level = 1 + iota
	// Advisory only.
	Remark
)

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case Warning:
		return "warning"
	case Remark:
		return "remark"
	default:
		return fmt.Sprintf("Level(%d)", int8(l))
	}
}

// LevelOf returns the level diagnostics with the given tag are reported at.
func LevelOf(tag Tag) Level {
	if tag == NonPortable {
		return Remark
	}
	return Warning
}

// Diagnostic is a non-fatal anomaly found while grokking a numeral. None of
// them change the result of the parse that reported them.
//
// Diagnostic implements error so that callers who want to escalate one can
// do so without wrapping it.
type Diagnostic struct {
	Tag   Tag
	Level Level
	// Offset is the byte offset, within the text passed to the outermost
	// call, at which the anomaly was found.
	Offset  int
	Message string
}

// Errorf constructs a diagnostic with a formatted message.
func Errorf(tag Tag, offset int, format string, args ...any) Diagnostic {
	return Diagnostic{
		Tag:     tag,
		Level:   LevelOf(tag),
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements [error].
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%d: %s[%s]: %s", d.Offset, d.Level, d.Tag, d.Message)
}
