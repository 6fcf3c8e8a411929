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
)

// Atou parses the whole of text as a strict unsigned decimal integer: no
// whitespace, no sign, and no leading zeros. A NUL byte ends text.
//
// Text with leading zeros, such as "007", and values that do not fit in a
// uint64 yield math.MaxUint64 and false. Anything else that is not an
// integer yields zero and false.
func Atou(text []byte) (uint64, bool) {
	v, end, ok := AtouPrefix(text)
	if !ok {
		return v, false
	}
	if end < len(text) && text[end] != 0 {
		return 0, false
	}
	return v, true
}

// AtouPrefix is like [Atou], but only parses a prefix of text, and returns
// where that prefix ends. Whatever follows the digits is left for the caller.
//
// end is zero whenever ok is false. A zero value with ok true is a literal
// "0", as opposed to text that does not start with a digit at all.
func AtouPrefix(text []byte) (value uint64, end int, ok bool) {
	if len(text) == 0 || !unicodex.IsDigit(text[0]) {
		return 0, 0, false
	}
	value = uint64(text[0] - '0')
	if len(text) == 1 || !unicodex.IsDigit(text[1]) {
		return value, 1, true
	}
	if value == 0 {
		// Leading zeros are not allowed.
		return math.MaxUint64, 0, false
	}

	value, end, ok = checkedDecimal(text, 1, value)
	if !ok {
		return math.MaxUint64, 0, false
	}
	return value, end, true
}
