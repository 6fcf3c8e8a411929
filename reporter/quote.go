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

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// NonPrint defines whether or not a rune is considered "unprintable for the
// purposes of diagnostics", that is, whether it is a rune that will be
// replaced with <U+NNNN> when quoted.
func NonPrint(r rune) bool {
	return !strings.ContainsRune(" ", r) && !unicode.IsPrint(r)
}

// Char returns the first user-perceived character of text, suitable for
// quoting the offending character in a diagnostic.
//
// A whole grapheme cluster is returned so that, e.g., a combining accent
// after an illegal letter is not split off. Bytes that are not valid UTF-8
// are rendered as \xNN; unprintable runes as <U+NNNN>.
func Char(text []byte) string {
	if len(text) == 0 {
		return ""
	}

	cluster, _, _, _ := uniseg.FirstGraphemeCluster(text, -1)
	if !utf8.Valid(cluster) {
		return fmt.Sprintf(`\x%02x`, text[0])
	}
	if r, n := utf8.DecodeRune(cluster); n == len(cluster) && NonPrint(r) {
		return fmt.Sprintf("<U+%04X>", r)
	}
	return string(cluster)
}
