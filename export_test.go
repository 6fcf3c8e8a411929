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

// This file exports internal symbols for testing purposes only.

// DecimalPrefix is the unrolled decimal accumulator used by Grokker.Number.
func DecimalPrefix(text []byte) (value uint64, end int, ok bool) {
	return decimalPrefix(text, 0)
}

// CheckedDecimal is the overflow-checked decimal accumulator.
func CheckedDecimal(text []byte) (value uint64, end int, ok bool) {
	return checkedDecimal(text, 0, 0)
}

// MulExp10 is the power-of-ten scaling used by Grokker.Atof.
var MulExp10 = mulExp10
