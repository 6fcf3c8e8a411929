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

	"golang.org/x/exp/constraints"

	"github.com/bufbuild/numgrok/internal/ext/unsafex"
)

// Converting a float64 to an integer type that cannot hold it is
// implementation-defined in Go. The functions below define it: values in
// range truncate towards zero, values between the signed and unsigned maxima
// wrap into the negative range of signed types, values below the minimum and
// above the maximum saturate, and NaN is zero.

// CastUlong converts f to a uint32. Negative values are converted through
// int32.
func CastUlong(f float64) uint32 { return castUnsigned[uint32, int32](f) }

// CastI32 converts f to an int32.
func CastI32(f float64) int32 { return castSigned[int32, uint32](f) }

// CastIV converts f to an int64.
func CastIV(f float64) int64 { return castSigned[int64, uint64](f) }

// CastUV converts f to a uint64. Negative values are converted through int64.
func CastUV(f float64) uint64 { return castUnsigned[uint64, int64](f) }

// castUnsigned converts f to the unsigned type U, going through S, the signed
// type of the same width, for negative values.
func castUnsigned[U constraints.Unsigned, S constraints.Signed](f float64) U {
	bits := unsafex.LayoutOf[U]().Size * 8
	if f < 0 {
		if lo := -math.Ldexp(1, bits-1); f < lo {
			return U(S(lo))
		}
		return U(S(f))
	}
	if f < math.Ldexp(1, bits) {
		return wrap[U](f)
	}
	if f > 0 {
		return ^U(0)
	}
	return 0 // NaN
}

// castSigned converts f to the signed type S, going through U, the unsigned
// type of the same width, for values past the maximum of S.
func castSigned[S constraints.Signed, U constraints.Unsigned](f float64) S {
	bits := unsafex.LayoutOf[S]().Size * 8
	if hi := math.Ldexp(1, bits-1); f < hi {
		if f < -hi {
			return S(-hi)
		}
		return S(f)
	}
	if f < math.Ldexp(1, bits) {
		return S(wrap[U](f))
	}
	if f > 0 {
		return S(^U(0))
	}
	return 0 // NaN
}

// wrap converts f, which must be in [0, 2^bits), to U. The upper half of the
// range is converted piecewise, since not every platform converts it
// directly.
func wrap[U constraints.Unsigned](f float64) U {
	half := math.Ldexp(1, unsafex.LayoutOf[U]().Size*8-1)
	if f < half {
		return U(f)
	}
	return U(f-half) | U(half)
}
