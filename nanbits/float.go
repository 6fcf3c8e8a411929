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

package nanbits

import "github.com/bufbuild/numgrok/internal/ext/unsafex"

// NaN returns a float64 NaN carrying payload, given most significant byte
// first. See [Layout.SetPayload].
func NaN(payload []byte, signaling bool) (float64, error) {
	var b [8]byte
	err := Float64.SetPayload(b[:], payload, signaling)
	return unsafex.Bitcast[float64](b), err
}

// IsSignaling returns whether f is a signaling NaN.
func IsSignaling(f float64) bool {
	b := unsafex.Bitcast[[8]byte](f)
	return Float64.IsSignaling(b[:])
}

// SetSignaling returns f with its NaN discriminant set to signaling or quiet.
//
// f should be a NaN; the discriminant of any other value is an ordinary
// mantissa bit.
func SetSignaling(f float64, signaling bool) float64 {
	b := unsafex.Bitcast[[8]byte](f)
	Float64.SetSignaling(b[:], signaling)
	return unsafex.Bitcast[float64](b)
}

// Payload returns the payload of the float64 NaN f, most significant byte
// first.
func Payload(f float64) []byte {
	b := unsafex.Bitcast[[8]byte](f)
	return Float64.Payload(b[:])
}
