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

// package unsafex contains extensions to Go's package unsafe.
//
// Importing this package should be treated as equivalent to importing unsafe.
package unsafex

import (
	"fmt"
	"unsafe"
)

// Layout is the layout of a type.
type Layout struct {
	Size, Align int
}

// LayoutOf returns the layout of some type.
func LayoutOf[T any]() Layout {
	var v T
	return Layout{
		Size:  int(unsafe.Sizeof(v)),
		Align: int(unsafe.Alignof(v)),
	}
}

// Bitcast bit-casts a value of type From to a value of type To.
//
// Bit-casting a float to a byte array yields its storage bytes in the
// machine's native order, which is what nanbits needs to locate the NaN
// discriminant without assuming an endianness.
//
// Panics if To and From have different sizes.
//
//go:nosplit
func Bitcast[To, From any](v From) To {
	if LayoutOf[To]().Size != LayoutOf[From]().Size {
		panic(badBitcast[To, From]{})
	}

	// To avoid an unaligned load below, we copy From into
	// a struct aligned to To.
	aligned := struct {
		_ [0]To
		v From
	}{v: v}

	return *(*To)(unsafe.Pointer(&aligned))
}

type badBitcast[To, From any] struct{}

func (badBitcast[To, From]) Error() string {
	var to To
	var from From
	return fmt.Sprintf(
		"unsafex: %T and %T are of unequal size (%d != %d)",
		to, from,
		LayoutOf[To]().Size, LayoutOf[From]().Size,
	)
}
