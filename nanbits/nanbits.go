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

// Package nanbits reads and writes the bits of a NaN that floating-point
// arithmetic does not: the quiet/signaling discriminant and the payload.
//
// Which state of the discriminant means "quiet" is not standardized. Most
// hardware treats a set bit as quiet; older MIPS and HPPA do the opposite.
// Rather than hard-coding either, each [Layout] is resolved once at init by
// looking at a NaN the platform produces itself, and every operation goes
// through that descriptor.
//
// All byte-level operations take the float's storage bytes in native memory
// order, i.e. what a bit-cast of the float to a byte array produces.
package nanbits

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/bufbuild/numgrok/internal/ext/unsafex"
)

// MaxPayloadBytes is the largest payload, in bytes, that any supported format
// could conceivably carry: the mantissa of an IEEE quadruple.
const MaxPayloadBytes = 128 / 8

// ErrPayloadTooLarge is returned when a payload has more significant bits
// than the format can store. The payload is still written, truncated to its
// low-order bits.
var ErrPayloadTooLarge = errors.New("nanbits: NaN payload too large")

var (
	// Float64 is the native layout of float64.
	Float64 = detect(52, math.NaN())
	// Float32 is the native layout of float32.
	Float32 = detect(23, float32(math.NaN()))
)

// Layout describes where a binary floating-point format stores its NaN
// discriminant and payload.
type Layout struct {
	// Size is the storage width, in bytes. At most 8.
	Size int
	// MantissaBits is the number of explicitly stored mantissa bits; 52 for
	// binary64, 23 for binary32.
	MantissaBits int
	// BigEndian is set if the most significant byte is stored first.
	BigEndian bool
	// QuietBitSet is set if a NaN whose discriminant bit is set is quiet.
	QuietBitSet bool

	quiet [8]byte // Storage of a quiet NaN.
}

// detect builds the layout for F by inspecting its storage on this machine.
func detect[F float32 | float64](mantissaBits int, quiet F) Layout {
	l := Layout{
		Size:         unsafex.LayoutOf[F]().Size,
		MantissaBits: mantissaBits,
	}

	// The sign/exponent byte of 1.0 is non-zero and its lowest byte is zero,
	// so whichever end holds the non-zero byte is the most significant one.
	one := storage(F(1))
	l.BigEndian = one[0] != 0

	q := storage(quiet)
	copy(l.quiet[:], q)
	offset, mask := l.HiByte()
	l.QuietBitSet = q[offset]&mask != 0
	return l
}

func storage[F float32 | float64](f F) []byte {
	switch f := any(f).(type) {
	case float32:
		b := unsafex.Bitcast[[4]byte](f)
		return b[:]
	case float64:
		b := unsafex.Bitcast[[8]byte](f)
		return b[:]
	}
	return nil
}

// HiByte returns the offset of the byte holding the most significant mantissa
// bit, which is the quiet/signaling discriminant, and a mask selecting that
// bit. Note that this bit need not be the highest bit of its byte.
func (l Layout) HiByte() (offset int, mask byte) {
	i := (l.MantissaBits - 1) / 8
	mask = 1 << ((l.MantissaBits - 1) % 8)
	if l.BigEndian {
		return l.Size - 1 - i, mask
	}
	return i, mask
}

// PayloadBits returns how many low-order mantissa bits a payload can occupy:
// every mantissa bit except the discriminant.
func (l Layout) PayloadBits() int {
	return l.MantissaBits - 1
}

// QuietNaN writes the platform's quiet NaN into b.
func (l Layout) QuietNaN(b []byte) {
	copy(b[:l.Size], l.quiet[:l.Size])
}

// IsNaN returns whether b holds a NaN.
func (l Layout) IsNaN(b []byte) bool {
	v := l.word(b)
	expBits := l.Size*8 - 1 - l.MantissaBits
	exp := v >> l.MantissaBits & (1<<expBits - 1)
	mant := v & (1<<l.MantissaBits - 1)
	return exp == 1<<expBits-1 && mant != 0
}

// IsSignaling returns whether b holds a signaling NaN.
func (l Layout) IsSignaling(b []byte) bool {
	if !l.IsNaN(b) {
		return false
	}
	offset, mask := l.HiByte()
	return (b[offset]&mask != 0) != l.QuietBitSet
}

// SetSignaling sets or clears the discriminant of the NaN in b so that it is
// signaling or quiet, according to this platform's polarity.
func (l Layout) SetSignaling(b []byte, signaling bool) {
	offset, mask := l.HiByte()
	if signaling != l.QuietBitSet {
		b[offset] |= mask
	} else {
		b[offset] &^= mask
	}
}

// SetPayload overwrites b with a NaN carrying payload, given most significant
// byte first, in its low-order mantissa bits.
//
// The payload is written from the least significant end; bits that do not fit
// are dropped and [ErrPayloadTooLarge] is returned. A signaling NaN must have
// some mantissa bit set, so a signaling NaN with an all-zero payload gets a
// payload of 1.
func (l Layout) SetPayload(b []byte, payload []byte, signaling bool) error {
	var err error
	if n := significantBits(payload); n > l.PayloadBits() {
		err = fmt.Errorf("%w: %d bits do not fit in %d", ErrPayloadTooLarge, n, l.PayloadBits())
	}
	if len(payload) > MaxPayloadBytes {
		payload = payload[len(payload)-MaxPayloadBytes:]
	}

	l.QuietNaN(b)
	offset, mask := l.HiByte()
	hibit := b[offset] & mask

	remaining := l.PayloadBits()
	for i, idx := 0, l.lsb(); remaining > 0; i, idx = i+1, l.next(idx) {
		var c byte
		if i < len(payload) {
			c = payload[len(payload)-1-i]
		}
		if remaining < 8 {
			m := byte(1)<<remaining - 1
			b[idx] = b[idx]&^m | c&m
			break
		}
		b[idx] = c
		remaining -= 8
	}

	// The write above may have touched the discriminant's byte.
	b[offset] = b[offset]&^mask | hibit
	l.SetSignaling(b, signaling)

	if signaling && !l.IsNaN(b) {
		b[l.lsb()] |= 1
	}
	return err
}

// Payload returns the payload bits of the NaN in b, most significant byte
// first. The result is always (PayloadBits+7)/8 bytes long.
func (l Layout) Payload(b []byte) []byte {
	remaining := l.PayloadBits()
	out := make([]byte, (remaining+7)/8)
	for i, idx := 0, l.lsb(); remaining > 0; i, idx = i+1, l.next(idx) {
		c := b[idx]
		if remaining < 8 {
			c &= byte(1)<<remaining - 1
			remaining = 0
		} else {
			remaining -= 8
		}
		out[len(out)-1-i] = c
	}
	return out
}

// lsb returns the offset of the least significant storage byte.
func (l Layout) lsb() int {
	if l.BigEndian {
		return l.Size - 1
	}
	return 0
}

// next steps from one storage byte to the next more significant one.
func (l Layout) next(idx int) int {
	if l.BigEndian {
		return idx - 1
	}
	return idx + 1
}

// word assembles b into an integer, most significant byte highest.
func (l Layout) word(b []byte) uint64 {
	var v uint64
	for i, idx := 0, l.lsb(); i < l.Size; i, idx = i+1, l.next(idx) {
		v |= uint64(b[idx]) << (8 * i)
	}
	return v
}

// significantBits returns the bit length of a big-endian byte string.
func significantBits(payload []byte) int {
	for i, c := range payload {
		if c != 0 {
			return (len(payload)-i-1)*8 + bits.Len8(c)
		}
	}
	return 0
}
