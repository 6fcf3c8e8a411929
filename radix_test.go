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

package numgrok_test

import (
	"math"
	"math/big"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/numgrok"
	"github.com/bufbuild/numgrok/reporter"
)

func TestRadixRoundTrip(t *testing.T) {
	t.Parallel()

	values := []uint64{
		0, 1, 2, 7, 8, 15, 16, 255, 256, 0755,
		math.MaxUint32, math.MaxUint32 + 1,
		0xdeadbeefcafe, 1 << 63, math.MaxUint64 - 1, math.MaxUint64,
	}
	scanners := []struct {
		base int
		scan func(*numgrok.Grokker, []byte, numgrok.Options) numgrok.Scan
	}{
		{2, (*numgrok.Grokker).Bin},
		{8, (*numgrok.Grokker).Oct},
		{16, (*numgrok.Grokker).Hex},
	}

	for _, s := range scanners {
		for _, v := range values {
			text := strconv.FormatUint(v, s.base)
			got := s.scan(nil, []byte(text), numgrok.SilentNonPortable)
			assert.Equal(t, numgrok.Scan{Value: v, Len: len(text)}, got, "%d in base %d", v, s.base)
		}
	}
}

func TestRadixPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		scan func(*numgrok.Grokker, []byte, numgrok.Options) numgrok.Scan
		text string
		opts numgrok.Options
		want numgrok.Scan
	}{
		{"hex-0x", (*numgrok.Grokker).Hex, "0xff", 0, numgrok.Scan{Value: 0xff, Len: 4}},
		{"hex-x", (*numgrok.Grokker).Hex, "XfF", 0, numgrok.Scan{Value: 0xff, Len: 3}},
		{"hex-disallowed", (*numgrok.Grokker).Hex, "0xff", numgrok.DisallowPrefix, numgrok.Scan{Len: 1}},
		{"hex-empty", (*numgrok.Grokker).Hex, "", 0, numgrok.Scan{}},
		{"hex-just-x", (*numgrok.Grokker).Hex, "x", 0, numgrok.Scan{Len: 1}},
		{"hex-just-0x", (*numgrok.Grokker).Hex, "0x", 0, numgrok.Scan{Len: 2}},
		{"bin-0b", (*numgrok.Grokker).Bin, "0b101", 0, numgrok.Scan{Value: 5, Len: 5}},
		{"bin-b", (*numgrok.Grokker).Bin, "B11", 0, numgrok.Scan{Value: 3, Len: 3}},
		{"bin-stops", (*numgrok.Grokker).Bin, "1012", 0, numgrok.Scan{Value: 5, Len: 3}},
		{"oct-leading-zero", (*numgrok.Grokker).Oct, "0777", 0, numgrok.Scan{Value: 0777, Len: 4}},
		{"oct-no-prefix", (*numgrok.Grokker).Oct, "0o7", 0, numgrok.Scan{Len: 1}},
		{"nul", (*numgrok.Grokker).Hex, "ab\x00cd", 0, numgrok.Scan{Value: 0xab, Len: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.scan(nil, []byte(tt.text), tt.opts|numgrok.SilentIllegalDigit))
		})
	}
}

func TestRadixSeparators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want numgrok.Scan
	}{
		{"1_000", numgrok.Scan{Value: 0x1000, Len: 5}},
		{"1_0_0_0", numgrok.Scan{Value: 0x1000, Len: 7}},
		{"_1000", numgrok.Scan{Len: 0}},
		{"1000_", numgrok.Scan{Value: 0x1000, Len: 4}},
		{"1__000", numgrok.Scan{Value: 1, Len: 1}},
		{"0x_1", numgrok.Scan{Len: 2}},
		{"1_g", numgrok.Scan{Value: 1, Len: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			got := new(numgrok.Grokker).Hex([]byte(tt.text), numgrok.AllowUnderscores)
			assert.Equal(t, tt.want, got)
		})
	}

	// Without the option, separators are illegal digits.
	got := new(numgrok.Grokker).Hex([]byte("1_000"), 0)
	assert.Equal(t, numgrok.Scan{Value: 1, Len: 1}, got)
}

func TestRadixOverflow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		scan func(*numgrok.Grokker, []byte, numgrok.Options) numgrok.Scan
		base int
	}{
		{"binary", (*numgrok.Grokker).Bin, 2},
		{"octal", (*numgrok.Grokker).Oct, 8},
		{"hexadecimal", (*numgrok.Grokker).Hex, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// MaxUint64 + 1.
			maxP1 := new(big.Int).Lsh(big.NewInt(1), 64)
			text := maxP1.Text(tt.base)

			r := new(reporter.Collector)
			s := tt.scan(&numgrok.Grokker{Reporter: r}, []byte(text), 0)

			assert.Equal(t, numgrok.TooLarge, s.Outcome)
			assert.Equal(t, uint64(math.MaxUint64), s.Value)
			assert.Equal(t, len(text), s.Len)
			assert.InDelta(t, 0x1p64, s.Float, 0x1p12)
			assert.Equal(t, 0x1p64, s.Float64())

			assert.True(t, r.Tagged(reporter.Overflow))
			assert.True(t, r.Tagged(reporter.NonPortable))
			assert.False(t, r.Tagged(reporter.IllegalDigit))
		})
	}
}

func TestRadixDiagnostics(t *testing.T) {
	t.Parallel()

	r := new(reporter.Collector)
	g := &numgrok.Grokker{Reporter: r}

	g.Hex([]byte("0x10000000000000000"), 0)
	want := []reporter.Diagnostic{
		reporter.Errorf(reporter.NonPortable, 0, "Hexadecimal number > 0xffffffff non-portable"),
		reporter.Errorf(reporter.Overflow, 18, "Integer overflow in hexadecimal number"),
	}
	if diff := cmp.Diff(want, r.Diagnostics()); diff != "" {
		t.Errorf("hex overflow (-want, +got):\n%s", diff)
	}

	r.Reset()
	g.Bin([]byte("0b1012"), 0)
	g.Oct([]byte("1238"), 0)
	g.Oct([]byte("12x"), 0)
	g.Hex([]byte("1g"), 0)
	g.Hex([]byte("1\x01"), 0)
	want = []reporter.Diagnostic{
		reporter.Errorf(reporter.IllegalDigit, 1, "Illegal hexadecimal digit 'g' ignored"),
		reporter.Errorf(reporter.IllegalDigit, 1, "Illegal hexadecimal digit '<U+0001>' ignored"),
		reporter.Errorf(reporter.IllegalDigit, 3, "Illegal octal digit '8' ignored"),
		reporter.Errorf(reporter.IllegalDigit, 5, "Illegal binary digit '2' ignored"),
	}
	if diff := cmp.Diff(want, r.Diagnostics()); diff != "" {
		t.Errorf("illegal digits (-want, +got):\n%s", diff)
	}

	r.Reset()
	g.Oct([]byte("77777777777"), 0)
	require.Equal(t, 1, r.Len())
	assert.Equal(t, reporter.Remark, r.Diagnostics()[0].Level)
	assert.Equal(t, "Octal number > 037777777777 non-portable", r.Diagnostics()[0].Message)

	r.Reset()
	g.Oct([]byte("77777777777"), numgrok.SilentNonPortable)
	g.Hex([]byte("zz"), numgrok.SilentIllegalDigit)
	g.Hex([]byte("ffffffff"), 0)
	assert.Zero(t, r.Len())
}

func TestScanFloat(t *testing.T) {
	t.Parallel()

	f, n := new(numgrok.Grokker).ScanHex([]byte("0x1_0000_0000_0000_0000"), numgrok.AllowUnderscores)
	assert.Equal(t, 0x1p64, f)
	assert.Equal(t, 23, n)

	f, n = new(numgrok.Grokker).ScanOct([]byte("755 "), 0)
	assert.Equal(t, float64(0755), f)
	assert.Equal(t, 3, n)

	f, n = new(numgrok.Grokker).ScanBin([]byte("b1111"), 0)
	assert.Equal(t, float64(15), f)
	assert.Equal(t, 5, n)
}
