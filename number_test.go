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
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/numgrok"
	"github.com/bufbuild/numgrok/locale"
)

func TestNumber(t *testing.T) {
	t.Parallel()

	const (
		integer  = numgrok.Integer
		tooLarge = numgrok.TooLarge
		notInt   = numgrok.NotInteger
		negative = numgrok.Negative
		trailing = numgrok.Trailing
	)

	tests := []struct {
		text  string
		opts  numgrok.Options
		value uint64
		want  numgrok.Outcome
	}{
		{text: "0", want: integer},
		{text: "123", value: 123, want: integer},
		{text: " \t-42 \n", value: 42, want: integer | negative},
		{text: "+7", value: 7, want: integer},
		{text: "1.5", value: 1, want: integer | notInt},
		{text: "5.", value: 5, want: integer | notInt},
		{text: ".5", want: integer | notInt},
		{text: "-.5", want: integer | notInt | negative},
		{text: "1e5", want: notInt},
		{text: "-1.5E-3", want: notInt | negative},
		{text: ".5e+10", want: notInt},
		{text: "123456789012", value: 123456789012, want: integer},
		{text: "18446744073709551615", value: math.MaxUint64, want: integer},
		{text: "18446744073709551616", value: math.MaxUint64, want: tooLarge},
		{text: "99999999999999999999.5", value: math.MaxUint64, want: tooLarge | notInt},
		{text: "0 but true", want: integer},

		// Failures.
		{text: ""},
		{text: "   "},
		{text: "-"},
		{text: "."},
		{text: ".e5"},
		{text: "e5"},
		{text: "1e"},
		{text: "1e+"},
		{text: "12abc"},
		{text: "1_000"},
		{text: "1 2"},
		{text: "0 but true "},
		{text: "0 BUT TRUE"},
		{text: " 0 but true"},

		// Trailing garbage.
		{text: "1e", opts: numgrok.AllowTrailing, value: 1, want: integer | trailing},
		{text: "12abc", opts: numgrok.AllowTrailing, value: 12, want: integer | trailing},
		{text: "12nope", opts: numgrok.AllowTrailing},
		{text: "12 inch", opts: numgrok.AllowTrailing},
		{text: "12in", opts: numgrok.AllowTrailing, value: 12, want: integer | trailing},
		{text: "1.5 x", opts: numgrok.AllowTrailing, value: 1, want: integer | notInt | trailing},
		{text: "1e5x", opts: numgrok.AllowTrailing, want: notInt | trailing},
	}

	for _, tt := range tests {
		t.Run(strconv.Quote(tt.text), func(t *testing.T) {
			t.Parallel()

			n := new(numgrok.Grokker).Number([]byte(tt.text), tt.opts)
			assert.Equal(t, tt.want, n.Outcome, "got %v", n.Outcome)
			assert.Equal(t, tt.value, n.Value)
			assert.False(t, n.Outcome.Has(integer|tooLarge))
		})
	}
}

func TestNumberInfNaN(t *testing.T) {
	t.Parallel()

	const (
		notInt   = numgrok.NotInteger
		negative = numgrok.Negative
		inf      = numgrok.Infinity
		nan      = numgrok.NaN
		trailing = numgrok.Trailing
	)

	tests := []struct {
		text  string
		want  numgrok.Outcome
		float float64
	}{
		{"inf", inf | notInt, math.Inf(1)},
		{"INF", inf | notInt, math.Inf(1)},
		{"Infinity", inf | notInt, math.Inf(1)},
		{"-infinity", inf | notInt | negative, math.Inf(-1)},
		{" +inf ", inf | notInt, math.Inf(1)},
		{"1.#INF", inf | notInt, math.Inf(1)},
		{"-1.#INF00", inf | notInt | negative, math.Inf(-1)},
		{"1#inf", inf | notInt, math.Inf(1)},
		{"infinite", inf | notInt | trailing, math.Inf(1)},
		{"1.#IND", nan | notInt, math.NaN()},
		{"nan", nan | notInt, math.NaN()},
		{"-NaN", nan | notInt, math.NaN()},
		{"nanq", nan | notInt, math.NaN()},
		{"snan(0x1)", nan | notInt, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			n := new(numgrok.Grokker).Number([]byte(tt.text), 0)
			assert.Equal(t, tt.want, n.Outcome, "got %v", n.Outcome)
			if math.IsNaN(tt.float) {
				assert.True(t, math.IsNaN(n.Float))
			} else {
				assert.Equal(t, tt.float, n.Float)
			}
		})
	}

	// Too short to even try.
	assert.Zero(t, new(numgrok.Grokker).Number([]byte("in"), 0).Outcome)
	assert.Zero(t, new(numgrok.Grokker).Number([]byte("1.#"), 0).Outcome)
}

func TestNumberLocale(t *testing.T) {
	t.Parallel()

	g := &numgrok.Grokker{Radix: locale.Fixed(",")}
	n := g.Number([]byte("3,25"), 0)
	assert.Equal(t, numgrok.Integer|numgrok.NotInteger, n.Outcome)
	assert.Equal(t, uint64(3), n.Value)

	// "." is always accepted.
	n = g.Number([]byte("3.25"), 0)
	assert.Equal(t, numgrok.Integer|numgrok.NotInteger, n.Outcome)

	g = &numgrok.Grokker{Radix: locale.Fixed("٫")}
	n = g.Number([]byte("3٫25"), 0)
	assert.Equal(t, numgrok.Integer|numgrok.NotInteger, n.Outcome)
	n = g.Number([]byte("٫25"), 0)
	assert.Equal(t, numgrok.Integer|numgrok.NotInteger, n.Outcome)

	// Without the locale, the comma is garbage.
	assert.Zero(t, new(numgrok.Grokker).Number([]byte("3,25"), 0).Outcome)
}

func TestNumberErr(t *testing.T) {
	t.Parallel()

	g := new(numgrok.Grokker)
	assert.NoError(t, g.Number([]byte("12"), 0).Err())
	assert.NoError(t, g.Number([]byte("1e5"), 0).Err())
	assert.NoError(t, g.Number([]byte("nan"), 0).Err())
	assert.ErrorIs(t, g.Number([]byte("abc"), 0).Err(), numgrok.ErrSyntax)
	assert.ErrorIs(t, g.Number([]byte("abc"), numgrok.AllowTrailing).Err(), numgrok.ErrSyntax)
	assert.ErrorIs(t, g.Number([]byte("-"), 0).Err(), numgrok.ErrSyntax)
	assert.ErrorIs(t, g.Number([]byte("99999999999999999999"), 0).Err(), numgrok.ErrRange)
}

func TestLooksLikeNumber(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"12", " 1e5 ", "-.5", "nan", "Inf", "0 but true"} {
		assert.True(t, numgrok.LooksLikeNumber([]byte(text)), text)
	}
	for _, text := range []string{"", "12x", "x12", "1e", "0x10", "1,5"} {
		assert.False(t, numgrok.LooksLikeNumber([]byte(text)), text)
	}
}

func TestNumberRoundTrip(t *testing.T) {
	t.Parallel()

	g := new(numgrok.Grokker)
	for _, v := range []uint64{
		0, 1, 9, 10, 99, 100, 999999999, 1000000000, 4294967295, 4294967296,
		1<<53 + 1, math.MaxUint64 / 10, math.MaxUint64 - 1, math.MaxUint64,
	} {
		text := strconv.FormatUint(v, 10)
		n := g.Number([]byte(text), 0)
		assert.Equal(t, numgrok.Number{Value: v, Outcome: numgrok.Integer}, n, text)

		// Re-parsing yields the same thing.
		again := g.Number([]byte(strconv.FormatUint(n.Value, 10)), 0)
		assert.Equal(t, n, again)
	}
}

// The unrolled accumulator must agree with the fully checked one on every
// input.
func TestDecimalFastPath(t *testing.T) {
	t.Parallel()

	check := func(text string) {
		fv, fe, fok := numgrok.DecimalPrefix([]byte(text))
		cv, ce, cok := numgrok.CheckedDecimal([]byte(text))
		assert.Equal(t, cv, fv, text)
		assert.Equal(t, ce, fe, text)
		assert.Equal(t, cok, fok, text)
	}

	for i := range 20000 {
		check(strconv.Itoa(i))
		check(strconv.Itoa(i) + "x")
		check("0000" + strconv.Itoa(i))
	}
	for digits := 1; digits <= 25; digits++ {
		for _, d := range "019" {
			text := ""
			for range digits {
				text += string(d)
			}
			check(text)
			check("1" + text)
		}
	}
	check("18446744073709551615")
	check("18446744073709551616")
	check("18446744073709551620")
	check("99999999999999999999999999")
}
