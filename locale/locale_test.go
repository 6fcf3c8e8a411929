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

package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/bufbuild/numgrok/locale"
)

func TestFixed(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".", locale.Standard.RadixString())
	assert.Equal(t, ".", locale.Fixed("").RadixString())
	assert.Equal(t, ",", locale.Fixed(",").RadixString())
	assert.Equal(t, "٫", locale.Fixed("٫").RadixString())

	assert.Equal(t, ".", locale.String(nil))
	assert.Equal(t, ",", locale.String(locale.Fixed(",")))
}

func TestForTag(t *testing.T) {
	t.Parallel()

	assert.Equal(t, locale.Fixed("."), locale.ForTag(language.English))
	assert.Equal(t, locale.Fixed(","), locale.ForTag(language.German))
	assert.Equal(t, locale.Fixed(","), locale.ForTag(language.French))
}
