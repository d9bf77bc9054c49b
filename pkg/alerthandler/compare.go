// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alerthandler

import (
	"github.com/hashicorp/go-multierror"
)

// Compare checks actual against expected register by register and returns
// an *ErrFieldMismatch for every differing word, or nil if they are equal.
func Compare(expected, actual *AlertRegs) error {
	var result *multierror.Error
	want, got := expected.fields(), actual.fields()
	for fIdx, f := range want {
		for wIdx, word := range f.words {
			if other := got[fIdx].words[wIdx]; other != word {
				result = multierror.Append(result, &ErrFieldMismatch{
					Field:    f.name,
					Index:    wIdx,
					Expected: word,
					Actual:   other,
				})
			}
		}
	}
	return result.ErrorOrNil()
}
