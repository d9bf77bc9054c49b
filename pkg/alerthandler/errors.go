// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alerthandler

import (
	"fmt"
)

// ErrBadSentinel means an OTP byte is not one of the sparse values defined
// for its kind.
type ErrBadSentinel struct {
	Kind  string
	Value byte
}

func (err *ErrBadSentinel) Error() string {
	return fmt.Sprintf("bad sentinel value for %s: 0x%02x", err.Kind, err.Value)
}

// ErrOTPRead means the OTP reader could not provide a word.
type ErrOTPRead struct {
	Name   string
	Offset int
	Err    error
}

func (err *ErrOTPRead) Error() string {
	return fmt.Sprintf("unable to read OTP item '%s' at offset 0x%x: %v", err.Name, err.Offset, err.Err)
}

func (err *ErrOTPRead) Unwrap() error {
	return err.Err
}

// ErrIndexOutOfRange means a register index exceeds its multireg count.
type ErrIndexOutOfRange struct {
	Register string
	Index    int
	Count    int
}

func (err *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("bad %s index %d (count %d)", err.Register, err.Index, err.Count)
}

// ErrInvalidClass means an escalation class was required but the
// unclassified value was given.
type ErrInvalidClass struct {
	Class AlertClass
}

func (err *ErrInvalidClass) Error() string {
	return fmt.Sprintf("bad class: %v", err.Class)
}

// ErrFieldMismatch means a register differs between two AlertRegs.
type ErrFieldMismatch struct {
	Field    string
	Index    int
	Expected uint32
	Actual   uint32
}

func (err *ErrFieldMismatch) Error() string {
	return fmt.Sprintf("%s[%d]: expected 0x%08x, got 0x%08x",
		err.Field, err.Index, err.Expected, err.Actual)
}
