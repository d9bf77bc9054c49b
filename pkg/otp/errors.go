// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package otp

import (
	"fmt"
)

// ErrUnknownItem means the image has no item with the requested name.
type ErrUnknownItem struct {
	Name string
}

func (err *ErrUnknownItem) Error() string {
	return fmt.Sprintf("no such OTP item: '%s'", err.Name)
}

// ErrOffsetOutOfRange means a word read does not fit inside the item.
type ErrOffsetOutOfRange struct {
	Name   string
	Offset int
	Size   int
	Err    error
}

func (err *ErrOffsetOutOfRange) Error() string {
	return fmt.Sprintf("offset 0x%x of OTP item '%s' (size %d) is out of range: %v",
		err.Offset, err.Name, err.Size, err.Err)
}

func (err *ErrOffsetOutOfRange) Unwrap() error {
	return err.Err
}

// ErrStartLessThanZero means `startIdx` has negative value
type ErrStartLessThanZero struct {
	StartIdx int
}

func (err *ErrStartLessThanZero) Error() string {
	return fmt.Sprintf("start index is less than zero: %d", err.StartIdx)
}

// ErrEndGreaterThanLength means `endIdx` is greater than the length.
type ErrEndGreaterThanLength struct {
	Length int
	EndIdx int
}

func (err *ErrEndGreaterThanLength) Error() string {
	return fmt.Sprintf("end index is outside of the bounds: %d > %d",
		err.EndIdx, err.Length)
}

// ErrDuplicateItem means two items in an image share a name.
type ErrDuplicateItem struct {
	Name      string
	Partition string
}

func (err *ErrDuplicateItem) Error() string {
	return fmt.Sprintf("duplicate OTP item '%s' in partition '%s'", err.Name, err.Partition)
}

// ErrItemTooLarge means an item's value does not fit its declared size.
type ErrItemTooLarge struct {
	Name      string
	Size      int
	ValueSize int
}

func (err *ErrItemTooLarge) Error() string {
	return fmt.Sprintf("value of OTP item '%s' is %d bytes, exceeding its size of %d bytes",
		err.Name, err.ValueSize, err.Size)
}

// ErrUnnamed means a partition or item has no name.
type ErrUnnamed struct {
	What  string
	Index int
}

func (err *ErrUnnamed) Error() string {
	return fmt.Sprintf("%s #%d has no name", err.What, err.Index)
}
