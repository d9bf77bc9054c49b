// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package otp provides access to one-time-programmable fuse values as
// named 32-bit words.
package otp

// Reader is the capability to read 32-bit OTP words by item name.
type Reader interface {
	// Read32 returns the first word of the item called name.
	Read32(name string) (uint32, error)

	// Read32Offset returns the little-endian word starting at byte offset
	// within the multi-word item called name.
	Read32Offset(name string, offset int) (uint32, error)
}

// ReaderFunc adapts a plain function to the Reader interface.
type ReaderFunc func(name string, offset int) (uint32, error)

var _ Reader = ReaderFunc(nil)

// Read32 implements Reader.
func (f ReaderFunc) Read32(name string) (uint32, error) {
	return f(name, 0)
}

// Read32Offset implements Reader.
func (f ReaderFunc) Read32Offset(name string, offset int) (uint32, error) {
	return f(name, offset)
}
