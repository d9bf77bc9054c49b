// Copyright 2018 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compression implements reading and writing of compressed files.
//
// OTP images are plain text and are frequently archived compressed next to
// the firmware they were provisioned with; this package lets the loaders
// accept them transparently.
package compression

import (
	"path/filepath"
	"strings"
)

// Compressor defines a single compression scheme (such as XZ).
type Compressor interface {
	// Name is typically the name of a class.
	Name() string

	// Decode and Encode obey "x == Decode(Encode(x))".
	Decode(encodedData []byte) ([]byte, error)
	Encode(decodedData []byte) ([]byte, error)
}

var compressorsByExtension = map[string]Compressor{
	".xz":  &XZ{},
	".zst": &Zstd{},
	".lz4": &LZ4{},
}

// FromFilename returns a Compressor for the file extension of path, or nil
// if the file is not recognised as compressed.
func FromFilename(path string) Compressor {
	return compressorsByExtension[strings.ToLower(filepath.Ext(path))]
}

// TrimExtension strips the compression extension from path, if any.
func TrimExtension(path string) string {
	if FromFilename(path) == nil {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path))
}
