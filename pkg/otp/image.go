// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package otp

import (
	"encoding/binary"

	"github.com/hashicorp/go-multierror"
)

// Item is a named OTP value. Value holds the raw bytes as they are laid out
// in the fuse array, so multi-word items are little-endian word sequences.
type Item struct {
	Name  string
	Value []byte
}

// IsBlank reports whether the item is still unprogrammed, that is all of
// its fuses read as zero.
func (item *Item) IsBlank() bool {
	for _, b := range item.Value {
		if b != 0 {
			return false
		}
	}
	return true
}

// Partition is a named group of items.
type Partition struct {
	Name  string
	Items []Item
}

// Image is an in-memory OTP image. It is read-only once constructed and
// may be shared between goroutines.
type Image struct {
	Partitions []Partition

	items map[string]*Item
}

var _ Reader = (*Image)(nil)

// NewImage indexes the partitions by item name. Every structural problem is
// reported, not only the first one.
func NewImage(partitions []Partition) (*Image, error) {
	img := &Image{
		Partitions: partitions,
		items:      map[string]*Item{},
	}

	var result *multierror.Error
	for pIdx := range img.Partitions {
		p := &img.Partitions[pIdx]
		if p.Name == "" {
			result = multierror.Append(result, &ErrUnnamed{What: "partition", Index: pIdx})
		}
		for iIdx := range p.Items {
			item := &p.Items[iIdx]
			if item.Name == "" {
				result = multierror.Append(result, &ErrUnnamed{What: "item", Index: iIdx})
				continue
			}
			if _, ok := img.items[item.Name]; ok {
				result = multierror.Append(result, &ErrDuplicateItem{Name: item.Name, Partition: p.Name})
				continue
			}
			img.items[item.Name] = item
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return img, nil
}

// Item returns the item called name.
func (img *Image) Item(name string) (*Item, error) {
	item, ok := img.items[name]
	if !ok {
		return nil, &ErrUnknownItem{Name: name}
	}
	return item, nil
}

// Read32 implements Reader.
func (img *Image) Read32(name string) (uint32, error) {
	return img.Read32Offset(name, 0)
}

// Read32Offset implements Reader.
func (img *Image) Read32Offset(name string, offset int) (uint32, error) {
	item, err := img.Item(name)
	if err != nil {
		return 0, err
	}
	if err := checkRange(len(item.Value), offset, offset+4); err != nil {
		return 0, &ErrOffsetOutOfRange{Name: name, Offset: offset, Size: len(item.Value), Err: err}
	}
	return binary.LittleEndian.Uint32(item.Value[offset:]), nil
}
