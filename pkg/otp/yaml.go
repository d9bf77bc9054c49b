// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package otp

import (
	"encoding/binary"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/linuxboot/otpcheck/pkg/compression"
	"github.com/linuxboot/otpcheck/pkg/log"
)

// An OTP image file looks like:
//
//	partitions:
//	  - name: OWNER_SW_CFG
//	    items:
//	      - name: OWNER_SW_CFG_ROM_ALERT_CLASS_EN
//	        value: 0xa9a9a9a9
//	      - name: OWNER_SW_CFG_ROM_ALERT_PHASE_CYCLES
//	        value: [0, 10, 10, 0xffffffff]
//	        size: 64
//
// A value is either a single word or a list of words. Size, in bytes, pads
// the value with zeros.
type imageFile struct {
	Partitions []partitionFile `yaml:"partitions"`
}

type partitionFile struct {
	Name  string     `yaml:"name"`
	Items []itemFile `yaml:"items"`
}

type itemFile struct {
	Name  string `yaml:"name"`
	Value Words  `yaml:"value"`
	Size  int    `yaml:"size"`
}

// Words is a list of 32-bit OTP words which may be written in YAML either
// as a scalar or as a sequence.
type Words []uint32

// UnmarshalYAML implements yaml.Unmarshaler.
func (w *Words) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		v, err := parseWord(node)
		if err != nil {
			return err
		}
		*w = Words{v}
	case yaml.SequenceNode:
		words := make(Words, 0, len(node.Content))
		for _, child := range node.Content {
			if child.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: nested sequences are not allowed in an OTP value", child.Line)
			}
			v, err := parseWord(child)
			if err != nil {
				return err
			}
			words = append(words, v)
		}
		*w = words
	default:
		return fmt.Errorf("line %d: OTP value must be a word or a list of words", node.Line)
	}
	return nil
}

func parseWord(node *yaml.Node) (uint32, error) {
	v, err := strconv.ParseUint(node.Value, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("line %d: invalid OTP word '%s': %w", node.Line, node.Value, err)
	}
	return uint32(v), nil
}

func (item itemFile) bytes() ([]byte, error) {
	valueSize := 4 * len(item.Value)
	size := valueSize
	if item.Size != 0 {
		if valueSize > item.Size {
			return nil, &ErrItemTooLarge{Name: item.Name, Size: item.Size, ValueSize: valueSize}
		}
		size = item.Size
	}
	b := make([]byte, size)
	for idx, word := range item.Value {
		binary.LittleEndian.PutUint32(b[4*idx:], word)
	}
	return b, nil
}

// ParseImage decodes a YAML OTP image.
func ParseImage(data []byte) (*Image, error) {
	var f imageFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unable to parse OTP image: %w", err)
	}

	partitions := make([]Partition, 0, len(f.Partitions))
	for _, pf := range f.Partitions {
		if len(pf.Items) == 0 {
			log.Warnf("OTP partition '%s' has no items", pf.Name)
		}
		p := Partition{Name: pf.Name, Items: make([]Item, 0, len(pf.Items))}
		for _, itf := range pf.Items {
			value, err := itf.bytes()
			if err != nil {
				return nil, err
			}
			p.Items = append(p.Items, Item{Name: itf.Name, Value: value})
		}
		partitions = append(partitions, p)
	}
	return NewImage(partitions)
}

// LoadImage reads and parses the OTP image at path. Files ending in a known
// compression extension are decompressed first.
func LoadImage(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read OTP image '%s': %w", path, err)
	}
	if c := compression.FromFilename(path); c != nil {
		data, err = c.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("unable to decompress OTP image '%s' (%s): %w", path, c.Name(), err)
		}
	}
	return ParseImage(data)
}
