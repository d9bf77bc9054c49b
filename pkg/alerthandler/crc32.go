// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alerthandler

import (
	"encoding/binary"
	"hash"
	"hash/crc32"
	"io"
)

// field is a named run of registers, in the order the firmware feeds them
// into its CRC32.
type field struct {
	name  string
	words []uint32
}

// fields lists every register of regs in checksum order: the alert banks,
// the local alert banks, then each class (A to D) as REGWEN, CTRL,
// ACCUM_THRESH, TIMEOUT_CYC, PHASE0..3_CYC.
//
// Changing this order changes the checksum.
func (regs *AlertRegs) fields() []field {
	fields := []field{
		{"AlertRegWen", regs.AlertRegWen[:]},
		{"AlertEn", regs.AlertEn[:]},
		{"AlertClass", regs.AlertClass[:]},
		{"LocAlertRegWen", regs.LocAlertRegWen[:]},
		{"LocAlertEn", regs.LocAlertEn[:]},
		{"LocAlertClass", regs.LocAlertClass[:]},
	}
	for idx := range regs.Classes {
		c := &regs.Classes[idx]
		prefix := "Class" + AlertClassFromIndex(idx).String() + "."
		fields = append(fields,
			field{prefix + "RegWen", []uint32{c.RegWen}},
			field{prefix + "Ctrl", []uint32{c.Ctrl}},
			field{prefix + "AccumThresh", []uint32{c.AccumThresh}},
			field{prefix + "TimeoutCyc", []uint32{c.TimeoutCyc}},
			field{prefix + "PhaseCycs", c.PhaseCycs[:]},
		)
	}
	return fields
}

// WriteTo writes every register as a little-endian word in checksum order.
func (regs *AlertRegs) WriteTo(w io.Writer) (int64, error) {
	var (
		total int64
		buf   [4]byte
	)
	for _, f := range regs.fields() {
		for _, word := range f.words {
			binary.LittleEndian.PutUint32(buf[:], word)
			n, err := w.Write(buf[:])
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// NewCRC32 returns the CRC32 used by the ROM: CRC-32/ISO-HDLC, i.e. the
// reflected 0x04C11DB7 polynomial with all-ones init and final XOR.
func NewCRC32() hash.Hash32 {
	return crc32.NewIEEE()
}

// CRC32 computes the checksum of the registers, matching alert_config_crc32()
// in the ROM.
func (regs *AlertRegs) CRC32() uint32 {
	h := NewCRC32()
	// hash.Hash never returns an error from Write.
	_, _ = regs.WriteTo(h)
	return h.Sum32()
}

// Checksum is a convenience wrapper for regs.CRC32().
func Checksum(regs *AlertRegs) uint32 {
	return regs.CRC32()
}
