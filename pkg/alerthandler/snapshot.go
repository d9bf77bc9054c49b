// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alerthandler

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
)

// snapshot mirrors AlertRegs with slices so that the register counts of a
// decoded snapshot can be checked against the hardware description.
type snapshot struct {
	AlertRegWen    []uint32    `json:"alert_regwen"`
	AlertEn        []uint32    `json:"alert_en"`
	AlertClass     []uint32    `json:"alert_class"`
	LocAlertRegWen []uint32    `json:"loc_alert_regwen"`
	LocAlertEn     []uint32    `json:"loc_alert_en"`
	LocAlertClass  []uint32    `json:"loc_alert_class"`
	Classes        []ClassRegs `json:"classes"`
}

// ErrSnapshotLength means a register array in a snapshot does not have the
// number of elements the hardware has.
type ErrSnapshotLength struct {
	Field    string
	Length   int
	Expected int
}

func (err *ErrSnapshotLength) Error() string {
	return fmt.Sprintf("snapshot field '%s' has %d elements, expected %d",
		err.Field, err.Length, err.Expected)
}

// LoadAlertRegs decodes a JSON register snapshot, such as one written by
// WriteJSON or dumped from a device.
func LoadAlertRegs(r io.Reader) (*AlertRegs, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var snap snapshot
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("unable to decode register snapshot: %w", err)
	}

	var (
		regs   AlertRegs
		result *multierror.Error
	)
	copyExact := func(name string, dst, src []uint32) {
		if len(src) != len(dst) {
			result = multierror.Append(result, &ErrSnapshotLength{Field: name, Length: len(src), Expected: len(dst)})
			return
		}
		copy(dst, src)
	}
	copyExact("alert_regwen", regs.AlertRegWen[:], snap.AlertRegWen)
	copyExact("alert_en", regs.AlertEn[:], snap.AlertEn)
	copyExact("alert_class", regs.AlertClass[:], snap.AlertClass)
	copyExact("loc_alert_regwen", regs.LocAlertRegWen[:], snap.LocAlertRegWen)
	copyExact("loc_alert_en", regs.LocAlertEn[:], snap.LocAlertEn)
	copyExact("loc_alert_class", regs.LocAlertClass[:], snap.LocAlertClass)
	if len(snap.Classes) != len(regs.Classes) {
		result = multierror.Append(result, &ErrSnapshotLength{Field: "classes", Length: len(snap.Classes), Expected: len(regs.Classes)})
	} else {
		copy(regs.Classes[:], snap.Classes)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return &regs, nil
}

// WriteJSON writes regs as an indented JSON snapshot.
func (regs *AlertRegs) WriteJSON(w io.Writer) error {
	b, err := json.MarshalIndent(regs, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
