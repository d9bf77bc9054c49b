// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alerthandler

import (
	"fmt"
)

// The OTP encodes alert configuration with sparse byte values which are far
// apart in Hamming distance, so that a few flipped fuse bits never turn one
// valid value into another. Decoding is strict: a byte outside the known set
// is an error, never a default.

// AlertClass is the escalation class an alert is assigned to.
type AlertClass uint8

// Alert classification values as stored in OTP.
const (
	AlertClassX AlertClass = 0x94
	AlertClassA AlertClass = 0xee
	AlertClassB AlertClass = 0x64
	AlertClassC AlertClass = 0xa7
	AlertClassD AlertClass = 0x32
)

// ParseAlertClass decodes an OTP byte into an AlertClass.
func ParseAlertClass(b byte) (AlertClass, error) {
	switch cls := AlertClass(b); cls {
	case AlertClassX, AlertClassA, AlertClassB, AlertClassC, AlertClassD:
		return cls, nil
	}
	return 0, &ErrBadSentinel{Kind: "alert class", Value: b}
}

// Index returns the class index (A=0 ... D=3). Unclassified alerts
// report index 0; the ROM uses it only to pick an enable byte.
func (cls AlertClass) Index() int {
	switch cls {
	case AlertClassB:
		return 1
	case AlertClassC:
		return 2
	case AlertClassD:
		return 3
	}
	return 0
}

// AlertClassFromIndex is the inverse of Index for the classes A-D. Any other
// index yields AlertClassX.
func AlertClassFromIndex(index int) AlertClass {
	switch index {
	case 0:
		return AlertClassA
	case 1:
		return AlertClassB
	case 2:
		return AlertClassC
	case 3:
		return AlertClassD
	}
	return AlertClassX
}

func (cls AlertClass) String() string {
	switch cls {
	case AlertClassX:
		return "X"
	case AlertClassA:
		return "A"
	case AlertClassB:
		return "B"
	case AlertClassC:
		return "C"
	case AlertClassD:
		return "D"
	}
	return fmt.Sprintf("AlertClass(0x%02x)", uint8(cls))
}

// AlertEnable is the enable level of an alert or class.
type AlertEnable uint8

// Alert enable values as stored in OTP.
const (
	AlertEnableNone    AlertEnable = 0xa9
	AlertEnableEnabled AlertEnable = 0x07
	AlertEnableLocked  AlertEnable = 0xd2
)

// ParseAlertEnable decodes an OTP byte into an AlertEnable.
func ParseAlertEnable(b byte) (AlertEnable, error) {
	switch en := AlertEnable(b); en {
	case AlertEnableNone, AlertEnableEnabled, AlertEnableLocked:
		return en, nil
	}
	return 0, &ErrBadSentinel{Kind: "alert enable", Value: b}
}

func (en AlertEnable) String() string {
	switch en {
	case AlertEnableNone:
		return "None"
	case AlertEnableEnabled:
		return "Enabled"
	case AlertEnableLocked:
		return "Locked"
	}
	return fmt.Sprintf("AlertEnable(0x%02x)", uint8(en))
}

// AlertEscalate is the last escalation phase enabled for a class.
type AlertEscalate uint8

// Alert escalation values as stored in OTP.
const (
	AlertEscalateNone   AlertEscalate = 0xd1
	AlertEscalatePhase0 AlertEscalate = 0xb9
	AlertEscalatePhase1 AlertEscalate = 0xcb
	AlertEscalatePhase2 AlertEscalate = 0x25
	AlertEscalatePhase3 AlertEscalate = 0x76
)

// ParseAlertEscalate decodes an OTP byte into an AlertEscalate.
func ParseAlertEscalate(b byte) (AlertEscalate, error) {
	switch esc := AlertEscalate(b); esc {
	case AlertEscalateNone, AlertEscalatePhase0, AlertEscalatePhase1, AlertEscalatePhase2, AlertEscalatePhase3:
		return esc, nil
	}
	return 0, &ErrBadSentinel{Kind: "alert escalation", Value: b}
}

// Phases returns how many escalation phases are enabled. Selecting phase K
// enables phases 0 through K.
func (esc AlertEscalate) Phases() int {
	switch esc {
	case AlertEscalatePhase0:
		return 1
	case AlertEscalatePhase1:
		return 2
	case AlertEscalatePhase2:
		return 3
	case AlertEscalatePhase3:
		return 4
	}
	return 0
}

func (esc AlertEscalate) String() string {
	switch esc {
	case AlertEscalateNone:
		return "None"
	case AlertEscalatePhase0:
		return "Phase0"
	case AlertEscalatePhase1:
		return "Phase1"
	case AlertEscalatePhase2:
		return "Phase2"
	case AlertEscalatePhase3:
		return "Phase3"
	}
	return fmt.Sprintf("AlertEscalate(0x%02x)", uint8(esc))
}
