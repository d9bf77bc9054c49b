// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alerthandler

// Hardware description of the alert_handler instance this package models.
// The values mirror the register-tool output for the top level and must be
// updated together with it.
const (
	// ParamNAlerts is the number of alert sources from other peripherals.
	ParamNAlerts = 70
	// ParamNLocAlert is the number of alert sources internal to alert_handler.
	ParamNLocAlert = 7
	// ParamNClasses is the number of escalation classes.
	ParamNClasses = 4
	// ParamNPhases is the number of escalation phases per class.
	ParamNPhases = 4

	AlertRegWenMultiregCount        = ParamNAlerts
	AlertEnShadowedMultiregCount    = ParamNAlerts
	AlertClassShadowedMultiregCount = ParamNAlerts

	LocAlertRegWenMultiregCount        = ParamNLocAlert
	LocAlertEnShadowedMultiregCount    = ParamNLocAlert
	LocAlertClassShadowedMultiregCount = ParamNLocAlert
)

// ALERT_CLASS_SHADOWED and LOC_ALERT_CLASS_SHADOWED field values.
const (
	AlertClassShadowedValueClassA uint32 = 0x0
	AlertClassShadowedValueClassB uint32 = 0x1
	AlertClassShadowedValueClassC uint32 = 0x2
	AlertClassShadowedValueClassD uint32 = 0x3

	LocAlertClassShadowedValueClassA uint32 = 0x0
	LocAlertClassShadowedValueClassB uint32 = 0x1
	LocAlertClassShadowedValueClassC uint32 = 0x2
	LocAlertClassShadowedValueClassD uint32 = 0x3
)

// CLASSx_CTRL_SHADOWED layout, identical for every class.
const (
	ClassCtrlShadowedEnBit   = 0
	ClassCtrlShadowedLockBit = 1
	ClassCtrlShadowedEnE0Bit = 2
	ClassCtrlShadowedEnE1Bit = 3
	ClassCtrlShadowedEnE2Bit = 4
	ClassCtrlShadowedEnE3Bit = 5

	ClassCtrlShadowedMapE0Mask   uint32 = 0x3
	ClassCtrlShadowedMapE0Offset        = 6
	ClassCtrlShadowedMapE1Mask   uint32 = 0x3
	ClassCtrlShadowedMapE1Offset        = 8
	ClassCtrlShadowedMapE2Mask   uint32 = 0x3
	ClassCtrlShadowedMapE2Offset        = 10
	ClassCtrlShadowedMapE3Mask   uint32 = 0x3
	ClassCtrlShadowedMapE3Offset        = 12
)

// ctrlField is a bit field inside CLASSx_CTRL_SHADOWED.
type ctrlField struct {
	mask   uint32
	offset uint
}

// Per-phase views of the CTRL layout, indexed by phase.
var (
	ctrlEscalationEnableBits = [ParamNPhases]uint{
		ClassCtrlShadowedEnE0Bit,
		ClassCtrlShadowedEnE1Bit,
		ClassCtrlShadowedEnE2Bit,
		ClassCtrlShadowedEnE3Bit,
	}
	ctrlEscalationMap = [ParamNPhases]ctrlField{
		{ClassCtrlShadowedMapE0Mask, ClassCtrlShadowedMapE0Offset},
		{ClassCtrlShadowedMapE1Mask, ClassCtrlShadowedMapE1Offset},
		{ClassCtrlShadowedMapE2Mask, ClassCtrlShadowedMapE2Offset},
		{ClassCtrlShadowedMapE3Mask, ClassCtrlShadowedMapE3Offset},
	}
)
