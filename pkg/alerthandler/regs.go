// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package alerthandler predicts the alert_handler register values the boot
// ROM programs from OTP, and the CRC32 the firmware computes over them.
//
// The result can be compared against a register dump taken from hardware or
// against the checksum the ROM reports, without access to the silicon.
package alerthandler

// ClassRegs are the per-class registers (CLASSx_*) of alert_handler.
type ClassRegs struct {
	// RegWen is CLASSx_REGWEN.
	RegWen uint32 `json:"regwen"`
	// Ctrl is CLASSx_CTRL_SHADOWED.
	Ctrl uint32 `json:"ctrl"`
	// AccumThresh is CLASSx_ACCUM_THRESH_SHADOWED.
	AccumThresh uint32 `json:"accum_thresh"`
	// TimeoutCyc is CLASSx_TIMEOUT_CYC_SHADOWED.
	TimeoutCyc uint32 `json:"timeout_cyc"`
	// PhaseCycs are CLASSx_PHASE0_CYC_SHADOWED ... CLASSx_PHASE3_CYC_SHADOWED.
	PhaseCycs [ParamNPhases]uint32 `json:"phase_cycs"`
}

// AlertRegs are the alert_handler register values covered by the ROM's
// alert configuration CRC32.
//
// AlertRegs holds only arrays, so copies never share state.
type AlertRegs struct {
	// AlertRegWen is ALERT_REGWEN.
	AlertRegWen [AlertRegWenMultiregCount]uint32 `json:"alert_regwen"`
	// AlertEn is ALERT_EN_SHADOWED.
	AlertEn [AlertEnShadowedMultiregCount]uint32 `json:"alert_en"`
	// AlertClass is ALERT_CLASS_SHADOWED.
	AlertClass [AlertClassShadowedMultiregCount]uint32 `json:"alert_class"`
	// LocAlertRegWen is LOC_ALERT_REGWEN.
	LocAlertRegWen [LocAlertRegWenMultiregCount]uint32 `json:"loc_alert_regwen"`
	// LocAlertEn is LOC_ALERT_EN_SHADOWED.
	LocAlertEn [LocAlertEnShadowedMultiregCount]uint32 `json:"loc_alert_en"`
	// LocAlertClass is LOC_ALERT_CLASS_SHADOWED.
	LocAlertClass [LocAlertClassShadowedMultiregCount]uint32 `json:"loc_alert_class"`
	// Classes holds the registers of classes A, B, C and D in that order.
	Classes [ParamNClasses]ClassRegs `json:"classes"`
}

// DefaultAlertRegs returns the register values of an unconfigured
// alert_handler: every REGWEN set, everything else cleared.
func DefaultAlertRegs() AlertRegs {
	var regs AlertRegs
	for idx := range regs.AlertRegWen {
		regs.AlertRegWen[idx] = 1
	}
	for idx := range regs.LocAlertRegWen {
		regs.LocAlertRegWen[idx] = 1
	}
	for idx := range regs.Classes {
		regs.Classes[idx].RegWen = 1
	}
	return regs
}

// alertSlots addresses one bank of per-alert registers, either the
// peripheral alerts or the local alerts.
type alertSlots struct {
	name     string
	regWen   []uint32
	en       []uint32
	class    []uint32
	literals [ParamNClasses]uint32
}

func (regs *AlertRegs) alerts() alertSlots {
	return alertSlots{
		name:   "alert",
		regWen: regs.AlertRegWen[:],
		en:     regs.AlertEn[:],
		class:  regs.AlertClass[:],
		literals: [ParamNClasses]uint32{
			AlertClassShadowedValueClassA,
			AlertClassShadowedValueClassB,
			AlertClassShadowedValueClassC,
			AlertClassShadowedValueClassD,
		},
	}
}

func (regs *AlertRegs) localAlerts() alertSlots {
	return alertSlots{
		name:   "local alert",
		regWen: regs.LocAlertRegWen[:],
		en:     regs.LocAlertEn[:],
		class:  regs.LocAlertClass[:],
		literals: [ParamNClasses]uint32{
			LocAlertClassShadowedValueClassA,
			LocAlertClassShadowedValueClassB,
			LocAlertClassShadowedValueClassC,
			LocAlertClassShadowedValueClassD,
		},
	}
}

// configure applies the classification and enable level of alert index.
// Unclassified alerts are left untouched. A locked alert clears its REGWEN,
// and nothing here ever sets a REGWEN again.
func (s alertSlots) configure(index int, cls AlertClass, enable AlertEnable) error {
	if index < 0 || index >= len(s.class) {
		return &ErrIndexOutOfRange{Register: s.name, Index: index, Count: len(s.class)}
	}

	switch cls {
	case AlertClassA, AlertClassB, AlertClassC, AlertClassD:
		s.class[index] = s.literals[cls.Index()]
	default:
		return nil
	}

	switch enable {
	case AlertEnableEnabled:
		s.en[index] = 1
	case AlertEnableLocked:
		s.en[index] = 1
		s.regWen[index] = 0
	}
	return nil
}

// classConfig is the decoded OTP configuration of one escalation class.
type classConfig struct {
	enable      AlertEnable
	escalate    AlertEscalate
	accumThresh uint32
	timeoutCyc  uint32
	phaseCycs   [ParamNPhases]uint32
}

// ctrl builds CLASSx_CTRL_SHADOWED. Phase N always routes to escalation
// signal N; for phase 0 that is an all-zero field.
func (cfg *classConfig) ctrl() uint32 {
	var reg uint32
	for phase, field := range ctrlEscalationMap {
		reg |= (uint32(phase) & field.mask) << field.offset
	}

	switch cfg.enable {
	case AlertEnableEnabled:
		reg |= 1 << ClassCtrlShadowedEnBit
	case AlertEnableLocked:
		reg |= 1<<ClassCtrlShadowedEnBit | 1<<ClassCtrlShadowedLockBit
	}

	for phase := 0; phase < cfg.escalate.Phases(); phase++ {
		reg |= 1 << ctrlEscalationEnableBits[phase]
	}
	return reg
}

func (regs *AlertRegs) classConfigure(cls AlertClass, cfg *classConfig) error {
	switch cls {
	case AlertClassA, AlertClassB, AlertClassC, AlertClassD:
	default:
		return &ErrInvalidClass{Class: cls}
	}

	c := &regs.Classes[cls.Index()]
	c.Ctrl = cfg.ctrl()
	c.AccumThresh = cfg.accumThresh
	c.TimeoutCyc = cfg.timeoutCyc
	c.PhaseCycs = cfg.phaseCycs
	return nil
}
