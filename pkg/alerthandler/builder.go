// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alerthandler

import (
	"github.com/linuxboot/otpcheck/pkg/lcstate"
	"github.com/linuxboot/otpcheck/pkg/log"
	"github.com/linuxboot/otpcheck/pkg/otp"
)

// lcLane returns which byte of a classification word applies to state.
// ok is false for the Test state, in which the ROM does not configure
// alert_handler at all.
func lcLane(state lcstate.State) (lane int, ok bool, err error) {
	switch state {
	case lcstate.Prod:
		return 0, true, nil
	case lcstate.ProdEnd:
		return 1, true, nil
	case lcstate.Dev:
		return 2, true, nil
	case lcstate.Rma:
		return 3, true, nil
	case lcstate.Test:
		return 0, false, nil
	}
	return 0, false, &lcstate.ErrUnknownState{State: state}
}

// byteLane returns byte idx of the little-endian representation of word.
func byteLane(word uint32, idx int) byte {
	return byte(word >> (8 * uint(idx)))
}

func read32(r otp.Reader, name string) (uint32, error) {
	v, err := r.Read32(name)
	if err != nil {
		return 0, &ErrOTPRead{Name: name, Err: err}
	}
	return v, nil
}

func read32Offset(r otp.Reader, name string, offset int) (uint32, error) {
	v, err := r.Read32Offset(name, offset)
	if err != nil {
		return 0, &ErrOTPRead{Name: name, Offset: offset, Err: err}
	}
	return v, nil
}

// Derive returns the alert_handler register values the ROM programs for the
// given lifecycle state and OTP contents.
//
// The result matches the device state after shutdown_init() in the ROM. Any
// read or decode failure aborts the derivation and no registers are returned.
func Derive(state lcstate.State, r otp.Reader) (*AlertRegs, error) {
	regs := DefaultAlertRegs()

	lane, ok, err := lcLane(state)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Infof("alert_handler is not configured from OTP in lifecycle state %v", state)
		return &regs, nil
	}

	classEn, err := read32(r, OTPAlertClassEn)
	if err != nil {
		return nil, err
	}
	classEscalate, err := read32(r, OTPAlertEscalation)
	if err != nil {
		return nil, err
	}

	banks := []struct {
		item  string
		slots alertSlots
	}{
		{OTPAlertClassification, regs.alerts()},
		{OTPLocalAlertClassification, regs.localAlerts()},
	}
	for _, bank := range banks {
		for idx := range bank.slots.class {
			value, err := read32Offset(r, bank.item, idx*4)
			if err != nil {
				return nil, err
			}
			cls, err := ParseAlertClass(byteLane(value, lane))
			if err != nil {
				return nil, err
			}
			enable, err := ParseAlertEnable(byteLane(classEn, cls.Index()))
			if err != nil {
				return nil, err
			}
			if err := bank.slots.configure(idx, cls, enable); err != nil {
				return nil, err
			}
		}
	}

	for idx := 0; idx < ParamNClasses; idx++ {
		cfg, err := readClassConfig(r, idx, classEn, classEscalate)
		if err != nil {
			return nil, err
		}
		if err := regs.classConfigure(AlertClassFromIndex(idx), cfg); err != nil {
			return nil, err
		}
	}

	return &regs, nil
}

func readClassConfig(r otp.Reader, idx int, classEn, classEscalate uint32) (*classConfig, error) {
	var (
		cfg classConfig
		err error
	)
	for phase := range cfg.phaseCycs {
		cfg.phaseCycs[phase], err = read32Offset(r, OTPAlertPhaseCycles, (idx*ParamNPhases+phase)*4)
		if err != nil {
			return nil, err
		}
	}
	if cfg.enable, err = ParseAlertEnable(byteLane(classEn, idx)); err != nil {
		return nil, err
	}
	if cfg.escalate, err = ParseAlertEscalate(byteLane(classEscalate, idx)); err != nil {
		return nil, err
	}
	if cfg.accumThresh, err = read32Offset(r, OTPAlertAccumThresh, idx*4); err != nil {
		return nil, err
	}
	if cfg.timeoutCyc, err = read32Offset(r, OTPAlertTimeoutCycles, idx*4); err != nil {
		return nil, err
	}
	return &cfg, nil
}
