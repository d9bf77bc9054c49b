// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alerthandler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxboot/otpcheck/pkg/lcstate"
	"github.com/linuxboot/otpcheck/pkg/otp"
)

const (
	ctrlBaseMap = 0x3900
	ctrlEn      = 1 << ClassCtrlShadowedEnBit
	ctrlLock    = 1 << ClassCtrlShadowedLockBit
)

// fakeOTP holds the OWNER_SW_CFG alert items. Its zero value is not useful,
// see newFakeOTP.
type fakeOTP struct {
	classEn             uint32
	escalation          uint32
	classification      [AlertClassShadowedMultiregCount]uint32
	localClassification [LocAlertClassShadowedMultiregCount]uint32
	accumThresh         [ParamNClasses]uint32
	timeoutCyc          [ParamNClasses]uint32
	phaseCycles         [ParamNClasses * ParamNPhases]uint32

	failOn string
	reads  int
}

// newFakeOTP returns an OTP in which no alert is classified and no class
// is enabled or escalates.
func newFakeOTP() *fakeOTP {
	f := &fakeOTP{
		classEn:    0xa9a9a9a9,
		escalation: 0xd1d1d1d1,
	}
	for idx := range f.classification {
		f.classification[idx] = 0x94949494
	}
	for idx := range f.localClassification {
		f.localClassification[idx] = 0x94949494
	}
	return f
}

// newRefOTP returns the OTP contents the reference device dump was taken
// with, with the given CLASS_EN word.
func newRefOTP(classEn uint32) *fakeOTP {
	f := newFakeOTP()
	f.classEn = classEn
	copy(f.phaseCycles[:], []uint32{
		0x00000000, 0x0000000a, 0x0000000a, 0xffffffff, // Class A
		0x00000000, 0x0000000a, 0x0000000a, 0xffffffff, // Class B
	})
	return f
}

func (f *fakeOTP) Read32(name string) (uint32, error) {
	return f.Read32Offset(name, 0)
}

func (f *fakeOTP) Read32Offset(name string, offset int) (uint32, error) {
	f.reads++
	if name == f.failOn {
		return 0, errReadFailed
	}
	switch name {
	case OTPAlertClassEn:
		return f.classEn, nil
	case OTPAlertEscalation:
		return f.escalation, nil
	case OTPAlertClassification:
		return f.classification[offset/4], nil
	case OTPLocalAlertClassification:
		return f.localClassification[offset/4], nil
	case OTPAlertAccumThresh:
		return f.accumThresh[offset/4], nil
	case OTPAlertTimeoutCycles:
		return f.timeoutCyc[offset/4], nil
	case OTPAlertPhaseCycles:
		return f.phaseCycles[offset/4], nil
	}
	return 0, fmt.Errorf("no such OTP value %s", name)
}

var errReadFailed = errors.New("fuse macro timeout")

func loadDeviceDump(t *testing.T) *AlertRegs {
	f, err := os.Open(filepath.Join("testdata", "device_dump.json"))
	require.NoError(t, err)
	defer f.Close()

	regs, err := LoadAlertRegs(f)
	require.NoError(t, err)
	return regs
}

func TestDeriveMatchesDeviceDump(t *testing.T) {
	regs, err := Derive(lcstate.Dev, newRefOTP(0xa9a9a9a9))
	require.NoError(t, err)
	require.Equal(t, loadDeviceDump(t), regs)
	require.NoError(t, Compare(loadDeviceDump(t), regs))
}

func TestDeriveFromImage(t *testing.T) {
	for _, tc := range []struct {
		file string
		crc  uint32
	}{
		{"otp_alerts_disabled.yaml", 0xE65FB2FF},
		{"otp_alerts_enabled.yaml", 0x492518C9},
	} {
		t.Run(tc.file, func(t *testing.T) {
			img, err := otp.LoadImage(filepath.Join("testdata", tc.file))
			require.NoError(t, err)

			regs, err := Derive(lcstate.Dev, img)
			require.NoError(t, err)
			require.Equal(t, tc.crc, regs.CRC32())
		})
	}
}

func TestDeriveTestState(t *testing.T) {
	f := newRefOTP(0xd2d2d2d2)
	f.failOn = OTPAlertClassEn

	regs, err := Derive(lcstate.Test, f)
	require.NoError(t, err)
	require.Zero(t, f.reads)

	want := DefaultAlertRegs()
	require.Equal(t, &want, regs)
	for _, c := range regs.Classes {
		require.Equal(t, uint32(1), c.RegWen)
		require.Zero(t, c.Ctrl)
	}
}

func TestDeriveUnclassified(t *testing.T) {
	for _, state := range []lcstate.State{lcstate.Dev, lcstate.Prod, lcstate.ProdEnd, lcstate.Rma} {
		t.Run(state.String(), func(t *testing.T) {
			regs, err := Derive(state, newFakeOTP())
			require.NoError(t, err)

			want := DefaultAlertRegs()
			for idx := range want.Classes {
				want.Classes[idx].Ctrl = ctrlBaseMap
			}
			require.Equal(t, &want, regs)
		})
	}
}

func TestDeriveLaneSelection(t *testing.T) {
	for _, tc := range []struct {
		state lcstate.State
		class uint32
	}{
		{lcstate.Prod, AlertClassShadowedValueClassA},
		{lcstate.ProdEnd, AlertClassShadowedValueClassB},
		{lcstate.Dev, AlertClassShadowedValueClassC},
		{lcstate.Rma, AlertClassShadowedValueClassD},
	} {
		t.Run(tc.state.String(), func(t *testing.T) {
			f := newFakeOTP()
			// Lanes, lowest byte first: Prod=A, ProdEnd=B, Dev=C, Rma=D.
			f.classification[3] = 0x32a764ee
			f.localClassification[6] = 0x32a764ee
			f.classEn = 0x07070707

			regs, err := Derive(tc.state, f)
			require.NoError(t, err)
			assert.Equal(t, tc.class, regs.AlertClass[3])
			assert.Equal(t, uint32(1), regs.AlertEn[3])
			assert.Equal(t, uint32(1), regs.AlertRegWen[3])
			assert.Equal(t, tc.class, regs.LocAlertClass[6])
			assert.Equal(t, uint32(1), regs.LocAlertEn[6])
		})
	}
}

func TestDeriveLockedAlert(t *testing.T) {
	f := newFakeOTP()
	f.classification[5] = 0x94949464      // Prod lane: class B
	f.localClassification[2] = 0x949494a7 // Prod lane: class C
	f.classEn = 0xa907d2a9                 // A: None, B: Locked, C: Enabled, D: None

	regs, err := Derive(lcstate.Prod, f)
	require.NoError(t, err)

	assert.Equal(t, AlertClassShadowedValueClassB, regs.AlertClass[5])
	assert.Equal(t, uint32(1), regs.AlertEn[5])
	assert.Equal(t, uint32(0), regs.AlertRegWen[5])

	assert.Equal(t, LocAlertClassShadowedValueClassC, regs.LocAlertClass[2])
	assert.Equal(t, uint32(1), regs.LocAlertEn[2])
	assert.Equal(t, uint32(1), regs.LocAlertRegWen[2])

	assert.Equal(t, uint32(ctrlBaseMap), regs.Classes[0].Ctrl)
	assert.Equal(t, uint32(ctrlBaseMap|ctrlEn|ctrlLock), regs.Classes[1].Ctrl)
	assert.Equal(t, uint32(ctrlBaseMap|ctrlEn), regs.Classes[2].Ctrl)
	assert.Equal(t, uint32(ctrlBaseMap), regs.Classes[3].Ctrl)

	// Class REGWEN is never cleared from OTP.
	for _, c := range regs.Classes {
		assert.Equal(t, uint32(1), c.RegWen)
	}

	// Every other alert keeps its defaults.
	for idx := range regs.AlertClass {
		if idx == 5 {
			continue
		}
		assert.Equal(t, uint32(1), regs.AlertRegWen[idx])
		assert.Zero(t, regs.AlertEn[idx])
		assert.Zero(t, regs.AlertClass[idx])
	}
}

func TestDeriveClassifiedWithoutEnable(t *testing.T) {
	f := newFakeOTP()
	f.classification[0] = 0x94ee9494 // Dev lane: class A
	regs, err := Derive(lcstate.Dev, f)
	require.NoError(t, err)

	assert.Equal(t, AlertClassShadowedValueClassA, regs.AlertClass[0])
	assert.Zero(t, regs.AlertEn[0])
	assert.Equal(t, uint32(1), regs.AlertRegWen[0])
}

func TestDeriveEscalation(t *testing.T) {
	const (
		e0 = 1 << ClassCtrlShadowedEnE0Bit
		e1 = 1 << ClassCtrlShadowedEnE1Bit
		e2 = 1 << ClassCtrlShadowedEnE2Bit
		e3 = 1 << ClassCtrlShadowedEnE3Bit
	)
	f := newFakeOTP()
	// A: Phase0, B: Phase1, C: Phase2, D: Phase3.
	f.escalation = 0x7625cbb9
	regs, err := Derive(lcstate.Rma, f)
	require.NoError(t, err)

	assert.Equal(t, uint32(ctrlBaseMap|e0), regs.Classes[0].Ctrl)
	assert.Equal(t, uint32(ctrlBaseMap|e0|e1), regs.Classes[1].Ctrl)
	assert.Equal(t, uint32(ctrlBaseMap|e0|e1|e2), regs.Classes[2].Ctrl)
	assert.Equal(t, uint32(ctrlBaseMap|e0|e1|e2|e3), regs.Classes[3].Ctrl)

	// Phase2 alone must not enable phase 3.
	assert.Zero(t, regs.Classes[2].Ctrl&e3)
}

func TestDeriveClassTimings(t *testing.T) {
	f := newFakeOTP()
	for idx := 0; idx < ParamNClasses; idx++ {
		f.accumThresh[idx] = uint32(100 + idx)
		f.timeoutCyc[idx] = uint32(200 + idx)
		for phase := 0; phase < ParamNPhases; phase++ {
			f.phaseCycles[idx*ParamNPhases+phase] = uint32(1000*idx + phase)
		}
	}

	regs, err := Derive(lcstate.ProdEnd, f)
	require.NoError(t, err)
	for idx, c := range regs.Classes {
		assert.Equal(t, uint32(100+idx), c.AccumThresh)
		assert.Equal(t, uint32(200+idx), c.TimeoutCyc)
		for phase, cyc := range c.PhaseCycs {
			assert.Equal(t, uint32(1000*idx+phase), cyc)
		}
	}
}

func TestDeriveErrors(t *testing.T) {
	t.Run("read_failure", func(t *testing.T) {
		for _, item := range []string{
			OTPAlertClassEn,
			OTPAlertEscalation,
			OTPAlertClassification,
			OTPLocalAlertClassification,
			OTPAlertAccumThresh,
			OTPAlertTimeoutCycles,
			OTPAlertPhaseCycles,
		} {
			f := newFakeOTP()
			f.failOn = item
			regs, err := Derive(lcstate.Dev, f)
			require.Nil(t, regs, item)
			require.ErrorIs(t, err, errReadFailed, item)

			var readErr *ErrOTPRead
			require.ErrorAs(t, err, &readErr)
			require.Equal(t, item, readErr.Name)
		}
	})

	t.Run("bad_class", func(t *testing.T) {
		f := newFakeOTP()
		f.localClassification[4] = 0x94009494
		regs, err := Derive(lcstate.Dev, f)
		require.Nil(t, regs)
		var sentinelErr *ErrBadSentinel
		require.ErrorAs(t, err, &sentinelErr)
		require.Equal(t, byte(0x00), sentinelErr.Value)
	})

	t.Run("bad_class_other_lane", func(t *testing.T) {
		f := newFakeOTP()
		f.classification[0] = 0x00949494
		_, err := Derive(lcstate.Dev, f)
		require.NoError(t, err)
	})

	t.Run("bad_enable", func(t *testing.T) {
		f := newFakeOTP()
		f.classEn = 0xa9a9a9a8
		regs, err := Derive(lcstate.Prod, f)
		require.Nil(t, regs)
		var sentinelErr *ErrBadSentinel
		require.ErrorAs(t, err, &sentinelErr)
		require.Equal(t, "alert enable", sentinelErr.Kind)
	})

	t.Run("bad_escalation", func(t *testing.T) {
		f := newFakeOTP()
		f.escalation = 0x00d1d1d1
		regs, err := Derive(lcstate.Prod, f)
		require.Nil(t, regs)
		var sentinelErr *ErrBadSentinel
		require.ErrorAs(t, err, &sentinelErr)
		require.Equal(t, "alert escalation", sentinelErr.Kind)
	})

	t.Run("unknown_state", func(t *testing.T) {
		f := newFakeOTP()
		regs, err := Derive(lcstate.State(0x77), f)
		require.Nil(t, regs)
		var stateErr *lcstate.ErrUnknownState
		require.ErrorAs(t, err, &stateErr)
		require.Zero(t, f.reads)
	})
}

func TestConfigureOutOfRange(t *testing.T) {
	regs := DefaultAlertRegs()

	err := regs.alerts().configure(AlertClassShadowedMultiregCount, AlertClassA, AlertEnableLocked)
	var rangeErr *ErrIndexOutOfRange
	require.ErrorAs(t, err, &rangeErr)
	require.Equal(t, AlertClassShadowedMultiregCount, rangeErr.Count)

	err = regs.localAlerts().configure(-1, AlertClassA, AlertEnableLocked)
	require.ErrorAs(t, err, &rangeErr)

	err = regs.classConfigure(AlertClassX, &classConfig{})
	var classErr *ErrInvalidClass
	require.ErrorAs(t, err, &classErr)

	require.Equal(t, DefaultAlertRegs(), regs)
}
