// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alerthandler

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linuxboot/otpcheck/pkg/lcstate"
)

func TestSnapshotRoundTrip(t *testing.T) {
	f := newRefOTP(0x07d2a907)
	f.classification[9] = 0x32323232
	regs, err := Derive(lcstate.Dev, f)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, regs.WriteJSON(&buf))

	loaded, err := LoadAlertRegs(&buf)
	require.NoError(t, err)
	require.Equal(t, regs, loaded)
	require.Equal(t, regs.CRC32(), loaded.CRC32())
}

func TestSnapshotWrongLength(t *testing.T) {
	_, err := LoadAlertRegs(strings.NewReader(`{
		"alert_regwen": [1],
		"alert_en": [], "alert_class": [],
		"loc_alert_regwen": [1, 1, 1, 1, 1, 1, 1],
		"loc_alert_en": [0, 0, 0, 0, 0, 0, 0],
		"loc_alert_class": [0, 0, 0, 0, 0, 0, 0],
		"classes": []
	}`))
	require.Error(t, err)

	var lengthErr *ErrSnapshotLength
	require.ErrorAs(t, err, &lengthErr)
	require.Equal(t, "alert_regwen", lengthErr.Field)
	require.Equal(t, 1, lengthErr.Length)
	require.Equal(t, ParamNAlerts, lengthErr.Expected)
	require.Contains(t, err.Error(), "classes")
}

func TestSnapshotUnknownField(t *testing.T) {
	_, err := LoadAlertRegs(strings.NewReader(`{"alert_regwen_typo": []}`))
	require.Error(t, err)
}
