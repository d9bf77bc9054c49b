// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linuxboot/otpcheck/pkg/otp"
)

func loadImage(t *testing.T) *otp.Image {
	img, err := otp.LoadImage(filepath.Join("..", "..", "pkg", "alerthandler", "testdata", "otp_alerts_disabled.yaml"))
	require.NoError(t, err)
	return img
}

func TestDump(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, dump(&out, loadImage(t), "", 2))

	s := out.String()
	require.Contains(t, s, "Partition OWNER_SW_CFG")
	require.Contains(t, s, "OWNER_SW_CFG_ROM_ALERT_CLASS_EN")
	require.Contains(t, s, "0xa9a9a9a9")
	require.Contains(t, s, "280 B")
	require.Contains(t, s, "0x94949494 0x94949494 ... (68 more)")
	require.Contains(t, s, "BLANK")
	require.Contains(t, s, "true")
}

func TestDumpUnknownPartition(t *testing.T) {
	require.Error(t, dump(&bytes.Buffer{}, loadImage(t), "HW_CFG", 4))
}
