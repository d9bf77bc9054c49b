// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"

	"github.com/linuxboot/otpcheck/pkg/alerthandler"
	"github.com/linuxboot/otpcheck/pkg/lcstate"
	"github.com/linuxboot/otpcheck/pkg/otp"
)

// Inputs are the options every command needs to derive the registers.
type Inputs struct {
	ImagePath string        `short:"i" long:"image" description:"path to OTP image (YAML, optionally .xz, .zst or .lz4 compressed)" required:"true"`
	LCState   lcstate.State `short:"l" long:"lc-state" description:"lifecycle state [test, dev, prod, prod_end, rma]" required:"true"`
}

// Derive loads the OTP image and derives the alert_handler registers.
func (in *Inputs) Derive() (*alerthandler.AlertRegs, error) {
	img, err := otp.LoadImage(in.ImagePath)
	if err != nil {
		return nil, err
	}
	regs, err := alerthandler.Derive(in.LCState, img)
	if err != nil {
		return nil, fmt.Errorf("unable to derive alert_handler registers from '%s' in state %v: %w",
			in.ImagePath, in.LCState, err)
	}
	return regs, nil
}
