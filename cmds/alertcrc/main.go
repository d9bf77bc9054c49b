// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// alertcrc predicts the alert_handler configuration the ROM derives from
// OTP, and its CRC32, without access to a device.
//
// Synopsis:
//
//	alertcrc show -i OTP_IMAGE -l LC_STATE [--format text|json]
//	alertcrc crc -i OTP_IMAGE -l LC_STATE
//	alertcrc verify -i OTP_IMAGE -l LC_STATE [--crc VALUE] [--reference REGS_JSON]
//
// An example:
//
//	alertcrc crc -i otp.yaml.xz -l prod
//	alertcrc verify -i otp.yaml -l dev --crc 0xe65fb2ff
//	alertcrc show -i otp.yaml -l dev --format=json > expected.json
//	alertcrc verify -i otp.yaml -l dev --reference device_dump.json
//
// Description:
//
//	show:   Print the derived register values
//	crc:    Print the CRC32 of the derived register values
//	verify: Compare the derived values against a CRC32 and/or a register dump
package main

import (
	"errors"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/linuxboot/otpcheck/cmds/alertcrc/commands"
	"github.com/linuxboot/otpcheck/cmds/alertcrc/commands/crc"
	"github.com/linuxboot/otpcheck/cmds/alertcrc/commands/show"
	"github.com/linuxboot/otpcheck/cmds/alertcrc/commands/verify"
	"github.com/linuxboot/otpcheck/pkg/log"
)

var (
	knownCommands = map[string]commands.Command{
		"show":   &show.Command{},
		"crc":    &crc.Command{},
		"verify": &verify.Command{},
	}
)

func main() {
	flagsParser := flags.NewParser(nil, flags.Default)
	for commandName, command := range knownCommands {
		_, err := flagsParser.AddCommand(commandName, command.ShortDescription(), command.LongDescription(), command)
		if err != nil {
			panic(err)
		}
	}

	// parse arguments and execute the appropriate command
	if _, err := flagsParser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		log.Fatalf("%v", err)
	}
}
