// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crc

import (
	"fmt"
	"io"
	"os"

	"github.com/linuxboot/otpcheck/cmds/alertcrc/commands"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	commands.Inputs

	out io.Writer
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "prints the alert configuration CRC32"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Prints the CRC32 the ROM computes over the alert_handler configuration it derives from the OTP image."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if len(args) != 0 {
		return commands.ErrArgs{Err: fmt.Errorf("there are extra arguments")}
	}

	regs, err := cmd.Derive()
	if err != nil {
		return err
	}

	out := cmd.out
	if out == nil {
		out = os.Stdout
	}
	_, err = fmt.Fprintf(out, "0x%08x\n", regs.CRC32())
	return err
}
