// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package verify

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/linuxboot/otpcheck/cmds/alertcrc/commands"
	"github.com/linuxboot/otpcheck/pkg/alerthandler"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	commands.Inputs
	CRC       *string `long:"crc" description:"expected CRC32, e.g. as reported by the ROM"`
	Reference *string `long:"reference" description:"path to a JSON register snapshot, e.g. dumped from a device"`

	out io.Writer
}

// ErrCRCMismatch means the derived CRC32 differs from the expected one.
type ErrCRCMismatch struct {
	Expected uint32
	Actual   uint32
}

func (err *ErrCRCMismatch) Error() string {
	return fmt.Sprintf("CRC32 mismatch: expected 0x%08x, derived 0x%08x", err.Expected, err.Actual)
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "compares the derived registers against expected values"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "At least one of --crc and --reference is required. " +
		"With --reference every differing register is reported."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if len(args) != 0 {
		return commands.ErrArgs{Err: fmt.Errorf("there are extra arguments")}
	}
	if cmd.CRC == nil && cmd.Reference == nil {
		return commands.ErrArgs{Err: fmt.Errorf("nothing to verify against, use --crc and/or --reference")}
	}

	var expectedCRC uint32
	if cmd.CRC != nil {
		v, err := strconv.ParseUint(*cmd.CRC, 0, 32)
		if err != nil {
			return commands.ErrArgs{Err: fmt.Errorf("invalid CRC32 '%s': %w", *cmd.CRC, err)}
		}
		expectedCRC = uint32(v)
	}

	var reference *alerthandler.AlertRegs
	if cmd.Reference != nil {
		f, err := os.Open(*cmd.Reference)
		if err != nil {
			return fmt.Errorf("unable to open the register snapshot '%s': %w", *cmd.Reference, err)
		}
		reference, err = alerthandler.LoadAlertRegs(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("unable to load the register snapshot '%s': %w", *cmd.Reference, err)
		}
	}

	regs, err := cmd.Derive()
	if err != nil {
		return err
	}

	if reference != nil {
		if err := alerthandler.Compare(reference, regs); err != nil {
			return fmt.Errorf("registers differ from '%s': %w", *cmd.Reference, err)
		}
	}
	if cmd.CRC != nil {
		if actual := regs.CRC32(); actual != expectedCRC {
			return &ErrCRCMismatch{Expected: expectedCRC, Actual: actual}
		}
	}

	out := cmd.out
	if out == nil {
		out = os.Stdout
	}
	_, err = fmt.Fprintf(out, "OK: 0x%08x\n", regs.CRC32())
	return err
}
