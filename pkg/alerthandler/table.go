// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alerthandler

import (
	"fmt"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// title turns a Go field name such as "LocAlertRegWen" into a column
// title such as "Loc Alert Reg Wen".
func title(name string) string {
	return strings.Join(camelcase.Split(name), " ")
}

func hex32(v uint32) string {
	return fmt.Sprintf("0x%08x", v)
}

// bankTable renders parallel per-alert register arrays, one row per alert.
func bankTable(caption string, bank []field) table.Writer {
	t := table.NewWriter()
	t.SetTitle("%s", caption)

	header := table.Row{"#"}
	for _, f := range bank {
		header = append(header, title(f.name))
	}
	t.AppendHeader(header)

	for idx := range bank[0].words {
		row := table.Row{idx}
		for _, f := range bank {
			row = append(row, hex32(f.words[idx]))
		}
		t.AppendRow(row)
	}
	return t
}

// AlertTable renders ALERT_REGWEN, ALERT_EN and ALERT_CLASS.
func (regs *AlertRegs) AlertTable() table.Writer {
	return bankTable("Alerts", regs.fields()[0:3])
}

// LocalAlertTable renders LOC_ALERT_REGWEN, LOC_ALERT_EN and LOC_ALERT_CLASS.
func (regs *AlertRegs) LocalAlertTable() table.Writer {
	return bankTable("Local Alerts", regs.fields()[3:6])
}

// ClassTable renders the registers of every escalation class.
func (regs *AlertRegs) ClassTable() table.Writer {
	t := table.NewWriter()
	t.SetTitle("Classes")

	header := table.Row{"Class"}
	for _, name := range []string{"RegWen", "Ctrl", "AccumThresh", "TimeoutCyc"} {
		header = append(header, title(name))
	}
	for phase := 0; phase < ParamNPhases; phase++ {
		header = append(header, fmt.Sprintf("Phase%d Cyc", phase))
	}
	t.AppendHeader(header)

	for idx, c := range regs.Classes {
		row := table.Row{
			AlertClassFromIndex(idx),
			hex32(c.RegWen),
			hex32(c.Ctrl),
			hex32(c.AccumThresh),
			hex32(c.TimeoutCyc),
		}
		for _, cyc := range c.PhaseCycs {
			row = append(row, hex32(cyc))
		}
		t.AppendRow(row)
	}
	return t
}

// String implements fmt.Stringer.
func (regs *AlertRegs) String() string {
	var b strings.Builder
	for _, t := range []table.Writer{regs.AlertTable(), regs.LocalAlertTable(), regs.ClassTable()} {
		b.WriteString(t.Render())
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "CRC32: %s\n", hex32(regs.CRC32()))
	return b.String()
}
