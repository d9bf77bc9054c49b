// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// otpdump lists the items of an OTP image.
//
// Synopsis:
//
//	otpdump [--partition NAME] [--words N] OTP_IMAGE
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	flag "github.com/spf13/pflag"

	"github.com/linuxboot/otpcheck/pkg/log"
	"github.com/linuxboot/otpcheck/pkg/otp"
)

var (
	partition = flag.StringP("partition", "p", "", "only list items of this partition")
	words     = flag.IntP("words", "w", 4, "number of leading words to print per item")
)

func main() {
	flag.Parse()

	a := flag.Args()
	if len(a) != 1 {
		log.Fatalf("Usage: otpdump [--partition NAME] [--words N] <otp-image>")
	}

	img, err := otp.LoadImage(a[0])
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := dump(os.Stdout, img, *partition, *words); err != nil {
		log.Fatalf("%v", err)
	}
}

func dump(w io.Writer, img *otp.Image, partition string, maxWords int) error {
	found := partition == ""
	for _, p := range img.Partitions {
		if partition != "" && p.Name != partition {
			continue
		}
		found = true

		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle("Partition %s", p.Name)
		t.AppendHeader(table.Row{"Item", "Size", "Blank", "Words"})
		for _, item := range p.Items {
			t.AppendRow(table.Row{
				item.Name,
				humanize.IBytes(uint64(len(item.Value))),
				item.IsBlank(),
				leadingWords(img, item, maxWords),
			})
		}
		t.Render()
	}
	if !found {
		return fmt.Errorf("no partition '%s' in the OTP image", partition)
	}
	return nil
}

func leadingWords(img *otp.Image, item otp.Item, maxWords int) string {
	n := len(item.Value) / 4
	var s []string
	for idx := 0; idx < n && idx < maxWords; idx++ {
		v, err := img.Read32Offset(item.Name, 4*idx)
		if err != nil {
			return err.Error()
		}
		s = append(s, fmt.Sprintf("0x%08x", v))
	}
	if n > maxWords {
		s = append(s, fmt.Sprintf("... (%d more)", n-maxWords))
	}
	return strings.Join(s, " ")
}
