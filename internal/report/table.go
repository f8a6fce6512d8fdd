// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/petenewcomb/rebal-go/internal/sim"
)

const indent = "    "

// WriteTable writes the cloudlet table for one user. Only cloudlets in
// [sim.StatusSuccess] get a full row; others list just their id and status.
// Times are in simulated seconds with at most two decimals.
func WriteTable(w io.Writer, user int, cloudlets []*sim.Cloudlet) error {
	var b strings.Builder
	fmt.Fprintf(&b, "=============> User %d%s\n", user, indent)
	b.WriteString("========== OUTPUT ==========\n")
	b.WriteString(strings.Join([]string{
		"Cloudlet ID", "STATUS", "Data center ID", "VM ID", "", "Time", "Start Time", "Finish Time",
	}, indent))
	b.WriteByte('\n')

	for _, c := range cloudlets {
		b.WriteString(indent + strconv.Itoa(c.ID()) + indent + indent)
		if c.Status() != sim.StatusSuccess {
			b.WriteString(c.Status().String())
			b.WriteByte('\n')
			continue
		}
		b.WriteString(c.Status().String())
		b.WriteString(indent + indent + strconv.Itoa(int(c.Resource())))
		b.WriteString(indent + indent + indent + strconv.Itoa(c.VMID()))
		b.WriteString(indent + indent + indent + Seconds(c.ActualCPUTime()))
		b.WriteString(indent + indent + Seconds(c.ExecStartTime()))
		b.WriteString(indent + indent + indent + Seconds(c.FinishTime()))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Seconds formats d as a number of seconds with up to two decimals and no
// trailing zeros, rounding half to even.
func Seconds(d time.Duration) string {
	return Decimal(d.Seconds())
}

// Decimal formats x with up to two decimals and no trailing zeros, rounding
// half to even.
func Decimal(x float64) string {
	x = math.RoundToEven(x*100) / 100
	s := strconv.FormatFloat(x, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s
}
