// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/petenewcomb/rebal-go"
)

// WriteSummary writes a short account of a rebalancing pass: the load and
// cost before and after, and the accepted moves in visiting order.
func WriteSummary(w io.Writer, space *rebal.Space, s *rebal.Summary) error {
	var b strings.Builder
	b.WriteString("========== REBALANCE ==========\n")
	fmt.Fprintf(&b, "Resources:    %v\n", space.IDs())
	fmt.Fprintf(&b, "Initial load: %v  cost %d\n", s.InitialLoad, s.InitialCost)
	fmt.Fprintf(&b, "Final load:   %v  cost %d\n", s.FinalLoad, s.FinalCost)
	fmt.Fprintf(&b, "Tasks: %d  accepted: %d  reverted: %d\n", s.Tasks, s.Accepted, s.Reverted)
	for _, m := range s.Moves {
		fmt.Fprintf(&b, "%s#%d (task %d): %d -> %d  cost %d -> %d\n",
			indent, m.Position, m.TaskID, m.From, m.To, m.CostBefore, m.CostAfter)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
