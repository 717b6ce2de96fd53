// Package numerator generates human-readable quote numbers. Numbers
// are scoped by calendar date: "20260829/1", "20260829/2", ...
package numerator

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the date prefix format of a quote number.
const DateLayout = "20060102"

// Next returns the next quote number for the given day, scanning the
// numbers already in use. Numbers from other days and numbers that do
// not match the "<date>/<seq>" pattern are ignored.
func Next(existing []string, now time.Time) string {
	prefix := now.Format(DateLayout)

	maxSeq := 0
	for _, num := range existing {
		if !strings.HasPrefix(num, prefix) {
			continue
		}
		parts := strings.Split(num, "/")
		if len(parts) != 2 {
			continue
		}
		seq, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}

	return fmt.Sprintf("%s/%d", prefix, maxSeq+1)
}
