package scheduler

import (
	"fmt"
	"strconv"
	"strings"
)

// Slots lists the six coverage slots in the fixed order the rest of the
// package (and the stable Output) iterates them in.
var Slots = []string{"0-7", "7-9", "9-15", "16-18", "18-21", "21-23"}

// parseSlot splits a slot label into its canonicalized half-open [a,b)
// hour interval. "0-7" is special-cased to [24,31) — the midnight-to-
// morning hours of the *current* day, so it compares correctly against
// shifts that cross midnight from the previous evening.
func parseSlot(label string) (int, int, error) {
	if label == "0-7" {
		return 24, 31, nil
	}
	parts := strings.SplitN(label, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid slot label %q", label)
	}
	a, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid slot label %q: %w", label, err)
	}
	b, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid slot label %q: %w", label, err)
	}
	if b <= a {
		b += 24
	}
	return a, b, nil
}

// shiftCoversSlot reports whether a shift's hour range overlaps a named
// slot, using half-open interval overlap with midnight-wrap normalization
// on both sides (spec §4.2).
func shiftCoversSlot(s Shift, slot string) bool {
	a, b, err := parseSlot(slot)
	if err != nil {
		return false
	}
	se := s.End
	if se <= s.Start && se <= 24 {
		se += 24
	}
	return !(se <= a || b <= s.Start)
}

// slotIndex returns the position of a slot label in Slots, or -1.
func slotIndex(label string) int {
	for i, s := range Slots {
		if s == label {
			return i
		}
	}
	return -1
}
