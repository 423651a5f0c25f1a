// Package mission contains the pure business logic for mission operations.
// This is part of the Functional Core - no I/O, only pure functions.
package mission

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/dispatchboard/internal/core/snapshot"
)

// FormatMissionNumber renders a mission number zero-padded to three digits.
func FormatMissionNumber(n int) string {
	return fmt.Sprintf("%03d", n)
}

// ParseMissionNumber extracts the numeric value of a mission number.
// Returns -1 if the number is not purely numeric.
func ParseMissionNumber(number string) int {
	n, err := strconv.Atoi(strings.TrimSpace(number))
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// NextMissionNumber suggests the number for a new mission: one above the
// highest numeric mission number in the list.
func NextMissionNumber(missions []snapshot.Mission) string {
	highest := 0
	for _, m := range missions {
		if n := ParseMissionNumber(m.MissionNumber); n > highest {
			highest = n
		}
	}
	return FormatMissionNumber(highest + 1)
}
