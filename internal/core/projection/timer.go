// Package projection derives display state from a snapshot: elapsed-time
// timers, squad location lines, status buttons and mission cards.
// Everything here is a pure function of its inputs.
package projection

import (
	"fmt"
	"time"

	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/core/status"
)

// ComputeElapsed formats the time since last as MM:SS, or HH:MM:SS once an
// hour has passed. A last change in the future renders as 00:00.
func ComputeElapsed(last, now time.Time) string {
	secs := int(now.Sub(last) / time.Second)
	if secs < 0 {
		return "00:00"
	}
	if secs >= 3600 {
		return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// TimerView is the per-squad timer.
type TimerView struct {
	Visible bool
	Text    string
}

// Timer returns the timer for a squad. Ready squads show no timer.
func Timer(sq snapshot.Squad, now time.Time) TimerView {
	if sq.CurrentStatus == status.Ready {
		return TimerView{}
	}
	return TimerView{Visible: true, Text: ComputeElapsed(sq.LastStatusChange, now)}
}
