package projection

import (
	"fmt"

	"github.com/example/dispatchboard/internal/core/snapshot"
	"github.com/example/dispatchboard/internal/core/status"
)

// Button is one selectable status on a squad card.
type Button struct {
	Code   status.Status
	Label  string
	Color  status.Label
	Active bool
}

// Buttons lists the selectable statuses for a squad in display order.
// A dispatched Trupp shows its "2" button as Disp.
func Buttons(sq snapshot.Squad) []Button {
	codes := status.Selectable(sq.Type)
	out := make([]Button, 0, len(codes))
	for _, code := range codes {
		label, _ := status.LabelFor(code)
		b := Button{Code: code, Label: label.Short, Color: label, Active: sq.CurrentStatus == code}
		if sq.IsAmbulanz() {
			b.Label = status.AmbulanzShort(code)
		} else if code == status.Ready && sq.CurrentStatus == status.Dispatched {
			disp, _ := status.LabelFor(status.Dispatched)
			b.Label = disp.Short
			b.Color = disp
		}
		out = append(out, b)
	}
	return out
}

// AmbulanzInfo is the info line on an Ambulanz card.
func AmbulanzInfo(sq snapshot.Squad) string {
	return fmt.Sprintf("Patienten: %d", sq.PatientCount)
}
