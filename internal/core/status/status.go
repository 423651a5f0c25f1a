// Package status defines the closed set of squad status codes and the
// unit types that constrain them.
// This is part of the Functional Core - no I/O, only pure functions.
package status

import "fmt"

// Status is a squad status code as exchanged with the backend.
// Only the constants below are valid; use Parse to convert wire values.
type Status string

const (
	// Ready is EB (einsatzbereit).
	Ready Status = "2"
	// EnRouteIncident is zBO (zum Berufungsort).
	EnRouteIncident Status = "3"
	// AtIncident is BO (am Berufungsort); for Ambulanz units it means occupied.
	AtIncident Status = "4"
	// EnRouteDropoff is zAO (zum Abgabeort).
	EnRouteDropoff Status = "7"
	// AtDropoff is AO (am Abgabeort).
	AtDropoff Status = "8"
	// Pause marks a squad on break.
	Pause Status = "Pause"
	// NotReady is NEB (nicht einsatzbereit).
	NotReady Status = "NEB"
	// Dispatched is set by the backend when a squad is alarmed for a mission.
	Dispatched Status = "Integriert"
)

// UnitType distinguishes mobile squads from stationary treatment units.
type UnitType string

const (
	// Trupp is a mobile field squad.
	Trupp UnitType = "Trupp"
	// Ambulanz is a stationary treatment/transport unit with a patient count.
	Ambulanz UnitType = "Ambulanz"
)

var all = []Status{Ready, EnRouteIncident, AtIncident, EnRouteDropoff, AtDropoff, Pause, NotReady, Dispatched}

// trupp lists the statuses an operator can select for a Trupp, in button order.
var trupp = []Status{Ready, EnRouteIncident, AtIncident, EnRouteDropoff, AtDropoff, Pause, NotReady}

// ambulanz is the reduced cycle for Ambulanz units.
var ambulanz = []Status{Ready, NotReady, AtIncident}

// Parse converts a wire value into a Status.
func Parse(code string) (Status, error) {
	for _, s := range all {
		if string(s) == code {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown status code %q", code)
}

// Valid reports whether s is one of the defined codes.
func (s Status) Valid() bool {
	_, err := Parse(string(s))
	return err == nil
}

// String returns the wire code.
func (s Status) String() string { return string(s) }

// In reports whether s is any of the given statuses.
func (s Status) In(set ...Status) bool {
	for _, c := range set {
		if s == c {
			return true
		}
	}
	return false
}

// Selectable returns the statuses an operator may request for a unit type.
// Dispatched is never selectable; only the backend sets it.
func Selectable(t UnitType) []Status {
	if t == Ambulanz {
		return append([]Status(nil), ambulanz...)
	}
	return append([]Status(nil), trupp...)
}

// Allowed reports whether an operator may request s for a unit of type t.
func Allowed(t UnitType, s Status) bool {
	return s.In(Selectable(t)...)
}

// ParseUnitType converts a wire value into a UnitType; empty defaults to Trupp.
func ParseUnitType(v string) (UnitType, error) {
	switch UnitType(v) {
	case "", Trupp:
		return Trupp, nil
	case Ambulanz:
		return Ambulanz, nil
	default:
		return "", fmt.Errorf("unknown unit type %q", v)
	}
}
