package status

import "github.com/fatih/color"

// Label is the display metadata for a status code.
// The transition engine never reads this table.
type Label struct {
	Code  Status
	Short string // button text
	Long  string // badge text when no mission is active
	Color color.Attribute
}

var labels = map[Status]Label{
	Ready:           {Code: Ready, Short: "EB", Long: "Einsatzbereit", Color: color.FgGreen},
	EnRouteIncident: {Code: EnRouteIncident, Short: "zBO", Long: "Zum Berufungsort", Color: color.FgYellow},
	AtIncident:      {Code: AtIncident, Short: "BO", Long: "Am Berufungsort", Color: color.FgRed},
	EnRouteDropoff:  {Code: EnRouteDropoff, Short: "zAO", Long: "Zum Abgabeort", Color: color.FgHiYellow},
	AtDropoff:       {Code: AtDropoff, Short: "AO", Long: "Am Abgabeort", Color: color.FgMagenta},
	Pause:           {Code: Pause, Short: "Pause", Long: "Pause", Color: color.FgBlue},
	NotReady:        {Code: NotReady, Short: "NEB", Long: "Nicht Einsatzbereit", Color: color.FgHiBlack},
	Dispatched:      {Code: Dispatched, Short: "Disp", Long: "Disponiert", Color: color.FgCyan},
}

// LabelFor returns the label for s. Unknown codes get a label that echoes
// the code so that unexpected backend values still render.
func LabelFor(s Status) (Label, bool) {
	l, ok := labels[s]
	if !ok {
		return Label{Code: s, Short: string(s), Long: string(s), Color: color.Reset}, false
	}
	return l, true
}

// AmbulanzShort overrides the button text used on Ambulanz cards.
func AmbulanzShort(s Status) string {
	if s == AtIncident {
		return "Besetzt"
	}
	l, _ := LabelFor(s)
	return l.Short
}
