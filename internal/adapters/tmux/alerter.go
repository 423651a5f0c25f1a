// Package tmux contains TMux adapter implementations.
package tmux

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/example/dispatchboard/internal/ports/secondary"
)

// displayMillis is how long a message stays in the tmux status line.
const displayMillis = "5000"

// Alerter implements secondary.Alerter. Inside a tmux client the message is
// flashed in the status line as well as written to the fallback writer, so
// an operator watching another pane still notices a failed write.
type Alerter struct {
	mu     sync.Mutex
	inTmux bool
	out    io.Writer
	run    func(name string, args ...string) error
}

// NewAlerter creates an alerter writing to out. The tmux status line is used
// when $TMUX is set.
func NewAlerter(out io.Writer) *Alerter {
	return &Alerter{
		inTmux: os.Getenv("TMUX") != "",
		out:    out,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// Alert shows message to the operator. Safe for concurrent use.
func (a *Alerter) Alert(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	fmt.Fprintf(a.out, "%s %s\n", color.New(color.FgRed, color.Bold).Sprint("✗"), message)

	if !a.inTmux {
		return
	}
	// tmux expands #(...) and #[...] in messages
	safe := strings.ReplaceAll(message, "#", "##")
	if err := a.run("tmux", "display-message", "-d", displayMillis, safe); err != nil {
		a.inTmux = false
	}
}

// Ensure Alerter implements the interface
var _ secondary.Alerter = (*Alerter)(nil)
