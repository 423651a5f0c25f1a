package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/example/dispatchboard/internal/core/status"
	"github.com/example/dispatchboard/internal/core/transition"
	"github.com/example/dispatchboard/internal/ports/primary"
)

// StatusAnswers pre-answers the prompts of the status workflow.
// Zero values mean "ask interactively".
type StatusAnswers struct {
	Ambulanz    int
	Destination string
	Resolution  transition.Resolution
}

// StatusAdapter drives the status workflow, asking the operator on in
// whenever the engine needs an answer.
type StatusAdapter struct {
	service primary.StatusService
	in      *bufio.Reader
	out     io.Writer
}

// NewStatusAdapter creates a new StatusAdapter with the given service.
func NewStatusAdapter(service primary.StatusService, in io.Reader, out io.Writer) *StatusAdapter {
	return &StatusAdapter{
		service: service,
		in:      bufio.NewReader(in),
		out:     out,
	}
}

// Set requests a status change and answers prompts until the change is
// applied or cancelled.
func (a *StatusAdapter) Set(ctx context.Context, squadID int, code string, answers StatusAnswers) error {
	target, err := status.Parse(code)
	if err != nil {
		return err
	}

	d, err := a.service.RequestStatus(ctx, squadID, target)
	for {
		if err != nil {
			return err
		}
		switch d.Outcome {
		case transition.AwaitingDestination:
			d, err = a.answerDestination(ctx, d.Prompt, answers)
		case transition.AwaitingConflictResolution:
			d, err = a.answerConflict(ctx, d.Conflict, answers)
		case transition.Cancelled:
			fmt.Fprintln(a.out, "Cancelled, status unchanged")
			return nil
		case transition.Ignored:
			return nil
		default:
			label, _ := status.LabelFor(target)
			fmt.Fprintf(a.out, "✓ Squad %d → %s\n", squadID, color.New(label.Color).Sprint(label.Long))
			return nil
		}
	}
}

func (a *StatusAdapter) answerDestination(ctx context.Context, p *transition.DestinationPrompt, answers StatusAnswers) (transition.Decision, error) {
	switch {
	case answers.Ambulanz != 0:
		return a.service.ChooseAmbulanz(ctx, answers.Ambulanz)
	case answers.Destination != "":
		return a.service.ChooseCustom(ctx, answers.Destination)
	}

	fmt.Fprintf(a.out, "Destination for %s:\n", p.SquadName)
	for i, c := range p.Candidates {
		fmt.Fprintf(a.out, "  %d) %s (Patienten: %d)\n", i+1, c.Name, c.PatientCount)
	}
	for {
		fmt.Fprint(a.out, "Number, free text, or empty to cancel: ")
		line, ok := a.readLine()
		if !ok || line == "" || line == "q" {
			return a.service.Cancel(ctx), nil
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(p.Candidates) {
			return a.service.ChooseAmbulanz(ctx, p.Candidates[n-1].ID)
		}
		d, err := a.service.ChooseCustom(ctx, line)
		if errors.Is(err, transition.ErrEmptyDestination) {
			fmt.Fprintln(a.out, err)
			continue
		}
		return d, err
	}
}

func (a *StatusAdapter) answerConflict(ctx context.Context, c *transition.Conflict, answers StatusAnswers) (transition.Decision, error) {
	m := c.Mission
	fmt.Fprintf(a.out, "%s is still on open mission #%s (%s, %s)", c.SquadName, m.MissionNumber, m.Location, m.Reason)
	if c.Remaining > 0 {
		fmt.Fprintf(a.out, ", %d more after this", c.Remaining)
	}
	fmt.Fprintln(a.out)

	if answers.Resolution != "" {
		return a.service.ResolveConflict(ctx, answers.Resolution)
	}

	for {
		fmt.Fprint(a.out, "[r]emove from mission, [k]eep, [c]ancel: ")
		line, ok := a.readLine()
		switch strings.ToLower(line) {
		case "r", "remove":
			return a.service.ResolveConflict(ctx, transition.Remove)
		case "k", "keep":
			return a.service.ResolveConflict(ctx, transition.Keep)
		case "c", "cancel", "":
			return a.service.Cancel(ctx), nil
		}
		if !ok {
			return a.service.Cancel(ctx), nil
		}
		fmt.Fprintln(a.out, "Please answer r, k or c")
	}
}

// readLine returns the next trimmed input line; ok is false at end of input.
func (a *StatusAdapter) readLine() (string, bool) {
	line, err := a.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil {
		return line, line != ""
	}
	return line, true
}
