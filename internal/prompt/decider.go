package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"

	"github.com/teemow/cadence/internal/model"
	"github.com/teemow/cadence/internal/oneonone"
)

const (
	choiceBook = "Book it"
	choiceSkip = "Skip, try the next person"
	choiceStop = "Stop"
)

// Decider asks the operator about each proposed match.
type Decider struct {
	in           io.Reader
	out          io.Writer
	reader       *bufio.Reader
	colorEnabled bool
	selector     bool
}

// NewTerminalDecider creates a Decider reading from stdin and writing to
// stdout. It uses a selection menu when stdin is a terminal.
func NewTerminalDecider(colorEnabled bool) *Decider {
	d := NewLineDecider(os.Stdin, os.Stdout, colorEnabled)
	d.selector = isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	return d
}

// NewLineDecider creates a Decider that reads y/n/q answers from in.
func NewLineDecider(in io.Reader, out io.Writer, colorEnabled bool) *Decider {
	return &Decider{
		in:           in,
		out:          out,
		reader:       bufio.NewReader(in),
		colorEnabled: colorEnabled,
	}
}

// Decide shows the match and returns the operator's answer.
func (d *Decider) Decide(ctx context.Context, m oneonone.Match) (oneonone.Decision, error) {
	WriteMatch(d.out, m, d.colorEnabled)

	if d.selector {
		return d.selectDecision()
	}

	type answer struct {
		decision oneonone.Decision
		err      error
	}
	answers := make(chan answer, 1)
	// On cancellation this goroutine stays blocked on in until the process exits.
	go func() {
		decision, err := d.readDecision()
		answers <- answer{decision, err}
	}()

	select {
	case a := <-answers:
		return a.decision, a.err
	case <-ctx.Done():
		return oneonone.DecisionStop, ctx.Err()
	}
}

func (d *Decider) selectDecision() (oneonone.Decision, error) {
	sel := promptui.Select{
		Label: "Book this 1:1?",
		Items: []string{choiceBook, choiceSkip, choiceStop},
	}
	_, choice, err := sel.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return oneonone.DecisionStop, nil
	}
	if err != nil {
		return oneonone.DecisionStop, fmt.Errorf("failed to read choice: %w", err)
	}

	switch choice {
	case choiceBook:
		return oneonone.DecisionConfirm, nil
	case choiceSkip:
		return oneonone.DecisionDecline, nil
	default:
		return oneonone.DecisionStop, nil
	}
}

func (d *Decider) readDecision() (oneonone.Decision, error) {
	for {
		fmt.Fprint(d.out, d.colorize("Book this 1:1? [y]es / [n]o / [q]uit: ", color.FgCyan))

		input, err := d.reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && input != "") {
			if errors.Is(err, io.EOF) {
				return oneonone.DecisionStop, nil
			}
			return oneonone.DecisionStop, fmt.Errorf("failed to read input: %w", err)
		}

		switch strings.TrimSpace(strings.ToLower(input)) {
		case "y", "yes":
			return oneonone.DecisionConfirm, nil
		case "n", "no", "":
			return oneonone.DecisionDecline, nil
		case "q", "quit":
			return oneonone.DecisionStop, nil
		default:
			fmt.Fprintln(d.out, d.colorize("Invalid choice. Please enter y, n, or q.", color.FgRed))
		}
	}
}

func (d *Decider) colorize(text string, attributes ...color.Attribute) string {
	return colorize(d.colorEnabled, text, attributes...)
}

// AutoConfirm confirms every match and reports it to out. It backs --yes.
type AutoConfirm struct {
	out          io.Writer
	colorEnabled bool
}

// NewAutoConfirm creates an AutoConfirm decider.
func NewAutoConfirm(out io.Writer, colorEnabled bool) *AutoConfirm {
	return &AutoConfirm{out: out, colorEnabled: colorEnabled}
}

// Decide prints the match and confirms it.
func (a *AutoConfirm) Decide(_ context.Context, m oneonone.Match) (oneonone.Decision, error) {
	WriteMatch(a.out, m, a.colorEnabled)
	return oneonone.DecisionConfirm, nil
}

// WriteMatch prints a proposed match.
func WriteMatch(w io.Writer, m oneonone.Match, colorEnabled bool) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w)
	fmt.Fprintln(w, colorize(colorEnabled, separator, color.FgCyan))
	fmt.Fprintln(w, colorize(colorEnabled, fmt.Sprintf("%s <%s>", m.Person.Name, m.Person.Email), color.FgYellow, color.Bold))
	if m.Person.Title != "" {
		fmt.Fprintf(w, "Title: %s\n", m.Person.Title)
	}
	fmt.Fprintf(w, "Slot:  %s\n", m.Slot.Local().Format("Mon Jan 2 15:04 MST"))
	fmt.Fprintf(w, "Due:   %s%s\n", m.Due.Format(model.DateLayout), overdue(m))
	fmt.Fprintln(w, colorize(colorEnabled, separator, color.FgCyan))
}

// WriteResult prints what a recommendation run booked and who is still due.
func WriteResult(w io.Writer, result *oneonone.RecommendResult, dryRun, colorEnabled bool) {
	verb := "Booked"
	if dryRun {
		verb = "Would book"
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, colorize(colorEnabled, fmt.Sprintf("%s %d 1:1(s)", verb, len(result.Booked)), color.FgGreen, color.Bold))
	for _, b := range result.Booked {
		fmt.Fprintf(w, "  %s  %s\n", b.Slot.Local().Format("Mon Jan 2 15:04"), b.Person.Email)
	}

	if len(result.Remaining) == 0 {
		return
	}
	fmt.Fprintln(w, colorize(colorEnabled, fmt.Sprintf("Still due: %d", len(result.Remaining)), color.FgRed, color.Bold))
	for _, entry := range result.Remaining {
		fmt.Fprintf(w, "  %s  %s\n", entry.Due.Format(model.DateLayout), entry.Email)
	}
}

func overdue(m oneonone.Match) string {
	days := int(model.DateOnly(m.Slot).Sub(m.Due) / (24 * time.Hour))
	if days <= 0 {
		return ""
	}
	return fmt.Sprintf(" (%d days overdue)", days)
}

func colorize(enabled bool, text string, attributes ...color.Attribute) string {
	if !enabled {
		return text
	}
	return color.New(attributes...).Sprint(text)
}
