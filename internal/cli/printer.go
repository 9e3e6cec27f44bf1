package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes command output, optionally coloured.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter builds a Printer. Colours also stay off when the terminal does not support them.
func NewPrinter(out, errOut io.Writer, colors bool) *Printer {
	return &Printer{out: out, err: errOut, useColors: colors && !color.NoColor}
}

// Status prints a labelled up/down line.
func (p *Printer) Status(ok bool, label, detail string) {
	state := "unreachable"
	attr := color.FgRed
	if ok {
		state = "reachable"
		attr = color.FgGreen
	}

	if p.useColors {
		color.New(attr, color.Bold).Fprint(p.out, state)
	} else {
		fmt.Fprint(p.out, state)
	}
	fmt.Fprintf(p.out, " %s", label)
	if detail != "" {
		fmt.Fprintf(p.out, " (%s)", detail)
	}
	fmt.Fprintln(p.out)
}

// JSON prints v as indented JSON.
func (p *Printer) JSON(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(p.out, string(raw))
	return err
}

// Line prints a plain line.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// FormatError prints a structured error message to stderr.
func (p *Printer) FormatError(e *CLIError) {
	if p.useColors {
		color.New(color.FgRed, color.Bold).Fprintf(p.err, "Error: %s\n", e.Summary)
	} else {
		fmt.Fprintf(p.err, "[ERROR] %s\n", e.Summary)
	}
	if e.Detail != "" {
		fmt.Fprintf(p.err, "  Cause: %s\n", e.Detail)
	}
	if e.Suggestion != "" {
		if p.useColors {
			color.New(color.FgCyan).Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		} else {
			fmt.Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		}
	}
}
