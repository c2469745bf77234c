package ui

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/hostwatch/internal/errors"
	"golang.org/x/term"
)

// ShouldColor reports whether f is a terminal that accepts color.
// NO_COLOR (https://no-color.org) turns color off regardless.
func ShouldColor(f *os.File) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Printer writes status lines to one stream.
type Printer struct {
	w io.Writer

	success lipgloss.Style
	fail    lipgloss.Style
	warn    lipgloss.Style
	info    lipgloss.Style
	muted   lipgloss.Style
}

// NewPrinter creates a printer for w. With color false every line is plain.
func NewPrinter(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Printer{
		w:       w,
		success: r.NewStyle().Foreground(ColorSuccess),
		fail:    r.NewStyle().Foreground(ColorError).Bold(true),
		warn:    r.NewStyle().Foreground(ColorWarning),
		info:    r.NewStyle().Foreground(ColorInfo),
		muted:   r.NewStyle().Foreground(ColorMuted),
	}
}

// NewStdout creates a printer for os.Stdout, colored when it is a terminal.
func NewStdout() *Printer {
	return NewPrinter(os.Stdout, ShouldColor(os.Stdout))
}

// NewStderr creates a printer for os.Stderr, colored when it is a terminal.
func NewStderr() *Printer {
	return NewPrinter(os.Stderr, ShouldColor(os.Stderr))
}

// Success prints "✓ message".
func (p *Printer) Success(format string, args ...any) {
	p.line(p.success, SymbolSuccess, fmt.Sprintf(format, args...))
}

// Warn prints "! message".
func (p *Printer) Warn(format string, args ...any) {
	p.line(p.warn, SymbolWarning, fmt.Sprintf(format, args...))
}

// Running prints "● message".
func (p *Printer) Running(format string, args ...any) {
	p.line(p.success, SymbolRunning, fmt.Sprintf(format, args...))
}

// Stopped prints "○ message".
func (p *Printer) Stopped(format string, args ...any) {
	p.line(p.muted, SymbolStopped, fmt.Sprintf(format, args...))
}

// Detail prints an indented "label: value" line under the previous status.
func (p *Printer) Detail(label, value string) {
	fmt.Fprintf(p.w, "  %s %s\n", p.muted.Render(label+":"), value)
}

// Error prints err. Structured errors get the symbol and message in red, with
// the cause and suggestion indented below.
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}

	var e *errors.Error
	if !stderrors.As(err, &e) {
		p.line(p.fail, SymbolFail, err.Error())
		return
	}

	p.line(p.fail, SymbolFail, e.Message)
	if e.Cause != nil {
		fmt.Fprintf(p.w, "\n  %s\n", p.muted.Render(oneLine(e.Cause)))
	}
	if e.Suggestion != "" {
		fmt.Fprintf(p.w, "\n  %s\n", p.info.Render(e.Suggestion))
	}
}

func (p *Printer) line(style lipgloss.Style, symbol, msg string) {
	fmt.Fprintf(p.w, "%s %s\n", style.Render(symbol), msg)
}

// oneLine flattens a nested structured error's rendering.
func oneLine(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Message
	}
	return strings.TrimSpace(err.Error())
}
