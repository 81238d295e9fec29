// Package report writes progress lines to the console through the markup
// renderer.
package report

import (
	"io"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/tessro/apidoc/internal/markup"
)

// Printer writes rendered markup to W. Writes are unbuffered and write errors
// are ignored: reporting is best effort and never fails a run.
type Printer struct {
	W     io.Writer
	Color bool
}

// New returns a Printer for w with color enabled when w supports it.
func New(w io.Writer) *Printer {
	return &Printer{W: w, Color: markup.ColorSupported(w)}
}

// Print renders s and writes it.
func (p *Printer) Print(s string) {
	_, _ = io.WriteString(p.W, markup.Render(s, p.Color))
}

// Plain writes s as is, without rendering markup.
func (p *Printer) Plain(s string) {
	_, _ = io.WriteString(p.W, s)
}

// Printf formats template with args, renders it and writes it. The args are
// literal text: markers inside them are printed as is.
func (p *Printer) Printf(template string, args ...any) {
	p.Print(markup.Sprintf(template, args...))
}

// List writes a labelled list. A single item goes on the label's line; more
// items go one per line beneath it. An empty list writes nothing.
func (p *Printer) List(label string, items []string) {
	p.Print(FormatList(label, items))
}

// FormatList returns the markup List writes.
func FormatList(label string, items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return markup.Sprintf("%s @value@%s@c\n", label, items[0])
	default:
		return markup.Sprintf("%s\n@value@%s@c\n", label, indent.String(strings.Join(items, "\n"), 1))
	}
}
