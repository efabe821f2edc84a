// Package payslip holds the printable payslip model and its PDF renderer.
//
// A Document is an ordered list of sections. Sections are produced through a
// Builder: a section whose producer fails or panics is kept in place as a
// diagnostic line so the rest of the payslip still renders.
package payslip

import (
	"fmt"
	"log/slog"
)

// Line is one label/value row. Value may be empty for free-text rows.
type Line struct {
	Label string
	Value string
}

type Section struct {
	Title string
	Lines []Line
	// Emphasis renders the section in bold, used for the net payable.
	Emphasis bool
	// Diagnostic replaces Lines when the section could not be produced.
	Diagnostic string
}

type Document struct {
	Title    string
	Sections []Section
	Footer   string
}

// Diagnostics returns the diagnostic messages embedded in the document.
func (d Document) Diagnostics() []string {
	var out []string
	for _, s := range d.Sections {
		if s.Diagnostic != "" {
			out = append(out, s.Diagnostic)
		}
	}
	return out
}

type Builder struct {
	doc Document
}

func NewBuilder(title string) *Builder {
	return &Builder{doc: Document{Title: title}}
}

// Section appends a section produced by fn. Returning no lines and no error
// omits the section.
func (b *Builder) Section(title string, fn func() ([]Line, error)) *Builder {
	return b.add(Section{Title: title}, fn)
}

// Emphasized is Section rendered in bold.
func (b *Builder) Emphasized(title string, fn func() ([]Line, error)) *Builder {
	return b.add(Section{Title: title, Emphasis: true}, fn)
}

func (b *Builder) add(section Section, fn func() ([]Line, error)) *Builder {
	lines, err := produce(fn)
	if err != nil {
		slog.Warn("payslip section failed", "section", section.Title, "error", err)
		section.Diagnostic = fmt.Sprintf("[%s unavailable: %v]", section.Title, err)
		b.doc.Sections = append(b.doc.Sections, section)
		return b
	}
	if len(lines) == 0 {
		return b
	}
	section.Lines = lines
	b.doc.Sections = append(b.doc.Sections, section)
	return b
}

func (b *Builder) Footer(text string) *Builder {
	b.doc.Footer = text
	return b
}

func (b *Builder) Build() Document {
	return b.doc
}

func produce(fn func() ([]Line, error)) (lines []Line, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return fn()
}
