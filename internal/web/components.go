/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package web

import "html/template"

// Icon is either an image asset path or the name of a built-in glyph.
type Icon struct {
	Src   string
	Alt   string
	Class string
}

var glyphs = map[string]string{
	"chevron-right": `<path d="m9 18 6-6-6-6"/>`,
	"chevron-left":  `<path d="m15 18-6-6 6-6"/>`,
	"chevron-down":  `<path d="m6 9 6 6 6-6"/>`,
	"x":             `<path d="M18 6 6 18"/><path d="m6 6 12 12"/>`,
	"clock":         `<circle cx="12" cy="12" r="10"/><path d="M12 6v6l4 2"/>`,
}

func newIcon(src, alt string) Icon {
	return Icon{Src: src, Alt: alt}
}

// IsGlyph reports whether the icon renders inline instead of as an <img>.
func (i Icon) IsGlyph() bool {
	_, ok := glyphs[i.Src]
	return ok
}

// SVG renders a glyph. Asset icons return an empty string.
func (i Icon) SVG() template.HTML {
	paths, ok := glyphs[i.Src]
	if !ok {
		return ""
	}
	label := template.HTMLEscapeString(i.Alt)
	return template.HTML(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" width="20" height="20" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" role="img" aria-label="` + label + `">` + paths + `</svg>`)
}

// ButtonPair is a secondary and a primary button side by side. Each button
// submits its action type to the action endpoint.
type ButtonPair struct {
	PrimaryLabel    string
	SecondaryLabel  string
	PrimaryAction   string
	SecondaryAction string
	PrimaryIcon     Icon
}

func newButtonPair(primaryAction, secondaryAction string, labels ...string) ButtonPair {
	b := ButtonPair{PrimaryAction: primaryAction, SecondaryAction: secondaryAction}
	if len(labels) > 0 {
		b.PrimaryLabel = labels[0]
	}
	if len(labels) > 1 {
		b.SecondaryLabel = labels[1]
	}
	return b.WithDefaults()
}

// WithDefaults fills in the Next/Cancel labels and the chevron icon.
func (b ButtonPair) WithDefaults() ButtonPair {
	if b.PrimaryLabel == "" {
		b.PrimaryLabel = "Next"
	}
	if b.SecondaryLabel == "" {
		b.SecondaryLabel = "Cancel"
	}
	if b.PrimaryIcon.Src == "" {
		b.PrimaryIcon = Icon{Src: "chevron-right", Alt: b.PrimaryLabel}
	}
	return b
}
