package web

import (
	"bytes"
	"strings"
	"testing"
)

func TestIconRendersGlyphOrImage(t *testing.T) {
	glyph := Icon{Src: "chevron-right", Alt: "Next <step>"}
	if !glyph.IsGlyph() {
		t.Fatal("chevron-right should be a glyph")
	}
	svg := string(glyph.SVG())
	if !strings.HasPrefix(svg, "<svg") || !strings.Contains(svg, `aria-label="Next &lt;step&gt;"`) {
		t.Fatalf("unexpected svg: %s", svg)
	}

	asset := Icon{Src: "/static/icons/home.svg", Alt: "Home"}
	if asset.IsGlyph() || asset.SVG() != "" {
		t.Fatal("asset path should not render as glyph")
	}
}

func TestIconPartial(t *testing.T) {
	h := newTestHandler(t)
	tmpl := h.templates["pages/bookings_setup"]

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "partials/icon", Icon{Src: "/static/icons/home.svg", Alt: "Home"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `<img src="/static/icons/home.svg" alt="Home"`) {
		t.Fatalf("unexpected markup: %s", buf.String())
	}

	buf.Reset()
	if err := tmpl.ExecuteTemplate(&buf, "partials/icon", Icon{Src: "x", Alt: "Remove"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<svg") || strings.Contains(buf.String(), "<img") {
		t.Fatalf("unexpected markup: %s", buf.String())
	}
}

func TestButtonPairDefaults(t *testing.T) {
	b := ButtonPair{}.WithDefaults()
	if b.PrimaryLabel != "Next" || b.SecondaryLabel != "Cancel" {
		t.Fatalf("labels = %q/%q", b.PrimaryLabel, b.SecondaryLabel)
	}
	if b.PrimaryIcon.Src != "chevron-right" {
		t.Fatalf("icon = %q", b.PrimaryIcon.Src)
	}

	custom := newButtonPair("commit_hours", "discard_hours", "Save", "Back")
	if custom.PrimaryLabel != "Save" || custom.SecondaryLabel != "Back" || custom.PrimaryAction != "commit_hours" {
		t.Fatalf("custom = %+v", custom)
	}
}
