package parser

import (
	"errors"
	"strings"
	"testing"
)

func TestParseFullUnit(t *testing.T) {
	p := NewFrontMatterParser()

	content := `---
slug: deriving
title: Deriving Information
theme: wrangle
needs: [import, tidy]
readings:
  - r4ds-ch5
---
# Deriving Information

Summarise and mutate.
`
	unit, err := p.Parse("units/05-deriving.md", content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if unit.Slug != "deriving" {
		t.Errorf("expected slug 'deriving', got %q", unit.Slug)
	}
	if unit.Title != "Deriving Information" {
		t.Errorf("expected title, got %q", unit.Title)
	}
	if unit.Theme != "wrangle" {
		t.Errorf("expected theme 'wrangle', got %q", unit.Theme)
	}
	if len(unit.Needs) != 2 || unit.Needs[0] != "import" || unit.Needs[1] != "tidy" {
		t.Errorf("unexpected needs: %v", unit.Needs)
	}
	if len(unit.Readings) != 1 || unit.Readings[0] != "r4ds-ch5" {
		t.Errorf("unexpected readings: %v", unit.Readings)
	}
	if !strings.HasPrefix(unit.Body, "# Deriving Information") {
		t.Errorf("body lost its content: %q", unit.Body)
	}
}

func TestParseScalarNeeds(t *testing.T) {
	p := NewFrontMatterParser()

	content := "---\ntitle: Tidy Data\nneeds: import\n---\nbody\n"
	unit, err := p.Parse("units/tidy.md", content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unit.Needs) != 1 || unit.Needs[0] != "import" {
		t.Errorf("expected needs [import], got %v", unit.Needs)
	}
}

func TestParseSlugFromFilename(t *testing.T) {
	p := NewFrontMatterParser()

	unit, err := p.Parse("units/visualize.md", "---\ntitle: Visualize\n---\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unit.Slug != "visualize" {
		t.Errorf("expected slug from filename, got %q", unit.Slug)
	}
}

func TestParseErrors(t *testing.T) {
	p := NewFrontMatterParser()

	cases := []struct {
		name    string
		content string
		field   string
	}{
		{"no front matter", "just a plain document\n", ""},
		{"unterminated fence", "---\ntitle: Broken\n", ""},
		{"trailing fence content", "---\ntitle: Broken\n--- oops\nbody\n", ""},
		{"missing title", "---\ntheme: wrangle\n---\nbody\n", "title"},
		{"bad slug", "---\nslug: Not Valid!\ntitle: T\n---\n", "slug"},
		{"bad needs entry", "---\ntitle: T\nneeds: ['BAD SLUG']\n---\n", "needs"},
		{"empty needs entry", "---\ntitle: T\nneeds: ['  ']\n---\n", "needs"},
		{"invalid yaml", "---\ntitle: [unclosed\n---\n", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Parse("units/u.md", tc.content)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if perr.Field != tc.field {
				t.Errorf("expected field %q, got %q (%v)", tc.field, perr.Field, perr)
			}
		})
	}
}

func TestParseEmptyBody(t *testing.T) {
	p := NewFrontMatterParser()

	unit, err := p.Parse("units/intro.md", "---\ntitle: Intro\n---")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unit.Body != "" {
		t.Errorf("expected empty body, got %q", unit.Body)
	}
}
