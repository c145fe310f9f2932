package domain

import (
	"fmt"
	"strings"
	"time"
)

// Unit is a single lesson document: front-matter metadata plus body text.
type Unit struct {
	Slug     string
	Title    string
	Theme    string
	Needs    []string
	Readings []string
	Body     string
	Path     string
	ModTime  time.Time
	Position int
}

type IssueKind string

const (
	MalformedMetadata IssueKind = "MalformedMetadata"
	UnknownDependency IssueKind = "UnknownDependency"
	CycleDetected     IssueKind = "CycleDetected"
)

// Issue is a single validation finding. Issues are collected across the
// whole collection in one pass; they never abort processing of other units.
type Issue struct {
	Kind   IssueKind
	Slug   string
	Path   string
	Field  string
	Dep    string
	Cycle  []string
	Detail string
}

func (i Issue) String() string {
	switch i.Kind {
	case MalformedMetadata:
		where := i.Path
		if where == "" {
			where = i.Slug
		}
		if i.Field != "" {
			return fmt.Sprintf("%s: %s: field %q: %s", i.Kind, where, i.Field, i.Detail)
		}
		return fmt.Sprintf("%s: %s: %s", i.Kind, where, i.Detail)
	case UnknownDependency:
		return fmt.Sprintf("%s: unit %q needs %q, which does not exist", i.Kind, i.Slug, i.Dep)
	case CycleDetected:
		return fmt.Sprintf("%s: %s", i.Kind, strings.Join(i.Cycle, " -> "))
	default:
		return fmt.Sprintf("%s: %s", i.Kind, i.Detail)
	}
}

// Report is the outcome of validating a collection. Order is nil whenever
// Issues is non-empty.
type Report struct {
	Order  []string
	Issues []Issue
	Stats  Stats
}

func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

type Stats struct {
	TotalUnits int
	TotalEdges int
	Themes     int
}
