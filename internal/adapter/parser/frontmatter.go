package parser

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
	"syllabus/internal/domain"
)

const fence = "---"

// slugRe matches valid unit identifiers: lowercase, digits, hyphens.
var slugRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ParseError describes a missing or malformed metadata field.
type ParseError struct {
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

// stringList accepts either a YAML scalar or a YAML sequence, so unit
// authors can write `needs: import` as well as `needs: [import, tidy]`.
type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = stringList{s}
		return nil
	case yaml.SequenceNode:
		var ss []string
		if err := value.Decode(&ss); err != nil {
			return err
		}
		*l = stringList(ss)
		return nil
	default:
		return fmt.Errorf("expected string or list of strings, got %s", value.Tag)
	}
}

type frontMatter struct {
	Slug     string     `yaml:"slug"`
	Title    string     `yaml:"title"`
	Theme    string     `yaml:"theme"`
	Needs    stringList `yaml:"needs"`
	Readings stringList `yaml:"readings"`
}

// FrontMatterParser turns raw unit documents into domain.Unit records.
// Parse is a pure function of its inputs.
type FrontMatterParser struct{}

func NewFrontMatterParser() *FrontMatterParser {
	return &FrontMatterParser{}
}

func (p *FrontMatterParser) Parse(path string, content string) (domain.Unit, error) {
	meta, body, err := split(content)
	if err != nil {
		return domain.Unit{}, err
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
		return domain.Unit{}, &ParseError{Reason: fmt.Sprintf("invalid front matter YAML: %v", err)}
	}

	if strings.TrimSpace(fm.Title) == "" {
		return domain.Unit{}, &ParseError{Field: "title", Reason: "missing or empty"}
	}

	slug := fm.Slug
	if slug == "" {
		slug = slugFromPath(path)
	}
	if !slugRe.MatchString(slug) {
		return domain.Unit{}, &ParseError{Field: "slug", Reason: fmt.Sprintf("invalid identifier %q", slug)}
	}

	needs := make([]string, 0, len(fm.Needs))
	for _, n := range fm.Needs {
		n = strings.TrimSpace(n)
		if n == "" {
			return domain.Unit{}, &ParseError{Field: "needs", Reason: "empty prerequisite entry"}
		}
		if !slugRe.MatchString(n) {
			return domain.Unit{}, &ParseError{Field: "needs", Reason: fmt.Sprintf("invalid identifier %q", n)}
		}
		needs = append(needs, n)
	}

	return domain.Unit{
		Slug:     slug,
		Title:    strings.TrimSpace(fm.Title),
		Theme:    strings.TrimSpace(fm.Theme),
		Needs:    needs,
		Readings: []string(fm.Readings),
		Body:     body,
		Path:     path,
	}, nil
}

// split separates the front-matter block from the body. The block must
// start on the first line and be closed by a second fence.
func split(content string) (meta string, body string, err error) {
	rest, ok := strings.CutPrefix(content, fence)
	if !ok || (rest != "" && rest[0] != '\n' && rest[0] != '\r') {
		return "", "", &ParseError{Reason: "document does not start with a front-matter fence"}
	}

	idx := strings.Index(rest, "\n"+fence)
	if idx < 0 {
		return "", "", &ParseError{Reason: "unterminated front-matter fence"}
	}

	meta = rest[:idx]
	body = rest[idx+len("\n"+fence):]
	// The closing fence must sit alone on its line.
	if line := body; line != "" {
		nl := strings.IndexByte(line, '\n')
		if nl < 0 {
			nl = len(line)
		}
		if strings.TrimRight(line[:nl], "\r") != "" {
			return "", "", &ParseError{Reason: "unterminated front-matter fence"}
		}
		body = strings.TrimPrefix(line[nl:], "\n")
	}
	return meta, body, nil
}

func slugFromPath(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
