package usecase

import (
	"errors"
	"fmt"

	"syllabus/internal/adapter/fs"
	"syllabus/internal/adapter/parser"
	"syllabus/internal/domain"
	"syllabus/internal/port"
)

// LoadOptions carries the metadata constraints enforced while loading.
type LoadOptions struct {
	AllowedThemes []string
	RequireTheme  bool
}

// LoadResult holds the successfully parsed units, positioned in walk order,
// plus every MalformedMetadata issue found along the way.
type LoadResult struct {
	Units  []domain.Unit
	Issues []domain.Issue
}

// LoadUseCase walks a directory and parses every unit document in it.
// Documents that fail to parse are reported and skipped; the rest of the
// collection still loads.
type LoadUseCase struct {
	walker port.FileWalker
	parser port.UnitParser
	opts   LoadOptions
}

func NewLoadUseCase(walker port.FileWalker, unitParser port.UnitParser, opts LoadOptions) *LoadUseCase {
	return &LoadUseCase{
		walker: walker,
		parser: unitParser,
		opts:   opts,
	}
}

func (u *LoadUseCase) Load(root string) (*LoadResult, error) {
	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	result := &LoadResult{}
	seen := make(map[string]string) // slug -> path of first definition

	for _, file := range files {
		unit, issue := u.loadFile(file)
		if issue != nil {
			result.Issues = append(result.Issues, *issue)
			continue
		}

		if firstPath, dup := seen[unit.Slug]; dup {
			result.Issues = append(result.Issues, domain.Issue{
				Kind:   domain.MalformedMetadata,
				Slug:   unit.Slug,
				Path:   file.Path,
				Field:  "slug",
				Detail: fmt.Sprintf("duplicate of unit defined in %s", firstPath),
			})
			continue
		}
		seen[unit.Slug] = file.Path

		unit.Position = len(result.Units)
		result.Units = append(result.Units, unit)
	}

	return result, nil
}

func (u *LoadUseCase) loadFile(file port.FileInfo) (domain.Unit, *domain.Issue) {
	content, err := fs.ReadFile(file.Path)
	if err != nil {
		return domain.Unit{}, &domain.Issue{
			Kind:   domain.MalformedMetadata,
			Path:   file.Path,
			Detail: fmt.Sprintf("cannot read document: %v", err),
		}
	}

	unit, err := u.parser.Parse(file.Path, content)
	if err != nil {
		issue := &domain.Issue{
			Kind:   domain.MalformedMetadata,
			Path:   file.Path,
			Detail: err.Error(),
		}
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			issue.Field = perr.Field
			issue.Detail = perr.Reason
		}
		return domain.Unit{}, issue
	}
	unit.ModTime = file.ModTime

	if issue := u.checkTheme(unit); issue != nil {
		return domain.Unit{}, issue
	}
	return unit, nil
}

func (u *LoadUseCase) checkTheme(unit domain.Unit) *domain.Issue {
	if unit.Theme == "" {
		if !u.opts.RequireTheme {
			return nil
		}
		return &domain.Issue{
			Kind:   domain.MalformedMetadata,
			Slug:   unit.Slug,
			Path:   unit.Path,
			Field:  "theme",
			Detail: "missing or empty",
		}
	}
	if len(u.opts.AllowedThemes) == 0 {
		return nil
	}
	for _, theme := range u.opts.AllowedThemes {
		if unit.Theme == theme {
			return nil
		}
	}
	return &domain.Issue{
		Kind:   domain.MalformedMetadata,
		Slug:   unit.Slug,
		Path:   unit.Path,
		Field:  "theme",
		Detail: fmt.Sprintf("theme %q is not in the configured theme list", unit.Theme),
	}
}
