package usecase

import (
	"fmt"

	"syllabus/internal/domain"
	"syllabus/internal/port"
)

// ProgressFunc reports batch progress to the caller.
type ProgressFunc func(processed, total int, currentFile string)

// BuildResult contains the results of a collection build.
type BuildResult struct {
	UnitsParsed  int
	UnitsSkipped int
	UnitsDeleted int
	Order        []string
	Issues       []domain.Issue
	Stats        domain.Stats
}

// BuildUseCase builds (or refreshes) the persisted unit collection.
// Documents whose mod time has not changed are reused from the store
// instead of being re-parsed; records for removed documents are deleted.
type BuildUseCase struct {
	store  port.CollectionStore
	walker port.FileWalker
	parser port.UnitParser
	opts   LoadOptions
}

func NewBuildUseCase(
	store port.CollectionStore,
	walker port.FileWalker,
	unitParser port.UnitParser,
	opts LoadOptions,
) *BuildUseCase {
	return &BuildUseCase{
		store:  store,
		walker: walker,
		parser: unitParser,
		opts:   opts,
	}
}

func (u *BuildUseCase) Build(root string, progress ProgressFunc) (*BuildResult, error) {
	build := &BuildResult{}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	existing, err := u.store.ListUnits()
	if err != nil {
		return nil, fmt.Errorf("failed to list stored units: %w", err)
	}
	existingByPath := make(map[string]domain.Unit, len(existing))
	for _, unit := range existing {
		existingByPath[unit.Path] = unit
	}

	load := &LoadUseCase{walker: u.walker, parser: u.parser, opts: u.opts}

	var units []domain.Unit
	seenPaths := make(map[string]bool, len(files))
	seenSlugs := make(map[string]string, len(files))

	for i, file := range files {
		seenPaths[file.Path] = true

		var unit domain.Unit
		var issue *domain.Issue

		// Stored mod times have second precision, so compare at that
		// granularity to keep unchanged files skippable.
		if stored, ok := existingByPath[file.Path]; ok && file.ModTime.Unix() <= stored.ModTime.Unix() {
			// Unchanged on disk: reuse the stored record, including body.
			unit, err = u.store.GetUnit(stored.Slug)
			if err != nil {
				return nil, fmt.Errorf("failed to read stored unit %s: %w", stored.Slug, err)
			}
			build.UnitsSkipped++
		} else {
			unit, issue = load.loadFile(file)
			if issue == nil {
				build.UnitsParsed++
				// Same path may have carried a different slug before.
				if ok && stored.Slug != unit.Slug {
					if err := u.store.DeleteUnit(stored.Slug); err != nil {
						return nil, err
					}
				}
			} else {
				build.Issues = append(build.Issues, *issue)
				// A document that no longer parses must not linger.
				if ok {
					if err := u.store.DeleteUnit(stored.Slug); err != nil {
						return nil, err
					}
				}
			}
		}

		if issue == nil {
			if firstPath, dup := seenSlugs[unit.Slug]; dup {
				build.Issues = append(build.Issues, domain.Issue{
					Kind:   domain.MalformedMetadata,
					Slug:   unit.Slug,
					Path:   file.Path,
					Field:  "slug",
					Detail: fmt.Sprintf("duplicate of unit defined in %s", firstPath),
				})
			} else {
				seenSlugs[unit.Slug] = file.Path
				unit.Position = len(units)
				units = append(units, unit)
				if err := u.store.PutUnit(unit); err != nil {
					return nil, fmt.Errorf("failed to store unit %s: %w", unit.Slug, err)
				}
			}
		}

		if progress != nil {
			progress(i+1, len(files), file.Path)
		}
	}

	// Drop records for documents that no longer exist.
	for path, unit := range existingByPath {
		if !seenPaths[path] {
			if err := u.store.DeleteUnit(unit.Slug); err != nil {
				return nil, fmt.Errorf("failed to delete unit %s: %w", unit.Slug, err)
			}
			build.UnitsDeleted++
		}
	}

	report := validate(&LoadResult{Units: units, Issues: build.Issues})
	build.Issues = report.Issues
	build.Order = report.Order
	build.Stats = report.Stats

	if err := u.store.PutOrder(report.Order); err != nil {
		return nil, fmt.Errorf("failed to store lesson order: %w", err)
	}
	if err := u.store.UpdateStats(report.Stats); err != nil {
		return nil, fmt.Errorf("failed to update stats: %w", err)
	}

	return build, nil
}
