package usecase

import (
	"syllabus/internal/domain"
	"syllabus/internal/graph"
)

// CheckUseCase validates a unit collection in one batch pass: load every
// document, build the prerequisite graph, and compute the lesson order.
// All issues are collected; nothing fails fast.
type CheckUseCase struct {
	load *LoadUseCase
}

func NewCheckUseCase(load *LoadUseCase) *CheckUseCase {
	return &CheckUseCase{load: load}
}

func (u *CheckUseCase) Check(root string) (*domain.Report, error) {
	result, err := u.load.Load(root)
	if err != nil {
		return nil, err
	}
	return validate(result), nil
}

// validate derives the graph and order from loaded units and assembles the
// final report. The order is only published when the collection is clean.
func validate(result *LoadResult) *domain.Report {
	report := &domain.Report{Issues: result.Issues}

	g, issues := graph.Build(result.Units)
	report.Issues = append(report.Issues, issues...)

	order, issues := g.Order()
	report.Issues = append(report.Issues, issues...)

	if len(report.Issues) == 0 {
		report.Order = order
	}

	themes := make(map[string]bool)
	for _, unit := range result.Units {
		if unit.Theme != "" {
			themes[unit.Theme] = true
		}
	}
	report.Stats = domain.Stats{
		TotalUnits: len(result.Units),
		TotalEdges: g.EdgeCount(),
		Themes:     len(themes),
	}

	return report
}
