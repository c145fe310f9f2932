// Package graph builds the prerequisite graph of a unit collection and
// derives a lesson order from it. The graph is a read-only artifact: it is
// constructed once from the parsed units and never mutated afterwards.
package graph

import (
	"syllabus/internal/domain"
)

// Graph maps each unit to its resolved prerequisites. Edges point from a
// unit to the units it needs.
type Graph struct {
	nodes   []string
	pos     map[string]int
	prereqs map[string][]string
}

// Build constructs the dependency graph from parsed units. Prerequisites
// that name no existing unit are reported as UnknownDependency issues and
// their edges dropped; a unit that directly needs itself is reported as a
// one-member cycle. Unit slugs are assumed unique (enforced upstream).
func Build(units []domain.Unit) (*Graph, []domain.Issue) {
	g := &Graph{
		nodes:   make([]string, 0, len(units)),
		pos:     make(map[string]int, len(units)),
		prereqs: make(map[string][]string, len(units)),
	}
	for _, u := range units {
		g.nodes = append(g.nodes, u.Slug)
		g.pos[u.Slug] = u.Position
	}

	var issues []domain.Issue
	for _, u := range units {
		seen := make(map[string]bool, len(u.Needs))
		for _, need := range u.Needs {
			if seen[need] {
				continue
			}
			seen[need] = true

			if need == u.Slug {
				issues = append(issues, domain.Issue{
					Kind:  domain.CycleDetected,
					Slug:  u.Slug,
					Cycle: []string{u.Slug},
				})
				continue
			}
			if _, ok := g.pos[need]; !ok {
				issues = append(issues, domain.Issue{
					Kind: domain.UnknownDependency,
					Slug: u.Slug,
					Dep:  need,
				})
				continue
			}
			g.prereqs[u.Slug] = append(g.prereqs[u.Slug], need)
		}
	}

	return g, issues
}

// Units returns the unit slugs in original input order.
func (g *Graph) Units() []string {
	return g.nodes
}

// Prereqs returns the resolved prerequisites of a unit, in declaration order.
func (g *Graph) Prereqs(slug string) []string {
	return g.prereqs[slug]
}

// EdgeCount returns the number of resolved prerequisite edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, deps := range g.prereqs {
		n += len(deps)
	}
	return n
}

// Order computes a topological order of the units: every unit appears after
// all of its prerequisites. Units whose relative order is unconstrained keep
// their original input order. If the graph contains cycles, Order returns a
// nil order and one CycleDetected issue per cycle, each naming the cycle's
// member slugs in edge order.
func (g *Graph) Order() ([]string, []domain.Issue) {
	remaining := make(map[string]bool, len(g.nodes))
	for _, slug := range g.nodes {
		remaining[slug] = true
	}

	// Kahn's algorithm. Collections are small, so the next ready unit is
	// found with a linear scan over the input order, which also gives the
	// stable tie-break for free.
	order := make([]string, 0, len(g.nodes))
	for len(order) < len(g.nodes) {
		next := ""
		for _, slug := range g.nodes {
			if remaining[slug] && !g.hasRemainingPrereq(slug, remaining) {
				next = slug
				break
			}
		}
		if next == "" {
			break // every remaining unit waits on another: cycle
		}
		delete(remaining, next)
		order = append(order, next)
	}

	if len(remaining) == 0 {
		return order, nil
	}

	var issues []domain.Issue
	for len(remaining) > 0 {
		cycle := g.extractCycle(remaining)
		issues = append(issues, domain.Issue{
			Kind:  domain.CycleDetected,
			Slug:  cycle[0],
			Cycle: cycle,
		})
		for _, slug := range cycle {
			delete(remaining, slug)
		}
		g.peelSatisfied(remaining)
	}
	return nil, issues
}

func (g *Graph) hasRemainingPrereq(slug string, remaining map[string]bool) bool {
	for _, p := range g.prereqs[slug] {
		if remaining[p] {
			return true
		}
	}
	return false
}

// extractCycle walks prerequisite edges inside the remaining set until a
// node repeats. After Kahn stalls every remaining node has at least one
// remaining prerequisite, so the walk always closes a cycle.
func (g *Graph) extractCycle(remaining map[string]bool) []string {
	start := ""
	for _, slug := range g.nodes {
		if remaining[slug] {
			start = slug
			break
		}
	}

	index := make(map[string]int)
	var path []string
	cur := start
	for {
		if i, ok := index[cur]; ok {
			return canonical(path[i:], g.pos)
		}
		index[cur] = len(path)
		path = append(path, cur)

		for _, p := range g.prereqs[cur] {
			if remaining[p] {
				cur = p
				break
			}
		}
	}
}

// peelSatisfied drops remaining units whose prerequisites have all been
// resolved or removed, mimicking the continuation of Kahn's algorithm after
// a cycle has been cut out. Units left behind belong to further cycles.
func (g *Graph) peelSatisfied(remaining map[string]bool) {
	for changed := true; changed; {
		changed = false
		for slug := range remaining {
			if !g.hasRemainingPrereq(slug, remaining) {
				delete(remaining, slug)
				changed = true
			}
		}
	}
}

// canonical rotates a cycle so the member with the smallest input position
// comes first, keeping edge order. This makes reported cycles deterministic
// regardless of where the walk happened to enter them.
func canonical(cycle []string, pos map[string]int) []string {
	best := 0
	for i, slug := range cycle {
		if pos[slug] < pos[cycle[best]] {
			best = i
		}
	}
	out := make([]string, 0, len(cycle))
	out = append(out, cycle[best:]...)
	out = append(out, cycle[:best]...)
	return out
}
