package graph

import (
	"reflect"
	"testing"

	"syllabus/internal/domain"
)

func unitsOf(pairs ...[2]interface{}) []domain.Unit {
	units := make([]domain.Unit, 0, len(pairs))
	for i, p := range pairs {
		units = append(units, domain.Unit{
			Slug:     p[0].(string),
			Title:    p[0].(string),
			Needs:    p[1].([]string),
			Position: i,
		})
	}
	return units
}

func TestOrderRespectsPrerequisites(t *testing.T) {
	units := unitsOf(
		[2]interface{}{"visualize", []string{"tidy", "derive"}},
		[2]interface{}{"import", []string{}},
		[2]interface{}{"tidy", []string{"import"}},
		[2]interface{}{"derive", []string{"tidy"}},
	)

	g, issues := Build(units)
	if len(issues) != 0 {
		t.Fatalf("unexpected build issues: %v", issues)
	}

	order, issues := g.Order()
	if len(issues) != 0 {
		t.Fatalf("unexpected order issues: %v", issues)
	}

	seen := make(map[string]int)
	for i, slug := range order {
		seen[slug] = i
	}
	if len(order) != len(units) {
		t.Fatalf("expected %d units in order, got %d", len(units), len(order))
	}
	for _, u := range units {
		for _, need := range u.Needs {
			if seen[need] > seen[u.Slug] {
				t.Errorf("unit %q ordered before its prerequisite %q: %v", u.Slug, need, order)
			}
		}
	}
}

func TestOrderStableByInputOrder(t *testing.T) {
	// No edges at all: order must be exactly the input order.
	units := unitsOf(
		[2]interface{}{"gamma", []string{}},
		[2]interface{}{"alpha", []string{}},
		[2]interface{}{"beta", []string{}},
	)

	g, _ := Build(units)
	order, issues := g.Order()
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	want := []string{"gamma", "alpha", "beta"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("expected input order %v, got %v", want, order)
	}
}

func TestOrderTieBreak(t *testing.T) {
	// Both "spreadsheets" and "databases" only need "import"; the one that
	// appeared first in the input comes first in the order.
	units := unitsOf(
		[2]interface{}{"spreadsheets", []string{"import"}},
		[2]interface{}{"databases", []string{"import"}},
		[2]interface{}{"import", []string{}},
	)

	g, _ := Build(units)
	order, issues := g.Order()
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	want := []string{"import", "spreadsheets", "databases"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("expected %v, got %v", want, order)
	}
}

func TestUnknownDependency(t *testing.T) {
	units := unitsOf(
		[2]interface{}{"tidy", []string{"import", "nonexistent"}},
		[2]interface{}{"import", []string{}},
	)

	g, issues := Build(units)
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d: %v", len(issues), issues)
	}
	iss := issues[0]
	if iss.Kind != domain.UnknownDependency {
		t.Errorf("expected UnknownDependency, got %s", iss.Kind)
	}
	if iss.Slug != "tidy" || iss.Dep != "nonexistent" {
		t.Errorf("issue does not name the reference: %+v", iss)
	}

	// The bad edge is dropped; the rest of the graph still orders.
	order, orderIssues := g.Order()
	if len(orderIssues) != 0 {
		t.Fatalf("unexpected order issues: %v", orderIssues)
	}
	if len(order) != 2 {
		t.Errorf("expected both units in order, got %v", order)
	}
}

func TestThreeUnitCycle(t *testing.T) {
	units := unitsOf(
		[2]interface{}{"a", []string{"b"}},
		[2]interface{}{"b", []string{"c"}},
		[2]interface{}{"c", []string{"a"}},
	)

	g, buildIssues := Build(units)
	if len(buildIssues) != 0 {
		t.Fatalf("unexpected build issues: %v", buildIssues)
	}

	order, issues := g.Order()
	if order != nil {
		t.Errorf("expected nil order on cycle, got %v", order)
	}
	if len(issues) != 1 {
		t.Fatalf("expected 1 cycle issue, got %d: %v", len(issues), issues)
	}
	iss := issues[0]
	if iss.Kind != domain.CycleDetected {
		t.Errorf("expected CycleDetected, got %s", iss.Kind)
	}
	if !reflect.DeepEqual(iss.Cycle, []string{"a", "b", "c"}) {
		t.Errorf("expected cycle members [a b c], got %v", iss.Cycle)
	}
}

func TestSelfNeedIsACycle(t *testing.T) {
	units := unitsOf(
		[2]interface{}{"loop", []string{"loop"}},
	)

	_, issues := Build(units)
	if len(issues) != 1 || issues[0].Kind != domain.CycleDetected {
		t.Fatalf("expected a CycleDetected issue, got %v", issues)
	}
	if !reflect.DeepEqual(issues[0].Cycle, []string{"loop"}) {
		t.Errorf("expected one-member cycle, got %v", issues[0].Cycle)
	}
}

func TestCycleWithDownstreamDependent(t *testing.T) {
	// "report" needs the cycle but is not part of it; only the cycle's
	// members are reported.
	units := unitsOf(
		[2]interface{}{"a", []string{"b"}},
		[2]interface{}{"b", []string{"a"}},
		[2]interface{}{"report", []string{"a"}},
	)

	g, _ := Build(units)
	_, issues := g.Order()
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %v", issues)
	}
	if !reflect.DeepEqual(issues[0].Cycle, []string{"a", "b"}) {
		t.Errorf("expected cycle [a b], got %v", issues[0].Cycle)
	}
}

func TestOrderIdempotent(t *testing.T) {
	units := unitsOf(
		[2]interface{}{"visualize", []string{"tidy"}},
		[2]interface{}{"import", []string{}},
		[2]interface{}{"tidy", []string{"import"}},
		[2]interface{}{"model", []string{"tidy"}},
	)

	g1, _ := Build(units)
	first, _ := g1.Order()
	for i := 0; i < 10; i++ {
		g, _ := Build(units)
		again, _ := g.Order()
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("order not deterministic: %v vs %v", first, again)
		}
	}
}

func TestDuplicateNeedsDeduped(t *testing.T) {
	units := unitsOf(
		[2]interface{}{"tidy", []string{"import", "import"}},
		[2]interface{}{"import", []string{}},
	)

	g, issues := Build(units)
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("expected 1 edge after dedup, got %d", g.EdgeCount())
	}
}
