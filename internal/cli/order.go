package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"syllabus/internal/graph"
)

var orderFormat string

var orderCmd = &cobra.Command{
	Use:   "order [path]",
	Short: "Print the computed lesson order",
	Long: `Compute the prerequisite-consistent lesson order for the units under the
given directory. With --format dot the prerequisite graph is emitted as
Graphviz DOT instead.

Examples:
  syllabus order .
  syllabus order --format dot . | dot -Tsvg -o syllabus.svg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOrder,
}

func init() {
	orderCmd.Flags().StringVarP(&orderFormat, "format", "f", "", "output format: text or dot (default from config)")
	rootCmd.AddCommand(orderCmd)
}

func runOrder(cmd *cobra.Command, args []string) error {
	path, err := resolveUnitDir(args)
	if err != nil {
		return err
	}

	cfg := GetConfig()
	format := orderFormat
	if format == "" {
		format = cfg.Output.Format
	}

	result, err := newLoadUseCase(cfg).Load(path)
	if err != nil {
		return fmt.Errorf("failed to load units: %w", err)
	}

	g, issues := graph.Build(result.Units)
	issues = append(result.Issues, issues...)

	switch format {
	case "dot":
		// The graph renders even when validation would fail; seeing the
		// offending edges is the point of the picture.
		printDot(g)
		if len(issues) > 0 {
			return fmt.Errorf("%d problem(s) found", len(issues))
		}
		return nil
	case "text", "":
		order, orderIssues := g.Order()
		issues = append(issues, orderIssues...)
		if len(issues) > 0 {
			for _, issue := range issues {
				fmt.Printf("  - %s\n", issue)
			}
			return fmt.Errorf("%d problem(s) found", len(issues))
		}
		for i, slug := range order {
			fmt.Printf("%2d. %s\n", i+1, slug)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printDot(g *graph.Graph) {
	fmt.Println("digraph syllabus {")
	fmt.Println("  rankdir=LR;")
	for _, slug := range g.Units() {
		fmt.Printf("  %q;\n", slug)
	}
	for _, slug := range g.Units() {
		for _, need := range g.Prereqs(slug) {
			fmt.Printf("  %q -> %q;\n", need, slug)
		}
	}
	fmt.Println("}")
}
