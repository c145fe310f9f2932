package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"syllabus/config"
	"syllabus/internal/adapter/fs"
	"syllabus/internal/adapter/parser"
	"syllabus/internal/domain"
	"syllabus/internal/usecase"
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Validate lesson units and their prerequisites",
	Long: `Load every unit document under the given directory, check its metadata,
resolve the prerequisite graph, and report either the computed lesson order
or every problem found. The exit code is non-zero when any problem exists.

Examples:
  syllabus check .               # Validate the current directory
  syllabus check /path/to/units  # Validate a specific directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path, err := resolveUnitDir(args)
	if err != nil {
		return err
	}

	checkUC := usecase.NewCheckUseCase(newLoadUseCase(GetConfig()))

	report, err := checkUC.Check(path)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	printReport(report)
	if !report.OK() {
		return fmt.Errorf("%d problem(s) found", len(report.Issues))
	}
	return nil
}

// resolveUnitDir resolves the optional path argument, defaulting to the
// root directory, and verifies it is an existing directory.
func resolveUnitDir(args []string) (string, error) {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return "", fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", path)
	}
	return path, nil
}

func newLoadUseCase(cfg *config.Config) *usecase.LoadUseCase {
	walker := fs.NewWalker(cfg.Units.Includes, cfg.Units.Excludes)
	return usecase.NewLoadUseCase(walker, parser.NewFrontMatterParser(), usecase.LoadOptions{
		AllowedThemes: cfg.Units.Themes,
		RequireTheme:  cfg.Units.RequireTheme,
	})
}

func printReport(report *domain.Report) {
	if !report.OK() {
		fmt.Printf("Problems:\n")
		for _, issue := range report.Issues {
			fmt.Printf("  - %s\n", issue)
		}
		fmt.Println()
	}

	fmt.Printf("Collection summary:\n")
	fmt.Printf("  Units:  %d\n", report.Stats.TotalUnits)
	fmt.Printf("  Edges:  %d\n", report.Stats.TotalEdges)
	fmt.Printf("  Themes: %d\n", report.Stats.Themes)

	if report.OK() {
		fmt.Printf("\nLesson order:\n")
		for i, slug := range report.Order {
			fmt.Printf("  %2d. %s\n", i+1, slug)
		}
	}
}
