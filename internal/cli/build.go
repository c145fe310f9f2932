package cli

import (
	"fmt"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"syllabus/config"
	"syllabus/internal/adapter/fs"
	"syllabus/internal/adapter/parser"
	"syllabus/internal/adapter/store"
	"syllabus/internal/usecase"
)

var buildCmd = &cobra.Command{
	Use:   "build [path]",
	Short: "Build the collection database",
	Long: `Build (or refresh) the unit collection database for the given directory.
The collection is stored in .syllabus/collection.db within the target
directory; unchanged documents are skipped on subsequent builds.

Examples:
  syllabus build .                # Build the current directory
  syllabus build /path/to/units   # Build a specific directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	path, err := resolveUnitDir(args)
	if err != nil {
		return err
	}

	cfg := GetConfig()

	if err := config.EnsureSyllabusDir(path); err != nil {
		return fmt.Errorf("failed to create .syllabus directory: %w", err)
	}

	dbPath := config.CollectionDBPath(path)
	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open collection store: %w", err)
	}
	defer st.Close()

	walker := fs.NewWalker(cfg.Units.Includes, cfg.Units.Excludes)
	buildUC := usecase.NewBuildUseCase(st, walker, parser.NewFrontMatterParser(), usecase.LoadOptions{
		AllowedThemes: cfg.Units.Themes,
		RequireTheme:  cfg.Units.RequireTheme,
	})

	fmt.Printf("Scanning %s...\n", path)

	var bar *progressbar.ProgressBar
	var barMu sync.Mutex
	var initialized bool

	progress := func(processed, total int, currentFile string) {
		barMu.Lock()
		defer barMu.Unlock()

		if !initialized {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Building[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
			initialized = true
		}

		bar.Set(processed)
	}

	result, err := buildUC.Build(path, progress)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fmt.Printf("\nBuild complete:\n")
	fmt.Printf("  Units parsed:  %d\n", result.UnitsParsed)
	fmt.Printf("  Units skipped: %d (unchanged)\n", result.UnitsSkipped)
	fmt.Printf("  Units deleted: %d (removed)\n", result.UnitsDeleted)
	fmt.Printf("\nCollection stored at: %s\n", dbPath)

	if len(result.Issues) > 0 {
		fmt.Printf("\nProblems:\n")
		for _, issue := range result.Issues {
			fmt.Printf("  - %s\n", issue)
		}
		return fmt.Errorf("%d problem(s) found", len(result.Issues))
	}

	fmt.Printf("\nLesson order:\n")
	for i, slug := range result.Order {
		fmt.Printf("  %2d. %s\n", i+1, slug)
	}
	return nil
}
