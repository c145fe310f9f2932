package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"syllabus/config"
	"syllabus/internal/adapter/store"
	"syllabus/internal/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List units from the built collection",
	Long: `List every unit in the built collection database, in lesson order when
one was computed, otherwise in input order. Run "syllabus build" first.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	st, err := openCollection()
	if err != nil {
		return err
	}
	defer st.Close()

	units, err := st.ListUnits()
	if err != nil {
		return fmt.Errorf("failed to list units: %w", err)
	}
	if len(units) == 0 {
		fmt.Println("Collection is empty. Run \"syllabus build\" first.")
		return nil
	}

	order, err := st.GetOrder()
	if err != nil {
		return fmt.Errorf("failed to read lesson order: %w", err)
	}
	if len(order) > 0 {
		bySlug := make(map[string]domain.Unit, len(units))
		for _, u := range units {
			bySlug[u.Slug] = u
		}
		ordered := make([]domain.Unit, 0, len(units))
		for _, slug := range order {
			if u, ok := bySlug[slug]; ok {
				ordered = append(ordered, u)
			}
		}
		units = ordered
	}

	for i, u := range units {
		theme := u.Theme
		if theme == "" {
			theme = "-"
		}
		fmt.Printf("%2d. %-20s %-12s %s\n", i+1, u.Slug, theme, u.Title)
	}
	return nil
}

// openCollection opens the built collection database under the root
// directory, failing with a hint when no build has happened yet.
func openCollection() (*store.BoltStore, error) {
	dbPath := config.CollectionDBPath(GetRootDir())
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("no collection found at %s (run \"syllabus build\" first)", dbPath)
	}
	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection store: %w", err)
	}
	return st, nil
}
