package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show one unit from the built collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	st, err := openCollection()
	if err != nil {
		return err
	}
	defer st.Close()

	unit, err := st.GetUnit(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Slug:     %s\n", unit.Slug)
	fmt.Printf("Title:    %s\n", unit.Title)
	if unit.Theme != "" {
		fmt.Printf("Theme:    %s\n", unit.Theme)
	}
	if len(unit.Needs) > 0 {
		fmt.Printf("Needs:    %s\n", strings.Join(unit.Needs, ", "))
	}
	if len(unit.Readings) > 0 {
		fmt.Printf("Readings: %s\n", strings.Join(unit.Readings, ", "))
	}
	fmt.Printf("Source:   %s\n", unit.Path)

	if body := strings.TrimSpace(unit.Body); body != "" {
		fmt.Printf("\n%s\n", body)
	}
	return nil
}
