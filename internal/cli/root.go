package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"syllabus/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "syllabus",
	Short: "Lesson unit loader and validator",
	Long: `syllabus loads a directory of lesson unit documents (markdown with YAML
front matter), resolves their prerequisite graph, and either reports a
lesson order or every validation problem it found.

Example usage:
  syllabus check .        # Validate units and show the lesson order
  syllabus order .        # Print the computed lesson order
  syllabus build .        # Build the collection database
  syllabus list           # List units from the built collection`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./syllabus.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
