package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikogura/portfolio-cv/pkg/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Write a starter configuration file to $HOME/.portfolio-cv/config.json
(or the path given with --config). An existing file is never overwritten.

Example:
  portfolio-cv init
  portfolio-cv init --config ./portfolio-cv.json`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) (err error) {
	path := getConfigFile()
	if path == "" {
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	err = config.InitConfig(path)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote starter config: %s\n", path)
	fmt.Println("Edit content_location to point at your site content, then run 'portfolio-cv generate'.")
	return err
}
