package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gocable/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gocable",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gocable v%s\n", version.Version)
		fmt.Println("Underground Cable Constants Tool")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
