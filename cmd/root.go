package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gocable/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gocable",
	Short: "Underground Cable Constants Tool",
	Long: `gocable - Go Cable Constants Calculator

A CLI tool for computing per-unit-length series impedance and shunt
admittance matrices of multi-conductor underground cable systems
across a frequency sweep.

This tool helps power system engineers compute:
  - Skin-effect internal impedance of tubular conductors
  - Earth-return self and mutual coupling of buried cables
  - Bundled and Kron-reduced phase-domain matrices
  - Symmetrical-component (sequence) matrices
  - R/L/G/C line constants with propagated measurement uncertainty`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gocable v%-47s║\n", version.Version)
		fmt.Println("  ║   Go Cable Constants Calculator                           ║")
		fmt.Printf("  ║   %s ©  %s                                ║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the cable-constants problem: series impedance")
		fmt.Println("  and shunt admittance of buried multi-conductor cable systems.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Exact and simplified skin-effect formulas")
		fmt.Println("    • Earth-return coupling via adaptive quadrature")
		fmt.Println("    • Bundling, Kron reduction and sequence transform")
		fmt.Println("    • First-order uncertainty propagation end to end")
		fmt.Println()
		fmt.Println("  Use 'gocable --help' to see available commands.")
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
