package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/gocable/internal/cable"
	"github.com/alexiusacademia/gocable/internal/impedance"
	"github.com/alexiusacademia/gocable/internal/sweep"
)

var (
	// Sweep inputs
	sweepFile      string
	sweepFreqStart float64
	sweepFreqStop  float64
	sweepPoints    int
	sweepScale     string
	sweepSimple    bool
	sweepKxMode    string
	sweepSequence  bool
	sweepWorkers   int
	sweepCSV       string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compute Z/Y matrices and line constants for a cable system",
	Long: `Run the cable-constants engine over a frequency sweep.

The cable system is described by a YAML file: buried cables with their
conductor layers, phase assignments, the soil model and (optionally) the
frequency samples. Measured quantities may carry uncertainties, which are
propagated to every output.

Examples:
  # Sweep the frequencies listed in the system file
  gocable sweep --file system.yaml

  # Override with a 30-point logarithmic grid from 10 Hz to 1 MHz
  gocable sweep --file system.yaml --freq-start 10 --freq-stop 1e6 --points 30

  # Simplified skin-effect formulas, sequence matrices, CSV export
  gocable sweep -f system.yaml --simplified --sequence --csv out.csv`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().StringVarP(&sweepFile, "file", "f", "", "Cable system YAML file [required]")

	// Frequency grid flags override the file's frequency list
	sweepCmd.Flags().Float64Var(&sweepFreqStart, "freq-start", 0, "Sweep start frequency (Hz)")
	sweepCmd.Flags().Float64Var(&sweepFreqStop, "freq-stop", 0, "Sweep stop frequency (Hz)")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 0, "Number of frequency points")
	sweepCmd.Flags().StringVar(&sweepScale, "scale", "log", "Frequency grid scale: log or lin")

	// Model flags
	sweepCmd.Flags().BoolVar(&sweepSimple, "simplified", false, "Use simplified internal-impedance formulas")
	sweepCmd.Flags().StringVar(&sweepKxMode, "kx", "none", "Axial propagation-constant mode: none, air or earth")
	sweepCmd.Flags().BoolVar(&sweepSequence, "sequence", false, "Also compute symmetrical-component matrices (3-phase only)")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 1, "Frequency samples computed in parallel")

	sweepCmd.Flags().StringVar(&sweepCSV, "csv", "", "Write the RLGC table to a CSV file")

	sweepCmd.MarkFlagRequired("file")
}

func runSweep(cmd *cobra.Command, args []string) error {
	sys, err := cable.LoadSystem(sweepFile)
	if err != nil {
		return err
	}
	if sweepPoints > 0 {
		grid, err := frequencyGrid(sweepFreqStart, sweepFreqStop, sweepPoints, sweepScale)
		if err != nil {
			return err
		}
		sys.Frequencies = grid
	}

	res, err := sweep.Run(sys, sweep.Options{
		Simplified: sweepSimple,
		KxMode:     impedance.KxMode(sweepKxMode),
		Sequence:   sweepSequence,
		Workers:    sweepWorkers,
	})
	if err != nil {
		return err
	}
	sweep.Clean(res)
	table := sweep.RLGCTable(res)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     CABLE SYSTEM FREQUENCY SWEEP")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  System file:\t%s\n", sweepFile)
	fmt.Fprintf(w, "  Cables:\t%d\n", len(sys.Cables))
	fmt.Fprintf(w, "  Conductors:\t%d\n", sys.ConductorCount())
	fmt.Fprintf(w, "  Retained phases:\t%v\n", res.Phases)
	fmt.Fprintf(w, "  Frequency samples:\t%d (%g – %g Hz)\n",
		len(res.Frequencies), res.Frequencies[0], res.Frequencies[len(res.Frequencies)-1])
	fmt.Fprintf(w, "  Soil resistivity:\t%g Ω·m\n", sys.Soil.Resistivity.Value)
	fmt.Fprintf(w, "  Internal impedance:\t%s\n", formulaName(sweepSimple))
	fmt.Fprintf(w, "  kx mode:\t%s\n", sweepKxMode)
	w.Flush()
	fmt.Println()

	fmt.Println("LINE CONSTANTS (per km):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  f (Hz)\tphase\tR (Ω/km)\tL (mH/km)\tG (µS/km)\tC (µF/km)")
	for _, e := range table {
		fmt.Fprintf(w, "  %.4g\t%d\t%s\t%s\t%s\t%s\n",
			e.Frequency, e.Phase,
			formatQty(e.R.Nominal()*1e3, e.R.Sigma()*1e3),
			formatQty(e.L.Nominal()*1e6, e.L.Sigma()*1e6),
			formatQty(e.G.Nominal()*1e9, e.G.Sigma()*1e9),
			formatQty(e.C.Nominal()*1e9, e.C.Sigma()*1e9))
	}
	w.Flush()
	fmt.Println()

	if sweepSequence {
		printSequence(res)
	}

	if sweepCSV != "" {
		if err := writeCSV(sweepCSV, table); err != nil {
			return err
		}
		fmt.Printf("  RLGC table written to %s\n", sweepCSV)
		fmt.Println()
	}
	return nil
}

func printSequence(res *sweep.Result) {
	fmt.Println("SEQUENCE IMPEDANCES (Ω/km):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  f (Hz)\tZ0\tZ1\tZ2")
	for k, freq := range res.Frequencies {
		fmt.Fprintf(w, "  %.4g", freq)
		for s := 0; s < 3; s++ {
			z := res.Z012[s][s][k].Nominal() * 1e3
			fmt.Fprintf(w, "\t%.4g%+.4gj", real(z), imag(z))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	fmt.Println()
}

// formatQty renders "nominal ± sigma" with the sigma omitted when zero.
func formatQty(nom, sigma float64) string {
	if sigma == 0 {
		return fmt.Sprintf("%.6g", nom)
	}
	return fmt.Sprintf("%.6g ± %.2g", nom, sigma)
}

func formulaName(simplified bool) string {
	if simplified {
		return "simplified (coth/csch)"
	}
	return "exact (Bessel)"
}

// frequencyGrid builds the sweep grid when the CLI overrides the file's
// frequency list.
func frequencyGrid(start, stop float64, points int, scale string) ([]float64, error) {
	if start <= 0 || stop <= start {
		return nil, fmt.Errorf("invalid frequency range: start=%g stop=%g", start, stop)
	}
	if points < 2 {
		return nil, fmt.Errorf("frequency grid needs at least 2 points, got %d", points)
	}
	grid := make([]float64, points)
	switch scale {
	case "log":
		floats.LogSpan(grid, start, stop)
	case "lin":
		floats.Span(grid, start, stop)
	default:
		return nil, fmt.Errorf("unknown frequency scale %q (want log or lin)", scale)
	}
	return grid, nil
}

func writeCSV(path string, table []sweep.RLGCEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	header := []string{"frequency_hz", "phase",
		"r_ohm_per_m", "r_sigma", "l_h_per_m", "l_sigma",
		"g_s_per_m", "g_sigma", "c_f_per_m", "c_sigma"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, e := range table {
		rec := []string{
			strconv.FormatFloat(e.Frequency, 'g', -1, 64),
			strconv.Itoa(e.Phase),
			strconv.FormatFloat(e.R.Nominal(), 'g', -1, 64),
			strconv.FormatFloat(e.R.Sigma(), 'g', -1, 64),
			strconv.FormatFloat(e.L.Nominal(), 'g', -1, 64),
			strconv.FormatFloat(e.L.Sigma(), 'g', -1, 64),
			strconv.FormatFloat(e.G.Nominal(), 'g', -1, 64),
			strconv.FormatFloat(e.G.Sigma(), 'g', -1, 64),
			strconv.FormatFloat(e.C.Nominal(), 'g', -1, 64),
			strconv.FormatFloat(e.C.Sigma(), 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
