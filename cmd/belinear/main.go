package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/ebeamlab/belinear"
	"github.com/ebeamlab/belinear/internal/config"
	"github.com/ebeamlab/belinear/internal/fieldmap"
	"github.com/ebeamlab/belinear/internal/storage"
	"github.com/ebeamlab/belinear/internal/viz"
)

var (
	dataDir    string
	ezMapPath  string
	bzMapPath  string
	length     float64
	samples    int
	gamma      float64
	method     string
	cumulative bool
	chart      bool
	save       bool
	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "belinear",
		Short: "paraxial beamline transfer matrices from on-axis field maps",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".belinear", "data directory")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "compute a transfer matrix",
		RunE:  runSolve,
	}
	solveCmd.Flags().StringVar(&ezMapPath, "ez-map", "", "Ez field map file (z [m], Ez [V/m])")
	solveCmd.Flags().StringVar(&bzMapPath, "bz-map", "", "Bz field map file (z [m], Bz [T])")
	solveCmd.Flags().Float64Var(&length, "length", 0, "beamline length [m]")
	solveCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "uniform grid size")
	solveCmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "initial Lorentz factor")
	solveCmd.Flags().StringVar(&method, "method", config.DefaultMethod, "midpoint|implicit_euler|constant_field")
	solveCmd.Flags().BoolVar(&cumulative, "cumulative", false, "keep the matrix at every step")
	solveCmd.Flags().BoolVar(&chart, "chart", false, "chart m11 along z (implies --cumulative)")
	solveCmd.Flags().BoolVar(&save, "save", false, "persist the run (implies --cumulative)")
	solveCmd.Flags().StringVar(&configFile, "config", "", "solve config file (yaml)")
	solveCmd.Flags().StringVar(&preset, "preset", "", "built-in beamline preset")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  runList,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "browse a saved run interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in beamline presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, name := range config.ListPresets() {
				fmt.Fprintf(w, "%s\t%s\n", name, config.GetPreset(name).Description)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(solveCmd, listCmd, exportCmd, viewCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadFields resolves preset, config file, and flags (in rising
// precedence) into the sampled field pair the solver consumes.
func loadFields(cmd *cobra.Command) (ez, bz []float64, h float64, err error) {
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, nil, 0, fmt.Errorf("unknown preset %q (available: %v)", preset, config.ListPresets())
		}
		if !cmd.Flags().Changed("gamma") {
			gamma = p.Gamma
		}
		if !cmd.Flags().Changed("method") {
			method = p.Method
		}
		ez, bz, h = p.Fields()
		return ez, bz, h, nil
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("ez-map") {
			ezMapPath = cfg.EzMap
		}
		if !cmd.Flags().Changed("bz-map") {
			bzMapPath = cfg.BzMap
		}
		if !cmd.Flags().Changed("length") {
			length = cfg.Length
		}
		if !cmd.Flags().Changed("samples") {
			samples = cfg.Samples
		}
		if !cmd.Flags().Changed("gamma") {
			gamma = cfg.Gamma
		}
		if !cmd.Flags().Changed("method") {
			method = cfg.Method
		}
		if !cmd.Flags().Changed("cumulative") {
			cumulative = cfg.Cumulative
		}
	}

	if ezMapPath == "" && bzMapPath == "" {
		return nil, nil, 0, fmt.Errorf("need --ez-map and/or --bz-map (or --preset / --config)")
	}
	if length <= 0 {
		return nil, nil, 0, fmt.Errorf("need a positive --length")
	}

	ez, h, err = resample(ezMapPath, length, samples)
	if err != nil {
		return nil, nil, 0, err
	}
	bz, _, err = resample(bzMapPath, length, samples)
	if err != nil {
		return nil, nil, 0, err
	}
	return ez, bz, h, nil
}

// resample loads and grids one map, or returns a zero profile when no
// path was given (a beamline may have only one of the two fields).
func resample(path string, length float64, n int) ([]float64, float64, error) {
	h := length / float64(n-1)
	if path == "" {
		return make([]float64, n), h, nil
	}
	z, v, err := fieldmap.Load(path)
	if err != nil {
		return nil, 0, err
	}
	return fieldmap.Resample(z, v, length, n)
}

func runSolve(cmd *cobra.Command, args []string) error {
	ez, bz, h, err := loadFields(cmd)
	if err != nil {
		return err
	}

	m, err := belinear.ParseMethod(method)
	if err != nil {
		return err
	}
	opts := belinear.Options{GammaInitial: gamma, Method: m}

	wantSequence := cumulative || chart || save

	fmt.Printf("solving %d samples with %s...\n", len(ez), m)
	start := time.Now()

	var final belinear.Matrix
	var ms []belinear.Matrix
	if wantSequence {
		ms, err = belinear.CumulativeMatrices(ez, bz, h, opts)
		if err != nil {
			return err
		}
		final = ms[len(ms)-1]
	} else {
		final, err = belinear.TransferMatrix(ez, bz, h, opts)
		if err != nil {
			return err
		}
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))
	printMatrix(final, h, len(ez))

	if chart {
		series := sampleElement(ms, 0, 0)
		fmt.Println()
		fmt.Println(asciigraph.Plot(series,
			asciigraph.Height(12),
			asciigraph.Width(72),
			asciigraph.Caption("m11(z)"),
		))
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(string(m), h, gamma, ms)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}

func printMatrix(m belinear.Matrix, h float64, n int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "\t% .9e\t% .9e\t\n", m[0][0], m[0][1])
	fmt.Fprintf(w, "\t% .9e\t% .9e\t\n", m[1][0], m[1][1])
	w.Flush()
	fmt.Printf("\ndet: %.12f\nsteps: %d (h=%.3g m)\n", m.Det(), n-1, h)
}

func sampleElement(ms []belinear.Matrix, r, c int) []float64 {
	const width = 72
	if len(ms) <= width {
		out := make([]float64, len(ms))
		for i, m := range ms {
			out[i] = m[r][c]
		}
		return out
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		j := i * (len(ms) - 1) / (width - 1)
		out[i] = ms[j][r][c]
	}
	return out
}

func runList(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tMETHOD\tGAMMA0\tSTEP\tSAMPLES\tDET")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%.3g\t%d\t%.9f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Method,
			run.GammaInitial,
			run.StepSize,
			run.Samples,
			run.DetFinal,
		)
	}
	return w.Flush()
}

func runExport(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func runView(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	ms, err := st.LoadMatrices(args[0])
	if err != nil {
		return err
	}
	return viz.Run(ms, meta.StepSize, meta.Method)
}
