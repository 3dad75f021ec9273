package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"ringsim/internal/basin"
	"ringsim/internal/config"
	"ringsim/internal/export"
	"ringsim/internal/metrics"
	"ringsim/internal/ring"
	"ringsim/internal/storage"
	"ringsim/internal/viz"
)

var (
	dataDir string
	verbose bool

	size         int
	coupling     float64
	dt           float64
	steps        int
	seed         int64
	integrator   string
	freqPolicy   string
	phasePolicy  string
	configFile   string
	preset       string
	sampleEvery  int
	snapshotPath string

	trials    int
	batchSize int

	sweepFrom float64
	sweepTo   float64
	sweepBy   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ringsim",
		Short: "Kuramoto ring oscillator lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
				Level:      level,
				TimeFormat: time.Kitchen,
			})))
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ringsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store its diagnostics",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", 10, "record diagnostics every N steps")
	runCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "write terminal ring state as SVG to this path")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "drive a ring interactively in the terminal",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	basinCmd := &cobra.Command{
		Use:   "basin",
		Short: "estimate basin-of-attraction sizes",
		RunE:  runBasin,
	}
	addSimFlags(basinCmd)
	basinCmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	basinCmd.Flags().IntVar(&batchSize, "batch", 10, "trials between progress reports")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "scan coupling strength and tabulate basin fractions",
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&trials, "trials", 50, "trials per coupling value")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.0, "first coupling value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 4.0, "last coupling value")
	sweepCmd.Flags().Float64Var(&sweepBy, "by", 0.25, "coupling increment")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored run's series as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a stored run's order parameter as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("%-14s N=%-4d K=%-5.2f freqs=%-11s phases=%s\n",
					name, p.Ring.Size, p.Ring.Coupling, p.Ring.Frequencies, p.Ring.Phases)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, basinCmd, sweepCmd, listCmd, plotCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&size, "size", config.DefaultSize, "oscillator count")
	cmd.Flags().Float64Var(&coupling, "coupling", config.DefaultCoupling, "coupling strength K")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "integration steps")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (euler|rk4)")
	cmd.Flags().StringVar(&freqPolicy, "freqs", "identical", "frequency policy (identical|random|two-groups)")
	cmd.Flags().StringVar(&phasePolicy, "phases", "random", "phase policy (random|quasi-sync|twisted-1|twisted-2)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers preset, config file, and explicit flags, in that
// order of increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Ring.Size = size
	}
	if flags.Changed("coupling") {
		cfg.Ring.Coupling = coupling
	}
	if flags.Changed("dt") {
		cfg.Sim.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Sim.Steps = steps
	}
	if flags.Changed("seed") {
		cfg.Sim.Seed = seed
	}
	if flags.Changed("integrator") {
		cfg.Sim.Integrator = integrator
	}
	if flags.Changed("freqs") {
		cfg.Ring.Frequencies = freqPolicy
	}
	if flags.Changed("phases") {
		cfg.Ring.Phases = phasePolicy
	}
	if cfg.Sim.Seed == 0 {
		cfg.Sim.Seed = time.Now().UnixNano()
	}
	if cfg.Basin.Trials == 0 {
		cfg.Basin = config.DefaultConfig().Basin
	}
	if flags.Changed("trials") {
		cfg.Basin.Trials = trials
	}
	if flags.Changed("batch") {
		cfg.Basin.Batch = batchSize
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildRing constructs and initializes a ring from the resolved config.
func buildRing(cfg *config.Config) (*ring.Ring, error) {
	rng := rand.New(rand.NewSource(cfg.Sim.Seed))
	r, err := ring.New(cfg.Ring.Size, rng)
	if err != nil {
		return nil, err
	}
	r.SetCoupling(cfg.Ring.Coupling)

	fp, err := cfg.FreqPolicy()
	if err != nil {
		return nil, err
	}
	if err := r.SetFrequencies(fp); err != nil {
		return nil, err
	}

	pp, err := cfg.PhasePolicy()
	if err != nil {
		return nil, err
	}
	if err := r.SetInitialPhases(pp); err != nil {
		return nil, err
	}
	return r, nil
}

func openStore() (*storage.Store, error) {
	return storage.Open(filepath.Join(dataDir, "ringsim.db"))
}

func metaFromConfig(cfg *config.Config) storage.RunMeta {
	return storage.RunMeta{
		RingSize:    cfg.Ring.Size,
		Coupling:    cfg.Ring.Coupling,
		Dt:          cfg.Sim.Dt,
		Steps:       cfg.Sim.Steps,
		Seed:        cfg.Sim.Seed,
		FreqPolicy:  cfg.Ring.Frequencies,
		PhasePolicy: cfg.Ring.Phases,
		Integrator:  cfg.Sim.Integrator,
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	r, err := buildRing(cfg)
	if err != nil {
		return err
	}
	method, err := cfg.Method()
	if err != nil {
		return err
	}

	if sampleEvery < 1 {
		sampleEvery = 1
	}

	slog.Info("starting run",
		"size", cfg.Ring.Size,
		"coupling", cfg.Ring.Coupling,
		"integrator", method.String(),
		"steps", cfg.Sim.Steps)

	mset := metrics.Defaults()
	samples := make([]storage.Sample, 0, cfg.Sim.Steps/sampleEvery+1)

	record := func(step int, t float64) {
		mag, psi := r.OrderParameter()
		samples = append(samples, storage.Sample{
			Step:     step,
			T:        t,
			OrderR:   mag,
			Psi:      psi,
			Winding:  r.WindingNumber(),
			Variance: 1 - mag,
		})
	}

	start := time.Now()
	t := 0.0
	record(0, 0)
	for i := 1; i <= cfg.Sim.Steps; i++ {
		r.Advance(method, cfg.Sim.Dt)
		t += cfg.Sim.Dt
		for _, m := range mset {
			m.Observe(r, t)
		}
		if i%sampleEvery == 0 {
			record(i, t)
		}
	}
	elapsed := time.Since(start)

	meta := metaFromConfig(cfg)
	meta.Metrics = make(map[string]float64, len(mset))
	for _, m := range mset {
		meta.Metrics[m.Name()] = m.Value()
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runID, err := st.SaveRun(meta, samples)
	if err != nil {
		return err
	}

	if snapshotPath != "" {
		svg := export.RingSVG(r.Phases(), 480)
		if err := os.WriteFile(snapshotPath, []byte(svg), 0644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		slog.Info("wrote snapshot", "path", snapshotPath)
	}

	cls := r.Classify()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("final state: %s\n", cls)
	fmt.Println("\nmetrics:")
	for name, val := range meta.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	r, err := buildRing(cfg)
	if err != nil {
		return err
	}
	method, err := cfg.Method()
	if err != nil {
		return err
	}
	fp, err := cfg.FreqPolicy()
	if err != nil {
		return err
	}

	m := viz.NewModel(r, method, fp, cfg.Sim.Dt)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func runBasin(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := basin.New(cfg.BasinExperiment())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	dist, err := exp.Run(ctx, func(done, total int) {
		if done > 0 {
			slog.Info("basin progress", "done", done, "total", total)
		}
	})
	if err != nil {
		return fmt.Errorf("experiment aborted after %d trials: %w", dist.Total, err)
	}
	elapsed := time.Since(start)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runID, err := st.SaveBasin(metaFromConfig(cfg), *dist)
	if err != nil {
		return err
	}

	fmt.Printf("completed %d trials in %v (run id: %s)\n\n", dist.Total, elapsed, runID)
	printDistribution(*dist)
	return nil
}

func printDistribution(d basin.Distribution) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STATE\tCOUNT\tFRACTION")
	fmt.Fprintf(w, "sync\t%d\t%.1f%%\n", d.Sync, 100*d.Fraction(d.Sync))
	fmt.Fprintf(w, "twisted-1\t%d\t%.1f%%\n", d.Twisted1, 100*d.Fraction(d.Twisted1))
	fmt.Fprintf(w, "twisted-2\t%d\t%.1f%%\n", d.Twisted2, 100*d.Fraction(d.Twisted2))
	fmt.Fprintf(w, "other\t%d\t%.1f%%\n", d.Other, 100*d.Fraction(d.Other))
	w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	base := cfg.BasinExperiment()
	base.Trials = trials

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("sweeping K from %.2f to %.2f by %.2f (%d trials each)\n\n",
		sweepFrom, sweepTo, sweepBy, base.Trials)

	points, err := basin.Sweep(ctx, basin.SweepConfig{
		Base: base,
		From: sweepFrom,
		To:   sweepTo,
		By:   sweepBy,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "K\tSYNC\tTWISTED1\tTWISTED2\tOTHER")
	syncFracs := make([]float64, len(points))
	for i, p := range points {
		syncFracs[i] = p.Dist.Fraction(p.Dist.Sync)
		fmt.Fprintf(w, "%.2f\t%d\t%d\t%d\t%d\n",
			p.Coupling, p.Dist.Sync, p.Dist.Twisted1, p.Dist.Twisted2, p.Dist.Other)
	}
	w.Flush()

	if len(syncFracs) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(syncFracs,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("sync basin fraction vs K"),
		))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tWHEN\tN\tK\tDT\tSTEPS\tINTEG")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%.3f\t%d\t%s\n",
			run.ID,
			run.Kind,
			humanize.Time(run.CreatedAt),
			run.RingSize,
			run.Coupling,
			run.Dt,
			run.Steps,
			run.Integrator,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	if meta.Kind == "basin" {
		rec, err := st.LoadBasin(meta.ID)
		if err != nil {
			return err
		}
		fmt.Printf("basin experiment %s (N=%d, K=%.2f)\n\n", meta.ID, meta.RingSize, meta.Coupling)
		printDistribution(basin.Distribution{
			Sync: rec.Sync, Twisted1: rec.Twisted1, Twisted2: rec.Twisted2,
			Other: rec.Other, Total: rec.Trials,
		})
		return nil
	}

	samples, err := st.LoadSamples(meta.ID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no samples for run %s", meta.ID)
	}

	fmt.Printf("run %s (N=%d, K=%.2f, %s)\n\n", meta.ID, meta.RingSize, meta.Coupling, meta.Integrator)

	series := []struct {
		caption string
		value   func(storage.Sample) float64
	}{
		{"order parameter r", func(s storage.Sample) float64 { return s.OrderR }},
		{"circular variance", func(s storage.Sample) float64 { return s.Variance }},
		{"winding number q", func(s storage.Sample) float64 { return float64(s.Winding) }},
	}

	for _, sp := range series {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = sp.value(s)
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption(sp.caption),
		))
		fmt.Println()
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no samples for run %s", args[0])
	}
	return storage.ExportCSV(os.Stdout, samples)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("not enough samples for run %s", args[0])
	}

	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.OrderR
	}
	_, err = fmt.Fprintln(os.Stdout,
		export.SeriesSVG(values, 720, 240, "#00ff00", "order parameter r"))
	return err
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(meta.ID)
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, samples)
}
