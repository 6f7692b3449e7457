package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/octree"
	"github.com/san-kum/gravsim/internal/scene"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	timeScale  float64
	seed       int64
	g          float64
	theta      float64
	algorithm  string
	configFile string
	preset     string
	extent     float64
	bodyIndex  int
	steps      int
	runs       int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "barnes-hut gravity sandbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand opens the live view on the stock scene.
			return runLive(cmd, []string{config.DefaultScene})
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run headless and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().Float64Var(&extent, "extent", 0, "world radius to frame (0 = auto)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&bodyIndex, "body", 0, "body index to plot")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "compare direct and barnes-hut stepping time",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScene,
	}
	benchCmd.Flags().IntVar(&steps, "steps", 100, "steps per algorithm")
	benchCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	benchCmd.Flags().Float64Var(&theta, "theta", config.DefaultTheta, "opening angle")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [scene]",
		Short: "sweep a scene across seeds and report drift",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addSimFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", 4, "number of seeds")

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list available scenes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range scene.Names() {
				fmt.Println(name)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list presets for a scene",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for scene %q\n", args[0])
				return
			}
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, benchCmd, ensembleCmd, scenesCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&timeScale, "time-scale", config.DefaultTimeScale, "time scale")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().Float64Var(&g, "g", config.DefaultG, "gravitational constant")
	cmd.Flags().Float64Var(&theta, "theta", config.DefaultTheta, "opening angle")
	cmd.Flags().StringVar(&algorithm, "algorithm", "barnes-hut", "barnes-hut or direct")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file, and flags. Flags that were set
// explicitly win over the file; the file wins over the preset.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Scene = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Scene, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for scene %q (available: %v)",
				preset, cfg.Scene, config.ListPresets(cfg.Scene))
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) > 0 {
			fileCfg.Scene = cfg.Scene
		}
		cfg = fileCfg
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("time-scale") {
		cfg.TimeScale = timeScale
	}
	if cmd.Flags().Changed("g") {
		cfg.Tuning.G = g
	}
	if cmd.Flags().Changed("theta") {
		cfg.Tuning.Theta = theta
	}
	if cmd.Flags().Changed("algorithm") {
		cfg.Algorithm = algorithm
	}
	if cfg.Seed == 0 || cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildSolver maps the tuning section onto a force solver.
func buildSolver(cfg *config.Config) *gravity.Solver {
	solver := gravity.NewSolver()
	solver.G = cfg.Tuning.G
	solver.Theta = cfg.Tuning.Theta
	solver.Limits = octree.Limits{MaxDepth: cfg.Tuning.MaxDepth, MinSize: cfg.Tuning.MinCellSize}
	solver.UseBarnesHut = cfg.UseBarnesHut()
	return solver
}

func buildBodies(cfg *config.Config) ([]*body.Body, error) {
	bodies, err := scene.Build(cfg.Scene, cfg.Tuning.G, cfg.Seed)
	if err != nil {
		return nil, err
	}
	for _, b := range bodies {
		b.SetTrajectoryCap(cfg.Tuning.TrajectoryCap)
	}
	return bodies, nil
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	bodies, err := buildBodies(cfg)
	if err != nil {
		return err
	}

	simulator := sim.New(bodies, buildSolver(cfg))
	simulator.AddMetric(metrics.NewEnergyDrift(cfg.Tuning.G))
	simulator.AddMetric(metrics.NewTotalMomentum())
	simulator.AddMetric(metrics.NewAngularMomentum())

	runCfg := sim.RunConfig{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		State:         sim.RunState{TimeScale: cfg.TimeScale, UseBarnesHut: cfg.UseBarnesHut()},
		ValidateState: true,
	}

	start := time.Now()
	result, err := simulator.Run(context.Background(), runCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Scene, cfg.Dt, cfg.Duration, cfg.Seed, cfg.Algorithm, result)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("scene: %s (%d bodies, seed %d)\n", cfg.Scene, len(bodies), cfg.Seed)
	fmt.Printf("algorithm: %s\n", cfg.Algorithm)
	fmt.Printf("steps: %d in %s\n", result.StepsTaken, elapsed.Round(time.Millisecond))
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	for name, value := range result.Metrics {
		fmt.Printf("%s: %.6g\n", name, value)
	}
	for _, simErr := range result.Errors {
		fmt.Printf("warning: %v\n", simErr)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	newSim := func() *sim.Simulator {
		bodies, buildErr := buildBodies(cfg)
		if buildErr != nil {
			return sim.New(nil, buildSolver(cfg))
		}
		return sim.New(bodies, buildSolver(cfg))
	}

	// Validate the scene once before entering the view.
	bodies, err := buildBodies(cfg)
	if err != nil {
		return err
	}

	worldRadius := extent
	if worldRadius <= 0 {
		worldRadius = buildSolver(cfg).ComputeBounds(bodies).Diagonal() / 2
	}

	state := sim.RunState{TimeScale: cfg.TimeScale, UseBarnesHut: cfg.UseBarnesHut()}
	model := viz.NewModel(newSim, cfg.Scene, cfg.Dt, worldRadius, state)

	p := tea.NewProgram(model)
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	stored, err := st.List()
	if err != nil {
		return err
	}

	if len(stored) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tBODIES\tDURATION\tDT\tALGO")
	for _, run := range stored {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%.4fs\t%s\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Duration,
			run.Dt,
			run.Algorithm,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	positions, _, err := st.LoadPositions(runID)
	if err != nil {
		return err
	}
	if len(positions) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if bodyIndex < 0 || bodyIndex >= meta.Bodies {
		return fmt.Errorf("body index %d out of range (run has %d bodies)", bodyIndex, meta.Bodies)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(positions))

	radius := viz.RadiusSeries(positions, bodyIndex)
	fmt.Println(viz.RenderSeries(radius, fmt.Sprintf("body %d: distance from origin", bodyIndex), 80, 10))
	fmt.Println()

	captions := [3]string{"x", "y", "z"}
	for coord := 0; coord < 3; coord++ {
		series := viz.CoordinateSeries(positions, bodyIndex, coord)
		fmt.Println(viz.RenderSeries(series, fmt.Sprintf("body %d: %s", bodyIndex, captions[coord]), 80, 6))
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	positions, times, err := st.LoadPositions(runID)
	if err != nil {
		return err
	}

	data := storage.ExportData{
		Scene:     meta.Scene,
		Algorithm: meta.Algorithm,
		Dt:        meta.Dt,
		Duration:  meta.Duration,
		Steps:     len(times),
		Times:     times,
		Positions: make([][][3]float64, len(positions)),
		Metrics:   meta.Metrics,
	}
	for i, row := range positions {
		frame := make([][3]float64, len(row)/3)
		for j := range frame {
			frame[j] = [3]float64{row[j*3], row[j*3+1], row[j*3+2]}
		}
		data.Positions[i] = frame
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func benchScene(cmd *cobra.Command, args []string) error {
	sceneName := config.DefaultScene
	if len(args) > 0 {
		sceneName = args[0]
	}

	run := func(useBarnesHut bool) (time.Duration, error) {
		bodies, err := scene.Build(sceneName, config.DefaultG, seed)
		if err != nil {
			return 0, err
		}
		solver := gravity.NewSolver()
		solver.Theta = theta
		solver.UseBarnesHut = useBarnesHut

		simulator := sim.New(bodies, solver)
		state := sim.DefaultRunState()
		state.UseBarnesHut = useBarnesHut

		start := time.Now()
		for i := 0; i < steps; i++ {
			simulator.Step(config.DefaultDt, state)
		}
		return time.Since(start), nil
	}

	direct, err := run(false)
	if err != nil {
		return err
	}
	barnesHut, err := run(true)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tSTEPS\tTOTAL\tPER STEP")
	fmt.Fprintf(w, "direct\t%d\t%s\t%s\n", steps, direct.Round(time.Microsecond), (direct / time.Duration(steps)).Round(time.Microsecond))
	fmt.Fprintf(w, "barnes-hut\t%d\t%s\t%s\n", steps, barnesHut.Round(time.Microsecond), (barnesHut / time.Duration(steps)).Round(time.Microsecond))
	if err := w.Flush(); err != nil {
		return err
	}

	if barnesHut > 0 {
		fmt.Printf("\nspeedup: %.2fx\n", float64(direct)/float64(barnesHut))
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	build := func(s int64) []*body.Body {
		bodies, buildErr := scene.Build(cfg.Scene, cfg.Tuning.G, s)
		if buildErr != nil {
			return nil
		}
		return bodies
	}

	// Fail fast on a bad scene name before spawning workers.
	if _, err := scene.Build(cfg.Scene, cfg.Tuning.G, cfg.Seed); err != nil {
		return err
	}

	ensemble := sim.NewEnsemble(build, func() *gravity.Solver { return buildSolver(cfg) }, runs, cfg.Seed)
	ensemble.AddMetric(func() sim.Metric { return metrics.NewEnergyDrift(cfg.Tuning.G) })

	runCfg := sim.RunConfig{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		State:         sim.RunState{TimeScale: cfg.TimeScale, UseBarnesHut: cfg.UseBarnesHut()},
		ValidateState: true,
	}

	results, err := ensemble.Run(context.Background(), runCfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSTEPS\tENERGY DRIFT")
	for i, result := range results {
		fmt.Fprintf(w, "%d\t%d\t%.3e\n", cfg.Seed+int64(i), result.StepsTaken, result.Metrics["energy_drift"])
	}
	return w.Flush()
}
