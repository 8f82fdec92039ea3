package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mstram-flight/Huginn/internal/analysis"
	"github.com/mstram-flight/Huginn/internal/autopilot"
	"github.com/mstram-flight/Huginn/internal/config"
	"github.com/mstram-flight/Huginn/internal/export"
	"github.com/mstram-flight/Huginn/internal/fdm"
	"github.com/mstram-flight/Huginn/internal/optim"
	"github.com/mstram-flight/Huginn/internal/recorder"
	"github.com/mstram-flight/Huginn/internal/sensors"
	"github.com/mstram-flight/Huginn/internal/sim"
	"github.com/mstram-flight/Huginn/internal/tui"
)

var version = "0.2.0"

var (
	dataDir    string
	fdmData    string
	configFile string
	dt         float64
	duration   float64
	latitude   float64
	longitude  float64
	altitude   float64
	airspeed   float64
	heading    float64
	trimFlag   string
	paused     bool
	sampleRate float64
	seed       int64
	// Autopilot holds
	autopilotOn  bool
	holdAltitude float64
	holdHeading  float64
	holdAirspeed float64
	// Ensemble shape
	ensembleRuns int
	spread       float64
	// Gain sweep
	kpGrid    []float64
	kdGrid    []float64
	climbStep float64
	// SVG export
	svgOut    string
	svgWidth  int
	svgHeight int
	// Logging
	logLevel string
	logFile  string
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	crashStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "huginn",
		Short: "flight dynamics simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultOutputDir, "run data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "log level: trace, debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to a rotating file instead of stderr")

	rootCmd.PersistentPreRun = func(c *cobra.Command, args []string) {
		setupLogger(logLevel, logFile)
	}

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "fly a scenario and record the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFlight,
	}
	addFlightFlags(runCmd)
	runCmd.Flags().Float64Var(&sampleRate, "sample-rate", config.DefaultSampleRate, "recorder sample rate in Hz")
	runCmd.Flags().BoolVar(&autopilotOn, "autopilot", false, "engage the autopilot holding the trimmed state")
	runCmd.Flags().Float64Var(&holdAltitude, "hold-altitude", 0, "autopilot altitude target in m, implies --autopilot")
	runCmd.Flags().Float64Var(&holdHeading, "hold-heading", 0, "autopilot heading target in deg, implies --autopilot")
	runCmd.Flags().Float64Var(&holdAirspeed, "hold-airspeed", 0, "autopilot airspeed target in m/s, implies --autopilot")

	flyCmd := &cobra.Command{
		Use:   "fly [scenario]",
		Short: "fly a scenario on the interactive deck",
		Args:  cobra.MaximumNArgs(1),
		RunE:  flyInteractive,
	}
	addFlightFlags(flyCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "pick the dominant oscillations out of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the altitude profile and ground track as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "output", ".", "directory for the SVG files")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "drawing width in pixels")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "drawing height in pixels")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [scenario]",
		Short: "fly independent perturbed flights in parallel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addFlightFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&ensembleRuns, "runs", 8, "number of flights")
	ensembleCmd.Flags().Float64Var(&spread, "spread", 0.1, "initial condition spread as a fraction")
	ensembleCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "perturbation seed")

	sensorsCmd := &cobra.Command{
		Use:   "sensors [scenario]",
		Short: "fly a scenario and show the sensor panel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showSensors,
	}
	addFlightFlags(sensorsCmd)
	sensorsCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "sensor noise seed")

	tuneCmd := &cobra.Command{
		Use:   "tune [scenario]",
		Short: "sweep the altitude hold gains over a commanded climb",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tuneAutopilot,
	}
	addFlightFlags(tuneCmd)
	tuneCmd.Flags().Float64SliceVar(&kpGrid, "kp", []float64{0.01, 0.02, 0.04}, "proportional gain candidates")
	tuneCmd.Flags().Float64SliceVar(&kdGrid, "kd", []float64{0.05, 0.09, 0.15}, "derivative gain candidates")
	tuneCmd.Flags().Float64Var(&climbStep, "climb", 40.0, "commanded climb in meters")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the simulation loop",
		RunE:  benchFlight,
	}

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list available scenarios",
		RunE:  listScenarios,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("huginn %s\n", version)
		},
	}

	rootCmd.AddCommand(runCmd, flyCmd, listCmd, plotCmd, analyzeCmd, exportCmd,
		exportJSONCmd, exportCSVCmd, exportSVGCmd, ensembleCmd, sensorsCmd,
		tuneCmd, benchCmd, scenariosCmd, versionCmd)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogger(level, file string) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if file != "" {
		log.Logger = log.Output(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    32, // MB
			MaxBackups: 1,
		})
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	switch level {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// addFlightFlags registers the flags shared by every command that builds
// a simulator.
func addFlightFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", 30.0, "simulation seconds to fly")
	cmd.Flags().Float64Var(&latitude, "latitude", config.DefaultLatitude, "initial latitude")
	cmd.Flags().Float64Var(&longitude, "longitude", config.DefaultLongitude, "initial longitude")
	cmd.Flags().Float64Var(&altitude, "altitude", config.DefaultAltitude, "initial altitude (m)")
	cmd.Flags().Float64Var(&airspeed, "airspeed", config.DefaultAirspeed, "initial airspeed (m/s)")
	cmd.Flags().Float64Var(&heading, "heading", config.DefaultHeading, "initial heading (deg)")
	cmd.Flags().StringVar(&trimFlag, "trim", config.DefaultTrimMode, "trim mode: longitudinal, full, ground")
	cmd.Flags().BoolVar(&paused, "paused", false, "start the simulation paused")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&fdmData, "fdm-data", "", "flight dynamics model data path")
}

// resolveScenario settles the flight parameters from the scenario
// preset, then the config file, with explicitly set flags winning over
// both.
func resolveScenario(cmd *cobra.Command, args []string) (string, error) {
	scenario := "cruise"
	if len(args) > 0 {
		scenario = args[0]
	}

	cfg := config.GetPreset(scenario)
	if cfg == nil {
		return "", fmt.Errorf("unknown scenario: %s (available: %v)", scenario, config.ListPresets())
	}
	applyConfig(cmd, cfg)

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return "", fmt.Errorf("failed to load config: %w", err)
		}
		applyConfig(cmd, cfg)
	}

	return scenario, nil
}

func applyConfig(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("dt") {
		dt = cfg.Dt
	}
	if !cmd.Flags().Changed("trim") {
		trimFlag = cfg.TrimMode
	}
	if !cmd.Flags().Changed("paused") {
		paused = cfg.StartPaused
	}
	if !cmd.Flags().Changed("latitude") {
		latitude = cfg.Initial.Latitude
	}
	if !cmd.Flags().Changed("longitude") {
		longitude = cfg.Initial.Longitude
	}
	if !cmd.Flags().Changed("altitude") {
		altitude = cfg.Initial.Altitude
	}
	if !cmd.Flags().Changed("airspeed") {
		airspeed = cfg.Initial.Airspeed
	}
	if !cmd.Flags().Changed("heading") {
		heading = cfg.Initial.Heading
	}
	if cfg.DataPath != "" && !cmd.Flags().Changed("fdm-data") {
		fdmData = cfg.DataPath
	}
	if cfg.Output.Dir != "" && !cmd.Flags().Changed("data") {
		dataDir = cfg.Output.Dir
	}
	if cfg.Output.SampleRate > 0 && cmd.Flags().Lookup("sample-rate") != nil && !cmd.Flags().Changed("sample-rate") {
		sampleRate = cfg.Output.SampleRate
	}
}

func buildSimulator() (*sim.Simulator, fdm.TrimMode, error) {
	mode, err := fdm.ParseTrimMode(trimFlag)
	if err != nil {
		return nil, mode, err
	}

	builder := sim.NewBuilder(fdmData)
	builder.Dt = dt
	builder.Latitude = latitude
	builder.Longitude = longitude
	builder.Altitude = altitude
	builder.Airspeed = airspeed
	builder.Heading = heading
	builder.TrimMode = mode
	builder.StartPaused = paused

	s, err := builder.CreateSimulator()
	return s, mode, err
}

// engageAutopilot wires the hold loops when asked for. A hold target
// flag alone is enough to ask, --autopilot holds the trimmed state.
func engageAutopilot(cmd *cobra.Command, s *sim.Simulator) (*autopilot.Autopilot, error) {
	wanted := autopilotOn ||
		cmd.Flags().Changed("hold-altitude") ||
		cmd.Flags().Changed("hold-heading") ||
		cmd.Flags().Changed("hold-airspeed")
	if !wanted {
		return nil, nil
	}

	flight, ok := s.Model().(autopilot.Flight)
	if !ok {
		return nil, fmt.Errorf("flight dynamics model does not expose the flight state")
	}

	ap := autopilot.New(flight, s.Aircraft())
	ap.Engage()
	if cmd.Flags().Changed("hold-altitude") {
		ap.SetAltitude(holdAltitude)
	}
	if cmd.Flags().Changed("hold-heading") {
		ap.SetHeading(holdHeading)
	}
	if cmd.Flags().Changed("hold-airspeed") {
		ap.SetAirspeed(holdAirspeed)
	}
	return ap, nil
}

func runFlight(cmd *cobra.Command, args []string) error {
	scenario, err := resolveScenario(cmd, args)
	if err != nil {
		return err
	}

	s, mode, err := buildSimulator()
	if err != nil {
		return err
	}

	st := recorder.NewStore(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	flight, ok := s.Model().(recorder.Flight)
	if !ok {
		return fmt.Errorf("flight dynamics model does not expose the recorded state")
	}
	rec := recorder.New(flight, s.Aircraft(), sampleRate)
	rec.Observe()

	ap, err := engageAutopilot(cmd, s)
	if err != nil {
		return err
	}

	fmt.Printf("flying %s for %.1fs...\n", scenario, duration)
	if ap != nil {
		alt, hdg, spd := ap.Targets()
		fmt.Printf("autopilot: altitude %.0fm heading %.0f airspeed %.0fm/s\n", alt, hdg, spd)
	}
	start := time.Now()

	frames := 0
	end := s.SimulationTime() + duration
	for s.SimulationTime() <= end && !s.Crashed() {
		if ap != nil {
			s.SetAircraftControls(ap.Update())
		}
		if err := s.Step(); err != nil {
			return err
		}
		frames++
		rec.Observe()
	}

	elapsed := time.Since(start)

	runID, err := st.Save(scenario, dt, mode.String(), s.Crashed(), rec)
	if err != nil {
		return err
	}

	status := okStyle.Render("completed")
	if s.Crashed() {
		status = crashStyle.Render("crashed")
	}

	fmt.Printf("\n%s in %v\n", status, elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", frames)
	fmt.Printf("flown: %.1fs\n", s.SimulationTime())
	fmt.Printf("samples: %d\n", len(rec.Samples()))

	fmt.Println("\nmetrics:")
	for name, val := range rec.Metrics() {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func flyInteractive(cmd *cobra.Command, args []string) error {
	scenario, err := resolveScenario(cmd, args)
	if err != nil {
		return err
	}

	s, _, err := buildSimulator()
	if err != nil {
		return err
	}

	return tui.Run(s, scenario)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := recorder.NewStore(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tFLOWN\tDT\tTRIM\tSTATE")

	for _, run := range runs {
		state := "ok"
		if run.Crashed {
			state = "crashed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\t%.4fs\t%s\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.TrimMode,
			state,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := recorder.NewStore(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(samples))

	channels := []struct {
		caption string
		value   func(s recorder.Sample) float64
	}{
		{"altitude (m)", func(s recorder.Sample) float64 { return s.Altitude }},
		{"airspeed (m/s)", func(s recorder.Sample) float64 { return s.Airspeed }},
		{"climb rate (m/s)", func(s recorder.Sample) float64 { return s.ClimbRate }},
		{"pitch (deg)", func(s recorder.Sample) float64 { return s.Pitch }},
		{"roll (deg)", func(s recorder.Sample) float64 { return s.Roll }},
		{"heading (deg)", func(s recorder.Sample) float64 { return s.Heading }},
	}

	for _, ch := range channels {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = ch.value(s)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(ch.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := recorder.NewStore(dataDir)
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(samples) < 4 {
		return fmt.Errorf("not enough samples to analyze")
	}
	span := samples[len(samples)-1].Time - samples[0].Time
	if span <= 0 {
		return fmt.Errorf("the run has no time span")
	}
	rate := float64(len(samples)-1) / span

	channels := []struct {
		name  string
		value func(s recorder.Sample) float64
	}{
		{"altitude", func(s recorder.Sample) float64 { return s.Altitude }},
		{"airspeed", func(s recorder.Sample) float64 { return s.Airspeed }},
		{"climb rate", func(s recorder.Sample) float64 { return s.ClimbRate }},
		{"pitch", func(s recorder.Sample) float64 { return s.Pitch }},
		{"roll", func(s recorder.Sample) float64 { return s.Roll }},
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("samples: %d at %.1f Hz\n\n", len(samples), rate)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHANNEL\tDOMINANT\tPERIOD\tPOWER")

	for _, ch := range channels {
		series := make([]float64, len(samples))
		for i, s := range samples {
			series[i] = ch.value(s)
		}

		sp := analysis.Analyze(series, rate)
		if sp == nil {
			continue
		}

		freq, power := sp.Dominant()
		period := "-"
		if freq > 0 {
			period = fmt.Sprintf("%.1fs", 1.0/freq)
		}
		fmt.Fprintf(w, "%s\t%.3f Hz\t%s\t%.2f\n", ch.name, freq, period, power)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := recorder.NewStore(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := recorder.NewStore(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	return recorder.ExportJSONStdout(meta, samples)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := recorder.NewStore(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(recorder.SampleHeader); err != nil {
		return err
	}
	for _, s := range samples {
		if err := w.Write(recorder.SampleRow(s)); err != nil {
			return err
		}
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := recorder.NewStore(dataDir)
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	profile := export.ProfileSVG(samples, svgWidth, svgHeight)
	track := export.GroundTrackSVG(samples, svgWidth, svgHeight)
	if profile == "" || track == "" {
		return fmt.Errorf("not enough samples to draw")
	}

	if err := os.MkdirAll(svgOut, 0755); err != nil {
		return err
	}

	for name, doc := range map[string]string{
		runID + "_profile.svg": profile,
		runID + "_track.svg":   track,
	} {
		path := filepath.Join(svgOut, name)
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}

	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	scenario, err := resolveScenario(cmd, args)
	if err != nil {
		return err
	}

	mode, err := fdm.ParseTrimMode(trimFlag)
	if err != nil {
		return err
	}

	builder := sim.NewBuilder(fdmData)
	builder.Dt = dt
	builder.Latitude = latitude
	builder.Longitude = longitude
	builder.Altitude = altitude
	builder.Airspeed = airspeed
	builder.Heading = heading
	builder.TrimMode = mode
	builder.StartPaused = paused

	ens := sim.NewEnsemble(builder, ensembleRuns)
	ens.Vary = func(idx int, b *sim.Builder) {
		rng := rand.New(rand.NewSource(seed + int64(idx)))
		b.Altitude *= 1 + spread*(2*rng.Float64()-1)
		b.Airspeed *= 1 + spread*(2*rng.Float64()-1)
	}

	fmt.Printf("flying %d %s flights for %.1fs each...\n", ensembleRuns, scenario, duration)
	start := time.Now()

	results := ens.Run(cmd.Context(), duration)

	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FLIGHT\tFLOWN\tSTATE\tERROR")

	completed := 0
	for _, r := range results {
		state := "ok"
		switch {
		case r.Crashed:
			state = "crashed"
		case r.Err != nil:
			state = "error"
		default:
			completed++
		}

		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
		}
		fmt.Fprintf(w, "%d\t%.1fs\t%s\t%s\n", r.Index, r.Duration, state, errText)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d/%d flights completed in %v\n", completed, ensembleRuns, elapsed)
	return nil
}

func showSensors(cmd *cobra.Command, args []string) error {
	scenario, err := resolveScenario(cmd, args)
	if err != nil {
		return err
	}

	s, _, err := buildSimulator()
	if err != nil {
		return err
	}

	src, ok := s.Model().(sensors.Source)
	if !ok {
		return fmt.Errorf("flight dynamics model does not expose the sensor state")
	}
	panel := sensors.NewSensors(src, seed)

	end := s.SimulationTime() + duration
	for s.SimulationTime() <= end && !s.Crashed() {
		if err := s.Step(); err != nil {
			return err
		}
	}

	fmt.Printf("sensor panel after %.1fs of %s flight", s.SimulationTime(), scenario)
	if s.Crashed() {
		fmt.Printf(" %s", crashStyle.Render("(crashed)"))
	}
	fmt.Print("\n\n")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SENSOR\tCHANNEL\tMEASURED\tTRUE")

	acc := panel.Accelerometer
	fmt.Fprintf(w, "accelerometer\tx (m/s^2)\t%.4f\t%.4f\n", acc.X(), acc.TrueX())
	fmt.Fprintf(w, "accelerometer\ty (m/s^2)\t%.4f\t%.4f\n", acc.Y(), acc.TrueY())
	fmt.Fprintf(w, "accelerometer\tz (m/s^2)\t%.4f\t%.4f\n", acc.Z(), acc.TrueZ())

	gyro := panel.Gyroscope
	fmt.Fprintf(w, "gyroscope\troll rate (deg/s)\t%.4f\t%.4f\n", gyro.RollRate(), gyro.TrueRollRate())
	fmt.Fprintf(w, "gyroscope\tpitch rate (deg/s)\t%.4f\t%.4f\n", gyro.PitchRate(), gyro.TruePitchRate())
	fmt.Fprintf(w, "gyroscope\tyaw rate (deg/s)\t%.4f\t%.4f\n", gyro.YawRate(), gyro.TrueYawRate())

	fmt.Fprintf(w, "thermometer\ttemperature (K)\t%.2f\t%.2f\n",
		panel.Thermometer.Temperature(), panel.Thermometer.TrueTemperature())
	fmt.Fprintf(w, "static port\tpressure (Pa)\t%.1f\t%.1f\n",
		panel.PressureSensor.Pressure(), panel.PressureSensor.TruePressure())
	fmt.Fprintf(w, "pitot tube\ttotal pressure (Pa)\t%.1f\t%.1f\n",
		panel.PitotTube.Pressure(), panel.PitotTube.TruePressure())

	ins := panel.INS
	fmt.Fprintf(w, "ins\troll (deg)\t%.3f\t%.3f\n", ins.Roll(), ins.TrueRoll())
	fmt.Fprintf(w, "ins\tpitch (deg)\t%.3f\t%.3f\n", ins.Pitch(), ins.TruePitch())
	fmt.Fprintf(w, "ins\theading (deg)\t%.3f\t%.3f\n", ins.Heading(), ins.TrueHeading())
	fmt.Fprintf(w, "ins\tlatitude (deg)\t%.5f\t%.5f\n", ins.Latitude(), ins.TrueLatitude())
	fmt.Fprintf(w, "ins\tlongitude (deg)\t%.5f\t%.5f\n", ins.Longitude(), ins.TrueLongitude())
	fmt.Fprintf(w, "ins\taltitude (m)\t%.2f\t%.2f\n", ins.Altitude(), ins.TrueAltitude())
	fmt.Fprintf(w, "ins\tairspeed (m/s)\t%.2f\t%.2f\n", ins.Airspeed(), ins.TrueAirspeed())

	return w.Flush()
}

// tuneAutopilot flies a commanded climb for every gain pair and keeps
// the pair with the smallest mean altitude error over the settled half
// of the flight.
func tuneAutopilot(cmd *cobra.Command, args []string) error {
	if _, err := resolveScenario(cmd, args); err != nil {
		return err
	}

	fmt.Printf("sweeping %d gain pairs over a %.0fm climb, %.1fs each...\n",
		len(kpGrid)*len(kdGrid), climbStep, duration)

	gs := optim.NewGridSearch([]string{"kp", "kd"}, [][]float64{kpGrid, kdGrid})

	best, cost, err := gs.Search(cmd.Context(),
		func(_ context.Context, params map[string]float64) (float64, error) {
			s, _, err := buildSimulator()
			if err != nil {
				return 0, err
			}

			flight, ok := s.Model().(autopilot.Flight)
			if !ok {
				return 0, fmt.Errorf("flight dynamics model does not expose the flight state")
			}

			ap := autopilot.New(flight, s.Aircraft())
			ap.Altitude.Kp = params["kp"]
			ap.Altitude.Kd = params["kd"]
			ap.Engage()

			target := flight.Altitude() + climbStep
			ap.SetAltitude(target)

			sum, settled := 0.0, 0
			settleAt := s.SimulationTime() + duration/2
			end := s.SimulationTime() + duration
			for s.SimulationTime() <= end && !s.Crashed() {
				s.SetAircraftControls(ap.Update())
				if err := s.Step(); err != nil {
					return 0, err
				}
				if s.SimulationTime() >= settleAt {
					sum += math.Abs(flight.Altitude() - target)
					settled++
				}
			}
			if s.Crashed() {
				return 0, fmt.Errorf("crashed during the climb")
			}
			if settled == 0 {
				return 0, fmt.Errorf("no settled frames")
			}

			e := sum / float64(settled)
			log.Debug().
				Float64("kp", params["kp"]).
				Float64("kd", params["kd"]).
				Float64("error", e).
				Msg("gain pair evaluated")
			return e, nil
		})
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("every gain pair crashed or diverged")
	}

	fmt.Printf("\nbest gains: kp=%.4f kd=%.4f\n", best["kp"], best["kd"])
	fmt.Printf("mean settled error: %s\n", okStyle.Render(fmt.Sprintf("%.3fm", cost)))
	return nil
}

func benchFlight(cmd *cobra.Command, args []string) error {
	durations := []float64{10.0, 30.0, 60.0}
	steps := []float64{0.0041, 0.0083, 0.0166}

	fmt.Println("benchmarking the simulation loop")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tFRAMES\tTIME\tFRAMES/SEC")

	for _, dur := range durations {
		for _, step := range steps {
			builder := sim.NewBuilder("")
			builder.Dt = step

			s, err := builder.CreateSimulator()
			if err != nil {
				return err
			}

			frames := 0
			start := time.Now()
			end := s.SimulationTime() + dur
			for s.SimulationTime() <= end && !s.Crashed() {
				if err := s.Step(); err != nil {
					return err
				}
				frames++
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%.0fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, step, frames, elapsed, float64(frames)/elapsed.Seconds())
		}
	}

	return w.Flush()
}

func listScenarios(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tALTITUDE\tAIRSPEED\tHEADING\tTRIM\tPAUSED")

	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.0fm\t%.0fm/s\t%.0f\t%s\t%v\n",
			name,
			cfg.Initial.Altitude,
			cfg.Initial.Airspeed,
			cfg.Initial.Heading,
			cfg.TrimMode,
			cfg.StartPaused,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(dimStyle.Render("pass a scenario name to run, ensemble or sensors"))
	return nil
}
