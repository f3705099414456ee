package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/framekit/internal/analysis"
	"github.com/san-kum/framekit/internal/automation"
	"github.com/san-kum/framekit/internal/composition"
	"github.com/san-kum/framekit/internal/config"
	"github.com/san-kum/framekit/internal/easing"
	"github.com/san-kum/framekit/internal/export"
	"github.com/san-kum/framekit/internal/optim"
	"github.com/san-kum/framekit/internal/render"
	"github.com/san-kum/framekit/internal/spring"
	"github.com/san-kum/framekit/internal/storage"
	"github.com/san-kum/framekit/internal/viz"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8b5cf6"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
)

func listCompositions(cmd *cobra.Command, args []string) error {
	manifest := registry.Manifest()
	byID := make(map[string]composition.Entry, len(manifest))
	for _, e := range manifest {
		byID[e.ID] = e
	}
	groups := manifest.Folders()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, headerStyle.Render("ID")+"\tFRAMES\tFPS\tSIZE\tSECONDS")
	done := make(map[string]bool, len(groups))
	for _, e := range manifest {
		if done[e.Folder] {
			continue
		}
		done[e.Folder] = true
		if e.Folder != "" {
			fmt.Fprintln(w, dimStyle.Render(e.Folder+"/")+"\t\t\t\t")
		}
		for _, id := range groups[e.Folder] {
			c := byID[id]
			name := c.ID
			if c.Folder != "" {
				name = "  " + name
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%dx%d\t%.1f\n",
				name, c.DurationFrames, c.FPS, c.Width, c.Height,
				float64(c.DurationFrames)/float64(c.FPS))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println(dimStyle.Render(fmt.Sprintf("%d compositions, %d frames", len(manifest), manifest.TotalFrames())))
	return nil
}

func printManifest(cmd *cobra.Command, args []string) error {
	return registry.Manifest().Encode(os.Stdout, format)
}

func checkManifest(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	saved, err := composition.DecodeManifest(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	diffs := registry.Manifest().Diff(saved)
	if len(diffs) == 0 {
		fmt.Println(okStyle.Render("manifest up to date"))
		return nil
	}
	for _, d := range diffs {
		fmt.Println(badStyle.Render(d))
	}
	return fmt.Errorf("%d manifest differences", len(diffs))
}

func describeComposition(cmd *cobra.Command, args []string) error {
	c, err := registry.Resolve(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s  %d frames @ %dfps, %dx%d\n\n", headerStyle.Render(c.ID), c.DurationFrames, c.FPS, c.Width, c.Height)
	fmt.Print(c.Root.Describe())
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := defaultConfigFile
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	logger.Info("wrote config", "path", path)
	return nil
}

func parseFrame(s string) (int, error) {
	frame, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("frame %q: %w", s, err)
	}
	return frame, nil
}

func sampleFrame(cmd *cobra.Command, args []string) error {
	frame, err := parseFrame(args[1])
	if err != nil {
		return err
	}
	fr, err := registry.RenderFrame(args[0], frame)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(fr)
}

// renderContext is cancelled on interrupt.
func renderContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt)
}

func newRenderer(cmd *cobra.Command) *render.Renderer {
	n := cfg.Render.Workers
	if cmd.Flags().Changed("workers") {
		n = workers
	}
	return render.New(registry, n, logger)
}

func renderComposition(cmd *cobra.Command, args []string) error {
	ctx, cancel := renderContext(cmd)
	defer cancel()

	r := newRenderer(cmd)
	res, err := r.Range(ctx, args[0], render.Options{
		From:    fromFrame,
		To:      toFrame,
		Shuffle: shuffle,
		Seed:    seed,
		Progress: func(done, total int) {
			if done == total || done%100 == 0 {
				logger.Debug("progress", "done", done, "total", total)
			}
		},
	})
	if err != nil {
		return err
	}

	st := storage.New(cfg.Render.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(res)
	if err != nil {
		return err
	}
	logger.Info("run saved", "id", runID, "dir", cfg.Render.DataDir)

	if outFile != "" {
		c := res.Composition
		return storage.ExportJSON(outFile, storage.ExportData{
			Composition: c.ID,
			FPS:         c.FPS,
			Width:       c.Width,
			Height:      c.Height,
			Checksum:    res.Checksum,
			Frames:      res.Frames,
		})
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("frames: %d (%d workers, %.0f frames/s)\n", len(res.Frames), res.Workers, res.FramesPerSecond())
	fmt.Printf("checksum: %s\n", res.Checksum)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.Render.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOMPOSITION\tTIME\tFRAMES\tWORKERS\tFPS\tCHECKSUM")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d-%d\t%d\t%.0f\t%s\n",
			run.ID,
			run.Composition,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.From, run.To,
			run.Workers,
			run.Metrics["fps"],
			shortSum(run.Checksum),
		)
	}
	return w.Flush()
}

func shortSum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID, element, prop := args[0], args[1], args[2]

	st := storage.New(cfg.Render.DataDir)
	meta, err := st.Resolve(runID)
	if err != nil {
		return err
	}
	framesIdx, values, err := st.LoadTrack(meta.ID, element, prop)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return noSamplesError(st, meta.ID, element, prop)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("composition: %s\n", meta.Composition)
	fmt.Printf("samples: %d (frames %d-%d)\n\n", len(values), framesIdx[0], framesIdx[len(framesIdx)-1])

	fmt.Println(asciigraph.Plot(values,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s.%s vs frame", element, prop)),
	))
	return nil
}

// noSamplesError lists what the run did record for the element, or the
// recorded elements when the element itself is unknown.
func noSamplesError(st *storage.Store, runID, element, prop string) error {
	props, err := st.Properties(runID)
	if err != nil {
		return err
	}
	if have, ok := props[element]; ok {
		return fmt.Errorf("no samples of %s.%s in run %s (have %s)", element, prop, runID, strings.Join(have, ", "))
	}
	elements := make([]string, 0, len(props))
	for el := range props {
		elements = append(elements, el)
	}
	slices.Sort(elements)
	return fmt.Errorf("no element %s in run %s (have %s)", element, runID, strings.Join(elements, ", "))
}

// springConfig resolves --preset against config springs and built-in
// presets, then applies explicit overrides.
func springConfig(cmd *cobra.Command) (spring.Config, error) {
	sc, ok := cfg.Spring(springPreset)
	if !ok {
		return spring.Config{}, fmt.Errorf("unknown spring preset %q (have %s)", springPreset, strings.Join(cfg.SpringNames(), ", "))
	}
	if cmd.Flags().Changed("mass") {
		sc.Mass = mass
	}
	if cmd.Flags().Changed("stiffness") {
		sc.Stiffness = stiffness
	}
	if cmd.Flags().Changed("damping") {
		sc.Damping = damping
	}
	return sc, sc.Validate()
}

func springSamples(cmd *cobra.Command) (spring.Config, []float64, error) {
	sc, err := springConfig(cmd)
	if err != nil {
		return sc, nil, err
	}
	s, err := spring.New(fps, sc)
	if err != nil {
		return sc, nil, err
	}
	return sc, s.Sample(0, frames), nil
}

func plotSpring(cmd *cobra.Command, args []string) error {
	sc, samples, err := springSamples(cmd)
	if err != nil {
		return err
	}
	fmt.Println(asciigraph.Plot(samples,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("spring m=%g k=%g c=%g @ %dfps", sc.Mass, sc.Stiffness, sc.Damping, fps)),
	))
	return nil
}

func plotCurve(cmd *cobra.Command, args []string) error {
	from, samples, err := cfg.SampleCurve(args[0], curvePad)
	if err != nil {
		return err
	}
	fmt.Println(asciigraph.Plot(samples,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("curve %s, frames %d..%d", args[0], from, from+len(samples)-1)),
	))
	return nil
}

func analyzeSpring(cmd *cobra.Command, args []string) error {
	sc, err := springConfig(cmd)
	if err != nil {
		return err
	}
	rep, err := analysis.AnalyzeSpring(fps, sc, frames)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "regime\t%s\n", rep.Regime)
	fmt.Fprintf(w, "damping ratio\t%.4f\n", rep.Zeta)
	fmt.Fprintf(w, "natural frequency\t%.4f rad/s\n", rep.Omega)
	if rep.AnalyticHz > 0 {
		fmt.Fprintf(w, "damped frequency\t%.4f Hz (measured %.4f Hz)\n", rep.AnalyticHz, rep.MeasuredHz)
	}
	fmt.Fprintf(w, "settle frame\t%s (measured %s)\n", frameOrDash(rep.AnalyticSettle), frameOrDash(rep.MeasuredSettle))
	fmt.Fprintf(w, "overshoot\t%.2f%%\n", rep.Overshoot*100)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(dimStyle.Render("phase portrait (value vs velocity)"))
	fmt.Println(analysis.NewPortrait(rep.Samples).ASCII(60, 16))

	if rep.MeasuredSettle < 0 {
		fmt.Println(badStyle.Render("not settled within the sampled frames; increase --frames"))
	}
	return nil
}

func frameOrDash(n int) string {
	if n < 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

func writeOut(path, content string) error {
	if path == "-" {
		_, err := fmt.Println(content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return err
	}
	logger.Info("wrote svg", "path", path)
	return nil
}

func exportFrameSVG(cmd *cobra.Command, args []string) error {
	frame, err := parseFrame(args[1])
	if err != nil {
		return err
	}
	fr, err := registry.RenderFrame(args[0], frame)
	if err != nil {
		return err
	}
	return writeOut(svgOut, export.FrameToSVG(fr, scale))
}

func exportSpringSVG(cmd *cobra.Command, args []string) error {
	_, samples, err := springSamples(cmd)
	if err != nil {
		return err
	}
	return writeOut(svgOut, export.CurveToSVG(samples, 640, 360, "#8b5cf6"))
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMASS\tSTIFFNESS\tDAMPING\tRATIO\tREGIME\tSETTLE@30\tSOURCE")
	for _, name := range cfg.SpringNames() {
		sc, _ := cfg.Spring(name)
		source := "preset"
		if _, ok := cfg.Springs[name]; ok {
			source = "config"
		}
		settle := "-"
		if n, err := spring.Measure(30, sc); err == nil {
			settle = strconv.Itoa(n)
		}
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%.3f\t%s\t%s\t%s\n",
			name, sc.Mass, sc.Stiffness, sc.Damping, sc.DampingRatio(), spring.Regime(sc.DampingRatio()), settle, source)
	}
	return w.Flush()
}

func listEasings(cmd *cobra.Command, args []string) {
	for _, name := range easing.Names() {
		fmt.Println(name)
	}
	if names := cfg.CurveNames(); len(names) > 0 {
		fmt.Println()
		fmt.Println(dimStyle.Render("curves from config (framekit plot curve <name>)"))
		for _, name := range names {
			fmt.Println(name)
		}
	}
}

func runPreview(cmd *cobra.Command, args []string) error {
	c, err := registry.Resolve(args[0])
	if err != nil {
		return err
	}
	name := cfg.Preview.Theme
	if cmd.Flags().Changed("theme") {
		name = theme
	}
	tick := time.Duration(cfg.Preview.TickMS) * time.Millisecond
	p := tea.NewProgram(viz.NewPreview(c, viz.GetTheme(name), tick), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func benchComposition(cmd *cobra.Command, args []string) error {
	id := args[0]
	ctx, cancel := renderContext(cmd)
	defer cancel()

	modes := []struct {
		name    string
		workers int
		shuffle bool
	}{
		{"sequential", 1, false},
		{"parallel", 0, false},
		{"shuffled", 0, true},
	}

	r := render.New(registry, cfg.Render.Workers, nil)
	fmt.Printf("benchmarking %s (%d workers)\n\n", id, r.Workers())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tRUN\tFRAMES\tTIME\tFRAMES/SEC\tCHECKSUM")

	var reference string
	consistent := true
	for _, m := range modes {
		for i := 0; i < benchRuns; i++ {
			res, err := r.Range(ctx, id, render.Options{Workers: m.workers, Shuffle: m.shuffle, Seed: int64(i + 1)})
			if err != nil {
				return err
			}
			if reference == "" {
				reference = res.Checksum
			}
			if res.Checksum != reference {
				consistent = false
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\t%s\n",
				m.name, i+1, len(res.Frames), res.Elapsed.Round(time.Microsecond), res.FramesPerSecond(), shortSum(res.Checksum))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	if !consistent {
		fmt.Println(badStyle.Render("checksums differ between runs"))
		return fmt.Errorf("%s: non-deterministic evaluation", id)
	}
	fmt.Println(okStyle.Render("all runs produced identical frames"))
	return nil
}

func tuneSpring(cmd *cobra.Command, args []string) error {
	fit, err := optim.TuneSpring(cmd.Context(), optim.SpringTarget{
		FPS:         fps,
		SettleFrame: targetSettle,
		Overshoot:   targetOvershoot,
		Mass:        tuneMass,
	})
	if err != nil {
		return err
	}

	sc := fit.Config
	fmt.Printf("mass: %g\nstiffness: %.2f\ndamping: %.2f\n", sc.Mass, sc.Stiffness, sc.Damping)
	fmt.Println(dimStyle.Render(fmt.Sprintf("settles at frame %d, overshoot %.1f%% (cost %.2f)",
		fit.SettleFrame, fit.Overshoot*100, fit.Cost)))
	return nil
}

func sweepSpring(cmd *cobra.Command, args []string) error {
	base, err := springConfig(cmd)
	if err != nil {
		return err
	}
	results, err := automation.RunSweep(cmd.Context(), &automation.SpringSweep{
		Base:      base,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		FPS:       fps,
		Frames:    frames,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tRATIO\tREGIME\tSETTLE\tOVERSHOOT\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%.3f\t%s\t%s\t%.1f%%\n",
			r.ParamValue, r.Zeta, r.Regime, frameOrDash(r.SettleFrame), r.Overshoot*100)
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	batch, err := automation.LoadBatch(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := renderContext(cmd)
	defer cancel()

	st := storage.New(cfg.Render.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	results, err := automation.RunBatch(ctx, batch, render.New(registry, cfg.Render.Workers, logger), st, logger)
	for _, r := range results {
		fmt.Printf("%s\t%d frames\t%s\n", r.RunID, r.Frames, shortSum(r.Checksum))
	}
	return err
}
