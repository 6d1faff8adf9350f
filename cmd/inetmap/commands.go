package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/inetmap/internal/config"
	"github.com/san-kum/inetmap/internal/export"
	"github.com/san-kum/inetmap/internal/player"
	"github.com/san-kum/inetmap/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, ds, sc, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer zap.L().Sync()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	opts := cfg.PlayerOptions()
	scOpts, _ := cfg.ScaleOptions()
	events := make(chan player.Event)
	model := viz.NewModel(ctx, ds.Store, events, viz.Options{
		Theme:       theme,
		Series:      showSeries,
		NoData:      scOpts.NoData,
		NoDataLabel: opts.Text.NoData,
	})
	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	p := player.New(ds.Store, ds.Years(), sc, viz.NewSurface(prog.Send), opts)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := prog.Run()
		return err
	})
	g.Go(func() error {
		return p.Run(gctx, player.SystemClock{}, events)
	})
	go func() {
		<-ctx.Done()
		prog.Quit()
	}()
	return g.Wait()
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, ds, sc, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer zap.L().Sync()
	log := zap.L().With(zap.String("component", "render"))

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	rec := export.NewRecorder()
	p := player.New(ds.Store, ds.Years(), sc, rec, cfg.PlayerOptions())
	r := export.NewRenderer(ds.Store, width, height)

	single := cmd.Flags().Changed("year") || hover != ""
	if !single {
		count := 0
		err := export.AutoPlay(p, rec, func(y int, f export.Frame) error {
			count++
			return r.WriteFile(filepath.Join(outDir, fmt.Sprintf("frame-%d.svg", y)), f)
		})
		if err != nil {
			return err
		}
		log.Info("frames written", zap.Int("frames", count), zap.String("dir", outDir))
		fmt.Printf("wrote %d frames to %s\n", count, outDir)
		return nil
	}

	if err := export.AutoPlay(p, rec, func(int, export.Frame) error { return nil }); err != nil {
		return err
	}
	if cmd.Flags().Changed("year") {
		if err := p.Handle(player.YearSelected{Year: year}); err != nil {
			return err
		}
	}
	if hover != "" {
		name := ds.Store.Names().Normalize(hover)
		e, ok := ds.Store.Lookup(name)
		if !ok {
			return fmt.Errorf("%w: %q", player.ErrUnknownEntity, hover)
		}
		x, y := 0, 0
		if b := e.Bounds(); b != nil {
			px, py := r.Projection().Project((b.Min(0)+b.Max(0))/2, (b.Min(1)+b.Max(1))/2)
			x, y = int(px), int(py)
		}
		if err := p.Handle(player.HoverStart{Name: name, X: x, Y: y}); err != nil {
			return err
		}
	}

	shown, _ := p.CurrentYear()
	path := filepath.Join(outDir, fmt.Sprintf("map-%d.svg", shown))
	if err := r.WriteFile(path, rec.Snapshot()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func runSeries(cmd *cobra.Command, args []string) error {
	_, ds, _, err := setup(cmd, false)
	if err != nil {
		return err
	}
	name := ds.Store.Names().Normalize(args[0])
	e, ok := ds.Store.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", player.ErrUnknownEntity, args[0])
	}

	years, values := e.Years(), e.Series()
	switch len(values) {
	case 0:
		fmt.Printf("%s: no data\n", name)
		return nil
	case 1:
		fmt.Printf("%s %d: %s\n", name, years[0], player.FormatValue(values[0]))
		return nil
	}
	graph := asciigraph.Plot(values,
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Precision(1),
		asciigraph.Caption(fmt.Sprintf("%s, %d-%d (per 100 people)", name, years[0], years[len(years)-1])))
	fmt.Println(graph)
	return nil
}

func runYears(cmd *cobra.Command, args []string) error {
	_, ds, _, err := setup(cmd, false)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "YEAR\tCOUNTRIES\tMAX")
	for _, y := range ds.Years() {
		n, max := 0, 0.0
		for _, e := range ds.Store.Entities() {
			if v, ok := e.Value(y); ok {
				n++
				if v > max {
					max = v
				}
			}
		}
		fmt.Fprintf(w, "%d\t%d\t%s\n", y, n, player.FormatValue(max))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(ds.Report.Unmatched) > 0 {
		fmt.Printf("\n%d countries without geometry: %v\n", len(ds.Report.Unmatched), ds.Report.Unmatched)
	}
	return nil
}

func runLegend(cmd *cobra.Command, args []string) error {
	cfg, _, sc, err := setup(cmd, false)
	if err != nil {
		return err
	}
	domain := cfg.PlayerOptions().LegendDomain
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tCOLOR\tPOSITION")
	for _, s := range sc.Legend(domain) {
		fmt.Fprintf(w, "%s\t%s\t%.3f\n", strconv.FormatFloat(s.Value, 'f', -1, 64), s.Color.Hex(), sc.Position(s.Value))
	}
	fmt.Fprintf(w, "%s\t%s\t-\n", cfg.PlayerOptions().Text.NoData, sc.NoData().Hex())
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nscale max %s, midpoint %s\n", player.FormatValue(sc.Max()), player.FormatValue(sc.Midpoint()))

	if legendSVG != "" {
		if err := os.WriteFile(legendSVG, []byte(export.LegendSVG(sc, domain)), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", legendSVG)
	}
	return nil
}

func runPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tINTRO\tTICK\tFILL\tHOVER IN\tHOVER OUT")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", name, p.IntroDelay, p.Tick, p.FillTransition, p.HoverIn, p.HoverOut)
	}
	return w.Flush()
}

func runExportJSON(cmd *cobra.Command, args []string) error {
	_, ds, _, err := setup(cmd, false)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return export.WriteJSON(os.Stdout, ds)
	}
	if err := export.ExportJSON(args[0], ds); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", args[0])
	return nil
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	path := "inetmap.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
