package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-centralities/pkg/centrality"
	"github.com/dd0wney/cluso-centralities/pkg/chart"
	"github.com/dd0wney/cluso-centralities/pkg/dataset"
	"github.com/dd0wney/cluso-centralities/pkg/export"
	"github.com/dd0wney/cluso-centralities/pkg/logging"
	"github.com/dd0wney/cluso-centralities/pkg/regression"
	"github.com/dd0wney/cluso-centralities/pkg/viewer"
)

// setup parses a command's flags and builds its App.
func setup(name string, fs *flag.FlagSet, common *commonFlags, args []string, stderr io.Writer, quiet bool) (*App, error) {
	common.register(fs)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg, err := common.loadConfig(fs)
	if err != nil {
		return nil, err
	}
	return newApp(cfg, name, stderr, quiet)
}

func runView(args []string, stdout, stderr io.Writer) (err error) {
	var common commonFlags
	fs := flag.NewFlagSet("view", flag.ContinueOnError)

	app, err := setup("view", fs, &common, args, stderr, true)
	if err != nil {
		return err
	}
	defer closeApp(app, &err)

	ds, err := app.LoadDataset()
	if err != nil {
		return err
	}

	model := viewer.New(viewer.Options{
		Dataset:  ds,
		Viewport: app.Config.Viewport(),
		Logger:   app.Logger,
		Metrics:  app.Metrics,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithOutput(stdout),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	app.Logger.Info("viewer closed")
	return nil
}

func runFit(args []string, stdout, stderr io.Writer) (err error) {
	var common commonFlags
	fs := flag.NewFlagSet("fit", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "print the summary as JSON")

	app, err := setup("fit", fs, &common, args, stderr, false)
	if err != nil {
		return err
	}
	defer closeApp(app, &err)

	ds, err := app.LoadDataset()
	if err != nil {
		return err
	}

	s, err := regression.Summarize(ds)
	app.Metrics.RecordFit(s, err)
	if err != nil {
		return fmt.Errorf("fit %s: %w", ds.Source(), err)
	}
	app.Logger.Info("regression fitted",
		logging.Count(s.N),
		logging.Float64("intercept", s.Intercept),
		logging.Float64("slope", s.Slope),
		logging.Float64("r_squared", s.RSquared),
	)

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "points\t%d\n", s.N)
	fmt.Fprintf(tw, "line\t%s\n", s.Coefficients)
	fmt.Fprintf(tw, "intercept\t%g\n", s.Intercept)
	fmt.Fprintf(tw, "slope\t%g\n", s.Slope)
	fmt.Fprintf(tw, "r\t%.6f\n", s.Correlation)
	fmt.Fprintf(tw, "r²\t%.6f\n", s.RSquared)
	fmt.Fprintf(tw, "rss\t%g\n", s.RSS)
	return tw.Flush()
}

func runExport(args []string, stdout, stderr io.Writer) (err error) {
	var common commonFlags
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("o", "", "output file; the extension picks png, svg or pdf")
	selected := fs.Int64("select", 0, "highlight the record with this id")

	app, err := setup("export", fs, &common, args, stderr, false)
	if err != nil {
		return err
	}
	defer closeApp(app, &err)

	if *out == "" {
		return errors.New("-o is required")
	}

	ds, err := app.LoadDataset()
	if err != nil {
		return err
	}

	opts := export.Options{
		Width:    app.Config.Export.Width,
		Height:   app.Config.Export.Height,
		Viewport: app.Config.Viewport(),
		LineFrom: chart.LineFrom,
		LineTo:   chart.LineTo,
	}
	if flagSet(fs, "select") {
		p, ok := ds.Point(*selected)
		if !ok {
			return fmt.Errorf("no record with id %d", *selected)
		}
		opts.Selected = &dataset.PointRecord{ID: *selected, X: p.X, Y: p.Y}
	}

	var line *regression.Coefficients
	s, fitErr := regression.Summarize(ds)
	app.Metrics.RecordFit(s, fitErr)
	if fitErr != nil {
		app.Logger.Warn("exporting without regression line", logging.Error(fitErr))
	} else {
		line = &s.Coefficients
	}

	timer := logging.StartTimer(app.Logger, "export chart", logging.Path(*out))
	if err := export.Save(*out, ds, line, opts); err != nil {
		timer.EndError(err)
		return err
	}
	timer.End()
	fmt.Fprintf(stdout, "wrote %s\n", *out)
	return nil
}

func runGenerate(args []string, stdout, stderr io.Writer) (err error) {
	var common commonFlags
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	edges := fs.String("edges", "", "edge list with a header row and from,to columns")
	out := fs.String("o", "", "output centrality file (default: the configured centrality file)")
	undirected := fs.Bool("undirected", false, "treat every edge as going both ways")
	workers := fs.Int("workers", 0, "goroutines for the shortest-path passes (default: one per CPU)")

	app, err := setup("generate", fs, &common, args, stderr, false)
	if err != nil {
		return err
	}
	defer closeApp(app, &err)

	if *edges == "" {
		return errors.New("-edges is required")
	}
	if *out == "" {
		*out = app.Config.Path()
	}

	g, err := centrality.ReadEdgeListFile(*edges, !*undirected)
	if err != nil {
		return err
	}
	app.Metrics.RecordGraph(g.Nodes().Len(), g.Edges().Len())

	timer := logging.StartTimer(app.Logger, "compute centralities",
		logging.Path(*edges),
		logging.Int("nodes", g.Nodes().Len()),
		logging.Int("edges", g.Edges().Len()),
	)
	records, err := centrality.Compute(g, centrality.WithWorkers(*workers))
	if err != nil {
		timer.EndError(err)
		return err
	}
	timer.End()

	if err := centrality.WriteFile(*out, records); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %d records to %s\n", len(records), *out)
	return nil
}

// flagSet reports whether name was given on the command line, so a zero value
// can still be asked for.
func flagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func closeApp(app *App, err *error) {
	if cerr := app.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}
