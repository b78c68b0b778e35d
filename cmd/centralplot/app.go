package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-centralities/pkg/config"
	"github.com/dd0wney/cluso-centralities/pkg/dataset"
	"github.com/dd0wney/cluso-centralities/pkg/logging"
	"github.com/dd0wney/cluso-centralities/pkg/metrics"
)

// App carries everything one run needs. It is built once per command and
// passed down explicitly.
type App struct {
	Config  config.Config
	Logger  logging.Logger
	Metrics *metrics.Registry
	RunID   string

	closers []io.Closer
}

// commonFlags are the settings every command can override on top of the
// config file.
type commonFlags struct {
	configPath string
	dir        string
	file       string
	lenient    bool
	reject     bool
	logLevel   string
	logFile    string
	metrics    string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "YAML config file")
	fs.StringVar(&c.dir, "dir", "", "directory holding the centrality file (default "+dataset.DefaultDir+")")
	fs.StringVar(&c.file, "file", "", "centrality file name (default "+dataset.DefaultFile+")")
	fs.BoolVar(&c.lenient, "lenient", false, "skip malformed rows instead of failing")
	fs.BoolVar(&c.reject, "reject-duplicates", false, "fail when an id appears twice")
	fs.StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&c.logFile, "log-file", "", "append logs to this file")
	fs.StringVar(&c.metrics, "metrics-file", "", "write Prometheus metrics to this textfile on exit")
}

// loadConfig reads the config file and applies the flags that were set.
// LOG_LEVEL in the environment sits between the two.
func (c *commonFlags) loadConfig(fs *flag.FlagSet) (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dir":
			cfg.DataDir = c.dir
		case "file":
			cfg.File = c.file
		case "lenient":
			cfg.Strict = !c.lenient
		case "reject-duplicates":
			if c.reject {
				cfg.Duplicates = dataset.RejectDuplicates.String()
			} else {
				cfg.Duplicates = dataset.KeepLast.String()
			}
		case "log-level":
			cfg.LogLevel = c.logLevel
		case "log-file":
			cfg.LogFile = c.logFile
		case "metrics-file":
			cfg.Metrics = c.metrics
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newApp opens the log and metrics for one command. With quiet set and no log
// file configured, logs are discarded so they cannot corrupt the terminal UI.
func newApp(cfg config.Config, command string, stderr io.Writer, quiet bool) (*App, error) {
	app := &App{
		Config:  cfg,
		Metrics: metrics.NewRegistry(),
		RunID:   uuid.NewString(),
	}

	level := logging.ParseLevel(cfg.LogLevel)
	var logger *logging.JSONLogger
	switch {
	case cfg.LogFile != "":
		l, closer, err := logging.OpenFile(cfg.LogFile, level)
		if err != nil {
			return nil, err
		}
		logger = l
		app.closers = append(app.closers, closer)
	case quiet:
		logger = logging.NewJSONLogger(io.Discard, level)
	default:
		logger = logging.NewJSONLogger(stderr, level)
	}

	app.Logger = logger.With(
		logging.RunID(app.RunID),
		logging.String("command", command),
	)
	return app, nil
}

// LoadDataset reads the configured centrality file and records the outcome.
func (a *App) LoadDataset() (*dataset.Dataset, error) {
	opts, err := a.Config.DatasetOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, dataset.WithLogger(a.Logger))

	path := a.Config.Path()
	timer := logging.StartTimer(a.Logger, "load centralities", logging.Path(path))
	ds, err := dataset.Load(path, opts...)
	if err != nil {
		a.Metrics.RecordLoad(nil, err, timer.EndError(err))
		return nil, err
	}

	stats := ds.Stats()
	a.Metrics.RecordLoad(ds, nil, timer.End(
		logging.Count(ds.Count()),
		logging.Int("skipped", stats.Skipped),
		logging.Int("duplicates", stats.Duplicates),
	))
	return ds, nil
}

// Close writes the metrics textfile, if configured, and closes the log.
func (a *App) Close() error {
	var firstErr error
	if a.Config.Metrics != "" {
		if err := a.Metrics.WriteTextfile(a.Config.Metrics); err != nil {
			a.Logger.Error("metrics textfile not written", logging.Error(err))
			firstErr = err
		}
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close log: %w", err)
		}
	}
	return firstErr
}
