// Package main is the entry point for the spacedlist script driver.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/spacedlist/internal/config"
	"github.com/dshills/spacedlist/internal/logging"
	"github.com/dshills/spacedlist/internal/render"
	"github.com/dshills/spacedlist/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the command line flags. Empty strings and false booleans
// leave the configured value alone.
type options struct {
	ConfigPath string
	ScriptPath string
	LogLevel   string
	LogFile    string
	Watch      bool
	View       bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if cfg.Script.Path == "" {
		fmt.Fprintf(os.Stderr, "Error: no script given (use -script, a positional argument, or [script] path)\n")
		return 2
	}

	logOut, closeLog, err := logOutput(opts.LogFile, cfg.View.Enabled)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	log := logging.New(cfg.Log.Logging(logOut))
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := script.NewRunner(log,
		script.WithCallLimit(cfg.Script.CallLimit),
		script.WithBias(cfg.Script.AnchorBias()),
	)

	if cfg.View.Enabled {
		err = runView(ctx, cfg, runner, log)
	} else {
		err = runPrint(ctx, cfg, runner, log, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig layers the config file, the environment and the flags.
func loadConfig(opts options) (config.Config, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigPath); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}

	if opts.ScriptPath != "" {
		cfg.Script.Path = opts.ScriptPath
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.Watch {
		cfg.Script.Watch = true
	}
	if opts.View {
		cfg.View.Enabled = true
	}
	return cfg, cfg.Validate()
}

// logOutput picks the log destination. The terminal belongs to the view
// while it is shown, so logs are dropped then unless a file is given.
func logOutput(path string, view bool) (io.Writer, func(), error) {
	if path == "" {
		if view {
			return io.Discard, func() {}, nil
		}
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening log file %s", path)
	}
	return f, func() { _ = f.Close() }, nil
}

// runPrint runs the script and prints its exports, once or on every save.
func runPrint(ctx context.Context, cfg config.Config, runner *script.Runner, log *logging.Logger, out io.Writer) error {
	runOnce := func(ctx context.Context) error {
		res, err := runner.Run(ctx, cfg.Script.Path)
		if err != nil {
			return err
		}
		return printExports(out, res)
	}

	err := runOnce(ctx)
	if !cfg.Script.Watch {
		return err
	}
	log = logging.OrNop(log)
	if err != nil {
		log.Error("%v", err)
	}
	return script.Watch(ctx, cfg.Script.Path, log, func(ctx context.Context) {
		if err := runOnce(ctx); err != nil {
			log.Error("%v", err)
		}
	})
}

// runView shows the script's exports on the terminal until a key is pressed.
func runView(ctx context.Context, cfg config.Config, runner *script.Runner, log *logging.Logger) error {
	res, err := runner.Run(ctx, cfg.Script.Path)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "creating terminal")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "initializing terminal")
	}
	defer screen.Fini()

	view := render.NewView(screen, render.Ruler{Width: cfg.View.Width, Scale: cfg.View.Scale}, log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		// Wake PollEvent so Run returns on signals.
		_ = screen.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	}()

	if cfg.Script.Watch {
		go func() {
			err := script.Watch(ctx, cfg.Script.Path, log, func(ctx context.Context) {
				res, err := runner.Run(ctx, cfg.Script.Path)
				if err != nil {
					log.Error("%v", err)
					return
				}
				if err := view.Update(spansOf(res.Exports)); err != nil {
					log.Warn("updating view: %v", err)
				}
			})
			if err != nil {
				log.Error("%v", err)
			}
		}()
	}

	view.Run(spansOf(res.Exports))
	return nil
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ScriptPath, "script", "", "Lua script to run")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Append logs to this file instead of stderr")
	flag.BoolVar(&opts.Watch, "watch", false, "Rerun the script whenever it is saved")
	flag.BoolVar(&opts.View, "view", false, "Show exported ranges as a ruler in the terminal")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "spacedlist - drive spaced lists from Lua scripts\n\n")
		fmt.Fprintf(os.Stderr, "Usage: spacedlist [options] [script.lua]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  spacedlist demo.lua               Print exported lists as JSON\n")
		fmt.Fprintf(os.Stderr, "  spacedlist -watch demo.lua        Reprint on every save\n")
		fmt.Fprintf(os.Stderr, "  spacedlist -view -watch demo.lua  Live ruler view\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("spacedlist %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.ScriptPath == "" && flag.NArg() > 0 {
		opts.ScriptPath = flag.Arg(0)
	}
	return opts
}
