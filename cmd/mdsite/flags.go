package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdsite/internal/config"
)

// errUsage marks command line mistakes.
var errUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// dirFlags holds source and output directory flags.
type dirFlags struct {
	content string
	static  string
	public  string
}

// renderFlags holds page rendering flags.
type renderFlags struct {
	template string
	engine   string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common     commonFlags
	dirs       dirFlags
	render     renderFlags
	workers    int
	checkLinks bool

	// set records which flags were given explicitly, so that only those
	// override config values.
	set map[string]bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addDirFlags adds directory flags to a FlagSet.
func addDirFlags(fs *flag.FlagSet, f *dirFlags) {
	fs.StringVar(&f.content, "content", "", "markdown source directory")
	fs.StringVar(&f.static, "static", "", "static files directory")
	fs.StringVar(&f.public, "public", "", "output directory (deleted on each build)")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.template, "template", "", "page template name or path")
	fs.StringVar(&f.engine, "engine", "", "markdown engine: native, goldmark")
}

// parseBuildFlags parses build command arguments.
// Returns flag.ErrHelp when -h/--help is given.
func parseBuildFlags(args []string) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &buildFlags{set: map[string]bool{}}

	addCommonFlags(fs, &f.common)
	addDirFlags(fs, &f.dirs)
	addRenderFlags(fs, &f.render)
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.checkLinks, "check-links", false, "report broken local links")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })

	if f.common.quiet && f.common.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", errUsage)
	}

	positional := fs.Args()
	if len(positional) > 1 {
		return nil, nil, fmt.Errorf("%w: expected at most one base path, got %d arguments", errUsage, len(positional))
	}
	return f, positional, nil
}

// loadConfig loads the config named by flags, or the defaults.
func loadConfig(f *buildFlags) (*config.Config, error) {
	if f.common.config == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(f.common.config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags applies explicitly set flags and the positional base path onto
// cfg (CLI wins), then revalidates.
func mergeFlags(f *buildFlags, positional []string, cfg *config.Config) error {
	if f.set["content"] {
		cfg.Content = f.dirs.content
	}
	if f.set["static"] {
		cfg.Static = f.dirs.static
	}
	if f.set["public"] {
		cfg.Public = f.dirs.public
	}
	if f.set["template"] {
		cfg.Template = f.render.template
	}
	if f.set["engine"] {
		cfg.Engine = f.render.engine
	}
	if f.set["workers"] {
		cfg.Workers = f.workers
	}
	if f.set["check-links"] {
		cfg.CheckLinks = f.checkLinks
	}
	if len(positional) == 1 {
		cfg.BasePath = positional[0]
	}

	switch {
	case f.common.quiet:
		cfg.Log.Level = "none"
	case f.common.verbose:
		cfg.Log.Level = "debug"
	}

	return cfg.Validate()
}
