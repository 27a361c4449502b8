package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/multierr"

	"github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/hints"
	"github.com/alnah/go-mdsite/internal/logging"
	"github.com/alnah/go-mdsite/internal/site"
)

// runBuildCmd parses build arguments, runs the build and prints results.
func runBuildCmd(args []string, env *Environment) int {
	flags, positional, err := parseBuildFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printBuildUsage(env.Stdout)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		fmt.Fprintln(env.Stderr, "Run 'mdsite help build' for usage.")
		return exitCodeFor(err)
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	report, err := runBuild(ctx, flags, positional, env)
	if report != nil {
		printReport(report, flags.common.quiet, flags.common.verbose, env)
	}
	for _, e := range unreported(err, report) {
		fmt.Fprintln(env.Stderr, e.Error()+hintFor(e, flags.common.config))
	}
	return exitCodeFor(err)
}

// unreported returns the parts of a build error not already printed as
// FAILED lines of report.
func unreported(err error, report *site.Report) []error {
	if err == nil {
		return nil
	}
	if report == nil {
		return []error{err}
	}
	var rest []error
	for _, e := range multierr.Errors(err) {
		var pe *site.PageError
		if !errors.As(e, &pe) {
			rest = append(rest, e)
		}
	}
	return rest
}

// runBuild resolves configuration and runs the build.
func runBuild(ctx context.Context, flags *buildFlags, positional []string, env *Environment) (*site.Report, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	if err := mergeFlags(flags, positional, cfg); err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Log.Level, env.Stderr, env.Stderr)
	if err != nil {
		return nil, err
	}
	defer func() { _ = log.Sync() }()

	return env.Build(ctx, site.Options{
		ContentDir: cfg.Content,
		StaticDir:  cfg.Static,
		PublicDir:  cfg.Public,
		Engine:     cfg.Engine,
		Template:   cfg.Template,
		BasePath:   cfg.BasePath,
		Workers:    cfg.Workers,
		CheckLinks: cfg.CheckLinks,
		Logger:     log,
	})
}

// printReport outputs page results, link warnings and a summary.
func printReport(report *site.Report, quiet, verbose bool, env *Environment) {
	for _, r := range report.Pages {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Source, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.Source, r.Output, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.Output)
		}
	}

	for _, w := range report.Warnings {
		fmt.Fprintf(env.Stderr, "WARNING %s: broken link %q\n", w.Page, w.Link)
	}

	if !quiet {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed", report.Succeeded(), report.Failed())
		if len(report.Warnings) > 0 {
			fmt.Fprintf(env.Stdout, ", %d broken links", len(report.Warnings))
		}
		if verbose {
			fmt.Fprintf(env.Stdout, " in %v", report.Duration.Round(time.Millisecond))
		}
		fmt.Fprintln(env.Stdout)
	}
}

// runConfigCmd prints the effective configuration as YAML.
func runConfigCmd(args []string, env *Environment) int {
	flags, positional, err := parseBuildFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printConfigUsage(env.Stdout)
		return ExitSuccess
	}
	if err == nil {
		var data []byte
		data, err = effectiveConfig(flags, positional)
		if err == nil {
			_, _ = env.Stdout.Write(data)
			return ExitSuccess
		}
	}
	if flags != nil {
		fmt.Fprintln(env.Stderr, err.Error()+hintFor(err, flags.common.config))
	} else {
		fmt.Fprintln(env.Stderr, err)
	}
	return exitCodeFor(err)
}

func effectiveConfig(flags *buildFlags, positional []string) ([]byte, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	if err := mergeFlags(flags, positional, cfg); err != nil {
		return nil, err
	}
	return cfg.Marshal()
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, configRef string) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		if fileutil.IsFilePath(configRef) {
			return hints.ForConfigNotFound(nil)
		}
		return hints.ForConfigNotFound(config.SearchPaths(configRef))
	case errors.Is(err, site.ErrContentNotFound):
		return hints.ForContentNotFound()
	case errors.Is(err, mdsite.ErrTemplateNotFound):
		return hints.ForTemplateNotFound(assets.TemplateNames())
	case errors.Is(err, mdsite.ErrTemplatePlaceholder):
		return hints.ForTemplatePlaceholder()
	case errors.Is(err, site.ErrCleanPublic), errors.Is(err, site.ErrWritePage):
		return hints.ForPublicDirectory()
	case errors.Is(err, config.ErrInvalidConfig) && strings.Contains(err.Error(), "basePath"):
		return hints.ForBasePath()
	default:
		return ""
	}
}
