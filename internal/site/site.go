package site

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/fileutil"
)

// Sentinel errors for site builds.
var (
	ErrContentNotFound  = errors.New("content directory not found")
	ErrTemplateNotFound = mdsite.ErrTemplateNotFound
	ErrUnsafePublicDir  = errors.New("refusing to delete public directory")
	ErrCleanPublic      = errors.New("failed to clean public directory")
	ErrCopyStatic       = errors.New("failed to copy static files")
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrWritePage        = errors.New("failed to write page")
)

// PageError is a single page failure within a combined build error.
type PageError struct {
	Source string
	Err    error
}

func (e *PageError) Error() string { return e.Source + ": " + e.Err.Error() }

func (e *PageError) Unwrap() error { return e.Err }

// PageConverter converts one markdown document to a page.
type PageConverter interface {
	Convert(ctx context.Context, input mdsite.Input) (*mdsite.Result, error)
}

// Compile-time interface implementation check.
var _ PageConverter = (*mdsite.Converter)(nil)

// Options configures a build.
type Options struct {
	ContentDir string
	StaticDir  string // optional; missing directory only warns
	PublicDir  string

	// Converter turns pages into HTML. When nil, one is created from
	// Engine, Template and BasePath.
	Converter PageConverter
	Engine    string
	Template  string
	BasePath  string

	Workers    int  // 0 = GOMAXPROCS
	CheckLinks bool // audit generated pages for broken local links

	Logger *zap.Logger // nil = no logging
}

// Report summarizes a build.
type Report struct {
	Pages       []PageResult  // in natural order of source path
	StaticFiles int           // files copied from StaticDir
	Warnings    []LinkWarning // broken local links, when CheckLinks is set
	Workers     int           // workers used for page generation
	Duration    time.Duration
}

// Succeeded returns the number of pages written.
func (r *Report) Succeeded() int {
	n := 0
	for _, p := range r.Pages {
		if p.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of pages that could not be generated.
func (r *Report) Failed() int {
	return len(r.Pages) - r.Succeeded()
}

// Build generates the site described by opts. The returned Report is
// non-nil whenever the build got past validation; the error combines every
// page failure and is also non-nil when a phase before generation failed.
func Build(ctx context.Context, opts Options) (*Report, error) {
	start := time.Now()
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if err := validate(opts); err != nil {
		return nil, err
	}

	conv := opts.Converter
	if conv == nil {
		c, err := mdsite.NewConverter(
			mdsite.WithEngine(opts.Engine),
			mdsite.WithTemplate(opts.Template),
			mdsite.WithBasePath(opts.BasePath),
		)
		if err != nil {
			return nil, err
		}
		conv = c
	}

	report := &Report{}
	defer func() { report.Duration = time.Since(start) }()

	if fileutil.DirExists(opts.PublicDir) {
		log.Info("Deleting public directory", zap.String("path", opts.PublicDir))
	}
	if err := os.RemoveAll(opts.PublicDir); err != nil {
		return report, fmt.Errorf("%w: %v", ErrCleanPublic, err)
	}

	if err := copyStatic(opts, report, log); err != nil {
		return report, err
	}
	if opts.Template == "" {
		if err := writeDefaultStyle(opts.PublicDir, log); err != nil {
			return report, err
		}
	}

	pages, err := discoverPages(opts.ContentDir, opts.PublicDir)
	if err != nil {
		return report, err
	}

	report.Workers = resolveWorkers(opts.Workers, len(pages))
	log.Info("Generating pages",
		zap.String("content", opts.ContentDir),
		zap.Int("pages", len(pages)),
		zap.Int("workers", report.Workers))

	report.Pages = generateBatch(ctx, conv, pages, report.Workers)

	var errs error
	for _, r := range report.Pages {
		if r.Err != nil {
			log.Debug("Page failed", zap.String("path", r.Source), zap.Error(r.Err))
			errs = multierr.Append(errs, &PageError{Source: r.Source, Err: r.Err})
			continue
		}
		log.Debug("Page generated",
			zap.String("path", r.Output),
			zap.Duration("duration", r.Duration))
	}

	if opts.CheckLinks {
		log.Info("Auditing links", zap.String("public", opts.PublicDir))
		report.Warnings, err = auditLinks(opts.PublicDir, opts.BasePath, report.Pages)
		if err != nil {
			errs = multierr.Append(errs, err)
		}
		for _, w := range report.Warnings {
			log.Warn("Broken link",
				zap.String("page", w.Page),
				zap.String("link", w.Link),
				zap.String("target", w.Target))
		}
	}

	log.Info("Site generation complete",
		zap.Int("succeeded", report.Succeeded()),
		zap.Int("failed", report.Failed()),
		zap.Duration("duration", time.Since(start)))

	return report, errs
}

// validate checks directories before anything is deleted. PublicDir must
// not be the filesystem root, the working directory, an input directory, or
// an ancestor of one.
func validate(opts Options) error {
	if !fileutil.DirExists(opts.ContentDir) {
		return fmt.Errorf("%w: %s", ErrContentNotFound, opts.ContentDir)
	}

	if opts.PublicDir == "" || filepath.Clean(opts.PublicDir) == "." {
		return fmt.Errorf("%w: %q", ErrUnsafePublicDir, opts.PublicDir)
	}
	public, err := filepath.Abs(opts.PublicDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsafePublicDir, err)
	}
	if public == filepath.Dir(public) {
		return fmt.Errorf("%w: %q is the filesystem root", ErrUnsafePublicDir, opts.PublicDir)
	}

	for _, dir := range []string{opts.ContentDir, opts.StaticDir} {
		if dir == "" {
			continue
		}
		input, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnsafePublicDir, err)
		}
		if isWithin(public, input) {
			return fmt.Errorf("%w: %s contains input directory %s", ErrUnsafePublicDir, opts.PublicDir, dir)
		}
	}
	return nil
}

// isWithin reports whether path equals dir or lies below it. Both must be
// absolute and clean.
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// copyStatic copies StaticDir into PublicDir, or creates an empty PublicDir
// when there is nothing to copy.
func copyStatic(opts Options, report *Report, log *zap.Logger) error {
	if opts.StaticDir == "" || !fileutil.DirExists(opts.StaticDir) {
		if opts.StaticDir != "" {
			log.Warn("Static directory not found", zap.String("path", opts.StaticDir))
		}
		if err := os.MkdirAll(opts.PublicDir, fileutil.DirPerm); err != nil {
			return fmt.Errorf("creating public directory: %w", err)
		}
		return nil
	}

	log.Info("Copying static files",
		zap.String("from", opts.StaticDir),
		zap.String("to", opts.PublicDir))
	err := fileutil.CopyDir(opts.StaticDir, opts.PublicDir, func(dst string) {
		report.StaticFiles++
		log.Debug("Copied", zap.String("path", dst))
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCopyStatic, err)
	}
	return nil
}

// defaultStyleName is the stylesheet the embedded template links to.
const defaultStyleName = "index.css"

// writeDefaultStyle provides the embedded stylesheet when static files did
// not include one.
func writeDefaultStyle(publicDir string, log *zap.Logger) error {
	path := filepath.Join(publicDir, defaultStyleName)
	if fileutil.FileExists(path) {
		return nil
	}
	css, err := assets.ResolveStyle("")
	if err != nil {
		return err
	}
	log.Debug("Writing default stylesheet", zap.String("path", path))
	return fileutil.WriteFile(path, []byte(css))
}
