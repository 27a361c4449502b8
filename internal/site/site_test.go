package site

// Notes:
// - Builds run against real temp directories with the real converter; a
//   mock converter is used only where failures or call counts matter.
// - Log output is asserted through zaptest/observer.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alnah/go-mdsite"
)

// writeTree creates files under root from a map of slash paths to contents.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

type siteDirs struct {
	content, static, public string
}

func newSiteDirs(t *testing.T) siteDirs {
	t.Helper()
	root := t.TempDir()
	return siteDirs{
		content: filepath.Join(root, "content"),
		static:  filepath.Join(root, "static"),
		public:  filepath.Join(root, "public"),
	}
}

func (d siteDirs) options() Options {
	return Options{ContentDir: d.content, StaticDir: d.static, PublicDir: d.public}
}

// ---------------------------------------------------------------------------
// TestBuild - End-to-end site generation
// ---------------------------------------------------------------------------

func TestBuild_GeneratesSite(t *testing.T) {
	t.Parallel()

	d := newSiteDirs(t)
	writeTree(t, d.content, map[string]string{
		"index.md":      "# Home\n\nWelcome to [the blog](/blog/)",
		"blog/index.md": "# Blog\n\n![logo](/images/logo.png)",
		"notes.txt":     "ignored",
	})
	writeTree(t, d.static, map[string]string{
		"index.css":       "body{}",
		"images/logo.png": "png",
	})
	writeTree(t, d.public, map[string]string{"stale.html": "old"})

	report, err := Build(context.Background(), d.options())
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	if report.StaticFiles != 2 {
		t.Errorf("StaticFiles = %d, want 2", report.StaticFiles)
	}
	if report.Succeeded() != 2 || report.Failed() != 0 {
		t.Errorf("succeeded/failed = %d/%d, want 2/0", report.Succeeded(), report.Failed())
	}
	if _, err := os.Stat(filepath.Join(d.public, "stale.html")); !os.IsNotExist(err) {
		t.Error("stale file in public should be deleted")
	}
	if got := readFile(t, filepath.Join(d.public, "index.css")); got != "body{}" {
		t.Errorf("index.css = %q, static copy should win over the default", got)
	}
	if _, err := os.Stat(filepath.Join(d.public, "notes.html")); !os.IsNotExist(err) {
		t.Error("non-markdown files must not become pages")
	}

	home := readFile(t, filepath.Join(d.public, "index.html"))
	for _, want := range []string{
		"<title>Home</title>",
		`<p>Welcome to <a href="/blog/">the blog</a></p>`,
	} {
		if !strings.Contains(home, want) {
			t.Errorf("index.html missing %q\n%s", want, home)
		}
	}
	blog := readFile(t, filepath.Join(d.public, "blog", "index.html"))
	if !strings.Contains(blog, `<img src="/images/logo.png" alt="logo"></img>`) {
		t.Errorf("blog/index.html missing image\n%s", blog)
	}

	wantOrder := []string{"/blog/index.html", "/index.html"}
	for i, p := range report.Pages {
		if p.URL != wantOrder[i] {
			t.Errorf("Pages[%d].URL = %q, want %q", i, p.URL, wantOrder[i])
		}
	}
	if report.Pages[0].Title != "Blog" {
		t.Errorf("Pages[0].Title = %q, want %q", report.Pages[0].Title, "Blog")
	}
}

func TestBuild_BasePath(t *testing.T) {
	t.Parallel()

	d := newSiteDirs(t)
	writeTree(t, d.content, map[string]string{"index.md": "# Home\n\n[About](/about.html)"})

	opts := d.options()
	opts.BasePath = "/repo/"
	if _, err := Build(context.Background(), opts); err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	home := readFile(t, filepath.Join(d.public, "index.html"))
	for _, want := range []string{`href="/repo/about.html"`, `href="/repo/index.css"`} {
		if !strings.Contains(home, want) {
			t.Errorf("index.html missing %q\n%s", want, home)
		}
	}
}

func TestBuild_PageFailuresContinue(t *testing.T) {
	t.Parallel()

	d := newSiteDirs(t)
	writeTree(t, d.content, map[string]string{
		"good.md":     "# Good\n\ntext",
		"bad.md":      "# Bad\n\nan **open bold",
		"untitled.md": "no heading here",
	})

	report, err := Build(context.Background(), d.options())
	if err == nil {
		t.Fatal("Build() expected error for failing pages")
	}
	if !errors.Is(err, mdsite.ErrMalformedInline) {
		t.Errorf("error = %v, want ErrMalformedInline in the chain", err)
	}
	if !errors.Is(err, mdsite.ErrNoHeading) {
		t.Errorf("error = %v, want ErrNoHeading in the chain", err)
	}
	if n := len(multierr.Errors(err)); n != 2 {
		t.Errorf("combined errors = %d, want 2", n)
	}
	if !strings.Contains(err.Error(), "bad.md") {
		t.Errorf("error %q should name the failing page", err)
	}
	for _, e := range multierr.Errors(err) {
		var pe *PageError
		if !errors.As(e, &pe) || pe.Source == "" {
			t.Errorf("combined error %v should be a *PageError with its source", e)
		}
	}

	if report.Succeeded() != 1 || report.Failed() != 2 {
		t.Errorf("succeeded/failed = %d/%d, want 1/2", report.Succeeded(), report.Failed())
	}
	if _, err := os.Stat(filepath.Join(d.public, "good.html")); err != nil {
		t.Errorf("good page should still be written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(d.public, "bad.html")); !os.IsNotExist(err) {
		t.Error("failed page must not be written")
	}
}

func TestBuild_MissingStaticWarns(t *testing.T) {
	t.Parallel()

	d := newSiteDirs(t)
	writeTree(t, d.content, map[string]string{"index.md": "# Home"})

	core, logs := observer.New(zapcore.DebugLevel)
	opts := d.options()
	opts.Logger = zap.New(core)

	report, err := Build(context.Background(), opts)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if report.StaticFiles != 0 {
		t.Errorf("StaticFiles = %d, want 0", report.StaticFiles)
	}
	if logs.FilterMessage("Static directory not found").FilterLevelExact(zapcore.WarnLevel).Len() != 1 {
		t.Errorf("expected one static warning, got %v", logs.All())
	}
	if logs.FilterMessage("Page generated").Len() != 1 {
		t.Errorf("expected one page debug entry, got %v", logs.All())
	}

	css := readFile(t, filepath.Join(d.public, "index.css"))
	if !strings.Contains(css, "body") {
		t.Errorf("default stylesheet not written, got %q", css)
	}
}

func TestBuild_CustomTemplateSkipsDefaultStyle(t *testing.T) {
	t.Parallel()

	d := newSiteDirs(t)
	writeTree(t, d.content, map[string]string{"index.md": "# Home"})
	tmpl := filepath.Join(filepath.Dir(d.content), "template.html")
	writeTree(t, filepath.Dir(tmpl), map[string]string{"template.html": "<h1>{{ Title }}</h1>{{ Content }}"})

	opts := d.options()
	opts.Template = tmpl
	if _, err := Build(context.Background(), opts); err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if got := readFile(t, filepath.Join(d.public, "index.html")); got != "<h1>Home</h1><div><h1>Home</h1></div>" {
		t.Errorf("index.html = %q", got)
	}
	if _, err := os.Stat(filepath.Join(d.public, "index.css")); !os.IsNotExist(err) {
		t.Error("default stylesheet should only accompany the default template")
	}
}

func TestBuild_EmptyContent(t *testing.T) {
	t.Parallel()

	d := newSiteDirs(t)
	if err := os.MkdirAll(d.content, 0o755); err != nil {
		t.Fatal(err)
	}

	report, err := Build(context.Background(), d.options())
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if len(report.Pages) != 0 {
		t.Errorf("Pages = %d, want 0", len(report.Pages))
	}
	if _, err := os.Stat(d.public); err != nil {
		t.Errorf("public should exist: %v", err)
	}
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	d := newSiteDirs(t)
	writeTree(t, d.content, map[string]string{"index.md": "# Home"})
	writeTree(t, d.static, map[string]string{"a.css": ""})

	tests := []struct {
		name    string
		modify  func(*Options)
		wantErr error
	}{
		{"missing content", func(o *Options) { o.ContentDir = filepath.Join(d.content, "nope") }, ErrContentNotFound},
		{"empty public", func(o *Options) { o.PublicDir = "" }, ErrUnsafePublicDir},
		{"public is current dir", func(o *Options) { o.PublicDir = "." }, ErrUnsafePublicDir},
		{"public is content", func(o *Options) { o.PublicDir = d.content }, ErrUnsafePublicDir},
		{"public is static", func(o *Options) { o.PublicDir = d.static + string(filepath.Separator) }, ErrUnsafePublicDir},
		{"public is parent of content", func(o *Options) { o.PublicDir = filepath.Dir(d.content) }, ErrUnsafePublicDir},
		{"public is dot-dot above content", func(o *Options) { o.PublicDir = filepath.Join(d.content, "..") }, ErrUnsafePublicDir},
		{"public is ancestor of static", func(o *Options) { o.PublicDir = filepath.Dir(filepath.Dir(d.static)) }, ErrUnsafePublicDir},
		{"public is filesystem root", func(o *Options) { o.PublicDir = string(filepath.Separator) }, ErrUnsafePublicDir},
		{"missing template", func(o *Options) { o.Template = filepath.Join(d.content, "none.html") }, ErrTemplateNotFound},
		{"unknown engine", func(o *Options) { o.Engine = "pandoc" }, mdsite.ErrUnknownEngine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := d.options()
			opts.PublicDir = filepath.Join(t.TempDir(), "public")
			tt.modify(&opts)

			report, err := Build(context.Background(), opts)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Build() error = %v, want %v", err, tt.wantErr)
			}
			if report != nil {
				t.Error("report should be nil when validation fails")
			}
		})
	}

	for _, path := range []string{filepath.Join(d.content, "index.md"), filepath.Join(d.static, "a.css")} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("inputs must survive failed validation: %v", err)
		}
	}
}

func TestBuild_PublicContainingContent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	content := filepath.Join(root, "out", "content")
	writeTree(t, content, map[string]string{"index.md": "# Home"})

	report, err := Build(context.Background(), Options{
		ContentDir: content,
		PublicDir:  filepath.Join(root, "out"),
	})
	if !errors.Is(err, ErrUnsafePublicDir) {
		t.Fatalf("Build() error = %v, want ErrUnsafePublicDir", err)
	}
	if report != nil {
		t.Error("report should be nil when validation fails")
	}
	if _, err := os.Stat(filepath.Join(content, "index.md")); err != nil {
		t.Errorf("content must survive: %v", err)
	}
}

// Not parallel: changes the working directory.
func TestBuild_RelativeParentPublic(t *testing.T) {
	project := filepath.Join(t.TempDir(), "project")
	writeTree(t, filepath.Join(project, "content"), map[string]string{"index.md": "# Home"})
	t.Chdir(project)

	_, err := Build(context.Background(), Options{ContentDir: "content", StaticDir: "static", PublicDir: ".."})
	if !errors.Is(err, ErrUnsafePublicDir) {
		t.Fatalf("Build() error = %v, want ErrUnsafePublicDir", err)
	}
	if _, err := os.Stat(filepath.Join(project, "content", "index.md")); err != nil {
		t.Errorf("content must survive: %v", err)
	}
}

func TestIsWithin(t *testing.T) {
	t.Parallel()

	sep := string(filepath.Separator)
	root := filepath.Join(sep+"srv", "site")

	tests := []struct {
		name string
		dir  string
		path string
		want bool
	}{
		{"same", root, root, true},
		{"child", root, filepath.Join(root, "content"), true},
		{"grandchild", filepath.Dir(root), filepath.Join(root, "content"), true},
		{"sibling", filepath.Join(root, "public"), filepath.Join(root, "content"), false},
		{"parent", filepath.Join(root, "content"), root, false},
		{"dot-dot prefix in name", root, filepath.Join(root, "..content"), true},
		{"sibling with shared prefix", root, root + "2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isWithin(tt.dir, tt.path); got != tt.want {
				t.Errorf("isWithin(%q, %q) = %v, want %v", tt.dir, tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuild - Link audit
// ---------------------------------------------------------------------------

func TestBuild_CheckLinks(t *testing.T) {
	t.Parallel()

	d := newSiteDirs(t)
	writeTree(t, d.content, map[string]string{
		"index.md": "# Home\n\n" +
			"- [blog](/blog/)\n" +
			"- [missing](/missing.html)\n" +
			"- [sibling](about.html)\n" +
			"- [external](https://example.com/x)\n" +
			"- [anchor](#top)",
		"about.md":      "# About\n\n![gone](/images/gone.png)",
		"blog/index.md": "# Blog\n\n[up](../index.html)",
	})

	opts := d.options()
	opts.CheckLinks = true
	opts.BasePath = "/repo/"

	report, err := Build(context.Background(), opts)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	got := map[string]string{}
	for _, w := range report.Warnings {
		got[w.Target] = w.Link
	}
	want := map[string]string{
		"/missing.html":    "/repo/missing.html",
		"/images/gone.png": "/repo/images/gone.png",
	}
	if len(got) != len(want) {
		t.Fatalf("Warnings = %+v, want targets %v", report.Warnings, want)
	}
	for target, link := range want {
		if got[target] != link {
			t.Errorf("warning for %s: link = %q, want %q", target, got[target], link)
		}
	}
}

// ---------------------------------------------------------------------------
// TestGenerateBatch - Worker pool
// ---------------------------------------------------------------------------

type countingConverter struct {
	calls atomic.Int32
	err   error
}

func (c *countingConverter) Convert(ctx context.Context, in mdsite.Input) (*mdsite.Result, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return &mdsite.Result{HTML: []byte(in.Markdown), Title: "t"}, nil
}

func batchPages(t *testing.T, n int) []Page {
	t.Helper()
	dir := t.TempDir()
	pages := make([]Page, n)
	for i := range pages {
		src := filepath.Join(dir, "p"+string(rune('a'+i))+".md")
		if err := os.WriteFile(src, []byte("# page"), 0o644); err != nil {
			t.Fatal(err)
		}
		pages[i] = Page{Source: src, Output: filepath.Join(dir, "out", filepath.Base(src)+".html")}
	}
	return pages
}

func TestGenerateBatch(t *testing.T) {
	t.Parallel()

	pages := batchPages(t, 5)
	conv := &countingConverter{}

	results := generateBatch(context.Background(), conv, pages, 3)
	if len(results) != len(pages) {
		t.Fatalf("results = %d, want %d", len(results), len(pages))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("results[%d].Err = %v", i, r.Err)
		}
		if r.Source != pages[i].Source {
			t.Errorf("results[%d] out of order: %s", i, r.Source)
		}
		if got := readFile(t, r.Output); got != "# page" {
			t.Errorf("results[%d] output = %q", i, got)
		}
	}
	if got := conv.calls.Load(); got != 5 {
		t.Errorf("converter calls = %d, want 5", got)
	}
}

func TestGenerateBatch_Canceled(t *testing.T) {
	t.Parallel()

	pages := batchPages(t, 4)
	conv := &countingConverter{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := generateBatch(ctx, conv, pages, 2)
	for i, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("results[%d].Err = %v, want context.Canceled", i, r.Err)
		}
	}
	if got := conv.calls.Load(); got != 0 {
		t.Errorf("converter calls = %d, want 0 after cancellation", got)
	}
}

func TestGenerateBatch_Errors(t *testing.T) {
	t.Parallel()

	pages := batchPages(t, 2)
	pages[1].Source = filepath.Join(t.TempDir(), "missing.md")
	conv := &countingConverter{}

	results := generateBatch(context.Background(), conv, pages, 1)
	if results[0].Err != nil {
		t.Errorf("results[0].Err = %v, want nil", results[0].Err)
	}
	if !errors.Is(results[1].Err, ErrReadMarkdown) {
		t.Errorf("results[1].Err = %v, want ErrReadMarkdown", results[1].Err)
	}

	failing := &countingConverter{err: mdsite.ErrEmptyDocument}
	results = generateBatch(context.Background(), failing, pages[:1], 1)
	if !errors.Is(results[0].Err, mdsite.ErrEmptyDocument) {
		t.Errorf("converter error = %v, want ErrEmptyDocument", results[0].Err)
	}
}

func TestGenerateBatch_Empty(t *testing.T) {
	t.Parallel()

	if got := generateBatch(context.Background(), &countingConverter{}, nil, 4); got != nil {
		t.Errorf("generateBatch(nil) = %v, want nil", got)
	}
}

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	procs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name      string
		requested int
		pages     int
		want      int
	}{
		{"explicit", 3, 10, 3},
		{"capped by pages", 8, 2, 2},
		{"capped at max", 500, 1000, maxWorkers},
		{"zero pages still one", 4, 0, 1},
		{"auto uses GOMAXPROCS", 0, 100, min(procs, maxWorkers, 100)},
		{"negative means auto", -1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveWorkers(tt.requested, tt.pages); got != tt.want {
				t.Errorf("resolveWorkers(%d, %d) = %d, want %d", tt.requested, tt.pages, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDiscoverPages - Natural ordering and output mapping
// ---------------------------------------------------------------------------

func TestDiscoverPages(t *testing.T) {
	t.Parallel()

	content := t.TempDir()
	writeTree(t, content, map[string]string{
		"page10.md":      "",
		"page2.md":       "",
		"page1.md":       "",
		"notes.txt":      "",
		"sub/a.markdown": "",
		"sub/deep/b.MD":  "",
	})
	public := filepath.Join(t.TempDir(), "public")

	pages, err := discoverPages(content, public)
	if err != nil {
		t.Fatalf("discoverPages() unexpected error: %v", err)
	}

	wantURLs := []string{"/page1.html", "/page2.html", "/page10.html", "/sub/a.html", "/sub/deep/b.html"}
	if len(pages) != len(wantURLs) {
		t.Fatalf("pages = %+v, want %d", pages, len(wantURLs))
	}
	for i, want := range wantURLs {
		if pages[i].URL != want {
			t.Errorf("pages[%d].URL = %q, want %q", i, pages[i].URL, want)
		}
	}
	if want := filepath.Join(public, "sub", "deep", "b.html"); pages[4].Output != want {
		t.Errorf("pages[4].Output = %q, want %q", pages[4].Output, want)
	}
	if want := filepath.Join(content, "sub", "a.markdown"); pages[3].Source != want {
		t.Errorf("pages[3].Source = %q, want %q", pages[3].Source, want)
	}
}
