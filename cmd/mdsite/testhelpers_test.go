package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alnah/go-mdsite/internal/site"
)

// testEnv returns an environment with captured output.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{Stdout: stdout, Stderr: stderr, Build: site.Build}, stdout, stderr
}

// recordingBuild captures the options of each build and returns a fixed
// outcome.
type recordingBuild struct {
	mu     sync.Mutex
	calls  []site.Options
	report *site.Report
	err    error
}

func (r *recordingBuild) Build(_ context.Context, opts site.Options) (*site.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, opts)
	return r.report, r.err
}

func (r *recordingBuild) last(t *testing.T) site.Options {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		t.Fatal("build was not called")
	}
	return r.calls[len(r.calls)-1]
}

// setupTestDir creates a temp directory with the given file structure.
// Files map slash paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}
