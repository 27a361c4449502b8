package main

import (
	"context"
	"io"
	"os"

	"github.com/alnah/go-mdsite/internal/site"
)

// BuildFunc runs a site build. Replaced in tests.
type BuildFunc func(ctx context.Context, opts site.Options) (*site.Report, error)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
	Build  BuildFunc
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Build:  site.Build,
	}
}
