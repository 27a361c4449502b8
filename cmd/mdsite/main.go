package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-mdsite/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	level := logging.LevelNone
	if hasVerboseFlag(os.Args[1:]) {
		level = logging.LevelDebug
	}

	// Configure GOMAXPROCS for container CPU quotas before workers are sized.
	// Errors are ignored: Go runtime defaults apply.
	undo := func() {}
	if log, err := logging.New(level, os.Stderr, os.Stderr); err == nil {
		if u, err := maxprocs.Set(maxprocs.Logger(log.Sugar().Debugf)); err == nil {
			undo = u
		}
	}

	code := runMain(os.Args, DefaultEnv())
	undo()
	os.Exit(code)
}

// runMain dispatches to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "build":
		return runBuildCmd(rest, env)
	case "config":
		return runConfigCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "mdsite %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		if !runHelp(rest, env) {
			return ExitUsage
		}
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// hasVerboseFlag reports whether args request verbose output.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
