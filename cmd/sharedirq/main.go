// Package main implements sharedirq, a small inspection tool that runs one
// sharedir resolution and prints the outcome. It exists for debugging
// marker sets and packaging layouts, not for scripting.
//
// Usage:
//
//	sharedirq -caller lib/pkg.go [-dist name] [-file rel] [-projectdir share]
//	          [-shape string|dir|file] [-defaults sharedir.toml] [-v]
//	          [-logfile sharedirq.log]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"tools.zach/dev/sharedir"
	"tools.zach/dev/sharedir/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses flags, performs one resolution, and prints the results.
// Returns the process exit code: 0 on success, 1 on resolution errors,
// 2 on usage errors.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sharedirq", flag.ContinueOnError)
	fs.SetOutput(stderr)

	caller := fs.String("caller", "", "source file to resolve for (required)")
	dist := fs.String("dist", "", "distribution name to pre-bind")
	file := fs.String("file", "", "relative file to resolve inside the data directory")
	projectDir := fs.String("projectdir", "", "shared-data subdirectory (default from defaults file or \"share\")")
	shape := fs.String("shape", "", "return shape: string, dir, or file")
	defaults := fs.String("defaults", "", "optional TOML defaults file")
	verbose := fs.Bool("v", false, "trace resolution steps to stderr")
	logfile := fs.String("logfile", "", "append trace output to a rotating log file (takes precedence over -v)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *caller == "" {
		fmt.Fprintln(stderr, "sharedirq: -caller is required")
		fs.Usage()
		return 2
	}

	log := logger.Nop()
	if *verbose {
		log = logger.New(stderr, logger.LevelTrace)
	}
	if *logfile != "" {
		fileLog, closer := logger.NewFile(*logfile, logger.LevelTrace, 10)
		defer closer.Close()
		log = fileLog
	}

	def := sharedir.DefaultOptions()
	if *defaults != "" {
		var err error
		def, err = sharedir.LoadDefaults(*defaults)
		if err != nil {
			fmt.Fprintf(stderr, "sharedirq: %v\n", err)
			return 2
		}
	}

	opts := sharedir.Merge(def, sharedir.Options{
		CallerFile: *caller,
		ProjectDir: *projectDir,
		DistName:   *dist,
		Shape:      sharedir.Shape(*shape),
		Log:        log,
	})

	dirFn, fileFn, err := sharedir.Build(opts)
	if err != nil {
		fmt.Fprintf(stderr, "sharedirq: %v\n", err)
		return 2
	}

	dirArgs, fileArgs := callArgs(opts.DistName, *dist, *file)

	v, err := dirFn(dirArgs...)
	if err != nil {
		fmt.Fprintf(stderr, "sharedirq: dir: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "dir: %s\n", v)

	if *file != "" {
		fv, ok, err := fileFn(fileArgs...)
		switch {
		case err != nil:
			fmt.Fprintf(stderr, "sharedirq: file: %v\n", err)
			return 1
		case !ok:
			fmt.Fprintf(stdout, "file: %s: absent\n", *file)
		default:
			fmt.Fprintf(stdout, "file: %s\n", fv)
		}
	}
	return 0
}

// callArgs assembles the accessor argument lists for the binding in effect.
// boundDist is the distribution name after defaults merging; flagDist is the
// raw -dist flag used when the accessors are unbound.
func callArgs(boundDist, flagDist, file string) (dirArgs, fileArgs []string) {
	if boundDist != "" {
		return nil, []string{file}
	}
	return []string{flagDist}, []string{flagDist, file}
}
