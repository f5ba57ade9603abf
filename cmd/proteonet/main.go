// SPDX-License-Identifier: MIT

// Command proteonet imports, inspects, aggregates, exports and projects
// persisted proteomics datasets.
//
// Usage:
//
//	proteonet [-config file.yaml] <command> [flags]
//
// Commands:
//
//	import         read a long table into a stored dataset
//	import-tables  read one table per molecule type into a stored dataset
//	info           summarize a stored dataset
//	aggregate      aggregate partner values onto a molecule type and store the result
//	export         write wide TSV tables
//	graph          build per-sample node tensors and report their shapes
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/katalvlaran/proteonet/blob"
	"github.com/katalvlaran/proteonet/config"
	"github.com/katalvlaran/proteonet/logging"
	"github.com/katalvlaran/proteonet/molecule"
)

const metricsNamespace = "proteonet"

var exitFunc = os.Exit

// app carries what every command needs.
type app struct {
	cfg     config.Config
	log     *zap.Logger
	store   blob.Store
	reg     *prometheus.Registry
	metrics *molecule.CacheMetrics
	stdout  io.Writer
	stderr  io.Writer
}

type command struct {
	name  string
	short string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{"import", "read a long table into a stored dataset", runImport},
	{"import-tables", "read one table per molecule type into a stored dataset", runImportTables},
	{"info", "summarize a stored dataset", runInfo},
	{"aggregate", "aggregate partner values onto a molecule type", runAggregate},
	{"export", "write wide TSV tables", runExport},
	{"graph", "build per-sample node tensors", runGraph},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	exitFunc(code)
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "usage: proteonet [-config file.yaml] <command> [flags]")
	fs.PrintDefaults()
	fmt.Fprintln(w, "commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.short)
	}
}

// cli runs one command and returns the process exit code.
func cli(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("proteonet", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "YAML configuration file")
	fs.Usage = func() { usage(stderr, fs) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		usage(stderr, fs)
		return 2
	}
	i := slices.IndexFunc(commands, func(c command) bool { return c.name == fs.Arg(0) })
	if i < 0 {
		fmt.Fprintf(stderr, "unknown command %q\n", fs.Arg(0))
		usage(stderr, fs)
		return 2
	}

	a, err := setup(ctx, *cfgPath, stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "proteonet:", err)
		return 1
	}
	defer func() { _ = a.log.Sync() }()

	if err = commands[i].run(ctx, a, fs.Args()[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprintln(stderr, "proteonet:", err)
			return 2
		}
		a.log.Error("command failed", zap.String("command", commands[i].name), zap.Error(err))
		fmt.Fprintln(stderr, "proteonet:", err)
		return 1
	}

	return 0
}

func setup(ctx context.Context, cfgPath string, stdout, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	bs, err := blob.Open(ctx, cfg.Blob)
	if err != nil {
		return nil, err
	}
	reg := prometheus.NewRegistry()
	metrics, err := molecule.NewCacheMetrics(metricsNamespace, reg)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, log: log, store: bs, reg: reg, metrics: metrics, stdout: stdout, stderr: stderr}, nil
}

// setOptions returns the molecule.Set options derived from the configuration.
func (a *app) setOptions() []molecule.SetOption {
	return []molecule.SetOption{
		molecule.WithLogger(a.log),
		molecule.WithCacheSize(a.cfg.Graph.CacheSize),
		molecule.WithCacheMetrics(a.metrics),
	}
}

// usageError marks invalid command-line input.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

// flags returns a flag set for a command writing its usage to stderr.
func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("proteonet "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	return fs
}

// parse parses args, turning parse failures into usage errors.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usageError{msg: err.Error()}
	}
	if fs.NArg() > 0 {
		return usageError{msg: fmt.Sprintf("unexpected arguments: %v", fs.Args())}
	}

	return nil
}

func required(name, v string) error {
	if strings.TrimSpace(v) == "" {
		return usageError{msg: fmt.Sprintf("flag -%s is required", name)}
	}

	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
