// Package main implements the evconf command, a small inspector for
// evented configuration files: it parses a file and prints the resulting
// values, a single block, or a single key.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	evconf "github.com/cooper/evented-configuration"
	"github.com/cooper/evented-configuration/value"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	path     string
	format   string
	block    string
	key      string
	logLevel string
}

func run() int {
	opts := parseFlags()

	conf, err := evconf.New(opts.path, evconf.WithLogger(newLogger(opts.logLevel)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := conf.Parse(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	switch {
	case opts.key != "":
		if opts.block == "" {
			fmt.Fprintln(os.Stderr, "Error: -key requires -block")
			return 1
		}
		v, ok := conf.Get(parseBlock(opts.block), opts.key)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: key %q is not set in block %s\n", opts.key, opts.block)
			return 1
		}
		fmt.Println(v.Text())

	case opts.block != "":
		b := parseBlock(opts.block)
		if !conf.HasBlock(b) {
			fmt.Fprintf(os.Stderr, "Error: block %s holds no keys\n", b)
			return 1
		}
		if err := render(os.Stdout, opts.format, nativeEntries(conf.Entries(b))); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}

	default:
		if err := render(os.Stdout, opts.format, fullDump(conf)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	return 0
}

// parseBlock reads a -block argument: "type:name" for a typed block,
// anything without a colon for an unnamed one.
func parseBlock(s string) evconf.Block {
	if typ, name, ok := strings.Cut(s, ":"); ok {
		return evconf.Named(strings.TrimSpace(typ), strings.TrimSpace(name))
	}
	return evconf.Section(strings.TrimSpace(s))
}

func nativeEntries(entries map[string]value.Value) map[string]any {
	out := make(map[string]any, len(entries))
	for k, v := range entries {
		out[k] = v.Native()
	}
	return out
}

// fullDump collects every stored value as blockType -> blockName -> key.
func fullDump(conf *evconf.Config) map[string]any {
	out := make(map[string]any)
	for _, typ := range conf.Store().BlockTypes() {
		names := make(map[string]any)
		for _, name := range conf.Names(typ) {
			names[name] = nativeEntries(conf.Entries(evconf.Named(typ, name)))
		}
		out[typ] = names
	}
	return out
}

func render(w io.Writer, format string, v any) error {
	var (
		b   []byte
		err error
	)
	switch format {
	case "json":
		b, err = json.MarshalIndent(v, "", "  ")
		b = append(b, '\n')
	case "yaml":
		b, err = yaml.Marshal(v)
	case "toml":
		b, err = toml.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("rendering %s: %w", format, err)
	}
	_, err = w.Write(b)
	return err
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.format, "format", "json", "Output format (json, yaml, toml)")
	flag.StringVar(&opts.format, "f", "json", "Output format (shorthand)")
	flag.StringVar(&opts.block, "block", "", "Limit output to one block, \"type:name\" or \"name\"")
	flag.StringVar(&opts.block, "b", "", "Limit output to one block (shorthand)")
	flag.StringVar(&opts.key, "key", "", "Print a single key's value literal; requires -block")
	flag.StringVar(&opts.key, "k", "", "Print a single key's value literal (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "evconf - inspect evented configuration files\n\n")
		fmt.Fprintf(os.Stderr, "Usage: evconf [options] <file>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  evconf app.conf                          Dump every block as JSON\n")
		fmt.Fprintf(os.Stderr, "  evconf -f yaml app.conf                  Dump as YAML\n")
		fmt.Fprintf(os.Stderr, "  evconf -b limits app.conf                Dump one unnamed block\n")
		fmt.Fprintf(os.Stderr, "  evconf -b cookies:sugar -k favorite app.conf\n")
		fmt.Fprintf(os.Stderr, "                                           Print one value literal\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("evconf %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.format {
	case "json", "yaml", "toml":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid format %q (must be json, yaml, or toml)\n", opts.format)
		os.Exit(1)
	}

	switch opts.logLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	opts.path = flag.Arg(0)

	return opts
}
