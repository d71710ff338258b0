// Command okjson inspects model metadata and builds request option objects.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// CLI defines the command-line interface
type CLI struct {
	Debug  bool `help:"Enable debug logging." short:"d" env:"OKJSON_DEBUG"`
	Indent bool `help:"Pretty-print JSON output." env:"OKJSON_INDENT"`

	Inspect InspectCmd `cmd:"" help:"Show the kind and coercions of every model metadata value."`
	Options OptionsCmd `cmd:"" help:"Build a request options object from key=value pairs."`
	Schema  SchemaCmd  `cmd:"" help:"Print the JSON Schema of an API record."`
}

// Env is passed to every command's Run method.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Logger *slog.Logger
	Indent bool
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "okjson: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("okjson"),
		kong.Description("Inspect model metadata and build request options"),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	logger.Debug("running command", "command", ctx.Command())

	return ctx.Run(&Env{
		Stdin:  stdin,
		Stdout: stdout,
		Logger: logger,
		Indent: cli.Indent,
	})
}

// writeJSON writes v followed by a newline, sorting map keys.
func (env *Env) writeJSON(v any) error {
	opts := []json.Options{json.Deterministic(true)}
	if env.Indent {
		opts = append(opts, jsontext.WithIndent("  "))
	}
	b, err := json.Marshal(v, opts...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(env.Stdout, "%s\n", b)
	return err
}

// readInput reads the whole input file, or stdin if path is empty.
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" {
		return io.ReadAll(stdin)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return b, nil
}
