package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/vk/kmpgraph/internal/app"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// options collects flag values shared by every command.
type options struct {
	format    string
	output    string
	logLevel  string
	logFormat string

	listen    string
	watch     bool
	debounce  time.Duration
	cacheSize int

	url     string
	timeout time.Duration
}

// Execute runs the command line in args. Command output goes to outW, logs
// and usage text to errW. Every returned error is an *ExitError.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	slog.Debug("CLI parser started.")
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	// Anything cobra returns on its own is a usage problem.
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}

// NewRootCommand builds the kmpgraph command tree.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "kmpgraph",
		Short: "Inspect source-set relations of a multiplatform build",
		Long: `kmpgraph loads a multiplatform build model (source sets, targets and
their compilations) from HCL or YAML files and answers questions about it:
which source sets a set depends on, transitively, which compilations
include a source set, and which source sets a compilation compiles.

Environment:
  KMPGRAPH_FORMAT, KMPGRAPH_OUTPUT, KMPGRAPH_LOG_LEVEL, KMPGRAPH_LOG_FORMAT,
  KMPGRAPH_LISTEN, KMPGRAPH_WATCH, KMPGRAPH_URL provide defaults for the
  matching flags.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&opts.format, "format", envOr("KMPGRAPH_FORMAT", app.FormatAuto), "Configuration format. Options: 'auto', 'hcl' or 'yaml'.")
	pf.StringVarP(&opts.output, "output", "o", envOr("KMPGRAPH_OUTPUT", "text"), "Output format. Options: 'text', 'json' or 'hcl' (export only).")
	pf.StringVar(&opts.logLevel, "log-level", envOr("KMPGRAPH_LOG_LEVEL", "warn"), "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&opts.logFormat, "log-format", envOr("KMPGRAPH_LOG_FORMAT", "text"), "Log output format. Options: 'text' or 'json'.")

	root.AddCommand(
		newCheckCommand(opts, outW, errW),
		newQueryCommand(opts, outW, errW),
		newExportCommand(opts, outW, errW),
		newServeCommand(opts, outW, errW),
		newRemoteCommand(opts, outW, errW),
	)
	return root
}

// run validates the configuration, builds the app and hands it to fn.
func run(cmd *cobra.Command, outW, errW io.Writer, cfg app.Config, fn func(context.Context, *app.App) error) error {
	validated, err := app.NewConfig(cfg)
	if err != nil {
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("CLI parameter validation complete.", "command", cmd.Name())

	a := app.NewApp(outW, errW, validated)
	if err := fn(a.Context(cmd.Context()), a); err != nil {
		return exitError(err)
	}
	return nil
}

// exitError maps application errors to exit codes.
func exitError(err error) *ExitError {
	code := ExitFailure
	if errors.Is(err, app.ErrInvalidConfig) || errors.Is(err, app.ErrInvalidQuery) {
		code = ExitUsage
	}
	return &ExitError{Code: code, Message: err.Error()}
}

// usageArgs marks argument count errors as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &ExitError{Code: ExitUsage, Message: err.Error()}
		}
		return nil
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func (o *options) config(paths []string) app.Config {
	return app.Config{
		ConfigPaths:   paths,
		Format:        o.format,
		Output:        o.output,
		LogFormat:     o.logFormat,
		LogLevel:      o.logLevel,
		ListenAddr:    o.listen,
		CacheSize:     o.cacheSize,
		Watch:         o.watch,
		Debounce:      o.debounce,
		RemoteURL:     o.url,
		RemoteTimeout: o.timeout,
	}
}
