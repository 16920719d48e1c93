package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vk/kmpgraph/internal/app"
	"github.com/vk/kmpgraph/internal/buildmodel"
	"github.com/vk/kmpgraph/internal/server"
	"github.com/vk/kmpgraph/internal/watch"
)

var kindHelp = "Query kinds:\n  " + strings.Join(buildmodel.KindNames(), "\n  ")

func newCheckCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "check PATH...",
		Short: "Load and validate the build model",
		Long: `Load every configuration file under the given paths, validate names,
references and depends-on cycles, and print a summary.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, outW, errW, opts.config(args), func(ctx context.Context, a *app.App) error {
				return a.Check(ctx)
			})
		},
	}
}

func newQueryCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "query KIND NAME PATH...",
		Short: "Answer one relation query",
		Long: `Answer one relation query about a source set, or about a compilation
given as TARGET/NAME for the source-sets kind.

` + kindHelp + `

Examples:
  kmpgraph query depends-on-closure linuxX64Main ./build
  kmpgraph query source-sets jvm/main ./build -o json`,
		Args: usageArgs(cobra.MinimumNArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, outW, errW, opts.config(args[2:]), func(ctx context.Context, a *app.App) error {
				return a.Query(ctx, args[0], args[1])
			})
		},
	}
}

func newExportCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "export PATH...",
		Short: "Print every resolved relation",
		Long: `Print every source set with its direct and transitive dependencies,
dependents and compilations, and every compilation with its source sets.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, outW, errW, opts.config(args), func(ctx context.Context, a *app.App) error {
				return a.Export(ctx)
			})
		},
	}
}

func newServeCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve PATH...",
		Short: "Serve relation queries over HTTP and socket.io",
		Long: `Serve the build model:
  GET /health
  GET /v1/snapshot
  GET /v1/query?kind=KIND&name=NAME
  GET /metrics
  socket.io event "query" (KIND, NAME) at /socket.io/

With --watch the configuration is reloaded when its files change.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, outW, errW, opts.config(args), func(ctx context.Context, a *app.App) error {
				return a.Serve(ctx)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.listen, "listen", envOr("KMPGRAPH_LISTEN", ":8080"), "Address to listen on.")
	f.BoolVar(&opts.watch, "watch", envBool("KMPGRAPH_WATCH", false), "Reload the model when configuration files change.")
	f.DurationVar(&opts.debounce, "debounce", watch.DefaultDebounce, "Quiet period before a change triggers a reload.")
	f.IntVar(&opts.cacheSize, "cache-size", server.DefaultCacheSize, "Number of query results to cache.")
	return cmd
}

func newRemoteCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote KIND NAME",
		Short: "Ask a running server for one relation query",
		Long: `Ask a kmpgraph server for one relation query over socket.io.

` + kindHelp,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, outW, errW, opts.config(nil), func(ctx context.Context, a *app.App) error {
				return a.Remote(ctx, args[0], args[1])
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.url, "url", envOr("KMPGRAPH_URL", "http://localhost:8080"), "Server URL.")
	f.DurationVar(&opts.timeout, "timeout", 10*time.Second, "Time to wait for the answer.")
	return cmd
}
