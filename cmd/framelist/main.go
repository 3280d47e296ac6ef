package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/framelist/internal/app"
	"github.com/five82/framelist/internal/config"
	"github.com/five82/framelist/internal/objlist"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand(app.Run).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "framelist: %v\n", err)
		return 1
	}
	return 0
}

type rootFlags struct {
	configPath  string
	prefsPath   string
	server      string
	job         string
	frame       int
	pollSeconds int
	ordering    string
	filters     []string
	demo        bool
	debug       bool
}

// newRootCommand builds the CLI. runApp is app.Run outside of tests.
func newRootCommand(runApp func(context.Context, app.Options) error) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "framelist",
		Short: "browse and bulk-edit the annotated objects of a labeling job frame",
		Example: `
framelist --job 42 --frame 10
framelist --demo
framelist --filter 'label==car' --filter 'width>50' --ordering updated
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			return runApp(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "config file path (default ~/.config/framelist/config.toml)")
	f.StringVar(&flags.prefsPath, "prefs", "", "preferences file path (default ~/.config/framelist/prefs.toml)")
	f.StringVar(&flags.server, "server", "", "session server address")
	f.StringVar(&flags.job, "job", "", "labeling job to open")
	f.IntVar(&flags.frame, "frame", 0, "frame to open")
	f.IntVar(&flags.pollSeconds, "poll", 0, "refresh interval in seconds")
	f.StringVar(&flags.ordering, "ordering", "", "list ordering: id-ascent, id-descent or updated")
	f.StringArrayVar(&flags.filters, "filter", nil, "filter expression, repeat for more (replaces configured filters)")
	f.BoolVar(&flags.demo, "demo", false, "use an in-memory demo job instead of a server")
	f.BoolVar(&flags.debug, "debug", false, "write debug logs")

	return cmd
}

// options loads the config file and applies the flags that were set on top.
func (f rootFlags) options(cmd *cobra.Command) (app.Options, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return app.Options{}, err
	}

	changed := cmd.Flags().Changed
	if changed("server") {
		cfg.Server = f.server
	}
	if changed("job") {
		cfg.Job = objlist.Session(f.job)
	}
	if changed("frame") {
		if f.frame < 0 {
			return app.Options{}, fmt.Errorf("--frame must not be negative, got %d", f.frame)
		}
		cfg.Frame = f.frame
	}
	if changed("poll") {
		if f.pollSeconds <= 0 {
			return app.Options{}, fmt.Errorf("--poll must be positive, got %d", f.pollSeconds)
		}
		cfg.Poll = time.Duration(f.pollSeconds) * time.Second
	}
	if changed("filter") {
		cfg.Filters = f.filters
	}
	if changed("demo") {
		cfg.Demo = f.demo
	}

	opts := app.Options{
		Config:    cfg,
		PrefsPath: f.prefsPath,
		Debug:     f.debug,
	}
	if changed("ordering") {
		ordering, err := objlist.ParseOrdering(f.ordering)
		if err != nil {
			return app.Options{}, fmt.Errorf("--ordering: %w", err)
		}
		opts.Config.Ordering = ordering
		opts.OrderingOverride = true
	}
	return opts, nil
}
