// Package cli contains the visafrontend command tree.
package cli

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Sairam-Chetpelly/visafrontend/internal/app"
	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
	"github.com/Sairam-Chetpelly/visafrontend/internal/infrastructure/config"
	"github.com/Sairam-Chetpelly/visafrontend/pkg/logger"
)

var version = "dev"

// SetVersion sets the version string reported by --version.
func SetVersion(v string) {
	version = v
}

// globals are the persistent flags shared by every command.
type globals struct {
	profile   string
	backend   string
	verbose   bool
	noColor   bool
	ephemeral bool

	cfg     *config.Config
	log     zerolog.Logger
	printer *Printer
	in      io.Reader
}

// Run executes the command tree with args and returns the process exit code.
// Errors are printed to errOut.
func Run(args []string, in io.Reader, out, errOut io.Writer) int {
	root, g := newRootCommand(in, out, errOut)
	root.SetArgs(args)

	err := root.Execute()
	if err != nil {
		p := g.printer
		if p == nil {
			p = NewPrinter(out, errOut, g.noColor)
		}
		p.Error("%s", err)
	}
	return ExitCode(err)
}

// NewRootCommand builds the command tree writing to out and errOut.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	root, _ := newRootCommand(in, out, errOut)
	return root
}

func newRootCommand(in io.Reader, out, errOut io.Writer) (*cobra.Command, *globals) {
	g := &globals{in: in}

	root := &cobra.Command{
		Use:   "visafrontend",
		Short: "Visa application front-end",
		Long: `visafrontend serves the sign-in, sign-up and dashboard views of the visa
application portal and keeps the user's session between runs.

Example usage:
  visafrontend serve                       # Serve the web views on HTTP_ADDR
  visafrontend login --email a@b.com       # Sign in from the terminal
  visafrontend status                      # Show the stored session
  visafrontend logout                      # Clear the stored session`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.init(cmd.Context(), out, errOut)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&g.profile, "profile", "", "session profile (overrides SESSION_PROFILE)")
	root.PersistentFlags().StringVar(&g.backend, "backend", "", "session backend: file, redis, mongo or memory (overrides SESSION_BACKEND)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVar(&g.ephemeral, "ephemeral", false, "keep the session in memory for this run only")

	root.AddCommand(
		newServeCommand(g),
		newLoginCommand(g),
		newRegisterCommand(g),
		newLogoutCommand(g),
		newStatusCommand(g),
	)
	return root, g
}

func (g *globals) init(ctx context.Context, out, errOut io.Writer) error {
	g.printer = NewPrinter(out, errOut, g.noColor)

	cfg, err := config.Load(ctx)
	if err != nil {
		return &configError{err: err}
	}
	if g.profile != "" {
		cfg.Session.Profile = g.profile
	}
	if g.backend != "" {
		cfg.Session.Backend = g.backend
	}
	if err := cfg.Validate(); err != nil {
		return &configError{err: err}
	}
	g.cfg = cfg

	level := cfg.LogLevel
	if g.verbose {
		level = "debug"
	}
	g.log = logger.Init(logger.Options{
		Level:   level,
		Pretty:  cfg.LogPretty || !cfg.IsProduction(),
		NoColor: g.noColor,
		Output:  errOut,
	})
	g.log.Debug().
		Str("profile", cfg.Session.Profile).
		Str("backend", cfg.Session.Backend).
		Str("api", cfg.API.BaseURL).
		Msg("configuration loaded")
	return nil
}

// open assembles the application with navigation reported through navigate.
func (g *globals) open(ctx context.Context, navigate func(domain.Route)) (*app.App, error) {
	opts := app.Options{Ephemeral: g.ephemeral}
	if navigate != nil {
		opts.Navigate = func(_ context.Context, route domain.Route) { navigate(route) }
	}
	return app.New(ctx, g.cfg, g.log, opts)
}
