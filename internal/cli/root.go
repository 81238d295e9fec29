// Package cli implements the apidoc command line.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tessro/apidoc/internal/config"
	"github.com/tessro/apidoc/internal/docsite"
	"github.com/tessro/apidoc/internal/failure"
	"github.com/tessro/apidoc/internal/logging"
	"github.com/tessro/apidoc/internal/report"
	"github.com/tessro/apidoc/internal/runner"
	"github.com/tessro/apidoc/internal/update"
	"github.com/tessro/apidoc/internal/version"
)

const usageTemplate = `@header@Usage:@c
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]

@header@Commands:@c{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  @value@{{rpad .Name .NamePadding}}@c {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

@header@Options:@c
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

@header@Global options:@c
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`

// app holds what one invocation shares between its commands.
type app struct {
	out     *report.Printer
	updates update.Source
	code    int
}

func newApp(w io.Writer) *app {
	return &app{
		out:     report.New(w),
		updates: update.NewHTTPSource(),
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   version.Name,
		Short: "API documentation generator",
		Long:  "apidoc generates an HTML API reference from Markdown reference pages.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.run(cmd, false)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	config.RegisterFlags(cmd.Flags())
	cmd.SetUsageTemplate(usageTemplate)
	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		a.run(cmd, true)
	})
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return failure.Mark(failure.KindConfig, err)
	})

	cmd.AddCommand(newVersionCmd(a))
	return cmd
}

// run drives one documentation run. With help set only the help text of cmd
// is printed.
func (a *app) run(cmd *cobra.Command, help bool) {
	r := &runner.Runner{
		Out:           a.out,
		Header:        version.Header(),
		Help:          cmd.UsageString(),
		Version:       version.Version,
		Updates:       a.updates,
		UpdateTimeout: update.DefaultTimeout,
		NewGenerator:  newGenerator,
		SetupLogging:  logging.ForSettings,
	}
	res := config.NewResolver(cmd.Flags())
	res.ForceHelp = help

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a.code = r.Run(ctx, res)
}

// execute runs cmd with args and returns the process exit code.
func (a *app) execute(ctx context.Context, cmd *cobra.Command, args []string) int {
	a.code = runner.ExitSuccess
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		return runner.ReportFailure(a.out, failure.Mark(failure.KindConfig, err), nil, version.Header(), cmd.UsageString())
	}
	return a.code
}

func newGenerator(s *config.Settings) (runner.Generator, error) {
	g, err := docsite.New(docsite.Options{
		Sources:        s.Source,
		Exclude:        s.Exclude,
		Destination:    s.Destination,
		TemplateConfig: s.TemplateConfig,
		SkipDocPath:    s.SkipDocPath,
		SkipDocPrefix:  s.SkipDocPrefix,
		Title:          s.Title,
		BaseURL:        s.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Execute runs apidoc with the process arguments and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(os.Stdout)
	return a.execute(ctx, newRootCmd(a), os.Args[1:])
}
