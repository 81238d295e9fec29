// Package runner drives a documentation run through its phases and reports
// the failure that ends it, if any.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/tessro/apidoc/internal/config"
	"github.com/tessro/apidoc/internal/failure"
	"github.com/tessro/apidoc/internal/report"
	"github.com/tessro/apidoc/internal/update"
	"github.com/tessro/apidoc/internal/usage"
)

// Process exit codes.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// PhaseResult holds the counts produced by the parse phase: found classes,
// constants, functions and internal classes, followed by the documented
// subset of each in the same order.
type PhaseResult [8]int

// Found returns the found counts.
func (r PhaseResult) Found() [4]int {
	return [4]int{r[0], r[1], r[2], r[3]}
}

// Documented returns the documented counts.
func (r PhaseResult) Documented() [4]int {
	return [4]int{r[4], r[5], r[6], r[7]}
}

// Validate checks that no count is negative and no documented count exceeds
// the matching found count.
func (r PhaseResult) Validate() error {
	found, doc := r.Found(), r.Documented()
	for i := range found {
		if found[i] < 0 || doc[i] < 0 {
			return fmt.Errorf("negative count at position %d", i)
		}
		if doc[i] > found[i] {
			return fmt.Errorf("documented count %d exceeds found count %d at position %d", doc[i], found[i], i)
		}
	}
	return nil
}

// Generator is the documentation backend the runner drives.
type Generator interface {
	// Parse scans the sources and counts what will be documented.
	Parse(ctx context.Context) (PhaseResult, error)
	// WipeOutDestination empties the destination directory.
	WipeOutDestination() bool
	// Generate writes the documentation.
	Generate(ctx context.Context) error
}

// Resolver produces the settings of a run.
type Resolver interface {
	Resolve() (*config.Settings, error)
}

// Runner executes one documentation run.
type Runner struct {
	Out *report.Printer
	// Header is printed before progress and before configuration errors.
	Header string
	// Help is printed on request and after configuration errors.
	Help    string
	Version string

	// Updates is asked for the latest release; nil disables the check.
	Updates       update.Source
	UpdateTimeout time.Duration

	NewGenerator func(*config.Settings) (Generator, error)

	// SetupLogging configures logging once settings are known. It returns
	// a function releasing the log output.
	SetupLogging func(*config.Settings) (func(), error)

	// PeakMemory defaults to usage.PeakMemory.
	PeakMemory func() uint64
}

// Run executes every phase in order and returns the process exit code.
func (r *Runner) Run(ctx context.Context, res Resolver) int {
	timer := usage.StartTimer()

	s, err := res.Resolve()
	if err != nil {
		return r.fail(failure.Mark(failure.KindConfig, err), nil)
	}
	if !s.Colors {
		r.Out.Color = false
	}

	if s.IsHelpRequested() {
		r.Out.Print(r.Header)
		r.Out.Print(r.Help)
		return ExitSuccess
	}

	if err := r.run(ctx, s, timer); err != nil {
		return r.fail(err, s)
	}
	return ExitSuccess
}

func (r *Runner) run(ctx context.Context, s *config.Settings, timer *usage.Timer) error {
	if r.SetupLogging != nil {
		cleanup, err := r.SetupLogging(s)
		if err != nil {
			return failure.Wrap(failure.KindConfig, err, "Cannot set up logging")
		}
		defer cleanup()
	}
	log := slog.Default().With("run_id", uuid.NewString())
	log.Debug("settings resolved", "config_file", s.ConfigFile, "debug", s.Debug)

	r.Out.Print(r.Header)

	gen, err := r.NewGenerator(s)
	if err != nil {
		return failure.Mark(failure.KindRuntime, err)
	}

	if s.UpdateCheck && r.Updates != nil {
		if latest, ok := update.Check(ctx, r.Updates, r.Version, r.UpdateTimeout); ok {
			r.Out.Printf("New version @header@%s@c available\n\n", latest)
		}
	}

	r.Out.List("Scanning", s.Source)
	r.Out.List("Excluding", s.Exclude)

	log.Debug("parsing", "sources", len(s.Source))
	result, err := gen.Parse(ctx)
	if err != nil {
		return failure.Mark(failure.KindRuntime, err)
	}
	if err := result.Validate(); err != nil {
		return failure.Wrap(failure.KindRuntime, err, "Parser returned inconsistent counts")
	}
	found, doc := result.Found(), result.Documented()
	r.Out.Printf("Found @count@%d@c classes, @count@%d@c constants, @count@%d@c functions and other @count@%d@c used internal classes\n",
		found[0], found[1], found[2], found[3])
	r.Out.Printf("Documentation for @count@%d@c classes, @count@%d@c constants, @count@%d@c functions and other @count@%d@c used internal classes will be generated\n",
		doc[0], doc[1], doc[2], doc[3])

	r.Out.Printf("Using template config file @value@%s@c\n", s.TemplateConfig)

	if s.Wipeout && isDir(s.Destination) {
		r.Out.Print("Wiping out destination directory\n")
		if !gen.WipeOutDestination() {
			return failure.Runtime("Cannot wipe out destination directory")
		}
	}

	r.Out.Printf("Generating to directory @value@%s@c\n", s.Destination)
	r.Out.List("Will not generate documentation for", s.SkipRules())

	log.Debug("generating", "destination", s.Destination)
	if err := gen.Generate(ctx); err != nil {
		return failure.Mark(failure.KindRuntime, err)
	}

	peak := r.PeakMemory
	if peak == nil {
		peak = usage.PeakMemory
	}
	r.Out.Printf("Done. Total time: @count@%d@c seconds, used: @count@%d@c MB RAM\n",
		timer.Seconds(), usage.Megabytes(peak()))
	log.Info("run finished", "elapsed", timer.Elapsed())

	return nil
}

func (r *Runner) fail(err error, s *config.Settings) int {
	slog.Debug("run failed", "kind", failure.KindOf(err), "error", err)
	return ReportFailure(r.Out, err, s, r.Header, r.Help)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
