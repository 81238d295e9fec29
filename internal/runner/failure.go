package runner

import (
	"github.com/tessro/apidoc/internal/config"
	"github.com/tessro/apidoc/internal/failure"
	"github.com/tessro/apidoc/internal/report"
)

// ReportFailure prints err and returns ExitFailure.
//
// Configuration failures are framed by the header and the help text. With
// debug settings every message of the cause chain is printed, outermost
// first, followed by the deepest stack trace; otherwise only the outermost
// message is shown. s is nil when the settings could not be resolved.
func ReportFailure(out *report.Printer, err error, s *config.Settings, header, help string) int {
	isConfig := failure.IsConfig(err)
	if isConfig {
		out.Print(header)
	}

	chain := failure.Chain(err)
	if len(chain) == 0 {
		chain = []string{err.Error()}
	}

	if s != nil && s.Debug {
		for _, msg := range chain {
			out.Printf("\n@error@%s@c", msg)
		}
		out.Plain("\n\n" + failure.Stack(err) + "\n\n")
	} else {
		out.Printf("\n@error@%s@c\n\n", chain[0])
	}

	if isConfig {
		out.Print(help)
	}

	return ExitFailure
}
