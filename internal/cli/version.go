package cli

import (
	"github.com/spf13/cobra"
	"github.com/tessro/apidoc/internal/version"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print the version, commit, and build date of apidoc.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a.out.Printf("@header@%s@c %s (commit: %s, built: %s)\n",
				version.Name, version.Version, version.Commit, version.Date)
		},
	}
}
