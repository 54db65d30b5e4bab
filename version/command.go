package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jongio/garage-core/cliout"
)

// NewCommand creates a version command that displays info in the current
// cliout format.
func NewCommand(info *Info) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Display %s version information", info.Name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if quiet && cliout.GetFormat() == cliout.FormatDefault {
				cliout.Plain("%s", info.Version)
				return nil
			}

			return cliout.Print(info, func() error {
				cliout.Header(fmt.Sprintf("%s Version", info.Name))
				cliout.Label("Version", info.Version)
				cliout.Label("Build Date", info.BuildDate)
				cliout.Label("Git Commit", info.GitCommit)
				if info.AppVersion != "" {
					cliout.Label("App Version", info.AppVersion)
				}
				if info.Env != "" {
					cliout.Label("Environment", info.Env)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print version number")
	return cmd
}
