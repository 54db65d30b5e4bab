package cfexport

import (
	"github.com/spf13/cobra"

	"github.com/jongio/garage-core/cliout"
)

// NewEnvCommand creates the `env <app>` command backed by exporter.
func NewEnvCommand(exporter *Exporter) *cobra.Command {
	var opts Options
	cmd := &cobra.Command{
		Use:   "env <app>",
		Short: "Save environment from Cloud Foundry to a file for use when running locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := exporter.Export(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			for _, f := range files {
				cliout.Success("Saved %s", f)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&opts.JSON, "json", "j", false, "save just VCAP_SERVICES as JSON, instead of creating a .env file")
	cmd.Flags().BoolVarP(&opts.User, "user", "u", false, "include user-provided environment variables (cannot be used with --json)")
	cmd.Flags().BoolVarP(&opts.Script, "script", "s", false, "create an env.sh script to initialize the environment")
	cmd.Flags().StringVarP(&opts.Filename, "filename", "f", "", "output filename (default is .env or services.json)")
	cmd.MarkFlagsMutuallyExclusive("json", "user")
	return cmd
}
