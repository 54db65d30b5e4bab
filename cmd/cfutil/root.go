package main

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jongio/garage-core/appenv"
	"github.com/jongio/garage-core/cfexport"
	"github.com/jongio/garage-core/cliout"
	"github.com/jongio/garage-core/cloudenv"
	"github.com/jongio/garage-core/logutil"
	versionpkg "github.com/jongio/garage-core/version"
)

// errShowHelp is returned after printing help for a bare invocation.
var errShowHelp = errors.New("no command given")

// deps are the collaborators commands run against.
type deps struct {
	app    *appenv.Context
	runner cfexport.CommandRunner
}

func newRootCmd(d deps, logOutput io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CFUTIL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	exporter := &cfexport.Exporter{Runner: d.runner}
	resolver := cloudenv.NewResolver(d.app)

	root := &cobra.Command{
		Use:   "cfutil",
		Short: "Cloud Foundry utilities for running apps locally",
		Long: `cfutil saves the environment of a Cloud Foundry app to a local file and
shows the service credentials an app would resolve from it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cliout.SetFormat(v.GetString("output")); err != nil {
				return err
			}
			if v.GetBool("no-color") {
				cliout.NoColor()
			}

			debug := v.GetBool("debug")
			logutil.SetupLoggerWithWriter(logOutput, debug, false)
			if !debug {
				logutil.SetLevel(logutil.LevelWarn)
			}

			exporter.CF = v.GetString("cf")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errShowHelp
		},
	}

	flags := root.PersistentFlags()
	flags.StringP("output", "o", "table", "output format (table, json, yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("cf", "", "path to the cf executable (default cf from PATH)")
	flags.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})

	info := versionpkg.New("cfutil")
	info.Version, info.GitCommit, info.BuildDate = version, commit, date

	root.AddCommand(cfexport.NewEnvCommand(exporter))
	root.AddCommand(newServicesCmd(d.app, resolver))
	root.AddCommand(newCredsCmd(d.app, resolver))
	root.AddCommand(newTimeCmd())
	root.AddCommand(versionpkg.NewCommand(info.WithApp(d.app)))
	return root
}

// loadDotEnv makes a saved .env visible to the resolver. Failure only
// costs the fallback, so it is logged.
func loadDotEnv(app *appenv.Context) {
	if err := app.LoadDotEnv(); err != nil {
		logutil.Warn("ignoring .env", "error", err)
	}
}
