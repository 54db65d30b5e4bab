// Command cfutil saves a Cloud Foundry app's environment for local runs and
// inspects the services descriptor the credential resolver sees.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jongio/garage-core/appenv"
	"github.com/jongio/garage-core/cfexport"
	"github.com/jongio/garage-core/cliout"
	"github.com/jongio/garage-core/httperr"
)

// Set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// The application is the one in the working directory, not the one
	// cfutil was built from.
	opts := appenv.Options{}
	if wd, err := os.Getwd(); err == nil {
		opts.ModuleDir = wd
	}
	d := deps{app: appenv.New(opts), runner: cfexport.ExecRunner{}}
	os.Exit(run(os.Args[1:], d, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, d deps, stdout, stderr io.Writer) int {
	restore := cliout.SetOutput(stdout)
	defer restore()

	root := newRootCmd(d, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		if !errors.Is(err, errShowHelp) {
			fmt.Fprintln(stderr, httperr.StackWithCause(err))
		}
		return 1
	}
	return 0
}
