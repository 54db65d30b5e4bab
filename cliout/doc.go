// Package cliout provides structured output formatting for CLI commands.
//
// # Basic Usage
//
//	cliout.Success("Saved %s", path)
//	cliout.Error("Export failed: %s", err)
//	cliout.Warning("VCAP_SERVICES is set; services.json is ignored")
//	cliout.Info("Using %s", cfPath)
//
// # Output Formats
//
// The package supports three output formats:
//   - default: human-readable text and tables
//   - json: indented JSON for automation and scripting
//   - yaml: YAML for configuration files
//
//	if err := cliout.SetFormat(viper.GetString("output")); err != nil {
//	    return err
//	}
//	return cliout.Print(services, func() error {
//	    return cliout.Table([]string{"Label", "Name"}, rows)
//	})
//
// # Colors
//
// Colors and Unicode symbols are used when the output writer is a terminal
// and NO_COLOR is not set. ForceColor and NoColor override detection.
//
// # Testing
//
// SetOutput redirects everything the package prints:
//
//	var buf bytes.Buffer
//	restore := cliout.SetOutput(&buf)
//	defer restore()
package cliout
