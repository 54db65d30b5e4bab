package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jongio/garage-core/appenv"
	"github.com/jongio/garage-core/cliout"
	"github.com/jongio/garage-core/cloudenv"
)

type credsOptions struct {
	specType string
	label    string
	name     string
	required bool
}

func newCredsCmd(app *appenv.Context, resolver *cloudenv.Resolver) *cobra.Command {
	var opts credsOptions
	cmd := &cobra.Command{
		Use:   "creds",
		Short: "Resolve the credentials of one service",
		Long: `Resolve credentials the way an app does. Label and name match exactly,
or as a regular expression when written as /expr/. With --type env the
name is an environment variable holding a JSON object.`,
		Example: `  cfutil creds --label p-mysql
  cfutil creds --name /orders-.*/ -o json
  cfutil creds --type env --name DB_CREDS`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := opts.spec()
			if err != nil {
				return err
			}

			loadDotEnv(app)
			creds, err := resolver.ServiceCreds(opts.required, spec)
			if err != nil {
				return err
			}
			if creds == nil {
				cliout.Warning("No service matches %s", spec)
				return nil
			}

			return cliout.Print(creds, func() error {
				keys := credentialKeys(creds)
				rows := make([][]string, 0, len(keys))
				for _, k := range keys {
					rows = append(rows, []string{k, display(creds[k])})
				}
				return cliout.Table([]string{"Key", "Value"}, rows)
			})
		},
	}
	cmd.Flags().StringVarP(&opts.specType, "type", "t", "", "credential source: cf or env (default cf when a descriptor exists)")
	cmd.Flags().StringVarP(&opts.label, "label", "l", "", "service label")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "service instance name, or environment variable with --type env")
	cmd.Flags().BoolVar(&opts.required, "required", false, "fail when no service matches")
	return cmd
}

func (o credsOptions) spec() (cloudenv.Spec, error) {
	label, err := matcher(o.label)
	if err != nil {
		return cloudenv.Spec{}, err
	}
	name, err := matcher(o.name)
	if err != nil {
		return cloudenv.Spec{}, err
	}
	return cloudenv.Spec{Type: cloudenv.SpecType(o.specType), Label: label, Name: name}, nil
}

// display renders a credential value for a table cell.
func display(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case map[string]any, []any:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Sprint(v)
		}
		return strings.TrimSuffix(buf.String(), "\n")
	default:
		return fmt.Sprint(v)
	}
}
