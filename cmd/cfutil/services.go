package main

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jongio/garage-core/appenv"
	"github.com/jongio/garage-core/cliout"
	"github.com/jongio/garage-core/cloudenv"
)

type serviceRow struct {
	Label       string   `json:"label" yaml:"label"`
	Name        string   `json:"name" yaml:"name"`
	Plan        string   `json:"plan,omitempty" yaml:"plan,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Credentials []string `json:"credentials,omitempty" yaml:"credentials,omitempty"`
}

type servicesView struct {
	Source   string       `json:"source" yaml:"source"`
	Services []serviceRow `json:"services" yaml:"services"`
}

// newServicesCmd lists bound services. Credential values are never shown,
// only their keys.
func newServicesCmd(app *appenv.Context, resolver *cloudenv.Resolver) *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the services an app would see",
		Long: `List the service instances in VCAP_SERVICES, or in services.json in the
application root when VCAP_SERVICES is not set. A .env file in the
application root is loaded first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loadDotEnv(app)
			services, source := resolver.Services()

			view := servicesView{Source: source.String(), Services: []serviceRow{}}
			for _, label := range services.Labels() {
				for _, inst := range services[label] {
					view.Services = append(view.Services, serviceRow{
						Label:       label,
						Name:        inst.Name,
						Plan:        inst.Plan,
						Tags:        inst.Tags,
						Credentials: credentialKeys(inst.Credentials),
					})
				}
			}

			return cliout.Print(view, func() error {
				if source == cloudenv.SourceNone {
					cliout.Warning("No VCAP_SERVICES or services.json found")
					return nil
				}
				cliout.Label("Source", view.Source)
				if len(view.Services) == 0 {
					cliout.Info("No services bound")
					return nil
				}
				rows := make([][]string, 0, len(view.Services))
				for _, s := range view.Services {
					rows = append(rows, []string{
						s.Label, s.Name, s.Plan,
						strings.Join(s.Tags, ", "),
						strings.Join(s.Credentials, ", "),
					})
				}
				return cliout.Table([]string{"Label", "Name", "Plan", "Tags", "Credentials"}, rows)
			})
		},
	}
}

func credentialKeys(creds cloudenv.Credentials) []string {
	keys := make([]string, 0, len(creds))
	for k := range creds {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// matcher parses a flag value. /expr/ is a regular expression; anything
// else matches exactly. Empty means unconstrained.
func matcher(value string) (cloudenv.Matcher, error) {
	if value == "" {
		return nil, nil
	}
	if len(value) > 2 && strings.HasPrefix(value, "/") && strings.HasSuffix(value, "/") {
		re, err := regexp.Compile(value[1 : len(value)-1])
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", value, err)
		}
		return cloudenv.Pattern{Re: re}, nil
	}
	return cloudenv.Exact(value), nil
}
