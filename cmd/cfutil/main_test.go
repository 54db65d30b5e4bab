package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jongio/garage-core/appenv"
	"github.com/jongio/garage-core/cliout"
	"github.com/jongio/garage-core/logutil"
	"github.com/jongio/garage-core/testutil"
)

const servicesJSON = `{
  "p-mysql": [
    {"name": "orders-db", "label": "p-mysql", "plan": "100mb", "tags": ["mysql"],
     "credentials": {"hostname": "10.0.0.5", "password": "s3cr3t", "port": 3306}}
  ],
  "p-redis": [
    {"name": "cache", "label": "p-redis", "credentials": {"host": "10.0.0.6"}}
  ]
}`

const cfEnvOutput = `Getting env variables for app orders in org acme / space dev as admin...
OK

System-Provided:
{
 "VCAP_SERVICES": {
  "p-mysql": [
   {
    "credentials": {
     "password": "s3cr3t"
    },
    "label": "p-mysql",
    "name": "orders-db"
   }
  ]
 }
}

No user-defined env variables have been set
`

type fakeRunner struct {
	calls []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	cmd := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, cmd)
	switch args[0] {
	case "-v":
		return []byte("cf version 8.7.10\n"), nil
	case "env":
		return []byte(cfEnvOutput), nil
	}
	return nil, errors.New("unexpected command: " + cmd)
}

type harness struct {
	tree   *testutil.AppTree
	root   string
	runner *fakeRunner
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("VCAP_SERVICES", "")
	t.Setenv(appenv.EnvDeployEnv, "")
	t.Cleanup(func() {
		_ = cliout.SetFormat("default")
		logutil.SetupLogger(false, false)
	})

	tree := testutil.NewAppTree(t)
	root := tree.Manifest("1.2.3", "app")
	return &harness{tree: tree, root: root, runner: &fakeRunner{}}
}

func (h *harness) run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	app := appenv.New(appenv.Options{
		ModuleDir: h.root,
		MainFile:  func() string { return "" },
	})

	var out, errOut bytes.Buffer
	code = run(args, deps{app: app, runner: h.runner}, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestNoArgsPrintsHelp(t *testing.T) {
	h := newHarness(t)

	code, stdout, stderr := h.run(t)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "services")
	assert.Empty(t, stderr)
}

func TestVersionJSON(t *testing.T) {
	h := newHarness(t)

	code, stdout, _ := h.run(t, "version", "-o", "json")
	require.Equal(t, 0, code)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, "cfutil", info["name"])
	assert.Equal(t, "dev", info["version"])
	assert.Equal(t, "1.2.3", info["appVersion"])
}

func TestInvalidOutputFormat(t *testing.T) {
	h := newHarness(t)

	code, _, stderr := h.run(t, "version", "-o", "xml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid output format: xml")
}

func TestServicesTable(t *testing.T) {
	h := newHarness(t)
	h.tree.File(servicesJSON, "app", "services.json")

	code, stdout, stderr := h.run(t, "services")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "file")
	for _, want := range []string{"p-mysql", "orders-db", "100mb", "hostname, password, port", "p-redis", "cache"} {
		assert.Contains(t, stdout, want)
	}
	assert.NotContains(t, stdout, "s3cr3t")
}

func TestServicesYAML(t *testing.T) {
	h := newHarness(t)
	h.tree.File(servicesJSON, "app", "services.json")

	code, stdout, _ := h.run(t, "services", "-o", "yaml")
	require.Equal(t, 0, code)

	var view servicesView
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &view))
	assert.Equal(t, "file", view.Source)
	require.Len(t, view.Services, 2)
	assert.Equal(t, "orders-db", view.Services[0].Name)
	assert.Equal(t, []string{"hostname", "password", "port"}, view.Services[0].Credentials)
	assert.Equal(t, "cache", view.Services[1].Name)
}

func TestServicesNoDescriptor(t *testing.T) {
	h := newHarness(t)

	code, stdout, _ := h.run(t, "services", "--output", "json")
	require.Equal(t, 0, code)
	assert.JSONEq(t, `{"source":"none","services":[]}`, stdout)

	code, stdout, _ = h.run(t, "services")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "No VCAP_SERVICES or services.json found")
}

func TestServicesReadsDotEnv(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.Unsetenv("VCAP_SERVICES"))
	h.tree.File(`VCAP_SERVICES='{"user-provided":[{"name":"api","label":"user-provided","credentials":{"token":"t"}}]}'`+"\n", "app", ".env")

	code, stdout, stderr := h.run(t, "services", "-o", "json")
	require.Equal(t, 0, code, stderr)

	var view servicesView
	require.NoError(t, json.Unmarshal([]byte(stdout), &view))
	assert.Equal(t, "env", view.Source)
	require.Len(t, view.Services, 1)
	assert.Equal(t, "api", view.Services[0].Name)
}

func TestCredsJSON(t *testing.T) {
	h := newHarness(t)
	h.tree.File(servicesJSON, "app", "services.json")

	code, stdout, stderr := h.run(t, "creds", "--label", "p-mysql", "-o", "json")
	require.Equal(t, 0, code, stderr)
	assert.JSONEq(t, `{"hostname":"10.0.0.5","password":"s3cr3t","port":3306}`, stdout)
}

func TestCredsPatternTable(t *testing.T) {
	h := newHarness(t)
	h.tree.File(servicesJSON, "app", "services.json")

	code, stdout, stderr := h.run(t, "creds", "--name", "/^cach/")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "10.0.0.6")
}

func TestCredsEnvType(t *testing.T) {
	h := newHarness(t)
	t.Setenv("ORDERS_DB", `{"uri":"mysql://orders"}`)

	code, stdout, stderr := h.run(t, "creds", "--type", "env", "--name", "ORDERS_DB", "-o", "json")
	require.Equal(t, 0, code, stderr)
	assert.JSONEq(t, `{"uri":"mysql://orders"}`, stdout)
}

func TestCredsNotFound(t *testing.T) {
	h := newHarness(t)
	h.tree.File(servicesJSON, "app", "services.json")

	code, stdout, _ := h.run(t, "creds", "--label", "p-postgres")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "No service matches")

	code, _, stderr := h.run(t, "creds", "--label", "p-postgres", "--required")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no service found")
	assert.Contains(t, stderr, "local services.json definition missing?")
}

func TestCredsInvalidPattern(t *testing.T) {
	h := newHarness(t)

	code, _, stderr := h.run(t, "creds", "--name", "/([/")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid pattern")
}

func TestEnvCommandUsesConfiguredCF(t *testing.T) {
	h := newHarness(t)
	t.Chdir(h.root)
	t.Setenv("CFUTIL_CF", "/opt/cf8/cf")

	code, stdout, stderr := h.run(t, "env", "orders")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, []string{"/opt/cf8/cf -v", "/opt/cf8/cf env orders"}, h.runner.calls)
	assert.Contains(t, stdout, "Saved")

	env, err := godotenv.Read(filepath.Join(h.root, ".env"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"p-mysql":[{"credentials":{"password":"s3cr3t"},"label":"p-mysql","name":"orders-db"}]}`, env["VCAP_SERVICES"])
}

func TestEnvCommandFlagOverridesEnv(t *testing.T) {
	h := newHarness(t)
	t.Chdir(h.root)
	t.Setenv("CFUTIL_CF", "/opt/cf8/cf")

	code, _, stderr := h.run(t, "--cf", "cf7", "env", "orders", "--json")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, []string{"cf7 -v", "cf7 env orders"}, h.runner.calls)
	assert.FileExists(t, filepath.Join(h.root, "services.json"))
}

func TestEnvCommandError(t *testing.T) {
	h := newHarness(t)
	t.Chdir(h.root)

	code, _, stderr := h.run(t, "env", "orders", "--json", "--user")
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, stderr)
	assert.Empty(t, h.runner.calls)
}

func TestCredsKeepsURLQuery(t *testing.T) {
	h := newHarness(t)
	t.Setenv("ORDERS_DB", `{"uri":"mysql://orders?a=1&b=<2>","opts":{"dsn":"x?y=1&z=2"}}`)

	code, stdout, stderr := h.run(t, "creds", "--type", "env", "--name", "ORDERS_DB", "-o", "json")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, `"mysql://orders?a=1&b=<2>"`)
	assert.NotContains(t, stdout, `\u0026`)

	code, stdout, stderr = h.run(t, "creds", "--type", "env", "--name", "ORDERS_DB")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, `{"dsn":"x?y=1&z=2"}`)
}

func TestTimeCommand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		utc   string
		ms    float64
	}{
		{"iso with offset", "2005-09-11T18:00:03.623-08:00", "2005-09-12T02:00:03.623Z", 1126490403623},
		{"unix millis", "1318781876406.62 milliseconds", "2011-10-16T16:17:56.406Z", 1318781876406},
		{"negative unix millis", "-86400000", "1969-12-31T00:00:00.000Z", -86400000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			code, stdout, stderr := h.run(t, "time", tt.input, "-o", "json")
			require.Equal(t, 0, code, stderr)

			var view map[string]any
			require.NoError(t, json.Unmarshal([]byte(stdout), &view))
			assert.Equal(t, tt.input, view["input"])
			assert.Equal(t, tt.utc, view["utc"])
			assert.Equal(t, tt.ms, view["unixMillis"])
		})
	}

	t.Run("now", func(t *testing.T) {
		h := newHarness(t)
		code, stdout, stderr := h.run(t, "time")
		require.Equal(t, 0, code, stderr)
		assert.Contains(t, stdout, "UTC:")
	})

	t.Run("invalid", func(t *testing.T) {
		h := newHarness(t)
		code, _, stderr := h.run(t, "time", "yesterday")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "neither ISO-8601")
	})
}
