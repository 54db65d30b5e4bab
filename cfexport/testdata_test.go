package cfexport

import (
	"context"
	"errors"
	"strings"
	"sync"
)

const cfEnvOutput = `Getting env variables for app orders in org acme / space dev as admin...
OK

System-Provided:
{
 "VCAP_SERVICES": {
  "p-mysql": [
   {
    "credentials": {
     "hostname": "10.0.0.5",
     "password": "s3cr3t",
     "port": 3306
    },
    "label": "p-mysql",
    "name": "orders-db",
    "plan": "100mb",
    "tags": [
     "mysql"
    ]
   }
  ]
 }
}

{
 "VCAP_APPLICATION": {
  "application_name": "orders"
 }
}

User-Provided:
NODE_ENV: production
GREETING: hello world
bad-name: ignored

No running env variables have been set

No staging env variables have been set

`

const cfEnvNoUserVars = `Getting env variables for app orders in org acme / space dev as admin...
OK

System-Provided:
{
 "VCAP_SERVICES": {}
}

No user-defined env variables have been set

No running env variables have been set
`

const wantServices = `{"p-mysql":[{"credentials":{"hostname":"10.0.0.5","password":"s3cr3t","port":3306},"label":"p-mysql","name":"orders-db","plan":"100mb","tags":["mysql"]}]}`

type result struct {
	out string
	err error
}

// fakeRunner answers commands from a table keyed by the joined command line.
type fakeRunner struct {
	mu      sync.Mutex
	results map[string]result
	calls   []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{results: map[string]result{
		"cf -v":         {out: "cf version 8.7.10+5b7ce3c.2024-04-04\n"},
		"cf env orders": {out: cfEnvOutput},
	}}
}

func (f *fakeRunner) set(cmd, out string, err error) {
	f.results[cmd] = result{out: out, err: err}
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	cmd := strings.Join(append([]string{name}, args...), " ")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cmd)

	r, ok := f.results[cmd]
	if !ok {
		return nil, errors.New("unexpected command: " + cmd)
	}
	return []byte(r.out), r.err
}
