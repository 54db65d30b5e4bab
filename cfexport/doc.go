// Package cfexport saves a Cloud Foundry app's environment to local files
// so the app can run locally against the same bound services.
//
// It runs `cf env <app>` and writes either a .env file holding
// VCAP_SERVICES (and optionally the user-provided variables) or a
// services.json file holding just the services descriptor. An env.sh
// script that loads the saved file into the environment can be written too.
//
//	e := &cfexport.Exporter{}
//	files, err := e.Export(ctx, "my-app", cfexport.Options{User: true})
//
// The cf CLI is reached through a CommandRunner so tests can replace it.
package cfexport
