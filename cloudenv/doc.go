// Package cloudenv detects the hosting platform and resolves service
// credentials from Cloud Foundry style service descriptors or from JSON
// environment variables.
//
// # Platform
//
//	platform := cloudenv.NewEnv()
//	if platform.IsCF() { ... }
//	addr := ":" + platform.Port()
//
// # Credentials
//
// A Resolver reads the services descriptor from VCAP_SERVICES, or from a
// services.json file in the application root when that variable is absent,
// and matches it against one or more specs:
//
//	r := cloudenv.NewResolver(appenv.Default())
//	creds, err := r.ServiceCreds(true,
//		cloudenv.CF("cloudantNoSQLDB", ""),
//		cloudenv.EnvVar("CLOUDANT_CREDS"),
//	)
//
// At most one spec may resolve. Two specs that both resolve are reported as
// ErrMultipleServices rather than one silently winning, so a stale fallback
// cannot shadow a bound service.
package cloudenv
