// Package appenv describes the running application: where its root directory
// is, which version its manifest declares, and what kind of run this is.
//
// A Context computes these values once and caches them. The boolean
// predicates (IsProd, IsDev, IsTest, IsScript) read the cached classification
// so callers never compare environment strings themselves:
//
//	app := appenv.Default()
//	if app.IsProd() {
//		logutil.SetLevel(logutil.LevelInfo)
//	}
//
// # Root Directory
//
// The root directory is found by walking upward from this module's own
// location, and then from the entry point's directory, to the nearest
// directory holding a package manifest (package.json by default). A manifest
// whose directory sits directly inside a dependency installation directory
// (node_modules by default) belongs to a dependency, so the walk continues
// above it.
//
// # Classification
//
// The classification is resolved in this order:
//   - DEPLOY_ENV, used verbatim when non-empty
//   - "test" when the entry point is a known test runner binary
//   - "script" when the entry point lives under a bin or scripts directory
//   - unset otherwise
//
// # Testing
//
// Tests can simulate other deployment shapes with the Set* methods and
// restore the detected values with Reset. Derivations never fail: values
// that cannot be determined are left empty.
package appenv
