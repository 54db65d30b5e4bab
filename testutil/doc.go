// Package testutil provides common testing utilities for garage-core packages.
//
// This package includes helpers for:
//   - Capturing stdout during test execution (CaptureOutput)
//   - Building temporary application trees with manifests (AppTree)
//
// All functions use t.Helper() for proper test line reporting.
//
// Example usage:
//
//	func TestRootDir(t *testing.T) {
//	    tree := testutil.NewAppTree(t)
//	    app := tree.Manifest("app", "1.2.3")
//	    lib := tree.Dir("app", "node_modules", "garage-core", "lib")
//	    // walk from lib and expect app
//	}
package testutil
