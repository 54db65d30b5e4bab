// Package security validates user-provided paths and names before they are
// used to write files or run commands.
//
// # Path Validation
//
// Path traversal prevention:
//   - Detects ".." sequences in paths
//   - Resolves symbolic links to canonical paths
//   - Validates paths are within expected boundaries
//
// # Input Validation
//
// App names are passed to external commands as arguments. They must be
// non-empty, must not look like a flag, and must not contain control
// characters.
//
// Environment variable names written to env files must be shell
// identifiers: a letter or underscore followed by letters, digits or
// underscores.
//
// # Example Usage
//
//	path, err := security.ValidatePathWithinBases(filepath.Join(dir, name), dir)
//	if err != nil {
//	    return fmt.Errorf("invalid output file: %w", err)
//	}
//
//	if err := security.ValidateAppName(app); err != nil {
//	    return err
//	}
package security
