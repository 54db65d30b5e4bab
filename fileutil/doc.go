// Package fileutil provides file system helpers with secure defaults.
//
// # Atomic Write Operations
//
// AtomicWriteFile ensures that files are never left in a partial state by
// writing to a temporary file first, then atomically renaming it to the
// target path. This approach includes:
//
//   - Unique temporary file names to avoid concurrent writer collisions
//   - Explicit sync operations to ensure data is flushed to disk
//   - Retry logic (5 attempts with growing backoff) for rename operations
//   - Automatic cleanup of temporary files on failure
//
// Files holding credentials, such as exported env files, should be written
// with SecretFilePermission.
//
// # Example Usage
//
//	if err := fileutil.EnsureDir(dir); err != nil {
//	    return err
//	}
//	if err := fileutil.AtomicWriteFile(filepath.Join(dir, ".env"), data, fileutil.SecretFilePermission); err != nil {
//	    return err
//	}
package fileutil
