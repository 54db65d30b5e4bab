// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

var (
	// ErrInvalidPath indicates a path contains invalid characters or patterns.
	ErrInvalidPath = errors.New("invalid path")
	// ErrPathTraversal indicates a path traversal attack attempt.
	ErrPathTraversal = errors.New("path traversal detected")
	// ErrInvalidAppName indicates an app name unsafe to pass as an argument.
	ErrInvalidAppName = errors.New("invalid app name")
	// ErrInvalidEnvName indicates a name that is not a shell identifier.
	ErrInvalidEnvName = errors.New("invalid environment variable name")

	envNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// maxAppNameLength bounds names passed to external commands.
const maxAppNameLength = 255

// ValidatePath checks if a path is safe to use.
// It prevents path traversal attacks and symbolic link attacks.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	// Check for path traversal attempts before resolving
	if strings.Contains(path, "..") {
		return fmt.Errorf("%w: path contains parent directory reference", ErrPathTraversal)
	}

	resolved, err := resolve(path)
	if err != nil {
		return err
	}

	// Verify resolved path doesn't contain ..
	if strings.Contains(resolved, "..") {
		return fmt.Errorf("%w: resolved path contains parent directory reference", ErrPathTraversal)
	}

	return nil
}

// ValidatePathWithinBases validates a path and ensures it's within one of the allowed base directories.
// Returns the resolved absolute path or an error.
// If no allowedBases are provided, it just validates the path structure.
func ValidatePathWithinBases(path string, allowedBases ...string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", err
	}

	realPath, err := resolve(path)
	if err != nil {
		return "", err
	}

	if len(allowedBases) == 0 {
		return realPath, nil
	}
	for _, base := range allowedBases {
		realBase, err := resolve(base)
		if err != nil {
			continue // skip bases we can't resolve
		}
		if realPath == realBase || strings.HasPrefix(realPath, realBase+string(filepath.Separator)) {
			return realPath, nil
		}
	}
	return "", fmt.Errorf("%w: path is outside allowed directories", ErrPathTraversal)
}

// resolve returns the clean absolute path with symbolic links resolved.
// A path that does not exist yet resolves to its cleaned form.
func resolve(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: cannot resolve path: %w", ErrInvalidPath, err)
	}
	absPath = filepath.Clean(absPath)

	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("%w: cannot resolve symbolic links: %w", ErrInvalidPath, err)
		}
		realPath = absPath
	}
	return realPath, nil
}

// ValidateAppName checks that name can be passed to an external command as
// a positional argument.
func ValidateAppName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: app name cannot be empty", ErrInvalidAppName)
	}
	if len(name) > maxAppNameLength {
		return fmt.Errorf("%w: exceeds maximum length of %d characters", ErrInvalidAppName, maxAppNameLength)
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("%w: cannot start with '-'", ErrInvalidAppName)
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return fmt.Errorf("%w: contains control characters", ErrInvalidAppName)
	}
	return nil
}

// ValidateEnvName checks that name is a shell identifier.
func ValidateEnvName(name string) error {
	if !envNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidEnvName, name)
	}
	return nil
}
