// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package pathutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// FindToolInPath searches for a tool executable in the system PATH.
// Returns the full path to the executable if found, empty string otherwise.
func FindToolInPath(toolName string) string {
	path, err := exec.LookPath(exeName(toolName))
	if err != nil {
		return ""
	}
	return path
}

// SearchToolInSystemPath searches for a tool in the directories the cf CLI
// installers and package managers use.
// This is useful for finding tools that are installed but not in the current PATH.
// Returns the full path to the executable if found, empty string otherwise.
func SearchToolInSystemPath(toolName string) string {
	name := exeName(toolName)
	for _, dir := range searchDirs() {
		fullPath := filepath.Join(dir, name)
		if info, err := os.Stat(fullPath); err == nil && !info.IsDir() {
			return fullPath
		}
	}
	return ""
}

// FindTool returns toolName when it is on PATH, else the full path found
// by SearchToolInSystemPath, else toolName unchanged so callers report the
// lookup failure themselves.
func FindTool(toolName string) string {
	if FindToolInPath(toolName) != "" {
		return toolName
	}
	if path := SearchToolInSystemPath(toolName); path != "" {
		return path
	}
	return toolName
}

// GetInstallSuggestion returns a suggestion for how to install a missing tool.
func GetInstallSuggestion(toolName string) string {
	suggestions := map[string]string{
		"cf":   "Install from https://github.com/cloudfoundry/cli/wiki/V8-CLI-Installation-Guide",
		"cf7":  "Install from https://github.com/cloudfoundry/cli/wiki/V7-CLI-Installation-Guide",
		"cf8":  "Install from https://github.com/cloudfoundry/cli/wiki/V8-CLI-Installation-Guide",
		"node": "Install from https://nodejs.org/",
		"npm":  "Install Node.js from https://nodejs.org/",
		"git":  "Install from https://git-scm.com/downloads",
	}

	if suggestion, ok := suggestions[toolName]; ok {
		return suggestion
	}
	return fmt.Sprintf("Please install %s manually", toolName)
}

// exeName adds the .exe extension on Windows if not present.
func exeName(toolName string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(toolName), ".exe") {
		return toolName + ".exe"
	}
	return toolName
}

func searchDirs() []string {
	if runtime.GOOS == "windows" {
		return []string{
			`C:\Program Files\Cloud Foundry`,
			`C:\Program Files (x86)\Cloud Foundry`,
			filepath.Join(os.Getenv("LOCALAPPDATA"), "Programs", "Cloud Foundry"),
			filepath.Join(os.Getenv("APPDATA"), "npm"),
		}
	}
	homeDir, _ := os.UserHomeDir()
	return []string{
		"/usr/local/bin",
		"/usr/bin",
		"/bin",
		"/opt/homebrew/bin",
		filepath.Join(homeDir, ".local", "bin"),
		filepath.Join(homeDir, "bin"),
	}
}
