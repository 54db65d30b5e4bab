// Package pathutil locates external tools.
//
// It finds executables in PATH with cross-platform executable detection,
// searches the directories the cf CLI installers use when PATH misses them,
// and suggests installation URLs for missing tools.
//
// # Example: Finding cf
//
//	cf := pathutil.FindTool("cf")
//	if _, err := exec.LookPath(cf); err != nil {
//	    return fmt.Errorf("cf not found: %s", pathutil.GetInstallSuggestion("cf"))
//	}
//
// # Cross-Platform Behavior
//
// On Windows the .exe extension is appended when missing and the Cloud
// Foundry installer directories under Program Files are searched. On Unix
// the standard bin directories, Homebrew and ~/.local/bin are searched.
package pathutil
