package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the per-user configuration directory name.
const appDirName = "ticketero"

// ConfigDir returns the user configuration directory. On Linux it honors
// XDG_CONFIG_HOME; everywhere else it falls back to ~/.ticketero.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" && runtime.GOOS == "linux" {
		return filepath.Join(xdg, appDirName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appDirName
	}
	return filepath.Join(home, "."+appDirName)
}

// UserConfigPath returns the path where a config file should be created or
// edited, always inside the user configuration directory.
func UserConfigPath(filename string) string {
	return filepath.Join(ConfigDir(), filename)
}

// ResolveConfigFile locates a configuration file, preferring the user
// configuration directory over the local ./data directory. It returns ""
// when the file exists in neither location.
func ResolveConfigFile(filename string) string {
	userPath := UserConfigPath(filename)
	if _, err := os.Stat(userPath); err == nil {
		return userPath
	}

	localPath := filepath.Join("data", filename)
	if _, err := os.Stat(localPath); err == nil {
		return localPath
	}

	return ""
}

// FileSource describes where a configuration file would be loaded from.
type FileSource struct {
	ResolvedPath string
	UserPath     string
	LocalPath    string
	Source       string // "user", "local" or "none"
}

// DescribeConfigFile reports the resolution of a configuration file for
// the `config show` command.
func DescribeConfigFile(filename string) FileSource {
	info := FileSource{
		UserPath:  UserConfigPath(filename),
		LocalPath: filepath.Join("data", filename),
		Source:    "none",
	}

	if _, err := os.Stat(info.UserPath); err == nil {
		info.ResolvedPath = info.UserPath
		info.Source = "user"
	} else if _, err := os.Stat(info.LocalPath); err == nil {
		info.ResolvedPath = info.LocalPath
		info.Source = "local"
	}

	return info
}
