// Package config resolves where the profile store lives on disk.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// EnvRootOverride is the environment variable that, when set, is used
// verbatim as the store's root directory.
const EnvRootOverride = "PROFILE_MANAGER_PATH"

// dbFileName is the single database file kept directly under the root.
const dbFileName = "profile-manager.db"

// ErrUnsupportedPlatform is returned by ResolveRoot when the running platform
// has no default root directory and no override is set.
var ErrUnsupportedPlatform = errors.New("unsupported platform: set " + EnvRootOverride)

// ResolveRoot determines the root storage directory. The PROFILE_MANAGER_PATH
// override wins; otherwise each platform family has one fixed default:
// ~/.profile-manager on Unix-like systems, the local application-data
// directory on Windows. Pure lookup; nothing is created on disk.
func ResolveRoot() (string, error) {
	if custom := os.Getenv(EnvRootOverride); custom != "" {
		return custom, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	switch runtime.GOOS {
	case "linux", "darwin":
		return filepath.Join(home, ".profile-manager"), nil
	case "windows":
		return filepath.Join(home, "AppData", "Local", "profile-manager"), nil
	default:
		return "", fmt.Errorf("%w (os %q)", ErrUnsupportedPlatform, runtime.GOOS)
	}
}

// DBPath returns the database file path under the given root.
func DBPath(root string) string {
	return filepath.Join(root, dbFileName)
}
