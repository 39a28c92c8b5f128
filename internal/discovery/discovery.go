package discovery

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sethgrid/bolita/internal/storage"
)

// FindConfigFile walks from startDir up to the filesystem root looking
// for a .bolita directory holding a pet config.
func FindConfigFile(startDir string) (string, bool, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}

	for {
		for _, name := range storage.ConfigFiles {
			path := filepath.Join(dir, storage.DirName, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", false, nil
}

func GlobalConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, storage.DirName, storage.ConfigFiles[0])
}

// Resolve returns the config path to use: explicit if set, else the
// nearest project config, else the global one if it exists. An empty
// path with a nil error means no config was found.
func Resolve(explicit, startDir string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	path, found, err := FindConfigFile(startDir)
	if err != nil {
		return "", err
	}
	if found {
		return path, nil
	}

	global := GlobalConfigPath()
	if _, err := os.Stat(global); err == nil {
		return global, nil
	}
	return "", nil
}
