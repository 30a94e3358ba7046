package platform

import (
	"os"
	"path/filepath"
)

// ConfigFileName is the project-level settings file looked up by FindConfig.
const ConfigFileName = ".koconv.yaml"

// FindConfig looks upwards from startDir for a .koconv.yaml file and returns
// its absolute path, or "" when the filesystem root is reached without one.
func FindConfig(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, ConfigFileName) {
			return filepath.Join(dir, ConfigFileName), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}

func hasFile(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}
