package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// defaultYAML is written when no packaged default config is available.
const defaultYAML = `app:
  port: 8080
  data_dir: .

database:
  driver: sqlite
  path: jobboard.db

search:
  per_page_max: 100
`

// EnsureUserConfig guarantees a config file exists in dataDir, seeding it
// from defaultPath (or a built-in minimal default) on first run. Returns
// the user config path.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	src, err := os.Open(defaultPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		if err := os.WriteFile(userPath, []byte(defaultYAML), 0o644); err != nil {
			return "", err
		}
		return userPath, nil
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return userPath, nil
}
