package config

import (
	"os"
	"path/filepath"
)

// FindEnvTest returns the nearest filename (default .env) in the working
// directory or one of its parents. The search stops at the module root, the
// first directory holding a go.mod, so a stray file above the checkout is
// never picked up.
func FindEnvTest(filename string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findUp(wd, filename)
}

func findUp(dir, filename string) (string, error) {
	if filename == "" {
		filename = ".env"
	}
	for {
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}
