package cli

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// FindDotEnv returns the path of the nearest .env file in dir or one of its
// parents, or "" when there is none.
func FindDotEnv(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		p := filepath.Join(dir, ".env")
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadDotEnv loads the nearest .env above the working directory into the
// environment. Variables already set are kept. It returns the loaded path,
// or "" when no file was found.
func LoadDotEnv() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	p := FindDotEnv(wd)
	if p == "" {
		return "", nil
	}
	if err := godotenv.Load(p); err != nil {
		return "", err
	}
	return p, nil
}
