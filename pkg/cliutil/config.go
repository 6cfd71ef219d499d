package cliutil

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads key=value pairs from path into the process environment
// using godotenv, the same library the teacher's SPEC_FULL.md ambient
// stack names for config loading. Missing files are not an error: coraline
// runs fine from bare flags/environment, matching godotenv.Load()'s own
// convention of silently continuing when the file is absent optionally.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// EnvOrDefault reads key from the environment, returning def when unset.
func EnvOrDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
