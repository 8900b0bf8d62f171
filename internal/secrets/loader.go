// Package secrets resolves provider API keys from the environment, key files and
// the configuration file.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotConfigured is returned when no source yields a key.
var ErrNotConfigured = errors.New("api key is not configured")

// Source lists where a key may come from. A key file beats an inline key, and
// the environment beats the configuration file.
type Source struct {
	// Name is used in error messages, e.g. "gemini api key".
	Name string
	// Env and FileEnv name the variables holding the key or a path to it.
	Env     string
	FileEnv string
	// Value and File come from the configuration file.
	Value string
	File  string
}

// GeminiSource returns the Gemini key source with the configured inline key and
// key file.
func GeminiSource(value, file string) Source {
	return Source{
		Name:    "gemini api key",
		Env:     "GEMINI_API_KEY",
		FileEnv: "GEMINI_API_KEY_FILE",
		Value:   value,
		File:    file,
	}
}

// Load resolves the key described by src. The result is trimmed. When nothing
// is set the error wraps ErrNotConfigured and names the variables to set.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "api key"
	}

	if file := firstNonEmpty(getenv(src.FileEnv), src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		key := strings.TrimSpace(string(data))
		if key == "" {
			return "", fmt.Errorf("%w: %s file %q is empty", ErrNotConfigured, name, file)
		}
		return key, nil
	}

	if key := firstNonEmpty(getenv(src.Env), src.Value); key != "" {
		return key, nil
	}

	if hint := envHint(src); hint != "" {
		return "", fmt.Errorf("%w: %s is missing, set %s", ErrNotConfigured, name, hint)
	}
	return "", fmt.Errorf("%w: %s is missing", ErrNotConfigured, name)
}

func getenv(key string) string {
	if key == "" {
		return ""
	}
	return os.Getenv(key)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func envHint(src Source) string {
	var vars []string
	for _, v := range []string{src.Env, src.FileEnv} {
		if v != "" {
			vars = append(vars, v)
		}
	}
	return strings.Join(vars, " or ")
}
