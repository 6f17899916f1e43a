// Package secrets resolves per-provider API keys. Keys live as {service}.json
// files in the configured secrets directory, with environment variables as a
// fallback for deployments without local key files.
package secrets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// keyFile matches the on-disk layout: {"api_key": "..."} or {"key": "..."}.
type keyFile struct {
	APIKey string `json:"api_key"`
	Key    string `json:"key"`
}

// Resolver looks up API keys for named services.
type Resolver struct {
	dir string
}

// NewResolver constructs a resolver rooted at the secrets directory.
func NewResolver(dir string) *Resolver {
	return &Resolver{dir: strings.TrimSpace(dir)}
}

// Lookup returns the API key for a service, or "" when none is configured.
// File lookup wins over the environment so local overrides stay possible.
func (r *Resolver) Lookup(service string) (string, error) {
	service = strings.ToLower(strings.TrimSpace(service))
	if service == "" {
		return "", errors.New("secrets: service name required")
	}

	if r.dir != "" {
		key, err := readKeyFile(filepath.Join(r.dir, service+".json"))
		if err != nil {
			return "", err
		}
		if key != "" {
			return key, nil
		}
	}

	envName := strings.ToUpper(service) + "_API_KEY"
	return strings.TrimSpace(os.Getenv(envName)), nil
}

func readKeyFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("secrets: read %s: %w", path, err)
	}
	var parsed keyFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("secrets: parse %s: %w", path, err)
	}
	if key := strings.TrimSpace(parsed.APIKey); key != "" {
		return key, nil
	}
	return strings.TrimSpace(parsed.Key), nil
}
