// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: s3-access-key-id, s3-secret-access-key, ledger-dsn.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// Key names read by the pipeline.
const (
	S3AccessKeyID     = "s3-access-key-id"
	S3SecretAccessKey = "s3-secret-access-key"
	LedgerDSN         = "ledger-dsn"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Apply fills credentials that the configuration leaves empty. Values already
// set in cfg win over the secrets directory.
func Apply(cfg *types.Config, secrets map[string]string) {
	if cfg.Publish.AccessKeyID == "" {
		cfg.Publish.AccessKeyID = secrets[S3AccessKeyID]
	}
	if cfg.Publish.SecretAccessKey == "" {
		cfg.Publish.SecretAccessKey = secrets[S3SecretAccessKey]
	}
	if cfg.Ledger.DSN == "" {
		cfg.Ledger.DSN = secrets[LedgerDSN]
	}
}
