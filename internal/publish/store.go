// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish uploads the generated site to its public location.
// Implements: the Store abstraction with S3 and filesystem backends, and the
// Publisher that mirrors the public URL layout (Abstracts/, PDF/, XML/) and
// marks ledger rows as published.
package publish

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// Store writes objects under slash-separated keys.
type Store interface {
	// Put writes body under key, replacing any existing object.
	Put(ctx context.Context, key string, body io.Reader, contentType string) error

	// Location describes where keys land, for status output.
	Location() string
}

// New returns the Store selected by cfg.Driver.
func New(ctx context.Context, cfg types.PublishConfig) (Store, error) {
	switch cfg.Driver {
	case "", "s3":
		return NewS3(ctx, cfg)
	case "fs":
		return NewFS(cfg.Root)
	default:
		return nil, fmt.Errorf("unknown publish driver %q", cfg.Driver)
	}
}

// ContentType returns the MIME type of a key from its extension.
func ContentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".xml":
		return "application/xml"
	}
	if t := mime.TypeByExtension(path.Ext(key)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// FSStore writes objects as files under a root directory, for a web root
// served directly from disk.
type FSStore struct {
	root string
}

// NewFS returns a store rooted at root, creating it if needed.
func NewFS(root string) (*FSStore, error) {
	if root == "" {
		return nil, fmt.Errorf("publish root required for fs driver")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating publish root: %w", err)
	}
	return &FSStore{root: root}, nil
}

// Location returns the root directory.
func (f *FSStore) Location() string { return f.root }

// Put writes body to root/key through a temporary file.
func (f *FSStore) Put(ctx context.Context, key string, body io.Reader, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean := path.Clean("/" + key)
	if clean == "/" {
		return fmt.Errorf("empty key")
	}
	dst := filepath.Join(f.root, filepath.FromSlash(clean[1:]))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", key, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".put-*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
