// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	goruntime "runtime"
	"strings"

	"github.com/pdiddy/proceedings-engine/internal/container"
	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// containerRoot is where the project root is mounted inside the image.
const containerRoot = "/work"

// Invocation is one run of an external tool.
type Invocation struct {
	// Tool is the binary name or path.
	Tool string
	Args []string

	// Dir is the working directory. Relative paths in Args resolve here.
	Dir string

	Stdin  io.Reader
	Stdout io.Writer
}

// Runner executes tool invocations. NativeRunner uses host binaries;
// ContainerRunner uses a container image.
type Runner interface {
	Run(ctx context.Context, inv Invocation) error
}

// NativeRunner runs tools found on the host PATH.
type NativeRunner struct{}

// Run starts the tool and waits for it. A non-zero exit is an error carrying
// the last line the tool wrote to stderr.
func (NativeRunner) Run(ctx context.Context, inv Invocation) error {
	cmd := exec.CommandContext(ctx, inv.Tool, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Stdin = inv.Stdin
	cmd.Stdout = inv.Stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return toolError(inv.Tool, err, stderr.String())
	}
	return nil
}

// ContainerRunner runs tools inside an image with the project root mounted
// at /work. Working directories must lie under Root.
type ContainerRunner struct {
	Runtime container.Runtime
	Image   string
	Root    string
	User    string
}

// NewContainerRunner verifies that image exists in rt and returns a runner
// mounting root.
func NewContainerRunner(ctx context.Context, rt container.Runtime, image, root string) (*ContainerRunner, error) {
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("converter image not available in %s: %w", rt.Name(), err)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}
	r := &ContainerRunner{Runtime: rt, Image: image, Root: abs}
	if goruntime.GOOS != "windows" {
		r.User = fmt.Sprintf("%d:%d", os.Getuid(), os.Getgid())
	}
	return r, nil
}

// Run maps inv.Dir into the container and runs inv.Tool as the entrypoint.
func (c *ContainerRunner) Run(ctx context.Context, inv Invocation) error {
	workdir, err := c.containerPath(inv.Dir)
	if err != nil {
		return err
	}
	return c.Runtime.Run(ctx, c.Image, container.RunOptions{
		Entrypoint: filepath.Base(inv.Tool),
		Args:       inv.Args,
		Mounts:     []container.Mount{{Source: c.Root, Target: containerRoot}},
		Workdir:    workdir,
		User:       c.User,
		Stdin:      inv.Stdin,
		Stdout:     inv.Stdout,
	})
}

func (c *ContainerRunner) containerPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	rel, err := filepath.Rel(c.Root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the mounted project root %s", dir, c.Root)
	}
	return path.Join(containerRoot, filepath.ToSlash(rel)), nil
}

// NewRunner returns the runner selected by cfg.Backend. root is the project
// directory mounted for the container backend.
func NewRunner(ctx context.Context, cfg types.ConversionConfig, root string) (Runner, error) {
	switch cfg.Backend {
	case types.BackendNative, "":
		return NativeRunner{}, nil
	case types.BackendContainer:
		rt, err := container.DetectRuntime(ctx)
		if err != nil {
			return nil, err
		}
		return NewContainerRunner(ctx, rt, cfg.Image, root)
	default:
		return nil, fmt.Errorf("unknown conversion backend %q", cfg.Backend)
	}
}

func toolError(tool string, err error, stderr string) error {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	if msg := strings.TrimSpace(lines[len(lines)-1]); msg != "" {
		return fmt.Errorf("%s: %w: %s", filepath.Base(tool), err, msg)
	}
	return fmt.Errorf("%s: %w", filepath.Base(tool), err)
}
