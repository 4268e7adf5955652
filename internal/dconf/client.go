// Package dconf provides a small wrapper for dconf command execution.
package dconf

import (
	"context"
	"fmt"
	"strings"

	"github.com/huectl/huectl/internal/execx"
)

// Client wraps dconf command helpers.
type Client struct {
	exec execx.Executor
}

// NewClient creates a new dconf client.
func NewClient(exec execx.Executor) *Client {
	return &Client{exec: exec}
}

// Read returns the value of a single key, or "" when the key is unset.
func (c *Client) Read(ctx context.Context, key string) (string, error) {
	stdout, stderr, err := c.exec.Exec(ctx, "dconf", "read", key)
	if err != nil {
		return "", fmt.Errorf("dconf read %s failed: %s: %w", key, execx.Diagnostic(stderr, 100), err)
	}
	return strings.TrimSpace(string(stdout)), nil
}

// Write sets a single key to a GVariant-encoded value.
func (c *Client) Write(ctx context.Context, key, value string) error {
	_, stderr, err := c.exec.Exec(ctx, "dconf", "write", key, value)
	if err != nil {
		return fmt.Errorf("dconf write %s failed: %s: %w", key, execx.Diagnostic(stderr, 100), err)
	}
	return nil
}

// Dump serializes a settings subtree to keyfile format.
func (c *Client) Dump(ctx context.Context, path string) (string, error) {
	stdout, stderr, err := c.exec.Exec(ctx, "dconf", "dump", path)
	if err != nil {
		return "", fmt.Errorf("dconf dump %s failed: %s: %w", path, execx.Diagnostic(stderr, 100), err)
	}
	return string(stdout), nil
}

// Load replays a keyfile dump into a settings subtree.
func (c *Client) Load(ctx context.Context, path, data string) error {
	_, stderr, err := c.exec.ExecInput(ctx, data, "dconf", "load", path)
	if err != nil {
		return fmt.Errorf("dconf load %s failed: %s: %w", path, execx.Diagnostic(stderr, 100), err)
	}
	return nil
}

// Reset clears a key or subtree. Clearing before a Load prevents stale
// keys from surviving a restore as merge artifacts.
func (c *Client) Reset(ctx context.Context, path string) error {
	_, stderr, err := c.exec.Exec(ctx, "dconf", "reset", "-f", path)
	if err != nil {
		return fmt.Errorf("dconf reset %s failed: %s: %w", path, execx.Diagnostic(stderr, 100), err)
	}
	return nil
}
