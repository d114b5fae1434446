// Package keyring retrieves the Stripe API key from the desktop secret
// store via the secret-tool command.
package keyring

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// lookupTimeout bounds the secret-tool invocation.
const lookupTimeout = 5 * time.Second

// defaultArgs identify the secret registered for this plugin.
var defaultArgs = []string{"lookup", "service", "stripe", "type", "api-key"}

// Lookup reads the API key from the secret store.
type Lookup struct {
	command string
	args    []string
	timeout time.Duration
}

// NewLookup creates a Lookup using the standard secret-tool invocation.
func NewLookup(opts ...LookupOption) *Lookup {
	l := &Lookup{
		command: "secret-tool",
		args:    defaultArgs,
		timeout: lookupTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LookupOption customizes a Lookup, mainly for tests.
type LookupOption func(*Lookup)

// WithCommand replaces the lookup command and its arguments.
func WithCommand(command string, args ...string) LookupOption {
	return func(l *Lookup) {
		l.command = command
		l.args = args
	}
}

// WithTimeout overrides the lookup timeout.
func WithTimeout(timeout time.Duration) LookupOption {
	return func(l *Lookup) { l.timeout = timeout }
}

// APIKey returns the stored key and true, or "" and false if the command
// fails, times out, or produces empty output. It never returns an error:
// every failure mode collapses to "no credential".
func (l *Lookup) APIKey(ctx context.Context) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, l.command, l.args...).Output()
	if err != nil {
		slog.Debug("Secret lookup failed", "command", l.command, "error", err)
		return "", false
	}

	key := strings.TrimSpace(string(out))
	if key == "" {
		return "", false
	}
	return key, true
}
