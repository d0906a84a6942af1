package manifest

import (
	"context"
	"sync"
)

// Unknown is the value of metadata a manifest leaves unset.
const Unknown = "unknown"

// Shell runs commands for a package. The sandbox driver implements it.
type Shell interface {
	// Exec runs one command line and returns its exit status.
	Exec(ctx context.Context, command string, silent bool) (int, error)

	// Destroy stops the shell and releases everything it owns.
	Destroy() error
}

// ShellFactory starts a Shell with the given extra environment.
type ShellFactory func(env []string) (Shell, error)

// Package is a parsed manifest together with the sandbox shell that will
// run its functions. The Package owns the shell.
type Package struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Version     string `json:"version" yaml:"version"`
	Maintainers string `json:"maintainers" yaml:"maintainers"`

	// Branch the manifest was found in.
	Branch string `json:"branch" yaml:"branch"`

	// Path of the manifest file, after redirects.
	Path string `json:"path" yaml:"path"`

	Functions []*Function `json:"functions" yaml:"functions"`
	Env       []string    `json:"env" yaml:"env"`
	Warnings  []string    `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	mu     sync.Mutex
	shell  Shell
	closed bool
}

// Function returns the function bound to stage, or nil.
func (p *Package) Function(stage Stage) *Function {
	for _, f := range p.Functions {
		if f.Stage == stage {
			return f
		}
	}
	return nil
}

// Shell returns the attached shell, or nil for packages loaded without one.
func (p *Package) Shell() Shell {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	return p.shell
}

// Close destroys the attached shell. It is safe to call more than once.
func (p *Package) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	if p.shell == nil {
		return nil
	}
	return p.shell.Destroy()
}
