// pkg/git/clone.go
package git

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// GitCommandExecutor defines an interface for executing git commands
type GitCommandExecutor interface {
	Execute(args ...string) error
}

// DefaultGitCommandExecutor runs git attached to the given streams
type DefaultGitCommandExecutor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewDefaultGitCommandExecutor returns an executor attached to the process' terminal
func NewDefaultGitCommandExecutor() *DefaultGitCommandExecutor {
	return &DefaultGitCommandExecutor{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Execute executes a git command with the given arguments
func (e *DefaultGitCommandExecutor) Execute(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	return cmd.Run()
}

// CloneError reports a git clone that did not succeed
type CloneError struct {
	URL      string
	Target   string
	ExitCode int // Bounded to 1..255
	Err      error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("git clone %s %s failed with exit code %d: %v", e.URL, e.Target, e.ExitCode, e.Err)
}

func (e *CloneError) Unwrap() error {
	return e.Err
}

// ChdirError reports a failure to enter a freshly cloned repository
type ChdirError struct {
	Target string
	Err    error
}

func (e *ChdirError) Error() string {
	return fmt.Sprintf("failed to change directory to %s: %v", e.Target, e.Err)
}

func (e *ChdirError) Unwrap() error {
	return e.Err
}

// ExitCode bounds a process exit status to the range a failing process can report.
func ExitCode(code int) int {
	switch {
	case code <= 0:
		return 1
	case code > 255:
		return 255
	default:
		return code
	}
}

// Cloner clones url into target
type Cloner interface {
	Clone(url, target string) error
}

// GitCloner clones repositories with the git client
type GitCloner struct {
	gitExecutor GitCommandExecutor
}

// NewGitCloner creates a GitCloner using the default executor
func NewGitCloner() *GitCloner {
	return &GitCloner{gitExecutor: NewDefaultGitCommandExecutor()}
}

// SetGitCommandExecutor sets a custom GitCommandExecutor (useful for testing)
func (c *GitCloner) SetGitCommandExecutor(executor GitCommandExecutor) {
	c.gitExecutor = executor
}

// Clone runs git clone. Parent directories of target are created by git.
func (c *GitCloner) Clone(url, target string) error {
	if c.gitExecutor == nil {
		c.gitExecutor = NewDefaultGitCommandExecutor()
	}

	err := c.gitExecutor.Execute("clone", url, target)
	if err == nil {
		return nil
	}

	code := 1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}

	return &CloneError{URL: url, Target: target, ExitCode: ExitCode(code), Err: err}
}

// Orchestrator clones a resolved repository and optionally moves into it
type Orchestrator struct {
	Cloner Cloner
	Chdir  func(dir string) error
}

// NewOrchestrator creates an Orchestrator that clones with git and changes
// the working directory of the current process.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{
		Cloner: NewGitCloner(),
		Chdir:  os.Chdir,
	}
}

// Clone clones u into target
func (o *Orchestrator) Clone(u *RemoteURL, target string) error {
	return o.Cloner.Clone(u.Raw, target)
}

// ChangeDirectory enters target unless skip is set
func (o *Orchestrator) ChangeDirectory(target string, skip bool) error {
	if skip {
		return nil
	}

	chdir := o.Chdir
	if chdir == nil {
		chdir = os.Chdir
	}

	if err := chdir(target); err != nil {
		return &ChdirError{Target: target, Err: err}
	}
	return nil
}
