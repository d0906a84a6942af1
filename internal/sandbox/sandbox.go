package sandbox

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/piraterna/piratpkg/internal/errors"
	"github.com/piraterna/piratpkg/internal/logging"
	"github.com/piraterna/piratpkg/internal/system"
)

const (
	// DefaultShell is started when Options.Shell is empty.
	DefaultShell = "/bin/sh"

	// DefaultGracePeriod is how long Destroy waits after SIGTERM before
	// sending SIGKILL.
	DefaultGracePeriod = 5 * time.Second

	dirPrefix = "piratpkg-sandbox-"
	chunkSize = 4096
)

// Options configures a Sandbox.
type Options struct {
	// Shell is the POSIX shell to start.
	Shell string

	// TempRoot is where the working directory is created. Empty means
	// os.TempDir().
	TempRoot string

	// Env is appended to the inherited process environment.
	Env []string

	// Stdout receives command output when Exec is not silent.
	Stdout io.Writer

	// Stderr receives command error output.
	Stderr io.Writer

	// FS creates and removes the working directory.
	FS system.FileSystem

	GracePeriod time.Duration
}

type state int

const (
	stateReady state = iota
	stateDestroyed
)

// Sandbox is a persistent shell running in a private working directory.
// Exec and Destroy may be called from any goroutine; commands run one at
// a time.
type Sandbox struct {
	mu    sync.Mutex
	state state

	dir   string
	cmd   *exec.Cmd
	stdin io.WriteCloser

	stdout   <-chan []byte
	stderr   <-chan []byte
	outFrame frame
	errFrame frame
	done     chan struct{}

	out    io.Writer
	errOut io.Writer
	fs     system.FileSystem
	grace  time.Duration
}

// New creates the working directory and starts the shell in it.
func New(opts Options) (*Sandbox, error) {
	if opts.Shell == "" {
		opts.Shell = DefaultShell
	}
	if opts.TempRoot == "" {
		opts.TempRoot = os.TempDir()
	}
	if opts.Stdout == nil {
		opts.Stdout = logging.Stdout()
	}
	if opts.Stderr == nil {
		opts.Stderr = logging.Stderr()
	}
	if opts.FS == nil {
		opts.FS = system.DefaultFS()
	}
	if opts.GracePeriod <= 0 {
		opts.GracePeriod = DefaultGracePeriod
	}

	pattern := dirPrefix + time.Now().Format("20060102150405") + "-*"
	dir, err := opts.FS.MkdirTemp(opts.TempRoot, pattern)
	if err != nil {
		return nil, errors.ResourceFailed("create", err)
	}

	s := &Sandbox{
		dir:    dir,
		done:   make(chan struct{}),
		out:    opts.Stdout,
		errOut: opts.Stderr,
		fs:     opts.FS,
		grace:  opts.GracePeriod,
	}

	if err := s.start(opts.Shell, opts.Env); err != nil {
		if rmErr := opts.FS.RemoveAll(dir); rmErr != nil {
			logging.Warn("failed to remove sandbox directory", "dir", dir, "error", rmErr)
		}
		return nil, errors.ResourceFailed("create", err)
	}

	logging.Debug("sandbox created", "dir", dir, "shell", opts.Shell, "pid", s.cmd.Process.Pid)
	return s, nil
}

func (s *Sandbox) start(shell string, env []string) error {
	cmd := exec.Command(shell)
	cmd.Dir = s.dir
	cmd.Env = append(os.Environ(), env...)
	setProcGroup(cmd)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", shell, err)
	}

	s.cmd = cmd
	s.stdin = stdin
	s.stdout = s.pump(stdout)
	s.stderr = s.pump(stderr)
	return nil
}

// pump copies r into a channel in chunks until EOF or Destroy.
func (s *Sandbox) pump(r io.Reader) <-chan []byte {
	ch := make(chan []byte)
	go func() {
		defer close(ch)
		for {
			buf := make([]byte, chunkSize)
			n, err := r.Read(buf)
			if n > 0 {
				select {
				case ch <- buf[:n]:
				case <-s.done:
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}

// Dir returns the sandbox working directory.
func (s *Sandbox) Dir() string {
	return s.dir
}

// Exec runs one command line in the shell and blocks until all of its
// output has been read. It returns the command's exit status. When silent
// is set standard output is discarded; standard error is always shown.
//
// Cancelling ctx destroys the sandbox.
func (s *Sandbox) Exec(ctx context.Context, command string, silent bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateDestroyed {
		return -1, errors.ResourceFailed("exec", errors.ErrSandboxDestroyed)
	}

	marker := "__PIRATPKG_" + strings.ReplaceAll(uuid.NewString(), "-", "") + "__"
	script := fmt.Sprintf("{ %s\n} </dev/null\nprintf '\\n%%s %%d\\n' '%s' \"$?\"\nprintf '\\n%%s\\n' '%s' >&2\n",
		command, marker, marker)

	logging.Debug("sandbox exec", "command", command, "silent", silent)
	if _, err := io.WriteString(s.stdin, script); err != nil {
		return -1, s.fail(fmt.Errorf("failed to write command: %w", err))
	}

	var out io.Writer = s.out
	if silent {
		out = io.Discard
	}
	needle := []byte("\n" + marker)

	var (
		status  string
		outDone bool
		errDone bool
		stdout  = s.stdout
		stderr  = s.stderr
	)
	scanOut := func() error {
		tail, found, err := s.outFrame.scan(needle, out)
		if found {
			status, outDone, stdout = tail, true, nil
		}
		return err
	}
	scanErr := func() error {
		_, found, err := s.errFrame.scan(needle, s.errOut)
		if found {
			errDone, stderr = true, nil
		}
		return err
	}

	// Leftover bytes from an earlier read may already hold a marker.
	if err := scanOut(); err != nil {
		return -1, s.fail(err)
	}
	if err := scanErr(); err != nil {
		return -1, s.fail(err)
	}

	for !outDone || !errDone {
		select {
		case chunk, ok := <-stdout:
			if !ok {
				return -1, s.fail(fmt.Errorf("shell exited while running %q", command))
			}
			s.outFrame.feed(chunk)
			if err := scanOut(); err != nil {
				return -1, s.fail(err)
			}
		case chunk, ok := <-stderr:
			if !ok {
				return -1, s.fail(fmt.Errorf("shell exited while running %q", command))
			}
			s.errFrame.feed(chunk)
			if err := scanErr(); err != nil {
				return -1, s.fail(err)
			}
		case <-ctx.Done():
			return -1, s.fail(ctx.Err())
		}
	}

	code, err := strconv.Atoi(strings.TrimSpace(status))
	if err != nil {
		return -1, s.fail(fmt.Errorf("malformed exit status %q", status))
	}
	return code, nil
}

// fail tears the sandbox down after a protocol or process failure.
// Called with s.mu held.
func (s *Sandbox) fail(cause error) error {
	if err := s.destroyLocked(); err != nil {
		logging.Warn("sandbox teardown failed", "dir", s.dir, "error", err)
	}
	return errors.ResourceFailed("exec", cause)
}

// Destroy stops the shell and every process it started, then removes the
// working directory. Calling it again is a no-op.
func (s *Sandbox) Destroy() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyLocked()
}

func (s *Sandbox) destroyLocked() error {
	if s.state == stateDestroyed {
		return nil
	}
	s.state = stateDestroyed
	close(s.done)

	var errs []error
	if err := s.stdin.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close stdin: %w", err))
	}
	if err := s.stop(); err != nil {
		errs = append(errs, err)
	}
	if err := s.fs.RemoveAll(s.dir); err != nil {
		errs = append(errs, fmt.Errorf("remove %s: %w", s.dir, err))
	}

	logging.Debug("sandbox destroyed", "dir", s.dir)
	if len(errs) > 0 {
		return errors.ResourceFailed("destroy", errors.Join(errs...))
	}
	return nil
}

// stop sends SIGTERM to the shell's process group, escalates to SIGKILL
// after the grace period, and reaps the shell.
func (s *Sandbox) stop() error {
	exited := make(chan error, 1)
	go func() {
		exited <- s.cmd.Wait()
	}()

	if err := terminate(s.cmd); err != nil {
		logging.Debug("SIGTERM failed", "pid", s.cmd.Process.Pid, "error", err)
	}

	var waitErr error
	select {
	case waitErr = <-exited:
	case <-time.After(s.grace):
		logging.Warn("sandbox shell ignored SIGTERM, killing", "pid", s.cmd.Process.Pid)
		if err := kill(s.cmd); err != nil {
			return fmt.Errorf("kill shell: %w", err)
		}
		waitErr = <-exited
	}

	// A non-zero exit or a signal is expected here.
	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return fmt.Errorf("wait for shell: %w", waitErr)
	}
	return nil
}
