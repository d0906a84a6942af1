package installer

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/piraterna/piratpkg/internal/config"
	"github.com/piraterna/piratpkg/internal/errors"
	"github.com/piraterna/piratpkg/internal/logging"
	"github.com/piraterna/piratpkg/internal/manifest"
	"github.com/piraterna/piratpkg/internal/system"
)

// recordingShell records every command and fails the failAt-th one.
type recordingShell struct {
	commands   []string
	silent     []bool
	failAt     int
	execErr    error
	destroyed  int
	destroyErr error
}

func (s *recordingShell) Exec(ctx context.Context, command string, silent bool) (int, error) {
	s.commands = append(s.commands, command)
	s.silent = append(s.silent, silent)
	if len(s.commands) == s.failAt {
		if s.execErr != nil {
			return -1, s.execErr
		}
		return 1, nil
	}
	return 0, nil
}

func (s *recordingShell) Destroy() error {
	s.destroyed++
	return s.destroyErr
}

type fakePrompter struct {
	answer bool
	err    error
	asked  []string
}

func (p *fakePrompter) Confirm(question string) (bool, error) {
	p.asked = append(p.asked, question)
	return p.answer, p.err
}

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	logging.SetOutput(stdout, stderr)
	t.Cleanup(func() { logging.SetOutput(nil, nil) })
	return stdout, stderr
}

func loadPackage(t *testing.T, text string, shell manifest.Shell) *manifest.Package {
	t.Helper()

	mockFS := system.NewMockFS()
	mockFS.AddFile("/repo/pkg.pkg", []byte(text), 0644)

	cfg := config.Default()
	cfg.Branches = []config.Branch{{Name: "core", Path: "/repo"}}

	l := manifest.NewLoader(cfg,
		manifest.WithFileSystem(mockFS),
		manifest.WithShellFactory(func([]string) (manifest.Shell, error) { return shell, nil }),
	)
	pkg, err := l.Load("pkg")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	return pkg
}

const fullManifest = `PACKAGE_NAME=foo
PACKAGE_VERSION=1.0
PACKAGE_DESCRIPTION=test package
uninstall() {
    rm -rf "$PREFIX/foo"
}
build() {
    make
    make check
}
install() {
    make install
}
post_install() {
    echo done
}
`

func TestInstall_RunsFunctionsInManifestOrder(t *testing.T) {
	stdout, _ := captureOutput(t)
	shell := &recordingShell{}
	pkg := loadPackage(t, fullManifest, shell)

	result, err := New(Options{AutoConfirm: true}).Install(context.Background(), pkg)
	if err != nil {
		t.Fatalf("Install error: %v", err)
	}

	wantCommands := []string{"make", "make check", "make install", "echo done"}
	if strings.Join(shell.commands, "|") != strings.Join(wantCommands, "|") {
		t.Errorf("commands = %q, want %q", shell.commands, wantCommands)
	}
	if got := strings.Join(result.Functions, ","); got != "build,install,post_install" {
		t.Errorf("Functions = %q, want %q", got, "build,install,post_install")
	}
	if result.Commands != 4 {
		t.Errorf("Commands = %d, want 4", result.Commands)
	}
	if shell.destroyed != 1 {
		t.Errorf("Destroy called %d times, want 1", shell.destroyed)
	}

	out := stdout.String()
	for _, want := range []string{"foo 1.0", "test package", "Maintainers: unknown", "Installed foo 1.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInstall_EchoKind(t *testing.T) {
	tests := []struct {
		name       string
		verbose    bool
		wantSilent []bool
		wantEchoed []string
		notEchoed  []string
	}{
		{
			name:       "quiet",
			verbose:    false,
			wantSilent: []bool{true, true, true, false},
			wantEchoed: []string{"+ echo done", "Running post_install"},
			notEchoed:  []string{"+ make", "Running build"},
		},
		{
			name:       "verbose",
			verbose:    true,
			wantSilent: []bool{false, false, false, false},
			wantEchoed: []string{"+ make", "+ make check", "+ echo done", "Running build"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _ := captureOutput(t)
			shell := &recordingShell{}
			pkg := loadPackage(t, fullManifest, shell)

			if _, err := New(Options{AutoConfirm: true, Verbose: tt.verbose}).Install(context.Background(), pkg); err != nil {
				t.Fatalf("Install error: %v", err)
			}

			if fmt.Sprint(shell.silent) != fmt.Sprint(tt.wantSilent) {
				t.Errorf("silent = %v, want %v", shell.silent, tt.wantSilent)
			}
			out := stdout.String()
			for _, want := range tt.wantEchoed {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.notEchoed {
				if strings.Contains(out, unwanted) {
					t.Errorf("output should not contain %q:\n%s", unwanted, out)
				}
			}
		})
	}
}

func TestInstall_StopsAtFirstFailure(t *testing.T) {
	const n = 5
	for k := 1; k <= n; k++ {
		t.Run(fmt.Sprintf("fail at %d", k), func(t *testing.T) {
			captureOutput(t)

			var body strings.Builder
			for i := 1; i <= n; i++ {
				fmt.Fprintf(&body, "    step %d\n", i)
			}
			text := "PACKAGE_NAME=foo\nbuild() {\n" + body.String() + "}\ninstall() {\n    make install\n}\n"

			shell := &recordingShell{failAt: k}
			pkg := loadPackage(t, text, shell)

			result, err := New(Options{AutoConfirm: true}).Install(context.Background(), pkg)
			if !errors.Is(err, errors.ErrFunctionFailed) {
				t.Fatalf("Install error = %v, want ErrFunctionFailed", err)
			}
			if code := errors.GetExitCode(err); code != errors.ExitExecutionError {
				t.Errorf("exit code = %d, want %d", code, errors.ExitExecutionError)
			}
			if !strings.Contains(err.Error(), "build") {
				t.Errorf("error %q should name the failing function", err)
			}
			if len(shell.commands) != k {
				t.Errorf("Exec called %d times, want %d", len(shell.commands), k)
			}
			if result.Failed != "build" {
				t.Errorf("Failed = %q, want %q", result.Failed, "build")
			}
			if shell.destroyed != 1 {
				t.Errorf("Destroy called %d times, want 1", shell.destroyed)
			}
		})
	}
}

func TestInstall_ExecErrorKeepsResourceCode(t *testing.T) {
	captureOutput(t)
	shell := &recordingShell{failAt: 1, execErr: errors.ResourceFailed("exec", fmt.Errorf("broken pipe"))}
	pkg := loadPackage(t, fullManifest, shell)

	result, err := New(Options{AutoConfirm: true}).Install(context.Background(), pkg)
	if code := errors.GetExitCode(err); code != errors.ExitResourceError {
		t.Errorf("exit code = %d, want %d (err: %v)", code, errors.ExitResourceError, err)
	}
	if result.Failed != "build" {
		t.Errorf("Failed = %q, want %q", result.Failed, "build")
	}
	if shell.destroyed != 1 {
		t.Errorf("Destroy called %d times, want 1", shell.destroyed)
	}
}

func TestInstall_Confirmation(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		stdout, _ := captureOutput(t)
		shell := &recordingShell{}
		prompter := &fakePrompter{answer: false}
		pkg := loadPackage(t, fullManifest, shell)

		result, err := New(Options{Prompter: prompter}).Install(context.Background(), pkg)
		if err != nil {
			t.Fatalf("declined Install should succeed, got %v", err)
		}
		if !result.Declined {
			t.Error("Declined should be set")
		}
		if len(shell.commands) != 0 {
			t.Errorf("commands = %q, want none", shell.commands)
		}
		if shell.destroyed != 1 {
			t.Errorf("Destroy called %d times, want 1", shell.destroyed)
		}
		if len(prompter.asked) != 1 || !strings.Contains(prompter.asked[0], "install of foo") {
			t.Errorf("asked = %q", prompter.asked)
		}
		if !strings.Contains(stdout.String(), "Aborted") {
			t.Errorf("output should mention the abort:\n%s", stdout.String())
		}
	})

	t.Run("accepted", func(t *testing.T) {
		captureOutput(t)
		shell := &recordingShell{}
		pkg := loadPackage(t, fullManifest, shell)

		result, err := New(Options{Prompter: &fakePrompter{answer: true}}).Install(context.Background(), pkg)
		if err != nil {
			t.Fatalf("Install error: %v", err)
		}
		if result.Declined || len(shell.commands) != 4 {
			t.Errorf("Declined = %v, commands = %d; want false, 4", result.Declined, len(shell.commands))
		}
	})

	t.Run("prompt error", func(t *testing.T) {
		captureOutput(t)
		shell := &recordingShell{}
		pkg := loadPackage(t, fullManifest, shell)

		_, err := New(Options{Prompter: &fakePrompter{err: fmt.Errorf("tty gone")}}).Install(context.Background(), pkg)
		if err == nil {
			t.Fatal("Install should fail when the prompt fails")
		}
		if len(shell.commands) != 0 || shell.destroyed != 1 {
			t.Errorf("commands = %d, destroyed = %d; want 0, 1", len(shell.commands), shell.destroyed)
		}
	})
}

func TestInstall_TeardownErrorDoesNotMaskResult(t *testing.T) {
	_, stderr := captureOutput(t)
	shell := &recordingShell{destroyErr: errors.ResourceFailed("destroy", fmt.Errorf("device busy"))}
	pkg := loadPackage(t, fullManifest, shell)

	if _, err := New(Options{AutoConfirm: true}).Install(context.Background(), pkg); err != nil {
		t.Fatalf("Install error = %v, want nil", err)
	}
	if !strings.Contains(stderr.String(), "device busy") {
		t.Errorf("teardown failure should be reported as a warning:\n%s", stderr.String())
	}

	shell = &recordingShell{failAt: 1, destroyErr: fmt.Errorf("device busy")}
	pkg = loadPackage(t, fullManifest, shell)
	_, err := New(Options{AutoConfirm: true}).Install(context.Background(), pkg)
	if !errors.Is(err, errors.ErrFunctionFailed) {
		t.Errorf("Install error = %v, want the function failure", err)
	}
}

func TestUninstall(t *testing.T) {
	captureOutput(t)
	shell := &recordingShell{}
	pkg := loadPackage(t, fullManifest, shell)

	result, err := New(Options{AutoConfirm: true}).Uninstall(context.Background(), pkg)
	if err != nil {
		t.Fatalf("Uninstall error: %v", err)
	}
	if len(shell.commands) != 1 || shell.commands[0] != `rm -rf "$PREFIX/foo"` {
		t.Errorf("commands = %q, want only the uninstall body", shell.commands)
	}
	if result.Operation != OpUninstall || strings.Join(result.Functions, ",") != "uninstall" {
		t.Errorf("result = %+v", result)
	}
	if shell.destroyed != 1 {
		t.Errorf("Destroy called %d times, want 1", shell.destroyed)
	}
}

func TestUninstall_NoFunction(t *testing.T) {
	_, stderr := captureOutput(t)
	shell := &recordingShell{}
	pkg := loadPackage(t, "PACKAGE_NAME=foo\ninstall() { echo hi }\n", shell)

	result, err := New(Options{AutoConfirm: true}).Uninstall(context.Background(), pkg)
	if err != nil {
		t.Fatalf("Uninstall error = %v, want nil", err)
	}
	if !result.Skipped {
		t.Error("Skipped should be set")
	}
	if len(shell.commands) != 0 {
		t.Errorf("commands = %q, want none", shell.commands)
	}
	if !strings.Contains(stderr.String(), "no uninstall function") {
		t.Errorf("expected a warning, got:\n%s", stderr.String())
	}
	if shell.destroyed != 1 {
		t.Errorf("Destroy called %d times, want 1", shell.destroyed)
	}
}

func TestUninstall_Failure(t *testing.T) {
	captureOutput(t)
	shell := &recordingShell{failAt: 1}
	pkg := loadPackage(t, fullManifest, shell)

	result, err := New(Options{AutoConfirm: true}).Uninstall(context.Background(), pkg)
	if !errors.Is(err, errors.ErrFunctionFailed) {
		t.Fatalf("Uninstall error = %v, want ErrFunctionFailed", err)
	}
	if result.Failed != "uninstall" {
		t.Errorf("Failed = %q, want %q", result.Failed, "uninstall")
	}
	if shell.destroyed != 1 {
		t.Errorf("Destroy called %d times, want 1", shell.destroyed)
	}
}

func TestInstall_ClosedPackage(t *testing.T) {
	captureOutput(t)
	shell := &recordingShell{}
	pkg := loadPackage(t, fullManifest, shell)
	_ = pkg.Close()

	_, err := New(Options{AutoConfirm: true}).Install(context.Background(), pkg)
	if !errors.Is(err, errors.ErrSandboxDestroyed) {
		t.Errorf("Install error = %v, want ErrSandboxDestroyed", err)
	}
	if shell.destroyed != 1 {
		t.Errorf("Destroy called %d times, want 1", shell.destroyed)
	}
}
