// Package checker runs pydocstyle as an external convention checker.
package checker

import (
	"bytes"
	"context"
	"docscan/internal/core/errors"
	"docscan/internal/core/ports"
	"docscan/internal/engine/compliance"
	"docscan/internal/shared/util"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

const (
	DefaultExecutable = "pydocstyle"
	DefaultTimeout    = 30 * time.Second

	exitViolations = 1

	// matchAllSources overrides pydocstyle's default --match, which skips
	// test_*.py even when the file is named on the command line. The scanner
	// already decides which files are checked.
	matchAllSources = `--match=.*\.py`
)

type Options struct {
	Executable string
	// Args are prepended to every invocation, e.g. ["-m", "pydocstyle"] when
	// Executable is a Python interpreter.
	Args    []string
	Timeout time.Duration
	// Limiter throttles subprocess spawns. Nil disables throttling.
	Limiter *util.Limiter
}

// Pydocstyle implements ports.DocChecker.
type Pydocstyle struct {
	executable string
	args       []string
	timeout    time.Duration
	limiter    *util.Limiter
}

var _ ports.DocChecker = (*Pydocstyle)(nil)

func NewPydocstyle(opts Options) *Pydocstyle {
	exe := strings.TrimSpace(opts.Executable)
	if exe == "" {
		exe = DefaultExecutable
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Pydocstyle{
		executable: exe,
		args:       append([]string(nil), opts.Args...),
		timeout:    timeout,
		limiter:    opts.Limiter,
	}
}

func (p *Pydocstyle) Name() string { return "pydocstyle" }

// Available reports whether the executable can be resolved on PATH.
func (p *Pydocstyle) Available() error {
	if _, err := exec.LookPath(p.executable); err != nil {
		return errors.AddContext(errors.Wrap(err, errors.CodeCheckerUnavailable, "checker executable not found"), errors.CtxCommand, p.executable)
	}
	return nil
}

// Check runs pydocstyle on path and returns its findings in report order.
func (p *Pydocstyle) Check(ctx context.Context, path string, opts ports.CheckOptions) ([]compliance.Violation, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx, 1); err != nil {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeCheckerFailure, "checker throttled"), errors.CtxPath, path)
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	args := append(append([]string(nil), p.args...), BuildArgs(opts)...)
	args = append(args, matchAllSources, path)

	cmd := exec.CommandContext(runCtx, p.executable, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	err := cmd.Run()
	slog.Debug("checker finished", "checker", p.Name(), "path", path, "duration", time.Since(start), "error", err)

	if err == nil {
		return ParseOutput(stdout.Bytes()), nil
	}

	if stderrors.Is(err, exec.ErrNotFound) || stderrors.Is(err, fs.ErrNotExist) {
		de := &errors.DomainError{
			Code:    errors.CodeCheckerUnavailable,
			Message: fmt.Sprintf("%s executable not found", p.executable),
			Err:     err,
		}
		return nil, de.WithContext(errors.CtxCommand, p.executable).WithContext(errors.CtxPath, path)
	}
	if runCtx.Err() != nil {
		de := &errors.DomainError{
			Code:    errors.CodeCheckerFailure,
			Message: "checker timed out or was cancelled",
			Err:     runCtx.Err(),
		}
		return nil, de.WithContext(errors.CtxCommand, p.executable).WithContext(errors.CtxPath, path)
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) && exitErr.ExitCode() == exitViolations {
		violations := ParseOutput(stdout.Bytes())
		if len(violations) > 0 {
			return violations, nil
		}
	}

	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		msg = "checker exited abnormally"
	}
	de := &errors.DomainError{
		Code:    errors.CodeCheckerFailure,
		Message: msg,
		Err:     err,
	}
	return nil, de.WithContext(errors.CtxCommand, p.executable).WithContext(errors.CtxPath, path)
}

// BuildArgs translates rule options into pydocstyle flags. pydocstyle rejects
// --select, --ignore and --convention together, so only one base set is
// passed and Ignore becomes --add-ignore on top of a convention.
func BuildArgs(opts ports.CheckOptions) []string {
	var args []string
	switch {
	case len(opts.Select) > 0:
		args = append(args, "--select="+strings.Join(opts.Select, ","))
		if len(opts.Ignore) > 0 {
			args = append(args, "--add-ignore="+strings.Join(opts.Ignore, ","))
		}
	case opts.Convention != "":
		args = append(args, "--convention="+opts.Convention)
		if len(opts.Ignore) > 0 {
			args = append(args, "--add-ignore="+strings.Join(opts.Ignore, ","))
		}
	case len(opts.Ignore) > 0:
		args = append(args, "--ignore="+strings.Join(opts.Ignore, ","))
	}
	return args
}

// ConventionFor maps a docstring style to the pydocstyle convention that
// checks it. reST has no dedicated convention and uses the default rules.
func ConventionFor(style string) string {
	switch strings.ToLower(style) {
	case "google":
		return "google"
	case "numpy":
		return "numpy"
	}
	return ""
}
