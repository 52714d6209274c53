package exec

import (
	"bytes"
	"context"
	"errors"
	osexec "os/exec"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a single run. Verification snippets are a few
	// arithmetic lines; anything slower is a loop gone wrong.
	DefaultTimeout = 10 * time.Second

	// maxStderr caps the excerpt carried back in errors.
	maxStderr = 2048
)

// PythonRunner executes snippets with a Python interpreter read from PATH.
// Each call spawns a fresh process with the code piped on stdin.
type PythonRunner struct {
	// Interpreter is the binary to invoke. Empty means "python3".
	Interpreter string

	// Timeout bounds each run. Zero means DefaultTimeout.
	Timeout time.Duration
}

func NewPythonRunner() *PythonRunner {
	return &PythonRunner{Interpreter: "python3", Timeout: DefaultTimeout}
}

func (r *PythonRunner) Run(ctx context.Context, code string) (string, error) {
	interp := r.Interpreter
	if interp == "" {
		interp = "python3"
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// "-I" runs isolated: no site packages, no user environment leaking in.
	cmd := osexec.CommandContext(runCtx, interp, "-I", "-")
	cmd.Stdin = strings.NewReader(code)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	if runCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		return "", &Error{Kind: KindTimeout, Err: runCtx.Err()}
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	return "", classify(err, stderr.String())
}

// classify maps a non-zero exit into a typed Error using the interpreter's
// stderr. CPython reports parse failures as SyntaxError (or its
// IndentationError and TabError subclasses) before any code runs.
func classify(err error, stderr string) *Error {
	excerpt := trimStderr(stderr)

	var exitErr *osexec.ExitError
	if !errors.As(err, &exitErr) {
		return &Error{Kind: KindRuntime, Stderr: excerpt, Err: err}
	}

	for _, marker := range []string{"SyntaxError", "IndentationError", "TabError"} {
		if strings.Contains(stderr, marker) {
			return &Error{Kind: KindSyntax, Stderr: excerpt, Err: err}
		}
	}
	return &Error{Kind: KindRuntime, Stderr: excerpt, Err: err}
}

// trimStderr keeps the tail of stderr, where Python puts the actual
// exception line, bounded to maxStderr bytes.
func trimStderr(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxStderr {
		return s
	}
	return s[len(s)-maxStderr:]
}
