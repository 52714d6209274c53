// Package exec runs machine-generated verification code in a subprocess
// and reports structured outcomes. Every run is a fresh process; nothing
// is shared between runs.
package exec

import (
	"context"
	"fmt"
	"sync"
)

// Kind classifies an execution failure.
type Kind int

const (
	// KindSyntax means the code never started: it failed to parse.
	KindSyntax Kind = iota
	// KindRuntime means the code started but raised or exited non-zero.
	KindRuntime
	// KindTimeout means the run exceeded its deadline and was killed.
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindRuntime:
		return "runtime"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error describes a failed execution. Stderr carries a trimmed excerpt of
// the interpreter's error output so callers can feed it back to the model.
type Error struct {
	Kind   Kind
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("execution failed (%s): %s", e.Kind, e.Stderr)
	}
	return fmt.Sprintf("execution failed (%s): %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Runner executes a snippet of code and returns its standard output.
// Implementations must honor ctx cancellation.
type Runner interface {
	Run(ctx context.Context, code string) (string, error)
}

// MockResult is a canned outcome for MockRunner.
type MockResult struct {
	Output string
	Err    error
}

// MockRunner returns canned results in order. When the queue is empty it
// returns a runtime Error.
type MockRunner struct {
	mu      sync.Mutex
	results []MockResult

	// Codes records every snippet passed to Run, in order.
	Codes []string
}

func NewMockRunner(results ...MockResult) *MockRunner {
	return &MockRunner{results: results}
}

func (m *MockRunner) Run(_ context.Context, code string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Codes = append(m.Codes, code)
	if len(m.results) == 0 {
		return "", &Error{Kind: KindRuntime, Stderr: "mock runner: no results queued"}
	}
	r := m.results[0]
	m.results = m.results[1:]
	return r.Output, r.Err
}

// AddResult appends a canned result to the queue.
func (m *MockRunner) AddResult(r MockResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
}

// RunCount returns how many times Run has been called.
func (m *MockRunner) RunCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Codes)
}
