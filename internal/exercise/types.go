// Package exercise generates computational exercises and verifies them in
// a closed loop: request a candidate from the model, run its verification
// code, compare the executed result against the claimed answer, and retry
// with a fresh candidate until it checks out or the attempt budget runs dry.
package exercise

// Candidate is one unverified exercise proposal produced by a single
// generation call. A retry produces a new Candidate; existing ones are
// never mutated.
type Candidate struct {
	// Statement is the exercise text shown to the learner.
	Statement string

	// ClaimedAnswer is the model's answer, kept as a string so discrete
	// and numeric answers share one representation.
	ClaimedAnswer string

	// Steps is the ordered worked solution.
	Steps []string

	// VerificationCode is a standalone script that recomputes the answer
	// and prints it on stdout.
	VerificationCode string

	// ChunkID identifies the source chunk this exercise was drawn from.
	ChunkID int
}

// Status is the terminal disposition of a verification run, and the
// per-attempt detail inside a trace.
type Status string

const (
	// StatusVerified means the executed result matched the claimed answer.
	StatusVerified Status = "verified"

	// StatusUnverified marks an attempt whose execution succeeded but
	// whose result did not match.
	StatusUnverified Status = "unverified"

	// StatusExecutionError marks an attempt whose generation or execution
	// failed before any comparison could happen.
	StatusExecutionError Status = "execution_error"

	// StatusExhausted means the attempt budget ran out without a match.
	StatusExhausted Status = "exhausted"
)

// Attempt is one recorded cycle of the verification loop.
type Attempt struct {
	// Candidate is the proposal this attempt checked. Zero-valued when
	// generation itself failed and no candidate was produced.
	Candidate Candidate

	// Result is the executed output, trimmed. Empty on execution failure.
	Result string

	// ExecErr is the typed error that stopped this attempt: an exec.Error
	// when the code failed to run, or the model error when generation
	// produced nothing usable. Nil when the code ran to completion.
	ExecErr error

	// Matched reports whether Result matched the claimed answer.
	Matched bool
}

// Status classifies the attempt for trace display.
func (a Attempt) Status() Status {
	switch {
	case a.Matched:
		return StatusVerified
	case a.ExecErr != nil:
		return StatusExecutionError
	default:
		return StatusUnverified
	}
}

// Outcome is the terminal, immutable result of verifying one exercise.
type Outcome struct {
	// Candidate is the final candidate checked. On StatusVerified it is
	// the accepted exercise; on StatusExhausted, the last rejected one.
	Candidate Candidate

	// Status is StatusVerified or StatusExhausted.
	Status Status

	// AttemptsUsed equals len(Trace).
	AttemptsUsed int

	// Trace records every attempt in order.
	Trace []Attempt
}

// Verified reports whether the exercise was accepted.
func (o Outcome) Verified() bool {
	return o.Status == StatusVerified
}
