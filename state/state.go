// Package state tracks what a presentation layer should display while the
// text it feeds in is being verified.
package state

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/1F35C/signature-verifier/verifier"
)

// ReasonNotVerified is the failure reason when the signature was checked and
// did not match the trusted key.
const ReasonNotVerified = "signature not verified"

// ResultState is one of Idle, Pending, Succeeded or Failed.
type ResultState interface {
	fmt.Stringer
	isResultState()
}

// Idle is the state for empty input.
type Idle struct{}

// Pending is the state while the latest input is being verified.
type Pending struct{}

// Succeeded is the state after the latest input verified.
// The zero value is not a valid state; use NewSucceeded.
type Succeeded struct {
	outcome verifier.Outcome
}

// NewSucceeded returns the Succeeded state for a verified outcome.
func NewSucceeded(outcome verifier.Outcome) (Succeeded, error) {
	if !outcome.Verified {
		return Succeeded{}, errors.New("sigverify: succeeded state needs a verified outcome")
	}
	return Succeeded{outcome: outcome}, nil
}

// Failed is the state after the latest input could not be verified.
type Failed struct {
	Reason string
}

func (Idle) isResultState()      {}
func (Pending) isResultState()   {}
func (Succeeded) isResultState() {}
func (Failed) isResultState()    {}

func (Idle) String() string    { return "idle" }
func (Pending) String() string { return "pending" }

func (s Succeeded) String() string {
	return fmt.Sprintf("succeeded (signed %s, key created %s)",
		s.outcome.MessageSignedTime.UTC().Format(time.RFC3339),
		s.outcome.KeyCreationTime.UTC().Format(time.RFC3339))
}

func (s Failed) String() string {
	return "failed: " + s.Reason
}

// Outcome returns the verification outcome.
func (s Succeeded) Outcome() verifier.Outcome {
	return s.outcome
}

// KeyCreationTime returns the creation time of the key that verified.
func (s Succeeded) KeyCreationTime() time.Time {
	return s.outcome.KeyCreationTime
}

// MessageSignedTime returns the creation time of the signature.
func (s Succeeded) MessageSignedTime() time.Time {
	return s.outcome.MessageSignedTime
}

// resultState maps the settled verification of one input to a state.
func resultState(outcome *verifier.Outcome, err error) ResultState {
	switch {
	case err != nil:
		return Failed{Reason: err.Error()}
	case outcome == nil:
		panic("state: verifier returned neither an outcome nor an error")
	case outcome.Verified:
		succeeded, _ := NewSucceeded(*outcome)
		return succeeded
	default:
		return Failed{Reason: ReasonNotVerified}
	}
}

// mustBeValid panics on a state the controller can never hold.
func mustBeValid(s ResultState) {
	switch s := s.(type) {
	case Idle, Pending:
	case Succeeded:
		if !s.outcome.Verified {
			panic("state: succeeded without a verified outcome")
		}
	case Failed:
		if s.Reason == "" {
			panic("state: failed without a reason")
		}
	default:
		panic(fmt.Sprintf("state: unknown result state %T", s))
	}
}
