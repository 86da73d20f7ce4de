package state

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/1F35C/signature-verifier/verifier"
)

func TestResultStateFromOutcome(t *testing.T) {
	s := resultState(&testOutcome, nil)
	succeeded, ok := s.(Succeeded)
	if !ok {
		t.Fatal("Expected Succeeded for a verified outcome, got:", s)
	}
	assert.Exactly(t, testOutcome, succeeded.Outcome())
	assert.True(t, succeeded.KeyCreationTime().Equal(time.Unix(1557754627, 0)))
	assert.True(t, succeeded.MessageSignedTime().Equal(time.Unix(1614600000, 0)))
	assert.Equal(t, "succeeded (signed 2021-03-01T12:00:00Z, key created 2019-05-13T13:37:07Z)", s.String())
}

func TestResultStateNotVerified(t *testing.T) {
	s := resultState(&verifier.Outcome{Verified: false}, nil)
	assert.Exactly(t, Failed{Reason: ReasonNotVerified}, s)
	assert.Equal(t, "failed: signature not verified", s.String())
}

func TestResultStateError(t *testing.T) {
	err := errors.Wrap(verifier.ErrMalformedArmor, "input")
	s := resultState(nil, err)
	assert.Exactly(t, Failed{Reason: err.Error()}, s)
}

func TestResultStateImpossible(t *testing.T) {
	assert.Panics(t, func() { resultState(nil, nil) })
}

func TestResultStateStrings(t *testing.T) {
	assert.Equal(t, "idle", Idle{}.String())
	assert.Equal(t, "pending", Pending{}.String())
}

func TestNewSucceeded(t *testing.T) {
	s, err := NewSucceeded(testOutcome)
	if err != nil {
		t.Fatal("Expected no error when building a succeeded state, got:", err)
	}
	assert.Exactly(t, testOutcome, s.Outcome())

	_, err = NewSucceeded(verifier.Outcome{KeyCreationTime: testOutcome.KeyCreationTime})
	assert.EqualError(t, err, "sigverify: succeeded state needs a verified outcome")
}

func TestMustBeValid(t *testing.T) {
	succeeded, err := NewSucceeded(testOutcome)
	if err != nil {
		t.Fatal("Expected no error when building a succeeded state, got:", err)
	}
	for _, s := range []ResultState{Idle{}, Pending{}, succeeded, Failed{Reason: ReasonNotVerified}} {
		assert.NotPanics(t, func() { mustBeValid(s) }, s.String())
	}

	assert.Panics(t, func() { mustBeValid(Succeeded{}) })
	assert.Panics(t, func() { mustBeValid(Failed{}) })
	assert.Panics(t, func() { mustBeValid(nil) })
}
