package verifier

import (
	"github.com/pkg/errors"
)

// Kind classifies why a verification attempt could not produce an Outcome.
type Kind int

const (
	// KindEmptyMessage: the message is the empty string.
	KindEmptyMessage Kind = iota + 1
	// KindMalformedArmor: the message failed the armor pre-check.
	KindMalformedArmor
	// KindKeyParse: the public key could not be parsed.
	KindKeyParse
	// KindMessageParse: the cleartext-signed message could not be parsed.
	KindMessageParse
	// KindLibrary: the OpenPGP library failed while checking the signature.
	KindLibrary
	// KindTimeout: the attempt did not finish within the engine timeout.
	KindTimeout
	// KindCanceled: the caller canceled the attempt.
	KindCanceled
)

var kindNames = map[Kind]string{
	KindEmptyMessage:   "empty_message",
	KindMalformedArmor: "malformed_armor",
	KindKeyParse:       "key_parse_error",
	KindMessageParse:   "message_parse_error",
	KindLibrary:        "verification_library_error",
	KindTimeout:        "timeout",
	KindCanceled:       "canceled",
}

var kindMessages = map[Kind]string{
	KindEmptyMessage:   "sigverify: message is empty",
	KindMalformedArmor: "sigverify: message is not a well-formed cleartext-signed armor",
	KindKeyParse:       "sigverify: unable to parse public key",
	KindMessageParse:   "sigverify: unable to parse signed message",
	KindLibrary:        "sigverify: signature verification failed",
	KindTimeout:        "sigverify: verification timed out",
	KindCanceled:       "sigverify: verification canceled",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Sentinel errors for errors.Is.
var (
	ErrEmptyMessage        = &Error{Kind: KindEmptyMessage}
	ErrMalformedArmor      = &Error{Kind: KindMalformedArmor}
	ErrKeyParse            = &Error{Kind: KindKeyParse}
	ErrMessageParse        = &Error{Kind: KindMessageParse}
	ErrVerificationLibrary = &Error{Kind: KindLibrary}
	ErrTimeout             = &Error{Kind: KindTimeout}
	ErrCanceled            = &Error{Kind: KindCanceled}
)

// Error is returned by Engine.Verify when no Outcome could be produced.
type Error struct {
	Kind Kind
	Err  error
}

func newError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

// Error returns the message of the failure. Library errors keep the text of
// the underlying error unchanged.
func (e *Error) Error() string {
	if e.Err == nil {
		return kindMessages[e.Kind]
	}
	if e.Kind == KindLibrary {
		return e.Err.Error()
	}
	return kindMessages[e.Kind] + ": " + e.Err.Error()
}

// Unwrap returns the cause of failure.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinel errors of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Kind
	}
	return 0
}
