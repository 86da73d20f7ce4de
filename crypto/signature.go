package crypto

import (
	"fmt"
	"time"

	pgpErrors "github.com/ProtonMail/go-crypto/openpgp/errors"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/pkg/errors"

	"github.com/1F35C/signature-verifier/constants"
)

// SignatureVerificationError is returned by Verification.Result when the
// signature could be checked but did not verify.
type SignatureVerificationError struct {
	Status  int
	Message string
	Cause   error
}

// VerifyResult is a result of a cleartext signature verification.
type VerifyResult struct {
	// The key that produced the signature, nil if no trusted key matched.
	signedBy *Key
	// The signature error. Is nil for a successful verification.
	signatureError *SignatureVerificationError
}

// SignedByKey returns the key that was used to verify the signature,
// if found, else returns nil.
func (vr *VerifyResult) SignedByKey() *Key {
	if vr == nil {
		return nil
	}
	return vr.signedBy
}

// SignatureError returns nil if no signature err occurred else
// the signature error.
func (vr *VerifyResult) SignatureError() error {
	if vr == nil || vr.signatureError == nil {
		return nil
	}
	return *vr.signatureError
}

// SignatureErrorExplicit returns nil if no signature err occurred else
// the explicit signature error.
func (vr *VerifyResult) SignatureErrorExplicit() *SignatureVerificationError {
	return vr.signatureError
}

// Error is the base method for all errors.
func (e SignatureVerificationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Signature Verification Error: %v caused by %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("Signature Verification Error: %v", e.Message)
}

// Unwrap returns the cause of failure.
func (e SignatureVerificationError) Unwrap() error {
	return e.Cause
}

// SignatureCreationTime returns the creation time of the first signature
// that carries one, or the zero unix time if none does.
func SignatureCreationTime(signatures []*packet.Signature) time.Time {
	for _, sig := range signatures {
		if sig != nil && !sig.CreationTime.IsZero() {
			return sig.CreationTime
		}
	}
	return time.Unix(0, 0)
}

// ------------------
// Internal functions
// ------------------

// filterSignatureError maps go-crypto errors that mean "checked, but not
// valid" to a SignatureVerificationError. Any other error is returned as nil.
func filterSignatureError(err error) *SignatureVerificationError {
	var sigErr pgpErrors.SignatureError
	var keyErr pgpErrors.KeyInvalidError
	var verificationError SignatureVerificationError

	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgpErrors.ErrUnknownIssuer):
		verificationError = newSignatureNoVerifier()
	case errors.Is(err, pgpErrors.ErrSignatureExpired),
		errors.Is(err, pgpErrors.ErrKeyExpired),
		errors.As(err, &sigErr),
		errors.As(err, &keyErr):
		verificationError = newSignatureFailed(err)
	default:
		return nil
	}
	return &verificationError
}

// newSignatureFailed creates a new SignatureVerificationError, type
// SignatureFailed.
func newSignatureFailed(cause error) SignatureVerificationError {
	return SignatureVerificationError{
		Status:  constants.SIGNATURE_FAILED,
		Message: "Invalid signature",
		Cause:   cause,
	}
}

// newSignatureNotSigned creates a new SignatureVerificationError, type
// SignatureNotSigned.
func newSignatureNotSigned() SignatureVerificationError {
	return SignatureVerificationError{
		Status:  constants.SIGNATURE_NOT_SIGNED,
		Message: "Missing signature",
	}
}

// newSignatureNoVerifier creates a new SignatureVerificationError, type
// SignatureNoVerifier.
func newSignatureNoVerifier() SignatureVerificationError {
	return SignatureVerificationError{
		Status:  constants.SIGNATURE_NO_VERIFIER,
		Message: "No matching signature",
	}
}
