package crypto

import (
	"bytes"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/pkg/errors"

	"github.com/1F35C/signature-verifier/profile"
)

// ErrNotSigned is returned when a message that must be signed carries no
// signature packet.
var ErrNotSigned = errors.New("sigverify: message is not signed")

// Verification is a started check of a cleartext-signed message against a
// key. Result and Signatures are independent and may be called concurrently.
type Verification struct {
	message       *ClearSignedMessage
	key           *Key
	requireSigned bool
	clock         Clock
	profile       *profile.Custom
}

// VerifyClearSigned prepares the verification of message with key.
// If requireSigned is set, a message without signature data is rejected with
// ErrNotSigned. If clock is nil, the system clock is used.
func VerifyClearSigned(message *ClearSignedMessage, key *Key, requireSigned bool, clock Clock) (*Verification, error) {
	if message == nil {
		return nil, errors.New("sigverify: no message provided")
	}
	if key == nil {
		return nil, errors.New("sigverify: no verification key provided")
	}
	if requireSigned && !message.IsSigned() {
		return nil, ErrNotSigned
	}
	if clock == nil {
		clock = SystemClock
	}
	return &Verification{
		message:       message,
		key:           key,
		requireSigned: requireSigned,
		clock:         clock,
		profile:       profile.Default(),
	}, nil
}

// WithProfile sets the algorithm policy of the check. It must be called
// before Result.
func (v *Verification) WithProfile(p *profile.Custom) *Verification {
	if p != nil {
		v.profile = p
	}
	return v
}

// Result checks the signature. A signature that does not verify is reported
// through VerifyResult.SignatureError; an error is only returned if it is not
// a signature error.
func (v *Verification) Result() (*VerifyResult, error) {
	if !v.message.IsSigned() {
		signatureError := newSignatureNotSigned()
		return &VerifyResult{signatureError: &signatureError}, nil
	}
	config := v.profile.VerifyConfig(v.clock)
	signer, err := openpgp.CheckDetachedSignature(
		v.key.getEntities(),
		bytes.NewReader(v.message.data),
		bytes.NewReader(v.message.signature),
		config,
	)
	if err != nil {
		signatureError := filterSignatureError(err)
		if signatureError == nil {
			return nil, errors.Wrap(err, "sigverify: verification failed with non-signature error")
		}
		return &VerifyResult{signatureError: signatureError}, nil
	}
	result := &VerifyResult{}
	if signer != nil {
		result.signedBy = &Key{entity: signer}
	}
	return result, nil
}

// Signatures returns the signature packets of the message.
func (v *Verification) Signatures() ([]*packet.Signature, error) {
	if v.requireSigned && len(v.message.signatures) == 0 {
		return nil, ErrNotSigned
	}
	return v.message.signatures, nil
}
