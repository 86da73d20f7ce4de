// Package helper contains one-call wrappers for verifying cleartext-signed
// messages against a key or the embedded release signing key.
package helper

import (
	"context"

	"github.com/pkg/errors"

	"github.com/1F35C/signature-verifier/crypto"
	"github.com/1F35C/signature-verifier/trustedkey"
	"github.com/1F35C/signature-verifier/verifier"
)

// VerifyCleartextMessageArmored verifies PGP-compliant armored signed plain text given an armored public key.
func VerifyCleartextMessageArmored(ctx context.Context, publicKey, armored string) (*verifier.Outcome, error) {
	return verifier.Verify(ctx, armored, publicKey)
}

// VerifyCleartextMessage verifies PGP-compliant armored signed plain text given a parsed public key.
func VerifyCleartextMessage(ctx context.Context, key *crypto.Key, armored string) (*verifier.Outcome, error) {
	return verifier.New(key).Verify(ctx, armored)
}

// VerifyTrustedCleartextMessage verifies PGP-compliant armored signed plain text against the embedded release key.
func VerifyTrustedCleartextMessage(ctx context.Context, armored string) (*verifier.Outcome, error) {
	key, err := trustedkey.Key()
	if err != nil {
		return nil, errors.Wrap(err, "sigverify: unable to load trusted key")
	}
	return VerifyCleartextMessage(ctx, key, armored)
}

// ReadTrustedCleartextMessage verifies armored signed plain text against the embedded release key
// and returns the text, or err if the verification fails.
func ReadTrustedCleartextMessage(ctx context.Context, armored string) (string, error) {
	outcome, err := VerifyTrustedCleartextMessage(ctx, armored)
	if err != nil {
		return "", err
	}
	if !outcome.Verified {
		return "", errors.New("sigverify: unable to verify cleartext message")
	}

	message, err := crypto.NewClearSignedMessageFromArmored(armored)
	if err != nil {
		return "", err
	}
	return message.GetString(), nil
}
