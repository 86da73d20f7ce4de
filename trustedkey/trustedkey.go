// Package trustedkey embeds the public key that release announcements are
// signed with.
package trustedkey

import (
	_ "embed"
	"sync"

	"github.com/pkg/errors"

	"github.com/1F35C/signature-verifier/crypto"
)

// Fingerprint is the hex fingerprint of the embedded key.
const Fingerprint = "7f642caed5db78d8814fe02083fdef54eb70ca6a"

//go:embed release_signing_key.asc
var armored string

var (
	once   sync.Once
	key    *crypto.Key
	keyErr error
)

// Armored returns the embedded key in armored form.
func Armored() string {
	return armored
}

// Key returns the parsed embedded key. It is parsed once and shared.
func Key() (*crypto.Key, error) {
	once.Do(func() {
		key, keyErr = parse(armored, Fingerprint)
	})
	return key, keyErr
}

func parse(armored, fingerprint string) (*crypto.Key, error) {
	key, err := crypto.NewKeyFromArmored(armored)
	if err != nil {
		return nil, err
	}
	if key.IsPrivate() {
		return nil, errors.New("sigverify: embedded key must be public")
	}
	if key.GetFingerprint() != fingerprint {
		return nil, errors.Errorf("sigverify: embedded key fingerprint %s, expected %s", key.GetFingerprint(), fingerprint)
	}
	return key, nil
}
