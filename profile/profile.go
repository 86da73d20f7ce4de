// Package profile provides the OpenPGP policies signatures are checked with.
package profile

import (
	"time"

	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

const weakMinRSABits = 1023

// Custom type represents a profile for setting the algorithm
// policy used when verifying signatures.
// Use one of the pre-defined profiles if possible.
// i.e., profile.Default(), profile.RFC4880().
type Custom struct {
	// Name identifies the profile in configuration files.
	Name string
	// MinRSABits is the smallest accepted RSA modulus.
	// If zero, the go-crypto default is used.
	MinRSABits uint16
	// AllowAllPublicKeyAlgorithms is a flag to disable all checks for deprecated public key algorithms.
	AllowAllPublicKeyAlgorithms bool
	// InsecureAllowWeakRSA is a flag to disable checks for weak rsa keys.
	InsecureAllowWeakRSA bool
}

// VerifyConfig returns the go-crypto configuration for checking signatures
// at the time given by clock.
func (p *Custom) VerifyConfig(clock func() time.Time) *packet.Config {
	config := &packet.Config{
		Time:       clock,
		MinRSABits: p.MinRSABits,
	}
	if p.AllowAllPublicKeyAlgorithms {
		config.RejectPublicKeyAlgorithms = map[packet.PublicKeyAlgorithm]bool{}
	}
	if p.InsecureAllowWeakRSA {
		config.MinRSABits = weakMinRSABits
	}
	return config
}
