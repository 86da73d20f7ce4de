package profile

import (
	"github.com/pkg/errors"
)

// Default returns the profile release signatures are checked with.
func Default() *Custom {
	return &Custom{
		Name:       "default",
		MinRSABits: 2048,
	}
}

// RFC4880 returns a profile accepting every public key algorithm
// of RFC4880, including deprecated ones.
func RFC4880() *Custom {
	return &Custom{
		Name:                        "rfc4880",
		MinRSABits:                  2048,
		AllowAllPublicKeyAlgorithms: true,
	}
}

// Legacy returns a profile that also accepts weak RSA keys.
// It should only be used to check old archived announcements.
func Legacy() *Custom {
	return &Custom{
		Name:                        "legacy",
		AllowAllPublicKeyAlgorithms: true,
		InsecureAllowWeakRSA:        true,
	}
}

// ByName returns the pre-defined profile with the given name.
func ByName(name string) (*Custom, error) {
	switch name {
	case "", "default":
		return Default(), nil
	case "rfc4880":
		return RFC4880(), nil
	case "legacy":
		return Legacy(), nil
	default:
		return nil, errors.Errorf("sigverify: unknown profile %q", name)
	}
}
