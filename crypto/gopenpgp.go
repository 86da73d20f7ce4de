// Package crypto provides the OpenPGP primitives sigverify needs: parsing a
// public key, parsing a cleartext-signed message and checking its signature.
// It is a thin layer over github.com/ProtonMail/go-crypto.
package crypto
