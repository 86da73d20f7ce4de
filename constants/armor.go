// Package constants provides a set of common OpenPGP constants.
package constants

// Constants for armored data.
const (
	PGPSignedMessageHeader = "PGP SIGNED MESSAGE"
	PGPSignatureHeader     = "PGP SIGNATURE"
	PublicKeyHeader        = "PGP PUBLIC KEY BLOCK"
)

// Armor markers of a cleartext-signed message.
const (
	SignedMessageBegin = "-----BEGIN " + PGPSignedMessageHeader + "-----"
	SignatureBegin     = "-----BEGIN " + PGPSignatureHeader + "-----"
	SignatureEnd       = "-----END " + PGPSignatureHeader + "-----"
)

// SignatureBodyLength is the number of characters between SignatureBegin and
// SignatureEnd once line breaks are removed: the base64 body of one
// RSA-4096 signature packet plus the "=XXXX" checksum line.
// It is bound to the trusted key in package trustedkey and must change with it.
const SignatureBodyLength = 761
