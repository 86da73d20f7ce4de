// Package armor contains a set of helper methods for checking armored
// cleartext-signed messages before they reach the OpenPGP parser.
package armor

import (
	"regexp"
	"strings"

	"github.com/1F35C/signature-verifier/constants"
	"github.com/1F35C/signature-verifier/internal"
)

var clearSignedPattern = regexp.MustCompile(
	"(?s)^" + regexp.QuoteMeta(constants.SignedMessageBegin) +
		".*" + regexp.QuoteMeta(constants.SignatureBegin) +
		"[A-Za-z0-9+/=]+" + regexp.QuoteMeta(constants.SignatureEnd) + "$",
)

// Report describes the shape of an armored cleartext-signed message.
type Report struct {
	// Structured is true if the text matches the cleartext-signed armor layout.
	Structured bool
	// SignatureLength is the number of characters between the signature
	// header and footer once line breaks are removed, or -1 if the markers
	// are missing.
	SignatureLength int
}

// Valid reports whether the armor can be handed to the OpenPGP parser.
func (r Report) Valid() bool {
	return r.Structured && r.SignatureLength == constants.SignatureBodyLength
}

// Inspect collapses line breaks in text and checks it against the
// cleartext-signed armor layout.
func Inspect(text string) Report {
	collapsed := internal.CollapseLineBreaks(text)
	return Report{
		Structured:      clearSignedPattern.MatchString(collapsed),
		SignatureLength: signatureLength(collapsed),
	}
}

// IsValid returns true if text is a cleartext-signed message whose signature
// body has exactly constants.SignatureBodyLength characters.
// It never calls into the OpenPGP library.
func IsValid(text string) bool {
	return Inspect(text).Valid()
}

// IsClearSigned returns true if text carries both the signed message header
// and the signature footer. Unlike IsValid it does not check the layout.
func IsClearSigned(text string) bool {
	collapsed := internal.CollapseLineBreaks(text)
	return strings.Contains(collapsed, constants.SignedMessageBegin) &&
		strings.Contains(collapsed, constants.SignatureEnd)
}

// signatureLength returns the distance between the last signature header and
// the footer that follows it. The last header is used since a dash-escaped
// cleartext line may contain the marker as well.
func signatureLength(collapsed string) int {
	begin := strings.LastIndex(collapsed, constants.SignatureBegin)
	if begin < 0 {
		return -1
	}
	begin += len(constants.SignatureBegin)
	end := strings.Index(collapsed[begin:], constants.SignatureEnd)
	if end < 0 {
		return -1
	}
	return end
}
