package main

import (
	"fmt"

	"github.com/1F35C/signature-verifier/armor"
	"github.com/1F35C/signature-verifier/constants"
)

// armorHint says why text does not have the expected armor shape. It returns
// an empty string for valid armor.
func armorHint(text string) string {
	report := armor.Inspect(text)
	switch {
	case report.Valid():
		return ""
	case !armor.IsClearSigned(text):
		return "no cleartext-signed message markers found"
	case !report.Structured:
		return "markers found, but the text is not laid out as a cleartext-signed message"
	default:
		return fmt.Sprintf("markers found, but the signature is %d characters long instead of %d",
			report.SignatureLength, constants.SignatureBodyLength)
	}
}
