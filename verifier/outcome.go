package verifier

import (
	"time"
)

// Outcome is the result of a verification attempt that ran to completion.
// Verified is false when the signature was checked and did not match.
type Outcome struct {
	Verified          bool      `json:"verified"`
	KeyCreationTime   time.Time `json:"key_creation_time"`
	MessageSignedTime time.Time `json:"message_signed_time"`
}

// HasSignedTime returns false when no signature packet carried a creation
// time and MessageSignedTime holds the zero unix time.
func (o Outcome) HasSignedTime() bool {
	return o.MessageSignedTime.Unix() != 0
}
