package crypto

import (
	"bytes"
	"io"

	"github.com/ProtonMail/go-crypto/openpgp/clearsign"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/pkg/errors"

	"github.com/1F35C/signature-verifier/constants"
	"github.com/1F35C/signature-verifier/internal"
)

// ClearSignedMessage is a parsed cleartext-signed message.
type ClearSignedMessage struct {
	// Canonical signed bytes, as hashed by the signer.
	data []byte
	// Cleartext with dash-escaping removed.
	plaintext []byte
	// Unarmored signature packets.
	signature []byte
	// Signature packets parsed from signature.
	signatures []*packet.Signature
}

// NewClearSignedMessageFromArmored parses an armored cleartext-signed message,
// including its signature packets.
func NewClearSignedMessageFromArmored(armored string) (*ClearSignedMessage, error) {
	block, _ := clearsign.Decode([]byte(armored))
	if block == nil {
		return nil, errors.New("sigverify: not able to parse cleartext message")
	}
	if block.ArmoredSignature == nil {
		return nil, errors.New("sigverify: cleartext message has no signature block")
	}
	if block.ArmoredSignature.Type != constants.PGPSignatureHeader {
		return nil, errors.Errorf("sigverify: unexpected armor type %q in cleartext message", block.ArmoredSignature.Type)
	}
	signature, err := io.ReadAll(block.ArmoredSignature.Body)
	if err != nil {
		return nil, errors.Wrap(err, "sigverify: signature not parsable in cleartext")
	}
	signatures, err := readSignatures(signature)
	if err != nil {
		return nil, err
	}
	return &ClearSignedMessage{
		data:       block.Bytes,
		plaintext:  block.Plaintext,
		signature:  signature,
		signatures: signatures,
	}, nil
}

// GetString returns the cleartext of the message as a valid UTF-8 string.
func (msg *ClearSignedMessage) GetString() string {
	return internal.SanitizeString(string(msg.plaintext))
}

// IsSigned returns true if the message carries signature data.
func (msg *ClearSignedMessage) IsSigned() bool {
	return len(msg.signature) > 0
}

// readSignatures parses every packet of data and keeps the signatures.
func readSignatures(data []byte) ([]*packet.Signature, error) {
	var signatures []*packet.Signature
	packets := packet.NewReader(bytes.NewReader(data))
	for {
		p, err := packets.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "sigverify: reading signature packets failed")
		}
		if sig, ok := p.(*packet.Signature); ok {
			signatures = append(signatures, sig)
		}
	}
	return signatures, nil
}
