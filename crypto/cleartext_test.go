package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testCleartext = "Release 1.4.2 is approved for distribution.\nChecksum: 3f2a9c1e"

func TestNewClearSignedMessageFromArmored(t *testing.T) {
	message := readTestMessage(t, "message_signed")

	assert.Exactly(t, testCleartext, strings.TrimRight(message.GetString(), "\n"))
	assert.Exactly(t, strings.ReplaceAll(testCleartext, "\n", "\r\n"), string(message.data))
	assert.True(t, message.IsSigned())
	assert.NotEmpty(t, message.signature)
	assert.Len(t, message.signatures, 1)
	assert.Exactly(t, int64(testSignatureTime), message.signatures[0].CreationTime.Unix())
}

func TestNewClearSignedMessageFromArmoredCRLF(t *testing.T) {
	armored := strings.ReplaceAll(readTestFile("message_signed", false), "\n", "\r\n")

	message, err := NewClearSignedMessageFromArmored(armored)
	if err != nil {
		t.Fatal("Expected no error when parsing CRLF message, got:", err)
	}
	assert.Exactly(t, strings.ReplaceAll(testCleartext, "\n", "\r\n"), string(message.data))
}

func TestNewClearSignedMessageFromArmoredErrors(t *testing.T) {
	signed := readTestFile("message_signed", false)

	var tests = map[string]string{
		"empty":       "",
		"garbage":     "not a message",
		"public key":  readTestFile("keyring_publicKey", false),
		"no begin":    strings.Replace(signed, "-----BEGIN PGP SIGNED MESSAGE-----", "", 1),
		"broken body": strings.Replace(signed, "iQIz", "i*Iz", 1),
	}
	for name, input := range tests {
		message, err := NewClearSignedMessageFromArmored(input)
		assert.Error(t, err, name)
		assert.Nil(t, message, name)
	}
}

func TestNewClearSignedMessageFromArmoredCorruptPacket(t *testing.T) {
	message, err := NewClearSignedMessageFromArmored(readTestFile("message_corrupt_packet", false))
	assert.Nil(t, message)
	if err == nil {
		t.Fatal("Expected an error when parsing a corrupt signature packet")
	}
	assert.Contains(t, err.Error(), "sigverify: reading signature packets failed")
}

func TestReadSignaturesEmpty(t *testing.T) {
	signatures, err := readSignatures(nil)
	assert.NoError(t, err)
	assert.Empty(t, signatures)
}
