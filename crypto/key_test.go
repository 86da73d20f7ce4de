package crypto

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeyFromArmored(t *testing.T) {
	key := readTestKey(t, "keyring_publicKey")

	assert.Exactly(t, int64(testKeyCreationTime), key.CreationTime().Unix())
	assert.Exactly(t, testFingerprint, key.GetFingerprint())
	assert.Exactly(t, testFingerprint[24:], key.GetHexKeyID())
	assert.Exactly(t, "rsa", key.GetAlgorithm())
	assert.False(t, key.IsPrivate())

	bits, err := key.GetBitLength()
	if err != nil {
		t.Fatal("Expected no error when reading bit length, got:", err)
	}
	assert.Exactly(t, 4096, bits)
}

func TestNewKeyFromArmoredOtherKey(t *testing.T) {
	key := readTestKey(t, "keyring_otherPublicKey")

	assert.Exactly(t, testOtherKeyID, key.GetHexKeyID())
	assert.NotEqual(t, testFingerprint, key.GetFingerprint())
}

func TestNewKeyFromArmoredErrors(t *testing.T) {
	armored := readTestFile("keyring_publicKey", false)

	var tests = map[string]string{
		"empty":          "",
		"garbage":        "this is not a key",
		"signed message": readTestFile("message_signed", false),
		"truncated":      armored[:len(armored)/2] + "\n-----END PGP PUBLIC KEY BLOCK-----\n",
	}
	for name, input := range tests {
		key, err := NewKeyFromArmored(input)
		assert.Error(t, err, name)
		assert.Nil(t, key, name)
	}
}

func TestNewKeyFromEntityNil(t *testing.T) {
	_, err := NewKeyFromEntity(nil)
	assert.Error(t, err)
}

func TestKeyArmor(t *testing.T) {
	key := readTestKey(t, "keyring_publicKey")

	armored, err := key.Armor()
	if err != nil {
		t.Fatal("Expected no error when armoring key, got:", err)
	}

	rTest := regexp.MustCompile("(?s)^-----BEGIN PGP PUBLIC KEY BLOCK-----.*-----END PGP PUBLIC KEY BLOCK-----$")
	assert.Regexp(t, rTest, strings.TrimSpace(armored))

	reread, err := NewKeyFromArmored(armored)
	if err != nil {
		t.Fatal("Expected no error when reading armored key, got:", err)
	}
	assert.Exactly(t, key.GetFingerprint(), reread.GetFingerprint())
	assert.True(t, key.CreationTime().Equal(reread.CreationTime()))
}
