package crypto

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/pkg/errors"

	"github.com/1F35C/signature-verifier/constants"
)

// Key contains a single public key.
type Key struct {
	// PGP entity of the key.
	entity *openpgp.Entity
}

// --- Create Key object

// NewKeyFromReader reads armored data into a Key object.
// Only the first key of the armored key ring is kept.
func NewKeyFromReader(r io.Reader) (*Key, error) {
	entities, err := openpgp.ReadArmoredKeyRing(r)
	if err != nil {
		return nil, errors.Wrap(err, "sigverify: error in reading key ring")
	}
	if len(entities) == 0 {
		return nil, errors.New("sigverify: the key ring is empty")
	}
	return NewKeyFromEntity(entities[0])
}

// NewKeyFromArmored creates a new key from the first key in an armored string.
func NewKeyFromArmored(armored string) (*Key, error) {
	return NewKeyFromReader(strings.NewReader(armored))
}

// NewKeyFromEntity creates a key from the provided go-crypto/openpgp entity.
func NewKeyFromEntity(entity *openpgp.Entity) (*Key, error) {
	if entity == nil || entity.PrimaryKey == nil {
		return nil, errors.New("sigverify: nil entity provided")
	}
	return &Key{entity: entity}, nil
}

// --- Export key

// Serialize outputs the public key in binary format.
func (key *Key) Serialize() ([]byte, error) {
	var buffer bytes.Buffer
	if err := key.entity.Serialize(&buffer); err != nil {
		return nil, errors.Wrap(err, "sigverify: error in serializing key")
	}
	return buffer.Bytes(), nil
}

// Armor returns the armored public key as a string.
func (key *Key) Armor() (string, error) {
	serialized, err := key.Serialize()
	if err != nil {
		return "", err
	}
	var buffer bytes.Buffer
	w, err := armor.Encode(&buffer, constants.PublicKeyHeader, nil)
	if err != nil {
		return "", errors.Wrap(err, "sigverify: unable to encode armoring")
	}
	if _, err = w.Write(serialized); err != nil {
		return "", errors.Wrap(err, "sigverify: unable to write armored to buffer")
	}
	if err = w.Close(); err != nil {
		return "", errors.Wrap(err, "sigverify: unable to close armor buffer")
	}
	return buffer.String(), nil
}

// --- Key properties

// CreationTime returns the creation time of the primary key.
func (key *Key) CreationTime() time.Time {
	return key.entity.PrimaryKey.CreationTime
}

// IsPrivate returns true if the key contains private key material.
func (key *Key) IsPrivate() bool {
	return key.entity.PrivateKey != nil
}

// GetKeyID returns the key id of the primary key.
func (key *Key) GetKeyID() uint64 {
	return key.entity.PrimaryKey.KeyId
}

// GetHexKeyID returns the key id as a hex string.
func (key *Key) GetHexKeyID() string {
	return keyIDToHex(key.GetKeyID())
}

// GetFingerprint gets the fingerprint from the key as a hex string.
func (key *Key) GetFingerprint() string {
	return hex.EncodeToString(key.entity.PrimaryKey.Fingerprint)
}

// GetAlgorithm returns the name of the public key algorithm.
func (key *Key) GetAlgorithm() string {
	switch key.entity.PrimaryKey.PubKeyAlgo {
	case packet.PubKeyAlgoRSA, packet.PubKeyAlgoRSASignOnly, packet.PubKeyAlgoRSAEncryptOnly:
		return "rsa"
	case packet.PubKeyAlgoDSA:
		return "dsa"
	case packet.PubKeyAlgoECDSA:
		return "ecdsa"
	case packet.PubKeyAlgoEdDSA:
		return "eddsa"
	default:
		return fmt.Sprintf("unknown(%d)", key.entity.PrimaryKey.PubKeyAlgo)
	}
}

// GetBitLength returns the bit length of the primary key.
func (key *Key) GetBitLength() (int, error) {
	bits, err := key.entity.PrimaryKey.BitLength()
	if err != nil {
		return 0, errors.Wrap(err, "sigverify: unable to read key bit length")
	}
	return int(bits), nil
}

// ------------------
// Internal functions
// ------------------

func (key *Key) getEntities() openpgp.EntityList {
	return openpgp.EntityList{key.entity}
}

func keyIDToHex(id uint64) string {
	return fmt.Sprintf("%016x", id)
}
