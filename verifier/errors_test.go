package verifier

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.Exactly(t, "sigverify: message is empty", newError(KindEmptyMessage, nil).Error())
	assert.Exactly(t,
		"sigverify: unable to parse signed message: sigverify: not able to parse cleartext message",
		newError(KindMessageParse, errors.New("sigverify: not able to parse cleartext message")).Error(),
	)

	cause := errors.New("openpgp: invalid data: tag byte does not have MSB set")
	assert.Exactly(t, cause.Error(), newError(KindLibrary, cause).Error())
}

func TestErrorIs(t *testing.T) {
	cause := errors.New("corrupt")
	err := errors.Wrap(newError(KindKeyParse, cause), "outer")

	assert.ErrorIs(t, err, ErrKeyParse)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrMessageParse)
	assert.NotErrorIs(t, ErrKeyParse, newError(KindKeyParse, cause))
	assert.Exactly(t, KindKeyParse, KindOf(err))
	assert.Exactly(t, Kind(0), KindOf(cause))
}

func TestKindString(t *testing.T) {
	assert.Exactly(t, "empty_message", KindEmptyMessage.String())
	assert.Exactly(t, "malformed_armor", KindMalformedArmor.String())
	assert.Exactly(t, "verification_library_error", KindLibrary.String())
	assert.Exactly(t, "unknown", Kind(42).String())
}
