package crypto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConstantClock(t *testing.T) {
	clock := NewConstantClock(testSignatureTime)

	assert.Exactly(t, int64(testSignatureTime), clock().Unix())
	time.Sleep(10 * time.Millisecond)
	assert.Exactly(t, int64(testSignatureTime), clock().Unix())
}

func TestSystemClock(t *testing.T) {
	before := time.Now().Unix()
	now := SystemClock().Unix()

	assert.GreaterOrEqual(t, now, before)
	assert.LessOrEqual(t, now, time.Now().Unix())
}
