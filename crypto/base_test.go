package crypto

import (
	"os"
	"strings"
	"testing"
	"time"
)

const (
	testKeyCreationTime = 1557754627 // 2019-05-13T13:37:07+00:00
	testSignatureTime   = 1614600000 // 2021-03-01T12:00:00+00:00
	testFingerprint     = "7f642caed5db78d8814fe02083fdef54eb70ca6a"
	testOtherKeyID      = "0fa7051b9dcfbdf8"
)

func readTestFile(name string, trimNewlines bool) string {
	data, err := os.ReadFile("testdata/" + name) //nolint
	if err != nil {
		panic(err)
	}
	if trimNewlines {
		return strings.TrimRight(string(data), "\n")
	}
	return string(data)
}

func readTestKey(t *testing.T, name string) *Key {
	key, err := NewKeyFromArmored(readTestFile(name, false))
	if err != nil {
		t.Fatal("Expected no error when reading key, got:", err)
	}
	return key
}

func readTestMessage(t *testing.T, name string) *ClearSignedMessage {
	message, err := NewClearSignedMessageFromArmored(readTestFile(name, false))
	if err != nil {
		t.Fatal("Expected no error when parsing cleartext message, got:", err)
	}
	return message
}

func testClock() time.Time {
	return time.Unix(testSignatureTime+3600, 0)
}

func verifies(t *testing.T, verification *Verification) bool {
	result, err := verification.Result()
	if err != nil {
		t.Fatal("Expected no error when verifying, got:", err)
	}
	return result.SignatureError() == nil
}
