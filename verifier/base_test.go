package verifier

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/1F35C/signature-verifier/crypto"
)

const (
	testKeyCreationTime = 1557754627 // 2019-05-13T13:37:07+00:00
	testSignatureTime   = 1614600000 // 2021-03-01T12:00:00+00:00
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

func readTestKey(t *testing.T) *crypto.Key {
	key, err := crypto.NewKeyFromArmored(readTestFile("keyring_publicKey", false))
	if err != nil {
		t.Fatal("Expected no error when reading key, got:", err)
	}
	return key
}

var testClock = crypto.NewConstantClock(testSignatureTime + 3600)

// blockingClock returns a clock that blocks until the test ends, standing in
// for an OpenPGP call that hangs.
func blockingClock(t *testing.T) crypto.Clock {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	return func() time.Time {
		<-release
		return time.Unix(testSignatureTime, 0)
	}
}
