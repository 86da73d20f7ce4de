package helper

import (
	"os"
	"strings"
)

const (
	testKeyCreation = 1557754627 // 2019-05-13T13:37:07+00:00
	testSignedTime  = 1614600000 // 2021-03-01T12:00:00+00:00
	signedPlainText = "Release 1.4.2 is approved for distribution.\nChecksum: 3f2a9c1e"
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
