package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// readInput reads the named file, or stdin when the name is "-" or missing.
func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(err, "sigverify: unable to read stdin")
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", errors.Wrap(err, "sigverify: unable to read input")
	}
	return string(data), nil
}
