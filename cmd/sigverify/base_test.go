package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"sync"
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

// syncBuffer is a bytes.Buffer safe for one writer and concurrent readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func execute(ctx context.Context, out, errOut io.Writer, stdin string, args ...string) error {
	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	return cmd.ExecuteContext(ctx)
}

func run(stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	err := execute(context.Background(), &out, io.Discard, stdin, args...)
	return out.String(), err
}

func runWithStderr(stdin string, args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	err := execute(context.Background(), &out, &errOut, stdin, args...)
	return out.String(), errOut.String(), err
}
