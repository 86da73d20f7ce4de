package state

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/1F35C/signature-verifier/verifier"
)

const waitTimeout = 5 * time.Second

var testOutcome = verifier.Outcome{
	Verified:          true,
	KeyCreationTime:   time.Unix(1557754627, 0),
	MessageSignedTime: time.Unix(1614600000, 0),
}

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

type result struct {
	outcome *verifier.Outcome
	err     error
}

type call struct {
	message string
	done    chan result
}

// fakeVerifier blocks every Verify call until the test resolves it. It ignores
// cancellation so that stale results still come back.
type fakeVerifier struct {
	calls chan *call

	mu    sync.Mutex
	count int
}

func newFakeVerifier() *fakeVerifier {
	return &fakeVerifier{calls: make(chan *call, 16)}
}

func (f *fakeVerifier) Verify(_ context.Context, message string) (*verifier.Outcome, error) {
	f.mu.Lock()
	f.count++
	f.mu.Unlock()

	c := &call{message: message, done: make(chan result, 1)}
	f.calls <- c
	r := <-c.done
	return r.outcome, r.err
}

func (f *fakeVerifier) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

func (f *fakeVerifier) next(t *testing.T) *call {
	t.Helper()
	select {
	case c := <-f.calls:
		return c
	case <-time.After(waitTimeout):
		t.Fatal("Expected a verification to start")
		return nil
	}
}

// instantVerifier answers immediately with a fixed result.
type instantVerifier struct {
	result

	mu    sync.Mutex
	count int
}

func (v *instantVerifier) Verify(context.Context, string) (*verifier.Outcome, error) {
	v.mu.Lock()
	v.count++
	v.mu.Unlock()
	return v.outcome, v.err
}

func (v *instantVerifier) Count() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.count
}

func waitSettled(t *testing.T, c *Controller) ResultState {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	s, err := c.Wait(ctx)
	require.NoError(t, err)
	return s
}
