package state

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/1F35C/signature-verifier/verifier"
)

// Verifier checks a cleartext-signed message. *verifier.Engine implements it.
type Verifier interface {
	Verify(ctx context.Context, message string) (*verifier.Outcome, error)
}

// ErrClosed is returned by Wait once the controller is closed.
var ErrClosed = errors.New("sigverify: state controller closed")

// subscriberBuffer is the number of states a slow subscriber may lag behind
// before the oldest undelivered state is dropped.
const subscriberBuffer = 8

// Controller holds the ResultState for the most recent input. Each non-empty
// input starts a verification tagged with a sequence number; a result is only
// applied while its tag is still the latest one.
type Controller struct {
	verifier Verifier
	logger   *zap.Logger
	cache    *gocache.Cache

	mu          sync.Mutex
	seq         uint64
	current     ResultState
	cancel      context.CancelFunc
	settled     chan struct{}
	subscribers map[int]chan ResultState
	nextSubID   int
	closed      bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCache keeps the outcomes of finished verifications for ttl, keyed by
// the input text. A zero ttl disables the cache.
func WithCache(ttl time.Duration) Option {
	return func(c *Controller) {
		if ttl > 0 {
			c.cache = gocache.New(ttl, 2*ttl)
		} else {
			c.cache = nil
		}
	}
}

// NewController creates a Controller in the Idle state.
func NewController(v Verifier, opts ...Option) *Controller {
	c := &Controller{
		verifier:    v,
		logger:      zap.NewNop(),
		current:     Idle{},
		settled:     closedChannel(),
		subscribers: make(map[int]chan ResultState),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetInput replaces the current input and returns the sequence number of the
// new request. Empty text moves to Idle; any other text moves to Pending and
// starts a verification that supersedes the previous one.
func (c *Controller) SetInput(ctx context.Context, text string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.seq
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
	seq := c.seq

	if text == "" {
		c.setLocked(Idle{})
		return seq
	}

	c.setLocked(Pending{})
	attemptCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	go c.run(attemptCtx, seq, text)
	return seq
}

// Current returns the current state.
func (c *Controller) Current() ResultState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Seq returns the sequence number of the latest request.
func (c *Controller) Seq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Wait blocks until the current state is not Pending and returns it.
func (c *Controller) Wait(ctx context.Context) (ResultState, error) {
	for {
		c.mu.Lock()
		current, settled, closed := c.current, c.settled, c.closed
		c.mu.Unlock()

		if closed {
			return current, ErrClosed
		}
		if _, pending := current.(Pending); !pending {
			return current, nil
		}
		select {
		case <-settled:
		case <-ctx.Done():
			return current, ctx.Err()
		}
	}
}

// Subscribe returns a channel receiving every subsequent state change, and a
// function to stop the subscription. If the subscriber falls behind, older
// states are dropped so that the latest one is always delivered.
func (c *Controller) Subscribe() (<-chan ResultState, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan ResultState, subscriberBuffer)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subscribers[id]; ok {
				delete(c.subscribers, id)
				close(sub)
			}
		})
	}
}

// Close cancels the in-flight verification and closes all subscriptions.
// Later calls to SetInput are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.seq++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	for id, sub := range c.subscribers {
		delete(c.subscribers, id)
		close(sub)
	}
	c.markSettled()
}

func (c *Controller) run(ctx context.Context, seq uint64, text string) {
	outcome, err := c.verify(ctx, text)
	next := resultState(outcome, err)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.logger.Debug("discarding stale result",
			zap.Uint64("seq", seq),
			zap.Uint64("latest", c.seq),
			zap.Stringer("state", next),
		)
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.setLocked(next)
}

func (c *Controller) verify(ctx context.Context, text string) (*verifier.Outcome, error) {
	key := cacheKey(text)
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			outcome := cached.(verifier.Outcome)
			c.logger.Debug("using cached outcome", zap.Bool("verified", outcome.Verified))
			return &outcome, nil
		}
	}

	outcome, err := c.verifier.Verify(ctx, text)
	if err == nil && outcome != nil && c.cache != nil {
		c.cache.SetDefault(key, *outcome)
	}
	return outcome, err
}

// setLocked changes the current state and notifies subscribers.
// c.mu must be held.
func (c *Controller) setLocked(next ResultState) {
	mustBeValid(next)

	_, wasPending := c.current.(Pending)
	_, isPending := next.(Pending)
	switch {
	case isPending && !wasPending:
		c.settled = make(chan struct{})
	case !isPending && wasPending:
		c.markSettled()
	}

	c.current = next
	c.logger.Debug("state changed", zap.Uint64("seq", c.seq), zap.Stringer("state", next))
	for _, sub := range c.subscribers {
		deliver(sub, next)
	}
}

func (c *Controller) markSettled() {
	select {
	case <-c.settled:
	default:
		close(c.settled)
	}
}

func deliver(ch chan ResultState, s ResultState) {
	for {
		select {
		case ch <- s:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func closedChannel() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
