// Package verifier checks cleartext-signed messages against a trusted public
// key and reports the signature and key creation times.
package verifier

import (
	"context"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/1F35C/signature-verifier/armor"
	"github.com/1F35C/signature-verifier/crypto"
	"github.com/1F35C/signature-verifier/profile"
)

// DefaultTimeout bounds a single verification attempt.
const DefaultTimeout = 10 * time.Second

// Engine verifies cleartext-signed messages. It is safe for concurrent use.
type Engine struct {
	key        *crypto.Key
	armoredKey string
	clock      crypto.Clock
	profile    *profile.Custom
	timeout    time.Duration
	logger     *zap.Logger
	metrics    *Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout bounds each attempt. A zero or negative timeout disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		e.timeout = timeout
	}
}

// WithClock sets the time signatures are verified at.
func WithClock(clock crypto.Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithProfile sets the algorithm policy signatures are checked with.
func WithProfile(p *profile.Custom) Option {
	return func(e *Engine) {
		if p != nil {
			e.profile = p
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records every attempt in m.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New creates an Engine verifying with an already parsed key.
func New(key *crypto.Key, opts ...Option) *Engine {
	e := &Engine{
		key:     key,
		clock:   crypto.SystemClock,
		profile: profile.Default(),
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewFromArmoredKey creates an Engine that parses armoredKey on every attempt,
// concurrently with the message.
func NewFromArmoredKey(armoredKey string, opts ...Option) *Engine {
	e := New(nil, opts...)
	e.armoredKey = armoredKey
	return e
}

// Verify checks message against armoredKey with the default options.
func Verify(ctx context.Context, message, armoredKey string) (*Outcome, error) {
	return NewFromArmoredKey(armoredKey).Verify(ctx, message)
}

// Verify checks a cleartext-signed message.
//
// An Outcome with Verified set to false means the signature was checked and
// does not match. Any *Error means the signature could not be checked.
func (e *Engine) Verify(ctx context.Context, message string) (outcome *Outcome, err error) {
	start := time.Now()
	defer func() {
		e.metrics.observe(outcome, err, time.Since(start))
		e.log(outcome, err, time.Since(start))
	}()

	if message == "" {
		return nil, newError(KindEmptyMessage, nil)
	}
	if !armor.IsValid(message) {
		return nil, newError(KindMalformedArmor, nil)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	type result struct {
		outcome *Outcome
		err     error
	}
	done := make(chan result, 1)
	go func() {
		o, err := e.verify(ctx, message)
		done <- result{o, err}
	}()

	select {
	case r := <-done:
		return r.outcome, r.err
	case <-ctx.Done():
		return nil, contextError(ctx.Err())
	}
}

func (e *Engine) verify(ctx context.Context, text string) (*Outcome, error) {
	var message *crypto.ClearSignedMessage
	key := e.key

	g := new(errgroup.Group)
	g.Go(safely(KindMessageParse, func() error {
		parsed, err := crypto.NewClearSignedMessageFromArmored(text)
		if err != nil {
			return newError(KindMessageParse, err)
		}
		message = parsed
		return nil
	}))
	if key == nil {
		g.Go(safely(KindKeyParse, func() error {
			parsed, err := crypto.NewKeyFromArmored(e.armoredKey)
			if err != nil {
				return newError(KindKeyParse, err)
			}
			key = parsed
			return nil
		}))
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, contextError(err)
	}

	keyCreationTime := key.CreationTime()
	verifyTime := crypto.NewConstantClock(e.clock().Unix())

	verification, err := crypto.VerifyClearSigned(message, key, true, verifyTime)
	if err != nil {
		return nil, newError(KindLibrary, err)
	}
	verification.WithProfile(e.profile)

	var verified bool
	var signatures []*packet.Signature

	g = new(errgroup.Group)
	g.Go(safely(KindLibrary, func() error {
		result, err := verification.Result()
		if err != nil {
			return newError(KindLibrary, err)
		}
		if sigErr := result.SignatureErrorExplicit(); sigErr != nil {
			e.logger.Debug("signature did not verify",
				zap.Int("status", sigErr.Status),
				zap.Error(result.SignatureError()),
			)
		} else if signer := result.SignedByKey(); signer != nil {
			e.logger.Debug("signature verified", zap.String("key_id", signer.GetHexKeyID()))
		}
		verified = result.SignatureError() == nil
		return nil
	}))
	g.Go(safely(KindLibrary, func() error {
		parsed, err := verification.Signatures()
		if err != nil {
			return newError(KindLibrary, err)
		}
		signatures = parsed
		return nil
	}))
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Outcome{
		Verified:          verified,
		KeyCreationTime:   keyCreationTime,
		MessageSignedTime: crypto.SignatureCreationTime(signatures),
	}, nil
}

func (e *Engine) log(outcome *Outcome, err error, elapsed time.Duration) {
	switch {
	case err == nil:
		e.logger.Debug("verification finished",
			zap.Bool("verified", outcome.Verified),
			zap.Time("signed_at", outcome.MessageSignedTime),
			zap.Duration("elapsed", elapsed),
		)
	case KindOf(err) == KindLibrary || KindOf(err) == KindTimeout:
		e.logger.Warn("verification failed", zap.Stringer("kind", KindOf(err)), zap.Error(err))
	default:
		e.logger.Debug("verification rejected", zap.Stringer("kind", KindOf(err)), zap.Error(err))
	}
}

// safely turns a panic inside the OpenPGP library into an *Error of kind.
func safely(kind Kind, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = newError(kind, errors.Errorf("sigverify: openpgp library panic: %v", r))
			}
		}()
		return fn()
	}
}

func contextError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(KindTimeout, nil)
	}
	return newError(KindCanceled, nil)
}
