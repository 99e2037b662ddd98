package intersection

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// Sentinel errors for the intersection engine.
var (
	// ErrNoFairSet is returned when no set satisfies the matroid together
	// with every fairness lower bound. It signals infeasibility of the
	// instance, not a bug.
	ErrNoFairSet = errors.New("intersection: no fair feasible set exists")

	// ErrInvariant wraps a failed post-condition check. The result returned
	// alongside it is best effort.
	ErrInvariant = errors.New("intersection: invariant violated")

	// ErrEpsilonRange is returned when epsilon lies outside [0, 1].
	ErrEpsilonRange = errors.New("intersection: epsilon out of range [0, 1]")
)

// Option configures the engine via functional arguments.
type Option func(*Options)

// Options holds the engine's logger, cancellation context and hooks.
type Options struct {
	// Ctx is checked once per augmentation round.
	Ctx context.Context

	// Logger receives augmentations and path counts at Debug, infeasibility
	// at Warn and invariant violations at Error.
	Logger logrus.FieldLogger

	// OnAugment is called with the exchange-graph path (source first) of
	// every augmentation applied by MaxIntersection and FairMaxIntersection.
	OnAugment func(path []int)
}

// DefaultOptions returns Options with a background context, the standard
// logrus logger and a no-op OnAugment.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		Logger:    logrus.StandardLogger(),
		OnAugment: func([]int) {},
	}
}

// WithContext sets the context checked between augmentation rounds.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLogger replaces the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnAugment registers a callback run after every augmentation.
func WithOnAugment(fn func(path []int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnAugment = fn
		}
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
