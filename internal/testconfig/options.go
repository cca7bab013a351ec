package testconfig

import (
	"github.com/go-logr/logr"
	"k8s.io/utils/clock"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

type options struct {
	log   logr.Logger
	clock clock.PassiveClock
}

func defaultOptions() options {
	return options{
		log:   logf.Log.WithName("testconfig"),
		clock: clock.RealClock{},
	}
}

// Option configures how a Config is built.
type Option func(*options)

// WithLogger sets the logger used while resolving the namespace.
func WithLogger(log logr.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithClock sets the clock used to generate random namespace names.
func WithClock(clk clock.PassiveClock) Option {
	return func(o *options) {
		o.clock = clk
	}
}
