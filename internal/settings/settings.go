// Package settings loads the process-wide settings of the test framework.
// Settings are read once at the process boundary and passed down explicitly.
package settings

import (
	"fmt"
	"io"

	"github.com/caarlos0/env/v6"
	"github.com/spf13/pflag"
)

// NamespaceStrategyKey is the environment variable holding the namespace strategy.
const NamespaceStrategyKey = "TEST_NAMESPACE_STRATEGY"

// NamespaceStrategyFlag is the command-line flag holding the namespace strategy.
// When set it overrides NamespaceStrategyKey.
const NamespaceStrategyFlag = "namespace-strategy"

// NamespaceStrategy selects how a test namespace is chosen.
// The zero value means no strategy: the namespace declared by the test is used as is.
type NamespaceStrategy string

const (
	// NamespaceStrategyNone uses the declared namespace.
	NamespaceStrategyNone NamespaceStrategy = ""
	// NamespaceStrategyRandom generates a fresh namespace per test.
	NamespaceStrategyRandom NamespaceStrategy = "random"
)

// Settings holds the framework settings.
type Settings struct {
	NamespaceStrategy NamespaceStrategy `env:"TEST_NAMESPACE_STRATEGY"`
}

// FromEnvironment reads Settings from the process environment.
func FromEnvironment() (Settings, error) {
	return fromEnvironment(env.Options{})
}

func fromEnvironment(opts env.Options) (Settings, error) {
	var s Settings
	if err := env.Parse(&s, opts); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings from environment: %w", err)
	}
	return s, nil
}

// AddFlags registers the settings flags on fs, using the current values as defaults.
func (s *Settings) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar((*string)(&s.NamespaceStrategy), NamespaceStrategyFlag, string(s.NamespaceStrategy),
		fmt.Sprintf("Namespace strategy for tests (one of: %q). Overrides $%s.", NamespaceStrategyRandom, NamespaceStrategyKey))
}

// Load reads Settings from the environment and then applies command-line overrides from args.
// Unknown flags in args are ignored so that Load can share an argument list with other parsers.
//
// Example:
//
//	s, err := settings.Load(os.Args[1:])
//	if err != nil {
//	    log.Fatalf("failed to load settings: %v", err)
//	}
func Load(args []string) (Settings, error) {
	return load(args, env.Options{})
}

func load(args []string, opts env.Options) (Settings, error) {
	s, err := fromEnvironment(opts)
	if err != nil {
		return Settings{}, err
	}

	fs := pflag.NewFlagSet("settings", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	s.AddFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings flags: %w", err)
	}

	return s, nil
}
