package testconfig

import (
	"fmt"

	"github.com/werf/k8s-cloud-tests-go/internal/settings"
)

// InstantiationError indicates that a replacer or extra setup factory could not produce an instance.
// Construction is aborted; no Config is returned.
type InstantiationError struct {
	// What identifies the factory, e.g. `placeholder replacer "$NAMESPACE$"`.
	What string
	Err  error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("failed to instantiate %s: %v", e.What, e.Err)
}

func (e *InstantiationError) Unwrap() error {
	return e.Err
}

// UnknownNamespaceStrategyError indicates that the namespace strategy setting holds an unrecognized value.
type UnknownNamespaceStrategyError struct {
	Key   string
	Value settings.NamespaceStrategy
}

func (e *UnknownNamespaceStrategyError) Error() string {
	return fmt.Sprintf("unknown value for %s: %q (supported: %q)", e.Key, e.Value, settings.NamespaceStrategyRandom)
}
