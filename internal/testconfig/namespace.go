package testconfig

import (
	"strconv"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	"github.com/werf/k8s-cloud-tests-go/internal/settings"
)

// RandomNamespacePrefix is prepended to the millisecond timestamp of generated namespaces.
const RandomNamespacePrefix = "wf-test"

// ResolveNamespace returns the namespace a test should run in.
//
// With no strategy the hint is returned unchanged; an empty hint means the client's
// default namespace. With the random strategy a new name is generated from the
// current time in milliseconds. Two calls within the same millisecond return the
// same name. Any other strategy returns an *UnknownNamespaceStrategyError.
func ResolveNamespace(hint string, strategy settings.NamespaceStrategy, clk clock.PassiveClock, log logr.Logger) (string, error) {
	switch strategy {
	case settings.NamespaceStrategyNone:
		return hint, nil
	case settings.NamespaceStrategyRandom:
		log.Info("Selected namespace strategy", "strategy", strategy)
		// TODO: names collide when two configs resolve within the same millisecond; add a random suffix.
		ns := RandomNamespacePrefix + strconv.FormatInt(clk.Now().UnixMilli(), 10)
		log.Info("Calculated namespace name", "namespace", ns)
		return ns, nil
	}

	return "", &UnknownNamespaceStrategyError{
		Key:   settings.NamespaceStrategyKey,
		Value: strategy,
	}
}
