// Package testconfig resolves the configuration an integration test declares into
// the namespace, resources, placeholder replacers and setup hook the test runner uses.
package testconfig

import (
	"errors"
	"fmt"

	"github.com/werf/k8s-cloud-tests-go/api/v1alpha1"
	"github.com/werf/k8s-cloud-tests-go/internal/settings"
)

// Config is the resolved configuration of one integration test class.
//
// The namespace is resolved once when the Config is built. The resource list
// can only grow at the front through AddAdditionalKubernetesResources; everything
// else is read-only.
//
// A Config is not safe for concurrent use. Test classes running in parallel
// must each build their own.
type Config struct {
	namespace               string
	kubernetesResources     []v1alpha1.KubernetesResource
	placeholderReplacements *PlaceholderReplacements
	extraTestSetup          v1alpha1.ExtraTestSetup
}

// NewForKubernetes builds the Config for a test declared to run on Kubernetes.
// The declared namespace is used unless s selects another namespace strategy.
func NewForKubernetes(decl *v1alpha1.KubernetesIntegrationTest, s settings.Settings, opts ...Option) (*Config, error) {
	if decl == nil {
		return nil, errors.New("KubernetesIntegrationTest is nil")
	}
	return build(decl.Namespace, decl.KubernetesResources, decl.PlaceholderReplacements, decl.ExtraTestSetup, s, opts)
}

// NewForOpenshift builds the Config for a test declared to run on OpenShift.
// Without a namespace strategy the namespace is empty, i.e. the current project.
func NewForOpenshift(decl *v1alpha1.OpenshiftIntegrationTest, s settings.Settings, opts ...Option) (*Config, error) {
	if decl == nil {
		return nil, errors.New("OpenshiftIntegrationTest is nil")
	}
	return build("", decl.KubernetesResources, decl.PlaceholderReplacements, decl.ExtraTestSetup, s, opts)
}

func build(
	namespaceHint string,
	resources []v1alpha1.KubernetesResource,
	replacements []v1alpha1.PlaceholderReplacement,
	extraTestSetup v1alpha1.ExtraTestSetupFactory,
	s settings.Settings,
	opts []Option,
) (*Config, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	namespace, err := ResolveNamespace(namespaceHint, s.NamespaceStrategy, o.clock, o.log)
	if err != nil {
		return nil, err
	}

	return New(namespace, resources, replacements, extraTestSetup)
}

// New builds a Config for an already resolved namespace.
// Each factory is called exactly once: the extra setup factory first (when non-nil),
// then the replacer factories in declaration order. The first failure aborts
// construction with an *InstantiationError.
func New(
	namespace string,
	resources []v1alpha1.KubernetesResource,
	replacements []v1alpha1.PlaceholderReplacement,
	extraTestSetup v1alpha1.ExtraTestSetupFactory,
) (*Config, error) {
	var setup v1alpha1.ExtraTestSetup
	if extraTestSetup != nil {
		var err error
		setup, err = extraTestSetup()
		if err == nil && setup == nil {
			err = errors.New("factory returned nil")
		}
		if err != nil {
			return nil, &InstantiationError{What: "extra test setup", Err: err}
		}
	}

	placeholders := newPlaceholderReplacements()
	for _, replacement := range replacements {
		what := fmt.Sprintf("placeholder replacer %q", replacement.Placeholder)
		if replacement.Replacer == nil {
			return nil, &InstantiationError{What: what, Err: errors.New("no factory")}
		}

		replacer, err := replacement.Replacer()
		if err == nil && replacer == nil {
			err = errors.New("factory returned nil")
		}
		if err != nil {
			return nil, &InstantiationError{What: what, Err: err}
		}
		placeholders.put(replacement.Placeholder, replacer)
	}

	return &Config{
		namespace:               namespace,
		kubernetesResources:     append([]v1alpha1.KubernetesResource(nil), resources...),
		placeholderReplacements: placeholders,
		extraTestSetup:          setup,
	}, nil
}

// Namespace returns the resolved namespace. Empty means the client's default namespace.
func (c *Config) Namespace() string {
	return c.namespace
}

// KubernetesResources returns the resources in application order.
// The returned slice is a copy; use AddAdditionalKubernetesResources to change the list.
func (c *Config) KubernetesResources() []v1alpha1.KubernetesResource {
	return append([]v1alpha1.KubernetesResource(nil), c.kubernetesResources...)
}

// PlaceholderReplacements returns the placeholder replacers.
func (c *Config) PlaceholderReplacements() *PlaceholderReplacements {
	return c.placeholderReplacements
}

// ExtraTestSetup returns the extra setup hook, or nil if none was declared.
func (c *Config) ExtraTestSetup() v1alpha1.ExtraTestSetup {
	return c.extraTestSetup
}

// AddAdditionalKubernetesResources puts additional in front of the current resources,
// keeping the order within each group. Additional resources are usually prerequisites
// of the deployment (operators, CRDs), so they are applied first.
func (c *Config) AddAdditionalKubernetesResources(additional []v1alpha1.KubernetesResource) {
	if len(additional) == 0 {
		return
	}

	merged := make([]v1alpha1.KubernetesResource, 0, len(additional)+len(c.kubernetesResources))
	merged = append(merged, additional...)
	merged = append(merged, c.kubernetesResources...)
	c.kubernetesResources = merged
}
