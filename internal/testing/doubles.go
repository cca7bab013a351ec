// Package testing provides test doubles for the collaborators of the test configuration
// resolver: placeholder replacers, extra setup hooks, and their factories.
//
// Example - Declare a test with a static replacer and a labelling setup hook:
//
//	decl := &v1alpha1.KubernetesIntegrationTest{
//	    Namespace: "ns1",
//	    PlaceholderReplacements: []v1alpha1.PlaceholderReplacement{
//	        {Placeholder: "$IMAGE$", Replacer: testing.StaticReplacerFactory("quay.io/wildfly/wildfly:latest")},
//	    },
//	    ExtraTestSetup: testing.NamespaceLabelSetupFactory(map[string]string{"team": "qe"}),
//	}
package testing

import (
	"context"
	"fmt"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/werf/k8s-cloud-tests-go/api/v1alpha1"
)

// StaticReplacer replaces every occurrence of the placeholder with Value.
type StaticReplacer struct {
	Value string
}

// Replace implements v1alpha1.ConfigPlaceholderReplacer.
func (r *StaticReplacer) Replace(_ context.Context, placeholder, line string) (string, error) {
	return strings.ReplaceAll(line, placeholder, r.Value), nil
}

// StaticReplacerFactory returns a factory producing a new StaticReplacer on each call.
func StaticReplacerFactory(value string) v1alpha1.ReplacerFactory {
	return func() (v1alpha1.ConfigPlaceholderReplacer, error) {
		return &StaticReplacer{Value: value}, nil
	}
}

// FailingReplacer returns Err from every Replace call.
type FailingReplacer struct {
	Err error
}

// Replace implements v1alpha1.ConfigPlaceholderReplacer.
func (r *FailingReplacer) Replace(context.Context, string, string) (string, error) {
	return "", r.Err
}

// FailingReplacerFactory returns a factory that always fails with err.
func FailingReplacerFactory(err error) v1alpha1.ReplacerFactory {
	return func() (v1alpha1.ConfigPlaceholderReplacer, error) {
		return nil, err
	}
}

// FailingSetupFactory returns an extra setup factory that always fails with err.
func FailingSetupFactory(err error) v1alpha1.ExtraTestSetupFactory {
	return func() (v1alpha1.ExtraTestSetup, error) {
		return nil, err
	}
}

// CallCounter counts how many times the factories it wraps were called.
type CallCounter struct {
	Calls int
}

// Replacer wraps f, counting calls.
func (c *CallCounter) Replacer(f v1alpha1.ReplacerFactory) v1alpha1.ReplacerFactory {
	return func() (v1alpha1.ConfigPlaceholderReplacer, error) {
		c.Calls++
		return f()
	}
}

// Setup wraps f, counting calls.
func (c *CallCounter) Setup(f v1alpha1.ExtraTestSetupFactory) v1alpha1.ExtraTestSetupFactory {
	return func() (v1alpha1.ExtraTestSetup, error) {
		c.Calls++
		return f()
	}
}

// NamespaceLabelSetup adds Labels to the test namespace on Setup and removes them on Cleanup.
type NamespaceLabelSetup struct {
	Labels map[string]string
}

// NamespaceLabelSetupFactory returns a factory producing a NamespaceLabelSetup with a copy of labels.
func NamespaceLabelSetupFactory(labels map[string]string) v1alpha1.ExtraTestSetupFactory {
	return func() (v1alpha1.ExtraTestSetup, error) {
		copied := make(map[string]string, len(labels))
		for k, v := range labels {
			copied[k] = v
		}
		return &NamespaceLabelSetup{Labels: copied}, nil
	}
}

// Setup implements v1alpha1.ExtraTestSetup.
func (s *NamespaceLabelSetup) Setup(ctx context.Context, clientset kubernetes.Interface, namespace string) error {
	return s.update(ctx, clientset, namespace, func(labels map[string]string) {
		for k, v := range s.Labels {
			labels[k] = v
		}
	})
}

// Cleanup implements v1alpha1.ExtraTestSetup.
func (s *NamespaceLabelSetup) Cleanup(ctx context.Context, clientset kubernetes.Interface, namespace string) error {
	return s.update(ctx, clientset, namespace, func(labels map[string]string) {
		for k := range s.Labels {
			delete(labels, k)
		}
	})
}

func (s *NamespaceLabelSetup) update(ctx context.Context, clientset kubernetes.Interface, namespace string, mutate func(map[string]string)) error {
	ns, err := clientset.CoreV1().Namespaces().Get(ctx, namespace, metav1.GetOptions{})
	if err != nil {
		return fmt.Errorf("failed to get namespace %q: %w", namespace, err)
	}

	if ns.Labels == nil {
		ns.Labels = map[string]string{}
	}
	mutate(ns.Labels)

	if _, err := clientset.CoreV1().Namespaces().Update(ctx, ns, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("failed to update namespace %q: %w", namespace, err)
	}
	return nil
}
