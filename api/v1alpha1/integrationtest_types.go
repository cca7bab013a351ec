/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package v1alpha1 contains the declarations an integration test makes about the
// cluster state it needs: which resources to apply, which placeholders to replace
// in their definitions, and an optional extra setup hook.
package v1alpha1

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/kubernetes"
)

// KubernetesIntegrationTest declares a test that runs against a plain Kubernetes cluster.
//
// Example:
//
//	decl := &v1alpha1.KubernetesIntegrationTest{
//	    Namespace: "my-app-test",
//	    KubernetesResources: []v1alpha1.KubernetesResource{
//	        {DefinitionLocation: "src/test/container/strimzi-operator.yml"},
//	    },
//	    PlaceholderReplacements: []v1alpha1.PlaceholderReplacement{
//	        {Placeholder: "$NAMESPACE$", Replacer: newNamespaceReplacer},
//	    },
//	}
type KubernetesIntegrationTest struct {
	// Namespace is the namespace hint. Empty means the client's default namespace.
	// Ignored when the random namespace strategy is selected.
	Namespace string

	// KubernetesResources are applied in order before the application is deployed.
	KubernetesResources []KubernetesResource

	// PlaceholderReplacements are applied to each line of the resource definitions.
	PlaceholderReplacements []PlaceholderReplacement

	// ExtraTestSetup is an optional factory for a hook run after the resources are applied.
	ExtraTestSetup ExtraTestSetupFactory
}

// OpenshiftIntegrationTest declares a test that runs against an OpenShift cluster.
// OpenShift tests always use the project selected in the current login context, so
// there is no namespace hint.
type OpenshiftIntegrationTest struct {
	KubernetesResources     []KubernetesResource
	PlaceholderReplacements []PlaceholderReplacement
	ExtraTestSetup          ExtraTestSetupFactory
}

// KubernetesResource describes a set of objects to provision for a test.
// The content of the definition is owned by whatever applies it.
type KubernetesResource struct {
	// DefinitionLocation is a file path or URL of a YAML document holding the objects.
	DefinitionLocation string

	// AdditionalResourcesCreated lists objects that appear as a side effect of applying
	// the definition (for example, Deployments created by an operator) and must be
	// waited for before the test starts.
	AdditionalResourcesCreated []AdditionalResource
}

// String returns the definition location, which is enough to identify the resource in logs.
func (r KubernetesResource) String() string {
	return r.DefinitionLocation
}

// AdditionalResource names an object created indirectly by a KubernetesResource.
type AdditionalResource struct {
	Kind schema.GroupVersionKind
	Name string
}

// String renders the resource as kind/name, e.g. "apps/v1, Kind=Deployment/my-operator".
func (r AdditionalResource) String() string {
	return fmt.Sprintf("%s/%s", r.Kind, r.Name)
}

// ConfigPlaceholderReplacer substitutes a value for a placeholder token.
type ConfigPlaceholderReplacer interface {
	// Replace returns line with placeholder substituted. placeholder is the token the
	// replacer was registered under, so one implementation can serve several tokens.
	Replace(ctx context.Context, placeholder, line string) (string, error)
}

// ExtraTestSetup performs test-specific setup beyond applying the declared resources.
type ExtraTestSetup interface {
	// Setup runs once the declared resources exist in namespace.
	Setup(ctx context.Context, clientset kubernetes.Interface, namespace string) error

	// Cleanup runs after the test, before the namespace is removed.
	Cleanup(ctx context.Context, clientset kubernetes.Interface, namespace string) error
}

// ReplacerFactory creates a ConfigPlaceholderReplacer.
type ReplacerFactory func() (ConfigPlaceholderReplacer, error)

// ExtraTestSetupFactory creates an ExtraTestSetup.
type ExtraTestSetupFactory func() (ExtraTestSetup, error)

// PlaceholderReplacement binds a placeholder token to the factory of its replacer.
type PlaceholderReplacement struct {
	Placeholder string
	Replacer    ReplacerFactory
}
