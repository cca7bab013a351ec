// Package testing provides test doubles for the collaborators of the test configuration
// resolver: placeholder replacers, extra setup hooks, and their factories.
package testing

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// CreateTestNamespace creates a new namespace in the Kubernetes API server.
// Useful for exercising setup hooks against a fake clientset.
//
// Example:
//
//	clientset := fake.NewSimpleClientset()
//	ns, err := testing.CreateTestNamespace(ctx, clientset, "wf-test1700000000000")
//	if err != nil {
//	    t.Fatalf("failed to create namespace: %v", err)
//	}
func CreateTestNamespace(ctx context.Context, clientset kubernetes.Interface, name string) (*corev1.Namespace, error) {
	ns := &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{
			Name: name,
		},
	}

	created, err := clientset.CoreV1().Namespaces().Create(ctx, ns, metav1.CreateOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create namespace %q: %w", name, err)
	}

	return created, nil
}
