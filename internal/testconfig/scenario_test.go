package testconfig

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/kubernetes/fake"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/werf/k8s-cloud-tests-go/api/v1alpha1"
	"github.com/werf/k8s-cloud-tests-go/internal/settings"
	testhelpers "github.com/werf/k8s-cloud-tests-go/internal/testing"
)

var _ = Describe("Config", func() {
	var (
		r0, r1, r2 v1alpha1.KubernetesResource
	)

	BeforeEach(func() {
		r0 = v1alpha1.KubernetesResource{
			DefinitionLocation: "src/test/container/strimzi-operator.yml",
			AdditionalResourcesCreated: []v1alpha1.AdditionalResource{
				{Kind: schema.GroupVersionKind{Group: "apps", Version: "v1", Kind: "Deployment"}, Name: "strimzi-cluster-operator"},
			},
		}
		r1 = v1alpha1.KubernetesResource{DefinitionLocation: "src/test/container/kafka.yml"}
		r2 = v1alpha1.KubernetesResource{DefinitionLocation: "src/test/container/topic.yml"}
	})

	Context("with no namespace strategy", func() {
		It("keeps the declared namespace and resource order", func() {
			decl := &v1alpha1.KubernetesIntegrationTest{
				Namespace:           "ns1",
				KubernetesResources: []v1alpha1.KubernetesResource{r1, r2},
			}

			cfg, err := NewForKubernetes(decl, settings.Settings{})
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Namespace()).To(Equal("ns1"))
			Expect(cfg.KubernetesResources()).To(Equal([]v1alpha1.KubernetesResource{r1, r2}))

			By("prepending the operator resource")
			cfg.AddAdditionalKubernetesResources([]v1alpha1.KubernetesResource{r0})
			Expect(cfg.KubernetesResources()).To(Equal([]v1alpha1.KubernetesResource{r0, r1, r2}))
			Expect(cfg.Namespace()).To(Equal("ns1"))
		})

		It("returns equal values from repeated accessor calls", func() {
			decl := &v1alpha1.KubernetesIntegrationTest{
				Namespace:           "ns1",
				KubernetesResources: []v1alpha1.KubernetesResource{r1},
				PlaceholderReplacements: []v1alpha1.PlaceholderReplacement{
					{Placeholder: "$NS$", Replacer: testhelpers.StaticReplacerFactory("ns1")},
				},
			}

			cfg, err := NewForKubernetes(decl, settings.Settings{})
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Namespace()).To(Equal(cfg.Namespace()))
			Expect(cfg.KubernetesResources()).To(Equal(cfg.KubernetesResources()))
			Expect(cfg.PlaceholderReplacements().Map()).To(Equal(cfg.PlaceholderReplacements().Map()))
			Expect(cfg.ExtraTestSetup()).To(BeNil())
		})
	})

	Context("with the random namespace strategy", func() {
		var (
			clk *testingclock.FakePassiveClock
			s   settings.Settings
		)

		BeforeEach(func() {
			clk = testingclock.NewFakePassiveClock(time.UnixMilli(1700000000000))
			s = settings.Settings{NamespaceStrategy: settings.NamespaceStrategyRandom}
		})

		It("ignores the declared namespace", func() {
			decl := &v1alpha1.KubernetesIntegrationTest{Namespace: "ns1"}

			cfg, err := NewForKubernetes(decl, s, WithClock(clk))
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Namespace()).To(Equal("wf-test1700000000000"))
		})

		It("hands the generated namespace to the extra setup hook", func() {
			ctx := context.Background()
			decl := &v1alpha1.OpenshiftIntegrationTest{
				KubernetesResources: []v1alpha1.KubernetesResource{r1},
				ExtraTestSetup:      testhelpers.NamespaceLabelSetupFactory(map[string]string{"test": "kafka"}),
			}

			cfg, err := NewForOpenshift(decl, s, WithClock(clk))
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.ExtraTestSetup()).NotTo(BeNil())

			clientset := fake.NewSimpleClientset()
			_, err = testhelpers.CreateTestNamespace(ctx, clientset, cfg.Namespace())
			Expect(err).NotTo(HaveOccurred())

			Expect(cfg.ExtraTestSetup().Setup(ctx, clientset, cfg.Namespace())).To(Succeed())

			ns, err := clientset.CoreV1().Namespaces().Get(ctx, "wf-test1700000000000", metav1.GetOptions{})
			Expect(err).NotTo(HaveOccurred())
			Expect(ns.Labels).To(HaveKeyWithValue("test", "kafka"))

			Expect(cfg.ExtraTestSetup().Cleanup(ctx, clientset, cfg.Namespace())).To(Succeed())
		})
	})

	Context("with an unknown namespace strategy", func() {
		It("fails naming the offending value", func() {
			s := settings.Settings{NamespaceStrategy: "per-suite"}

			cfg, err := NewForKubernetes(&v1alpha1.KubernetesIntegrationTest{Namespace: "ns1"}, s)
			Expect(cfg).To(BeNil())

			var unknown *UnknownNamespaceStrategyError
			Expect(errors.As(err, &unknown)).To(BeTrue())
			Expect(unknown.Value).To(Equal(settings.NamespaceStrategy("per-suite")))
			Expect(err.Error()).To(ContainSubstring("per-suite"))
			Expect(err.Error()).To(ContainSubstring(settings.NamespaceStrategyKey))
		})
	})

	Context("when prepending repeatedly", func() {
		It("puts later additions before earlier ones", func() {
			a1 := v1alpha1.KubernetesResource{DefinitionLocation: "a1.yml"}
			b1 := v1alpha1.KubernetesResource{DefinitionLocation: "b1.yml"}

			cfg, err := New("ns1", []v1alpha1.KubernetesResource{r1}, nil, nil)
			Expect(err).NotTo(HaveOccurred())

			cfg.AddAdditionalKubernetesResources([]v1alpha1.KubernetesResource{a1})
			cfg.AddAdditionalKubernetesResources([]v1alpha1.KubernetesResource{b1})

			Expect(cfg.KubernetesResources()).To(Equal([]v1alpha1.KubernetesResource{b1, a1, r1}))
		})
	})
})
