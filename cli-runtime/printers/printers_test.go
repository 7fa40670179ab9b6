package printers_test

import (
	"encoding/json"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"sigs.k8s.io/yaml"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/printers"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/registry"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

var _ = Describe("Printers", func() {
	var (
		now     time.Time
		reg     registry.Registry
		options *printers.PrinterOptions
		store   v1.Store
	)

	BeforeEach(func() {
		var err error
		reg, err = registry.NewCoreRegistry()
		Expect(err).NotTo(HaveOccurred())

		now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		created := now.Add(-5 * time.Minute)
		store = v1.Store{
			{ID: "res-1", Type: v1.TypeDeployment, Name: "web", Namespace: "default",
				Labels:    map[string]string{"app": "web"},
				Metadata:  map[string]any{v1.MetaImage: "nginx", v1.MetaReplicas: 2, v1.MetaRevision: 3},
				CreatedAt: created},
			{ID: "res-2", Type: v1.TypeReplicaSet, Name: "web-abc", Namespace: "default",
				Metadata:  map[string]any{v1.MetaManagedBy: "res-1", v1.MetaImage: "nginx", v1.MetaReplicas: 2},
				CreatedAt: created},
			{ID: "res-3", Type: v1.TypePod, Name: "web-abc-0", Namespace: "default",
				Labels:    map[string]string{"app": "web"},
				Metadata:  map[string]any{v1.MetaManagedBy: "res-2", v1.MetaStatus: v1.StatusRunning, v1.MetaNode: "control-plane"},
				CreatedAt: created},
			{ID: "res-4", Type: v1.TypePod, Name: "tools", Namespace: "dev",
				Metadata:  map[string]any{v1.MetaStatus: v1.StatusRunning},
				CreatedAt: created},
		}
		options = &printers.PrinterOptions{
			Now:      func() time.Time { return now },
			Registry: reg,
			Store:    store,
		}
	})

	Describe("Table printer", func() {
		It("should print aligned columns with kubectl spacing", func() {
			out, err := printers.Sprint(printers.NewTablePrinter(options), store[2:3])
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(
				"NAME        READY   STATUS    RESTARTS   AGE\n" +
					"web-abc-0   1/1     Running   0          5m"))
		})

		It("should print events by their last occurrence", func() {
			event := v1.Resource{ID: "res-9", Type: v1.TypeEvent, Name: "web-abc-0.x7k2p", Namespace: "default",
				Metadata: map[string]any{
					v1.MetaEventType:      "Normal",
					v1.MetaReason:         "Pulled",
					v1.MetaInvolvedObject: "pod/web-abc-0",
					v1.MetaMessage:        `Container image "nginx" already present on machine`,
					v1.MetaLastSeen:       now.Add(-30 * time.Second).Format(time.RFC3339),
					v1.MetaCount:          2,
				},
				CreatedAt: now.Add(-time.Hour)}
			out, err := printers.Sprint(printers.NewTablePrinter(options), v1.Store{event})
			Expect(err).NotTo(HaveOccurred())
			lines := strings.Split(out, "\n")
			Expect(lines[0]).To(MatchRegexp(`^LAST SEEN\s+TYPE\s+REASON\s+OBJECT\s+MESSAGE$`))
			Expect(lines[1]).To(MatchRegexp(`^30s\s+Normal\s+Pulled\s+pod/web-abc-0\s+Container image`))
		})

		It("should preserve store order", func() {
			out, err := printers.Sprint(printers.NewTablePrinter(options), v1.Store{store[3], store[2]})
			Expect(err).NotTo(HaveOccurred())
			lines := strings.Split(out, "\n")
			Expect(lines).To(HaveLen(3))
			Expect(lines[1]).To(HavePrefix("tools"))
			Expect(lines[2]).To(HavePrefix("web-abc-0"))
		})

		It("should add NAMESPACE for namespaced types with all namespaces", func() {
			opts := *options
			opts.AllNamespaces = true
			out, err := printers.Sprint(printers.NewTablePrinter(&opts), store[2:])
			Expect(err).NotTo(HaveOccurred())
			lines := strings.Split(out, "\n")
			Expect(lines[0]).To(HavePrefix("NAMESPACE"))
			Expect(lines[2]).To(HavePrefix("dev"))
		})

		It("should not add NAMESPACE for cluster scoped types", func() {
			opts := *options
			opts.AllNamespaces = true
			nodes := v1.Bootstrap(func() string { return "n" }, now).OfType(v1.TypeNode)
			out, err := printers.Sprint(printers.NewTablePrinter(&opts), nodes)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(HavePrefix("NAME"))
			Expect(out).To(ContainSubstring(v1.KubeletVersion))
		})

		It("should append LABELS when requested", func() {
			opts := *options
			opts.ShowLabels = true
			out, err := printers.Sprint(printers.NewTablePrinter(&opts), store[2:])
			Expect(err).NotTo(HaveOccurred())
			lines := strings.Split(out, "\n")
			Expect(lines[0]).To(HaveSuffix("LABELS"))
			Expect(lines[1]).To(HaveSuffix("app=web"))
			Expect(lines[2]).To(HaveSuffix("<none>"))
		})

		It("should print wide columns", func() {
			p, err := printers.NewPrinterFactory(options).NewPrinter("wide")
			Expect(err).NotTo(HaveOccurred())
			out, err := printers.Sprint(p, store[2:3])
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("NODE"))
			Expect(out).To(ContainSubstring("control-plane"))
		})

		It("should print one block per type with qualified names", func() {
			out, err := printers.Sprint(printers.NewTablePrinter(options), store[:3])
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("deployment.apps/web"))
			Expect(out).To(ContainSubstring("replicaset.apps/web-abc"))
			Expect(out).To(ContainSubstring("pod/web-abc-0"))
			Expect(strings.Count(out, "\n\n")).To(Equal(2))
		})

		It("should render service ports and types", func() {
			svc := v1.Resource{ID: "s", Type: v1.TypeService, Name: "web", Namespace: "default",
				Metadata: map[string]any{
					v1.MetaServiceType: "NodePort", v1.MetaClusterIP: "10.96.0.10",
					v1.MetaPort: 80, v1.MetaNodePort: 30080,
				}, CreatedAt: now}
			out, err := printers.Sprint(printers.NewTablePrinter(options), v1.Store{svc})
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("NodePort"))
			Expect(out).To(ContainSubstring("80:30080/TCP"))
			Expect(out).To(ContainSubstring("<none>"))
		})
	})

	Describe("Describe printer", func() {
		It("should print the preamble and sorted capitalized metadata", func() {
			out, err := printers.Sprint(printers.NewDescribePrinter(options), store[:1])
			Expect(err).NotTo(HaveOccurred())
			lines := strings.Split(out, "\n")
			Expect(lines[0]).To(MatchRegexp(`^Name:\s+web$`))
			Expect(lines[1]).To(MatchRegexp(`^Namespace:\s+default$`))
			Expect(lines[2]).To(MatchRegexp(`^Type:\s+deployment$`))
			Expect(lines[3]).To(MatchRegexp(`^Labels:\s+app=web$`))
			Expect(lines[4]).To(HavePrefix("Created:"))
			Expect(lines[5]).To(MatchRegexp(`^Image:\s+nginx$`))
			Expect(lines[6]).To(MatchRegexp(`^Replicas:\s+2$`))
			Expect(lines[7]).To(MatchRegexp(`^Revision:\s+3$`))
		})

		It("should print <none> for an empty namespace and labels", func() {
			nodes := v1.Store{{ID: "n", Type: v1.TypeNamespace, Name: "dev"}}
			out, err := printers.Sprint(printers.NewDescribePrinter(options), nodes)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(MatchRegexp(`Namespace:\s+<none>`))
			Expect(out).To(MatchRegexp(`Labels:\s+<none>`))
			Expect(out).To(MatchRegexp(`Created:\s+<unknown>`))
		})
	})

	Describe("History printer", func() {
		It("should list every revision", func() {
			out, err := printers.Sprint(printers.NewHistoryPrinter(options), store[:1])
			Expect(err).NotTo(HaveOccurred())
			lines := strings.Split(out, "\n")
			Expect(lines).To(HaveLen(5))
			Expect(lines[0]).To(Equal("deployment.apps/web"))
			Expect(lines[1]).To(MatchRegexp(`^REVISION\s+CHANGE-CAUSE$`))
			Expect(lines[2]).To(MatchRegexp(`^1\s+<none>$`))
			Expect(lines[4]).To(MatchRegexp(`^3\s+image updated$`))
		})
	})

	Describe("Structured printers", func() {
		It("should print a single object as JSON with owner references", func() {
			p, err := printers.NewPrinterFactory(options).NewPrinter("json")
			Expect(err).NotTo(HaveOccurred())
			out, err := printers.Sprint(p, store[1:2])
			Expect(err).NotTo(HaveOccurred())

			var obj printers.Object
			Expect(json.Unmarshal([]byte(out), &obj)).To(Succeed())
			Expect(obj.Kind).To(Equal("ReplicaSet"))
			Expect(obj.APIVersion).To(Equal("apps/v1"))
			Expect(string(obj.UID)).To(Equal("res-2"))
			Expect(obj.OwnerReferences).To(HaveLen(1))
			Expect(obj.OwnerReferences[0].Name).To(Equal("web"))
			Expect(obj.OwnerReferences[0].Kind).To(Equal("Deployment"))
			Expect(obj.Spec).NotTo(HaveKey(v1.MetaManagedBy))
		})

		It("should wrap several objects in a List", func() {
			p, err := printers.NewPrinterFactory(options).NewPrinter("yaml")
			Expect(err).NotTo(HaveOccurred())
			out, err := printers.Sprint(p, store[2:])
			Expect(err).NotTo(HaveOccurred())

			var list printers.List
			Expect(yaml.Unmarshal([]byte(out), &list)).To(Succeed())
			Expect(list.Kind).To(Equal("List"))
			Expect(list.Items).To(HaveLen(2))
			Expect(list.Items[1].Namespace).To(Equal("dev"))
		})

		It("should print qualified names", func() {
			p, err := printers.NewPrinterFactory(options).NewPrinter("name")
			Expect(err).NotTo(HaveOccurred())
			out, err := printers.Sprint(p, store[:3])
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("deployment.apps/web\nreplicaset.apps/web-abc\npod/web-abc-0"))
		})

		It("should reject unknown formats", func() {
			_, err := printers.NewPrinterFactory(options).NewPrinter("xml")
			Expect(err).To(MatchError(ContainSubstring(`"xml"`)))
		})
	})
})
