package handlers_test

import (
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/flags"
	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cli-runtime/handlers"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

var _ = Describe("Handlers", func() {
	var (
		ctx   *handlers.Context
		store v1.Store
		now   time.Time
	)

	BeforeEach(func() {
		var err error
		ctx, err = handlers.NewContext()
		Expect(err).NotTo(HaveOccurred())
		now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		ctx.Clock = func() time.Time { return now }
		ctx.Rand = handlers.NewSeededRandomizer(1)
		store = v1.Bootstrap(ctx.IDs.Next, now)
	})

	execIn := func(h handlers.Handler, namespace, line string) handlers.Result {
		args, err := flags.Tokenize(line)
		Expect(err).NotTo(HaveOccurred())
		var res handlers.Result
		store, res = h(ctx, store, args, namespace)
		return res
	}
	exec := func(h handlers.Handler, line string) handlers.Result {
		return execIn(h, v1.NamespaceDefault, line)
	}
	mustExec := func(h handlers.Handler, line string) handlers.Result {
		res := exec(h, line)
		Expect(res.Success).To(BeTrue(), res.Message)
		return res
	}
	find := func(resourceType, name string) v1.Resource {
		r, ok := store.Find(resourceType, name, v1.NamespaceDefault)
		Expect(ok).To(BeTrue(), "%s/%s not found", resourceType, name)
		return r
	}
	podsOf := func(owner v1.Resource) []string {
		var names []string
		for _, p := range store.OwnedOfType(owner.ID, v1.TypePod) {
			names = append(names, p.Name)
		}
		return names
	}

	Describe("run", func() {
		It("should create a labeled pod with the default image", func() {
			res := mustExec(handlers.Run, "web")
			Expect(res.Message).To(Equal("pod/web created"))
			Expect(res.ResourcesCreated).To(HaveLen(1))

			pod := find(v1.TypePod, "web")
			Expect(pod.Labels).To(HaveKeyWithValue("app", "web"))
			Expect(pod.MetaString(v1.MetaImage)).To(Equal(v1.DefaultImage))
			Expect(pod.MetaString(v1.MetaStatus)).To(Equal(v1.StatusRunning))
			Expect(pod.MetaString(v1.MetaNode)).To(Equal("control-plane"))
		})

		It("should merge explicit labels and record the port", func() {
			mustExec(handlers.Run, "api --image=redis:7 --labels=tier=backend,env=dev --port 6379")
			pod := find(v1.TypePod, "api")
			Expect(pod.Labels).To(Equal(map[string]string{"app": "api", "tier": "backend", "env": "dev"}))
			Expect(pod.MetaString(v1.MetaImage)).To(Equal("redis:7"))
			Expect(pod.MetaIntOr(v1.MetaPort, 0)).To(Equal(6379))
		})

		It("should reject a duplicate pod and leave the store untouched", func() {
			mustExec(handlers.Run, "web")
			before := store
			res := exec(handlers.Run, "web")
			Expect(res.Success).To(BeFalse())
			Expect(res.Message).To(Equal(`Error from server (AlreadyExists): pods "web" already exists`))
			Expect(store).To(Equal(before))
		})

		It("should reject unknown flags", func() {
			res := exec(handlers.Run, "web --restart=Never")
			Expect(res.Success).To(BeFalse())
			Expect(res.Message).To(Equal("error: unknown flag: --restart"))
		})

		It("should reject invalid names", func() {
			res := exec(handlers.Run, "Bad_Name")
			Expect(res.Success).To(BeFalse())
			Expect(res.Message).To(HavePrefix(`The Pod "Bad_Name" is invalid`))
		})
	})

	Describe("create deployment", func() {
		It("should create a deployment, one replicaset and N pods", func() {
			res := mustExec(handlers.Create, "deployment web --image=nginx:1.25 --replicas=3")
			Expect(res.Message).To(Equal("deployment.apps/web created"))
			Expect(res.ResourcesCreated).To(HaveLen(5))

			deploy := find(v1.TypeDeployment, "web")
			Expect(deploy.MetaIntOr(v1.MetaRevision, 0)).To(Equal(1))
			Expect(deploy.MetaIntOr(v1.MetaReplicas, 0)).To(Equal(3))

			sets := store.OwnedOfType(deploy.ID, v1.TypeReplicaSet)
			Expect(sets).To(HaveLen(1))
			rs := sets[0]
			Expect(rs.Name).To(HavePrefix("web-"))
			Expect(rs.Name).To(HaveLen(len("web-") + 10))

			pods := store.OwnedOfType(rs.ID, v1.TypePod)
			Expect(pods).To(HaveLen(3))
			for i, p := range pods {
				Expect(p.Name).To(Equal(rs.Name + "-" + []string{"0", "1", "2"}[i]))
				Expect(p.MetaString(v1.MetaImage)).To(Equal("nginx:1.25"))
				Expect(p.Labels).To(HaveKeyWithValue("app", "web"))
			}
		})

		It("should default to one replica of nginx", func() {
			mustExec(handlers.Create, "deploy web")
			deploy := find(v1.TypeDeployment, "web")
			rs := store.OwnedOfType(deploy.ID, v1.TypeReplicaSet)[0]
			Expect(podsOf(rs)).To(HaveLen(1))
			Expect(deploy.MetaString(v1.MetaImage)).To(Equal("nginx"))
		})

		It("should reject a duplicate deployment", func() {
			mustExec(handlers.Create, "deployment web")
			res := exec(handlers.Create, "deployment web")
			Expect(res.Message).To(Equal(`Error from server (AlreadyExists): deployments.apps "web" already exists`))
		})

		It("should reject a missing namespace", func() {
			res := execIn(handlers.Create, "ghost", "deployment web")
			Expect(res.Success).To(BeFalse())
			Expect(res.Message).To(Equal(`Error from server (NotFound): namespaces "ghost" not found`))
		})

		It("should reject an invalid replica count", func() {
			res := exec(handlers.Create, "deployment web --replicas=many")
			Expect(res.Success).To(BeFalse())
			Expect(res.Message).To(ContainSubstring(`invalid argument "many" for "--replicas" flag`))
		})
	})

	Describe("other workloads", func() {
		It("should create statefulset pods with ordinal names", func() {
			mustExec(handlers.Create, "statefulset db --replicas=2")
			sts := find(v1.TypeStatefulSet, "db")
			Expect(podsOf(sts)).To(Equal([]string{"db-0", "db-1"}))
		})

		It("should create one daemonset pod per node", func() {
			mustExec(handlers.Create, "node worker-1")
			mustExec(handlers.Create, "daemonset agent")
			ds := find(v1.TypeDaemonSet, "agent")
			pods := store.OwnedOfType(ds.ID, v1.TypePod)
			Expect(pods).To(HaveLen(2))
			Expect(pods[0].MetaString(v1.MetaNode)).To(Equal("control-plane"))
			Expect(pods[1].MetaString(v1.MetaNode)).To(Equal("worker-1"))
		})

		It("should create a job with one completed pod", func() {
			mustExec(handlers.Create, "job migrate --image=busybox")
			job := find(v1.TypeJob, "migrate")
			pods := store.OwnedOfType(job.ID, v1.TypePod)
			Expect(pods).To(HaveLen(1))
			Expect(pods[0].MetaString(v1.MetaStatus)).To(Equal(v1.StatusCompleted))
		})

		It("should require a schedule for cronjobs", func() {
			res := exec(handlers.Create, "cronjob nightly")
			Expect(res.Message).To(Equal(`error: required flag(s) "schedule" not set`))

			mustExec(handlers.Create, `cronjob nightly --schedule="0 2 * * *"`)
			Expect(find(v1.TypeCronJob, "nightly").MetaString(v1.MetaSchedule)).To(Equal("0 2 * * *"))
		})

		It("should reject a malformed schedule", func() {
			res := exec(handlers.Create, `cronjob nightly --schedule="daily"`)
			Expect(res.Success).To(BeFalse())
			Expect(res.Message).To(ContainSubstring("five field cron expression"))
		})
	})

	Describe("create service", func() {
		It("should create a ClusterIP service", func() {
			res := mustExec(handlers.Create, "service clusterip web --tcp=80:8080")
			Expect(res.Message).To(Equal("service/web created"))
			svc := find(v1.TypeService, "web")
			Expect(svc.MetaString(v1.MetaServiceType)).To(Equal("ClusterIP"))
			Expect(svc.MetaString(v1.MetaClusterIP)).To(HavePrefix("10.96."))
			Expect(svc.MetaIntOr(v1.MetaPort, 0)).To(Equal(80))
			Expect(svc.MetaIntOr(v1.MetaTargetPort, 0)).To(Equal(8080))
		})

		It("should allocate a node port for NodePort services", func() {
			mustExec(handlers.Create, "svc nodeport web --tcp=80")
			port := find(v1.TypeService, "web").MetaIntOr(v1.MetaNodePort, 0)
			Expect(port).To(BeNumerically(">=", handlers.NodePortMin))
			Expect(port).To(BeNumerically("<=", handlers.NodePortMax))
		})

		It("should assign an external IP to LoadBalancer services", func() {
			mustExec(handlers.Create, "service loadbalancer web --tcp=80")
			Expect(find(v1.TypeService, "web").MetaString(v1.MetaExternalIP)).To(HavePrefix("203.0.113."))
		})

		It("should record the DNS name of ExternalName services", func() {
			res := exec(handlers.Create, "service externalname db")
			Expect(res.Success).To(BeFalse())

			mustExec(handlers.Create, "service externalname db --external-name=db.example.com")
			svc := find(v1.TypeService, "db")
			Expect(svc.MetaString(v1.MetaExternalName)).To(Equal("db.example.com"))
			Expect(svc.Metadata).NotTo(HaveKey(v1.MetaClusterIP))
		})

		It("should name an unsupported service type", func() {
			res := exec(handlers.Create, "service headless web")
			Expect(res.Success).To(BeFalse())
			Expect(res.Message).To(ContainSubstring(`"headless"`))
		})
	})

	Describe("create config and access resources", func() {
		It("should store configmap literals", func() {
			mustExec(handlers.Create, "configmap settings --from-literal=mode=dark --from-literal=lang=en")
			Expect(find(v1.TypeConfigMap, "settings").MetaStringMap(v1.MetaData)).
				To(Equal(map[string]string{"mode": "dark", "lang": "en"}))
		})

		It("should create generic secrets", func() {
			mustExec(handlers.Create, "secret generic creds --from-literal=password=s3cret")
			Expect(find(v1.TypeSecret, "creds").MetaString(v1.MetaSecretType)).To(Equal("Opaque"))
		})

		It("should create namespaces cluster-wide only once", func() {
			mustExec(handlers.Create, "namespace dev")
			res := execIn(handlers.Create, "other", "ns dev")
			Expect(res.Message).To(Equal(`Error from server (AlreadyExists): namespaces "dev" already exists`))
		})

		It("should create roles and bindings", func() {
			mustExec(handlers.Create, "role reader --verb=get,list --resource=pods")
			mustExec(handlers.Create, "rolebinding read-pods --role=reader --user=alice --serviceaccount=default:ci")
			binding := find(v1.TypeRoleBinding, "read-pods")
			Expect(binding.MetaString(v1.MetaRoleRef)).To(Equal("Role/reader"))
			Expect(binding.MetaStrings(v1.MetaSubjects)).To(Equal([]string{"User/alice", "ServiceAccount/default:ci"}))

			res := exec(handlers.Create, "clusterrolebinding admins --role=reader")
			Expect(res.Success).To(BeFalse())
		})

		It("should bind a claim to an available volume", func() {
			mustExec(handlers.Create, "pv disk-1 --capacity=5Gi")
			res := mustExec(handlers.Create, "pvc data --size=2Gi")
			Expect(res.ResourcesUpdated).To(HaveLen(1))

			pvc := find(v1.TypePersistentVolumeClaim, "data")
			Expect(pvc.MetaString(v1.MetaStatus)).To(Equal(v1.StatusBound))
			Expect(pvc.MetaString(v1.MetaVolume)).To(Equal("disk-1"))
			pv, _ := store.Find(v1.TypePersistentVolume, "disk-1", "")
			Expect(pv.MetaString(v1.MetaClaim)).To(Equal("default/data"))
		})

		It("should create other registered types generically", func() {
			mustExec(handlers.Create, "replicaset standalone --replicas=2 --image=nginx")
			rs := find(v1.TypeReplicaSet, "standalone")
			Expect(rs.MetaIntOr(v1.MetaReplicas, 0)).To(Equal(2))
		})

		It("should default the metadata of generically created types", func() {
			mustExec(handlers.Create, "replicaset bare")
			rs := find(v1.TypeReplicaSet, "bare")
			Expect(rs.MetaString(v1.MetaImage)).To(Equal(v1.DefaultImage))
			Expect(rs.MetaIntOr(v1.MetaReplicas, 0)).To(Equal(1))
		})

		It("should reject unknown types", func() {
			res := exec(handlers.Create, "widget w")
			Expect(res.Message).To(Equal(`error: the server doesn't have a resource type "widget"`))
		})
	})

	Describe("delete", func() {
		It("should cascade through the ownership chain", func() {
			created := mustExec(handlers.Create, "deployment web --replicas=2").ResourcesCreated
			res := mustExec(handlers.Delete, "deployment web")
			Expect(res.Message).To(Equal(`deployment.apps "web" deleted`))

			var ids []string
			for _, r := range created {
				ids = append(ids, r.ID)
			}
			Expect(res.ResourcesDeleted).To(ConsistOf(ids))
			Expect(store.OfType(v1.TypePod)).To(BeEmpty())
			Expect(store.OfType(v1.TypeReplicaSet)).To(BeEmpty())
		})

		It("should accept TYPE/NAME and several names", func() {
			mustExec(handlers.Run, "a")
			mustExec(handlers.Run, "b")
			mustExec(handlers.Delete, "pod/a")
			mustExec(handlers.Run, "a")
			res := mustExec(handlers.Delete, "pods a b")
			Expect(res.ResourcesDeleted).To(HaveLen(2))
		})

		It("should report missing resources without deleting anything", func() {
			mustExec(handlers.Run, "a")
			res := exec(handlers.Delete, "pod a missing")
			Expect(res.Message).To(Equal(`Error from server (NotFound): pods "missing" not found`))
			Expect(store.Exists(v1.TypePod, "a", v1.NamespaceDefault)).To(BeTrue())
		})

		It("should delete everything inside a namespace", func() {
			mustExec(handlers.Create, "namespace dev")
			Expect(execIn(handlers.Create, "dev", "deployment api").Success).To(BeTrue())
			Expect(execIn(handlers.Create, "dev", "configmap cfg").Success).To(BeTrue())
			mustExec(handlers.Run, "keep")

			res := mustExec(handlers.Delete, "namespace dev")
			Expect(res.ResourcesDeleted).To(HaveLen(5))
			Expect(store.Filter(func(r v1.Resource) bool { return r.Namespace == "dev" })).To(BeEmpty())
			Expect(store.Exists(v1.TypePod, "keep", v1.NamespaceDefault)).To(BeTrue())
		})

		It("should refuse to delete system namespaces", func() {
			for _, ns := range []string{"default", "kube-system", "kube-public"} {
				res := exec(handlers.Delete, "namespace "+ns)
				Expect(res.Success).To(BeFalse())
				Expect(res.Message).To(HavePrefix("Error from server (Forbidden)"))
			}
		})
	})

	Describe("get", func() {
		It("should report an empty namespace as success", func() {
			res := mustExec(handlers.Get, "pods")
			Expect(res.Message).To(Equal("No resources found in default namespace."))
		})

		It("should resolve singular, plural and short names", func() {
			mustExec(handlers.Run, "web")
			for _, token := range []string{"pod", "pods", "po"} {
				res := mustExec(handlers.Get, token)
				Expect(res.Message).To(HavePrefix("NAME"))
				Expect(res.Message).To(ContainSubstring("web"))
			}
			mustExec(handlers.Create, "ingress site --rule=example.com/=web:80")
			Expect(mustExec(handlers.Get, "ingresses").Message).To(ContainSubstring("example.com"))
		})

		It("should filter by namespace unless -A is given", func() {
			mustExec(handlers.Create, "namespace dev")
			execIn(handlers.Run, "dev", "other")
			mustExec(handlers.Run, "web")

			Expect(mustExec(handlers.Get, "pods").Message).NotTo(ContainSubstring("other"))
			res := mustExec(handlers.Get, "pods -A")
			Expect(res.Message).To(HavePrefix("NAMESPACE"))
			Expect(res.Message).To(ContainSubstring("other"))
		})

		It("should add labels with --show-labels", func() {
			mustExec(handlers.Run, "web")
			lines := strings.Split(mustExec(handlers.Get, "pods --show-labels").Message, "\n")
			Expect(lines[0]).To(HaveSuffix("LABELS"))
			Expect(lines[1]).To(HaveSuffix("app=web"))
		})

		It("should filter with label and field selectors", func() {
			mustExec(handlers.Run, "a --labels=tier=fe")
			mustExec(handlers.Run, "b")
			Expect(mustExec(handlers.Get, "pods -l tier=fe -o name").Message).To(Equal("pod/a"))
			Expect(mustExec(handlers.Get, "pods --field-selector metadata.name=b -o name").Message).To(Equal("pod/b"))
		})

		It("should report a named resource that does not exist", func() {
			res := exec(handlers.Get, "deployment nope")
			Expect(res.Message).To(Equal(`Error from server (NotFound): deployments.apps "nope" not found`))
		})

		It("should list all workload types with qualified names", func() {
			mustExec(handlers.Create, "deployment web")
			mustExec(handlers.Create, "service clusterip web --tcp=80")
			res := mustExec(handlers.Get, "all")
			Expect(res.Message).To(ContainSubstring("pod/web-"))
			Expect(res.Message).To(ContainSubstring("service/web"))
			Expect(res.Message).To(ContainSubstring("deployment.apps/web"))
			Expect(strings.Index(res.Message, "pod/")).To(BeNumerically("<", strings.Index(res.Message, "deployment.apps/")))
		})

		It("should reject an unknown output format", func() {
			res := exec(handlers.Get, "pods -o xml")
			Expect(res.Success).To(BeFalse())
		})
	})

	Describe("expose", func() {
		BeforeEach(func() {
			mustExec(handlers.Create, "deployment web --replicas=2")
		})

		It("should create a service selecting the target's pods", func() {
			res := mustExec(handlers.Expose, "deployment web --port=80 --target-port=8080 --type=NodePort")
			Expect(res.Message).To(Equal("service/web exposed"))

			deploy := find(v1.TypeDeployment, "web")
			svc := find(v1.TypeService, "web")
			Expect(svc.MetaString(v1.MetaExposes)).To(Equal(deploy.ID))
			Expect(svc.MetaStringMap(v1.MetaSelector)).To(Equal(map[string]string{"app": "web"}))
			Expect(svc.Labels).To(Equal(deploy.Labels))
			Expect(svc.MetaIntOr(v1.MetaNodePort, 0)).To(BeNumerically(">=", handlers.NodePortMin))
		})

		It("should honor --name", func() {
			mustExec(handlers.Expose, "deployment/web --port=80 --name=web-public")
			find(v1.TypeService, "web-public")
		})

		It("should require an existing target", func() {
			res := exec(handlers.Expose, "deployment api --port=80")
			Expect(res.Message).To(Equal(`Error from server (NotFound): deployments.apps "api" not found`))
		})

		It("should require a port", func() {
			res := exec(handlers.Expose, "deployment web")
			Expect(res.Success).To(BeFalse())
		})
	})

	Describe("scale", func() {
		var rs v1.Resource

		BeforeEach(func() {
			mustExec(handlers.Create, "deployment web")
			rs = store.OwnedOfType(find(v1.TypeDeployment, "web").ID, v1.TypeReplicaSet)[0]
		})

		It("should never reuse pod suffixes", func() {
			res := mustExec(handlers.Scale, "deployment/web --replicas=3")
			Expect(res.Message).To(Equal("deployment.apps/web scaled"))
			Expect(res.ResourcesCreated).To(HaveLen(2))
			Expect(podsOf(rs)).To(Equal([]string{rs.Name + "-0", rs.Name + "-1", rs.Name + "-2"}))

			res = mustExec(handlers.Scale, "deployment/web --replicas=1")
			Expect(res.ResourcesDeleted).To(HaveLen(2))
			Expect(podsOf(rs)).To(Equal([]string{rs.Name + "-0"}))

			mustExec(handlers.Scale, "deployment web --replicas=2")
			Expect(podsOf(rs)).To(Equal([]string{rs.Name + "-0", rs.Name + "-3"}))
			Expect(find(v1.TypeDeployment, "web").MetaIntOr(v1.MetaReplicas, 0)).To(Equal(2))
		})

		It("should scale to zero", func() {
			mustExec(handlers.Scale, "deploy/web --replicas=0")
			Expect(podsOf(rs)).To(BeEmpty())
		})

		It("should update replicas of a deployment without a replicaset", func() {
			mustExec(handlers.Delete, "replicaset "+rs.Name)
			mustExec(handlers.Scale, "deployment/web --replicas=4")
			Expect(find(v1.TypeDeployment, "web").MetaIntOr(v1.MetaReplicas, 0)).To(Equal(4))
		})

		It("should scale statefulsets", func() {
			mustExec(handlers.Create, "statefulset db")
			mustExec(handlers.Scale, "sts/db --replicas=3")
			Expect(podsOf(find(v1.TypeStatefulSet, "db"))).To(Equal([]string{"db-0", "db-1", "db-2"}))
		})

		It("should require a numeric --replicas", func() {
			Expect(exec(handlers.Scale, "deployment/web").Message).To(Equal(`error: required flag(s) "replicas" not set`))
			Expect(exec(handlers.Scale, "deployment/web --replicas=x").Message).To(ContainSubstring("invalid argument"))
		})

		It("should refuse daemonsets", func() {
			mustExec(handlers.Create, "daemonset agent")
			Expect(exec(handlers.Scale, "ds/agent --replicas=2").Success).To(BeFalse())
		})
	})

	Describe("rollout and set image", func() {
		var rs v1.Resource

		BeforeEach(func() {
			mustExec(handlers.Create, "deployment web --replicas=2")
			rs = store.OwnedOfType(find(v1.TypeDeployment, "web").ID, v1.TypeReplicaSet)[0]
		})

		images := func() []string {
			var out []string
			for _, p := range store.OwnedOfType(rs.ID, v1.TypePod) {
				out = append(out, p.MetaString(v1.MetaImage))
			}
			return append(out, find(v1.TypeReplicaSet, rs.Name).MetaString(v1.MetaImage))
		}

		It("should refuse undo at the first revision", func() {
			res := exec(handlers.Rollout, "undo deployment/web")
			Expect(res.Success).To(BeFalse())
			Expect(res.Message).To(Equal(`error: no rollout history found for deployment "web"`))
		})

		It("should propagate images and count revisions", func() {
			res := mustExec(handlers.SetImage, "image deployment/web nginx=nginx:1.26")
			Expect(res.Message).To(Equal("deployment.apps/web image updated"))
			Expect(find(v1.TypeDeployment, "web").MetaIntOr(v1.MetaRevision, 0)).To(Equal(2))
			Expect(images()).To(Equal([]string{"nginx:1.26", "nginx:1.26", "nginx:1.26"}))

			mustExec(handlers.Rollout, "undo deployment/web")
			deploy := find(v1.TypeDeployment, "web")
			Expect(deploy.MetaIntOr(v1.MetaRevision, 0)).To(Equal(3))
			Expect(deploy.MetaString(v1.MetaImage)).To(Equal(v1.PreviousImage))
			Expect(images()).To(Equal([]string{v1.PreviousImage, v1.PreviousImage, v1.PreviousImage}))

			history := strings.Split(mustExec(handlers.Rollout, "history deployment/web").Message, "\n")
			Expect(history).To(HaveLen(5))
			Expect(history[2]).To(MatchRegexp(`^1\s+<none>$`))
			Expect(history[4]).To(MatchRegexp(`^3\s+image updated$`))
		})

		It("should restart pods in place", func() {
			before := store.OwnedOfType(rs.ID, v1.TypePod)
			now = now.Add(time.Hour)
			mustExec(handlers.Rollout, "restart deployment web")

			after := store.OwnedOfType(rs.ID, v1.TypePod)
			Expect(after).To(HaveLen(len(before)))
			for i := range after {
				Expect(after[i].ID).To(Equal(before[i].ID))
				Expect(after[i].Name).To(Equal(before[i].Name))
				Expect(after[i].CreatedAt).To(Equal(now))
			}
			Expect(find(v1.TypeDeployment, "web").MetaIntOr(v1.MetaRevision, 0)).To(Equal(2))
		})

		It("should report status with revision and replicas", func() {
			res := mustExec(handlers.Rollout, "status deployment/web")
			Expect(res.Message).To(ContainSubstring(`deployment "web" successfully rolled out`))
			Expect(res.Message).To(ContainSubstring("revision: 1, replicas: 2/2 ready"))
		})

		It("should report a rollout that is still waiting for replicas", func() {
			mustExec(handlers.Delete, "replicaset "+rs.Name)
			res := mustExec(handlers.Rollout, "status deployment/web")
			Expect(res.Message).To(HavePrefix(`Waiting for deployment "web" rollout to finish: 0 of 2 updated replicas are available...`))
			Expect(res.Message).NotTo(ContainSubstring("successfully rolled out"))
			Expect(res.Message).To(ContainSubstring("replicas: 0/2 ready"))
		})

		It("should reject an empty image", func() {
			res := exec(handlers.SetImage, "image deployment/web nginx=")
			Expect(res.Message).To(Equal("error: image must not be empty"))
			Expect(find(v1.TypeDeployment, "web").MetaIntOr(v1.MetaRevision, 0)).To(Equal(1))
		})

		It("should reject unknown rollout subcommands", func() {
			Expect(exec(handlers.Rollout, "pause deployment/web").Message).To(ContainSubstring(`"pause"`))
		})
	})

	Describe("label", func() {
		BeforeEach(func() {
			mustExec(handlers.Run, "web")
		})

		It("should add, overwrite and remove labels left to right", func() {
			Expect(mustExec(handlers.Label, "pod web tier=frontend").Message).To(Equal("pod/web labeled"))
			mustExec(handlers.Label, "pod/web tier=backend")
			Expect(find(v1.TypePod, "web").Labels).To(HaveKeyWithValue("tier", "backend"))
			mustExec(handlers.Label, "pod/web tier=cache --overwrite")
			Expect(find(v1.TypePod, "web").Labels).To(HaveKeyWithValue("tier", "cache"))

			Expect(mustExec(handlers.Label, "pod web tier-").Message).To(Equal("pod/web unlabeled"))
			Expect(find(v1.TypePod, "web").Labels).To(Equal(map[string]string{"app": "web"}))
		})

		It("should overwrite an existing key without --overwrite", func() {
			mustExec(handlers.Label, "pod web env=prod")
			res := mustExec(handlers.Label, "pod web env=dev")
			Expect(res.ResourcesUpdated).To(HaveLen(1))
			Expect(find(v1.TypePod, "web").Labels).To(Equal(map[string]string{"app": "web", "env": "dev"}))
		})

		It("should apply changes in order", func() {
			mustExec(handlers.Label, "pod web a=1 a- b=2")
			Expect(find(v1.TypePod, "web").Labels).To(Equal(map[string]string{"app": "web", "b": "2"}))
		})

		It("should reject invalid label values", func() {
			res := exec(handlers.Label, "pod web bad=has space")
			Expect(res.Success).To(BeFalse())
		})
	})

	Describe("describe", func() {
		It("should print the preamble and metadata", func() {
			mustExec(handlers.Run, "web --image=redis")
			res := mustExec(handlers.Describe, "pod web")
			Expect(res.Message).To(MatchRegexp(`(?m)^Name:\s+web$`))
			Expect(res.Message).To(MatchRegexp(`(?m)^Namespace:\s+default$`))
			Expect(res.Message).To(MatchRegexp(`(?m)^Image:\s+redis$`))
		})

		It("should report a missing resource", func() {
			Expect(exec(handlers.Describe, "pod/ghost").Message).
				To(Equal(`Error from server (NotFound): pods "ghost" not found`))
		})
	})

	Describe("informational actions", func() {
		It("should list api resources", func() {
			res := mustExec(handlers.APIResources, "")
			Expect(res.Message).To(HavePrefix("NAME"))
			Expect(res.Message).To(MatchRegexp(`(?m)^deployments\s+deploy\s+apps/v1\s+true\s+Deployment$`))
		})

		It("should print versions and cluster info", func() {
			Expect(mustExec(handlers.Version, "").Message).To(ContainSubstring(v1.ServerVersion))
			Expect(mustExec(handlers.ClusterInfo, "").Message).To(ContainSubstring(handlers.ControlPlaneURL))
			Expect(mustExec(handlers.Help, "").Message).To(ContainSubstring("rollout"))
		})
	})
})
