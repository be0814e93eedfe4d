package orchestrator

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/lander2k2/silenus-provisioner/pkg/apis/provisioner/v1"
)

var _ = Describe("decodeInto", func() {
	It("decodes known keys into typed fields and stashes the rest in Unknown", func() {
		effective := map[string]any{
			"primary_cluster_cidr": "10.0.0.0/16",
			"dedicated_etcd":       true,
			"initial_workers":      float64(3),
			"controller_ami":       "ami-12345",
		}

		cfg, err := decodeInto[v1.TierConfig](effective)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.PrimaryClusterCIDR).To(Equal("10.0.0.0/16"))
		Expect(cfg.DedicatedEtcd).To(BeTrue())
		Expect(cfg.InitialWorkers).To(Equal(3))
		Expect(cfg.Unknown).To(HaveKeyWithValue("controller_ami", "ami-12345"))
		Expect(cfg.Unknown).NotTo(HaveKey("primary_cluster_cidr"))
	})

	It("decodes an empty map into zero values with an empty Unknown", func() {
		cfg, err := decodeInto[v1.ClusterConfig](map[string]any{})
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.KubernetesVersion).To(BeEmpty())
		Expect(cfg.Unknown).To(BeEmpty())
	})
})

var _ = Describe("checkKubernetesVersion", func() {
	It("accepts a fully-qualified version inside the supported range", func() {
		Expect(checkKubernetesVersion("1.28.4")).To(Succeed())
	})

	It("accepts a bare major.minor version by assuming patch zero", func() {
		Expect(checkKubernetesVersion("1.25")).To(Succeed())
	})

	It("rejects an empty version", func() {
		Expect(checkKubernetesVersion("")).To(MatchError(ContainSubstring("required")))
	})

	It("rejects a malformed version string", func() {
		Expect(checkKubernetesVersion("not-a-version")).To(HaveOccurred())
	})

	It("rejects a version below the supported floor", func() {
		Expect(checkKubernetesVersion("1.18.0")).To(MatchError(ContainSubstring("not supported")))
	})

	It("rejects a version above the supported ceiling", func() {
		Expect(checkKubernetesVersion("1.30.0")).To(MatchError(ContainSubstring("not supported")))
	})
})

var _ = Describe("stack asset helpers", func() {
	Describe("stackIDOf", func() {
		It("extracts a stack_id from a well-formed entry", func() {
			id, ok := stackIDOf(map[string]any{"stack_id": "arn:aws:cloudformation:...", "status": "CREATE_COMPLETE"})
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal("arn:aws:cloudformation:..."))
		})

		It("reports not-ok for a non-map value", func() {
			_, ok := stackIDOf("not a map")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("stackIDFor", func() {
		It("reads the single stack entry when key is empty", func() {
			assets := map[string]any{"cloudformation_stack": map[string]any{"stack_id": "id-1"}}
			id, ok := stackIDFor(assets, "")
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal("id-1"))
		})

		It("reads a keyed stack entry among several", func() {
			assets := map[string]any{"cloudformation_stack": map[string]any{
				"network": map[string]any{"stack_id": "net-id"},
				"nodes":   map[string]any{"stack_id": "nodes-id"},
			}}
			id, ok := stackIDFor(assets, "nodes")
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal("nodes-id"))
		})
	})

	Describe("setStackStatus and nestedStatus", func() {
		It("round-trips a status through the single-stack shape", func() {
			assets := map[string]any{}
			setStackStatus(assets, "", "CREATE_IN_PROGRESS")
			entry, _ := assets["cloudformation_stack"].(map[string]any)
			Expect(entry["status"]).To(Equal("CREATE_IN_PROGRESS"))
		})

		It("round-trips a status through the keyed shape without disturbing siblings", func() {
			assets := map[string]any{"cloudformation_stack": map[string]any{
				"network": map[string]any{"stack_id": "net-id", "status": "CREATE_COMPLETE"},
			}}
			setStackStatus(assets, "nodes", "CREATE_IN_PROGRESS")

			status, ok := nestedStatus(assets, "nodes")
			Expect(ok).To(BeTrue())
			Expect(status).To(Equal("CREATE_IN_PROGRESS"))

			netStatus, ok := nestedStatus(assets, "network")
			Expect(ok).To(BeTrue())
			Expect(netStatus).To(Equal("CREATE_COMPLETE"))
		})
	})
})

var _ = Describe("requestToken", func() {
	It("returns a fresh, non-empty token on every call", func() {
		a := requestToken()
		b := requestToken()
		Expect(*a).NotTo(BeEmpty())
		Expect(*a).NotTo(Equal(*b))
	})
})
