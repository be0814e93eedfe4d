package userdata

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/base64"
	"errors"
	"io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/lander2k2/silenus-provisioner/pkg/apis/provisioner/v1"
	"github.com/lander2k2/silenus-provisioner/pkg/pki"
)

// fakeEncrypter XORs with a fixed byte instead of calling KMS, just enough
// to prove Render routes cert/key material through it before encoding.
type fakeEncrypter struct {
	calls int
	fail  bool
}

func (f *fakeEncrypter) Encrypt(ctx context.Context, keyID string, plaintext []byte) ([]byte, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("kms unavailable")
	}
	out := make([]byte, len(plaintext))
	for i, b := range plaintext {
		out[i] = b ^ 0x42
	}
	return out, nil
}

var _ = Describe("Render", func() {
	var chain *pki.Chain

	BeforeEach(func() {
		var err error
		chain, err = pki.GenerateChain(pki.ChainInput{ClusterName: "t"})
		Expect(err).NotTo(HaveOccurred())
	})

	It("renders a controller template with wrapped CA and API server material", func() {
		tmpl := &v1.UserdataTemplate{Name: "controller", Body: `CA={{.CACertB64}} CERT={{.APIServerCertB64}} KEY={{.APIServerKeyB64}} ELB={{.ControllerELBDNS}}`}
		enc := &fakeEncrypter{}

		doc, err := Render(context.Background(), tmpl, v1.RoleController, Context{ControllerELBDNS: "ctl.example.com"}, chain, "key-1", enc)
		Expect(err).NotTo(HaveOccurred())
		Expect(doc).To(ContainSubstring("ELB=ctl.example.com"))
		Expect(enc.calls).To(Equal(3)) // CA, cert, key
	})

	It("renders a worker template with wrapped worker material, no API server fields", func() {
		tmpl := &v1.UserdataTemplate{Name: "worker", Body: `CA={{.CACertB64}} CERT={{.WorkerCertB64}} KEY={{.WorkerKeyB64}}`}
		enc := &fakeEncrypter{}

		_, err := Render(context.Background(), tmpl, v1.RoleWorker, Context{}, chain, "key-1", enc)
		Expect(err).NotTo(HaveOccurred())
		Expect(enc.calls).To(Equal(3))
	})

	It("wraps only the CA for an etcd template", func() {
		tmpl := &v1.UserdataTemplate{Name: "etcd", Body: `CA={{.CACertB64}}`}
		enc := &fakeEncrypter{}

		_, err := Render(context.Background(), tmpl, v1.RoleEtcd, Context{}, chain, "key-1", enc)
		Expect(err).NotTo(HaveOccurred())
		Expect(enc.calls).To(Equal(1))
	})

	It("fails with RenderError when no template is given", func() {
		_, err := Render(context.Background(), nil, v1.RoleWorker, Context{}, chain, "key-1", &fakeEncrypter{})
		Expect(err).To(HaveOccurred())
	})

	It("fails with RenderError for an unknown role", func() {
		tmpl := &v1.UserdataTemplate{Name: "x", Body: `{{.CACertB64}}`}
		_, err := Render(context.Background(), tmpl, v1.UserdataRole("bogus"), Context{}, chain, "key-1", &fakeEncrypter{})
		Expect(err).To(HaveOccurred())
	})

	It("propagates a KMS failure as RenderError", func() {
		tmpl := &v1.UserdataTemplate{Name: "worker", Body: `{{.CACertB64}}`}
		_, err := Render(context.Background(), tmpl, v1.RoleWorker, Context{}, chain, "key-1", &fakeEncrypter{fail: true})
		Expect(err).To(HaveOccurred())
	})

	It("fails to parse a template with bad syntax", func() {
		tmpl := &v1.UserdataTemplate{Name: "bad", Body: `{{.CACertB64`}
		_, err := Render(context.Background(), tmpl, v1.RoleEtcd, Context{}, chain, "key-1", &fakeEncrypter{})
		Expect(err).To(HaveOccurred())
	})

	It("renders a distinct document per instance when called once per index", func() {
		tmpl := &v1.UserdataTemplate{Name: "etcd", Body: `name: etcd-{{.Index}}` + "\n" + `initial-cluster: etcd-{{.Index}}=http://$private_ipv4:2380`}
		enc := &fakeEncrypter{}

		docs := make([]string, 3)
		for i := range docs {
			doc, err := Render(context.Background(), tmpl, v1.RoleEtcd, Context{Index: i}, chain, "key-1", enc)
			Expect(err).NotTo(HaveOccurred())
			docs[i] = doc
		}

		Expect(docs[0]).To(ContainSubstring("etcd-0"))
		Expect(docs[1]).To(ContainSubstring("etcd-1"))
		Expect(docs[2]).To(ContainSubstring("etcd-2"))
		Expect(docs[0]).NotTo(Equal(docs[1]))
		Expect(docs[1]).NotTo(Equal(docs[2]))
	})
})

var _ = Describe("EncodedForInstance", func() {
	It("round-trips through gzip+base64", func() {
		encoded := EncodedForInstance("#cloud-config\nhostname: test\n")
		raw, err := base64.StdEncoding.DecodeString(encoded)
		Expect(err).NotTo(HaveOccurred())

		gz, err := gzip.NewReader(bytes.NewReader(raw))
		Expect(err).NotTo(HaveOccurred())
		decoded, err := io.ReadAll(gz)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(decoded)).To(Equal("#cloud-config\nhostname: test\n"))
	})
})

var _ = Describe("ObjectKey", func() {
	It("keys userdata by cluster, role, and index", func() {
		Expect(ObjectKey("mycluster", v1.RoleWorker, 2)).To(Equal("mycluster/userdata/worker-2"))
	})
})
