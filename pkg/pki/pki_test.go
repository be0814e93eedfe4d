package pki

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCA(t *testing.T) {
	ca, err := GenerateCA("test-cluster")
	require.NoError(t, err)
	require.NotNil(t, ca)

	assert.Equal(t, "test-cluster-ca", ca.Name)
	assert.True(t, ca.Cert.IsCA)
	assert.Equal(t, "test-cluster-ca", ca.Cert.Subject.CommonName)
	assert.NotEmpty(t, ca.CertPEM)
	assert.NotEmpty(t, ca.KeyPEM)
}

func TestSignCertificate(t *testing.T) {
	ca, err := GenerateCA("test-cluster")
	require.NoError(t, err)

	leaf, err := SignCertificate("test-cluster-apiserver", &CertCfg{
		Subject:      pkix.Name{CommonName: "test-cluster-apiserver"},
		KeyUsages:    x509.KeyUsageDigitalSignature,
		ExtKeyUsages: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		DNSNames:     []string{"api.example.internal"},
	}, ca)
	require.NoError(t, err)

	assert.Equal(t, "test-cluster-apiserver", leaf.Cert.Subject.CommonName)
	assert.Equal(t, []string{"api.example.internal"}, leaf.Cert.DNSNames)
	assert.Equal(t, ca.Cert.SubjectKeyId, leaf.Cert.AuthorityKeyId)

	roots := x509.NewCertPool()
	roots.AddCert(ca.Cert)
	_, err = leaf.Cert.Verify(x509.VerifyOptions{
		Roots:     roots,
		KeyUsages: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	})
	assert.NoError(t, err, "leaf certificate must chain to its CA")
}

func TestGenerateChain(t *testing.T) {
	chain, err := GenerateChain(ChainInput{
		ClusterName:           "test-cluster",
		ControllerELBDNS:      "ctl.example.com",
		KubernetesAPIDNSNames: []string{"kubernetes.default"},
		ControllerIPs:         []string{"10.0.0.10", "not-an-ip"},
		KubernetesAPIIP:       "10.0.0.1",
	})
	require.NoError(t, err)

	assert.Contains(t, chain.APIServer.Cert.DNSNames, "ctl.example.com")
	assert.Contains(t, chain.APIServer.Cert.DNSNames, "kubernetes.default")
	// the malformed IP is silently dropped, the valid ones kept.
	var ipStrs []string
	for _, ip := range chain.APIServer.Cert.IPAddresses {
		ipStrs = append(ipStrs, ip.String())
	}
	assert.Contains(t, ipStrs, "10.0.0.10")
	assert.Contains(t, ipStrs, "10.0.0.1")
	assert.Len(t, ipStrs, 2)

	assert.Equal(t, x509.ExtKeyUsageClientAuth, chain.Worker.Cert.ExtKeyUsage[0])
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "mycluster/credentials/mycluster-ca.pem", ObjectKey("mycluster", "mycluster-ca"))
}
