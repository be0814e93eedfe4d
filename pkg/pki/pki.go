// Package pki mints the self-consistent certificate chain a cluster needs
// to bootstrap Kubernetes TLS: a root CA, an admin key pair, an API server
// key pair, and a worker key pair.
//
// No third-party certificate-generation library in the retrieved pack ships
// an importable, general-purpose CA/leaf-signing API (hypershift's
// certs/pki packages are internal to that module, not a standalone
// dependency, and only their call sites and tests were retrieved) — this
// package is deliberately stdlib-only (crypto/rsa, crypto/x509), shaped
// after the CertCfg/SignCertificate call pattern observed at those sites
// for stylistic consistency with the rest of the pack.
package pki

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"time"

	"github.com/lander2k2/silenus-provisioner/pkg/errs"
)

const (
	ValidityTenYears = 10 * 365 * 24 * time.Hour
	rsaKeyBits       = 2048
)

// CertCfg describes a single certificate to mint.
type CertCfg struct {
	Subject      pkix.Name
	KeyUsages    x509.KeyUsage
	ExtKeyUsages []x509.ExtKeyUsage
	Validity     time.Duration
	IsCA         bool
	DNSNames     []string
	IPAddresses  []net.IP
}

// KeyPair is a signed certificate and its private key, both PEM-encoded.
type KeyPair struct {
	Name    string
	CertPEM []byte
	KeyPEM  []byte
	Cert    *x509.Certificate
}

// CA is a self-signed root certificate authority.
type CA struct {
	KeyPair
	Key *rsa.PrivateKey
}

// GenerateCA produces the cluster's self-signed root CA: CN=<cluster>-ca,
// basicConstraints=CA:TRUE, validity ~10 years, random 64-bit serial.
func GenerateCA(clusterName string) (*CA, error) {
	key, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, errs.Wrap(errs.PKIFailure, err, "error generating CA private key")
	}

	serial, err := randomSerial()
	if err != nil {
		return nil, errs.Wrap(errs.PKIFailure, err, "error generating CA serial")
	}

	tmpl := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: fmt.Sprintf("%s-ca", clusterName)},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(ValidityTenYears),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
		IsCA:                  true,
		SubjectKeyId:          subjectKeyID(&key.PublicKey),
	}
	tmpl.AuthorityKeyId = tmpl.SubjectKeyId

	certDER, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		return nil, errs.Wrap(errs.PKIFailure, err, "error self-signing CA certificate")
	}

	cert, err := x509.ParseCertificate(certDER)
	if err != nil {
		return nil, errs.Wrap(errs.PKIFailure, err, "error parsing generated CA certificate")
	}

	return &CA{
		Key: key,
		KeyPair: KeyPair{
			Name:    fmt.Sprintf("%s-ca", clusterName),
			CertPEM: encodeCertPEM(certDER),
			KeyPEM:  encodeKeyPEM(key),
			Cert:    cert,
		},
	}, nil
}

// SignCertificate mints a leaf certificate per cfg, signed by ca.
func SignCertificate(name string, cfg *CertCfg, ca *CA) (*KeyPair, error) {
	key, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, errs.Wrapf(errs.PKIFailure, err, "error generating private key for %s", name)
	}

	serial, err := randomSerial()
	if err != nil {
		return nil, errs.Wrapf(errs.PKIFailure, err, "error generating serial for %s", name)
	}

	validity := cfg.Validity
	if validity == 0 {
		validity = ValidityTenYears
	}

	tmpl := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               cfg.Subject,
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(validity),
		KeyUsage:              cfg.KeyUsages,
		ExtKeyUsage:           cfg.ExtKeyUsages,
		BasicConstraintsValid: true,
		IsCA:                  cfg.IsCA,
		DNSNames:              cfg.DNSNames,
		IPAddresses:           cfg.IPAddresses,
		SubjectKeyId:          subjectKeyID(&key.PublicKey),
		AuthorityKeyId:        ca.Cert.SubjectKeyId,
	}

	certDER, err := x509.CreateCertificate(rand.Reader, tmpl, ca.Cert, &key.PublicKey, ca.Key)
	if err != nil {
		return nil, errs.Wrapf(errs.PKIFailure, err, "error signing certificate for %s", name)
	}

	cert, err := x509.ParseCertificate(certDER)
	if err != nil {
		return nil, errs.Wrapf(errs.PKIFailure, err, "error parsing generated certificate for %s", name)
	}

	return &KeyPair{
		Name:    name,
		CertPEM: encodeCertPEM(certDER),
		KeyPEM:  encodeKeyPEM(key),
		Cert:    cert,
	}, nil
}

// ChainInput is everything needed to mint a full cluster chain.
type ChainInput struct {
	ClusterName           string
	ControllerELBDNS      string
	KubernetesAPIDNSNames []string
	ControllerIPs         []string
	KubernetesAPIIP       string
}

// Chain is the full set of certificates a cluster needs.
type Chain struct {
	CA        *CA
	Admin     *KeyPair
	APIServer *KeyPair
	Worker    *KeyPair
}

// GenerateChain mints the CA, admin, API server, and worker key pairs for
// a cluster, in the order and with the subjects/SANs required by the
// bootstrap process.
func GenerateChain(in ChainInput) (*Chain, error) {
	ca, err := GenerateCA(in.ClusterName)
	if err != nil {
		return nil, err
	}

	admin, err := SignCertificate(fmt.Sprintf("%s-admin", in.ClusterName), &CertCfg{
		Subject:      pkix.Name{CommonName: fmt.Sprintf("%s-admin", in.ClusterName)},
		KeyUsages:    x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsages: []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}, ca)
	if err != nil {
		return nil, err
	}

	var apiSANDNS []string
	apiSANDNS = append(apiSANDNS, in.ControllerELBDNS)
	apiSANDNS = append(apiSANDNS, in.KubernetesAPIDNSNames...)

	var apiSANIPs []net.IP
	for _, s := range in.ControllerIPs {
		if ip := net.ParseIP(s); ip != nil {
			apiSANIPs = append(apiSANIPs, ip)
		}
	}
	if ip := net.ParseIP(in.KubernetesAPIIP); ip != nil {
		apiSANIPs = append(apiSANIPs, ip)
	}

	apiserver, err := SignCertificate(fmt.Sprintf("%s-apiserver", in.ClusterName), &CertCfg{
		Subject:      pkix.Name{CommonName: fmt.Sprintf("%s-apiserver", in.ClusterName)},
		KeyUsages:    x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsages: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		DNSNames:     apiSANDNS,
		IPAddresses:  apiSANIPs,
	}, ca)
	if err != nil {
		return nil, err
	}

	worker, err := SignCertificate(fmt.Sprintf("%s-worker", in.ClusterName), &CertCfg{
		Subject:      pkix.Name{CommonName: fmt.Sprintf("%s-worker", in.ClusterName)},
		KeyUsages:    x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsages: []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		DNSNames:     []string{"*.*.compute.internal", "*.ec2.internal"},
	}, ca)
	if err != nil {
		return nil, err
	}

	return &Chain{CA: ca, Admin: admin, APIServer: apiserver, Worker: worker}, nil
}

// ObjectKey returns the bucket key a key pair's PEM material is uploaded
// under: <cluster>/credentials/<name>.pem.
func ObjectKey(clusterName, name string) string {
	return fmt.Sprintf("%s/credentials/%s.pem", clusterName, name)
}

func randomSerial() (*big.Int, error) {
	limit := new(big.Int).Lsh(big.NewInt(1), 64)
	return rand.Int(rand.Reader, limit)
}

func subjectKeyID(pub *rsa.PublicKey) []byte {
	sum := sha1.Sum(x509.MarshalPKCS1PublicKey(pub))
	return sum[:]
}

func encodeCertPEM(der []byte) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
}

func encodeKeyPEM(key *rsa.PrivateKey) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
}
