// Package userdata renders the cloud-init bootstrap document embedded into
// each node's instance userdata, interpolating cluster configuration and
// KMS-wrapped TLS material into the role's text template.
package userdata

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/base64"
	"fmt"
	"text/template"

	v1 "github.com/lander2k2/silenus-provisioner/pkg/apis/provisioner/v1"
	"github.com/lander2k2/silenus-provisioner/pkg/errs"
	"github.com/lander2k2/silenus-provisioner/pkg/pki"
)

// KMSEncrypter wraps plaintext with a cluster's KMS key. Satisfied by
// cloudadapter.Encrypter.
type KMSEncrypter interface {
	Encrypt(ctx context.Context, keyID string, plaintext []byte) ([]byte, error)
}

// Context is the interpolation context for a single role/index pair.
type Context struct {
	Index            int
	Region           string
	ControllerELBDNS string
	EtcdELBDNS       string // only set if dedicated_etcd

	CACertB64        string
	APIServerCertB64 string
	APIServerKeyB64  string
	WorkerCertB64    string
	WorkerKeyB64     string

	Config map[string]any
}

// Render interpolates the role-appropriate template with ctx, wrapping the
// role-appropriate certs/keys from chain with KMS and gzip+base64 encoding
// them into the template context.
func Render(ctx context.Context, tmpl *v1.UserdataTemplate, role v1.UserdataRole, tctx Context, chain *pki.Chain, kmsKeyID string, enc KMSEncrypter) (string, error) {
	if tmpl == nil {
		return "", errs.Newf(errs.RenderError, "TemplateNotFound: no userdata template for role %s", role)
	}

	wrap := func(plaintext []byte) (string, error) {
		wrapped, err := enc.Encrypt(ctx, kmsKeyID, plaintext)
		if err != nil {
			return "", errs.Wrapf(errs.RenderError, err, "error KMS-wrapping userdata material for role %s", role)
		}
		return gzipBase64(wrapped), nil
	}

	var err error
	tctx.CACertB64, err = wrap(chain.CA.CertPEM)
	if err != nil {
		return "", err
	}

	switch role {
	case v1.RoleController:
		tctx.APIServerCertB64, err = wrap(chain.APIServer.CertPEM)
		if err != nil {
			return "", err
		}
		tctx.APIServerKeyB64, err = wrap(chain.APIServer.KeyPEM)
		if err != nil {
			return "", err
		}
	case v1.RoleWorker:
		tctx.WorkerCertB64, err = wrap(chain.Worker.CertPEM)
		if err != nil {
			return "", err
		}
		tctx.WorkerKeyB64, err = wrap(chain.Worker.KeyPEM)
		if err != nil {
			return "", err
		}
	case v1.RoleEtcd:
		// etcd nodes authenticate peers with the CA only; no leaf pair of
		// their own in this design.
	default:
		return "", errs.Newf(errs.RenderError, "unknown userdata role %q", role)
	}

	t, err := template.New(tmpl.Name).Parse(tmpl.Body)
	if err != nil {
		return "", errs.Wrapf(errs.RenderError, err, "error parsing userdata template %s", tmpl.Name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, tctx); err != nil {
		return "", errs.Wrapf(errs.RenderError, err, "error rendering userdata template %s", tmpl.Name)
	}

	return buf.String(), nil
}

// EncodedForInstance returns the gzip+base64 encoding of a rendered
// document, the form embedded into the cloud template as instance
// userdata.
func EncodedForInstance(rendered string) string {
	return gzipBase64([]byte(rendered))
}

// ObjectKey returns the bucket key a role's rendered userdata is uploaded
// under.
func ObjectKey(clusterName string, role v1.UserdataRole, index int) string {
	return fmt.Sprintf("%s/userdata/%s-%d", clusterName, role, index)
}

func gzipBase64(data []byte) string {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write(data)
	_ = gz.Close()
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}
