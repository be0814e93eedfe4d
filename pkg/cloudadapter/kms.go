package cloudadapter

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kms"

	"github.com/lander2k2/silenus-provisioner/pkg/errs"
)

// KMSService is the subset of the KMS API the orchestrator needs: one key
// per cluster, used to wrap certificate and key material embedded in
// instance userdata, and torn down on decommission.
type KMSService interface {
	CreateKey(ctx context.Context, input *kms.CreateKeyInput) (*kms.CreateKeyOutput, error)
	CreateAlias(ctx context.Context, input *kms.CreateAliasInput) (*kms.CreateAliasOutput, error)
	DeleteAlias(ctx context.Context, input *kms.DeleteAliasInput) (*kms.DeleteAliasOutput, error)
	ScheduleKeyDeletion(ctx context.Context, input *kms.ScheduleKeyDeletionInput) (*kms.ScheduleKeyDeletionOutput, error)
	Encrypt(ctx context.Context, input *kms.EncryptInput) (*kms.EncryptOutput, error)
}

type kmsService struct {
	svc *kms.Client
}

func NewKMSService(cfg aws.Config) KMSService {
	return &kmsService{svc: kms.NewFromConfig(cfg)}
}

func (c *kmsService) CreateKey(ctx context.Context, input *kms.CreateKeyInput) (*kms.CreateKeyOutput, error) {
	return c.svc.CreateKey(ctx, input)
}

func (c *kmsService) CreateAlias(ctx context.Context, input *kms.CreateAliasInput) (*kms.CreateAliasOutput, error) {
	return c.svc.CreateAlias(ctx, input)
}

func (c *kmsService) DeleteAlias(ctx context.Context, input *kms.DeleteAliasInput) (*kms.DeleteAliasOutput, error) {
	return c.svc.DeleteAlias(ctx, input)
}

func (c *kmsService) ScheduleKeyDeletion(ctx context.Context, input *kms.ScheduleKeyDeletionInput) (*kms.ScheduleKeyDeletionOutput, error) {
	return c.svc.ScheduleKeyDeletion(ctx, input)
}

func (c *kmsService) Encrypt(ctx context.Context, input *kms.EncryptInput) (*kms.EncryptOutput, error) {
	return c.svc.Encrypt(ctx, input)
}

// Encrypter adapts a KMSService to the userdata package's narrower
// KMSEncrypter interface, keeping that package's dependency surface down
// to a single method.
type Encrypter struct {
	Svc KMSService
}

func (e Encrypter) Encrypt(ctx context.Context, keyID string, plaintext []byte) ([]byte, error) {
	out, err := e.Svc.Encrypt(ctx, &kms.EncryptInput{
		KeyId:     aws.String(keyID),
		Plaintext: plaintext,
	})
	if err != nil {
		return nil, errs.Wrap(errs.CloudError, err, "error encrypting with KMS key")
	}
	return out.CiphertextBlob, nil
}
