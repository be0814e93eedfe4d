package cloudadapter

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
)

// IAMService is the subset of the IAM API the orchestrator needs. Cluster
// node roles are created inline by the cluster nodes template; this
// service only validates a control group's pre-existing cross-account
// execution role, when one is configured, before a provision is submitted.
type IAMService interface {
	GetRole(ctx context.Context, input *iam.GetRoleInput) (*iam.GetRoleOutput, error)
}

type iamService struct {
	svc *iam.Client
}

func NewIAMService(cfg aws.Config) IAMService {
	return &iamService{svc: iam.NewFromConfig(cfg)}
}

func (c *iamService) GetRole(ctx context.Context, input *iam.GetRoleInput) (*iam.GetRoleOutput, error) {
	return c.svc.GetRole(ctx, input)
}
