package cloudadapter

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
)

// CloudFormationService is the subset of the CloudFormation API the
// orchestrator needs: submitting, describing, listing exports of, and
// tearing down stacks.
type CloudFormationService interface {
	CreateStack(ctx context.Context, input *cloudformation.CreateStackInput) (*cloudformation.CreateStackOutput, error)
	DescribeStacks(ctx context.Context, input *cloudformation.DescribeStacksInput) (*cloudformation.DescribeStacksOutput, error)
	DescribeStackEvents(ctx context.Context, input *cloudformation.DescribeStackEventsInput) (*cloudformation.DescribeStackEventsOutput, error)
	DeleteStack(ctx context.Context, input *cloudformation.DeleteStackInput) (*cloudformation.DeleteStackOutput, error)
	ListExports(ctx context.Context, input *cloudformation.ListExportsInput) (*cloudformation.ListExportsOutput, error)
}

type cloudFormationService struct {
	svc *cloudformation.Client
}

func NewCloudFormationService(cfg aws.Config) CloudFormationService {
	return &cloudFormationService{svc: cloudformation.NewFromConfig(cfg)}
}

func (c *cloudFormationService) CreateStack(ctx context.Context, input *cloudformation.CreateStackInput) (*cloudformation.CreateStackOutput, error) {
	return c.svc.CreateStack(ctx, input)
}

func (c *cloudFormationService) DescribeStacks(ctx context.Context, input *cloudformation.DescribeStacksInput) (*cloudformation.DescribeStacksOutput, error) {
	return c.svc.DescribeStacks(ctx, input)
}

func (c *cloudFormationService) DescribeStackEvents(ctx context.Context, input *cloudformation.DescribeStackEventsInput) (*cloudformation.DescribeStackEventsOutput, error) {
	return c.svc.DescribeStackEvents(ctx, input)
}

func (c *cloudFormationService) DeleteStack(ctx context.Context, input *cloudformation.DeleteStackInput) (*cloudformation.DeleteStackOutput, error) {
	return c.svc.DeleteStack(ctx, input)
}

func (c *cloudFormationService) ListExports(ctx context.Context, input *cloudformation.ListExportsInput) (*cloudformation.ListExportsOutput, error) {
	return c.svc.ListExports(ctx, input)
}

// ListAllExports pages through ListExports until exhausted, the access
// pattern the orchestrator actually needs: resolving a subnet or VPC export
// name doesn't come with a known page token.
func ListAllExports(ctx context.Context, svc CloudFormationService) ([]cloudformation.ListExportsOutput, error) {
	var pages []cloudformation.ListExportsOutput
	var token *string
	for {
		out, err := svc.ListExports(ctx, &cloudformation.ListExportsInput{NextToken: token})
		if err != nil {
			return nil, err
		}
		pages = append(pages, *out)
		if out.NextToken == nil {
			break
		}
		token = out.NextToken
	}
	return pages, nil
}
