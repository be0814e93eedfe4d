package cloudadapter

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
)

// ELBService is the subset of the classic ELB API the orchestrator needs:
// discovering a cluster's controller (and, if dedicated, etcd) load
// balancer by its Name tag, then registering node instances with it.
type ELBService interface {
	DescribeLoadBalancers(ctx context.Context, input *elasticloadbalancing.DescribeLoadBalancersInput) (*elasticloadbalancing.DescribeLoadBalancersOutput, error)
	DescribeTags(ctx context.Context, input *elasticloadbalancing.DescribeTagsInput) (*elasticloadbalancing.DescribeTagsOutput, error)
	RegisterInstancesWithLoadBalancer(ctx context.Context, input *elasticloadbalancing.RegisterInstancesWithLoadBalancerInput) (*elasticloadbalancing.RegisterInstancesWithLoadBalancerOutput, error)
}

type elbService struct {
	svc *elasticloadbalancing.Client
}

func NewELBService(cfg aws.Config) ELBService {
	return &elbService{svc: elasticloadbalancing.NewFromConfig(cfg)}
}

func (c *elbService) DescribeLoadBalancers(ctx context.Context, input *elasticloadbalancing.DescribeLoadBalancersInput) (*elasticloadbalancing.DescribeLoadBalancersOutput, error) {
	return c.svc.DescribeLoadBalancers(ctx, input)
}

func (c *elbService) DescribeTags(ctx context.Context, input *elasticloadbalancing.DescribeTagsInput) (*elasticloadbalancing.DescribeTagsOutput, error) {
	return c.svc.DescribeTags(ctx, input)
}

func (c *elbService) RegisterInstancesWithLoadBalancer(ctx context.Context, input *elasticloadbalancing.RegisterInstancesWithLoadBalancerInput) (*elasticloadbalancing.RegisterInstancesWithLoadBalancerOutput, error) {
	return c.svc.RegisterInstancesWithLoadBalancer(ctx, input)
}
