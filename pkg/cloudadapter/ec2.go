package cloudadapter

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// EC2Service is the subset of the EC2 API the orchestrator needs: resolving
// a region's availability zones for the round-robin subnet assignment, and
// managing the keypair instances are launched with.
type EC2Service interface {
	DescribeAvailabilityZones(ctx context.Context, input *ec2.DescribeAvailabilityZonesInput) (*ec2.DescribeAvailabilityZonesOutput, error)
	CreateKeyPair(ctx context.Context, input *ec2.CreateKeyPairInput) (*ec2.CreateKeyPairOutput, error)
	DeleteKeyPair(ctx context.Context, input *ec2.DeleteKeyPairInput) (*ec2.DeleteKeyPairOutput, error)
}

type ec2Service struct {
	svc *ec2.Client
}

func NewEC2Service(cfg aws.Config) EC2Service {
	return &ec2Service{svc: ec2.NewFromConfig(cfg)}
}

func (c *ec2Service) DescribeAvailabilityZones(ctx context.Context, input *ec2.DescribeAvailabilityZonesInput) (*ec2.DescribeAvailabilityZonesOutput, error) {
	return c.svc.DescribeAvailabilityZones(ctx, input)
}

func (c *ec2Service) CreateKeyPair(ctx context.Context, input *ec2.CreateKeyPairInput) (*ec2.CreateKeyPairOutput, error) {
	return c.svc.CreateKeyPair(ctx, input)
}

func (c *ec2Service) DeleteKeyPair(ctx context.Context, input *ec2.DeleteKeyPairInput) (*ec2.DeleteKeyPairOutput, error) {
	return c.svc.DeleteKeyPair(ctx, input)
}

// AvailabilityZoneNames returns the zone names of a DescribeAvailabilityZones
// response in the order AWS returned them.
func AvailabilityZoneNames(out *ec2.DescribeAvailabilityZonesOutput) []string {
	names := make([]string, 0, len(out.AvailabilityZones))
	for _, az := range out.AvailabilityZones {
		if az.ZoneName != nil {
			names = append(names, *az.ZoneName)
		}
	}
	return names
}
