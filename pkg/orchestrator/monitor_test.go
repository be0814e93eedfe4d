package orchestrator

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing/types"
	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	v1 "github.com/lander2k2/silenus-provisioner/pkg/apis/provisioner/v1"
	"github.com/lander2k2/silenus-provisioner/pkg/cloudadapter/mock_cloudadapter"
	"github.com/lander2k2/silenus-provisioner/pkg/config"
	"github.com/lander2k2/silenus-provisioner/pkg/errs"
	"github.com/lander2k2/silenus-provisioner/pkg/orchestrator/mock_orchestrator"
	"github.com/lander2k2/silenus-provisioner/pkg/taskqueue"
)

var _ = Describe("backoffTicks", func() {
	It("doubles each tick until it hits the cap, then holds", func() {
		next := backoffTicks(5*time.Second, 30*time.Second)
		Expect(next()).To(Equal(5 * time.Second))
		Expect(next()).To(Equal(10 * time.Second))
		Expect(next()).To(Equal(20 * time.Second))
		Expect(next()).To(Equal(30 * time.Second))
		Expect(next()).To(Equal(30 * time.Second))
	})
})

var _ = Describe("isFailed", func() {
	It("recognizes any status ending in FAILED", func() {
		Expect(isFailed("CREATE_FAILED")).To(BeTrue())
		Expect(isFailed("ROLLBACK_FAILED")).To(BeTrue())
		Expect(isFailed("CREATE_COMPLETE")).To(BeFalse())
		Expect(isFailed("CREATE_IN_PROGRESS")).To(BeFalse())
	})
})

var _ = Describe("instanceIDsFromExports", func() {
	It("filters by jurisdiction and role prefix and caps at count", func() {
		export := func(name, value string) cftypes.Export {
			return cftypes.Export{Name: aws.String(name), Value: aws.String(value)}
		}
		pages := []cloudformation.ListExportsOutput{
			{Exports: []cftypes.Export{
				export("7-instance-controller-0", "i-aaa"),
				export("7-instance-controller-1", "i-bbb"),
				export("7-instance-worker-0", "i-ccc"),
				export("8-instance-controller-0", "i-ddd"),
			}},
		}

		ids := instanceIDsFromExports(pages, 7, "controller", 1)
		Expect(ids).To(HaveLen(1))
		Expect(ids[0]).To(Equal("i-aaa"))
	})

	It("returns every match when count is unset", func() {
		export := func(name, value string) cftypes.Export {
			return cftypes.Export{Name: aws.String(name), Value: aws.String(value)}
		}
		pages := []cloudformation.ListExportsOutput{
			{Exports: []cftypes.Export{
				export("7-instance-etcd-0", "i-aaa"),
				export("7-instance-etcd-1", "i-bbb"),
			}},
		}

		ids := instanceIDsFromExports(pages, 7, "etcd", 0)
		Expect(ids).To(HaveLen(2))
	})
})

var _ = Describe("allStacksComplete", func() {
	It("is false until every labeled stack has reached terminal success", func() {
		assets := map[string]any{"cloudformation_stack": map[string]any{
			"primary": map[string]any{"status": "CREATE_COMPLETE"},
			"support": map[string]any{"status": "CREATE_IN_PROGRESS"},
		}}
		Expect(allStacksComplete(assets)).To(BeFalse())
	})

	It("is true once all labeled stacks have reached terminal success", func() {
		assets := map[string]any{"cloudformation_stack": map[string]any{
			"primary": map[string]any{"status": "CREATE_COMPLETE"},
			"support": map[string]any{"status": "UPDATE_COMPLETE"},
		}}
		Expect(allStacksComplete(assets)).To(BeTrue())
	})

	It("is false when there is nothing recorded yet", func() {
		Expect(allStacksComplete(map[string]any{})).To(BeFalse())
	})
})

var _ = Describe("lookupELBByTag", func() {
	var ctrl *gomock.Controller

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	It("finds the load balancer carrying the matching Name tag", func() {
		svc := mock_cloudadapter.NewMockELBService(ctrl)
		svc.EXPECT().DescribeLoadBalancers(context.Background(), gomock.Any()).Return(&elasticloadbalancing.DescribeLoadBalancersOutput{
			LoadBalancerDescriptions: []elbtypes.LoadBalancerDescription{
				{LoadBalancerName: aws.String("lb-one"), DNSName: aws.String("lb-one.example.com")},
				{LoadBalancerName: aws.String("lb-two"), DNSName: aws.String("lb-two.example.com")},
			},
		}, nil)
		svc.EXPECT().DescribeTags(context.Background(), gomock.Any()).Return(&elasticloadbalancing.DescribeTagsOutput{
			TagDescriptions: []elbtypes.TagDescription{
				{LoadBalancerName: aws.String("lb-one"), Tags: []elbtypes.Tag{{Key: aws.String("Name"), Value: aws.String("other_controller")}}},
				{LoadBalancerName: aws.String("lb-two"), Tags: []elbtypes.Tag{{Key: aws.String("Name"), Value: aws.String("alpha_controller")}}},
			},
		}, nil)

		dns, err := lookupELBByTag(context.Background(), svc, "alpha_controller")
		Expect(err).NotTo(HaveOccurred())
		Expect(dns).To(Equal("lb-two.example.com"))
	})

	It("errors when no load balancer carries the tag", func() {
		svc := mock_cloudadapter.NewMockELBService(ctrl)
		svc.EXPECT().DescribeLoadBalancers(context.Background(), gomock.Any()).Return(&elasticloadbalancing.DescribeLoadBalancersOutput{
			LoadBalancerDescriptions: []elbtypes.LoadBalancerDescription{
				{LoadBalancerName: aws.String("lb-one"), DNSName: aws.String("lb-one.example.com")},
			},
		}, nil)
		svc.EXPECT().DescribeTags(context.Background(), gomock.Any()).Return(&elasticloadbalancing.DescribeTagsOutput{
			TagDescriptions: []elbtypes.TagDescription{
				{LoadBalancerName: aws.String("lb-one"), Tags: []elbtypes.Tag{{Key: aws.String("Name"), Value: aws.String("other_controller")}}},
			},
		}, nil)

		_, err := lookupELBByTag(context.Background(), svc, "alpha_controller")
		Expect(errs.Is(err, errs.NotFound)).To(BeTrue())
	})
})

var _ = Describe("MonitorStack", func() {
	var (
		ctrl      *gomock.Controller
		store     *mock_orchestrator.MockJurisdictionStore
		services  *mock_orchestrator.MockServiceFactory
		publisher *mock_orchestrator.MockTaskPublisher
		deps      *Deps
		ctx       context.Context
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		store = mock_orchestrator.NewMockJurisdictionStore(ctrl)
		services = mock_orchestrator.NewMockServiceFactory(ctrl)
		publisher = mock_orchestrator.NewMockTaskPublisher(ctrl)
		deps = &Deps{
			Store: store, Services: services, Publisher: publisher, Log: logrus.New(),
			Monitor: config.Monitor{PollInterval: "1ms", PollIntervalMax: "2ms", Deadline: "1s"},
		}
		ctx = context.Background()
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	It("activates a single-stack tier once its primary VPC stack completes", func() {
		j := &v1.Jurisdiction{
			ID:            2,
			TypeID:        3,
			Configuration: map[string]any{"region": "us-east-1"},
			Assets: map[string]any{
				"cloudformation_stack": map[string]any{
					"primary": map[string]any{"stack_id": "arn:stack/primary", "status": nil},
				},
			},
		}
		store.EXPECT().GetJurisdiction(ctx, int64(2)).Return(j, nil).Times(2)

		cf := mock_cloudadapter.NewMockCloudFormationService(ctrl)
		services.EXPECT().CloudFormation(ctx, "us-east-1").Return(cf, nil)
		cf.EXPECT().DescribeStacks(ctx, gomock.Any()).Return(&cloudformation.DescribeStacksOutput{
			Stacks: []cftypes.Stack{{StackStatus: cftypes.StackStatusCreateComplete}},
		}, nil)

		store.EXPECT().MergeAssets(ctx, int64(2), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, merge func(map[string]any) map[string]any) error {
				j.Assets = merge(j.Assets)
				return nil
			})
		store.EXPECT().SetActive(ctx, int64(2), true).Return(nil)

		err := deps.MonitorStack(ctx, taskqueue.Task{
			Kind:                  taskqueue.MonitorStack,
			JurisdictionID:        2,
			StackKey:              "primary",
			InterimOperation:      true,
			ActivateOnAllComplete: true,
		})
		Expect(err).NotTo(HaveOccurred())
	})

	It("waits on a sibling stack before activating a tier with a support cluster", func() {
		j := &v1.Jurisdiction{
			ID:            2,
			TypeID:        3,
			Configuration: map[string]any{"region": "us-east-1"},
			Assets: map[string]any{
				"cloudformation_stack": map[string]any{
					"primary": map[string]any{"stack_id": "arn:stack/primary", "status": nil},
					"support": map[string]any{"stack_id": "arn:stack/support", "status": "CREATE_IN_PROGRESS"},
				},
			},
		}
		store.EXPECT().GetJurisdiction(ctx, int64(2)).Return(j, nil).Times(2)

		cf := mock_cloudadapter.NewMockCloudFormationService(ctrl)
		services.EXPECT().CloudFormation(ctx, "us-east-1").Return(cf, nil)
		cf.EXPECT().DescribeStacks(ctx, gomock.Any()).Return(&cloudformation.DescribeStacksOutput{
			Stacks: []cftypes.Stack{{StackStatus: cftypes.StackStatusCreateComplete}},
		}, nil)

		store.EXPECT().MergeAssets(ctx, int64(2), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, merge func(map[string]any) map[string]any) error {
				j.Assets = merge(j.Assets)
				return nil
			})
		store.EXPECT().SetActive(ctx, gomock.Any(), gomock.Any()).Times(0)

		err := deps.MonitorStack(ctx, taskqueue.Task{
			Kind:                  taskqueue.MonitorStack,
			JurisdictionID:        2,
			StackKey:              "primary",
			InterimOperation:      true,
			ActivateOnAllComplete: true,
		})
		Expect(err).NotTo(HaveOccurred())
	})
})
