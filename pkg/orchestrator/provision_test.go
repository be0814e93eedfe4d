package orchestrator

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	v1 "github.com/lander2k2/silenus-provisioner/pkg/apis/provisioner/v1"
	"github.com/lander2k2/silenus-provisioner/pkg/cloudadapter/mock_cloudadapter"
	"github.com/lander2k2/silenus-provisioner/pkg/errs"
	"github.com/lander2k2/silenus-provisioner/pkg/orchestrator/mock_orchestrator"
	"github.com/lander2k2/silenus-provisioner/pkg/taskqueue"
)

var _ = Describe("Provision", func() {
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
		deps = &Deps{Store: store, Services: services, Publisher: publisher, Log: logrus.New()}
		ctx = context.Background()
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	It("rejects a jurisdiction that is already active", func() {
		store.EXPECT().GetJurisdiction(ctx, int64(1)).Return(&v1.Jurisdiction{ID: 1, Active: true}, nil)

		err := deps.Provision(ctx, 1)
		Expect(errs.Is(err, errs.Conflict)).To(BeTrue())
	})

	It("rejects an unknown jurisdiction type", func() {
		store.EXPECT().GetJurisdiction(ctx, int64(1)).Return(&v1.Jurisdiction{ID: 1, TypeID: 9}, nil)
		store.EXPECT().GetJurisdictionType(ctx, int64(9)).Return(&v1.JurisdictionType{ID: 9, Name: "bogus"}, nil)

		err := deps.Provision(ctx, 1)
		Expect(errs.Is(err, errs.Unsupported)).To(BeTrue())
	})

	Describe("a control group", func() {
		It("submits its stack and enqueues the monitor task", func() {
			j := &v1.Jurisdiction{
				ID:     1,
				Name:   "alpha",
				TypeID: 2,
				Configuration: map[string]any{
					"platform": "amazon_web_services",
					"region":   "us-east-1",
				},
			}
			store.EXPECT().GetJurisdiction(ctx, int64(1)).Return(j, nil)
			store.EXPECT().GetJurisdictionType(ctx, int64(2)).Return(&v1.JurisdictionType{ID: 2, Name: v1.TypeControlGroup}, nil)

			cf := mock_cloudadapter.NewMockCloudFormationService(ctrl)
			services.EXPECT().CloudFormation(ctx, "us-east-1").Return(cf, nil)
			cf.EXPECT().CreateStack(ctx, gomock.Any()).Return(&cloudformation.CreateStackOutput{
				StackId: aws.String("arn:aws:cloudformation:stack/alpha"),
			}, nil)

			store.EXPECT().MergeAssets(ctx, int64(1), gomock.Any()).DoAndReturn(
				func(_ context.Context, _ int64, merge func(map[string]any) map[string]any) error {
					assets := merge(map[string]any{})
					Expect(assets["s3_bucket"]).NotTo(BeEmpty())
					entry, ok := assets["cloudformation_stack"].(map[string]any)
					Expect(ok).To(BeTrue())
					Expect(entry["stack_id"]).To(Equal("arn:aws:cloudformation:stack/alpha"))
					return nil
				})

			publisher.EXPECT().Publish(ctx, taskqueue.Task{Kind: taskqueue.MonitorStack, JurisdictionID: 1}).Return(nil)

			Expect(deps.Provision(ctx, 1)).To(Succeed())
		})

		It("fails precondition when no region is configured", func() {
			j := &v1.Jurisdiction{ID: 1, TypeID: 2, Configuration: map[string]any{"platform": "amazon_web_services"}}
			store.EXPECT().GetJurisdiction(ctx, int64(1)).Return(j, nil)
			store.EXPECT().GetJurisdictionType(ctx, int64(2)).Return(&v1.JurisdictionType{ID: 2, Name: v1.TypeControlGroup}, nil)

			err := deps.Provision(ctx, 1)
			Expect(errs.Is(err, errs.PrecondFail)).To(BeTrue())
		})

		It("rejects an unsupported platform", func() {
			j := &v1.Jurisdiction{ID: 1, TypeID: 2, Configuration: map[string]any{"platform": "azure"}}
			store.EXPECT().GetJurisdiction(ctx, int64(1)).Return(j, nil)
			store.EXPECT().GetJurisdictionType(ctx, int64(2)).Return(&v1.JurisdictionType{ID: 2, Name: v1.TypeControlGroup}, nil)

			err := deps.Provision(ctx, 1)
			Expect(errs.Is(err, errs.Unsupported)).To(BeTrue())
		})
	})

	Describe("a tier", func() {
		It("refuses to provision under an inactive control group", func() {
			parentID := int64(1)
			j := &v1.Jurisdiction{ID: 2, TypeID: 3, ParentID: &parentID}
			store.EXPECT().GetJurisdiction(ctx, int64(2)).Return(j, nil)
			store.EXPECT().GetJurisdictionType(ctx, int64(3)).Return(&v1.JurisdictionType{ID: 3, Name: v1.TypeTier}, nil)
			store.EXPECT().GetJurisdiction(ctx, int64(1)).Return(&v1.Jurisdiction{ID: 1, Active: false}, nil)

			err := deps.Provision(ctx, 2)
			Expect(errs.Is(err, errs.PrecondFail)).To(BeTrue())
		})

		It("refuses a tier with no parent", func() {
			j := &v1.Jurisdiction{ID: 2, TypeID: 3}
			store.EXPECT().GetJurisdiction(ctx, int64(2)).Return(j, nil)
			store.EXPECT().GetJurisdictionType(ctx, int64(3)).Return(&v1.JurisdictionType{ID: 3, Name: v1.TypeTier}, nil)

			err := deps.Provision(ctx, 2)
			Expect(errs.Is(err, errs.PrecondFail)).To(BeTrue())
		})

		It("submits a stack per label and publishes an interim monitor task for each one", func() {
			parentID := int64(1)
			j := &v1.Jurisdiction{
				ID:            2,
				TypeID:        3,
				ParentID:      &parentID,
				Configuration: map[string]any{"primary_cluster_cidr": "10.0.0.0/16"},
			}
			store.EXPECT().GetJurisdiction(ctx, int64(2)).Return(j, nil)
			store.EXPECT().GetJurisdictionType(ctx, int64(3)).Return(&v1.JurisdictionType{ID: 3, Name: v1.TypeTier}, nil)
			parent := &v1.Jurisdiction{ID: 1, Active: true, Configuration: map[string]any{"region": "us-east-1"}}
			store.EXPECT().GetJurisdiction(ctx, int64(1)).Return(parent, nil)
			store.EXPECT().Ancestors(ctx, j).Return(nil, nil)

			cf := mock_cloudadapter.NewMockCloudFormationService(ctrl)
			services.EXPECT().CloudFormation(ctx, "us-east-1").Return(cf, nil)
			cf.EXPECT().CreateStack(ctx, gomock.Any()).Return(&cloudformation.CreateStackOutput{
				StackId: aws.String("arn:aws:cloudformation:stack/primary"),
			}, nil)

			store.EXPECT().MergeAssets(ctx, int64(2), gomock.Any()).DoAndReturn(
				func(_ context.Context, _ int64, merge func(map[string]any) map[string]any) error {
					assets := merge(map[string]any{})
					stacks, ok := assets["cloudformation_stack"].(map[string]any)
					Expect(ok).To(BeTrue())
					Expect(stacks).To(HaveKey("primary"))
					return nil
				})

			publisher.EXPECT().Publish(ctx, taskqueue.Task{
				Kind: taskqueue.MonitorStack, JurisdictionID: 2, StackKey: "primary",
				InterimOperation: true, ActivateOnAllComplete: true,
			}).Return(nil)

			Expect(deps.Provision(ctx, 2)).To(Succeed())
		})
	})
})

var _ = Describe("Decommission", func() {
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
		deps = &Deps{Store: store, Services: services, Publisher: publisher, Log: logrus.New()}
		ctx = context.Background()
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	It("rejects a jurisdiction that isn't active", func() {
		store.EXPECT().GetJurisdiction(ctx, int64(1)).Return(&v1.Jurisdiction{ID: 1, Active: false}, nil)

		err := deps.Decommission(ctx, 1)
		Expect(errs.Is(err, errs.PrecondFail)).To(BeTrue())
	})

	Describe("a control group", func() {
		It("refuses to decommission while a child is still active", func() {
			j := &v1.Jurisdiction{ID: 1, TypeID: 2, Active: true}
			store.EXPECT().GetJurisdiction(ctx, int64(1)).Return(j, nil)
			store.EXPECT().GetJurisdictionType(ctx, int64(2)).Return(&v1.JurisdictionType{ID: 2, Name: v1.TypeControlGroup}, nil)
			store.EXPECT().GetChildren(ctx, int64(1)).Return([]v1.Jurisdiction{{ID: 5, Active: true}}, nil)

			err := deps.Decommission(ctx, 1)
			Expect(errs.Is(err, errs.Conflict)).To(BeTrue())
		})

		It("empties the bucket, deletes the stack, and marks inactive", func() {
			j := &v1.Jurisdiction{
				ID:            1,
				TypeID:        2,
				Active:        true,
				Configuration: map[string]any{"region": "us-east-1"},
				Assets: map[string]any{
					"s3_bucket":            "control-group-alpha-bucket-abcdefgh",
					"cloudformation_stack": map[string]any{"stack_id": "arn:stack/1"},
				},
			}
			store.EXPECT().GetJurisdiction(ctx, int64(1)).Return(j, nil)
			store.EXPECT().GetJurisdictionType(ctx, int64(2)).Return(&v1.JurisdictionType{ID: 2, Name: v1.TypeControlGroup}, nil)
			store.EXPECT().GetChildren(ctx, int64(1)).Return(nil, nil)

			s3svc := mock_cloudadapter.NewMockS3Service(ctrl)
			services.EXPECT().S3(ctx, "us-east-1").Return(s3svc, nil)
			s3svc.EXPECT().ListObjectsV2(ctx, gomock.Any()).Return(&s3.ListObjectsV2Output{}, nil)

			cf := mock_cloudadapter.NewMockCloudFormationService(ctrl)
			services.EXPECT().CloudFormation(ctx, "us-east-1").Return(cf, nil)
			cf.EXPECT().DeleteStack(ctx, gomock.Any()).DoAndReturn(
				func(_ context.Context, in *cloudformation.DeleteStackInput) (*cloudformation.DeleteStackOutput, error) {
					Expect(*in.StackName).To(Equal("arn:stack/1"))
					return &cloudformation.DeleteStackOutput{}, nil
				})

			store.EXPECT().SetActive(ctx, int64(1), false).Return(nil)
			publisher.EXPECT().Publish(ctx, taskqueue.Task{Kind: taskqueue.MonitorStack, JurisdictionID: 1}).Return(nil)

			Expect(deps.Decommission(ctx, 1)).To(Succeed())
		})
	})
})
