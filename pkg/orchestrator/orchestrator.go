// Package orchestrator implements the provisioning state machine: the
// synchronous per-type prologues that submit a jurisdiction's cloud
// resources, and the asynchronous monitors (pkg/orchestrator/monitor.go)
// that poll those resources to completion and advance the jurisdiction to
// Active or back to Created on failure.
package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/blang/semver"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	v1 "github.com/lander2k2/silenus-provisioner/pkg/apis/provisioner/v1"
	"github.com/lander2k2/silenus-provisioner/pkg/cloudadapter"
	"github.com/lander2k2/silenus-provisioner/pkg/cloudtemplate"
	"github.com/lander2k2/silenus-provisioner/pkg/config"
	"github.com/lander2k2/silenus-provisioner/pkg/configresolver"
	"github.com/lander2k2/silenus-provisioner/pkg/errs"
	"github.com/lander2k2/silenus-provisioner/pkg/store"
	"github.com/lander2k2/silenus-provisioner/pkg/taskqueue"
)

// supportedKubernetesVersions bounds the kubernetes_version a cluster may
// request, mirroring the range the seeded userdata templates were written
// against. Provisioning a cluster outside this range fails PrecondFail
// before any stack is submitted.
var (
	minKubernetesVersion = semver.MustParse("1.20.0")
	maxKubernetesVersion = semver.MustParse("1.29.99")
)

// requestToken returns a fresh idempotency token for a CloudFormation
// CreateStack call, so a retried submission after a network timeout can't
// double-create the stack.
func requestToken() *string {
	t := uuid.NewString()
	return &t
}

// ServiceFactory builds the per-region AWS service wrappers an operation
// needs. The orchestrator never caches a service across jurisdictions
// because each region resolves its own aws.Config.
type ServiceFactory interface {
	CloudFormation(ctx context.Context, region string) (cloudadapter.CloudFormationService, error)
	EC2(ctx context.Context, region string) (cloudadapter.EC2Service, error)
	S3(ctx context.Context, region string) (cloudadapter.S3Service, error)
	KMS(ctx context.Context, region string) (cloudadapter.KMSService, error)
	ELB(ctx context.Context, region string) (cloudadapter.ELBService, error)
	IAM(ctx context.Context, region string) (cloudadapter.IAMService, error)
}

// AWSServiceFactory is the production ServiceFactory, resolving a fresh
// aws.Config per region from process configuration.
type AWSServiceFactory struct {
	AWS config.AWS
}

func (f AWSServiceFactory) CloudFormation(ctx context.Context, region string) (cloudadapter.CloudFormationService, error) {
	cfg, err := f.AWS.LoadRegion(ctx, region)
	if err != nil {
		return nil, err
	}
	return cloudadapter.NewCloudFormationService(cfg), nil
}

func (f AWSServiceFactory) EC2(ctx context.Context, region string) (cloudadapter.EC2Service, error) {
	cfg, err := f.AWS.LoadRegion(ctx, region)
	if err != nil {
		return nil, err
	}
	return cloudadapter.NewEC2Service(cfg), nil
}

func (f AWSServiceFactory) S3(ctx context.Context, region string) (cloudadapter.S3Service, error) {
	cfg, err := f.AWS.LoadRegion(ctx, region)
	if err != nil {
		return nil, err
	}
	return cloudadapter.NewS3Service(cfg), nil
}

func (f AWSServiceFactory) KMS(ctx context.Context, region string) (cloudadapter.KMSService, error) {
	cfg, err := f.AWS.LoadRegion(ctx, region)
	if err != nil {
		return nil, err
	}
	return cloudadapter.NewKMSService(cfg), nil
}

func (f AWSServiceFactory) ELB(ctx context.Context, region string) (cloudadapter.ELBService, error) {
	cfg, err := f.AWS.LoadRegion(ctx, region)
	if err != nil {
		return nil, err
	}
	return cloudadapter.NewELBService(cfg), nil
}

func (f AWSServiceFactory) IAM(ctx context.Context, region string) (cloudadapter.IAMService, error) {
	cfg, err := f.AWS.LoadRegion(ctx, region)
	if err != nil {
		return nil, err
	}
	return cloudadapter.NewIAMService(cfg), nil
}

// JurisdictionStore is the subset of *store.Store the orchestrator needs.
// Defined here, at the consumer, so Deps can be driven by a mock in tests
// without either package depending on the other's test machinery.
type JurisdictionStore interface {
	configresolver.AncestorLoader

	GetJurisdiction(ctx context.Context, id int64) (*v1.Jurisdiction, error)
	GetJurisdictionType(ctx context.Context, id int64) (*v1.JurisdictionType, error)
	GetUserdataTemplate(ctx context.Context, id int64) (*v1.UserdataTemplate, error)
	GetChildren(ctx context.Context, id int64) ([]v1.Jurisdiction, error)
	SetActive(ctx context.Context, id int64, active bool) error
	MergeAssets(ctx context.Context, id int64, merge func(assets map[string]any) map[string]any) error
}

// TaskPublisher is the subset of *taskqueue.Publisher the orchestrator
// needs.
type TaskPublisher interface {
	Publish(ctx context.Context, t taskqueue.Task) error
}

// Deps are the orchestrator's collaborators.
type Deps struct {
	Store     JurisdictionStore
	Services  ServiceFactory
	Publisher TaskPublisher
	Monitor   config.Monitor
	Log       *logrus.Logger
}

var _ JurisdictionStore = (*store.Store)(nil)
var _ TaskPublisher = (*taskqueue.Publisher)(nil)

// capabilityNamedIAM is passed on the cluster nodes stack, the only shape
// that creates IAM roles.
const capabilityNamedIAM = "CAPABILITY_NAMED_IAM"

// Provision runs the synchronous prologue for jurisdiction id's type and
// enqueues the monitor task(s) that carry it to Active.
func (d *Deps) Provision(ctx context.Context, id int64) error {
	j, err := d.Store.GetJurisdiction(ctx, id)
	if err != nil {
		return err
	}
	if j.Active {
		return errs.Newf(errs.Conflict, "jurisdiction %d is already active", id)
	}

	jt, err := d.Store.GetJurisdictionType(ctx, j.TypeID)
	if err != nil {
		return err
	}

	switch jt.Name {
	case v1.TypeControlGroup:
		return d.provisionControlGroup(ctx, j)
	case v1.TypeTier:
		return d.provisionTier(ctx, j)
	case v1.TypeCluster:
		return d.provisionCluster(ctx, j)
	default:
		return errs.Newf(errs.Unsupported, "unknown jurisdiction type %q", jt.Name)
	}
}

func (d *Deps) provisionControlGroup(ctx context.Context, j *v1.Jurisdiction) error {
	platform, _ := j.Configuration["platform"].(string)
	if platform != "amazon_web_services" {
		return errs.Newf(errs.Unsupported, "control group %d has unsupported platform %q", j.ID, platform)
	}
	region, _ := j.Configuration["region"].(string)
	if region == "" {
		return errs.Newf(errs.PrecondFail, "control group %d has no region configured", j.ID)
	}

	if execRoleARN, _ := j.Configuration["execution_role_arn"].(string); execRoleARN != "" {
		if err := d.checkExecutionRole(ctx, region, execRoleARN); err != nil {
			return err
		}
	}

	bucketName, err := cloudtemplate.BucketName()
	if err != nil {
		return err
	}

	body, err := cloudtemplate.ControlGroup(j.Name, bucketName)
	if err != nil {
		return err
	}

	cf, err := d.Services.CloudFormation(ctx, region)
	if err != nil {
		return err
	}

	stackName := cloudtemplate.StackName("control_group", j.ID)
	out, err := cf.CreateStack(ctx, &cloudformation.CreateStackInput{
		StackName:         &stackName,
		TemplateBody:      &body,
		ClientRequestToken: requestToken(),
	})
	if err != nil {
		return errs.Wrapf(errs.CloudError, err, "error submitting control group stack for jurisdiction %d", j.ID)
	}

	if err := d.Store.MergeAssets(ctx, j.ID, func(assets map[string]any) map[string]any {
		assets["s3_bucket"] = bucketName
		assets["cloudformation_stack"] = map[string]any{
			"stack_id": *out.StackId,
			"status":   nil,
		}
		return assets
	}); err != nil {
		return err
	}

	return d.Publisher.Publish(ctx, taskqueue.Task{Kind: taskqueue.MonitorStack, JurisdictionID: j.ID})
}

func (d *Deps) provisionTier(ctx context.Context, j *v1.Jurisdiction) error {
	if j.ParentID == nil {
		return errs.Newf(errs.PrecondFail, "tier %d has no parent control group", j.ID)
	}
	parent, err := d.Store.GetJurisdiction(ctx, *j.ParentID)
	if err != nil {
		return err
	}
	if !parent.Active {
		return errs.Newf(errs.PrecondFail, "tier %d's control group %d is not active", j.ID, parent.ID)
	}
	region, _ := parent.Configuration["region"].(string)

	cfg, err := decodeTierConfig(ctx, d.Store, j)
	if err != nil {
		return err
	}

	docs, err := cloudtemplate.Tier(j.ID, cfg)
	if err != nil {
		return err
	}

	cf, err := d.Services.CloudFormation(ctx, region)
	if err != nil {
		return err
	}

	stacks := map[string]any{}
	for label, body := range docs {
		stackName := fmt.Sprintf("%s-%s", cloudtemplate.StackName("tier", j.ID), label)
		out, err := cf.CreateStack(ctx, &cloudformation.CreateStackInput{
			StackName:          &stackName,
			TemplateBody:       &body,
			ClientRequestToken: requestToken(),
		})
		if err != nil {
			return errs.Wrapf(errs.CloudError, err, "error submitting tier %s stack for jurisdiction %d", label, j.ID)
		}
		stacks[label] = map[string]any{"stack_id": *out.StackId, "status": nil}
	}

	if err := d.Store.MergeAssets(ctx, j.ID, func(assets map[string]any) map[string]any {
		assets["cloudformation_stack"] = stacks
		return assets
	}); err != nil {
		return err
	}

	labels := make([]string, 0, len(stacks))
	for label := range stacks {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		task := taskqueue.Task{
			Kind:                  taskqueue.MonitorStack,
			JurisdictionID:        j.ID,
			StackKey:              label,
			InterimOperation:      true,
			ActivateOnAllComplete: true,
		}
		if err := d.Publisher.Publish(ctx, task); err != nil {
			return err
		}
	}
	return nil
}

func (d *Deps) provisionCluster(ctx context.Context, j *v1.Jurisdiction) error {
	if j.ParentID == nil {
		return errs.Newf(errs.PrecondFail, "cluster %d has no parent tier", j.ID)
	}
	tier, err := d.Store.GetJurisdiction(ctx, *j.ParentID)
	if err != nil {
		return err
	}
	if !tier.Active {
		return errs.Newf(errs.PrecondFail, "cluster %d's tier %d is not active", j.ID, tier.ID)
	}

	region, err := configresolver.Region(ctx, d.Store, j)
	if err != nil {
		return err
	}

	tierCfg, err := decodeTierConfig(ctx, d.Store, tier)
	if err != nil {
		return err
	}
	clusterCfg, err := decodeClusterConfig(ctx, d.Store, j)
	if err != nil {
		return err
	}

	if err := checkKubernetesVersion(clusterCfg.KubernetesVersion); err != nil {
		return err
	}

	ec2svc, err := d.Services.EC2(ctx, region)
	if err != nil {
		return err
	}
	azOut, err := ec2svc.DescribeAvailabilityZones(ctx, &ec2.DescribeAvailabilityZonesInput{})
	if err != nil {
		return errs.Wrap(errs.CloudError, err, "error describing availability zones")
	}
	azs := cloudadapter.AvailabilityZoneNames(azOut)

	vpcImport := fmt.Sprintf("%d-vpc-primary", tier.ID)
	rtImport := fmt.Sprintf("%d-rt-primary", tier.ID)

	body, err := cloudtemplate.ClusterNetwork(j.ID, j.Name, clusterCfg, tierCfg.DedicatedEtcd, azs, vpcImport, rtImport)
	if err != nil {
		return err
	}

	cf, err := d.Services.CloudFormation(ctx, region)
	if err != nil {
		return err
	}

	stackName := fmt.Sprintf("%s-network", cloudtemplate.StackName("cluster_net", j.ID))
	out, err := cf.CreateStack(ctx, &cloudformation.CreateStackInput{
		StackName:          &stackName,
		TemplateBody:       &body,
		ClientRequestToken: requestToken(),
	})
	if err != nil {
		return errs.Wrapf(errs.CloudError, err, "error submitting cluster network stack for jurisdiction %d", j.ID)
	}

	if err := d.Store.MergeAssets(ctx, j.ID, func(assets map[string]any) map[string]any {
		assets["cloudformation_stack"] = map[string]any{
			"network": map[string]any{"stack_id": *out.StackId, "status": nil},
		}
		return assets
	}); err != nil {
		return err
	}

	tasks := []taskqueue.Task{
		{Kind: taskqueue.MonitorStack, JurisdictionID: j.ID, InterimOperation: true, StackKey: "network"},
		{Kind: taskqueue.MonitorClusterNet, JurisdictionID: j.ID},
		{Kind: taskqueue.MonitorClusterNodes, JurisdictionID: j.ID},
	}
	for _, t := range tasks {
		if err := d.Publisher.Publish(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

// Decommission runs the synchronous prologue that begins tearing down
// jurisdiction id's cloud resources, eagerly marking it inactive and
// relying on monitors for terminal cleanup.
func (d *Deps) Decommission(ctx context.Context, id int64) error {
	j, err := d.Store.GetJurisdiction(ctx, id)
	if err != nil {
		return err
	}
	if !j.Active {
		return errs.Newf(errs.PrecondFail, "jurisdiction %d is not active", id)
	}

	jt, err := d.Store.GetJurisdictionType(ctx, j.TypeID)
	if err != nil {
		return err
	}

	switch jt.Name {
	case v1.TypeControlGroup:
		return d.decommissionControlGroup(ctx, j)
	case v1.TypeTier:
		return d.decommissionTier(ctx, j)
	case v1.TypeCluster:
		return d.decommissionCluster(ctx, j)
	default:
		return errs.Newf(errs.Unsupported, "unknown jurisdiction type %q", jt.Name)
	}
}

func (d *Deps) requireInactiveChildren(ctx context.Context, j *v1.Jurisdiction) error {
	children, err := d.Store.GetChildren(ctx, j.ID)
	if err != nil {
		return err
	}
	for _, c := range children {
		if c.Active {
			return errs.Newf(errs.Conflict, "jurisdiction %d has active child %d", j.ID, c.ID)
		}
	}
	return nil
}

func (d *Deps) decommissionControlGroup(ctx context.Context, j *v1.Jurisdiction) error {
	if err := d.requireInactiveChildren(ctx, j); err != nil {
		return err
	}

	region, _ := j.Configuration["region"].(string)
	bucket, _ := j.Assets["s3_bucket"].(string)

	s3svc, err := d.Services.S3(ctx, region)
	if err != nil {
		return err
	}
	if bucket != "" {
		if err := emptyBucket(ctx, s3svc, bucket); err != nil {
			return err
		}
	}

	stackID, _ := stackIDOf(j.Assets["cloudformation_stack"])
	cf, err := d.Services.CloudFormation(ctx, region)
	if err != nil {
		return err
	}
	if stackID != "" {
		if _, err := cf.DeleteStack(ctx, &cloudformation.DeleteStackInput{StackName: &stackID}); err != nil {
			return errs.Wrapf(errs.CloudError, err, "error deleting control group stack for jurisdiction %d", j.ID)
		}
	}

	if err := d.Store.SetActive(ctx, j.ID, false); err != nil {
		return err
	}
	return d.Publisher.Publish(ctx, taskqueue.Task{Kind: taskqueue.MonitorStack, JurisdictionID: j.ID})
}

func (d *Deps) decommissionTier(ctx context.Context, j *v1.Jurisdiction) error {
	if err := d.requireInactiveChildren(ctx, j); err != nil {
		return err
	}
	if j.ParentID == nil {
		return errs.Newf(errs.PrecondFail, "tier %d has no parent control group", j.ID)
	}
	parent, err := d.Store.GetJurisdiction(ctx, *j.ParentID)
	if err != nil {
		return err
	}
	region, _ := parent.Configuration["region"].(string)

	cf, err := d.Services.CloudFormation(ctx, region)
	if err != nil {
		return err
	}

	stacks, _ := j.Assets["cloudformation_stack"].(map[string]any)
	var labels []string
	for label, raw := range stacks {
		stackID, _ := stackIDOf(raw)
		if stackID == "" {
			continue
		}
		if _, err := cf.DeleteStack(ctx, &cloudformation.DeleteStackInput{StackName: &stackID}); err != nil {
			return errs.Wrapf(errs.CloudError, err, "error deleting tier stack for jurisdiction %d", j.ID)
		}
		labels = append(labels, label)
	}

	if err := d.Store.SetActive(ctx, j.ID, false); err != nil {
		return err
	}
	for _, label := range labels {
		if err := d.Publisher.Publish(ctx, taskqueue.Task{Kind: taskqueue.MonitorStack, JurisdictionID: j.ID, InterimOperation: true, StackKey: label}); err != nil {
			return err
		}
	}
	return nil
}

func (d *Deps) decommissionCluster(ctx context.Context, j *v1.Jurisdiction) error {
	region, err := configresolver.Region(ctx, d.Store, j)
	if err != nil {
		return err
	}

	if keyName, ok := j.Assets["ec2_key_pair"].(string); ok && keyName != "" {
		ec2svc, err := d.Services.EC2(ctx, region)
		if err != nil {
			return err
		}
		if _, err := ec2svc.DeleteKeyPair(ctx, &ec2.DeleteKeyPairInput{KeyName: aws.String(keyName)}); err != nil {
			return errs.Wrapf(errs.CloudError, err, "error deleting key pair for jurisdiction %d", j.ID)
		}
	}

	if kmsInfo, ok := j.Assets["kms_key"].(map[string]any); ok {
		kmssvc, err := d.Services.KMS(ctx, region)
		if err != nil {
			return err
		}
		if aliasName, ok := kmsInfo["alias"].(string); ok && aliasName != "" {
			if _, err := kmssvc.DeleteAlias(ctx, &kms.DeleteAliasInput{AliasName: aws.String(aliasName)}); err != nil {
				return errs.Wrapf(errs.CloudError, err, "error deleting KMS alias for jurisdiction %d", j.ID)
			}
		}
		if keyID, ok := kmsInfo["key_id"].(string); ok && keyID != "" {
			if _, err := kmssvc.ScheduleKeyDeletion(ctx, &kms.ScheduleKeyDeletionInput{KeyId: aws.String(keyID)}); err != nil {
				return errs.Wrapf(errs.CloudError, err, "error scheduling KMS key deletion for jurisdiction %d", j.ID)
			}
		}
	}

	stacks, _ := j.Assets["cloudformation_stack"].(map[string]any)
	nodesStackID, _ := stackIDOf(stacks["nodes"])
	networkStackID, _ := stackIDOf(stacks["network"])

	if nodesStackID != "" {
		cf, err := d.Services.CloudFormation(ctx, region)
		if err != nil {
			return err
		}
		if _, err := cf.DeleteStack(ctx, &cloudformation.DeleteStackInput{StackName: &nodesStackID}); err != nil {
			return errs.Wrapf(errs.CloudError, err, "error deleting cluster nodes stack for jurisdiction %d", j.ID)
		}
	}

	if err := d.Store.SetActive(ctx, j.ID, false); err != nil {
		return err
	}

	return d.Publisher.Publish(ctx, taskqueue.Task{
		Kind:           taskqueue.MonitorDecommission,
		JurisdictionID: j.ID,
		NodesStackID:   nodesStackID,
		NetStackID:     networkStackID,
	})
}

// checkKubernetesVersion rejects a kubernetes_version outside the range the
// seeded userdata templates support, e.g. "1.28.4" or a bare "1.28".
func checkKubernetesVersion(raw string) error {
	if raw == "" {
		return errs.New(errs.PrecondFail, "kubernetes_version is required")
	}
	normalized := raw
	if strings.Count(raw, ".") == 1 {
		normalized = raw + ".0"
	}
	v, err := semver.Parse(normalized)
	if err != nil {
		return errs.Wrapf(errs.PrecondFail, err, "kubernetes_version %q is not a valid version", raw)
	}
	if v.LT(minKubernetesVersion) || v.GT(maxKubernetesVersion) {
		return errs.Newf(errs.PrecondFail, "kubernetes_version %q is not supported (must be between %s and %s)",
			raw, minKubernetesVersion, maxKubernetesVersion)
	}
	return nil
}

// checkExecutionRole confirms a control group's configured cross-account
// execution role actually exists before any stack referencing it is
// submitted, rather than letting CloudFormation fail the role assumption
// mid-create.
func (d *Deps) checkExecutionRole(ctx context.Context, region, roleARN string) error {
	roleName := roleARN
	if i := strings.LastIndex(roleARN, "/"); i >= 0 {
		roleName = roleARN[i+1:]
	}

	svc, err := d.Services.IAM(ctx, region)
	if err != nil {
		return err
	}
	if _, err := svc.GetRole(ctx, &iam.GetRoleInput{RoleName: &roleName}); err != nil {
		return errs.Wrapf(errs.PrecondFail, err, "execution role %q is not usable", roleARN)
	}
	return nil
}

func stackIDOf(raw any) (string, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return "", false
	}
	id, ok := m["stack_id"].(string)
	return id, ok
}

func emptyBucket(ctx context.Context, svc cloudadapter.S3Service, bucket string) error {
	var token *string
	for {
		out, err := svc.ListObjectsV2(ctx, &s3.ListObjectsV2Input{Bucket: aws.String(bucket), ContinuationToken: token})
		if err != nil {
			return errs.Wrapf(errs.CloudError, err, "error listing objects in bucket %s", bucket)
		}
		for _, obj := range out.Contents {
			if obj.Key == nil {
				continue
			}
			if _, err := svc.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(bucket), Key: obj.Key}); err != nil {
				return errs.Wrapf(errs.CloudError, err, "error deleting object %s from bucket %s", *obj.Key, bucket)
			}
		}
		if out.NextContinuationToken == nil {
			break
		}
		token = out.NextContinuationToken
	}
	return nil
}

func decodeTierConfig(ctx context.Context, loader configresolver.AncestorLoader, j *v1.Jurisdiction) (v1.TierConfig, error) {
	effective, err := configresolver.Resolve(ctx, loader, j)
	if err != nil {
		return v1.TierConfig{}, err
	}
	return decodeInto[v1.TierConfig](effective)
}

func decodeClusterConfig(ctx context.Context, loader configresolver.AncestorLoader, j *v1.Jurisdiction) (v1.ClusterConfig, error) {
	effective, err := configresolver.Resolve(ctx, loader, j)
	if err != nil {
		return v1.ClusterConfig{}, err
	}
	return decodeInto[v1.ClusterConfig](effective)
}
