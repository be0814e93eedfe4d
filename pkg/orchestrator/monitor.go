package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing/types"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/sirupsen/logrus"

	v1 "github.com/lander2k2/silenus-provisioner/pkg/apis/provisioner/v1"
	"github.com/lander2k2/silenus-provisioner/pkg/cloudadapter"
	"github.com/lander2k2/silenus-provisioner/pkg/cloudtemplate"
	"github.com/lander2k2/silenus-provisioner/pkg/configresolver"
	"github.com/lander2k2/silenus-provisioner/pkg/errs"
	"github.com/lander2k2/silenus-provisioner/pkg/pki"
	"github.com/lander2k2/silenus-provisioner/pkg/taskqueue"
	"github.com/lander2k2/silenus-provisioner/pkg/userdata"
)

var terminalSuccess = map[string]bool{
	"CREATE_COMPLETE": true,
	"UPDATE_COMPLETE": true,
	"DELETE_COMPLETE": true,
}

func isFailed(status string) bool {
	return strings.HasSuffix(status, "FAILED")
}

// pollDeadline returns the fixed monotonic cutoff every monitor polls
// against, computed once at entry so a slow individual poll cannot extend
// the effective budget.
func (d *Deps) pollDeadline() time.Time {
	deadline, err := time.ParseDuration(d.Monitor.Deadline)
	if err != nil {
		deadline = 15 * time.Minute
	}
	return time.Now().Add(deadline)
}

// backoffTicks yields capped-exponential backoff durations (5s, 10s, 20s,
// 30s, 30s, ...) for a monitor's poll loop.
func backoffTicks(min, max time.Duration) func() time.Duration {
	cur := min
	return func() time.Duration {
		d := cur
		cur *= 2
		if cur > max {
			cur = max
		}
		return d
	}
}

func (d *Deps) pollInterval() (min, max time.Duration) {
	min, err := time.ParseDuration(d.Monitor.PollInterval)
	if err != nil {
		min = 5 * time.Second
	}
	max, err = time.ParseDuration(d.Monitor.PollIntervalMax)
	if err != nil {
		max = 30 * time.Second
	}
	return min, max
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// MonitorStack polls a submitted stack to completion, writing status
// changes to assets.cloudformation_stack[.key].status and activating the
// jurisdiction on non-interim terminal success. A DELETE_COMPLETE status
// (a decommission) leaves the jurisdiction inactive.
func (d *Deps) MonitorStack(ctx context.Context, t taskqueue.Task) error {
	j, err := d.Store.GetJurisdiction(ctx, t.JurisdictionID)
	if err != nil {
		return err
	}

	region, err := stackRegion(ctx, d.Store, j)
	if err != nil {
		return err
	}

	stackID, ok := stackIDFor(j.Assets, t.StackKey)
	if !ok {
		return errs.Newf(errs.PrecondFail, "jurisdiction %d has no stack recorded under key %q", j.ID, t.StackKey)
	}

	cf, err := d.Services.CloudFormation(ctx, region)
	if err != nil {
		return err
	}

	deadline := d.pollDeadline()
	next := backoffTicks(d.pollIntervalMinMax())
	lastStatus := ""

	for time.Now().Before(deadline) {
		if err := sleep(ctx, next()); err != nil {
			return err
		}

		status, err := describeStackStatus(ctx, cf, stackID)
		if err != nil {
			return err
		}

		if status == lastStatus {
			continue
		}
		lastStatus = status

		if err := d.Store.MergeAssets(ctx, j.ID, func(assets map[string]any) map[string]any {
			setStackStatus(assets, t.StackKey, status)
			return assets
		}); err != nil {
			return err
		}

		if terminalSuccess[status] {
			if status == "DELETE_COMPLETE" {
				return nil
			}
			if t.ActivateOnAllComplete {
				j, err = d.Store.GetJurisdiction(ctx, j.ID)
				if err != nil {
					return err
				}
				if allStacksComplete(j.Assets) {
					return d.Store.SetActive(ctx, j.ID, true)
				}
				return nil
			}
			if !t.InterimOperation {
				return d.Store.SetActive(ctx, j.ID, true)
			}
			return nil
		}
		if isFailed(status) {
			d.Log.WithFields(logrus.Fields{"jurisdiction_id": j.ID, "status": status}).Warn("stack terminated in failure")
			return nil
		}
	}

	d.Log.WithField("jurisdiction_id", j.ID).Warn("monitor stack deadline exceeded")
	return nil
}

func (d *Deps) pollIntervalMinMax() (time.Duration, time.Duration) {
	return d.pollInterval()
}

// MonitorClusterNetwork waits for a cluster's network stack to finish, then
// mints PKI, a key pair, a KMS key, discovers the controller/etcd ELB DNS,
// renders userdata, and submits the cluster nodes stack.
func (d *Deps) MonitorClusterNetwork(ctx context.Context, t taskqueue.Task) error {
	j, err := d.Store.GetJurisdiction(ctx, t.JurisdictionID)
	if err != nil {
		return err
	}

	region, err := configresolver.Region(ctx, d.Store, j)
	if err != nil {
		return err
	}

	cf, err := d.Services.CloudFormation(ctx, region)
	if err != nil {
		return err
	}

	deadline := d.pollDeadline()
	next := backoffTicks(d.pollIntervalMinMax())
	for {
		if time.Now().After(deadline) {
			d.Log.WithField("jurisdiction_id", j.ID).Warn("monitor cluster network deadline exceeded")
			return nil
		}
		if err := sleep(ctx, next()); err != nil {
			return err
		}

		j, err = d.Store.GetJurisdiction(ctx, j.ID)
		if err != nil {
			return err
		}
		status, _ := nestedStatus(j.Assets, "network")
		if status == "CREATE_COMPLETE" {
			break
		}
		if isFailed(status) {
			return nil
		}
	}

	if j.ParentID == nil {
		return errs.Newf(errs.PrecondFail, "cluster %d has no parent tier", j.ID)
	}
	tier, err := d.Store.GetJurisdiction(ctx, *j.ParentID)
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

	var controlGroup *v1.Jurisdiction
	if tier.ParentID != nil {
		controlGroup, err = d.Store.GetJurisdiction(ctx, *tier.ParentID)
		if err != nil {
			return err
		}
	}
	bucket, _ := controlGroup.Assets["s3_bucket"].(string)

	elbsvc, err := d.Services.ELB(ctx, region)
	if err != nil {
		return err
	}
	controllerELBDNS, err := lookupELBByTag(ctx, elbsvc, fmt.Sprintf("%s_controller", j.Name))
	if err != nil {
		return err
	}
	var etcdELBDNS string
	if tierCfg.DedicatedEtcd {
		etcdELBDNS, err = lookupELBByTag(ctx, elbsvc, fmt.Sprintf("%s_etcd", j.Name))
		if err != nil {
			return err
		}
	}

	chain, err := pki.GenerateChain(pki.ChainInput{
		ClusterName:           j.Name,
		ControllerELBDNS:      controllerELBDNS,
		ControllerIPs:         clusterCfg.ControllerIPs,
		KubernetesAPIDNSNames: clusterCfg.KubernetesAPIDNSNames,
		KubernetesAPIIP:       clusterCfg.KubernetesAPIIP,
	})
	if err != nil {
		return err
	}

	s3svc, err := d.Services.S3(ctx, region)
	if err != nil {
		return err
	}
	for _, kp := range []*pki.KeyPair{&chain.CA.KeyPair, chain.Admin, chain.APIServer, chain.Worker} {
		if err := cloudadapter.PutBytes(ctx, s3svc, bucket, pki.ObjectKey(j.Name, kp.Name), kp.CertPEM); err != nil {
			return err
		}
		if err := cloudadapter.PutBytes(ctx, s3svc, bucket, pki.ObjectKey(j.Name, kp.Name)+".key", kp.KeyPEM); err != nil {
			return err
		}
	}

	ec2svc, err := d.Services.EC2(ctx, region)
	if err != nil {
		return err
	}
	keyName := fmt.Sprintf("%s-key", j.Name)
	kpOut, err := ec2svc.CreateKeyPair(ctx, &ec2.CreateKeyPairInput{KeyName: aws.String(keyName)})
	if err != nil {
		return errs.Wrapf(errs.CloudError, err, "error creating EC2 key pair for jurisdiction %d", j.ID)
	}
	if kpOut.KeyMaterial != nil {
		if err := cloudadapter.PutBytes(ctx, s3svc, bucket, fmt.Sprintf("%s/credentials/%s.pem", j.Name, keyName), []byte(*kpOut.KeyMaterial)); err != nil {
			return err
		}
	}

	kmssvc, err := d.Services.KMS(ctx, region)
	if err != nil {
		return err
	}
	keyOut, err := kmssvc.CreateKey(ctx, &kms.CreateKeyInput{Description: aws.String(fmt.Sprintf("userdata key for %s", j.Name))})
	if err != nil {
		return errs.Wrapf(errs.CloudError, err, "error creating KMS key for jurisdiction %d", j.ID)
	}
	aliasName := fmt.Sprintf("alias/%s", j.Name)
	if _, err := kmssvc.CreateAlias(ctx, &kms.CreateAliasInput{
		AliasName:   aws.String(aliasName),
		TargetKeyId: keyOut.KeyMetadata.KeyId,
	}); err != nil {
		return errs.Wrapf(errs.CloudError, err, "error creating KMS alias for jurisdiction %d", j.ID)
	}

	enc := cloudadapter.Encrypter{Svc: kmssvc}

	// renderRole renders and uploads one userdata document per instance of
	// role, each carrying its own Index so etcd2's member name and
	// initial-cluster string stay distinct across controller/etcd peers.
	renderRole := func(role v1.UserdataRole, count int) ([]string, error) {
		tmplID, ok := clusterCfg.UserdataTemplateIDs[string(role)]
		if !ok || count == 0 {
			return nil, nil
		}
		tmpl, err := d.Store.GetUserdataTemplate(ctx, tmplID)
		if err != nil {
			return nil, err
		}
		docs := make([]string, count)
		for i := 0; i < count; i++ {
			doc, err := userdata.Render(ctx, tmpl, role, userdata.Context{
				Index:            i,
				Region:           region,
				ControllerELBDNS: controllerELBDNS,
				EtcdELBDNS:       etcdELBDNS,
				Config: map[string]any{
					"dedicated_etcd":     tierCfg.DedicatedEtcd,
					"etcd_ips":           clusterCfg.EtcdIPs,
					"pods_cidr":          clusterCfg.PodsCIDR,
					"services_cidr":      clusterCfg.ServicesCIDR,
					"cluster_dns_ip":     clusterCfg.ClusterDNSIP,
					"kubernetes_version": clusterCfg.KubernetesVersion,
				},
			}, chain, *keyOut.KeyMetadata.KeyId, enc)
			if err != nil {
				return nil, err
			}
			if err := cloudadapter.PutBytes(ctx, s3svc, bucket, userdata.ObjectKey(j.Name, role, i), []byte(doc)); err != nil {
				return nil, err
			}
			docs[i] = doc
		}
		return docs, nil
	}

	controllerDocs, err := renderRole(v1.RoleController, len(clusterCfg.ControllerIPs))
	if err != nil {
		return err
	}
	etcdDocs, err := renderRole(v1.RoleEtcd, len(clusterCfg.EtcdIPs))
	if err != nil {
		return err
	}
	workerDocs, err := renderRole(v1.RoleWorker, 1)
	if err != nil {
		return err
	}

	encodeAll := func(docs []string) []string {
		out := make([]string, len(docs))
		for i, doc := range docs {
			out[i] = userdata.EncodedForInstance(doc)
		}
		return out
	}
	var workerUserdataB64 string
	if len(workerDocs) > 0 {
		workerUserdataB64 = userdata.EncodedForInstance(workerDocs[0])
	}

	subnetExports := make([]string, len(clusterCfg.HostSubnetCIDRs))
	for i := range clusterCfg.HostSubnetCIDRs {
		subnetExports[i] = cloudtemplate.SubnetExportName(j.ID, i)
	}

	body, err := cloudtemplate.ClusterNodes(cloudtemplate.ClusterNodesInput{
		JurisdictionID:         j.ID,
		VPCImport:              fmt.Sprintf("%d-vpc-primary", tier.ID),
		KMSKeyArn:              aws.ToString(keyOut.KeyMetadata.Arn),
		ControlClusterCIDR:     stringOr(tierCfg.Unknown["control_cluster_cidr"], ""),
		DedicatedEtcd:          tierCfg.DedicatedEtcd,
		ControllerIPs:          clusterCfg.ControllerIPs,
		EtcdIPs:                clusterCfg.EtcdIPs,
		ControllerAMI:          stringOr(clusterCfg.Unknown["controller_ami"], ""),
		EtcdAMI:                stringOr(clusterCfg.Unknown["etcd_ami"], ""),
		WorkerAMI:              stringOr(clusterCfg.Unknown["worker_ami"], ""),
		ControllerInstanceType: tierCfg.ControllerInstance,
		EtcdInstanceType:       tierCfg.EtcdInstanceType,
		WorkerInstanceType:     tierCfg.WorkerInstanceType,
		InitialWorkers:         tierCfg.InitialWorkers,
		SubnetExportNames:      subnetExports,
		ControllerUserdataB64s: encodeAll(controllerDocs),
		EtcdUserdataB64s:       encodeAll(etcdDocs),
		WorkerUserdataB64:      workerUserdataB64,
	})
	if err != nil {
		return err
	}

	cfNodes, err := d.Services.CloudFormation(ctx, region)
	if err != nil {
		return err
	}
	stackName := fmt.Sprintf("%s-nodes", cloudtemplate.StackName("cluster_nodes", j.ID))
	out, err := cfNodes.CreateStack(ctx, &cloudformation.CreateStackInput{
		StackName:          &stackName,
		TemplateBody:       &body,
		Capabilities:       []cftypes.Capability{capabilityNamedIAM},
		ClientRequestToken: requestToken(),
	})
	if err != nil {
		return errs.Wrapf(errs.CloudError, err, "error submitting cluster nodes stack for jurisdiction %d", j.ID)
	}

	if err := d.Store.MergeAssets(ctx, j.ID, func(assets map[string]any) map[string]any {
		stacks, _ := assets["cloudformation_stack"].(map[string]any)
		if stacks == nil {
			stacks = map[string]any{}
		}
		stacks["nodes"] = map[string]any{"stack_id": *out.StackId, "status": nil}
		assets["cloudformation_stack"] = stacks
		assets["ec2_key_pair"] = keyName
		assets["kms_key"] = map[string]any{"key_id": *keyOut.KeyMetadata.KeyId, "alias": aliasName}
		assets["load_balancers"] = map[string]any{"controller": controllerELBDNS, "etcd": etcdELBDNS}
		return assets
	}); err != nil {
		return err
	}

	return d.Publisher.Publish(ctx, taskqueue.Task{Kind: taskqueue.MonitorStack, JurisdictionID: j.ID, InterimOperation: true, StackKey: "nodes"})
}

// MonitorClusterNodes waits for the cluster nodes stack to complete, then
// registers the controller (and optionally etcd) instances with their load
// balancers and marks the cluster active.
func (d *Deps) MonitorClusterNodes(ctx context.Context, t taskqueue.Task) error {
	j, err := d.Store.GetJurisdiction(ctx, t.JurisdictionID)
	if err != nil {
		return err
	}
	region, err := configresolver.Region(ctx, d.Store, j)
	if err != nil {
		return err
	}

	deadline := d.pollDeadline()
	next := backoffTicks(d.pollIntervalMinMax())
	for {
		if time.Now().After(deadline) {
			d.Log.WithField("jurisdiction_id", j.ID).Warn("monitor cluster nodes deadline exceeded")
			return nil
		}
		if err := sleep(ctx, next()); err != nil {
			return err
		}
		j, err = d.Store.GetJurisdiction(ctx, j.ID)
		if err != nil {
			return err
		}
		status, ok := nestedStatus(j.Assets, "nodes")
		if !ok {
			continue
		}
		if status == "CREATE_COMPLETE" {
			break
		}
		if isFailed(status) {
			return nil
		}
	}

	cf, err := d.Services.CloudFormation(ctx, region)
	if err != nil {
		return err
	}
	exports, err := cloudadapter.ListAllExports(ctx, cf)
	if err != nil {
		return err
	}

	clusterCfg, err := decodeClusterConfig(ctx, d.Store, j)
	if err != nil {
		return err
	}

	instanceIDs := instanceIDsFromExports(exports, j.ID, "controller", len(clusterCfg.ControllerIPs))
	etcdInstanceIDs := instanceIDsFromExports(exports, j.ID, "etcd", len(clusterCfg.EtcdIPs))

	elbsvc, err := d.Services.ELB(ctx, region)
	if err != nil {
		return err
	}
	lbs, _ := j.Assets["load_balancers"].(map[string]any)
	if controllerDNS, _ := lbs["controller"].(string); controllerDNS != "" {
		if err := registerInstances(ctx, elbsvc, fmt.Sprintf("%d-ctl-elb", j.ID), instanceIDs); err != nil {
			return err
		}
	}
	if etcdDNS, _ := lbs["etcd"].(string); etcdDNS != "" && len(etcdInstanceIDs) > 0 {
		if err := registerInstances(ctx, elbsvc, fmt.Sprintf("%d-etcd-elb", j.ID), etcdInstanceIDs); err != nil {
			return err
		}
	}

	return d.Store.SetActive(ctx, j.ID, true)
}

// MonitorDecommission polls a cluster's nodes stack deletion and, once
// complete, deletes its network stack.
func (d *Deps) MonitorDecommission(ctx context.Context, t taskqueue.Task) error {
	j, err := d.Store.GetJurisdiction(ctx, t.JurisdictionID)
	if err != nil {
		return err
	}
	region, err := configresolver.Region(ctx, d.Store, j)
	if err != nil {
		return err
	}
	cf, err := d.Services.CloudFormation(ctx, region)
	if err != nil {
		return err
	}

	if t.NodesStackID != "" {
		deadline := d.pollDeadline()
		next := backoffTicks(d.pollIntervalMinMax())
		for time.Now().Before(deadline) {
			if err := sleep(ctx, next()); err != nil {
				return err
			}
			status, err := describeStackStatus(ctx, cf, t.NodesStackID)
			if err != nil {
				return err
			}
			if status == "DELETE_COMPLETE" {
				break
			}
			if isFailed(status) {
				d.Log.WithField("jurisdiction_id", j.ID).Warn("node stack deletion failed")
				return nil
			}
		}
	}

	if t.NetStackID != "" {
		if _, err := cf.DeleteStack(ctx, &cloudformation.DeleteStackInput{StackName: &t.NetStackID}); err != nil {
			return errs.Wrapf(errs.CloudError, err, "error deleting cluster network stack for jurisdiction %d", j.ID)
		}
	}

	return nil
}

func describeStackStatus(ctx context.Context, cf cloudadapter.CloudFormationService, stackID string) (string, error) {
	out, err := cf.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{StackName: &stackID})
	if err != nil {
		return "", errs.Wrapf(errs.CloudError, err, "error describing stack %s", stackID)
	}
	if len(out.Stacks) == 0 {
		return "", errs.Newf(errs.NotFound, "stack %s not found", stackID)
	}
	return string(out.Stacks[0].StackStatus), nil
}

func stackIDFor(assets map[string]any, key string) (string, bool) {
	if key == "" {
		return stackIDOf(assets["cloudformation_stack"])
	}
	stacks, ok := assets["cloudformation_stack"].(map[string]any)
	if !ok {
		return "", false
	}
	return stackIDOf(stacks[key])
}

// allStacksComplete reports whether every stack under the keyed
// cloudformation_stack shape has reached terminal success, used to decide
// when a tier with multiple VPC stacks (primary, optionally support) is
// ready to activate.
func allStacksComplete(assets map[string]any) bool {
	stacks, ok := assets["cloudformation_stack"].(map[string]any)
	if !ok || len(stacks) == 0 {
		return false
	}
	for _, raw := range stacks {
		entry, ok := raw.(map[string]any)
		if !ok {
			return false
		}
		status, _ := entry["status"].(string)
		if !terminalSuccess[status] {
			return false
		}
	}
	return true
}

func nestedStatus(assets map[string]any, key string) (string, bool) {
	stacks, ok := assets["cloudformation_stack"].(map[string]any)
	if !ok {
		return "", false
	}
	entry, ok := stacks[key].(map[string]any)
	if !ok {
		return "", false
	}
	status, ok := entry["status"].(string)
	return status, ok
}

func setStackStatus(assets map[string]any, key, status string) {
	if key == "" {
		entry, _ := assets["cloudformation_stack"].(map[string]any)
		if entry == nil {
			entry = map[string]any{}
		}
		entry["status"] = status
		assets["cloudformation_stack"] = entry
		return
	}
	stacks, _ := assets["cloudformation_stack"].(map[string]any)
	if stacks == nil {
		stacks = map[string]any{}
	}
	entry, _ := stacks[key].(map[string]any)
	if entry == nil {
		entry = map[string]any{}
	}
	entry["status"] = status
	stacks[key] = entry
	assets["cloudformation_stack"] = stacks
}

// stackRegion resolves the region governing jurisdiction j's own stack: its
// own configuration if j is a control group, else its control-group
// ancestor's.
func stackRegion(ctx context.Context, loader configresolver.AncestorLoader, j *v1.Jurisdiction) (string, error) {
	if region, ok := j.Configuration["region"].(string); ok && region != "" {
		return region, nil
	}
	return configresolver.Region(ctx, loader, j)
}

// lookupELBByTag discovers a classic load balancer's DNS name by its Name
// tag rather than by name, since the orchestrator never persists the
// LoadBalancerName it submitted (cloudtemplate only records it as a CFN
// resource, not an export) and the stack templates tag the controller and
// etcd ELBs with their cluster-scoped Name for exactly this lookup.
func lookupELBByTag(ctx context.Context, svc cloudadapter.ELBService, tagValue string) (string, error) {
	lbOut, err := svc.DescribeLoadBalancers(ctx, &elasticloadbalancing.DescribeLoadBalancersInput{})
	if err != nil {
		return "", errs.Wrapf(errs.CloudError, err, "error describing load balancers")
	}
	if len(lbOut.LoadBalancerDescriptions) == 0 {
		return "", errs.Newf(errs.NotFound, "no load balancer tagged Name=%s found", tagValue)
	}

	names := make([]string, 0, len(lbOut.LoadBalancerDescriptions))
	dnsByName := map[string]string{}
	for _, lb := range lbOut.LoadBalancerDescriptions {
		if lb.LoadBalancerName == nil {
			continue
		}
		names = append(names, *lb.LoadBalancerName)
		if lb.DNSName != nil {
			dnsByName[*lb.LoadBalancerName] = *lb.DNSName
		}
	}

	tagsOut, err := svc.DescribeTags(ctx, &elasticloadbalancing.DescribeTagsInput{LoadBalancerNames: names})
	if err != nil {
		return "", errs.Wrapf(errs.CloudError, err, "error describing load balancer tags")
	}
	for _, desc := range tagsOut.TagDescriptions {
		if desc.LoadBalancerName == nil {
			continue
		}
		for _, tag := range desc.Tags {
			if tag.Key != nil && *tag.Key == "Name" && tag.Value != nil && *tag.Value == tagValue {
				if dns, ok := dnsByName[*desc.LoadBalancerName]; ok {
					return dns, nil
				}
			}
		}
	}
	return "", errs.Newf(errs.NotFound, "no load balancer tagged Name=%s found", tagValue)
}

func registerInstances(ctx context.Context, svc cloudadapter.ELBService, lbName string, instanceIDs []string) error {
	if len(instanceIDs) == 0 {
		return nil
	}
	instances := make([]elbtypes.Instance, len(instanceIDs))
	for i, id := range instanceIDs {
		instances[i] = elbtypes.Instance{InstanceId: aws.String(id)}
	}
	_, err := svc.RegisterInstancesWithLoadBalancer(ctx, &elasticloadbalancing.RegisterInstancesWithLoadBalancerInput{
		LoadBalancerName: aws.String(lbName),
		Instances:        instances,
	})
	if err != nil {
		return errs.Wrapf(errs.CloudError, err, "error registering instances with load balancer %s", lbName)
	}
	return nil
}

func instanceIDsFromExports(pages []cloudformation.ListExportsOutput, jurisdictionID int64, role string, count int) []string {
	prefix := fmt.Sprintf("%d-instance-%s-", jurisdictionID, role)
	var ids []string
	for _, page := range pages {
		for _, exp := range page.Exports {
			if exp.Name != nil && strings.HasPrefix(*exp.Name, prefix) && exp.Value != nil {
				ids = append(ids, *exp.Value)
			}
		}
	}
	if len(ids) > count && count > 0 {
		ids = ids[:count]
	}
	return ids
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}
