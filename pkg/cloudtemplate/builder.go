// Package cloudtemplate renders the four CloudFormation document shapes the
// orchestrator submits: control group, tier, cluster network, cluster
// nodes. Each is a raw YAML text/template constant (pkg/cloudtemplate/templates.go)
// executed against a typed data struct, mirroring the teacher's
// raw-string-constant-plus-template.Execute pattern.
package cloudtemplate

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"text/template"

	v1 "github.com/lander2k2/silenus-provisioner/pkg/apis/provisioner/v1"
	"github.com/lander2k2/silenus-provisioner/pkg/errs"
)

// excludedAZ is carved out of the round-robin: us-east-1c has historically
// lacked capacity for some instance families used here.
const excludedAZ = "us-east-1c"

func render(name, tmpl string, data any) (string, error) {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return "", errs.Wrapf(errs.RenderError, err, "error parsing %s template", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", errs.Wrapf(errs.RenderError, err, "error rendering %s template", name)
	}
	return buf.String(), nil
}

// BucketName generates control-group-alpha-bucket-<8 lowercase letters>.
func BucketName() (string, error) {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", errs.Wrap(errs.RenderError, err, "error generating bucket suffix")
	}
	for i, b := range buf {
		buf[i] = letters[int(b)%len(letters)]
	}
	return fmt.Sprintf("control-group-alpha-bucket-%s", buf), nil
}

type controlGroupData struct {
	BucketName       string
	JurisdictionName string
}

// ControlGroup renders the control group's single-bucket template.
func ControlGroup(jurisdictionName, bucketName string) (string, error) {
	return render("control-group", controlGroupTemplate, controlGroupData{
		BucketName:       bucketName,
		JurisdictionName: jurisdictionName,
	})
}

type tierVPCData struct {
	Label          string
	LabelLower     string
	CIDR           string
	JurisdictionID int64
}

// Tier renders one document per VPC (primary, and support if
// support_cluster=true); the orchestrator submits each as a distinct stack.
func Tier(jurisdictionID int64, cfg v1.TierConfig) (map[string]string, error) {
	docs := map[string]string{}

	primary, err := render("tier-vpc-primary", tierVPCTemplate, tierVPCData{
		Label:          "Primary",
		LabelLower:     "primary",
		CIDR:           cfg.PrimaryClusterCIDR,
		JurisdictionID: jurisdictionID,
	})
	if err != nil {
		return nil, err
	}
	docs["primary"] = primary

	if cfg.SupportCluster {
		support, err := render("tier-vpc-support", tierVPCTemplate, tierVPCData{
			Label:          "Support",
			LabelLower:     "support",
			CIDR:           cfg.SupportClusterCIDR,
			JurisdictionID: jurisdictionID,
		})
		if err != nil {
			return nil, err
		}
		docs["support"] = support
	}

	return docs, nil
}

type subnet struct {
	AZ   string
	CIDR string
}

type clusterNetworkData struct {
	Subnets          []subnet
	RouteTableImport string
	VPCImport        string
	ClusterName      string
	DedicatedEtcd    bool
	HostsCIDR        string
	JurisdictionID   int64
}

// AvailabilityZonesRoundRobin assigns each entry in hostSubnetCIDRs to the
// next AZ in a round-robin over azs, skipping excludedAZ.
func AvailabilityZonesRoundRobin(azs []string, count int) []string {
	usable := make([]string, 0, len(azs))
	for _, az := range azs {
		if az == excludedAZ {
			continue
		}
		usable = append(usable, az)
	}
	if len(usable) == 0 {
		usable = azs
	}

	assigned := make([]string, count)
	for i := 0; i < count; i++ {
		assigned[i] = usable[i%len(usable)]
	}
	return assigned
}

// ClusterNetwork renders the subnet+ELB document for a cluster. dedicatedEtcd
// comes from the cluster's tier ancestor, not the cluster's own configuration.
func ClusterNetwork(jurisdictionID int64, clusterName string, cfg v1.ClusterConfig, dedicatedEtcd bool, azs []string, vpcImport, routeTableImport string) (string, error) {
	assignedAZs := AvailabilityZonesRoundRobin(azs, len(cfg.HostSubnetCIDRs))
	subnets := make([]subnet, len(cfg.HostSubnetCIDRs))
	for i, cidr := range cfg.HostSubnetCIDRs {
		subnets[i] = subnet{AZ: assignedAZs[i], CIDR: cidr}
	}

	return render("cluster-network", clusterNetworkTemplate, clusterNetworkData{
		Subnets:          subnets,
		RouteTableImport: routeTableImport,
		VPCImport:        vpcImport,
		ClusterName:      clusterName,
		DedicatedEtcd:    dedicatedEtcd,
		HostsCIDR:        cfg.HostsCIDR,
		JurisdictionID:   jurisdictionID,
	})
}

// IngressRule is one entry of the dense role-pair ingress matrix.
type IngressRule struct {
	Name           string
	TargetGroupRef string
	Protocol       string
	FromPort       int
	ToPort         int
	SourceKey      string // CidrIp or SourceSecurityGroupId
	SourceValue    string
}

// IngressMatrix enumerates every ingress rule required between controller,
// worker, and (if dedicatedEtcd) etcd security groups, plus the world- and
// control-cluster-CIDR-sourced rules.
func IngressMatrix(controlClusterCIDR string, dedicatedEtcd bool) []IngressRule {
	rules := []IngressRule{
		{"WorldToController22", "!Ref ControllerSecurityGroup", "tcp", 22, 22, "CidrIp", "0.0.0.0/0"},
		{"WorldToController443", "!Ref ControllerSecurityGroup", "tcp", 443, 443, "CidrIp", "0.0.0.0/0"},
		{"WorldToWorker22", "!Ref WorkerSecurityGroup", "tcp", 22, 22, "CidrIp", "0.0.0.0/0"},
		{"ControlClusterToWorker30900", "!Ref WorkerSecurityGroup", "tcp", 30900, 30900, "CidrIp", controlClusterCIDR},
		{"ControllerToWorkerFlannel", "!Ref WorkerSecurityGroup", "udp", 8472, 8472, "SourceSecurityGroupId", "!Ref ControllerSecurityGroup"},
		{"WorkerToWorkerFlannel", "!Ref WorkerSecurityGroup", "udp", 8472, 8472, "SourceSecurityGroupId", "!Ref WorkerSecurityGroup"},
		{"ControllerToWorkerKubelet", "!Ref WorkerSecurityGroup", "tcp", 10250, 10250, "SourceSecurityGroupId", "!Ref ControllerSecurityGroup"},
		{"WorkerToController10255", "!Ref ControllerSecurityGroup", "tcp", 10255, 10255, "SourceSecurityGroupId", "!Ref WorkerSecurityGroup"},
		{"WorkerToWorker10255", "!Ref WorkerSecurityGroup", "tcp", 10255, 10255, "SourceSecurityGroupId", "!Ref WorkerSecurityGroup"},
		{"ControllerToWorkerCAdvisor", "!Ref WorkerSecurityGroup", "tcp", 4194, 4194, "SourceSecurityGroupId", "!Ref ControllerSecurityGroup"},
	}

	if dedicatedEtcd {
		rules = append(rules,
			IngressRule{"ControllerToEtcd2379", "!Ref EtcdSecurityGroup", "tcp", 2379, 2379, "SourceSecurityGroupId", "!Ref ControllerSecurityGroup"},
			IngressRule{"WorkerToEtcd2379", "!Ref EtcdSecurityGroup", "tcp", 2379, 2379, "SourceSecurityGroupId", "!Ref WorkerSecurityGroup"},
			IngressRule{"EtcdToEtcdPeer", "!Ref EtcdSecurityGroup", "tcp", 2379, 2380, "SourceSecurityGroupId", "!Ref EtcdSecurityGroup"},
		)
	} else {
		rules = append(rules,
			IngressRule{"ControllerToEtcdCoLocated2379", "!Ref ControllerSecurityGroup", "tcp", 2379, 2380, "SourceSecurityGroupId", "!Ref ControllerSecurityGroup"},
			IngressRule{"WorkerToEtcdCoLocated2379", "!Ref ControllerSecurityGroup", "tcp", 2379, 2379, "SourceSecurityGroupId", "!Ref WorkerSecurityGroup"},
		)
	}

	return rules
}

type clusterNodesData struct {
	VPCImport              string
	DedicatedEtcd          bool
	IngressRules           []IngressRule
	KMSKeyArn              string
	ControllerIPs          []string
	EtcdIPs                []string
	ControllerAMI          string
	EtcdAMI                string
	WorkerAMI              string
	ControllerInstanceType string
	EtcdInstanceType       string
	WorkerInstanceType     string
	Subnet0Import          string
	ControllerUserdatas    []string
	EtcdUserdatas          []string
	WorkerUserdata         string
	InitialWorkers         int
	SubnetImports          []string
	JurisdictionID         int64
}

// ClusterNodesInput collects everything the nodes template needs; its
// subnet references are resolved by fixed positional index into
// host_subnet_cidrs, never by an independently advancing counter.
type ClusterNodesInput struct {
	JurisdictionID         int64
	VPCImport              string
	KMSKeyArn              string
	ControlClusterCIDR     string
	DedicatedEtcd          bool
	ControllerIPs          []string
	EtcdIPs                []string
	ControllerAMI          string
	EtcdAMI                string
	WorkerAMI              string
	ControllerInstanceType string
	EtcdInstanceType       string
	WorkerInstanceType     string
	InitialWorkers         int
	SubnetExportNames      []string // ordered by position in host_subnet_cidrs
	ControllerUserdataB64s []string // one per entry in ControllerIPs
	EtcdUserdataB64s       []string // one per entry in EtcdIPs, when DedicatedEtcd
	WorkerUserdataB64      string
}

// ClusterNodes renders the security-group/IAM/instance/autoscaling
// document for a cluster's nodes stack. Controller and etcd userdata is
// rendered per instance, since each document's embedded member name and
// initial-cluster string are specific to that instance's index.
func ClusterNodes(in ClusterNodesInput) (string, error) {
	if len(in.SubnetExportNames) == 0 {
		return "", errs.Newf(errs.RenderError, "cluster nodes template requires at least one subnet export")
	}
	if len(in.ControllerUserdataB64s) != len(in.ControllerIPs) {
		return "", errs.Newf(errs.RenderError, "cluster nodes template requires one controller userdata document per controller IP")
	}
	if in.DedicatedEtcd && len(in.EtcdUserdataB64s) != len(in.EtcdIPs) {
		return "", errs.Newf(errs.RenderError, "cluster nodes template requires one etcd userdata document per etcd IP")
	}

	subnetImports := in.SubnetExportNames

	return render("cluster-nodes", clusterNodesTemplate, clusterNodesData{
		VPCImport:              in.VPCImport,
		DedicatedEtcd:          in.DedicatedEtcd,
		IngressRules:           IngressMatrix(in.ControlClusterCIDR, in.DedicatedEtcd),
		KMSKeyArn:              in.KMSKeyArn,
		ControllerIPs:          in.ControllerIPs,
		EtcdIPs:                in.EtcdIPs,
		ControllerAMI:          in.ControllerAMI,
		EtcdAMI:                in.EtcdAMI,
		WorkerAMI:              in.WorkerAMI,
		ControllerInstanceType: in.ControllerInstanceType,
		EtcdInstanceType:       in.EtcdInstanceType,
		WorkerInstanceType:     in.WorkerInstanceType,
		Subnet0Import:          subnetImports[0],
		ControllerUserdatas:    in.ControllerUserdataB64s,
		EtcdUserdatas:          in.EtcdUserdataB64s,
		WorkerUserdata:         in.WorkerUserdataB64,
		InitialWorkers:         in.InitialWorkers,
		SubnetImports:          subnetImports,
		JurisdictionID:         in.JurisdictionID,
	})
}

// StackName derives a deterministic, naturally idempotent stack name from
// a jurisdiction id.
func StackName(kind string, jurisdictionID int64) string {
	switch kind {
	case "control_group":
		return fmt.Sprintf("ControlGroup%02d", jurisdictionID)
	case "tier":
		return fmt.Sprintf("Tier%03d", jurisdictionID)
	case "cluster_net":
		return fmt.Sprintf("ClusterNet%04d", jurisdictionID)
	case "cluster_nodes":
		return fmt.Sprintf("ClusterNodes%04d", jurisdictionID)
	default:
		return fmt.Sprintf("Stack%d", jurisdictionID)
	}
}

// SubnetExportName returns the export name for the i-th subnet of
// jurisdiction id, the positional index referenced by ClusterNodesInput.
func SubnetExportName(jurisdictionID int64, i int) string {
	return fmt.Sprintf("%d-subnet-%d", jurisdictionID, i)
}
