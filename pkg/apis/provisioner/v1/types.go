// Package v1 defines the typed shapes of the durable state store: jurisdiction
// types, configuration templates, userdata templates, and jurisdictions
// themselves, plus the per-type configuration structs the cloud template
// builder consults.
package v1

import "time"

// TypeName identifies one of the three fixed jurisdiction types. The type
// tree is immutable: control_group -> tier -> cluster.
type TypeName string

const (
	TypeControlGroup TypeName = "control_group"
	TypeTier         TypeName = "tier"
	TypeCluster      TypeName = "cluster"
)

// ChildType returns the type a jurisdiction of type t may parent, or ""
// if t has no child type (cluster is a leaf).
func (t TypeName) ChildType() TypeName {
	switch t {
	case TypeControlGroup:
		return TypeTier
	case TypeTier:
		return TypeCluster
	default:
		return ""
	}
}

// JurisdictionType is a row in jurisdiction_type: the immutable type tree.
type JurisdictionType struct {
	ID          int64
	Name        TypeName
	Description string
	ParentID    *int64
}

// ConfigurationTemplate is a row in configuration_template: a named default
// configuration blob for a jurisdiction type. At most one per type may have
// Default=true.
type ConfigurationTemplate struct {
	ID                 int64
	Name               string
	Configuration      map[string]any
	Default            bool
	JurisdictionTypeID int64
}

// UserdataRole is the role a UserdataTemplate renders bootstrap material for.
type UserdataRole string

const (
	RoleController UserdataRole = "controller"
	RoleWorker     UserdataRole = "worker"
	RoleEtcd       UserdataRole = "etcd"
)

// UserdataTemplate is a row in userdata_template: a text/template document
// rendered per-instance by the userdata renderer (pkg/userdata).
type UserdataTemplate struct {
	ID   int64
	Name string
	Role UserdataRole
	Body string
}

// Jurisdiction is a row in the jurisdiction table: one node of the
// control_group -> tier -> cluster hierarchy.
type Jurisdiction struct {
	ID            int64
	Name          string
	CreatedOn     time.Time
	Active        bool
	TypeID        int64
	ParentID      *int64
	Configuration map[string]any
	Assets        map[string]any
	Metadata      map[string]string
}

// ControlGroupConfig is the typed view of a control_group jurisdiction's
// effective configuration, consulted by the cloud template builder.
type ControlGroupConfig struct {
	Platform           string `json:"platform"`
	Region             string `json:"region"`
	ControlCluster     bool   `json:"control_cluster"`
	PrimaryClusterCIDR string `json:"primary_cluster_cidr"`
	SupportClusterCIDR string `json:"support_cluster_cidr"`
	ControlClusterCIDR string `json:"control_cluster_cidr"`
	Orchestrator       string `json:"orchestrator"`

	Unknown map[string]any `json:"-"`
}

// TierConfig is the typed view of a tier jurisdiction's effective
// configuration.
type TierConfig struct {
	SupportCluster      bool   `json:"support_cluster"`
	PrimaryClusterCIDR  string `json:"primary_cluster_cidr"`
	SupportClusterCIDR  string `json:"support_cluster_cidr"`
	DedicatedEtcd       bool   `json:"dedicated_etcd"`
	InitialWorkers      int    `json:"initial_workers"`
	ControllerInstance  string `json:"controller_instance_type"`
	WorkerInstanceType  string `json:"worker_instance_type"`
	EtcdInstanceType    string `json:"etcd_instance_type"`

	Unknown map[string]any `json:"-"`
}

// ClusterConfig is the typed view of a cluster jurisdiction's effective
// configuration (merged with its tier and control group ancestors).
type ClusterConfig struct {
	CoreOSReleaseChannel  string            `json:"coreos_release_channel"`
	ClusterCIDR           string            `json:"cluster_cidr"`
	HostsCIDR             string            `json:"hosts_cidr"`
	HostSubnetCIDRs       []string          `json:"host_subnet_cidrs"`
	ServicesCIDR          string            `json:"services_cidr"`
	PodsCIDR              string            `json:"pods_cidr"`
	ControllerIPs         []string          `json:"controller_ips"`
	EtcdIPs               []string          `json:"etcd_ips"`
	KubernetesVersion     string            `json:"kubernetes_version"`
	KubernetesAPIIP       string            `json:"kubernetes_api_ip"`
	ClusterDNSIP          string            `json:"cluster_dns_ip"`
	KubernetesAPIDNSNames []string          `json:"kubernetes_api_dns_names"`
	UserdataTemplateIDs   map[string]int64  `json:"userdata_template_ids"`

	Unknown map[string]any `json:"-"`
}
