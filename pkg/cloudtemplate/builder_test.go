package cloudtemplate

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/lander2k2/silenus-provisioner/pkg/apis/provisioner/v1"
)

func TestBucketName(t *testing.T) {
	name, err := BucketName()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^control-group-alpha-bucket-[a-z]{8}$`), name)
}

func TestControlGroup(t *testing.T) {
	body, err := ControlGroup("alpha", "my-bucket-abcdefgh")
	require.NoError(t, err)
	assert.Contains(t, body, "BucketName: my-bucket-abcdefgh")
	assert.Contains(t, body, "Value: alpha")
}

func TestTier_PrimaryOnly(t *testing.T) {
	docs, err := Tier(42, v1.TierConfig{PrimaryClusterCIDR: "10.0.0.0/16"})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Contains(t, docs["primary"], "CidrBlock: 10.0.0.0/16")
	assert.Contains(t, docs["primary"], "42-vpc-primary")
}

func TestTier_WithSupportCluster(t *testing.T) {
	docs, err := Tier(42, v1.TierConfig{
		PrimaryClusterCIDR: "10.0.0.0/16",
		SupportCluster:     true,
		SupportClusterCIDR: "10.1.0.0/16",
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Contains(t, docs["support"], "CidrBlock: 10.1.0.0/16")
	assert.Contains(t, docs["support"], "42-vpc-support")
}

func TestAvailabilityZonesRoundRobin(t *testing.T) {
	azs := []string{"us-east-1a", "us-east-1b", "us-east-1c"}

	assigned := AvailabilityZonesRoundRobin(azs, 4)
	require.Len(t, assigned, 4)
	for _, az := range assigned {
		assert.NotEqual(t, "us-east-1c", az, "the excluded zone must never be assigned when another AZ is usable")
	}
	assert.Equal(t, []string{"us-east-1a", "us-east-1b", "us-east-1a", "us-east-1b"}, assigned)
}

func TestAvailabilityZonesRoundRobin_AllExcluded(t *testing.T) {
	// falls back to using every AZ, including the excluded one, rather than
	// returning no assignment at all.
	assigned := AvailabilityZonesRoundRobin([]string{"us-east-1c"}, 2)
	assert.Equal(t, []string{"us-east-1c", "us-east-1c"}, assigned)
}

func TestClusterNetwork(t *testing.T) {
	cfg := v1.ClusterConfig{
		HostSubnetCIDRs: []string{"10.0.1.0/24", "10.0.2.0/24"},
		HostsCIDR:       "10.0.0.0/16",
	}
	body, err := ClusterNetwork(7, "mycluster", cfg, true, []string{"us-east-1a", "us-east-1b"}, "7-vpc-primary", "7-rt-primary")
	require.NoError(t, err)

	assert.Contains(t, body, "7-ctl-elb")
	assert.Contains(t, body, "7-etcd-elb")
	assert.Contains(t, body, "7-subnet-0")
	assert.Contains(t, body, "7-subnet-1")
	assert.Contains(t, body, "CidrIp: 10.0.0.0/16")
}

func TestClusterNetwork_NoDedicatedEtcd(t *testing.T) {
	cfg := v1.ClusterConfig{HostSubnetCIDRs: []string{"10.0.1.0/24"}}
	body, err := ClusterNetwork(7, "mycluster", cfg, false, []string{"us-east-1a"}, "7-vpc-primary", "7-rt-primary")
	require.NoError(t, err)

	assert.NotContains(t, body, "EtcdELB")
}

func TestIngressMatrix_DedicatedEtcd(t *testing.T) {
	rules := IngressMatrix("10.0.0.0/8", true)
	names := ruleNames(rules)
	assert.Contains(t, names, "ControllerToEtcd2379")
	assert.NotContains(t, names, "ControllerToEtcdCoLocated2379")
}

func TestIngressMatrix_CoLocatedEtcd(t *testing.T) {
	rules := IngressMatrix("10.0.0.0/8", false)
	names := ruleNames(rules)
	assert.Contains(t, names, "ControllerToEtcdCoLocated2379")
	assert.NotContains(t, names, "EtcdToEtcdPeer")
}

func TestClusterNodes_RequiresSubnetExport(t *testing.T) {
	_, err := ClusterNodes(ClusterNodesInput{})
	assert.Error(t, err)
}

func TestClusterNodes(t *testing.T) {
	body, err := ClusterNodes(ClusterNodesInput{
		JurisdictionID:         9,
		VPCImport:              "9-vpc-primary",
		KMSKeyArn:              "arn:aws:kms:us-east-1:123:key/abc",
		DedicatedEtcd:          true,
		ControllerIPs:          []string{"10.0.1.10"},
		EtcdIPs:                []string{"10.0.1.20"},
		ControllerInstanceType: "m5.large",
		WorkerInstanceType:     "m5.large",
		EtcdInstanceType:       "m5.large",
		InitialWorkers:         3,
		SubnetExportNames:      []string{"9-subnet-0", "9-subnet-1"},
		ControllerUserdataB64s: []string{"Y29udHJvbGxlci0w"},
		EtcdUserdataB64s:       []string{"ZXRjZC0w"},
	})
	require.NoError(t, err)

	assert.Contains(t, body, "9-sg-controller")
	assert.Contains(t, body, "9-sg-etcd")
	assert.Contains(t, body, "PrivateIpAddress: 10.0.1.10")
	assert.Contains(t, body, "PrivateIpAddress: 10.0.1.20")
	assert.Contains(t, body, "MinSize: '3'")
	assert.Contains(t, body, "!ImportValue 9-subnet-1")
}

func TestClusterNodes_RequiresUserdataPerController(t *testing.T) {
	_, err := ClusterNodes(ClusterNodesInput{
		ControllerIPs:          []string{"10.0.1.10", "10.0.1.11"},
		ControllerUserdataB64s: []string{"Y29udHJvbGxlci0w"},
		SubnetExportNames:      []string{"9-subnet-0"},
	})
	assert.Error(t, err)
}

func TestClusterNodes_MultiControllerDistinctUserdata(t *testing.T) {
	body, err := ClusterNodes(ClusterNodesInput{
		JurisdictionID:         9,
		VPCImport:              "9-vpc-primary",
		KMSKeyArn:              "arn:aws:kms:us-east-1:123:key/abc",
		ControllerIPs:          []string{"10.0.1.10", "10.0.1.11", "10.0.1.12"},
		ControllerInstanceType: "m5.large",
		WorkerInstanceType:     "m5.large",
		InitialWorkers:         1,
		SubnetExportNames:      []string{"9-subnet-0"},
		ControllerUserdataB64s: []string{"Y29udHJvbGxlci0w", "Y29udHJvbGxlci0x", "Y29udHJvbGxlci0y"},
	})
	require.NoError(t, err)

	assert.Contains(t, body, "UserData: Y29udHJvbGxlci0w")
	assert.Contains(t, body, "UserData: Y29udHJvbGxlci0x")
	assert.Contains(t, body, "UserData: Y29udHJvbGxlci0y")
}

func TestStackName(t *testing.T) {
	assert.Equal(t, "ControlGroup07", StackName("control_group", 7))
	assert.Equal(t, "Tier007", StackName("tier", 7))
	assert.Equal(t, "ClusterNet0007", StackName("cluster_net", 7))
	assert.Equal(t, "ClusterNodes0007", StackName("cluster_nodes", 7))
	assert.Equal(t, "Stack7", StackName("unknown", 7))
}

func TestSubnetExportName(t *testing.T) {
	assert.Equal(t, "5-subnet-2", SubnetExportName(5, 2))
}

func ruleNames(rules []IngressRule) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}
