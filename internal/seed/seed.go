// Package seed loads the provisioner's default jurisdiction types,
// configuration templates, and userdata templates into a freshly
// migrated store. Every insert is ON CONFLICT DO NOTHING, so re-running
// Load against a populated store is a no-op rather than an error.
package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lander2k2/silenus-provisioner/pkg/store"
)

type jurisdictionType struct {
	id          int64
	name        string
	description string
	parentID    *int64
}

func ptr(i int64) *int64 { return &i }

var jurisdictionTypes = []jurisdictionType{
	{
		id:   1,
		name: "control_group",
		description: "A control group defines a group of infrastructural resources that " +
			"usually share a data center or geographic region. A control group owns its " +
			"own private network space and typically contains several tiers.",
	},
	{
		id:   2,
		name: "tier",
		description: "A tier belongs to a control group and represents a level of " +
			"criticality for the workloads running in it, such as development, staging, " +
			"or production.",
		parentID: ptr(1),
	},
	{
		id:   3,
		name: "cluster",
		description: "A cluster lives in a tier and hosts containerized workloads under " +
			"a container orchestrator.",
		parentID: ptr(2),
	},
}

type configurationTemplate struct {
	id                 int64
	name               string
	configuration      map[string]any
	isDefault          bool
	jurisdictionTypeID int64
}

var configurationTemplates = []configurationTemplate{
	{
		id:   1,
		name: "default_control_group",
		configuration: map[string]any{
			"control_cluster":      false,
			"primary_cluster_cidr": "10.0.0.0/14",
			"support_cluster_cidr": "172.16.0.0/14",
			"control_cluster_cidr": "192.168.0.0/18",
			"orchestrator":         "kubernetes",
			"platform":             "amazon_web_services",
			"region":               "us-east-1",
		},
		isDefault:          true,
		jurisdictionTypeID: 1,
	},
	{
		id:   2,
		name: "default_dev_tier",
		configuration: map[string]any{
			"support_cluster":         false,
			"primary_cluster_cidr":    "10.0.0.0/16",
			"support_cluster_cidr":    "172.16.0.0/16",
			"dedicated_etcd":          false,
			"initial_workers":         2,
			"controller_instance_type": "m5.large",
			"etcd_instance_type":       "m5.large",
			"worker_instance_type":     "m5.xlarge",
		},
		isDefault:          true,
		jurisdictionTypeID: 2,
	},
	{
		id:   3,
		name: "default_dev_01_cluster",
		configuration: map[string]any{
			"coreos_release_channel": "stable",
			"cluster_cidr":           "10.0.0.0/18",
			"hosts_cidr":             "10.0.0.0/20",
			"host_subnet_cidrs": []string{
				"10.0.0.0/22",
				"10.0.4.0/22",
				"10.0.8.0/22",
				"10.0.12.0/22",
			},
			"services_cidr":  "10.0.16.0/24",
			"pods_cidr":      "10.0.32.0/19",
			"controller_ips": []string{"10.0.0.50"},
			"etcd_ips":       []string{"10.0.0.50"},
			"kubernetes_version":   "1.28.4",
			"kubernetes_api_ip":    "10.0.16.1",
			"cluster_dns_ip":       "10.0.16.10",
			"kubernetes_api_dns_names": []string{
				"kubernetes",
				"kubernetes.default",
				"kubernetes.default.svc",
				"kubernetes.default.svc.cluster.local",
			},
			"userdata_template_ids": map[string]any{
				"controller": 1,
				"worker":     2,
				"etcd":       3,
			},
		},
		isDefault:          true,
		jurisdictionTypeID: 3,
	},
}

type userdataTemplate struct {
	id   int64
	name string
	role string
	body string
}

var userdataTemplates = []userdataTemplate{
	{id: 1, name: "default_controller", role: "controller", body: controllerUserdata},
	{id: 2, name: "default_worker", role: "worker", body: workerUserdata},
	{id: 3, name: "default_etcd", role: "etcd", body: etcdUserdata},
}

// Load inserts the default jurisdiction types, configuration templates, and
// userdata templates, skipping any row that already exists by id.
func Load(ctx context.Context, s *store.Store) error {
	for _, jt := range jurisdictionTypes {
		if _, err := s.Pool.Exec(ctx, `
			INSERT INTO jurisdiction_type (id, name, description, parent_id)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING`,
			jt.id, jt.name, jt.description, jt.parentID); err != nil {
			return fmt.Errorf("error seeding jurisdiction type %s: %w", jt.name, err)
		}
	}

	for _, ct := range configurationTemplates {
		raw, err := json.Marshal(ct.configuration)
		if err != nil {
			return fmt.Errorf("error encoding configuration template %s: %w", ct.name, err)
		}
		if _, err := s.Pool.Exec(ctx, `
			INSERT INTO configuration_template (id, name, configuration, is_default, jurisdiction_type_id)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING`,
			ct.id, ct.name, raw, ct.isDefault, ct.jurisdictionTypeID); err != nil {
			return fmt.Errorf("error seeding configuration template %s: %w", ct.name, err)
		}
	}

	for _, ut := range userdataTemplates {
		if _, err := s.Pool.Exec(ctx, `
			INSERT INTO userdata_template (id, name, role, body)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING`,
			ut.id, ut.name, ut.role, ut.body); err != nil {
			return fmt.Errorf("error seeding userdata template %s: %w", ut.name, err)
		}
	}

	return nil
}
