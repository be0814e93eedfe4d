package configresolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/lander2k2/silenus-provisioner/pkg/apis/provisioner/v1"
	"github.com/lander2k2/silenus-provisioner/pkg/errs"
)

// fakeLoader returns a fixed ancestor chain regardless of which jurisdiction
// is asked about, enough to exercise Resolve/Region's merge order.
type fakeLoader struct {
	ancestors []v1.Jurisdiction
}

func (f fakeLoader) Ancestors(ctx context.Context, j *v1.Jurisdiction) ([]v1.Jurisdiction, error) {
	return f.ancestors, nil
}

func TestResolve(t *testing.T) {
	loader := fakeLoader{ancestors: []v1.Jurisdiction{
		{ID: 2, Configuration: map[string]any{"worker_instance_type": "m5.large", "dedicated_etcd": false}}, // tier, nearest
		{ID: 1, Configuration: map[string]any{"region": "us-east-1", "dedicated_etcd": true}},                // control group, farthest
	}}
	j := &v1.Jurisdiction{ID: 3, Configuration: map[string]any{"worker_instance_type": "m5.xlarge"}}

	effective, err := Resolve(context.Background(), loader, j)
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", effective["region"], "only the control group sets region")
	assert.Equal(t, false, effective["dedicated_etcd"], "the tier, being nearer, overrides the control group")
	assert.Equal(t, "m5.xlarge", effective["worker_instance_type"], "the jurisdiction's own configuration wins over both ancestors")
}

func TestResolve_NoAncestors(t *testing.T) {
	loader := fakeLoader{}
	j := &v1.Jurisdiction{ID: 1, Configuration: map[string]any{"platform": "amazon_web_services"}}

	effective, err := Resolve(context.Background(), loader, j)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"platform": "amazon_web_services"}, effective)
}

func TestRegion_FromControlGroupAncestor(t *testing.T) {
	loader := fakeLoader{ancestors: []v1.Jurisdiction{
		{ID: 2, Configuration: map[string]any{}},
		{ID: 1, Configuration: map[string]any{"region": "eu-west-1"}},
	}}
	j := &v1.Jurisdiction{ID: 3}

	region, err := Region(context.Background(), loader, j)
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", region)
}

func TestRegion_FromJurisdictionItself(t *testing.T) {
	loader := fakeLoader{}
	j := &v1.Jurisdiction{ID: 1, Configuration: map[string]any{"region": "ap-south-1"}}

	region, err := Region(context.Background(), loader, j)
	require.NoError(t, err)
	assert.Equal(t, "ap-south-1", region)
}

func TestRegion_MissingAncestor(t *testing.T) {
	loader := fakeLoader{ancestors: []v1.Jurisdiction{{ID: 2, Configuration: map[string]any{}}}}
	j := &v1.Jurisdiction{ID: 3, Configuration: map[string]any{}}

	_, err := Region(context.Background(), loader, j)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.PrecondFail))
}
