// Package configresolver merges a jurisdiction's own configuration with
// that of its ancestors, descendant wins on key conflict.
package configresolver

import (
	"context"
	"fmt"

	v1 "github.com/lander2k2/silenus-provisioner/pkg/apis/provisioner/v1"
	"github.com/lander2k2/silenus-provisioner/pkg/errs"
)

// AncestorLoader loads a jurisdiction's direct parent chain, nearest first.
// Satisfied by *store.Store.
type AncestorLoader interface {
	Ancestors(ctx context.Context, j *v1.Jurisdiction) ([]v1.Jurisdiction, error)
}

// Resolve returns j's effective configuration: its own map merged over its
// ancestors' maps, descendant overrides ancestor.
func Resolve(ctx context.Context, loader AncestorLoader, j *v1.Jurisdiction) (map[string]any, error) {
	ancestors, err := loader.Ancestors(ctx, j)
	if err != nil {
		return nil, fmt.Errorf("error loading ancestors of jurisdiction %d: %w", j.ID, err)
	}

	effective := map[string]any{}
	// Merge ancestors first, root to nearest, so the nearer ancestor (and
	// finally j itself) overrides it.
	for i := len(ancestors) - 1; i >= 0; i-- {
		mergeInto(effective, ancestors[i].Configuration)
	}
	mergeInto(effective, j.Configuration)

	return effective, nil
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		dst[k] = v
	}
}

// Region returns the region key from the control-group ancestor's
// configuration. Fails with MissingAncestor if j has no control_group
// ancestor carrying a region.
func Region(ctx context.Context, loader AncestorLoader, j *v1.Jurisdiction) (string, error) {
	ancestors, err := loader.Ancestors(ctx, j)
	if err != nil {
		return "", fmt.Errorf("error loading ancestors of jurisdiction %d: %w", j.ID, err)
	}

	// ancestors is nearest-first; the control group, if present, is last.
	if len(ancestors) > 0 {
		if region, ok := ancestors[len(ancestors)-1].Configuration["region"].(string); ok && region != "" {
			return region, nil
		}
	}
	if region, ok := j.Configuration["region"].(string); ok && region != "" {
		return region, nil
	}

	return "", errs.Newf(errs.PrecondFail, "MissingAncestor: no control-group ancestor of jurisdiction %d carries a region", j.ID)
}
