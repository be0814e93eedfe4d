// Package store is the durable state store: jurisdictions, jurisdiction
// types, configuration templates, userdata templates, and the assets JSON
// blob that records cloud resource identifiers. Every mutating method opens
// and closes its own transaction; callers never hold a transaction across
// a cloud call (see pkg/orchestrator).
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	v1 "github.com/lander2k2/silenus-provisioner/pkg/apis/provisioner/v1"
	"github.com/lander2k2/silenus-provisioner/pkg/errs"
	"github.com/lander2k2/silenus-provisioner/utils"
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to store: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("error pinging store: %w", err)
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

// --- jurisdiction_type ---

func (s *Store) GetJurisdictionTypes(ctx context.Context) ([]v1.JurisdictionType, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, name, description, parent_id FROM jurisdiction_type ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying jurisdiction types: %w", err)
	}
	defer rows.Close()

	types := make([]v1.JurisdictionType, 0)
	for rows.Next() {
		var t v1.JurisdictionType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.ParentID); err != nil {
			return nil, fmt.Errorf("error scanning jurisdiction type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (s *Store) GetJurisdictionType(ctx context.Context, id int64) (*v1.JurisdictionType, error) {
	var t v1.JurisdictionType
	err := s.Pool.QueryRow(ctx, `SELECT id, name, description, parent_id FROM jurisdiction_type WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Description, &t.ParentID)
	if err == pgx.ErrNoRows {
		return nil, errs.Newf(errs.NotFound, "jurisdiction type %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying jurisdiction type: %w", err)
	}
	return &t, nil
}

// --- configuration_template ---

func (s *Store) GetConfigurationTemplates(ctx context.Context) ([]v1.ConfigurationTemplate, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, name, configuration, is_default, jurisdiction_type_id FROM configuration_template ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying configuration templates: %w", err)
	}
	defer rows.Close()

	templates := make([]v1.ConfigurationTemplate, 0)
	for rows.Next() {
		ct, err := scanConfigurationTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, ct)
	}
	return templates, rows.Err()
}

func (s *Store) GetConfigurationTemplate(ctx context.Context, id int64) (*v1.ConfigurationTemplate, error) {
	row := s.Pool.QueryRow(ctx, `SELECT id, name, configuration, is_default, jurisdiction_type_id FROM configuration_template WHERE id = $1`, id)
	ct, err := scanConfigurationTemplate(row)
	if err == pgx.ErrNoRows {
		return nil, errs.Newf(errs.NotFound, "configuration template %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanConfigurationTemplate(row scannable) (v1.ConfigurationTemplate, error) {
	var ct v1.ConfigurationTemplate
	var raw []byte
	if err := row.Scan(&ct.ID, &ct.Name, &raw, &ct.Default, &ct.JurisdictionTypeID); err != nil {
		return ct, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &ct.Configuration); err != nil {
			return ct, fmt.Errorf("error decoding configuration template %d: %w", ct.ID, err)
		}
	}
	return ct, nil
}

// --- userdata_template ---

func (s *Store) GetUserdataTemplate(ctx context.Context, id int64) (*v1.UserdataTemplate, error) {
	var ut v1.UserdataTemplate
	err := s.Pool.QueryRow(ctx, `SELECT id, name, role, body FROM userdata_template WHERE id = $1`, id).
		Scan(&ut.ID, &ut.Name, &ut.Role, &ut.Body)
	if err == pgx.ErrNoRows {
		return nil, errs.Newf(errs.NotFound, "userdata template %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying userdata template: %w", err)
	}
	return &ut, nil
}

// --- jurisdiction ---

func (s *Store) GetJurisdictions(ctx context.Context) ([]v1.Jurisdiction, error) {
	rows, err := s.Pool.Query(ctx, jurisdictionSelect+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying jurisdictions: %w", err)
	}
	defer rows.Close()

	out := make([]v1.Jurisdiction, 0)
	for rows.Next() {
		j, err := scanJurisdiction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (s *Store) GetJurisdiction(ctx context.Context, id int64) (*v1.Jurisdiction, error) {
	return s.getJurisdiction(ctx, s.Pool, id)
}

func (s *Store) getJurisdiction(ctx context.Context, q queryable, id int64) (*v1.Jurisdiction, error) {
	row := q.QueryRow(ctx, jurisdictionSelect+` WHERE id = $1`, id)
	j, err := scanJurisdiction(row)
	if err == pgx.ErrNoRows {
		return nil, errs.Newf(errs.NotFound, "jurisdiction %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (s *Store) GetJurisdictionByName(ctx context.Context, name string) (*v1.Jurisdiction, error) {
	row := s.Pool.QueryRow(ctx, jurisdictionSelect+` WHERE name = $1`, name)
	j, err := scanJurisdiction(row)
	if err == pgx.ErrNoRows {
		return nil, errs.Newf(errs.NotFound, "jurisdiction %q not found", name)
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// GetChildren returns the direct children of jurisdiction id, regardless of
// active state.
func (s *Store) GetChildren(ctx context.Context, id int64) ([]v1.Jurisdiction, error) {
	rows, err := s.Pool.Query(ctx, jurisdictionSelect+` WHERE parent_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("error querying children of %d: %w", id, err)
	}
	defer rows.Close()

	out := make([]v1.Jurisdiction, 0)
	for rows.Next() {
		j, err := scanJurisdiction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

const jurisdictionSelect = `SELECT id, name, created_on, active, type_id, parent_id, configuration, assets, metadata FROM jurisdiction`

type queryable interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func scanJurisdiction(row scannable) (v1.Jurisdiction, error) {
	var j v1.Jurisdiction
	var cfgRaw, assetsRaw, metaRaw []byte
	if err := row.Scan(&j.ID, &j.Name, &j.CreatedOn, &j.Active, &j.TypeID, &j.ParentID, &cfgRaw, &assetsRaw, &metaRaw); err != nil {
		return j, err
	}
	if len(cfgRaw) > 0 {
		if err := json.Unmarshal(cfgRaw, &j.Configuration); err != nil {
			return j, fmt.Errorf("error decoding configuration of jurisdiction %d: %w", j.ID, err)
		}
	}
	if len(assetsRaw) > 0 {
		if err := json.Unmarshal(assetsRaw, &j.Assets); err != nil {
			return j, fmt.Errorf("error decoding assets of jurisdiction %d: %w", j.ID, err)
		}
	}
	if len(metaRaw) > 0 {
		if err := json.Unmarshal(metaRaw, &j.Metadata); err != nil {
			return j, fmt.Errorf("error decoding metadata of jurisdiction %d: %w", j.ID, err)
		}
	}
	return j, nil
}

// CreateJurisdiction inserts a new, inactive jurisdiction with configuration
// copied from the given template. Fails with Conflict if the name is
// already taken.
func (s *Store) CreateJurisdiction(ctx context.Context, name string, typeID int64, parentID *int64, configuration map[string]any) (*v1.Jurisdiction, error) {
	var created v1.Jurisdiction
	err := pgx.BeginFunc(ctx, s.Pool, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jurisdiction WHERE name = $1)`, name).Scan(&exists); err != nil {
			return fmt.Errorf("error checking name uniqueness: %w", err)
		}
		if exists {
			return errs.Newf(errs.Conflict, "jurisdiction named %q already exists", name)
		}

		cfgRaw, err := json.Marshal(configuration)
		if err != nil {
			return fmt.Errorf("error encoding configuration: %w", err)
		}

		row := tx.QueryRow(ctx, `
			INSERT INTO jurisdiction (name, active, type_id, parent_id, configuration, assets, metadata)
			VALUES ($1, false, $2, $3, $4, '{}'::jsonb, '{}'::jsonb)
			RETURNING id, name, created_on, active, type_id, parent_id, configuration, assets, metadata`,
			name, typeID, parentID, cfgRaw)
		created, err = scanJurisdiction(row)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// EditJurisdiction updates name, metadata, and/or configuration on an
// inactive jurisdiction. Fails with Conflict if active.
func (s *Store) EditJurisdiction(ctx context.Context, id int64, name *string, metadata map[string]string, configuration map[string]any) (*v1.Jurisdiction, error) {
	var updated v1.Jurisdiction
	err := pgx.BeginFunc(ctx, s.Pool, func(tx pgx.Tx) error {
		current, err := s.getJurisdiction(ctx, tx, id)
		if err != nil {
			return err
		}
		if current.Active {
			return errs.Newf(errs.Conflict, "jurisdiction %d is active and cannot be edited", id)
		}

		if name != nil {
			current.Name = *name
		}
		if metadata != nil {
			current.Metadata = utils.MergeMaps(current.Metadata, metadata)
		}
		if configuration != nil {
			current.Configuration = configuration
		}

		cfgRaw, err := json.Marshal(current.Configuration)
		if err != nil {
			return fmt.Errorf("error encoding configuration: %w", err)
		}

		metaRaw, err := json.Marshal(current.Metadata)
		if err != nil {
			return fmt.Errorf("error encoding metadata: %w", err)
		}

		row := tx.QueryRow(ctx, `
			UPDATE jurisdiction SET name = $1, metadata = $2, configuration = $3
			WHERE id = $4
			RETURNING id, name, created_on, active, type_id, parent_id, configuration, assets, metadata`,
			current.Name, metaRaw, cfgRaw, id)
		updated, err = scanJurisdiction(row)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetActive flips the active flag transactionally.
func (s *Store) SetActive(ctx context.Context, id int64, active bool) error {
	return pgx.BeginFunc(ctx, s.Pool, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx, `UPDATE jurisdiction SET active = $1 WHERE id = $2`, active, id)
		if err != nil {
			return fmt.Errorf("error setting active=%v on jurisdiction %d: %w", active, id, err)
		}
		if ct.RowsAffected() == 0 {
			return errs.Newf(errs.NotFound, "jurisdiction %d not found", id)
		}
		return nil
	})
}

// MergeAssets re-reads the jurisdiction's current assets inside the
// transaction, applies merge to the decoded map, and writes the result
// back. This is the "open tx -> read -> merge -> close" idiom required of
// every monitor status write (never merged by the cloud adapter directly).
func (s *Store) MergeAssets(ctx context.Context, id int64, merge func(assets map[string]any) map[string]any) error {
	return pgx.BeginFunc(ctx, s.Pool, func(tx pgx.Tx) error {
		var raw []byte
		if err := tx.QueryRow(ctx, `SELECT assets FROM jurisdiction WHERE id = $1 FOR UPDATE`, id).Scan(&raw); err != nil {
			if err == pgx.ErrNoRows {
				return errs.Newf(errs.NotFound, "jurisdiction %d not found", id)
			}
			return fmt.Errorf("error reading assets of jurisdiction %d: %w", id, err)
		}

		assets := map[string]any{}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &assets); err != nil {
				return fmt.Errorf("error decoding assets of jurisdiction %d: %w", id, err)
			}
		}

		merged := merge(assets)

		mergedRaw, err := json.Marshal(merged)
		if err != nil {
			return fmt.Errorf("error encoding assets of jurisdiction %d: %w", id, err)
		}

		if _, err := tx.Exec(ctx, `UPDATE jurisdiction SET assets = $1 WHERE id = $2`, mergedRaw, id); err != nil {
			return fmt.Errorf("error writing assets of jurisdiction %d: %w", id, err)
		}
		return nil
	})
}

// Ancestors returns jurisdiction's direct parent chain, nearest first, all
// loaded inside a single read-only transaction to avoid a torn view of the
// hierarchy under concurrent edits.
func (s *Store) Ancestors(ctx context.Context, j *v1.Jurisdiction) ([]v1.Jurisdiction, error) {
	var chain []v1.Jurisdiction
	err := pgx.BeginTxFunc(ctx, s.Pool, pgx.TxOptions{AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		cur := j
		for cur.ParentID != nil {
			parent, err := s.getJurisdiction(ctx, tx, *cur.ParentID)
			if err != nil {
				return err
			}
			chain = append(chain, *parent)
			cur = parent
		}
		return nil
	})
	return chain, err
}
