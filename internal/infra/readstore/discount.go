package readstore

import (
	"context"
	"time"

	"librepress/internal/infra"
	"librepress/internal/infra/db"
	"librepress/internal/usecase/queries"
	"librepress/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const ruleColumns = `id, code, label, rate_type, rate_value, min_quantity,
	client_type, start_at, end_at, timezone, active, created_at`

type DiscountReadStore struct {
	db db.DBTX
}

func NewDiscountReadStore(conn db.DBTX) *DiscountReadStore {
	return &DiscountReadStore{db: conn}
}

func (r *DiscountReadStore) FindFirstPage(ctx context.Context, includeInactive bool, limit int32) ([]*queries.DiscountRuleView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+ruleColumns+`
		FROM discount_rules
		WHERE active OR $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, includeInactive, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list discount rules first page", err)
	}
	return r.collectRuleViews(ctx, rows)
}

func (r *DiscountReadStore) FindKeyset(ctx context.Context, includeInactive bool, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.DiscountRuleView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+ruleColumns+`
		FROM discount_rules
		WHERE (active OR $1) AND (created_at, id) < ($2, $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4`, includeInactive, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list discount rules keyset", err)
	}
	return r.collectRuleViews(ctx, rows)
}

// FindActive loads every active rule with its scope for in-memory
// evaluation.
func (r *DiscountReadStore) FindActive(ctx context.Context) ([]shared.RuleSnapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+ruleColumns+` FROM discount_rules WHERE active`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load active discount rules", err)
	}

	snapshots, err := collectRuleSnapshots(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachScopes(ctx, snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (r *DiscountReadStore) collectRuleViews(ctx context.Context, rows pgx.Rows) ([]*queries.DiscountRuleView, error) {
	snapshots, err := collectRuleSnapshots(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachScopes(ctx, snapshots); err != nil {
		return nil, err
	}

	views := make([]*queries.DiscountRuleView, 0, len(snapshots))
	for i := range snapshots {
		snap := &snapshots[i]
		views = append(views, &queries.DiscountRuleView{
			ID:           snap.ID,
			Code:         snap.Code,
			Label:        snap.Label,
			RateType:     snap.RateType,
			RateValue:    snap.RateValue,
			MinQuantity:  snap.MinQuantity,
			ScopeWorkIDs: snap.ScopeWorkIDs,
			ClientType:   snap.ClientType,
			StartAt:      snap.StartAt,
			EndAt:        snap.EndAt,
			Timezone:     snap.Timezone,
			Active:       snap.Active,
			CreatedAt:    snap.CreatedAt,
		})
	}
	return views, nil
}

func collectRuleSnapshots(rows pgx.Rows) ([]shared.RuleSnapshot, error) {
	defer rows.Close()

	var snapshots []shared.RuleSnapshot
	for rows.Next() {
		var snap shared.RuleSnapshot
		if err := rows.Scan(
			&snap.ID, &snap.Code, &snap.Label, &snap.RateType, &snap.RateValue, &snap.MinQuantity,
			&snap.ClientType, &snap.StartAt, &snap.EndAt, &snap.Timezone, &snap.Active, &snap.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan discount rule", err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read discount rules", err)
	}
	return snapshots, nil
}

func (r *DiscountReadStore) attachScopes(ctx context.Context, snapshots []shared.RuleSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(snapshots))
	index := make(map[uuid.UUID]*shared.RuleSnapshot, len(snapshots))
	for i := range snapshots {
		ids = append(ids, snapshots[i].ID)
		index[snapshots[i].ID] = &snapshots[i]
	}

	rows, err := r.db.Query(ctx, `
		SELECT rule_id, work_id FROM discount_rule_works WHERE rule_id = ANY($1)`, ids)
	if err != nil {
		return infra.WrapRepoErr("failed to load rule scopes", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ruleID, workID uuid.UUID
		if err := rows.Scan(&ruleID, &workID); err != nil {
			return infra.WrapRepoErr("failed to scan rule scope", err)
		}
		if snap, ok := index[ruleID]; ok {
			snap.ScopeWorkIDs = append(snap.ScopeWorkIDs, workID)
		}
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to read rule scopes", err)
	}
	return nil
}
