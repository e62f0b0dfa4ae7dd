package repository

import (
	"context"

	"librepress/internal/domain/discount"
	"librepress/internal/infra"
	"librepress/internal/infra/db"
	"librepress/internal/pkg/pgconv"
	"librepress/internal/usecase/shared"

	"github.com/google/uuid"
)

type DiscountRuleRepository struct{}

func NewDiscountRuleRepository() *DiscountRuleRepository {
	return &DiscountRuleRepository{}
}

func (r *DiscountRuleRepository) Create(ctx context.Context, tx db.DBTX, rule *discount.Rule) error {
	var code *string
	if c := rule.Code(); c != nil {
		s := c.String()
		code = &s
	}
	var clientType *string
	if ct := rule.ClientType(); ct != nil {
		s := ct.String()
		clientType = &s
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO discount_rules (
			id, code, label, rate_type, rate_value, min_quantity,
			client_type, start_at, end_at, timezone, active, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rule.ID(), code, rule.Label(),
		string(rule.Rate().Kind()), rule.Rate().Value(), rule.MinQuantity(),
		clientType, rule.Window().Start(), rule.Window().End(), rule.Window().Location().String(),
		rule.IsActive(), rule.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create discount rule", err)
	}

	for _, workID := range rule.Scope().WorkIDs() {
		if _, err := tx.Exec(ctx, `
			INSERT INTO discount_rule_works (rule_id, work_id) VALUES ($1, $2)`,
			rule.ID(), workID,
		); err != nil {
			return infra.WrapRepoErr("failed to attach rule scope", err)
		}
	}
	return nil
}

func (r *DiscountRuleRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*shared.RuleSnapshot, error) {
	row := tx.QueryRow(ctx, `
		SELECT id, code, label, rate_type, rate_value, min_quantity,
			client_type, start_at, end_at, timezone, active, created_at
		FROM discount_rules
		WHERE id = $1
		FOR UPDATE`, id)

	var snap shared.RuleSnapshot
	err := row.Scan(
		&snap.ID, &snap.Code, &snap.Label, &snap.RateType, &snap.RateValue, &snap.MinQuantity,
		&snap.ClientType, &snap.StartAt, &snap.EndAt, &snap.Timezone, &snap.Active, &snap.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("discount rule not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get discount rule for update", err)
	}

	if err := loadRuleScope(ctx, tx, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *DiscountRuleRepository) ExistsActiveCode(ctx context.Context, tx db.DBTX, code string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM discount_rules WHERE code = $1 AND active)`, code).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check active code", err)
	}
	return exists, nil
}

func (r *DiscountRuleRepository) SetActive(ctx context.Context, tx db.DBTX, id uuid.UUID, active bool) error {
	tag, err := tx.Exec(ctx, `UPDATE discount_rules SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return infra.WrapRepoErr("failed to update rule activation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("discount rule not found", nil, infra.KindNotFound)
	}
	return nil
}

func loadRuleScope(ctx context.Context, tx db.DBTX, snap *shared.RuleSnapshot) error {
	rows, err := tx.Query(ctx, `
		SELECT work_id FROM discount_rule_works WHERE rule_id = $1`, snap.ID)
	if err != nil {
		return infra.WrapRepoErr("failed to load rule scope", err)
	}
	defer rows.Close()

	for rows.Next() {
		var workID uuid.UUID
		if err := rows.Scan(&workID); err != nil {
			return infra.WrapRepoErr("failed to scan rule scope", err)
		}
		snap.ScopeWorkIDs = append(snap.ScopeWorkIDs, workID)
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to read rule scope", err)
	}
	return nil
}
