package repository

import (
	"context"

	"librepress/internal/domain/catalog"
	"librepress/internal/infra"
	"librepress/internal/infra/db"
	"librepress/internal/pkg/pgconv"
	"librepress/internal/usecase/shared"

	"github.com/google/uuid"
)

type WorkRepository struct{}

func NewWorkRepository() *WorkRepository {
	return &WorkRepository{}
}

const workColumns = `id, title, description, author_id, discipline_id,
	base_price, tax_rate, price_overrides, cover_image_ref, collection_id, attachments,
	min_threshold, max_threshold, owned_quantity, status,
	submitted_at, reviewed_at, reviewer_id, published_at, rejection_reason,
	created_at, updated_at`

func (r *WorkRepository) Create(ctx context.Context, tx db.DBTX, w *catalog.Work) error {
	overrides := make(map[string]int64, len(w.Overrides()))
	for ct, price := range w.Overrides() {
		overrides[ct.String()] = price
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO works (
			id, title, description, author_id, discipline_id,
			base_price, tax_rate, price_overrides, cover_image_ref, collection_id, attachments,
			min_threshold, max_threshold, owned_quantity, status,
			submitted_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 0, $14, $15, $16, $17)`,
		w.ID(), w.Title(), w.Description(), w.AuthorID(), w.DisciplineID(),
		w.BasePrice(), w.TaxRate().Float64(), overrides,
		w.Details().CoverImageRef, w.Details().CollectionID, w.Details().Attachments,
		w.MinThreshold(), w.MaxThreshold(), w.Status().String(),
		w.SubmittedAt(), w.CreatedAt(), w.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create work", err)
	}
	return nil
}

// FindByIDForUpdate reads the work row under FOR UPDATE; the lock holds
// until the surrounding transaction commits.
func (r *WorkRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*shared.WorkSnapshot, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+workColumns+`
		FROM works
		WHERE id = $1
		FOR UPDATE`, id)

	snap, err := scanWorkSnapshot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("work not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get work for update", err)
	}
	return snap, nil
}

func (r *WorkRepository) UpdateLifecycle(ctx context.Context, tx db.DBTX, w *catalog.Work) error {
	tag, err := tx.Exec(ctx, `
		UPDATE works
		SET author_id = $2, status = $3,
			submitted_at = $4, reviewed_at = $5, reviewer_id = $6,
			published_at = $7, rejection_reason = $8, updated_at = $9
		WHERE id = $1`,
		w.ID(), w.AuthorID(), w.Status().String(),
		w.SubmittedAt(), w.ReviewedAt(), w.ReviewerID(),
		w.PublishedAt(), w.RejectionReason(), w.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update work lifecycle", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("work not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *WorkRepository) UpdateOwnedQuantity(ctx context.Context, tx db.DBTX, id uuid.UUID, owned int) error {
	tag, err := tx.Exec(ctx, `
		UPDATE works SET owned_quantity = $2, updated_at = now() WHERE id = $1`,
		id, owned,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update owned quantity", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("work not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *WorkRepository) HasOrderLines(ctx context.Context, tx db.DBTX, id uuid.UUID) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM order_lines WHERE work_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check order line references", err)
	}
	return exists, nil
}

func (r *WorkRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM works WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete work", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("work not found", nil, infra.KindNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkSnapshot(row rowScanner) (*shared.WorkSnapshot, error) {
	var snap shared.WorkSnapshot
	err := row.Scan(
		&snap.ID, &snap.Title, &snap.Description, &snap.AuthorID, &snap.DisciplineID,
		&snap.BasePrice, &snap.TaxRate, &snap.Overrides,
		&snap.CoverImageRef, &snap.CollectionID, &snap.Attachments,
		&snap.MinThreshold, &snap.MaxThreshold, &snap.OwnedQuantity, &snap.Status,
		&snap.SubmittedAt, &snap.ReviewedAt, &snap.ReviewerID,
		&snap.PublishedAt, &snap.RejectionReason,
		&snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
