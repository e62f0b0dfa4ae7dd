package readstore

import (
	"context"
	"time"

	"librepress/internal/infra"
	"librepress/internal/infra/db"
	"librepress/internal/pkg/pgconv"
	"librepress/internal/usecase/queries"
	"librepress/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const workViewColumns = `id, title, description, author_id, discipline_id,
	base_price, tax_rate, price_overrides, cover_image_ref, collection_id, attachments,
	min_threshold, max_threshold, owned_quantity, status,
	submitted_at, reviewed_at, reviewer_id, published_at, rejection_reason,
	created_at, updated_at`

type WorkReadStore struct {
	db db.DBTX
}

func NewWorkReadStore(conn db.DBTX) *WorkReadStore {
	return &WorkReadStore{db: conn}
}

func (r *WorkReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.WorkView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+workViewColumns+` FROM works WHERE id = $1`, id)

	snap, err := scanWorkRow(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("work not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get work view by id", err)
	}
	return workViewFromSnapshot(snap), nil
}

func (r *WorkReadStore) FindFirstPage(ctx context.Context, filters queries.WorkFilters, limit int32) ([]*queries.WorkListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, author_id, discipline_id, base_price, status, created_at
		FROM works
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::uuid IS NULL OR author_id = $2)
		  AND ($3::uuid IS NULL OR discipline_id = $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4`,
		filters.Status, filters.AuthorID, filters.DisciplineID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list works first page", err)
	}
	return collectWorkListItems(rows)
}

func (r *WorkReadStore) FindKeyset(ctx context.Context, filters queries.WorkFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.WorkListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, author_id, discipline_id, base_price, status, created_at
		FROM works
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::uuid IS NULL OR author_id = $2)
		  AND ($3::uuid IS NULL OR discipline_id = $3)
		  AND (created_at, id) < ($4, $5)
		ORDER BY created_at DESC, id DESC
		LIMIT $6`,
		filters.Status, filters.AuthorID, filters.DisciplineID, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list works keyset", err)
	}
	return collectWorkListItems(rows)
}

// WorksByIDs loads pricing snapshots for a candidate order. Missing IDs
// are simply absent from the result; the caller decides how to react.
func (r *WorkReadStore) WorksByIDs(ctx context.Context, ids []uuid.UUID) ([]shared.WorkSnapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+workViewColumns+` FROM works WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load works by ids", err)
	}
	defer rows.Close()

	var snapshots []shared.WorkSnapshot
	for rows.Next() {
		snap, serr := scanWorkRow(rows)
		if serr != nil {
			return nil, infra.WrapRepoErr("failed to scan work snapshot", serr)
		}
		snapshots = append(snapshots, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read works by ids", err)
	}
	return snapshots, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkRow(row rowScanner) (*shared.WorkSnapshot, error) {
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

func workViewFromSnapshot(snap *shared.WorkSnapshot) *queries.WorkView {
	return &queries.WorkView{
		ID:              snap.ID,
		Title:           snap.Title,
		Description:     snap.Description,
		AuthorID:        snap.AuthorID,
		DisciplineID:    snap.DisciplineID,
		BasePrice:       snap.BasePrice,
		TaxRate:         snap.TaxRate,
		Overrides:       snap.Overrides,
		CoverImageRef:   snap.CoverImageRef,
		CollectionID:    snap.CollectionID,
		Attachments:     snap.Attachments,
		Status:          snap.Status,
		SubmittedAt:     snap.SubmittedAt,
		ReviewedAt:      snap.ReviewedAt,
		ReviewerID:      snap.ReviewerID,
		PublishedAt:     snap.PublishedAt,
		RejectionReason: snap.RejectionReason,
		CreatedAt:       snap.CreatedAt,
		UpdatedAt:       snap.UpdatedAt,
	}
}

func collectWorkListItems(rows pgx.Rows) ([]*queries.WorkListItem, error) {
	defer rows.Close()

	var items []*queries.WorkListItem
	for rows.Next() {
		var item queries.WorkListItem
		if err := rows.Scan(&item.ID, &item.Title, &item.AuthorID, &item.DisciplineID,
			&item.BasePrice, &item.Status, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan work list item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read work list", err)
	}
	return items, nil
}
