package queries

import (
	"context"
	"time"

	"librepress/internal/infra"

	"github.com/google/uuid"
)

type WorkFilters struct {
	Status       *string
	AuthorID     *uuid.UUID
	DisciplineID *uuid.UUID
}

type WorkReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WorkView, error)
	FindFirstPage(ctx context.Context, filters WorkFilters, limit int32) ([]*WorkListItem, error)
	FindKeyset(ctx context.Context, filters WorkFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*WorkListItem, error)
}

type CatalogQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*WorkView, error)
	List(ctx context.Context, filters WorkFilters, cursor *Cursor, limit int) ([]*WorkListItem, *Cursor, error)
	// ListReviewQueue is the operator's inbox of works awaiting review.
	ListReviewQueue(ctx context.Context, cursor *Cursor, limit int) ([]*WorkListItem, *Cursor, error)
}

type catalogQueriesImpl struct {
	store WorkReadStore
}

func NewCatalogQueries(store WorkReadStore) CatalogQueries {
	return &catalogQueriesImpl{store: store}
}

func (q *catalogQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*WorkView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrWorkNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *catalogQueriesImpl) List(ctx context.Context, filters WorkFilters, cursor *Cursor, limit int) ([]*WorkListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var rows []*WorkListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.FindFirstPage(ctx, filters, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.store.FindKeyset(ctx, filters, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *catalogQueriesImpl) ListReviewQueue(ctx context.Context, cursor *Cursor, limit int) ([]*WorkListItem, *Cursor, error) {
	pending := "PENDING"
	return q.List(ctx, WorkFilters{Status: &pending}, cursor, limit)
}
