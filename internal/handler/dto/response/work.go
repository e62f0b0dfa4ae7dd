package response

import (
	"time"

	"librepress/internal/usecase/commands"
	"librepress/internal/usecase/queries"

	"github.com/google/uuid"
)

type WorkResponse struct {
	ID              uuid.UUID        `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	AuthorID        uuid.UUID        `json:"author_id"`
	DisciplineID    uuid.UUID        `json:"discipline_id"`
	BasePrice       int64            `json:"base_price"`
	TaxRate         float64          `json:"tax_rate"`
	PriceOverrides  map[string]int64 `json:"price_overrides,omitempty"`
	CoverImageRef   string           `json:"cover_image_ref,omitempty"`
	CollectionID    *uuid.UUID       `json:"collection_id,omitempty"`
	Attachments     []string         `json:"attachments,omitempty"`
	Status          string           `json:"status"`
	SubmittedAt     *time.Time       `json:"submitted_at,omitempty"`
	ReviewedAt      *time.Time       `json:"reviewed_at,omitempty"`
	ReviewerID      *uuid.UUID       `json:"reviewer_id,omitempty"`
	PublishedAt     *time.Time       `json:"published_at,omitempty"`
	RejectionReason *string          `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func FromWorkView(v *queries.WorkView) WorkResponse {
	return WorkResponse{
		ID:              v.ID,
		Title:           v.Title,
		Description:     v.Description,
		AuthorID:        v.AuthorID,
		DisciplineID:    v.DisciplineID,
		BasePrice:       v.BasePrice,
		TaxRate:         v.TaxRate,
		PriceOverrides:  v.Overrides,
		CoverImageRef:   v.CoverImageRef,
		CollectionID:    v.CollectionID,
		Attachments:     v.Attachments,
		Status:          v.Status,
		SubmittedAt:     v.SubmittedAt,
		ReviewedAt:      v.ReviewedAt,
		ReviewerID:      v.ReviewerID,
		PublishedAt:     v.PublishedAt,
		RejectionReason: v.RejectionReason,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

type WorkListItemResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	AuthorID     uuid.UUID `json:"author_id"`
	DisciplineID uuid.UUID `json:"discipline_id"`
	BasePrice    int64     `json:"base_price"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromWorkList(items []*queries.WorkListItem) []WorkListItemResponse {
	out := make([]WorkListItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, WorkListItemResponse{
			ID:           item.ID,
			Title:        item.Title,
			AuthorID:     item.AuthorID,
			DisciplineID: item.DisciplineID,
			BasePrice:    item.BasePrice,
			Status:       item.Status,
			CreatedAt:    item.CreatedAt,
		})
	}
	return out
}

type TransitionResponse struct {
	WorkID    uuid.UUID `json:"work_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
}

func FromTransition(r *commands.TransitionResult) TransitionResponse {
	return TransitionResponse{
		WorkID:    r.WorkID,
		OldStatus: r.OldStatus,
		NewStatus: r.NewStatus,
	}
}
