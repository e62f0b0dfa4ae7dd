package request

import (
	"github.com/google/uuid"
)

type SubmitWorkRequest struct {
	Title          string           `json:"title" binding:"required"`
	Description    string           `json:"description" binding:"required"`
	AuthorID       uuid.UUID        `json:"author_id" binding:"required"`
	DisciplineID   uuid.UUID        `json:"discipline_id" binding:"required"`
	BasePrice      int64            `json:"base_price" binding:"min=0"`
	TaxRate        float64          `json:"tax_rate" binding:"min=0,lt=1"`
	PriceOverrides map[string]int64 `json:"price_overrides,omitempty"`
	CoverImageRef  string           `json:"cover_image_ref,omitempty"`
	CollectionID   *uuid.UUID       `json:"collection_id,omitempty"`
	Attachments    []string         `json:"attachments,omitempty"`
	AsDraft        bool             `json:"as_draft"`
}

// ReviewWorkRequest decides a pending submission. Approvals may
// reassign the author; rejections must carry a reason.
type ReviewWorkRequest struct {
	Decision    string     `json:"decision" binding:"required,oneof=APPROVE REJECT"`
	NewAuthorID *uuid.UUID `json:"new_author_id,omitempty"`
	Reason      string     `json:"reason,omitempty"`
}

type SetSaleStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
