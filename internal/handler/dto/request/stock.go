package request

import (
	"github.com/google/uuid"
)

type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

type TransferRequest struct {
	PartnerID uuid.UUID `json:"partner_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// ConsumeRequest takes stock out at order fulfillment. A nil partner
// means the central warehouse.
type ConsumeRequest struct {
	PartnerID *uuid.UUID `json:"partner_id,omitempty"`
	Quantity  int        `json:"quantity" binding:"required,gt=0"`
}

type ReturnRequest struct {
	PartnerID uuid.UUID `json:"partner_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}
