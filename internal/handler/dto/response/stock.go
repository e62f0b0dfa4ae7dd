package response

import (
	"time"

	"librepress/internal/usecase/commands"
	"librepress/internal/usecase/queries"

	"github.com/google/uuid"
)

type StockResultResponse struct {
	WorkID     uuid.UUID `json:"work_id"`
	Owned      int       `json:"owned"`
	Total      int       `json:"total"`
	AlertLevel string    `json:"alert_level"`
	WorkStatus string    `json:"work_status"`
}

func FromStockResult(r *commands.StockResult) StockResultResponse {
	return StockResultResponse{
		WorkID:     r.WorkID,
		Owned:      r.Owned,
		Total:      r.Total,
		AlertLevel: r.AlertLevel,
		WorkStatus: r.WorkStatus,
	}
}

type HoldingResponse struct {
	PartnerID uuid.UUID `json:"partner_id"`
	Quantity  int       `json:"quantity"`
}

type StockOverviewResponse struct {
	WorkID     uuid.UUID         `json:"work_id"`
	WorkStatus string            `json:"work_status"`
	Owned      int               `json:"owned"`
	Holdings   []HoldingResponse `json:"holdings"`
	Total      int               `json:"total"`
	AlertLevel string            `json:"alert_level"`
}

func FromStockOverview(v *queries.StockOverview) StockOverviewResponse {
	holdings := make([]HoldingResponse, 0, len(v.Holdings))
	for _, h := range v.Holdings {
		holdings = append(holdings, HoldingResponse{PartnerID: h.PartnerID, Quantity: h.Quantity})
	}
	return StockOverviewResponse{
		WorkID:     v.WorkID,
		WorkStatus: v.WorkStatus,
		Owned:      v.Owned,
		Holdings:   holdings,
		Total:      v.Total,
		AlertLevel: v.AlertLevel,
	}
}

type MovementResponse struct {
	ID         uuid.UUID  `json:"id"`
	WorkID     uuid.UUID  `json:"work_id"`
	Kind       string     `json:"kind"`
	Delta      int        `json:"delta"`
	PartnerID  *uuid.UUID `json:"partner_id,omitempty"`
	ActorID    uuid.UUID  `json:"actor_id"`
	OccurredAt time.Time  `json:"occurred_at"`
}

func FromMovementList(items []*queries.MovementView) []MovementResponse {
	out := make([]MovementResponse, 0, len(items))
	for _, m := range items {
		out = append(out, MovementResponse{
			ID:         m.ID,
			WorkID:     m.WorkID,
			Kind:       m.Kind,
			Delta:      m.Delta,
			PartnerID:  m.PartnerID,
			ActorID:    m.ActorID,
			OccurredAt: m.OccurredAt,
		})
	}
	return out
}
