//go:build unit || e2e

package builder

import (
	"time"

	"librepress/internal/domain/catalog"
	reqdto "librepress/internal/handler/dto/request"
	"librepress/internal/usecase/queries"
	"librepress/internal/usecase/shared"

	"github.com/google/uuid"
)

type WorkBuilder struct {
	ID            uuid.UUID
	Title         string
	Description   string
	AuthorID      uuid.UUID
	DisciplineID  uuid.UUID
	BasePrice     int64
	TaxRate       float64
	Overrides     map[string]int64
	CoverImageRef string
	Status        string
	OwnedQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewWorkBuilder() *WorkBuilder {
	now := time.Now()
	return &WorkBuilder{
		ID:            uuid.New(),
		Title:         "Mathématiques 6e",
		Description:   "Manuel scolaire de mathématiques pour la sixième",
		AuthorID:      uuid.New(),
		DisciplineID:  uuid.New(),
		BasePrice:     8500,
		TaxRate:       0.18,
		CoverImageRef: "covers/math-6e.jpg",
		Status:        "PENDING",
		OwnedQuantity: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Build methods
func (w *WorkBuilder) BuildDomain() (*catalog.Work, error) {
	taxRate, err := catalog.NewTaxRate(w.TaxRate)
	if err != nil {
		return nil, err
	}
	return catalog.NewWork(
		w.Title, w.Description,
		w.AuthorID, w.DisciplineID,
		w.BasePrice, taxRate, catalog.PriceOverrides{},
		catalog.Details{CoverImageRef: w.CoverImageRef},
		false,
		w.CreatedAt,
	)
}

func (w *WorkBuilder) BuildSubmitRequestDTO() reqdto.SubmitWorkRequest {
	return reqdto.SubmitWorkRequest{
		Title:          w.Title,
		Description:    w.Description,
		AuthorID:       w.AuthorID,
		DisciplineID:   w.DisciplineID,
		BasePrice:      w.BasePrice,
		TaxRate:        w.TaxRate,
		PriceOverrides: w.Overrides,
		CoverImageRef:  w.CoverImageRef,
	}
}

func (w *WorkBuilder) BuildView() *queries.WorkView {
	return &queries.WorkView{
		ID:           w.ID,
		Title:        w.Title,
		Description:  w.Description,
		AuthorID:     w.AuthorID,
		DisciplineID: w.DisciplineID,
		BasePrice:    w.BasePrice,
		TaxRate:      w.TaxRate,
		Overrides:    w.Overrides,
		Status:       w.Status,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

func (w *WorkBuilder) BuildListItem() *queries.WorkListItem {
	return &queries.WorkListItem{
		ID:           w.ID,
		Title:        w.Title,
		AuthorID:     w.AuthorID,
		DisciplineID: w.DisciplineID,
		BasePrice:    w.BasePrice,
		Status:       w.Status,
		CreatedAt:    w.CreatedAt,
	}
}

func (w *WorkBuilder) BuildSnapshot() *shared.WorkSnapshot {
	return &shared.WorkSnapshot{
		ID:            w.ID,
		Title:         w.Title,
		Description:   w.Description,
		AuthorID:      w.AuthorID,
		DisciplineID:  w.DisciplineID,
		BasePrice:     w.BasePrice,
		TaxRate:       w.TaxRate,
		Overrides:     w.Overrides,
		CoverImageRef: w.CoverImageRef,
		OwnedQuantity: w.OwnedQuantity,
		Status:        w.Status,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

// Fluent builder methods
func (w *WorkBuilder) WithID(id uuid.UUID) *WorkBuilder {
	w.ID = id
	return w
}

func (w *WorkBuilder) WithTitle(title string) *WorkBuilder {
	w.Title = title
	return w
}

func (w *WorkBuilder) WithAuthorID(authorID uuid.UUID) *WorkBuilder {
	w.AuthorID = authorID
	return w
}

func (w *WorkBuilder) WithBasePrice(price int64) *WorkBuilder {
	w.BasePrice = price
	return w
}

func (w *WorkBuilder) WithOverride(clientType string, price int64) *WorkBuilder {
	if w.Overrides == nil {
		w.Overrides = make(map[string]int64)
	}
	w.Overrides[clientType] = price
	return w
}

func (w *WorkBuilder) WithStatus(status string) *WorkBuilder {
	w.Status = status
	return w
}

func (w *WorkBuilder) WithOwnedQuantity(qty int) *WorkBuilder {
	w.OwnedQuantity = qty
	return w
}

func (w *WorkBuilder) AsOnSale() *WorkBuilder {
	w.Status = "ON_SALE"
	return w
}

func (w *WorkBuilder) AsDraft() *WorkBuilder {
	w.Status = "DRAFT"
	return w
}
