package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingTitle           = errors.New("title is required")
	ErrMissingDescription     = errors.New("description is required")
	ErrMissingDiscipline      = errors.New("discipline is required")
	ErrMissingAuthor          = errors.New("author is required")
	ErrMissingRejectionReason = errors.New("rejection reason is required")
	ErrInvalidTransition      = errors.New("invalid lifecycle transition")
	ErrNoStockForSale         = errors.New("cannot put a work on sale without stock")
	ErrInvalidThresholds      = errors.New("stock thresholds must be non-negative and min <= max")
)

// Work is a sellable catalog item owned by the publishing house.
type Work struct {
	id              uuid.UUID
	title           string
	description     string
	authorID        uuid.UUID
	disciplineID    uuid.UUID
	basePrice       int64
	taxRate         TaxRate
	overrides       PriceOverrides
	details         Details
	minThreshold    *int
	maxThreshold    *int
	status          Status
	submittedAt     *time.Time
	reviewedAt      *time.Time
	reviewerID      *uuid.UUID
	publishedAt     *time.Time
	rejectionReason *string
	createdAt       time.Time
	updatedAt       time.Time
}

// NewWork creates a work in one of the two entry states. Direct
// submissions (asDraft=false) must already satisfy the submission
// guards; drafts are validated later by Submit.
func NewWork(
	title, description string,
	authorID, disciplineID uuid.UUID,
	basePrice int64,
	taxRate TaxRate,
	overrides PriceOverrides,
	details Details,
	asDraft bool,
	now time.Time,
) (*Work, error) {
	if basePrice < 0 {
		return nil, ErrNegativePrice
	}

	w := &Work{
		id:           uuid.New(),
		title:        strings.TrimSpace(title),
		description:  strings.TrimSpace(description),
		authorID:     authorID,
		disciplineID: disciplineID,
		basePrice:    basePrice,
		taxRate:      taxRate,
		overrides:    overrides,
		details:      details,
		status:       StatusDraft,
		createdAt:    now,
		updatedAt:    now,
	}

	if asDraft {
		return w, nil
	}
	if err := w.Submit(now); err != nil {
		return nil, err
	}
	return w, nil
}

func ReconstructWork(
	id uuid.UUID,
	title, description string,
	authorID, disciplineID uuid.UUID,
	basePrice int64,
	taxRate TaxRate,
	overrides PriceOverrides,
	details Details,
	minThreshold, maxThreshold *int,
	status Status,
	submittedAt, reviewedAt *time.Time,
	reviewerID *uuid.UUID,
	publishedAt *time.Time,
	rejectionReason *string,
	createdAt, updatedAt time.Time,
) *Work {
	return &Work{
		id:              id,
		title:           title,
		description:     description,
		authorID:        authorID,
		disciplineID:    disciplineID,
		basePrice:       basePrice,
		taxRate:         taxRate,
		overrides:       overrides,
		details:         details,
		minThreshold:    minThreshold,
		maxThreshold:    maxThreshold,
		status:          status,
		submittedAt:     submittedAt,
		reviewedAt:      reviewedAt,
		reviewerID:      reviewerID,
		publishedAt:     publishedAt,
		rejectionReason: rejectionReason,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Submit moves a draft into the review queue. Guards: non-empty title
// and description, a designated discipline and author.
func (w *Work) Submit(now time.Time) error {
	if w.status != StatusDraft {
		return ErrInvalidTransition
	}
	if w.title == "" {
		return ErrMissingTitle
	}
	if w.description == "" {
		return ErrMissingDescription
	}
	if w.disciplineID == uuid.Nil {
		return ErrMissingDiscipline
	}
	if w.authorID == uuid.Nil {
		return ErrMissingAuthor
	}
	w.status = StatusPending
	t := now
	w.submittedAt = &t
	w.updatedAt = now
	return nil
}

// Approve publishes a pending work. The operator may reassign the
// author at approval time; the work must end up with one either way.
func (w *Work) Approve(reviewerID uuid.UUID, newAuthorID *uuid.UUID, now time.Time) error {
	if w.status != StatusPending {
		return ErrInvalidTransition
	}
	if newAuthorID != nil {
		w.authorID = *newAuthorID
	}
	if w.authorID == uuid.Nil {
		return ErrMissingAuthor
	}
	w.status = StatusPublished
	t := now
	w.reviewedAt = &t
	w.publishedAt = &t
	w.reviewerID = &reviewerID
	w.rejectionReason = nil
	w.updatedAt = now
	return nil
}

// Reject refuses a pending work. A non-empty reason is mandatory; the
// reason is present on the record if and only if the work is rejected.
func (w *Work) Reject(reviewerID uuid.UUID, reason string, now time.Time) error {
	if w.status != StatusPending {
		return ErrInvalidTransition
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrMissingRejectionReason
	}
	w.status = StatusRejected
	t := now
	w.reviewedAt = &t
	w.reviewerID = &reviewerID
	w.rejectionReason = &reason
	w.updatedAt = now
	return nil
}

// Resubmit puts a rejected work back in the review queue and clears the
// previous review outcome.
func (w *Work) Resubmit(now time.Time) error {
	if w.status != StatusRejected {
		return ErrInvalidTransition
	}
	w.status = StatusPending
	t := now
	w.submittedAt = &t
	w.reviewedAt = nil
	w.reviewerID = nil
	w.rejectionReason = nil
	w.updatedAt = now
	return nil
}

// ChangeSaleStatus applies an operator-driven sale-status move.
// ON_SALE additionally requires disposable stock.
func (w *Work) ChangeSaleStatus(target Status, totalStock int, now time.Time) error {
	if !target.IsSaleStatus() {
		return ErrInvalidTransition
	}
	if !w.status.canEnterSaleStatus() {
		return ErrInvalidTransition
	}
	if target == StatusOnSale && totalStock <= 0 {
		return ErrNoStockForSale
	}
	w.status = target
	w.updatedAt = now
	return nil
}

// MarkOutOfStock is the engine-computed flip when a consumption drives
// total stock to zero on a work that was on sale.
func (w *Work) MarkOutOfStock(now time.Time) {
	if w.status != StatusOnSale {
		return
	}
	w.status = StatusOutOfStock
	w.updatedAt = now
}

func (w *Work) SetThresholds(min, max *int) error {
	if min != nil && *min < 0 {
		return ErrInvalidThresholds
	}
	if max != nil && *max < 0 {
		return ErrInvalidThresholds
	}
	if min != nil && max != nil && *min > *max {
		return ErrInvalidThresholds
	}
	w.minThreshold = min
	w.maxThreshold = max
	return nil
}

// UnitPriceFor resolves the unit price for a pricing tier.
func (w *Work) UnitPriceFor(ct ClientType) int64 {
	return w.overrides.UnitPrice(ct, w.basePrice)
}

func (w *Work) ID() uuid.UUID              { return w.id }
func (w *Work) Title() string              { return w.title }
func (w *Work) Description() string        { return w.description }
func (w *Work) AuthorID() uuid.UUID        { return w.authorID }
func (w *Work) DisciplineID() uuid.UUID    { return w.disciplineID }
func (w *Work) BasePrice() int64           { return w.basePrice }
func (w *Work) TaxRate() TaxRate           { return w.taxRate }
func (w *Work) Overrides() PriceOverrides  { return w.overrides }
func (w *Work) Details() Details           { return w.details }
func (w *Work) MinThreshold() *int         { return w.minThreshold }
func (w *Work) MaxThreshold() *int         { return w.maxThreshold }
func (w *Work) Status() Status             { return w.status }
func (w *Work) SubmittedAt() *time.Time    { return w.submittedAt }
func (w *Work) ReviewedAt() *time.Time     { return w.reviewedAt }
func (w *Work) ReviewerID() *uuid.UUID     { return w.reviewerID }
func (w *Work) PublishedAt() *time.Time    { return w.publishedAt }
func (w *Work) RejectionReason() *string   { return w.rejectionReason }
func (w *Work) CreatedAt() time.Time       { return w.createdAt }
func (w *Work) UpdatedAt() time.Time       { return w.updatedAt }
