package commands

import (
	"context"
	"encoding/json"
	"errors"

	"librepress/internal/domain/catalog"
	"librepress/internal/infra"
	"librepress/internal/infra/db"
	"librepress/internal/pkg/clock"
	"librepress/internal/pkg/errs"
	"librepress/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrWorkNotFound            = errs.New("work not found")
	ErrInvalidTransition       = errs.New("invalid lifecycle transition")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrReferentialConflict     = errs.New("work is referenced by existing order lines")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type SubmitWorkRequest struct {
	Title        string
	Description  string
	AuthorID     uuid.UUID
	DisciplineID uuid.UUID
	BasePrice    int64
	TaxRate      float64
	Overrides    map[string]int64
	Details      catalog.Details
	AsDraft      bool
}

type SubmitWorkResult struct {
	WorkID uuid.UUID
	Status string
}

// TransitionResult reports a lifecycle move so the handler can echo
// both sides of the transition.
type TransitionResult struct {
	WorkID    uuid.UUID
	OldStatus string
	NewStatus string
}

type CatalogCommands interface {
	SubmitWork(ctx context.Context, req SubmitWorkRequest) (*SubmitWorkResult, error)
	SubmitDraft(ctx context.Context, workID uuid.UUID) (*TransitionResult, error)
	ApproveWork(ctx context.Context, workID, reviewerID uuid.UUID, newAuthorID *uuid.UUID) (*TransitionResult, error)
	RejectWork(ctx context.Context, workID, reviewerID uuid.UUID, reason string) (*TransitionResult, error)
	ResubmitWork(ctx context.Context, workID uuid.UUID) (*TransitionResult, error)
	SetSaleStatus(ctx context.Context, workID uuid.UUID, target string) (*TransitionResult, error)
	DeleteWork(ctx context.Context, workID uuid.UUID) error
}

type catalogUseCaseImpl struct {
	workRepo         WorkRepository
	holdingRepo      HoldingRepository
	notificationRepo NotificationRepository
	pool             *pgxpool.Pool
	clock            clock.Clock
}

func NewCatalogUseCase(
	workRepo WorkRepository,
	holdingRepo HoldingRepository,
	notificationRepo NotificationRepository,
	pool *pgxpool.Pool,
	clk clock.Clock,
) CatalogCommands {
	return &catalogUseCaseImpl{
		workRepo:         workRepo,
		holdingRepo:      holdingRepo,
		notificationRepo: notificationRepo,
		pool:             pool,
		clock:            clk,
	}
}

func (uc *catalogUseCaseImpl) SubmitWork(ctx context.Context, req SubmitWorkRequest) (*SubmitWorkResult, error) {
	taxRate, err := catalog.NewTaxRate(req.TaxRate)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var overrides catalog.PriceOverrides
	if len(req.Overrides) > 0 {
		raw := make(map[catalog.ClientType]int64, len(req.Overrides))
		for ct, price := range req.Overrides {
			parsed, perr := catalog.ParseClientType(ct)
			if perr != nil {
				return nil, errs.Mark(perr, ErrDomainValidation)
			}
			raw[parsed] = price
		}
		overrides, err = catalog.NewPriceOverrides(raw)
		if err != nil {
			return nil, errs.Mark(err, ErrDomainValidation)
		}
	}

	work, err := catalog.NewWork(
		req.Title, req.Description,
		req.AuthorID, req.DisciplineID,
		req.BasePrice, taxRate, overrides, req.Details,
		req.AsDraft,
		uc.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	return shared.WithDefaultRetry(ctx, uc.pool, func(tx db.DBTX) (*SubmitWorkResult, error) {
		if rerr := uc.workRepo.Create(ctx, tx, work); rerr != nil {
			return nil, errs.Mark(rerr, ErrDatabaseOperationFailed)
		}
		if work.Status() == catalog.StatusPending {
			if nerr := uc.notifyTransition(ctx, tx, work.ID(), string(catalog.StatusDraft), string(catalog.StatusPending)); nerr != nil {
				return nil, errs.Mark(nerr, ErrDatabaseOperationFailed)
			}
		}
		return &SubmitWorkResult{WorkID: work.ID(), Status: string(work.Status())}, nil
	})
}

func (uc *catalogUseCaseImpl) SubmitDraft(ctx context.Context, workID uuid.UUID) (*TransitionResult, error) {
	return uc.transition(ctx, workID, func(w *catalog.Work) error {
		return w.Submit(uc.clock.Now())
	})
}

func (uc *catalogUseCaseImpl) ApproveWork(ctx context.Context, workID, reviewerID uuid.UUID, newAuthorID *uuid.UUID) (*TransitionResult, error) {
	return uc.transition(ctx, workID, func(w *catalog.Work) error {
		return w.Approve(reviewerID, newAuthorID, uc.clock.Now())
	})
}

func (uc *catalogUseCaseImpl) RejectWork(ctx context.Context, workID, reviewerID uuid.UUID, reason string) (*TransitionResult, error) {
	return uc.transition(ctx, workID, func(w *catalog.Work) error {
		return w.Reject(reviewerID, reason, uc.clock.Now())
	})
}

func (uc *catalogUseCaseImpl) ResubmitWork(ctx context.Context, workID uuid.UUID) (*TransitionResult, error) {
	return uc.transition(ctx, workID, func(w *catalog.Work) error {
		return w.Resubmit(uc.clock.Now())
	})
}

// SetSaleStatus applies an operator-driven sale-status move. ON_SALE
// needs disposable stock, so the ledger is read under the same lock.
func (uc *catalogUseCaseImpl) SetSaleStatus(ctx context.Context, workID uuid.UUID, target string) (*TransitionResult, error) {
	status, ok := catalog.ParseStatus(target)
	if !ok {
		return nil, ErrInvalidTransition
	}

	return shared.WithDefaultRetry(ctx, uc.pool, func(tx db.DBTX) (*TransitionResult, error) {
		snap, err := uc.workRepo.FindByIDForUpdate(ctx, tx, workID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrWorkNotFound
			}
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		work, err := snap.Domain()
		if err != nil {
			return nil, errs.Mark(err, ErrDomainValidation)
		}

		holdings, err := uc.holdingRepo.ListByWork(ctx, tx, workID)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		ledger, err := snap.Ledger(holdings)
		if err != nil {
			return nil, errs.Mark(err, ErrDomainValidation)
		}

		oldStatus := string(work.Status())
		if err = work.ChangeSaleStatus(status, ledger.Total(), uc.clock.Now()); err != nil {
			return nil, errs.Mark(err, ErrInvalidTransition)
		}

		if err = uc.workRepo.UpdateLifecycle(ctx, tx, work); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err = uc.notifyTransition(ctx, tx, workID, oldStatus, string(work.Status())); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return &TransitionResult{WorkID: workID, OldStatus: oldStatus, NewStatus: string(work.Status())}, nil
	})
}

// DeleteWork removes a work that no order line references. Works with
// sales history must be discontinued instead.
func (uc *catalogUseCaseImpl) DeleteWork(ctx context.Context, workID uuid.UUID) error {
	_, err := shared.WithDefaultRetry(ctx, uc.pool, func(tx db.DBTX) (struct{}, error) {
		var zero struct{}

		if _, ferr := uc.workRepo.FindByIDForUpdate(ctx, tx, workID); ferr != nil {
			if infra.IsKind(ferr, infra.KindNotFound) {
				return zero, ErrWorkNotFound
			}
			return zero, errs.Mark(ferr, ErrDatabaseOperationFailed)
		}

		referenced, rerr := uc.workRepo.HasOrderLines(ctx, tx, workID)
		if rerr != nil {
			return zero, errs.Mark(rerr, ErrDatabaseOperationFailed)
		}
		if referenced {
			return zero, ErrReferentialConflict
		}

		if derr := uc.workRepo.Delete(ctx, tx, workID); derr != nil {
			if infra.IsKind(derr, infra.KindForeignKeyViolated) {
				return zero, ErrReferentialConflict
			}
			return zero, errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		return zero, nil
	})
	return err
}

func (uc *catalogUseCaseImpl) transition(ctx context.Context, workID uuid.UUID, apply func(*catalog.Work) error) (*TransitionResult, error) {
	return shared.WithDefaultRetry(ctx, uc.pool, func(tx db.DBTX) (*TransitionResult, error) {
		snap, err := uc.workRepo.FindByIDForUpdate(ctx, tx, workID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrWorkNotFound
			}
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		work, err := snap.Domain()
		if err != nil {
			return nil, errs.Mark(err, ErrDomainValidation)
		}

		oldStatus := string(work.Status())
		if err = apply(work); err != nil {
			if errors.Is(err, catalog.ErrInvalidTransition) {
				return nil, errs.Mark(err, ErrInvalidTransition)
			}
			return nil, errs.Mark(err, ErrDomainValidation)
		}

		if err = uc.workRepo.UpdateLifecycle(ctx, tx, work); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err = uc.notifyTransition(ctx, tx, workID, oldStatus, string(work.Status())); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return &TransitionResult{WorkID: workID, OldStatus: oldStatus, NewStatus: string(work.Status())}, nil
	})
}

func (uc *catalogUseCaseImpl) notifyTransition(ctx context.Context, tx db.DBTX, workID uuid.UUID, oldStatus, newStatus string) error {
	payload, err := json.Marshal(map[string]any{
		"work_id":    workID,
		"old_status": oldStatus,
		"new_status": newStatus,
	})
	if err != nil {
		return err
	}
	return uc.notificationRepo.CreateJob(ctx, tx, "email", "work_status_changed", payload)
}
