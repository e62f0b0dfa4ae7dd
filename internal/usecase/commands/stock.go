package commands

import (
	"context"
	"errors"

	"librepress/internal/domain/catalog"
	"librepress/internal/domain/stock"
	"librepress/internal/infra"
	"librepress/internal/infra/db"
	"librepress/internal/pkg/clock"
	"librepress/internal/pkg/errs"
	"librepress/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInsufficientStock = errs.New("insufficient stock")
	ErrInvalidQuantity   = errs.New("invalid quantity")
	ErrWorkNotSellable   = errs.New("work is not sellable")
	ErrUnknownDepot      = errs.New("no holding for that partner")
)

// StockResult reports the position after a mutation, including the
// alert level against the work's thresholds.
type StockResult struct {
	WorkID     uuid.UUID
	Owned      int
	Total      int
	AlertLevel string
	WorkStatus string
}

type StockCommands interface {
	Restock(ctx context.Context, workID, actorID uuid.UUID, quantity int) (*StockResult, error)
	TransferToDepot(ctx context.Context, workID, partnerID, actorID uuid.UUID, quantity int) (*StockResult, error)
	Consume(ctx context.Context, workID uuid.UUID, partnerID *uuid.UUID, actorID uuid.UUID, actorRole string, quantity int) (*StockResult, error)
	ReturnToDepot(ctx context.Context, workID, partnerID, actorID uuid.UUID, quantity int) (*StockResult, error)
}

type stockUseCaseImpl struct {
	workRepo     WorkRepository
	holdingRepo  HoldingRepository
	movementRepo MovementRepository
	pool         *pgxpool.Pool
	clock        clock.Clock
	minThreshold int
	maxThreshold int
}

func NewStockUseCase(
	workRepo WorkRepository,
	holdingRepo HoldingRepository,
	movementRepo MovementRepository,
	pool *pgxpool.Pool,
	clk clock.Clock,
	defaultMinThreshold, defaultMaxThreshold int,
) StockCommands {
	return &stockUseCaseImpl{
		workRepo:     workRepo,
		holdingRepo:  holdingRepo,
		movementRepo: movementRepo,
		pool:         pool,
		clock:        clk,
		minThreshold: defaultMinThreshold,
		maxThreshold: defaultMaxThreshold,
	}
}

func (uc *stockUseCaseImpl) Restock(ctx context.Context, workID, actorID uuid.UUID, quantity int) (*StockResult, error) {
	return uc.mutate(ctx, workID, func(tx db.DBTX, work *catalog.Work, ledger *stock.Ledger) (*shared.MovementRecord, error) {
		if err := ledger.Restock(quantity); err != nil {
			return nil, err
		}
		if err := uc.workRepo.UpdateOwnedQuantity(ctx, tx, workID, ledger.Owned()); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return &shared.MovementRecord{
			Kind:  shared.MovementRestock,
			Delta: quantity,
		}, nil
	}, actorID)
}

func (uc *stockUseCaseImpl) TransferToDepot(ctx context.Context, workID, partnerID, actorID uuid.UUID, quantity int) (*StockResult, error) {
	return uc.mutate(ctx, workID, func(tx db.DBTX, work *catalog.Work, ledger *stock.Ledger) (*shared.MovementRecord, error) {
		if err := ledger.TransferToDepot(partnerID, quantity); err != nil {
			return nil, err
		}
		if err := uc.workRepo.UpdateOwnedQuantity(ctx, tx, workID, ledger.Owned()); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := uc.holdingRepo.Upsert(ctx, tx, workID, partnerID, ledger.Holding(partnerID)); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		pid := partnerID
		return &shared.MovementRecord{
			Kind:      shared.MovementTransfer,
			Delta:     quantity,
			PartnerID: &pid,
		}, nil
	}, actorID)
}

// Consume takes stock out at order fulfillment. Client-facing roles
// may only consume sellable works; the operator can force a
// consumption on suspended or unpublished ones. Driving the total to
// zero flips an ON_SALE work to OUT_OF_STOCK in the same transaction.
func (uc *stockUseCaseImpl) Consume(ctx context.Context, workID uuid.UUID, partnerID *uuid.UUID, actorID uuid.UUID, actorRole string, quantity int) (*StockResult, error) {
	return uc.mutate(ctx, workID, func(tx db.DBTX, work *catalog.Work, ledger *stock.Ledger) (*shared.MovementRecord, error) {
		if !work.Status().AllowsConsumption(catalog.ActorRole(actorRole)) {
			return nil, ErrWorkNotSellable
		}

		source := stock.Warehouse()
		if partnerID != nil {
			source = stock.Depot(*partnerID)
		}
		if err := ledger.Consume(source, quantity); err != nil {
			return nil, err
		}

		if source.IsWarehouse() {
			if err := uc.workRepo.UpdateOwnedQuantity(ctx, tx, workID, ledger.Owned()); err != nil {
				return nil, errs.Mark(err, ErrDatabaseOperationFailed)
			}
		} else {
			if err := uc.holdingRepo.Upsert(ctx, tx, workID, *partnerID, ledger.Holding(*partnerID)); err != nil {
				return nil, errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		if ledger.Total() == 0 {
			work.MarkOutOfStock(uc.clock.Now())
			if err := uc.workRepo.UpdateLifecycle(ctx, tx, work); err != nil {
				return nil, errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		return &shared.MovementRecord{
			Kind:      shared.MovementConsume,
			Delta:     -quantity,
			PartnerID: partnerID,
		}, nil
	}, actorID)
}

func (uc *stockUseCaseImpl) ReturnToDepot(ctx context.Context, workID, partnerID, actorID uuid.UUID, quantity int) (*StockResult, error) {
	return uc.mutate(ctx, workID, func(tx db.DBTX, work *catalog.Work, ledger *stock.Ledger) (*shared.MovementRecord, error) {
		if err := ledger.ReturnToDepot(partnerID, quantity); err != nil {
			return nil, err
		}
		if err := uc.holdingRepo.Upsert(ctx, tx, workID, partnerID, ledger.Holding(partnerID)); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		pid := partnerID
		return &shared.MovementRecord{
			Kind:      shared.MovementReturn,
			Delta:     quantity,
			PartnerID: &pid,
		}, nil
	}, actorID)
}

// mutate runs one stock mutation under the work's row lock: load the
// work and its holdings, apply, journal the movement, report the new
// position.
func (uc *stockUseCaseImpl) mutate(
	ctx context.Context,
	workID uuid.UUID,
	apply func(tx db.DBTX, work *catalog.Work, ledger *stock.Ledger) (*shared.MovementRecord, error),
	actorID uuid.UUID,
) (*StockResult, error) {
	return shared.WithDefaultRetry(ctx, uc.pool, func(tx db.DBTX) (*StockResult, error) {
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

		movement, err := apply(tx, work, ledger)
		if err != nil {
			return nil, uc.translateLedgerErr(err)
		}

		movement.ID = uuid.New()
		movement.WorkID = workID
		movement.ActorID = actorID
		movement.OccurredAt = uc.clock.Now()
		if err = uc.movementRepo.Append(ctx, tx, *movement); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return &StockResult{
			WorkID:     workID,
			Owned:      ledger.Owned(),
			Total:      ledger.Total(),
			AlertLevel: string(ledger.Alert(uc.resolveMinThreshold(work), uc.resolveMaxThreshold(work))),
			WorkStatus: string(work.Status()),
		}, nil
	})
}

func (uc *stockUseCaseImpl) translateLedgerErr(err error) error {
	switch {
	case errors.Is(err, stock.ErrInvalidQuantity):
		return errs.Mark(err, ErrInvalidQuantity)
	case errors.Is(err, stock.ErrInsufficientStock):
		return errs.Mark(err, ErrInsufficientStock)
	case errors.Is(err, stock.ErrUnknownDepot):
		return errs.Mark(err, ErrUnknownDepot)
	default:
		return err
	}
}

func (uc *stockUseCaseImpl) resolveMinThreshold(work *catalog.Work) int {
	if t := work.MinThreshold(); t != nil {
		return *t
	}
	return uc.minThreshold
}

func (uc *stockUseCaseImpl) resolveMaxThreshold(work *catalog.Work) *int {
	if t := work.MaxThreshold(); t != nil {
		return t
	}
	if uc.maxThreshold > 0 {
		t := uc.maxThreshold
		return &t
	}
	return nil
}
