package commands

import (
	"context"
	"time"

	"librepress/internal/domain/catalog"
	"librepress/internal/domain/discount"
	"librepress/internal/infra"
	"librepress/internal/infra/db"
	"librepress/internal/pkg/clock"
	"librepress/internal/pkg/errs"
	"librepress/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrDiscountRuleNotFound = errs.New("discount rule not found")
	ErrDuplicateCode        = errs.New("promotional code already in use")
)

type DefineRuleRequest struct {
	Code         *string
	Label        string
	RateType     string
	RateValue    float64
	MinQuantity  int
	ScopeWorkIDs []uuid.UUID
	ClientType   *string
	StartAt      *time.Time
	EndAt        *time.Time
	Timezone     string
}

type DefineRuleResult struct {
	RuleID uuid.UUID
}

type DiscountCommands interface {
	DefineRule(ctx context.Context, req DefineRuleRequest) (*DefineRuleResult, error)
	DeactivateRule(ctx context.Context, ruleID uuid.UUID) error
}

type discountUseCaseImpl struct {
	ruleRepo DiscountRuleRepository
	pool     *pgxpool.Pool
	clock    clock.Clock
}

func NewDiscountUseCase(ruleRepo DiscountRuleRepository, pool *pgxpool.Pool, clk clock.Clock) DiscountCommands {
	return &discountUseCaseImpl{ruleRepo: ruleRepo, pool: pool, clock: clk}
}

// DefineRule creates a standing discount or a promotional code. At
// most one ACTIVE rule may carry a given code; retired codes are
// reusable.
func (uc *discountUseCaseImpl) DefineRule(ctx context.Context, req DefineRuleRequest) (*DefineRuleResult, error) {
	rule, err := uc.buildRule(req)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	return shared.WithDefaultRetry(ctx, uc.pool, func(tx db.DBTX) (*DefineRuleResult, error) {
		if code := rule.Code(); code != nil {
			taken, cerr := uc.ruleRepo.ExistsActiveCode(ctx, tx, code.String())
			if cerr != nil {
				return nil, errs.Mark(cerr, ErrDatabaseOperationFailed)
			}
			if taken {
				return nil, ErrDuplicateCode
			}
		}

		if cerr := uc.ruleRepo.Create(ctx, tx, rule); cerr != nil {
			// Unique partial index on active codes backs the check above
			// against concurrent definitions.
			if infra.IsKind(cerr, infra.KindDuplicateKey) {
				return nil, ErrDuplicateCode
			}
			return nil, errs.Mark(cerr, ErrDatabaseOperationFailed)
		}
		return &DefineRuleResult{RuleID: rule.ID()}, nil
	})
}

func (uc *discountUseCaseImpl) DeactivateRule(ctx context.Context, ruleID uuid.UUID) error {
	_, err := shared.WithDefaultRetry(ctx, uc.pool, func(tx db.DBTX) (struct{}, error) {
		var zero struct{}

		if _, ferr := uc.ruleRepo.FindByIDForUpdate(ctx, tx, ruleID); ferr != nil {
			if infra.IsKind(ferr, infra.KindNotFound) {
				return zero, ErrDiscountRuleNotFound
			}
			return zero, errs.Mark(ferr, ErrDatabaseOperationFailed)
		}
		if serr := uc.ruleRepo.SetActive(ctx, tx, ruleID, false); serr != nil {
			return zero, errs.Mark(serr, ErrDatabaseOperationFailed)
		}
		return zero, nil
	})
	return err
}

func (uc *discountUseCaseImpl) buildRule(req DefineRuleRequest) (*discount.Rule, error) {
	var code *discount.Code
	if req.Code != nil {
		c, err := discount.NewCode(*req.Code)
		if err != nil {
			return nil, err
		}
		code = &c
	}

	rate, err := discount.NewRate(discount.RateType(req.RateType), req.RateValue)
	if err != nil {
		return nil, err
	}

	scope := discount.ScopeAllItems()
	if len(req.ScopeWorkIDs) > 0 {
		scope = discount.ScopeWorks(req.ScopeWorkIDs)
	}

	var clientType *catalog.ClientType
	if req.ClientType != nil {
		ct, perr := catalog.ParseClientType(*req.ClientType)
		if perr != nil {
			return nil, perr
		}
		clientType = &ct
	}

	tz := req.Timezone
	if tz == "" {
		tz = "UTC"
	}
	window, err := discount.NewWindow(req.StartAt, req.EndAt, tz)
	if err != nil {
		return nil, err
	}

	minQty := req.MinQuantity
	if minQty == 0 {
		minQty = 1
	}

	return discount.NewRule(uuid.New(), code, req.Label, rate, minQty, scope, clientType, window, uc.clock.Now())
}
