package stock

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnknownDepot      = errors.New("no holding for that partner")
)

// AlertLevel classifies total disposable stock against the work's
// thresholds.
type AlertLevel string

const (
	AlertLow    AlertLevel = "LOW"
	AlertNormal AlertLevel = "NORMAL"
	AlertHigh   AlertLevel = "HIGH"
)

// Source designates where a consumption is taken from: the central
// warehouse or one partner depot.
type Source struct {
	partnerID *uuid.UUID
}

func Warehouse() Source {
	return Source{}
}

func Depot(partnerID uuid.UUID) Source {
	id := partnerID
	return Source{partnerID: &id}
}

func (s Source) IsWarehouse() bool {
	return s.partnerID == nil
}

func (s Source) PartnerID() *uuid.UUID {
	return s.partnerID
}

// Ledger is the stock position of one work: the quantity owned at the
// central warehouse plus what each partner depot holds. Mutations are
// all-or-nothing; a move that would drive any quantity negative fails
// without touching the ledger. Callers serialize access per work.
type Ledger struct {
	workID   uuid.UUID
	owned    int
	holdings map[uuid.UUID]int
}

func NewLedger(workID uuid.UUID, owned int, holdings map[uuid.UUID]int) (*Ledger, error) {
	if owned < 0 {
		return nil, ErrInsufficientStock
	}
	h := make(map[uuid.UUID]int, len(holdings))
	for partner, qty := range holdings {
		if qty < 0 {
			return nil, ErrInsufficientStock
		}
		h[partner] = qty
	}
	return &Ledger{workID: workID, owned: owned, holdings: h}, nil
}

// Total is the disposable stock: owned + sum of depot holdings.
func (l *Ledger) Total() int {
	total := l.owned
	for _, qty := range l.holdings {
		total += qty
	}
	return total
}

// Alert classifies Total against the thresholds. A nil or non-positive
// max disables the high-water alert.
func (l *Ledger) Alert(minThreshold int, maxThreshold *int) AlertLevel {
	total := l.Total()
	if total <= minThreshold {
		return AlertLow
	}
	if maxThreshold != nil && *maxThreshold > 0 && total >= *maxThreshold {
		return AlertHigh
	}
	return AlertNormal
}

// Restock increases the owned warehouse quantity.
func (l *Ledger) Restock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	l.owned += quantity
	return nil
}

// TransferToDepot moves stock from the warehouse to a partner depot.
func (l *Ledger) TransferToDepot(partnerID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if l.owned < quantity {
		return ErrInsufficientStock
	}
	l.owned -= quantity
	l.holdings[partnerID] += quantity
	return nil
}

// Consume removes stock from the given source at order fulfillment.
func (l *Ledger) Consume(source Source, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if source.IsWarehouse() {
		if l.owned < quantity {
			return ErrInsufficientStock
		}
		l.owned -= quantity
		return nil
	}
	partnerID := *source.PartnerID()
	held, ok := l.holdings[partnerID]
	if !ok {
		return ErrUnknownDepot
	}
	if held < quantity {
		return ErrInsufficientStock
	}
	l.holdings[partnerID] = held - quantity
	return nil
}

// ReturnToDepot re-credits a partner holding after a confirmed return.
func (l *Ledger) ReturnToDepot(partnerID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	l.holdings[partnerID] += quantity
	return nil
}

func (l *Ledger) WorkID() uuid.UUID {
	return l.workID
}

func (l *Ledger) Owned() int {
	return l.owned
}

// Holdings returns a copy of the per-partner quantities.
func (l *Ledger) Holdings() map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(l.holdings))
	for partner, qty := range l.holdings {
		out[partner] = qty
	}
	return out
}

func (l *Ledger) Holding(partnerID uuid.UUID) int {
	return l.holdings[partnerID]
}
