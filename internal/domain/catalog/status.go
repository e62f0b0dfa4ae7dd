package catalog

// Status is the lifecycle state of a work, from author submission to
// sale or discontinuation.
type Status string

const (
	StatusDraft        Status = "DRAFT"
	StatusPending      Status = "PENDING"
	StatusPublished    Status = "PUBLISHED"
	StatusRejected     Status = "REJECTED"
	StatusOnSale       Status = "ON_SALE"
	StatusOutOfStock   Status = "OUT_OF_STOCK"
	StatusDiscontinued Status = "DISCONTINUED"
	StatusSuspended    Status = "SUSPENDED"
)

func (s Status) String() string {
	return string(s)
}

func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusDraft, StatusPending, StatusPublished, StatusRejected,
		StatusOnSale, StatusOutOfStock, StatusDiscontinued, StatusSuspended:
		return Status(raw), true
	}
	return "", false
}

// IsSaleStatus reports whether s is one of the post-publication sale
// states an operator moves a work between.
func (s Status) IsSaleStatus() bool {
	switch s {
	case StatusOnSale, StatusOutOfStock, StatusDiscontinued, StatusSuspended:
		return true
	}
	return false
}

// IsSellable reports whether non-operator clients may order the work.
func (s Status) IsSellable() bool {
	return s == StatusPublished || s == StatusOnSale
}

// AllowsConsumption reports whether stock may still be consumed against
// the work on behalf of the given actor. Discontinued works are closed
// to everyone; suspension blocks clients but not the operator.
func (s Status) AllowsConsumption(role ActorRole) bool {
	if s == StatusDiscontinued {
		return false
	}
	if role == RoleOperator {
		return true
	}
	return s.IsSellable()
}

// saleTransitionSources are the states an operator-driven sale-status
// change may start from. Discontinuation is final; suspension is not.
func (s Status) canEnterSaleStatus() bool {
	switch s {
	case StatusPublished, StatusOnSale, StatusOutOfStock, StatusSuspended:
		return true
	}
	return false
}
