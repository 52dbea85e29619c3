package order

import (
	"context"

	domcust "github.com/cafekit/orderflow/internal/domain/customer"
	dommenu "github.com/cafekit/orderflow/internal/domain/menu"
)

type IDGenerator interface {
	NewID() string
}

// CustomerDirectory is the Identity Lookup collaborator.
type CustomerDirectory interface {
	GetCustomer(ctx context.Context, id string) (*domcust.Customer, error)
	AwardPoints(ctx context.Context, id string, points int64) (*domcust.Customer, error)
}

// Catalog is the Catalog Reader collaborator.
type Catalog interface {
	GetItem(ctx context.Context, id string) (*dommenu.Item, error)
}

type ReserveLine struct {
	ItemID   string
	Quantity int
}

type Shortfall struct {
	ItemID    string
	Requested int
	Available int
}

// StockLedger is the inventory collaborator. Reserve is atomic across the
// whole batch: either every quantity is decremented or none are. A non-empty
// shortfall list means nothing was written.
type StockLedger interface {
	Reserve(ctx context.Context, lines []ReserveLine) ([]Shortfall, error)
}
