package payment

import (
	"context"

	domorder "github.com/cafekit/orderflow/internal/domain/order"
)

type IDGenerator interface {
	NewID() string
}

// OrderReader is the orchestrator's read path, reached over the network. The
// verifier never mutates orders through it.
type OrderReader interface {
	GetOrder(ctx context.Context, id string) (*domorder.Order, error)
}
