package order

// State implements the state pattern for the fulfillment lifecycle. The only
// compensating transition is pending -> rolled_back; both confirmed and
// rolled_back are terminal.
type State interface {
	Status() Status
	OnStockReserved(o *Order) (State, error)
	OnStockRejected(o *Order, reason string) (State, error)
}

func (o *Order) state() State {
	switch o.Status {
	case StatusConfirmed:
		return confirmedState{}
	case StatusRolledBack:
		return rolledBackState{}
	default:
		return pendingState{}
	}
}

type pendingState struct{}

func (pendingState) Status() Status { return StatusPending }

func (pendingState) OnStockReserved(o *Order) (State, error) {
	o.FailureReason = ""
	return confirmedState{}, nil
}

func (pendingState) OnStockRejected(o *Order, reason string) (State, error) {
	o.FailureReason = reason
	return rolledBackState{}, nil
}

type confirmedState struct{}

func (confirmedState) Status() Status { return StatusConfirmed }

func (confirmedState) OnStockReserved(*Order) (State, error) {
	// Replayed confirmations are harmless.
	return confirmedState{}, nil
}

func (confirmedState) OnStockRejected(*Order, string) (State, error) {
	return nil, ErrInvalidStateTransition
}

type rolledBackState struct{}

func (rolledBackState) Status() Status { return StatusRolledBack }

func (rolledBackState) OnStockReserved(*Order) (State, error) {
	return nil, ErrInvalidStateTransition
}

func (rolledBackState) OnStockRejected(o *Order, reason string) (State, error) {
	o.FailureReason = reason
	return rolledBackState{}, nil
}
