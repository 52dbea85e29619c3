package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLines() []Line {
	return []Line{
		{ItemID: "1", Name: "Latte", Quantity: 2, UnitPrice: 400},
		{ItemID: "2", Name: "Blueberry Muffin", Quantity: 1, UnitPrice: 300},
	}
}

func TestNewComputesTotalOnce(t *testing.T) {
	o, err := New("o-1", "c-1", sampleLines())
	require.NoError(t, err)

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, int64(1100), o.Total)

	// Later line mutation must not affect the stored total.
	o.Lines[0].UnitPrice = 9999
	assert.Equal(t, int64(1100), o.Total)
}

func TestNewValidation(t *testing.T) {
	_, err := New("o-1", "c-1", nil)
	assert.ErrorIs(t, err, ErrNoLines)

	_, err = New("o-1", "c-1", []Line{{ItemID: "1", Quantity: 0, UnitPrice: 400}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = New("o-1", "c-1", []Line{{ItemID: "1", Quantity: 1, UnitPrice: -1}})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestNewCopiesLines(t *testing.T) {
	lines := sampleLines()
	o, err := New("o-1", "c-1", lines)
	require.NoError(t, err)

	lines[0].Name = "mutated"
	assert.Equal(t, "Latte", o.Lines[0].Name)
}

func TestConfirmFromPending(t *testing.T) {
	o, err := New("o-1", "c-1", sampleLines())
	require.NoError(t, err)

	require.NoError(t, o.Confirm())
	assert.Equal(t, StatusConfirmed, o.Status)
	assert.Empty(t, o.FailureReason)
}

func TestRollBackFromPending(t *testing.T) {
	o, err := New("o-1", "c-1", sampleLines())
	require.NoError(t, err)

	require.NoError(t, o.RollBack("insufficient stock"))
	assert.Equal(t, StatusRolledBack, o.Status)
	assert.Equal(t, "insufficient stock", o.FailureReason)
}

func TestTerminalStates(t *testing.T) {
	confirmed, err := New("o-1", "c-1", sampleLines())
	require.NoError(t, err)
	require.NoError(t, confirmed.Confirm())

	// A replayed confirmation is a no-op, but a rollback after confirmation
	// is a bug in the caller.
	assert.NoError(t, confirmed.Confirm())
	assert.ErrorIs(t, confirmed.RollBack("late refusal"), ErrInvalidStateTransition)
	assert.Equal(t, StatusConfirmed, confirmed.Status)

	rolledBack, err := New("o-2", "c-1", sampleLines())
	require.NoError(t, err)
	require.NoError(t, rolledBack.RollBack("first reason"))

	assert.ErrorIs(t, rolledBack.Confirm(), ErrInvalidStateTransition)
	assert.NoError(t, rolledBack.RollBack("second reason"))
	assert.Equal(t, "second reason", rolledBack.FailureReason)
}

func TestLoyaltyPoints(t *testing.T) {
	o, err := New("o-1", "c-1", []Line{{ItemID: "1", Name: "Espresso", Quantity: 1, UnitPrice: 1150}})
	require.NoError(t, err)

	// One point per whole currency unit; the fractional remainder is dropped.
	assert.Equal(t, int64(11), o.LoyaltyPoints())
}

func TestClone(t *testing.T) {
	o, err := New("o-1", "c-1", sampleLines())
	require.NoError(t, err)

	clone := o.Clone()
	clone.Lines[0].Quantity = 99
	clone.Status = StatusConfirmed

	assert.Equal(t, 2, o.Lines[0].Quantity)
	assert.Equal(t, StatusPending, o.Status)

	var nilOrder *Order
	assert.Nil(t, nilOrder.Clone())
}
