package menu

import "errors"

var ErrNotFound = errors.New("menu: item not found")

// Item is a catalog entry. Stock here feeds the orchestrator's optimistic
// pre-check only; the inventory ledger holds the authoritative count.
type Item struct {
	ID    string
	Name  string
	Price int64 // cents
	Stock int
}

func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	clone := *i
	return &clone
}
