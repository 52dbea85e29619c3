package customer

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("customer: not found")
	ErrDuplicateEmail = errors.New("customer: email already registered")
	ErrInvalidPoints  = errors.New("customer: points must be zero or greater")
)

// WelcomeBonus is credited to every newly registered customer.
const WelcomeBonus int64 = 10

type Customer struct {
	ID            string
	Name          string
	Email         string
	LoyaltyPoints int64
	RegisteredAt  time.Time
}

func New(id, name, email string) *Customer {
	return &Customer{
		ID:            id,
		Name:          name,
		Email:         email,
		LoyaltyPoints: WelcomeBonus,
		RegisteredAt:  time.Now().UTC(),
	}
}

// AwardPoints credits loyalty points. Awards are additive only; negative
// amounts are rejected.
func (c *Customer) AwardPoints(points int64) error {
	if points < 0 {
		return ErrInvalidPoints
	}
	c.LoyaltyPoints += points
	return nil
}

func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
