package mongodb

import (
	"context"
	"errors"
	"time"

	domain "github.com/cafekit/orderflow/internal/domain/customer"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CustomerRepository struct {
	collection *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{collection: db.Collection("customers")}
}

type customerDoc struct {
	CustomerID    string    `bson:"customer_id"`
	Name          string    `bson:"name"`
	Email         string    `bson:"email"`
	LoyaltyPoints int64     `bson:"loyalty_points"`
	RegisteredAt  time.Time `bson:"registered_at"`
}

func (r *CustomerRepository) Insert(ctx context.Context, c *domain.Customer) error {
	_, err := r.collection.InsertOne(ctx, toCustomerDoc(c))
	return err
}

func (r *CustomerRepository) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return r.findOne(ctx, bson.M{"customer_id": id})
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"customer_id": c.ID}, toCustomerDoc(c))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *CustomerRepository) findOne(ctx context.Context, filter bson.M) (*domain.Customer, error) {
	var doc customerDoc
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &domain.Customer{
		ID:            doc.CustomerID,
		Name:          doc.Name,
		Email:         doc.Email,
		LoyaltyPoints: doc.LoyaltyPoints,
		RegisteredAt:  doc.RegisteredAt,
	}, nil
}

func toCustomerDoc(c *domain.Customer) customerDoc {
	return customerDoc{
		CustomerID:    c.ID,
		Name:          c.Name,
		Email:         c.Email,
		LoyaltyPoints: c.LoyaltyPoints,
		RegisteredAt:  c.RegisteredAt,
	}
}
