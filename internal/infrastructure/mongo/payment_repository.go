package mongodb

import (
	"context"
	"errors"
	"time"

	domain "github.com/cafekit/orderflow/internal/domain/payment"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type PaymentRepository struct {
	collection *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{collection: db.Collection("payments")}
}

type paymentDoc struct {
	PaymentID      string    `bson:"payment_id"`
	OrderID        string    `bson:"order_id"`
	CustomerID     string    `bson:"customer_id"`
	AmountCents    int64     `bson:"amount_cents"`
	Status         string    `bson:"status"`
	TransactionRef string    `bson:"transaction_reference"`
	CreatedAt      time.Time `bson:"created_at"`
}

func (r *PaymentRepository) Insert(ctx context.Context, p *domain.Payment) error {
	_, err := r.collection.InsertOne(ctx, paymentDoc{
		PaymentID:      p.ID,
		OrderID:        p.OrderID,
		CustomerID:     p.CustomerID,
		AmountCents:    p.Amount,
		Status:         string(p.Status),
		TransactionRef: p.TransactionRef,
		CreatedAt:      p.CreatedAt,
	})
	return err
}

func (r *PaymentRepository) Get(ctx context.Context, id string) (*domain.Payment, error) {
	return r.findOne(ctx, bson.M{"payment_id": id})
}

func (r *PaymentRepository) FindByOrder(ctx context.Context, orderID string) (*domain.Payment, error) {
	return r.findOne(ctx, bson.M{"order_id": orderID})
}

func (r *PaymentRepository) findOne(ctx context.Context, filter bson.M) (*domain.Payment, error) {
	var doc paymentDoc
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &domain.Payment{
		ID:             doc.PaymentID,
		OrderID:        doc.OrderID,
		CustomerID:     doc.CustomerID,
		Amount:         doc.AmountCents,
		Status:         domain.Status(doc.Status),
		TransactionRef: doc.TransactionRef,
		CreatedAt:      doc.CreatedAt,
	}, nil
}
