package mongodb

import (
	"context"
	"errors"
	"time"

	domain "github.com/cafekit/orderflow/internal/domain/order"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{collection: db.Collection("orders")}
}

type orderDoc struct {
	OrderID       string         `bson:"order_id"`
	CustomerID    string         `bson:"customer_id"`
	Lines         []orderLineDoc `bson:"items"`
	TotalCents    int64          `bson:"total_cents"`
	Status        string         `bson:"status"`
	FailureReason string         `bson:"failure_reason,omitempty"`
	CreatedAt     time.Time      `bson:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at"`
}

type orderLineDoc struct {
	ItemID         string `bson:"item_id"`
	Name           string `bson:"name"`
	Quantity       int    `bson:"quantity"`
	UnitPriceCents int64  `bson:"unit_price_cents"`
}

func (r *OrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	_, err := r.collection.InsertOne(ctx, toOrderDoc(order))
	return err
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	var doc orderDoc
	err := r.collection.FindOne(ctx, bson.M{"order_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return fromOrderDoc(doc), nil
}

func (r *OrderRepository) FindByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	cur, err := r.collection.Find(ctx, bson.M{"customer_id": customerID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Order
	for cur.Next(ctx) {
		var doc orderDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, fromOrderDoc(doc))
	}
	return out, cur.Err()
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"order_id": order.ID}, toOrderDoc(order))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"order_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toOrderDoc(o *domain.Order) orderDoc {
	lines := make([]orderLineDoc, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, orderLineDoc{
			ItemID:         l.ItemID,
			Name:           l.Name,
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitPrice,
		})
	}
	return orderDoc{
		OrderID:       o.ID,
		CustomerID:    o.CustomerID,
		Lines:         lines,
		TotalCents:    o.Total,
		Status:        string(o.Status),
		FailureReason: o.FailureReason,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func fromOrderDoc(doc orderDoc) *domain.Order {
	lines := make([]domain.Line, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		lines = append(lines, domain.Line{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPriceCents,
		})
	}
	return &domain.Order{
		ID:            doc.OrderID,
		CustomerID:    doc.CustomerID,
		Lines:         lines,
		Total:         doc.TotalCents,
		Status:        domain.Status(doc.Status),
		FailureReason: doc.FailureReason,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}
