package mongodb

import (
	"context"
	"errors"
	"time"

	domain "github.com/cafekit/orderflow/internal/domain/inventory"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InventoryRepository struct {
	collection *mongo.Collection
}

func NewInventoryRepository(db *mongo.Database) *InventoryRepository {
	return &InventoryRepository{collection: db.Collection("inventory")}
}

type inventoryDoc struct {
	ItemID      string    `bson:"item_id"`
	Quantity    int       `bson:"quantity"`
	LastUpdated time.Time `bson:"last_updated"`
}

func (r *InventoryRepository) Get(ctx context.Context, itemID string) (*domain.Item, error) {
	var doc inventoryDoc
	err := r.collection.FindOne(ctx, bson.M{"item_id": itemID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &domain.Item{
		ItemID:    doc.ItemID,
		Quantity:  doc.Quantity,
		UpdatedAt: doc.LastUpdated,
	}, nil
}

func (r *InventoryRepository) Save(ctx context.Context, item *domain.Item) error {
	doc := inventoryDoc{
		ItemID:      item.ItemID,
		Quantity:    item.Quantity,
		LastUpdated: item.UpdatedAt,
	}
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"item_id": item.ItemID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *InventoryRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
