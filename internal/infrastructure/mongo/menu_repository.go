package mongodb

import (
	"context"
	"errors"

	domain "github.com/cafekit/orderflow/internal/domain/menu"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MenuRepository struct {
	collection *mongo.Collection
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{collection: db.Collection("menu_items")}
}

type menuItemDoc struct {
	ItemID     string `bson:"item_id"`
	Name       string `bson:"name"`
	PriceCents int64  `bson:"price_cents"`
	Stock      int    `bson:"stock"`
}

func (r *MenuRepository) Get(ctx context.Context, id string) (*domain.Item, error) {
	var doc menuItemDoc
	err := r.collection.FindOne(ctx, bson.M{"item_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return fromMenuItemDoc(doc), nil
}

func (r *MenuRepository) ListInStock(ctx context.Context) ([]*domain.Item, error) {
	cur, err := r.collection.Find(ctx, bson.M{"stock": bson.M{"$gt": 0}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Item
	for cur.Next(ctx) {
		var doc menuItemDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, fromMenuItemDoc(doc))
	}
	return out, cur.Err()
}

func (r *MenuRepository) Save(ctx context.Context, item *domain.Item) error {
	doc := menuItemDoc{
		ItemID:     item.ID,
		Name:       item.Name,
		PriceCents: item.Price,
		Stock:      item.Stock,
	}
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"item_id": item.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *MenuRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func fromMenuItemDoc(doc menuItemDoc) *domain.Item {
	return &domain.Item{
		ID:    doc.ItemID,
		Name:  doc.Name,
		Price: doc.PriceCents,
		Stock: doc.Stock,
	}
}
