package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dad-ventas/sales-platform/internal/core/domain"
)

const salesCollection = "sales"
const salesSequence = "sales"

type MongoSaleRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewSaleRepository(db *mongo.Database) *MongoSaleRepository {
	return &MongoSaleRepository{db: db, coll: db.Collection(salesCollection)}
}

func (r *MongoSaleRepository) Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	id, err := nextSequence(ctx, r.db, salesSequence)
	if err != nil {
		return nil, err
	}

	created := *sale
	created.ID = id

	if _, err := r.coll.InsertOne(ctx, created); err != nil {
		return nil, fmt.Errorf("insert sale: %w", err)
	}
	return &created, nil
}

func (r *MongoSaleRepository) FindByID(ctx context.Context, id int64) (*domain.Sale, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoSaleRepository) FindByOrderID(ctx context.Context, orderID int64) (*domain.Sale, error) {
	return r.findOne(ctx, bson.M{"order_id": orderID})
}

func (r *MongoSaleRepository) findOne(ctx context.Context, filter bson.M) (*domain.Sale, error) {
	var sale domain.Sale
	if err := r.coll.FindOne(ctx, filter).Decode(&sale); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSaleNotFound
		}
		return nil, fmt.Errorf("find sale: %w", err)
	}
	return &sale, nil
}

func (r *MongoSaleRepository) List(ctx context.Context) ([]domain.Sale, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoSaleRepository) ListByClient(ctx context.Context, clientID int64) ([]domain.Sale, error) {
	return r.list(ctx, bson.M{"client_id": clientID})
}

func (r *MongoSaleRepository) list(ctx context.Context, filter bson.M) ([]domain.Sale, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "sale_date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer cur.Close(ctx)

	var sales []domain.Sale
	if err := cur.All(ctx, &sales); err != nil {
		return nil, fmt.Errorf("decode sales: %w", err)
	}
	return sales, nil
}
