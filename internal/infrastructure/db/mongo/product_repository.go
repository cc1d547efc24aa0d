package mongo

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kawuz/coffee-shop-api/internal/core/domain"
)

const productsCollection = "products"

type ProductRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{db: db, coll: db.Collection(productsCollection)}
}

type mongoProduct struct {
	ID            int64   `bson:"_id"`
	Name          string  `bson:"name"`
	Description   string  `bson:"description"`
	Price         float64 `bson:"price"`
	StockQuantity int     `bson:"stock_quantity"`
	Sales         int     `bson:"sales"`
	Availability  bool    `bson:"availability"`
	RoastLevel    int     `bson:"roast_level"`
	CaffeineLevel int     `bson:"caffeine_level"`
	Sweetness     int     `bson:"sweetness"`
	Acidity       int     `bson:"acidity"`
	Weight        string  `bson:"weight"`
}

func toDoc(p *domain.Product) mongoProduct {
	return mongoProduct{
		ID:            int64(p.ID),
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Sales:         p.Sales,
		Availability:  p.Available,
		RoastLevel:    p.RoastLevel,
		CaffeineLevel: p.CaffeineLevel,
		Sweetness:     p.Sweetness,
		Acidity:       p.Acidity,
		Weight:        p.Weight,
	}
}

func (mp mongoProduct) toDomain() *domain.Product {
	return &domain.Product{
		ID:            int(mp.ID),
		Name:          mp.Name,
		Description:   mp.Description,
		Price:         mp.Price,
		StockQuantity: mp.StockQuantity,
		Sales:         mp.Sales,
		Available:     mp.Availability,
		RoastLevel:    mp.RoastLevel,
		CaffeineLevel: mp.CaffeineLevel,
		Sweetness:     mp.Sweetness,
		Acidity:       mp.Acidity,
		Weight:        mp.Weight,
	}
}

func (r *ProductRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoProduct
	if err := r.coll.FindOne(ctx, bson.M{"_id": int64(id)}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return decodeProducts(ctx, cursor)
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, productsCollection)
	if err != nil {
		return nil, err
	}

	doc := toDoc(p)
	doc.ID = id
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	created := *p
	created.ID = int(id)
	return &created, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": int64(p.ID)}, toDoc(p))
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": int64(id)})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) SearchByName(ctx context.Context, keyword string) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"name": bson.M{"$regex": regexp.QuoteMeta(keyword), "$options": "i"}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return decodeProducts(ctx, cursor)
}

func (r *ProductRepository) TopBySales(ctx context.Context, n int) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "sales", Value: -1}}).
		SetLimit(int64(n))
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	return decodeProducts(ctx, cursor)
}

// CommitOrderLine applies one order line as a single conditional update:
// the decrement only matches while stock_quantity >= qty, so concurrent
// commits on the same product cannot drive the stock negative.
func (r *ProductRepository) CommitOrderLine(ctx context.Context, id, qty int) error {
	if qty <= 0 {
		// A non-positive qty would flip the $inc into a stock increase.
		return domain.ErrInvalidQuantity
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": int64(id), "stock_quantity": bson.M{"$gte": qty}}
	update := bson.M{"$inc": bson.M{"stock_quantity": -qty, "sales": qty}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("commit order line: %w", err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing product from a lost stock race.
		if err := r.coll.FindOne(ctx, bson.M{"_id": int64(id)}).Err(); err == mongo.ErrNoDocuments {
			return domain.ErrProductNotFound
		}
		return domain.ErrInsufficientStock
	}
	return nil
}

func decodeProducts(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Product, error) {
	defer cursor.Close(ctx)

	var products []*domain.Product
	for cursor.Next(ctx) {
		var mp mongoProduct
		if err := cursor.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, mp.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("product cursor: %w", err)
	}
	return products, nil
}
