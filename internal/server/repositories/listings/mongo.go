package listings

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/MrSidSir/sidEstate/internal/common"
	"github.com/MrSidSir/sidEstate/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "listings"

type listingDocument struct {
	ID            primitive.ObjectID `bson:"_id"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description"`
	Address       string             `bson:"address"`
	Type          string             `bson:"type"`
	Bedroom       int                `bson:"bedroom"`
	Bathroom      int                `bson:"bathroom"`
	RegularPrice  float64            `bson:"regularPrice"`
	DiscountPrice float64            `bson:"discountPrice"`
	Offer         bool               `bson:"offer"`
	Parking       bool               `bson:"parking"`
	Furnished     bool               `bson:"furnished"`
	ImageURLs     []string           `bson:"imageUrls"`
	UserRef       string             `bson:"userRef"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func (d *listingDocument) model() models.Listing {
	return models.Listing{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Description:   d.Description,
		Address:       d.Address,
		Type:          d.Type,
		Bedroom:       d.Bedroom,
		Bathroom:      d.Bathroom,
		RegularPrice:  d.RegularPrice,
		DiscountPrice: d.DiscountPrice,
		Offer:         d.Offer,
		Parking:       d.Parking,
		Furnished:     d.Furnished,
		ImageURLs:     d.ImageURLs,
		UserRef:       d.UserRef,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// mutable lists the fields Update rewrites.
func (d *listingDocument) mutable() bson.M {
	return bson.M{
		"name":          d.Name,
		"description":   d.Description,
		"address":       d.Address,
		"type":          d.Type,
		"bedroom":       d.Bedroom,
		"bathroom":      d.Bathroom,
		"regularPrice":  d.RegularPrice,
		"discountPrice": d.DiscountPrice,
		"offer":         d.Offer,
		"parking":       d.Parking,
		"furnished":     d.Furnished,
		"imageUrls":     d.ImageURLs,
		"updatedAt":     d.UpdatedAt,
	}
}

func newDocument(l *models.Listing) listingDocument {
	images := l.ImageURLs
	if images == nil {
		images = []string{}
	}
	return listingDocument{
		Name:          l.Name,
		Description:   l.Description,
		Address:       l.Address,
		Type:          l.Type,
		Bedroom:       l.Bedroom,
		Bathroom:      l.Bathroom,
		RegularPrice:  l.RegularPrice,
		DiscountPrice: l.DiscountPrice,
		Offer:         l.Offer,
		Parking:       l.Parking,
		Furnished:     l.Furnished,
		ImageURLs:     images,
		UserRef:       l.UserRef,
	}
}

type MongoRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		collection: db.Collection(CollectionName),
		now:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// EnsureIndexes creates the owner and default-sort indexes.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userRef", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	doc := newDocument(listing)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = r.now()
	doc.UpdatedAt = doc.CreatedAt

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	l := doc.model()
	return &l, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	var doc listingDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	l := doc.model()
	return &l, nil
}

func (r *MongoRepository) Update(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(listing.ID)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	doc := newDocument(listing)
	doc.UpdatedAt = r.now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated listingDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": doc.mutable()}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	l := updated.model()
	return &l, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return common.ErrorNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// buildFilter renders the predicate part of q. The search term is matched
// literally.
func buildFilter(q models.ListingQuery) bson.M {
	filter := bson.M{}
	if q.SearchTerm != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.SearchTerm), Options: "i"}
	}
	for field, f := range map[string]models.BoolFilter{"offer": q.Offer, "furnished": q.Furnished, "parking": q.Parking} {
		if f != models.BoolAny {
			filter[field] = f == models.BoolTrue
		}
	}
	if q.Type != "" {
		filter["type"] = q.Type
	}
	return filter
}

func buildFindOptions(q models.ListingQuery) *options.FindOptions {
	dir := 1
	if q.Descending {
		dir = -1
	}
	field := q.SortField
	if field == "" {
		field = models.SortCreatedAt
	}

	opts := options.Find().
		SetSort(bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}).
		SetSkip(int64(max(q.StartIndex, 0)))
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	return opts
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Listing, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.Listing{}
	for cursor.Next(ctx) {
		var doc listingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, doc.model())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *MongoRepository) Search(ctx context.Context, q models.ListingQuery) ([]models.Listing, error) {
	return r.find(ctx, buildFilter(q), buildFindOptions(q))
}

func (r *MongoRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	return r.find(ctx, bson.M{"userRef": ownerID}, opts)
}
