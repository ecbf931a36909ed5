package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"zonedispatch/internal/models"
	"zonedispatch/internal/repositories/interfaces"
	"zonedispatch/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type zoneRepository struct {
	collection *mongo.Collection
}

func NewZoneRepository(db *mongo.Database) interfaces.ZoneRepository {
	return &zoneRepository{
		collection: db.Collection(database.ZonesCollection),
	}
}

func (r *zoneRepository) Create(ctx context.Context, zone *models.Zone) error {
	if zone.ID.IsZero() {
		zone.ID = primitive.NewObjectID()
	}
	now := time.Now()
	zone.CreatedAt = now
	zone.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, zone); err != nil {
		return fmt.Errorf("failed to create zone: %w", err)
	}

	return nil
}

func (r *zoneRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Zone, error) {
	var zone models.Zone
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&zone)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get zone: %w", err)
	}

	return &zone, nil
}

func (r *zoneRepository) Update(ctx context.Context, zone *models.Zone) error {
	zone.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": zone.ID}, zone)
	if err != nil {
		return fmt.Errorf("failed to update zone: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *zoneRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete zone: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *zoneRepository) ListByBusiness(ctx context.Context, businessID primitive.ObjectID, activeOnly bool) ([]*models.Zone, error) {
	filter := bson.M{"business_id": businessID}
	if activeOnly {
		filter["is_active"] = true
	}
	return r.find(ctx, filter)
}

func (r *zoneRepository) ListAll(ctx context.Context, activeOnly bool) ([]*models.Zone, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}
	return r.find(ctx, filter)
}

// find keeps insertion order; nearest-zone ties resolve to the earlier zone.
func (r *zoneRepository) find(ctx context.Context, filter bson.M) ([]*models.Zone, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find zones: %w", err)
	}
	defer cursor.Close(ctx)

	zones := make([]*models.Zone, 0)
	for cursor.Next(ctx) {
		var zone models.Zone
		if err := cursor.Decode(&zone); err != nil {
			return nil, fmt.Errorf("failed to decode zone: %w", err)
		}
		zones = append(zones, &zone)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("zone cursor error: %w", err)
	}

	return zones, nil
}
