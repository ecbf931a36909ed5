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

type zoneAssignmentRepository struct {
	collection *mongo.Collection
}

func NewZoneAssignmentRepository(db *mongo.Database) interfaces.ZoneAssignmentRepository {
	return &zoneAssignmentRepository{
		collection: db.Collection(database.ZoneAssignmentsCollection),
	}
}

func (r *zoneAssignmentRepository) Create(ctx context.Context, assignment *models.ZoneAssignment) error {
	if assignment.ID.IsZero() {
		assignment.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if assignment.AssignedAt.IsZero() {
		assignment.AssignedAt = now
	}
	assignment.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, assignment); err != nil {
		return fmt.Errorf("failed to create zone assignment: %w", err)
	}

	return nil
}

func (r *zoneAssignmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ZoneAssignment, error) {
	var assignment models.ZoneAssignment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get zone assignment: %w", err)
	}

	return &assignment, nil
}

func (r *zoneAssignmentRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	update := bson.M{
		"$set": bson.M{
			"is_active":  active,
			"updated_at": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "is_active": !active}, update)
	if err != nil {
		return fmt.Errorf("failed to update zone assignment: %w", err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to check zone assignment: %w", err)
	}
	if count == 0 {
		return interfaces.ErrNotFound
	}
	return interfaces.ErrStateConflict
}

func (r *zoneAssignmentRepository) ListByZone(ctx context.Context, zoneID primitive.ObjectID) ([]*models.ZoneAssignment, error) {
	return r.find(ctx, bson.M{"zone_id": zoneID})
}

func (r *zoneAssignmentRepository) ListByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]*models.ZoneAssignment, error) {
	return r.find(ctx, bson.M{"business_id": businessID})
}

func (r *zoneAssignmentRepository) ListByDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.ZoneAssignment, error) {
	return r.find(ctx, bson.M{"driver_id": driverID})
}

func (r *zoneAssignmentRepository) find(ctx context.Context, filter bson.M) ([]*models.ZoneAssignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "assigned_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find zone assignments: %w", err)
	}
	defer cursor.Close(ctx)

	var assignments []*models.ZoneAssignment
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, fmt.Errorf("failed to decode zone assignments: %w", err)
	}
	if assignments == nil {
		assignments = make([]*models.ZoneAssignment, 0)
	}

	return assignments, nil
}
