package interfaces

import (
	"context"
	"errors"

	"zonedispatch/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrStateConflict is returned by SetActive when the record is already in the
// requested state, including when a concurrent writer got there first.
var ErrStateConflict = errors.New("record state conflict")

type ZoneAssignmentRepository interface {
	Create(ctx context.Context, assignment *models.ZoneAssignment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ZoneAssignment, error)
	// SetActive writes is_active only if the stored value is !active.
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error

	ListByZone(ctx context.Context, zoneID primitive.ObjectID) ([]*models.ZoneAssignment, error)
	ListByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]*models.ZoneAssignment, error)
	ListByDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.ZoneAssignment, error)
}
