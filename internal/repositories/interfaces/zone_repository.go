package interfaces

import (
	"context"
	"errors"

	"zonedispatch/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a lookup by id matches no document.
var ErrNotFound = errors.New("record not found")

type ZoneRepository interface {
	Create(ctx context.Context, zone *models.Zone) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Zone, error)
	Update(ctx context.Context, zone *models.Zone) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Listing
	ListByBusiness(ctx context.Context, businessID primitive.ObjectID, activeOnly bool) ([]*models.Zone, error)
	ListAll(ctx context.Context, activeOnly bool) ([]*models.Zone, error)
}
