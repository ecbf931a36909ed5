package memory

import (
	"context"
	"sync"
	"time"

	"zonedispatch/internal/models"
	"zonedispatch/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type zoneAssignmentRepository struct {
	mu          sync.RWMutex
	assignments []*models.ZoneAssignment
}

func NewZoneAssignmentRepository(seed ...*models.ZoneAssignment) interfaces.ZoneAssignmentRepository {
	r := &zoneAssignmentRepository{}
	for _, assignment := range seed {
		copied := *assignment
		if copied.ID.IsZero() {
			copied.ID = primitive.NewObjectID()
		}
		r.assignments = append(r.assignments, &copied)
	}
	return r
}

func (r *zoneAssignmentRepository) Create(_ context.Context, assignment *models.ZoneAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if assignment.ID.IsZero() {
		assignment.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if assignment.AssignedAt.IsZero() {
		assignment.AssignedAt = now
	}
	assignment.UpdatedAt = now

	copied := *assignment
	r.assignments = append(r.assignments, &copied)
	return nil
}

func (r *zoneAssignmentRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.ZoneAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, assignment := range r.assignments {
		if assignment.ID == id {
			copied := *assignment
			return &copied, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *zoneAssignmentRepository) SetActive(_ context.Context, id primitive.ObjectID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, assignment := range r.assignments {
		if assignment.ID == id {
			if assignment.IsActive == active {
				return interfaces.ErrStateConflict
			}
			assignment.IsActive = active
			assignment.UpdatedAt = time.Now()
			return nil
		}
	}
	return interfaces.ErrNotFound
}

func (r *zoneAssignmentRepository) ListByZone(_ context.Context, zoneID primitive.ObjectID) ([]*models.ZoneAssignment, error) {
	return r.list(func(a *models.ZoneAssignment) bool { return a.ZoneID == zoneID }), nil
}

func (r *zoneAssignmentRepository) ListByBusiness(_ context.Context, businessID primitive.ObjectID) ([]*models.ZoneAssignment, error) {
	return r.list(func(a *models.ZoneAssignment) bool { return a.BusinessID == businessID }), nil
}

func (r *zoneAssignmentRepository) ListByDriver(_ context.Context, driverID primitive.ObjectID) ([]*models.ZoneAssignment, error) {
	return r.list(func(a *models.ZoneAssignment) bool { return a.DriverID == driverID }), nil
}

func (r *zoneAssignmentRepository) list(keep func(*models.ZoneAssignment) bool) []*models.ZoneAssignment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assignments := make([]*models.ZoneAssignment, 0, len(r.assignments))
	for _, assignment := range r.assignments {
		if keep(assignment) {
			copied := *assignment
			assignments = append(assignments, &copied)
		}
	}
	return assignments
}
