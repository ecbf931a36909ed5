package domain

import (
	"time"

	"zonedispatch/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ZoneAssignmentEntity exposes the two-state lifecycle guards of an
// assignment. It never mutates the record; callers apply the transition.
type ZoneAssignmentEntity struct {
	assignment *models.ZoneAssignment
}

func NewZoneAssignmentEntity(assignment *models.ZoneAssignment) ZoneAssignmentEntity {
	return ZoneAssignmentEntity{assignment: assignment}
}

func (e ZoneAssignmentEntity) Assignment() *models.ZoneAssignment {
	return e.assignment
}

func (e ZoneAssignmentEntity) IsActive() bool {
	return e.assignment != nil && e.assignment.IsActive
}

func (e ZoneAssignmentEntity) ZoneID() primitive.ObjectID {
	if e.assignment == nil {
		return primitive.NilObjectID
	}
	return e.assignment.ZoneID
}

func (e ZoneAssignmentEntity) DriverID() primitive.ObjectID {
	if e.assignment == nil {
		return primitive.NilObjectID
	}
	return e.assignment.DriverID
}

func (e ZoneAssignmentEntity) AssignedAt() time.Time {
	if e.assignment == nil {
		return time.Time{}
	}
	return e.assignment.AssignedAt
}

func (e ZoneAssignmentEntity) BelongsToZone(zoneID primitive.ObjectID) bool {
	return e.assignment != nil && e.assignment.ZoneID == zoneID
}

func (e ZoneAssignmentEntity) CanActivate() bool {
	return e.assignment != nil && !e.assignment.IsActive
}

func (e ZoneAssignmentEntity) CanDeactivate() bool {
	return e.assignment != nil && e.assignment.IsActive
}
