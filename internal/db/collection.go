package db

import (
	"context"
	"errors"

	"github.com/serproauto/workshop-manager/internal/models"
)

// ErrVehicleNotFound is returned when an operation references an id
// with no stored record.
var ErrVehicleNotFound = errors.New("vehicle not found")

// VehicleStore defines the interface for vehicle record operations.
// Create assigns the identity; everything else is whole-record
// replacement, so callers always hand back the complete desired record.
// ListAll returns a snapshot in most-recent-first order, which the
// recent-activity views rely on.
type VehicleStore interface {
	Create(ctx context.Context, vehicle models.Vehicle) (models.Vehicle, error)
	Update(ctx context.Context, vehicle models.Vehicle) error
	FindByID(ctx context.Context, id string) (*models.Vehicle, error)
	ListAll(ctx context.Context) ([]models.Vehicle, error)
}
