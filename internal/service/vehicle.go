// Package service is the write boundary of the workshop core. Every
// mutation passes through role checks here, so authorization holds even
// for callers that bypass the HTTP layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/serproauto/workshop-manager/internal/db"
	"github.com/serproauto/workshop-manager/internal/inspection"
	"github.com/serproauto/workshop-manager/internal/models"
	"github.com/serproauto/workshop-manager/internal/policy"
)

var (
	ErrForbidden  = errors.New("operation not permitted")
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = db.ErrVehicleNotFound
)

// Notifier receives vehicle status change events. Implementations must
// not block; delivery is best effort.
type Notifier interface {
	VehicleStatusChanged(vehicle models.Vehicle)
}

// VehicleService wraps the vehicle store with role-based enforcement,
// record validation and inspection merging.
type VehicleService struct {
	store    db.VehicleStore
	notifier Notifier
}

// NewVehicleService creates a vehicle service. notifier may be nil.
func NewVehicleService(store db.VehicleStore, notifier Notifier) *VehicleService {
	return &VehicleService{store: store, notifier: notifier}
}

// Register validates and creates a new vehicle record. Mechanics are
// always self-assigned as the technician of vehicles they register.
func (s *VehicleService) Register(ctx context.Context, user models.User, vehicle models.Vehicle) (models.Vehicle, error) {
	if !user.Role.CanRegisterVehicle() {
		return models.Vehicle{}, fmt.Errorf("%w: role %s cannot register vehicles", ErrForbidden, user.Role)
	}
	if err := validateNewVehicle(vehicle); err != nil {
		return models.Vehicle{}, err
	}

	vehicle.ID = ""
	if vehicle.Customer.ID == "" {
		vehicle.Customer.ID = uuid.NewString()
	}
	if vehicle.EntryDate == "" {
		vehicle.EntryDate = time.Now().Format("2006-01-02")
	}
	if vehicle.Status == "" {
		// Mechanics register cars that are already on the lift.
		if user.Role == models.RoleMechanic {
			vehicle.Status = models.StatusInDiagnosis
		} else {
			vehicle.Status = models.StatusInService
		}
	} else if !models.IsValidStatus(vehicle.Status) {
		return models.Vehicle{}, fmt.Errorf("%w: unknown status %q", ErrValidation, vehicle.Status)
	}
	if user.Role == models.RoleMechanic {
		vehicle.Technician = user.Username
	}

	created, err := s.store.Create(ctx, vehicle)
	if err != nil {
		return models.Vehicle{}, err
	}

	log.WithFields(log.Fields{
		"vehicle_id": created.ID,
		"plate":      created.LicensePlate,
		"user":       user.Username,
	}).Info("vehicle registered")

	return created, nil
}

// Update replaces a stored record after checking the role against what
// actually changed. Mechanics may only touch their own vehicles and
// never intake data; advisors may never touch service state or
// technical inspection sections.
func (s *VehicleService) Update(ctx context.Context, user models.User, vehicle models.Vehicle) error {
	stored, err := s.store.FindByID(ctx, vehicle.ID)
	if err != nil {
		return err
	}

	if user.Role == models.RoleMechanic && !strings.EqualFold(stored.Technician, user.Username) {
		return fmt.Errorf("%w: vehicle %s is not assigned to %s", ErrForbidden, vehicle.ID, user.Username)
	}
	if generalInfoChanged(*stored, vehicle) && !user.Role.CanEditGeneralInfo(true) {
		return fmt.Errorf("%w: role %s cannot edit general info on an existing record", ErrForbidden, user.Role)
	}
	if serviceStateChanged(*stored, vehicle) && !user.Role.CanEditServiceStatus() {
		return fmt.Errorf("%w: role %s cannot edit service status", ErrForbidden, user.Role)
	}
	if err := checkInspectionChange(user.Role, stored.Inspection, vehicle.Inspection); err != nil {
		return err
	}
	// An existing record always carries a status; an update may never
	// blank it out.
	if !models.IsValidStatus(vehicle.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, vehicle.Status)
	}

	statusChanged := stored.Status != vehicle.Status

	if err := s.store.Update(ctx, vehicle); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"vehicle_id": vehicle.ID,
		"user":       user.Username,
	}).Info("vehicle updated")

	if statusChanged && s.notifier != nil {
		s.notifier.VehicleStatusChanged(vehicle)
	}
	return nil
}

// SubmitInspection merges a section-level inspection update into the
// vehicle's record. Reception sections belong to advisors and foremen;
// technical and electronic-scan sections to mechanics and foremen.
func (s *VehicleService) SubmitInspection(ctx context.Context, user models.User, vehicleID string, patch inspection.Patch) (models.Vehicle, error) {
	if patch.IsEmpty() {
		return models.Vehicle{}, fmt.Errorf("%w: inspection update carries no sections", ErrValidation)
	}

	stored, err := s.store.FindByID(ctx, vehicleID)
	if err != nil {
		return models.Vehicle{}, err
	}

	if user.Role == models.RoleMechanic && !strings.EqualFold(stored.Technician, user.Username) {
		return models.Vehicle{}, fmt.Errorf("%w: vehicle %s is not assigned to %s", ErrForbidden, vehicleID, user.Username)
	}
	if patch.TouchesReception() && user.Role == models.RoleMechanic {
		return models.Vehicle{}, fmt.Errorf("%w: mechanics cannot edit reception inspection on an existing record", ErrForbidden)
	}
	if patch.TouchesTechnical() && user.Role == models.RoleAdvisor {
		return models.Vehicle{}, fmt.Errorf("%w: advisors cannot edit technical inspection", ErrForbidden)
	}

	merged := inspection.Merge(stored.Inspection, patch)
	updated := stored.Clone()
	updated.Inspection = &merged

	if err := s.store.Update(ctx, updated); err != nil {
		return models.Vehicle{}, err
	}

	log.WithFields(log.Fields{
		"vehicle_id": vehicleID,
		"user":       user.Username,
	}).Info("inspection submitted")

	return updated, nil
}

// Get returns a single vehicle, subject to the same visibility rules
// as the listing: mechanics only reach their own assignments.
func (s *VehicleService) Get(ctx context.Context, user models.User, vehicleID string) (models.Vehicle, error) {
	stored, err := s.store.FindByID(ctx, vehicleID)
	if err != nil {
		return models.Vehicle{}, err
	}
	if user.Role == models.RoleMechanic && !strings.EqualFold(stored.Technician, user.Username) {
		return models.Vehicle{}, fmt.Errorf("%w: vehicle %s is not assigned to %s", ErrForbidden, vehicleID, user.Username)
	}
	return *stored, nil
}

// ListVisible returns the vehicles the user may see, most recent first.
func (s *VehicleService) ListVisible(ctx context.Context, user models.User) ([]models.Vehicle, error) {
	vehicles, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return policy.VisibleVehicles(user, vehicles), nil
}

// Summary computes the fleet-wide status aggregation. Foreman only.
func (s *VehicleService) Summary(ctx context.Context, user models.User) (policy.StatusSummary, error) {
	if !user.Role.CanViewFleetSummary() {
		return policy.StatusSummary{}, fmt.Errorf("%w: role %s cannot view the fleet summary", ErrForbidden, user.Role)
	}
	vehicles, err := s.store.ListAll(ctx)
	if err != nil {
		return policy.StatusSummary{}, err
	}
	return policy.Summarize(vehicles), nil
}

// WorkOrders returns the in-repair subset of the user's visible vehicles.
func (s *VehicleService) WorkOrders(ctx context.Context, user models.User) ([]models.Vehicle, error) {
	visible, err := s.ListVisible(ctx, user)
	if err != nil {
		return nil, err
	}
	return policy.WorkOrders(visible), nil
}

// Recent returns the n most recently registered visible vehicles.
func (s *VehicleService) Recent(ctx context.Context, user models.User, n int) ([]models.Vehicle, error) {
	visible, err := s.ListVisible(ctx, user)
	if err != nil {
		return nil, err
	}
	return policy.Recent(visible, n), nil
}

func validateNewVehicle(v models.Vehicle) error {
	var missing []string
	if v.Make == "" {
		missing = append(missing, "make")
	}
	if v.Model == "" {
		missing = append(missing, "model")
	}
	if v.VIN == "" {
		missing = append(missing, "vin")
	}
	if v.LicensePlate == "" {
		missing = append(missing, "license_plate")
	}
	if v.Customer.Name == "" {
		missing = append(missing, "customer.name")
	}
	if v.Customer.Phone == "" {
		missing = append(missing, "customer.phone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	if v.Year <= 0 {
		return fmt.Errorf("%w: year must be a positive number", ErrValidation)
	}
	return nil
}

func generalInfoChanged(stored, updated models.Vehicle) bool {
	return stored.Make != updated.Make ||
		stored.Model != updated.Model ||
		stored.Year != updated.Year ||
		stored.VIN != updated.VIN ||
		stored.LicensePlate != updated.LicensePlate ||
		stored.EntryDate != updated.EntryDate ||
		stored.Customer != updated.Customer
}

func serviceStateChanged(stored, updated models.Vehicle) bool {
	return stored.Status != updated.Status ||
		stored.Priority != updated.Priority ||
		stored.Technician != updated.Technician ||
		stored.EstimatedCompletionDate != updated.EstimatedCompletionDate ||
		stored.WorkOrderNotes != updated.WorkOrderNotes
}

// checkInspectionChange applies the section ownership rules to a
// whole-record update, so the form-level gates cannot be bypassed by
// sending a complete vehicle. Dropping a stored inspection erases every
// section at once and counts as touching both section groups.
func checkInspectionChange(role models.Role, stored, updated *models.InspectionData) error {
	var receptionChanged, technicalChanged bool

	switch {
	case updated == nil && stored == nil:
		return nil
	case updated == nil:
		receptionChanged = true
		technicalChanged = true
	case reflect.DeepEqual(stored, updated):
		return nil
	default:
		base := models.DefaultInspection()
		if stored != nil {
			base = *stored
		}
		receptionChanged = base.Mileage != updated.Mileage ||
			base.FuelLevel != updated.FuelLevel ||
			!reflect.DeepEqual(base.Exterior, updated.Exterior) ||
			!reflect.DeepEqual(base.Interior, updated.Interior) ||
			base.Keys != updated.Keys ||
			base.EquipmentCheck != updated.EquipmentCheck
		technicalChanged = !reflect.DeepEqual(base.Technical, updated.Technical) ||
			!reflect.DeepEqual(base.ElectronicScan, updated.ElectronicScan)
	}

	if receptionChanged && role == models.RoleMechanic {
		return fmt.Errorf("%w: mechanics cannot edit reception inspection on an existing record", ErrForbidden)
	}
	if technicalChanged && role == models.RoleAdvisor {
		return fmt.Errorf("%w: advisors cannot edit technical inspection", ErrForbidden)
	}
	return nil
}
