package models

import (
	"time"
)

// VehicleStatus represents where a vehicle currently sits in the
// workshop flow. No transition order is enforced: staff with status
// edit rights may move a vehicle to any state.
type VehicleStatus string

const (
	StatusInService        VehicleStatus = "in_service"
	StatusInDiagnosis      VehicleStatus = "in_diagnosis"
	StatusInRepair         VehicleStatus = "in_repair"
	StatusReadyForDelivery VehicleStatus = "ready_for_delivery"
)

// AllStatuses lists every vehicle status in dashboard display order.
var AllStatuses = []VehicleStatus{
	StatusInService,
	StatusInDiagnosis,
	StatusInRepair,
	StatusReadyForDelivery,
}

// IsValidStatus checks if a status is a recognized value
func IsValidStatus(s VehicleStatus) bool {
	switch s {
	case StatusInService, StatusInDiagnosis, StatusInRepair, StatusReadyForDelivery:
		return true
	default:
		return false
	}
}

// PriorityLevel represents the urgency assigned to a vehicle's service.
type PriorityLevel string

const (
	PriorityLow    PriorityLevel = "low"
	PriorityMedium PriorityLevel = "medium"
	PriorityHigh   PriorityLevel = "high"
)

// Customer holds the vehicle owner's contact details. A customer record
// is owned by exactly one vehicle and has no independent lifecycle.
type Customer struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`
	Email string `bson:"email" json:"email"`
}

// Vehicle is the aggregate root for a workshop job: identification,
// owner, service state and the accumulated inspection record. Vehicles
// are never deleted; the id is assigned once at creation.
type Vehicle struct {
	ID                      string          `bson:"_id,omitempty" json:"id"`
	Make                    string          `bson:"make" json:"make"`
	Model                   string          `bson:"model" json:"model"`
	Year                    int             `bson:"year" json:"year"`
	VIN                     string          `bson:"vin" json:"vin"`
	LicensePlate            string          `bson:"license_plate" json:"license_plate"`
	Status                  VehicleStatus   `bson:"status" json:"status"`
	Customer                Customer        `bson:"customer" json:"customer"`
	EntryDate               string          `bson:"entry_date" json:"entry_date"`
	EstimatedCompletionDate string          `bson:"estimated_completion_date,omitempty" json:"estimated_completion_date,omitempty"`
	Technician              string          `bson:"technician,omitempty" json:"technician,omitempty"`
	Priority                PriorityLevel   `bson:"priority,omitempty" json:"priority,omitempty"`
	WorkOrderNotes          string          `bson:"work_order_notes,omitempty" json:"work_order_notes,omitempty"`
	Inspection              *InspectionData `bson:"inspection,omitempty" json:"inspection,omitempty"`
	CreatedAt               time.Time       `bson:"created_at" json:"created_at"`
}

// Clone returns a deep copy of the vehicle. Stored records and
// in-flight edit buffers must never share photo slices.
func (v Vehicle) Clone() Vehicle {
	out := v
	if v.Inspection != nil {
		insp := v.Inspection.Clone()
		out.Inspection = &insp
	}
	return out
}
