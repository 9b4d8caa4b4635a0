// Package inspection composes partial inspection submissions into one
// complete record per vehicle. Forms submit only the section they own;
// the merge keeps every untouched section intact and fills structural
// defaults for sections the vehicle has never received.
package inspection

import (
	"github.com/serproauto/workshop-manager/internal/models"
)

// Patch is a partial inspection update. A nil section means "leave as
// is"; a non-nil section replaces the stored section wholesale. Merging
// is section-granular on purpose: each form owns whole sections, never
// individual nested fields.
type Patch struct {
	Mileage        *string                       `json:"mileage,omitempty"`
	FuelLevel      *models.FuelLevel             `json:"fuel_level,omitempty"`
	Exterior       *models.ExteriorSection       `json:"exterior,omitempty"`
	Interior       *models.InteriorSection       `json:"interior,omitempty"`
	Keys           *models.KeysSection           `json:"keys,omitempty"`
	EquipmentCheck *models.EquipmentCheckSection `json:"equipment_check,omitempty"`
	Technical      *models.TechnicalSection      `json:"technical,omitempty"`
	ElectronicScan *models.ElectronicScanSection `json:"electronic_scan,omitempty"`
}

// IsEmpty reports whether the patch carries no sections at all.
func (p Patch) IsEmpty() bool {
	return p.Mileage == nil && p.FuelLevel == nil && p.Exterior == nil &&
		p.Interior == nil && p.Keys == nil && p.EquipmentCheck == nil &&
		p.Technical == nil && p.ElectronicScan == nil
}

// TouchesReception reports whether the patch modifies any section
// captured on the reception (visual intake) form.
func (p Patch) TouchesReception() bool {
	return p.Mileage != nil || p.FuelLevel != nil || p.Exterior != nil ||
		p.Interior != nil || p.Keys != nil || p.EquipmentCheck != nil
}

// TouchesTechnical reports whether the patch modifies the technical
// verification or the electronic scan.
func (p Patch) TouchesTechnical() bool {
	return p.Technical != nil || p.ElectronicScan != nil
}

// apply overlays the patch's present sections onto data. Sections are
// deep-copied so the stored record never aliases the caller's buffers.
func (p Patch) apply(data *models.InspectionData) {
	if p.Mileage != nil {
		data.Mileage = *p.Mileage
	}
	if p.FuelLevel != nil {
		data.FuelLevel = *p.FuelLevel
	}
	if p.Exterior != nil {
		data.Exterior = p.Exterior.Clone()
	}
	if p.Interior != nil {
		data.Interior = p.Interior.Clone()
	}
	if p.Keys != nil {
		data.Keys = *p.Keys
	}
	if p.EquipmentCheck != nil {
		data.EquipmentCheck = *p.EquipmentCheck
	}
	if p.Technical != nil {
		data.Technical = p.Technical.Clone()
	}
	if p.ElectronicScan != nil {
		data.ElectronicScan = p.ElectronicScan.Clone()
	}
}

// Merge composes a full inspection record from what the vehicle already
// has and a single-section update: canonical defaults first, then the
// existing record, then the patch. Untouched sections survive verbatim
// and the result always has every section populated. A nil existing
// record (vehicle never inspected) is not an error.
func Merge(existing *models.InspectionData, patch Patch) models.InspectionData {
	out := models.DefaultInspection()
	if existing != nil {
		out = existing.Clone()
	}
	patch.apply(&out)
	return out
}
