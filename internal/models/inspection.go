package models

import (
	"github.com/google/uuid"
)

// FuelLevel is the fuel gauge reading taken at reception.
type FuelLevel string

const (
	FuelUnknown       FuelLevel = ""
	FuelQuarter       FuelLevel = "1/4"
	FuelHalf          FuelLevel = "1/2"
	FuelThreeQuarters FuelLevel = "3/4"
	FuelFull          FuelLevel = "full"
)

// CheckResult is the tri-state outcome of an equipment check.
type CheckResult string

const (
	CheckOK            CheckResult = "ok"
	CheckNotOK         CheckResult = "nok"
	CheckNotApplicable CheckResult = "na"
)

// BatteryTest is the verdict of the battery load test.
type BatteryTest string

const (
	BatteryUntested BatteryTest = ""
	BatteryGood     BatteryTest = "good"
	BatteryFair     BatteryTest = "fair"
	BatteryReplace  BatteryTest = "replace"
)

// InspectionPhoto is an opaque reference to a piece of photo evidence.
// The URL is never interpreted by this system.
type InspectionPhoto struct {
	ID  string `bson:"id" json:"id"`
	URL string `bson:"url" json:"url"`
}

// ChecklistItem is the atomic unit of inspection data: free-text notes
// plus photo evidence in insertion order.
type ChecklistItem struct {
	Notes  string            `bson:"notes" json:"notes"`
	Photos []InspectionPhoto `bson:"photos" json:"photos"`
}

// AddPhoto appends a photo with a freshly generated id and returns it.
// Photos are never deduplicated by content.
func (c *ChecklistItem) AddPhoto(url string) InspectionPhoto {
	photo := InspectionPhoto{ID: uuid.NewString(), URL: url}
	c.Photos = append(c.Photos, photo)
	return photo
}

// RemovePhoto removes the photo with the given id. Removing an id that
// is not present is a no-op.
func (c *ChecklistItem) RemovePhoto(id string) {
	kept := c.Photos[:0]
	for _, p := range c.Photos {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.Photos = kept
}

// Clone returns a deep copy of the checklist item.
func (c ChecklistItem) Clone() ChecklistItem {
	out := c
	if c.Photos != nil {
		out.Photos = make([]InspectionPhoto, len(c.Photos))
		copy(out.Photos, c.Photos)
	}
	return out
}

// ExteriorSection covers the visual walk-around performed at reception.
type ExteriorSection struct {
	Bodywork   ChecklistItem `bson:"bodywork" json:"bodywork"`
	Windshield ChecklistItem `bson:"windshield" json:"windshield"`
	Tires      ChecklistItem `bson:"tires" json:"tires"`
	Rims       ChecklistItem `bson:"rims" json:"rims"`
	Lights     ChecklistItem `bson:"lights" json:"lights"`
}

// Clone returns a deep copy of the section.
func (s ExteriorSection) Clone() ExteriorSection {
	return ExteriorSection{
		Bodywork:   s.Bodywork.Clone(),
		Windshield: s.Windshield.Clone(),
		Tires:      s.Tires.Clone(),
		Rims:       s.Rims.Clone(),
		Lights:     s.Lights.Clone(),
	}
}

// InteriorSection covers the cabin check performed at reception.
type InteriorSection struct {
	Upholstery ChecklistItem `bson:"upholstery" json:"upholstery"`
	Dashboard  ChecklistItem `bson:"dashboard" json:"dashboard"`
	Equipment  ChecklistItem `bson:"equipment" json:"equipment"`
}

// Clone returns a deep copy of the section.
func (s InteriorSection) Clone() InteriorSection {
	return InteriorSection{
		Upholstery: s.Upholstery.Clone(),
		Dashboard:  s.Dashboard.Clone(),
		Equipment:  s.Equipment.Clone(),
	}
}

// KeysSection records how many keys were handed over with the vehicle.
type KeysSection struct {
	Count int    `bson:"count" json:"count"`
	Notes string `bson:"notes" json:"notes"`
}

// EquipmentCheckSection records the working state of cabin equipment.
type EquipmentCheckSection struct {
	AC      CheckResult `bson:"ac" json:"ac"`
	Audio   CheckResult `bson:"audio" json:"audio"`
	Windows CheckResult `bson:"windows" json:"windows"`
	Locking CheckResult `bson:"locking" json:"locking"`
}

// TechnicalSection is the mechanic's verification: fluids, battery,
// brakes and mechanical components.
type TechnicalSection struct {
	EngineOil           ChecklistItem `bson:"engine_oil" json:"engine_oil"`
	BrakeFluid          ChecklistItem `bson:"brake_fluid" json:"brake_fluid"`
	Coolant             ChecklistItem `bson:"coolant" json:"coolant"`
	PowerSteering       ChecklistItem `bson:"power_steering" json:"power_steering"`
	WasherFluid         ChecklistItem `bson:"washer_fluid" json:"washer_fluid"`
	BatteryTest         BatteryTest   `bson:"battery_test" json:"battery_test"`
	BatteryHealth       int           `bson:"battery_health" json:"battery_health"`
	BrakeLifePercentage int           `bson:"brake_life_percentage" json:"brake_life_percentage"`
	Suspension          ChecklistItem `bson:"suspension" json:"suspension"`
	Exhaust             ChecklistItem `bson:"exhaust" json:"exhaust"`
	AccessoryBelt       ChecklistItem `bson:"accessory_belt" json:"accessory_belt"`
}

// Clone returns a deep copy of the section.
func (s TechnicalSection) Clone() TechnicalSection {
	out := s
	out.EngineOil = s.EngineOil.Clone()
	out.BrakeFluid = s.BrakeFluid.Clone()
	out.Coolant = s.Coolant.Clone()
	out.PowerSteering = s.PowerSteering.Clone()
	out.WasherFluid = s.WasherFluid.Clone()
	out.Suspension = s.Suspension.Clone()
	out.Exhaust = s.Exhaust.Clone()
	out.AccessoryBelt = s.AccessoryBelt.Clone()
	return out
}

// ElectronicScanSection holds the OBD scan output: diagnostic trouble
// codes, real-time parameters and scanner screenshots.
type ElectronicScanSection struct {
	DTCCodes       string            `bson:"dtc_codes" json:"dtc_codes"`
	RealTimeParams string            `bson:"real_time_params" json:"real_time_params"`
	Photos         []InspectionPhoto `bson:"photos" json:"photos"`
}

// AddPhoto appends a scanner photo with a freshly generated id.
func (s *ElectronicScanSection) AddPhoto(url string) InspectionPhoto {
	photo := InspectionPhoto{ID: uuid.NewString(), URL: url}
	s.Photos = append(s.Photos, photo)
	return photo
}

// RemovePhoto removes the photo with the given id; unknown ids are a no-op.
func (s *ElectronicScanSection) RemovePhoto(id string) {
	kept := s.Photos[:0]
	for _, p := range s.Photos {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.Photos = kept
}

// Clone returns a deep copy of the section.
func (s ElectronicScanSection) Clone() ElectronicScanSection {
	out := s
	if s.Photos != nil {
		out.Photos = make([]InspectionPhoto, len(s.Photos))
		copy(out.Photos, s.Photos)
	}
	return out
}

// InspectionData is the full inspection record for a vehicle. Every
// section has a well-defined empty state, so a record produced by
// DefaultInspection (or by any merge) is always safe to read in full.
type InspectionData struct {
	Mileage        string                `bson:"mileage" json:"mileage"`
	FuelLevel      FuelLevel             `bson:"fuel_level" json:"fuel_level"`
	Exterior       ExteriorSection       `bson:"exterior" json:"exterior"`
	Interior       InteriorSection       `bson:"interior" json:"interior"`
	Keys           KeysSection           `bson:"keys" json:"keys"`
	EquipmentCheck EquipmentCheckSection `bson:"equipment_check" json:"equipment_check"`
	Technical      TechnicalSection      `bson:"technical" json:"technical"`
	ElectronicScan ElectronicScanSection `bson:"electronic_scan" json:"electronic_scan"`
}

// DefaultInspection returns the canonical empty inspection record:
// all checklist items blank, all checks not-applicable, one key.
func DefaultInspection() InspectionData {
	return InspectionData{
		Mileage:   "",
		FuelLevel: FuelUnknown,
		Keys:      KeysSection{Count: 1},
		EquipmentCheck: EquipmentCheckSection{
			AC:      CheckNotApplicable,
			Audio:   CheckNotApplicable,
			Windows: CheckNotApplicable,
			Locking: CheckNotApplicable,
		},
		Technical: TechnicalSection{
			BatteryTest:         BatteryUntested,
			BatteryHealth:       0,
			BrakeLifePercentage: 0,
		},
	}
}

// Clone returns a deep copy of the inspection record.
func (d InspectionData) Clone() InspectionData {
	out := d
	out.Exterior = d.Exterior.Clone()
	out.Interior = d.Interior.Clone()
	out.Technical = d.Technical.Clone()
	out.ElectronicScan = d.ElectronicScan.Clone()
	return out
}
