// Package policy computes which vehicles a user can see and the
// dashboard aggregations built on top of the listing. It is pure: no
// store access, no side effects. Write-side enforcement lives in the
// service layer, which consults the same role capabilities.
package policy

import (
	"strings"

	"github.com/serproauto/workshop-manager/internal/models"
)

// VisibleVehicles filters the vehicle set down to what the user may
// see. Foremen and advisors see the whole floor; mechanics see only
// vehicles assigned to them, matched case-insensitively against their
// username.
func VisibleVehicles(user models.User, vehicles []models.Vehicle) []models.Vehicle {
	if user.Role != models.RoleMechanic {
		return vehicles
	}
	visible := make([]models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if strings.EqualFold(v.Technician, user.Username) {
			visible = append(visible, v)
		}
	}
	return visible
}

// StatusSummary is the fleet-wide count per status shown on the
// foreman dashboard.
type StatusSummary struct {
	InService        int `json:"in_service"`
	InDiagnosis      int `json:"in_diagnosis"`
	InRepair         int `json:"in_repair"`
	ReadyForDelivery int `json:"ready_for_delivery"`
	Total            int `json:"total"`
}

// Summarize counts vehicles per status. Every status appears in the
// result even when its count is zero.
func Summarize(vehicles []models.Vehicle) StatusSummary {
	var summary StatusSummary
	for _, v := range vehicles {
		switch v.Status {
		case models.StatusInService:
			summary.InService++
		case models.StatusInDiagnosis:
			summary.InDiagnosis++
		case models.StatusInRepair:
			summary.InRepair++
		case models.StatusReadyForDelivery:
			summary.ReadyForDelivery++
		}
		summary.Total++
	}
	return summary
}

// WorkOrders returns the subset of vehicles currently in repair,
// preserving the listing order.
func WorkOrders(vehicles []models.Vehicle) []models.Vehicle {
	orders := make([]models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if v.Status == models.StatusInRepair {
			orders = append(orders, v)
		}
	}
	return orders
}

// Recent returns the first n vehicles of the listing. Listings are
// most-recent-first, so this is the recent-activity slice.
func Recent(vehicles []models.Vehicle, n int) []models.Vehicle {
	if n < 0 {
		n = 0
	}
	if n > len(vehicles) {
		n = len(vehicles)
	}
	return vehicles[:n]
}
