package models

// Role represents user roles in the system
type Role string

const (
	RoleForeman  Role = "foreman"
	RoleAdvisor  Role = "advisor"
	RoleMechanic Role = "mechanic"
)

// User represents a logged-in workshop user. Users are session-scoped:
// they exist from login to logout and carry no state beyond identity.
type User struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Claims represents JWT claims
type Claims struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Exp      int64  `json:"exp"`
}

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleForeman, RoleAdvisor, RoleMechanic:
		return true
	default:
		return false
	}
}

// CanViewFleetSummary reports whether the role may see the fleet-wide
// status aggregation on the dashboard.
func (r Role) CanViewFleetSummary() bool {
	return r == RoleForeman
}

// CanRegisterVehicle reports whether the role may register a new vehicle.
// Mechanics register only their own intakes; that constraint is applied
// by the service layer, not here.
func (r Role) CanRegisterVehicle() bool {
	switch r {
	case RoleForeman, RoleAdvisor, RoleMechanic:
		return true
	default:
		return false
	}
}

// CanEditGeneralInfo reports whether the role may edit customer and
// vehicle identification fields. Mechanics fill general info only at
// creation time; once the record exists, intake data is locked for them.
func (r Role) CanEditGeneralInfo(isExistingRecord bool) bool {
	switch r {
	case RoleForeman, RoleAdvisor:
		return true
	case RoleMechanic:
		return !isExistingRecord
	default:
		return false
	}
}

// CanEditServiceStatus reports whether the role may change status,
// priority, technician assignment and work-order notes. Advisors may
// view these fields but never change them.
func (r Role) CanEditServiceStatus() bool {
	return r == RoleForeman || r == RoleMechanic
}

// CanViewTechnicalInspection reports whether the role may open the
// technical inspection data. Foremen and advisors see it on existing
// records; mechanics always see it on their assigned vehicles.
func (r Role) CanViewTechnicalInspection(isExistingRecord bool) bool {
	switch r {
	case RoleForeman, RoleAdvisor:
		return isExistingRecord
	case RoleMechanic:
		return true
	default:
		return false
	}
}
