// Package rbac resolves who a caller is and what they may touch. Every
// request builds a fresh Context from the directory records, checks the
// module permission matrix through the Gate and narrows its queries with the
// tenant scope resolver. Nothing in here caches across requests.
package rbac

import (
	"encoding/json"
	"fmt"
)

// Role is a named capability profile assigned to an account. The set is
// fixed; provider roles are derived from the provider type via ProviderRole.
type Role string

const (
	RoleSuperAdmin      Role = "Super-Admin"
	RoleClubAdmin       Role = "Club-Admin"
	RoleManager         Role = "Manager"
	RoleCoach           Role = "Coach"
	RolePlayer          Role = "Player"
	RoleParent          Role = "Parent"
	RoleSponsor         Role = "Sponsor"
	RoleReferee         Role = "Referee"
	RoleFederation      Role = "Federation"
	RoleScouting        Role = "Scouting"
	RoleSupplier        Role = "Supplier"
	RoleFan             Role = "Fan"
	RoleBoard           Role = "Board"
	RoleFacilityManager Role = "Facility-Manager"
)

// RoleNone marks an unrecognized principal. It has no matrix row and every
// permission check resolves to LevelNone for it.
const RoleNone Role = ""

// Provider types with a known role row in the default matrix.
const (
	ProviderTypeTravel    = "Reise"
	ProviderTypeCamp      = "Camp"
	ProviderTypeEquipment = "Equipment"
)

// ProviderRole derives the role for an external provider account from its
// registered type, e.g. "Reise" becomes "Reise-Anbieter".
func ProviderRole(providerType string) Role {
	return Role(fmt.Sprintf("%s-Anbieter", providerType))
}

// DecodeRoles unmarshals a stored JSON role array, keeping order. Invalid
// payloads decode to nil so a corrupt record degrades to "no roles" instead
// of failing resolution.
func DecodeRoles(raw []byte) []Role {
	if len(raw) == 0 {
		return nil
	}
	var roles []Role
	if err := json.Unmarshal(raw, &roles); err != nil {
		return nil
	}
	return roles
}

// EncodeRoles marshals a role set for storage.
func EncodeRoles(roles []Role) ([]byte, error) {
	return json.Marshal(roles)
}

// IsValidRole reports whether role belongs to the fixed role set, including
// the known provider roles.
func IsValidRole(role Role) bool {
	switch role {
	case RoleSuperAdmin, RoleClubAdmin, RoleManager, RoleCoach, RolePlayer,
		RoleParent, RoleSponsor, RoleReferee, RoleFederation, RoleScouting,
		RoleSupplier, RoleFan, RoleBoard, RoleFacilityManager:
		return true
	case ProviderRole(ProviderTypeTravel), ProviderRole(ProviderTypeCamp), ProviderRole(ProviderTypeEquipment):
		return true
	default:
		return false
	}
}
