// Package domain holds shared domain value types: strongly typed IDs and the
// enumerations used across the compliance modules.
//
// IDs are distinct uuid-based types so the compiler rejects cross-type
// assignment (a RequirementID can never be passed where a TenantID is
// expected). Construct IDs via the Parse helpers at trust boundaries;
// direct casting bypasses validation.
package domain

import (
	"github.com/google/uuid"

	dErrors "complytrack/pkg/domain-errors"
)

type (
	// TenantID identifies the owning business/organization scope.
	TenantID uuid.UUID
	// SiteID identifies an optional physical location within a tenant.
	SiteID uuid.UUID
	// RequirementID identifies a compliance requirement record.
	RequirementID uuid.UUID
	// EquipmentID identifies an equipment compliance child record.
	EquipmentID uuid.UUID
	// UserID identifies an actor (operator, assignee) for audit attribution.
	UserID uuid.UUID
)

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+what)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" cannot be nil")
	}
	return u, nil
}

// ParseTenantID constructs a TenantID from external input.
func ParseTenantID(s string) (TenantID, error) {
	u, err := parseUUID(s, "tenant id")
	return TenantID(u), err
}

// ParseSiteID constructs a SiteID from external input.
func ParseSiteID(s string) (SiteID, error) {
	u, err := parseUUID(s, "site id")
	return SiteID(u), err
}

// ParseRequirementID constructs a RequirementID from external input.
func ParseRequirementID(s string) (RequirementID, error) {
	u, err := parseUUID(s, "requirement id")
	return RequirementID(u), err
}

// ParseEquipmentID constructs an EquipmentID from external input.
func ParseEquipmentID(s string) (EquipmentID, error) {
	u, err := parseUUID(s, "equipment id")
	return EquipmentID(u), err
}

// ParseUserID constructs a UserID from external input.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user id")
	return UserID(u), err
}

func (id TenantID) String() string      { return uuid.UUID(id).String() }
func (id SiteID) String() string        { return uuid.UUID(id).String() }
func (id RequirementID) String() string { return uuid.UUID(id).String() }
func (id EquipmentID) String() string   { return uuid.UUID(id).String() }
func (id UserID) String() string        { return uuid.UUID(id).String() }

func (id TenantID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id SiteID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id RequirementID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id EquipmentID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
