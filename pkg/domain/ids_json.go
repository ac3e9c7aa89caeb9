package domain

import "github.com/google/uuid"

// Text marshalling so typed IDs render as canonical UUID strings in JSON
// rather than as raw byte arrays. Unmarshalling goes through the same
// validation as the Parse helpers.

func (id TenantID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id *TenantID) UnmarshalText(b []byte) error {
	parsed, err := ParseTenantID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id SiteID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id *SiteID) UnmarshalText(b []byte) error {
	parsed, err := ParseSiteID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id RequirementID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id *RequirementID) UnmarshalText(b []byte) error {
	parsed, err := ParseRequirementID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id EquipmentID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id *EquipmentID) UnmarshalText(b []byte) error {
	parsed, err := ParseEquipmentID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id UserID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id *UserID) UnmarshalText(b []byte) error {
	parsed, err := ParseUserID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// NewTenantID and friends mint fresh random IDs.
func NewTenantID() TenantID           { return TenantID(uuid.New()) }
func NewSiteID() SiteID               { return SiteID(uuid.New()) }
func NewRequirementID() RequirementID { return RequirementID(uuid.New()) }
func NewEquipmentID() EquipmentID     { return EquipmentID(uuid.New()) }
func NewUserID() UserID               { return UserID(uuid.New()) }
