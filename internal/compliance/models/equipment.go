package models

import (
	"time"

	id "complytrack/pkg/domain"
)

// Equipment is the child record attached to a requirement of category
// "equipment". It is created alongside the parent, inherits the parent's due
// date into both its inspection and maintenance dates, and is soft-deleted in
// cascade with the parent.
//
// Equipment records are not independently re-evaluated by the audit engine;
// they stay frozen at their creation-time schedule. Known gap, see DESIGN.md.
type Equipment struct {
	ID            id.EquipmentID   `json:"id"`
	RequirementID id.RequirementID `json:"requirement_id"`

	EquipmentType       string               `json:"equipment_type,omitempty"`
	Status              id.RequirementStatus `json:"status"`
	NextInspectionDate  time.Time            `json:"next_inspection_date"`
	NextMaintenanceDate time.Time            `json:"next_maintenance_date"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	IsDeleted bool       `json:"-"`
	DeletedAt *time.Time `json:"-"`
}

// NewEquipmentForRequirement builds the child record for an equipment-category
// requirement, copying the parent's due date into both child dates.
func NewEquipmentForRequirement(equipmentID id.EquipmentID, parent *Requirement, now time.Time) *Equipment {
	return &Equipment{
		ID:                  equipmentID,
		RequirementID:       parent.ID,
		EquipmentType:       parent.ComplianceType,
		Status:              id.StatusPending,
		NextInspectionDate:  parent.NextInspectionDate,
		NextMaintenanceDate: parent.NextInspectionDate,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// ApplyDeletion marks the equipment record soft-deleted.
func (e *Equipment) ApplyDeletion(now time.Time) {
	e.IsDeleted = true
	stamp := now
	e.DeletedAt = &stamp
	e.UpdatedAt = now
}
