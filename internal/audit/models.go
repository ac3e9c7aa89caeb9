package audit

import "time"

// Action names the operator or engine activity an event records.
type Action string

const (
	ActionRequirementCreated Action = "requirement.created"
	ActionRequirementUpdated Action = "requirement.updated"
	ActionRequirementDeleted Action = "requirement.deleted"
	ActionAuditRunCompleted  Action = "audit_run.completed"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
//
// TenantID scopes the event; ActorID is the operator attribution, or
// "system" when the action was triggered by an external scheduler rather
// than a person.
type Event struct {
	Timestamp time.Time
	TenantID  string
	ActorID   string
	Action    Action
	Subject   string
	Detail    string
}

// SystemActor is the attribution used when no operator identity is present.
const SystemActor = "system"
