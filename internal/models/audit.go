package models

import "time"

// Audit actions recorded by the store. There is no update or delete: the
// audit trail is strictly append-only.
const (
	AuditActionIncidentResolve = "incident.resolve"
)

// Audit resource types.
const (
	AuditResourceIncident = "incident"
)

// AuditLogEntry is one immutable audit record.
type AuditLogEntry struct {
	ID           string            `json:"id"`
	UserID       string            `json:"userId"`
	Action       string            `json:"action"`
	ResourceType string            `json:"resourceType"`
	ResourceID   string            `json:"resourceId"`
	Details      map[string]string `json:"details,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
}
