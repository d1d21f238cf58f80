package models

import "time"

// AssetStatus is the lifecycle state of a tracked asset.
type AssetStatus string

const (
	StatusActive   AssetStatus = "active"
	StatusMissing  AssetStatus = "missing"
	StatusAnomaly  AssetStatus = "anomaly"
	StatusResolved AssetStatus = "resolved"
)

// Severity ranks an asset's condition or an incident.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

type Asset struct {
	ID         string            `json:"id"`
	TagID      string            `json:"tagId"`
	Name       string            `json:"name"`
	Site       string            `json:"site"`
	Status     AssetStatus       `json:"status"`
	Severity   Severity          `json:"severity"`
	LastSeenAt time.Time         `json:"lastSeenAt"`
	CreatedAt  time.Time         `json:"createdAt"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}
