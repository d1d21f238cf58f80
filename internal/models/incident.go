package models

import "time"

// Incident is a flagged issue on an asset. It is created open and transitions
// at most once to resolved; the resolution fields are set together and never
// reverted.
type Incident struct {
	ID               string     `json:"id"`
	AssetID          string     `json:"assetId"`
	Severity         Severity   `json:"severity"`
	Description      string     `json:"description"`
	CreatedAt        time.Time  `json:"createdAt"`
	ResolvedAt       *time.Time `json:"resolvedAt,omitempty"`
	ResolvedBy       string     `json:"resolvedBy,omitempty"`
	ResolutionReason string     `json:"resolutionReason,omitempty"`
}

// Open reports whether the incident has not been resolved yet.
func (i Incident) Open() bool {
	return i.ResolvedAt == nil
}
