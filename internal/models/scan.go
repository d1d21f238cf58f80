package models

import "time"

// Scan is one detection event of an asset by a reader at a site.
// Scans are append-only and never modified after creation.
type Scan struct {
	ID        string    `json:"id"`
	AssetID   string    `json:"assetId"`
	Site      string    `json:"site"`
	ScannedAt time.Time `json:"scannedAt"`
	ReaderID  string    `json:"readerId"`
}
