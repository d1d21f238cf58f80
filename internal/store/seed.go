package store

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/crucial707/tagwatch/internal/models"
)

// The seed population is drawn from a single rand.Source in a fixed order,
// so equal seeds always produce bit-identical collections. Reset depends on
// that. Seeded entities get readable sequential ids; the injected
// IDGenerator is only used for runtime mutations.

var (
	seedSites = []string{"warehouse-a", "warehouse-b", "dock-3", "lab-2", "yard"}

	seedReaders = []string{"rdr-01", "rdr-02", "rdr-03", "rdr-04"}

	seedNames = []string{
		"Pallet Jack", "Forklift", "Scanner Cart", "Toolkit",
		"Crate", "Server Sled", "Camera Rig", "Spare Battery",
	}
)

const seedAssetCount = 24

// seedBase anchors all seeded timestamps. Fixed, not wall-clock, so reseeds
// are reproducible.
var seedBase = time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)

type snapshot struct {
	assets    []models.Asset
	scans     []models.Scan
	incidents []models.Incident
	audit     []models.AuditLogEntry
}

func generate(seed int64) snapshot {
	rng := rand.New(rand.NewSource(seed))
	var snap snapshot
	scanSeq := 0
	incSeq := 0
	audSeq := 0

	for i := 0; i < seedAssetCount; i++ {
		id := fmt.Sprintf("AST-%04d", i+1)
		site := seedSites[rng.Intn(len(seedSites))]

		// Statuses are assigned by position, not by the rng, so every seed
		// contains missing and anomaly assets for the console to show.
		var status models.AssetStatus
		var severity models.Severity
		switch i % 8 {
		case 3:
			status = models.StatusMissing
			severity = pick(rng, models.SeverityCritical, models.SeverityHigh)
		case 5:
			status = models.StatusAnomaly
			severity = pick(rng, models.SeverityHigh, models.SeverityMedium)
		default:
			status = models.StatusActive
			severity = pick(rng, models.SeverityLow, models.SeverityInfo)
		}

		created := seedBase.Add(-time.Duration(24*(30+rng.Intn(60))) * time.Hour)
		a := models.Asset{
			ID:        id,
			TagID:     fmt.Sprintf("RFID-%06X", rng.Intn(0x1000000)),
			Name:      fmt.Sprintf("%s %02d", seedNames[rng.Intn(len(seedNames))], i+1),
			Site:      site,
			Status:    status,
			Severity:  severity,
			CreatedAt: created,
			Metadata:  map[string]string{"owner": pick(rng, "facilities", "it-ops", "logistics")},
		}

		// Scan history: strictly increasing times after creation; lastSeenAt
		// is the newest scan by construction.
		last := created
		for n := 2 + rng.Intn(4); n > 0; n-- {
			last = last.Add(time.Duration(1+rng.Intn(72)) * time.Hour)
			scanSeq++
			snap.scans = append(snap.scans, models.Scan{
				ID:        fmt.Sprintf("SCN-%06d", scanSeq),
				AssetID:   id,
				Site:      site,
				ScannedAt: last,
				ReaderID:  seedReaders[rng.Intn(len(seedReaders))],
			})
		}
		a.LastSeenAt = last
		snap.assets = append(snap.assets, a)

		// Anomaly assets carry one already-resolved incident with its audit
		// record, so the trail is non-empty out of the box.
		if status == models.StatusAnomaly {
			incSeq++
			resolvedAt := last.Add(-time.Duration(1+rng.Intn(48)) * time.Hour)
			resolved := models.Incident{
				ID:               fmt.Sprintf("INC-%04d", incSeq),
				AssetID:          id,
				Severity:         models.SeverityMedium,
				Description:      fmt.Sprintf("Reader mismatch for %s at %s", a.TagID, site),
				CreatedAt:        resolvedAt.Add(-time.Duration(2+rng.Intn(24)) * time.Hour),
				ResolvedAt:       &resolvedAt,
				ResolvedBy:       "seed-admin",
				ResolutionReason: "Re-tagged after physical check",
			}
			snap.incidents = append(snap.incidents, resolved)
			audSeq++
			snap.audit = append(snap.audit, models.AuditLogEntry{
				ID:           fmt.Sprintf("AUD-%04d", audSeq),
				UserID:       resolved.ResolvedBy,
				Action:       models.AuditActionIncidentResolve,
				ResourceType: models.AuditResourceIncident,
				ResourceID:   resolved.ID,
				Details: map[string]string{
					"assetId":          id,
					"incidentId":       resolved.ID,
					"resolutionReason": resolved.ResolutionReason,
				},
				Timestamp: resolvedAt,
			})
		}

		// Every missing or anomaly asset has an open incident to resolve.
		if status == models.StatusMissing || status == models.StatusAnomaly {
			incSeq++
			desc := fmt.Sprintf("No reads for %s since %s", a.TagID, last.Format(time.RFC3339))
			if status == models.StatusAnomaly {
				desc = fmt.Sprintf("Unexpected site for %s, last read at %s", a.TagID, site)
			}
			snap.incidents = append(snap.incidents, models.Incident{
				ID:          fmt.Sprintf("INC-%04d", incSeq),
				AssetID:     id,
				Severity:    severity,
				Description: desc,
				CreatedAt:   last.Add(time.Duration(5+rng.Intn(120)) * time.Minute),
			})
		}
	}

	// The trail is stored newest first.
	for i, j := 0, len(snap.audit)-1; i < j; i, j = i+1, j-1 {
		snap.audit[i], snap.audit[j] = snap.audit[j], snap.audit[i]
	}
	return snap
}

func pick[T any](rng *rand.Rand, choices ...T) T {
	return choices[rng.Intn(len(choices))]
}
