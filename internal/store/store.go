package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/crucial707/tagwatch/internal/models"
)

// ErrNotFound reports that a referenced entity does not exist, or that an
// asset has no open incident to resolve.
var ErrNotFound = errors.New("not found")

// Store is the single owner of all console state: assets, scans, incidents
// and the audit trail. Every read hands out copies, every write goes through
// a mutation method, and the mutex serializes whole operations so no partial
// mutation is ever observable.
type Store struct {
	mu    sync.Mutex
	clock Clock
	ids   IDGenerator
	seed  int64

	assets     map[string]models.Asset
	assetOrder []string
	scans      []models.Scan
	incidents  []models.Incident
	audit      []models.AuditLogEntry // newest first
}

// New builds a store populated from the deterministic seed.
func New(clock Clock, ids IDGenerator, seed int64) *Store {
	s := &Store{clock: clock, ids: ids, seed: seed}
	s.Reset()
	return s
}

// Reset discards all four collections and reloads the seed population.
// The same seed always yields identical contents.
func (s *Store) Reset() {
	snap := generate(s.seed)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = make(map[string]models.Asset, len(snap.assets))
	s.assetOrder = make([]string, 0, len(snap.assets))
	for _, a := range snap.assets {
		s.assets[a.ID] = a
		s.assetOrder = append(s.assetOrder, a.ID)
	}
	s.scans = snap.scans
	s.incidents = snap.incidents
	s.audit = snap.audit
}

// AssetFilter narrows ListAssets. All set fields must match (intersection).
// Search is a case-insensitive substring match over name and tag id.
type AssetFilter struct {
	Site     string
	Status   string
	Severity string
	Search   string
}

func (f AssetFilter) matches(a models.Asset) bool {
	if f.Site != "" && a.Site != f.Site {
		return false
	}
	if f.Status != "" && string(a.Status) != f.Status {
		return false
	}
	if f.Severity != "" && string(a.Severity) != f.Severity {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(a.Name), q) &&
			!strings.Contains(strings.ToLower(a.TagID), q) {
			return false
		}
	}
	return true
}

// ListAssets returns assets matching the filter in stable seed order.
// No match yields an empty slice, never an error.
func (s *Store) ListAssets(f AssetFilter) []models.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Asset, 0, len(s.assetOrder))
	for _, id := range s.assetOrder {
		if a := s.assets[id]; f.matches(a) {
			out = append(out, copyAsset(a))
		}
	}
	return out
}

// GetAsset returns the asset with the given id.
func (s *Store) GetAsset(id string) (models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[id]
	if !ok {
		return models.Asset{}, fmt.Errorf("asset %s: %w", id, ErrNotFound)
	}
	return copyAsset(a), nil
}

// ListScansForAsset returns the asset's scans ordered by scannedAt descending.
func (s *Store) ListScansForAsset(assetID string) []models.Scan {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Scan, 0, 8)
	for _, sc := range s.scans {
		if sc.AssetID == assetID {
			out = append(out, sc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScannedAt.After(out[j].ScannedAt)
	})
	return out
}

// ListIncidentsForAsset returns the asset's incidents ordered by createdAt
// descending.
func (s *Store) ListIncidentsForAsset(assetID string) []models.Incident {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Incident, 0, 4)
	for _, inc := range s.incidents {
		if inc.AssetID == assetID {
			out = append(out, copyIncident(inc))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// CreateScanInput is the caller-supplied part of a scan.
type CreateScanInput struct {
	AssetID  string
	Site     string
	ReaderID string
	// ScannedAt is optional; the zero value means "stamp with the store clock".
	ScannedAt time.Time
}

// CreateScan appends a scan for an existing asset and advances the asset's
// lastSeenAt when the scan is strictly newer. An older scan never regresses
// lastSeenAt.
func (s *Store) CreateScan(in CreateScanInput) (models.Scan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[in.AssetID]
	if !ok {
		return models.Scan{}, fmt.Errorf("asset %s: %w", in.AssetID, ErrNotFound)
	}
	at := in.ScannedAt
	if at.IsZero() {
		at = s.clock.Now()
	}
	at = at.UTC()
	sc := models.Scan{
		ID:        s.ids.NewID("SCN"),
		AssetID:   in.AssetID,
		Site:      in.Site,
		ScannedAt: at,
		ReaderID:  in.ReaderID,
	}
	s.scans = append(s.scans, sc)
	if at.After(a.LastSeenAt) {
		a.LastSeenAt = at
		s.assets[a.ID] = a
	}
	return sc, nil
}

// CreateIncidentInput is the caller-supplied part of an incident.
type CreateIncidentInput struct {
	AssetID     string
	Severity    models.Severity
	Description string
}

// CreateIncident opens an incident on an existing asset.
func (s *Store) CreateIncident(in CreateIncidentInput) (models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[in.AssetID]; !ok {
		return models.Incident{}, fmt.Errorf("asset %s: %w", in.AssetID, ErrNotFound)
	}
	inc := models.Incident{
		ID:          s.ids.NewID("INC"),
		AssetID:     in.AssetID,
		Severity:    in.Severity,
		Description: in.Description,
		CreatedAt:   s.clock.Now().UTC(),
	}
	s.incidents = append(s.incidents, inc)
	return inc, nil
}

// ResolveIncident resolves the most-recently-created open incident for the
// asset, flips the asset's status to resolved, and appends exactly one audit
// entry. A second resolve with no open incident left reports ErrNotFound and
// never double-resolves.
func (s *Store) ResolveIncident(assetID, resolvedBy, reason string) (models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, inc := range s.incidents {
		if inc.AssetID != assetID || inc.ResolvedAt != nil {
			continue
		}
		if idx == -1 || inc.CreatedAt.After(s.incidents[idx].CreatedAt) {
			idx = i
		}
	}
	if idx == -1 {
		return models.Incident{}, fmt.Errorf("open incident for asset %s: %w", assetID, ErrNotFound)
	}
	now := s.clock.Now().UTC()
	inc := s.incidents[idx]
	inc.ResolvedAt = &now
	inc.ResolvedBy = resolvedBy
	inc.ResolutionReason = reason
	s.incidents[idx] = inc
	if a, ok := s.assets[assetID]; ok {
		a.Status = models.StatusResolved
		s.assets[assetID] = a
	}
	s.appendAuditLocked(models.AuditLogEntry{
		UserID:       resolvedBy,
		Action:       models.AuditActionIncidentResolve,
		ResourceType: models.AuditResourceIncident,
		ResourceID:   inc.ID,
		Details: map[string]string{
			"assetId":          assetID,
			"incidentId":       inc.ID,
			"resolutionReason": reason,
		},
	})
	return copyIncident(inc), nil
}

// AppendAuditLog appends an audit entry at the head of the trail, assigning
// a fresh id and the current timestamp when absent.
func (s *Store) AppendAuditLog(e models.AuditLogEntry) models.AuditLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyAuditEntry(s.appendAuditLocked(e))
}

func (s *Store) appendAuditLocked(e models.AuditLogEntry) models.AuditLogEntry {
	if e.ID == "" {
		e.ID = s.ids.NewID("AUD")
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = s.clock.Now().UTC()
	}
	e.Details = copyDetails(e.Details)
	s.audit = append([]models.AuditLogEntry{e}, s.audit...)
	return e
}

// AuditFilter narrows ListAuditLogs. Limit <= 0 means no limit; an
// out-of-range limit is clamped, never an error.
type AuditFilter struct {
	Action       string
	UserID       string
	ResourceType string
	Limit        int
}

func (f AuditFilter) matches(e models.AuditLogEntry) bool {
	if f.Action != "" && e.Action != f.Action {
		return false
	}
	if f.UserID != "" && e.UserID != f.UserID {
		return false
	}
	if f.ResourceType != "" && e.ResourceType != f.ResourceType {
		return false
	}
	return true
}

// ListAuditLogs returns matching audit entries newest first.
func (s *Store) ListAuditLogs(f AuditFilter) []models.AuditLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AuditLogEntry, 0, len(s.audit))
	for _, e := range s.audit {
		if f.matches(e) {
			out = append(out, copyAuditEntry(e))
		}
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out
}

// OpenIncidentCount reports how many incidents are currently unresolved.
func (s *Store) OpenIncidentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, inc := range s.incidents {
		if inc.ResolvedAt == nil {
			n++
		}
	}
	return n
}

func copyAsset(a models.Asset) models.Asset {
	out := a
	out.Metadata = copyDetails(a.Metadata)
	return out
}

func copyIncident(in models.Incident) models.Incident {
	out := in
	if in.ResolvedAt != nil {
		t := *in.ResolvedAt
		out.ResolvedAt = &t
	}
	return out
}

func copyAuditEntry(e models.AuditLogEntry) models.AuditLogEntry {
	out := e
	out.Details = copyDetails(e.Details)
	return out
}

func copyDetails(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
