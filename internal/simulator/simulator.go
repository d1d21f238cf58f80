package simulator

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/crucial707/tagwatch/internal/metrics"
	"github.com/crucial707/tagwatch/internal/models"
	"github.com/crucial707/tagwatch/internal/store"
	"github.com/robfig/cron/v3"
)

var simSites = []string{"warehouse-a", "warehouse-b", "dock-3", "lab-2", "yard"}

var simReaders = []string{"rdr-01", "rdr-02", "rdr-03", "rdr-04"}

// Simulator replays fake reader traffic into the store so the console has
// live-looking data without hardware. Each tick ingests one scan through the
// store's own mutation path, so it interleaves with HTTP requests only at
// whole-operation granularity.
type Simulator struct {
	store    *store.Store
	interval time.Duration
	rng      *rand.Rand
	cron     *cron.Cron
}

func New(st *store.Store, interval time.Duration) *Simulator {
	return &Simulator{
		store:    st,
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		cron:     cron.New(),
	}
}

// Start schedules the tick and runs the cron loop in the background.
func (s *Simulator) Start() error {
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, s.Tick); err != nil {
		return fmt.Errorf("simulator: schedule %q: %w", spec, err)
	}
	s.cron.Start()
	slog.Info("simulator started", "interval", s.interval.String())
	return nil
}

// Stop halts the cron loop. Already-running ticks finish.
func (s *Simulator) Stop() {
	s.cron.Stop()
}

// Tick ingests one synthetic scan for a random asset; roughly one tick in
// eight also opens an incident on the scanned asset.
func (s *Simulator) Tick() {
	assets := s.store.ListAssets(store.AssetFilter{})
	if len(assets) == 0 {
		return
	}
	a := assets[s.rng.Intn(len(assets))]
	site := simSites[s.rng.Intn(len(simSites))]

	scan, err := s.store.CreateScan(store.CreateScanInput{
		AssetID:  a.ID,
		Site:     site,
		ReaderID: simReaders[s.rng.Intn(len(simReaders))],
	})
	if err != nil {
		slog.Warn("simulator: scan rejected", "asset_id", a.ID, "err", err)
		return
	}
	metrics.RecordScanIngested(site)
	slog.Debug("simulator: scan ingested", "scan_id", scan.ID, "asset_id", a.ID, "site", site)

	if s.rng.Intn(8) == 0 {
		_, err := s.store.CreateIncident(store.CreateIncidentInput{
			AssetID:     a.ID,
			Severity:    models.SeverityMedium,
			Description: fmt.Sprintf("Simulated anomaly: %s read at %s, expected %s", a.TagID, site, a.Site),
		})
		if err != nil {
			slog.Warn("simulator: incident rejected", "asset_id", a.ID, "err", err)
			return
		}
		metrics.SetOpenIncidents(s.store.OpenIncidentCount())
	}
}
