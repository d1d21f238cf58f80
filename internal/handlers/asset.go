package handlers

import (
	"errors"
	"net/http"

	"github.com/crucial707/tagwatch/internal/models"
	"github.com/crucial707/tagwatch/internal/policy"
	"github.com/crucial707/tagwatch/internal/store"
	"github.com/go-chi/chi/v5"
)

type AssetHandler struct {
	Store *store.Store
}

//
// ==========================
// List Assets
// ==========================
//

// ListAssets returns assets matching the optional site/status/severity
// filters and the free-text search. All filters compose as an intersection.
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	ident, ok := allow(w, r, policy.ActionViewAssets)
	if !ok {
		return
	}

	q := r.URL.Query()
	f := store.AssetFilter{
		Site:     q.Get("site"),
		Status:   q.Get("status"),
		Severity: q.Get("severity"),
		Search:   q.Get("search"),
	}

	// Filtering and searching are distinct policy actions; check them when
	// the corresponding parameters are present.
	if f.Site != "" || f.Status != "" || f.Severity != "" {
		if !policy.Authorize(ident.Role, policy.ActionFilterAssets) {
			JSONError(w, ErrMessageForbidden, http.StatusForbidden)
			return
		}
	}
	if f.Search != "" {
		if !policy.Authorize(ident.Role, policy.ActionSearchAssets) {
			JSONError(w, ErrMessageForbidden, http.StatusForbidden)
			return
		}
	}

	writeJSON(w, http.StatusOK, h.Store.ListAssets(f))
}

//
// ==========================
// Get Asset Detail
// ==========================
//

// AssetDetail is the master/detail payload: the asset plus its scan and
// incident history.
type AssetDetail struct {
	Asset     models.Asset      `json:"asset"`
	Scans     []models.Scan     `json:"scans"`
	Incidents []models.Incident `json:"incidents"`
}

func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	if _, ok := allow(w, r, policy.ActionViewAssetDetail); !ok {
		return
	}

	id := chi.URLParam(r, "id")
	asset, err := h.Store.GetAsset(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			JSONError(w, "asset not found", http.StatusNotFound)
			return
		}
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, AssetDetail{
		Asset:     asset,
		Scans:     h.Store.ListScansForAsset(id),
		Incidents: h.Store.ListIncidentsForAsset(id),
	})
}
