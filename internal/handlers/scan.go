package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/crucial707/tagwatch/internal/metrics"
	"github.com/crucial707/tagwatch/internal/policy"
	"github.com/crucial707/tagwatch/internal/store"
	"github.com/go-playground/validator/v10"
)

type ScanHandler struct {
	Store *store.Store
}

//
// ==========================
// Create Scan
// ==========================
//

// CreateScan ingests one detection event. The server stamps the scan time;
// the asset's lastSeenAt only ever moves forward.
func (h *ScanHandler) CreateScan(w http.ResponseWriter, r *http.Request) {
	if _, ok := allow(w, r, policy.ActionCreateScan); !ok {
		return
	}

	var input struct {
		AssetID  string `json:"assetId" validate:"required"`
		Site     string `json:"site" validate:"required"`
		ReaderID string `json:"readerId" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	scan, err := h.Store.CreateScan(store.CreateScanInput{
		AssetID:  input.AssetID,
		Site:     input.Site,
		ReaderID: input.ReaderID,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			JSONError(w, "asset not found", http.StatusNotFound)
			return
		}
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.RecordScanIngested(scan.Site)
	writeJSON(w, http.StatusCreated, scan)
}
