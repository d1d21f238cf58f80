package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/crucial707/tagwatch/internal/metrics"
	"github.com/crucial707/tagwatch/internal/models"
	"github.com/crucial707/tagwatch/internal/policy"
	"github.com/crucial707/tagwatch/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type IncidentHandler struct {
	Store *store.Store
}

//
// ==========================
// Create Incident
// ==========================
//

// CreateIncident opens an incident on an asset. Unlike every other mutating
// route this one is not behind a policy action: the simulator and the
// console's demo tooling both inject incidents with whatever identity they
// carry. See DESIGN.md before tightening this.
func (h *IncidentHandler) CreateIncident(w http.ResponseWriter, r *http.Request) {
	var input struct {
		AssetID     string `json:"assetId" validate:"required"`
		Severity    string `json:"severity" validate:"required,oneof=critical high medium low info"`
		Description string `json:"description" validate:"required,max=1000"`
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

	incident, err := h.Store.CreateIncident(store.CreateIncidentInput{
		AssetID:     input.AssetID,
		Severity:    models.Severity(input.Severity),
		Description: input.Description,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			JSONError(w, "asset not found", http.StatusNotFound)
			return
		}
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.SetOpenIncidents(h.Store.OpenIncidentCount())
	writeJSON(w, http.StatusCreated, incident)
}

//
// ==========================
// Resolve Incident
// ==========================
//

// ResolveIncident resolves the most recent open incident for the asset in
// the URL. The store flips the asset to resolved and appends the audit entry
// in the same operation, so a successful resolution always leaves a trail.
func (h *IncidentHandler) ResolveIncident(w http.ResponseWriter, r *http.Request) {
	ident, ok := allow(w, r, policy.ActionResolveIncident)
	if !ok {
		return
	}

	assetID := chi.URLParam(r, "assetID")

	var input struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		JSONError(w, "reason is required", http.StatusBadRequest)
		return
	}

	incident, err := h.Store.ResolveIncident(assetID, ident.Actor, reason)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			JSONError(w, "no open incident for asset", http.StatusNotFound)
			return
		}
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.RecordIncidentResolved()
	metrics.SetOpenIncidents(h.Store.OpenIncidentCount())
	writeJSON(w, http.StatusOK, incident)
}
