package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/compliance"
	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/ledger"
	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/report"
	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/store"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label        string   `json:"label"`
		WasteType    string   `json:"waste_type"`
		Isotopes     []string `json:"isotopes"`
		ActivityBq   float64  `json:"activity_bq"`
		VolumeL      float64  `json:"volume_l"`
		MassKg       float64  `json:"mass_kg"`
		Location     string   `json:"location"`
		StorageClass string   `json:"storage_class"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}

	c, err := s.ledger.Register(ledger.RegisterParams{
		Label:        req.Label,
		WasteType:    req.WasteType,
		Isotopes:     req.Isotopes,
		ActivityBq:   req.ActivityBq,
		VolumeL:      req.VolumeL,
		MassKg:       req.MassKg,
		Location:     req.Location,
		StorageClass: req.StorageClass,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, containerPayload(*c))
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	containers, err := report.Inventory(s.db, r.URL.Query().Get("location"), r.URL.Query().Get("type"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	payload := make([]map[string]any, 0, len(containers))
	for _, c := range containers {
		payload = append(payload, containerPayload(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"containers": payload})
}

func (s *Server) handleGetContainer(w http.ResponseWriter, r *http.Request) {
	c, err := s.db.GetContainer(chi.URLParam(r, "containerID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, containerPayload(*c))
}

func (s *Server) handleCurrentActivity(w http.ResponseWriter, r *http.Request) {
	containerID := chi.URLParam(r, "containerID")
	activity, err := report.CurrentActivity(s.db, containerID, time.Now())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"container_id":        containerID,
		"current_activity_bq": activity,
	})
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ToLocation    string `json:"to_location"`
		TransferredBy string `json:"transferred_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}

	t, err := s.ledger.Transfer(chi.URLParam(r, "containerID"), req.ToLocation, req.TransferredBy)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, transferPayload(*t))
}

func (s *Server) handleListTransfers(w http.ResponseWriter, r *http.Request) {
	filter := store.TransferFilter{ContainerID: r.URL.Query().Get("container_id")}
	if v := r.URL.Query().Get("manifested"); v != "" {
		manifested := v == "true" || v == "1"
		filter.Manifested = &manifested
	}

	transfers, err := s.db.ListTransfers(filter)
	if err != nil {
		s.writeError(w, err)
		return
	}

	payload := make([]map[string]any, 0, len(transfers))
	for _, t := range transfers {
		payload = append(payload, transferPayload(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{"transfers": payload})
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	transferID, err := strconv.ParseInt(chi.URLParam(r, "transferID"), 10, 64)
	if err != nil {
		http.Error(w, `{"error":"invalid transfer id"}`, http.StatusBadRequest)
		return
	}

	m, err := report.ManifestData(s.db, transferID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleCompliance(w http.ResponseWriter, r *http.Request) {
	containers, err := s.db.ListContainers(store.ContainerFilter{Status: store.StatusActive})
	if err != nil {
		s.writeError(w, err)
		return
	}
	transfers, err := s.db.ListTransfers(store.TransferFilter{})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, compliance.Check(containers, transfers, time.Now()))
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := report.DecaySchedule(s.db, time.Now())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"schedule": schedule})
}

func (s *Server) handleTotalActivity(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	total, err := report.TotalActivity(s.db, location)
	if err != nil {
		s.writeError(w, err)
		return
	}

	payload := map[string]any{"total_activity_bq": total}
	if location != "" {
		payload["location"] = location
	}
	writeJSON(w, http.StatusOK, payload)
}

// writeError maps domain errors onto HTTP statuses. Anything outside
// the not-found / invalid-input taxonomy is a storage failure.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, ledger.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		log.Printf("storage failure: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func containerPayload(c store.WasteContainer) map[string]any {
	isotopes := c.Isotopes
	if isotopes == nil {
		isotopes = []string{}
	}
	return map[string]any{
		"id":            c.ID,
		"label":         c.Label,
		"waste_type":    c.WasteType,
		"isotopes":      isotopes,
		"activity_bq":   c.ActivityBq,
		"volume_l":      c.VolumeL,
		"mass_kg":       c.MassKg,
		"location":      c.Location,
		"storage_class": c.StorageClass,
		"created_at":    c.CreatedAt,
		"decay_date":    c.DecayDate,
		"status":        c.Status,
	}
}

func transferPayload(t store.TransferRecord) map[string]any {
	return map[string]any{
		"id":             t.ID,
		"container_id":   t.ContainerID,
		"from_location":  t.FromLocation,
		"to_location":    t.ToLocation,
		"transferred_by": t.TransferredBy,
		"ts":             t.TS,
		"manifested":     t.Manifested,
	}
}
