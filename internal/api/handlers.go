// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/farelane/mobileopt/internal/models"
)

// Handler serves the HTTP endpoints. The event catalog is an in-memory
// fixture set; Mobileopt sits in front of the platform's catalog service in
// production and the demo data stands in for it here.
type Handler struct {
	startTime time.Time
	events    []models.Event
}

// NewHandler creates a Handler with the demo event catalog.
func NewHandler() *Handler {
	return &Handler{
		startTime: time.Now(),
		events:    demoEvents(),
	}
}

// HealthLive is the liveness probe. It always returns 200 while the process
// is running.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]any{"status": "alive"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady is the readiness probe.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]any{"status": "ready"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// Health reports overall service health and uptime.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]any{
			"status":         "healthy",
			"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// Events lists the event catalog.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     h.events,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// EventByID returns a single event.
func (h *Handler) EventByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for i := range h.events {
		if h.events[i].ID == id {
			respondJSON(w, http.StatusOK, &models.APIResponse{
				Status:   "success",
				Data:     h.events[i],
				Metadata: models.Metadata{Timestamp: time.Now()},
			})
			return
		}
	}
	respondError(w, http.StatusNotFound, "NOT_FOUND", "event not found", nil)
}

// demoEvents returns the fixture catalog.
func demoEvents() []models.Event {
	now := time.Now()
	return []models.Event{
		{
			ID:          "evt-2001",
			Name:        "Midnight Sun Festival",
			Description: "Three days of music under the midnight sun.",
			StartsAt:    now.AddDate(0, 1, 0),
			DoorsOpenAt: now.AddDate(0, 1, 0).Add(-2 * time.Hour),
			Status:      "on_sale",
			ImageURL:    "https://cdn.farelane.com/events/midnight-sun/hero.jpg",
			Venue: models.Venue{
				ID:       "ven-101",
				Name:     "Kaisaniemi Park",
				Address:  "Kaisaniemenranta 2",
				City:     "Helsinki",
				Country:  "FI",
				Capacity: 25000,
				Lat:      60.1756,
				Lon:      24.9442,
				MapURL:   "https://cdn.farelane.com/venues/kaisaniemi/map.png",
			},
			Sections: []models.Section{
				{ID: "sec-1", Name: "General Admission", PriceFrom: 89, Currency: "EUR", Available: 10500, Total: 20000},
				{ID: "sec-2", Name: "VIP", PriceFrom: 249, Currency: "EUR", Available: 120, Total: 500},
			},
			Organizer: models.Organizer{
				ID:      "org-7",
				Name:    "Aurora Live",
				Email:   "bookings@auroralive.fi",
				LogoURL: "https://cdn.farelane.com/orgs/aurora/logo.png",
			},
			Tags: []string{"festival", "outdoor", "music"},
		},
		{
			ID:          "evt-2002",
			Name:        "Design Talks: Winter Edition",
			Description: "An evening of lightning talks from Nordic designers.",
			StartsAt:    now.AddDate(0, 0, 14),
			DoorsOpenAt: now.AddDate(0, 0, 14).Add(-30 * time.Minute),
			Status:      "on_sale",
			ImageURL:    "https://cdn.farelane.com/events/design-talks/hero.png",
			Venue: models.Venue{
				ID:       "ven-102",
				Name:     "Oodi Central Library",
				Address:  "Töölönlahdenkatu 4",
				City:     "Helsinki",
				Country:  "FI",
				Capacity: 250,
				Lat:      60.1741,
				Lon:      24.9384,
				MapURL:   "https://cdn.farelane.com/venues/oodi/map.png",
			},
			Sections: []models.Section{
				{ID: "sec-3", Name: "Open Seating", PriceFrom: 15, Currency: "EUR", Available: 42, Total: 250},
			},
			Organizer: models.Organizer{
				ID:      "org-12",
				Name:    "Helsinki Design Collective",
				Email:   "hello@hdc.fi",
				LogoURL: "https://cdn.farelane.com/orgs/hdc/logo.png",
			},
			Tags: []string{"talks", "design"},
		},
	}
}
