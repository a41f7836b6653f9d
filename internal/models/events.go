// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

package models

import "time"

// Event is a ticketed event as served by the catalog endpoints. The full
// shape is deliberately wide; the optimization pipeline projects it down for
// mobile clients according to per-endpoint field rules.
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	DoorsOpenAt time.Time `json:"doors_open_at"`
	Status      string    `json:"status"`
	ImageURL    string    `json:"image_url"`
	Venue       Venue     `json:"venue"`
	Sections    []Section `json:"sections"`
	Organizer   Organizer `json:"organizer"`
	Tags        []string  `json:"tags"`
}

// Venue is the physical location of an event.
type Venue struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Capacity int     `json:"capacity"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	MapURL   string  `json:"map_url"`
}

// Section is a seating section with ticket availability.
type Section struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	PriceFrom float64 `json:"price_from"`
	Currency  string  `json:"currency"`
	Available int     `json:"available"`
	Total     int     `json:"total"`
}

// Organizer identifies the tenant that owns an event.
type Organizer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	LogoURL string `json:"logo_url"`
}
