// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

/*
Package models defines data structures for the Mobileopt application.

This package contains the data models shared across the API layer, including
the standardized response envelope and the ticketing domain types served by
the demo endpoints.

Key Components:

  - APIResponse: Standardized API response wrapper with status, data, and metadata
  - APIError: Error code, message, and optional details
  - Event: Ticketed event with venue, sections, organizer, and image references
  - Venue: Physical location with address and capacity
  - Section: Seating section with pricing and availability

The response envelope is what the optimization pipeline operates on: field
projection rules address into it with dot-notation paths (for example
"data.sections.price_from"), so the JSON struct tags here are the canonical
field names those rules refer to.
*/
package models
