// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

/*
Package config provides layered configuration management using Koanf v2.

Configuration is loaded from three sources with increasing precedence:

 1. Built-in defaults
 2. YAML config file (config.yaml in the working directory, /etc/mobileopt/,
    or the path named by CONFIG_PATH)
 3. Environment variables

# Environment Variables

Server:
  - HTTP_PORT, HTTP_HOST, HTTP_TIMEOUT

Optimization:
  - OPT_COMPRESSION, OPT_COMPRESSION_LEVEL, OPT_FIELD_SELECTION,
    OPT_IMAGE_OPTIMIZATION, OPT_ADAPTIVE_RESPONSE, OPT_MAX_RESPONSE_SIZE

Security:
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT, CORS_ORIGINS

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Only variables in the explicit allow-list are mapped; unknown variables are
ignored rather than guessed at. Comma-separated values (CORS_ORIGINS) are
split into slices after loading.

# Field Rules

Per-endpoint field projection rules are only expressible in the YAML file:

	optimization:
	  field_rules:
	    /api/v1/events:
	      - status
	      - data.id
	      - data.name
	      - data.sections.price_from

# Validation

Load() validates the assembled Config with go-playground/validator struct
tags plus hand-written cross-field checks (field rule shape, compression
level range). A failed validation aborts startup with a descriptive error.
*/
package config
