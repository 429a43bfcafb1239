// Package config loads, normalizes, and validates flipbook configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI and core pipelines need: data and export directories, capture
// normalization bounds, animation encoder settings, log routing, and push
// notification topics.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
