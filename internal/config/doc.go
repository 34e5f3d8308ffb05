// Package config loads, normalizes, and validates apngforge configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. Settings cover the directories backing
// the batch queue and logs plus log output shape.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and canonical log formats.
package config
