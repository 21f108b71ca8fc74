// Package config loads, normalizes, and validates zebranoise configuration.
//
// It supplies defaults that reproduce the reference stimulus (1920x1080,
// 30 fps, ten octaves, a 0.08 comb), expands user paths including tilde
// shortcuts, reads TOML files (or YAML presets by extension), and honours the
// ZEBRANOISE_SEED and ZEBRANOISE_OUTPUT_DIR environment overrides.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical names, and clear validation errors.
package config
