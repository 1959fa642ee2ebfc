// Package config loads and validates service configuration from
// config.yaml and environment variables.
package config
