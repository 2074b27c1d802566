// Package config loads the health checker settings from environment
// variables and validates them before any component is built.
package config
