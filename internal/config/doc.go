// Package config defines the application configuration model and its
// environment-based loader.
package config
