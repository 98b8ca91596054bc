// Package service holds the application services that sit between the
// HTTP handlers and the background pipeline.
package service
