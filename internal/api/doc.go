// Package api contains the HTTP handlers and the error mapping that
// keeps internal errors from leaking to clients.
package api
