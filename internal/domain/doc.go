// Package domain contains the core entities of the turn service: seeds,
// seals, turn requests and responses, and the phase classification rules
// that drive the orchestrator. Types here carry no infrastructure
// dependencies and validate their own invariants.
package domain
