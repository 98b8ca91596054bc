// Package generation defines the model-gateway contract and its error
// taxonomy, decoupling the orchestrator from the concrete LLM client in
// internal/platform/gemini.
package generation
