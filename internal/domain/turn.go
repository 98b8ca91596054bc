package domain

// History entry roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Phase classifies a turn within a session's short multi-step flow.
type Phase string

// Possible turn phases
const (
	// PhaseOpening is the first turn of a normal seed (index 0).
	PhaseOpening Phase = "opening"

	// PhaseIntermediate is any non-terminal turn after the first.
	PhaseIntermediate Phase = "intermediate"

	// PhaseClosing is the terminal turn of a normal seed: long narrative,
	// declarative closing phrase and seal.
	PhaseClosing Phase = "closing"

	// PhaseEcho is the unbounded seed's single-shot echo+seal flow.
	PhaseEcho Phase = "echo"
)

// ClassifyPhase determines the turn phase from the seed identifier, the
// zero-based turn index and the explicit echo flag. The unbounded seed's
// echo flow wins regardless of turn index.
func ClassifyPhase(seedID string, turnIndex int, echoRequest bool) Phase {
	if seedID == EndlessSeedID && echoRequest {
		return PhaseEcho
	}
	if turnIndex == 0 {
		return PhaseOpening
	}
	if seedID != EndlessSeedID && turnIndex == MaxTurns-1 {
		return PhaseClosing
	}
	return PhaseIntermediate
}

// HistoryEntry is one prior exchange in the session, tagged with its
// author. Assistant content may be a list when the model answered with
// multiple symbolic images.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content Output `json:"content"`
}

// TurnRequest carries one conversation turn submitted by a client.
// Field names on the wire match the frontend contract.
type TurnRequest struct {
	UserID                string         `json:"user_id"                validate:"required"`
	SessionID             string         `json:"session_id"             validate:"required"`
	SeedID                string         `json:"seme_id"                validate:"required"`
	TurnIndex             int            `json:"interaction_number"     validate:"gte=0"`
	UserInput             string         `json:"user_input"             validate:"required"`
	History               []HistoryEntry `json:"history,omitempty"`
	LastAssistantQuestion string         `json:"last_assistant_question,omitempty"`
	EchoRequest           bool           `json:"is_eco_request,omitempty"`
}

// Phase classifies this request's turn.
func (r *TurnRequest) Phase() Phase {
	return ClassifyPhase(r.SeedID, r.TurnIndex, r.EchoRequest)
}

// LastUserContent returns the most recent user entry's content, falling
// back to the current input when history carries none. Used as the
// "first reflection" context in the closing prompt.
func (r *TurnRequest) LastUserContent() string {
	for i := len(r.History) - 1; i >= 0; i-- {
		if r.History[i].Role == RoleUser {
			return r.History[i].Content.Flatten()
		}
	}
	return r.UserInput
}

// FirstAssistantContent returns the opening assistant reply from history,
// or the empty string when none exists. This is the symbolic context the
// intermediate and closing prompts weave back in.
func (r *TurnRequest) FirstAssistantContent() string {
	for _, entry := range r.History {
		if entry.Role == RoleAssistant {
			return entry.Content.Flatten()
		}
	}
	return ""
}

// TurnResponse is the assembled result of one turn. Sigillo is present
// only on the terminal turn of a normal seed, or on every echo turn of
// the unbounded seed.
type TurnResponse struct {
	Output      Output   `json:"output"`
	Eco         []string `json:"eco"`
	FraseFinale string   `json:"frase_finale"`
	Sigillo     *Seal    `json:"sigillo,omitempty"`
}
