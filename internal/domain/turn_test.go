package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/semiverso/prometheus-api/internal/domain"
)

func TestClassifyPhase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		seedID      string
		turnIndex   int
		echoRequest bool
		expected    domain.Phase
	}{
		{
			name:     "first turn of a normal seed",
			seedID:   "sem_01",
			expected: domain.PhaseOpening,
		},
		{
			name:      "last turn of a normal seed",
			seedID:    "sem_01",
			turnIndex: domain.MaxTurns - 1,
			expected:  domain.PhaseClosing,
		},
		{
			name:      "turn past the nominal maximum stays intermediate",
			seedID:    "sem_01",
			turnIndex: domain.MaxTurns,
			expected:  domain.PhaseIntermediate,
		},
		{
			name:        "echo flag wins for the endless seed",
			seedID:      domain.EndlessSeedID,
			turnIndex:   0,
			echoRequest: true,
			expected:    domain.PhaseEcho,
		},
		{
			name:        "echo flag ignored for normal seeds",
			seedID:      "sem_01",
			turnIndex:   0,
			echoRequest: true,
			expected:    domain.PhaseOpening,
		},
		{
			name:      "endless seed never closes",
			seedID:    domain.EndlessSeedID,
			turnIndex: domain.MaxTurns - 1,
			expected:  domain.PhaseIntermediate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected,
				domain.ClassifyPhase(tt.seedID, tt.turnIndex, tt.echoRequest))
		})
	}
}

func TestTurnRequestHistoryHelpers(t *testing.T) {
	t.Parallel()

	t.Run("last user content from history", func(t *testing.T) {
		t.Parallel()
		req := domain.TurnRequest{
			UserInput: "attuale",
			History: []domain.HistoryEntry{
				{Role: domain.RoleUser, Content: domain.TextOutput("prima riflessione")},
				{Role: domain.RoleAssistant, Content: domain.TextOutput("risposta")},
			},
		}
		assert.Equal(t, "prima riflessione", req.LastUserContent())
	})

	t.Run("falls back to current input without user history", func(t *testing.T) {
		t.Parallel()
		req := domain.TurnRequest{UserInput: "attuale"}
		assert.Equal(t, "attuale", req.LastUserContent())
	})

	t.Run("first assistant content flattens lists", func(t *testing.T) {
		t.Parallel()
		req := domain.TurnRequest{
			History: []domain.HistoryEntry{
				{Role: domain.RoleUser, Content: domain.TextOutput("input")},
				{Role: domain.RoleAssistant, Content: domain.LinesOutput([]string{"img1", "img2"})},
			},
		}
		assert.Equal(t, "img1\nimg2", req.FirstAssistantContent())
	})

	t.Run("empty string without assistant history", func(t *testing.T) {
		t.Parallel()
		req := domain.TurnRequest{}
		assert.Equal(t, "", req.FirstAssistantContent())
	})
}
