package domain

import "errors"

// EndlessSeedID identifies the distinguished seed whose only interaction
// mode is the single-shot echo+seal flow, independent of turn index.
const EndlessSeedID = "sem_99"

// MaxTurns is the number of turns a normal seed supports (indices 0 and 1).
const MaxTurns = 2

// Common validation errors for seeds and seals
var (
	ErrEmptySeedID    = errors.New("seed ID cannot be empty")
	ErrEmptySeedName  = errors.New("seed name cannot be empty")
	ErrIncompleteSeal = errors.New("seal is missing one or more fields")
)

// Seal is the small structured badge attached to a terminal response.
// The Italian JSON keys are the wire format shared with the frontend and
// with the model's expected reply skeleton; they are preserved verbatim.
type Seal struct {
	SimboloDominante string `json:"simbolo_dominante"`
	Immagine         string `json:"immagine"`
	Colore           string `json:"colore"`
	Forma            string `json:"forma"`
	CodiceSigillo    string `json:"codice_sigillo"`
}

// Validate checks that every seal field is populated. A model-produced seal
// that fails this check is discarded in favor of the seed's default seal.
func (s Seal) Validate() error {
	if s.SimboloDominante == "" || s.Immagine == "" || s.Colore == "" ||
		s.Forma == "" || s.CodiceSigillo == "" {
		return ErrIncompleteSeal
	}
	return nil
}

// Seed is a static conversation archetype loaded once at startup.
// Unknown keys in the seed file (icons, intro prose) are ignored.
type Seed struct {
	ID          string `json:"id"`
	Nome        string `json:"nome"`
	FraseFinale string `json:"frase_finale"`
	Sigillo     Seal   `json:"sigillo"`
}

// Validate checks if the Seed has valid data.
// The default seal may be incomplete in the file; the registry repairs it
// with flow-level defaults at load time, so it is not validated here.
func (s *Seed) Validate() error {
	if s.ID == "" {
		return ErrEmptySeedID
	}
	if s.Nome == "" {
		return ErrEmptySeedName
	}
	return nil
}

// IsEndless reports whether this is the unbounded single-shot seed.
func (s *Seed) IsEndless() bool {
	return s.ID == EndlessSeedID
}
