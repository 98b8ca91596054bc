package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/semiverso/prometheus-api/internal/domain"
)

// ErrSeedNotFound indicates the requested seed does not exist in the
// registry. This is a client-input error, not a system fault.
var ErrSeedNotFound = errors.New("seed not found")

// fallbackEndlessSeed is substituted when the seed file is missing or
// unreadable, so the unbounded flow keeps working without any data file.
var fallbackEndlessSeed = domain.Seed{
	ID:          domain.EndlessSeedID,
	Nome:        "L'Eco Universale",
	FraseFinale: "La verità si manifesta nella scrittura libera.",
	Sigillo: domain.Seal{
		SimboloDominante: "🕳️",
		Immagine:         "Un eco che si propaga in un vuoto sereno.",
		Colore:           "#C0C0C0",
		Forma:            "cerchio perfetto",
		CodiceSigillo:    "SIG-FB-99",
	},
}

// defaultSeal fills gaps in a seed's stored seal so the guarantee that
// every registered seed carries a complete default seal holds at load time.
var defaultSeal = domain.Seal{
	SimboloDominante: "🌟",
	Immagine:         "Un orizzonte che si svela, un nuovo inizio.",
	Colore:           "#FFCC00",
	Forma:            "spirale ascendente",
	CodiceSigillo:    "SIG-FB-END",
}

// Registry is the read-only seed lookup table, built once at process
// start. It requires no synchronization after construction.
type Registry struct {
	seeds  map[string]domain.Seed
	logger *slog.Logger
}

// Load reads the seed file and builds the registry. A missing or corrupt
// file does not fail startup: the registry falls back to the built-in
// unbounded seed alone, and every other lookup becomes a client error.
func Load(path string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "seed_registry")

	r := &Registry{
		seeds:  make(map[string]domain.Seed),
		logger: logger,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("seed file unreadable, using fallback seed only",
			"path", path,
			"error", err)
		r.seeds[fallbackEndlessSeed.ID] = fallbackEndlessSeed
		return r
	}

	var list []domain.Seed
	if err := json.Unmarshal(data, &list); err != nil {
		logger.Error("seed file is not valid JSON, using fallback seed only",
			"path", path,
			"error", err)
		r.seeds[fallbackEndlessSeed.ID] = fallbackEndlessSeed
		return r
	}

	for _, s := range list {
		if err := s.Validate(); err != nil {
			logger.Warn("skipping invalid seed entry", "seed_id", s.ID, "error", err)
			continue
		}
		// Every seed must carry a complete default seal; patch holes
		// with the flow-level defaults.
		if s.Sigillo.Validate() != nil {
			s.Sigillo = repairSeal(s.Sigillo)
		}
		r.seeds[s.ID] = s
	}

	if _, ok := r.seeds[domain.EndlessSeedID]; !ok {
		r.seeds[fallbackEndlessSeed.ID] = fallbackEndlessSeed
	}

	logger.Info("seed registry loaded", "path", path, "seed_count", len(r.seeds))
	return r
}

// NewFromSeeds builds a registry directly from seed values. Intended for
// tests and for wiring a registry without a data file.
func NewFromSeeds(logger *slog.Logger, seeds ...domain.Seed) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		seeds:  make(map[string]domain.Seed, len(seeds)),
		logger: logger.With("component", "seed_registry"),
	}
	for _, s := range seeds {
		if s.Sigillo.Validate() != nil {
			s.Sigillo = repairSeal(s.Sigillo)
		}
		r.seeds[s.ID] = s
	}
	return r
}

// Get returns the seed for the given identifier.
// Returns ErrSeedNotFound when the id does not resolve.
func (r *Registry) Get(id string) (domain.Seed, error) {
	s, ok := r.seeds[id]
	if !ok {
		return domain.Seed{}, fmt.Errorf("%w: %q", ErrSeedNotFound, id)
	}
	return s, nil
}

// Len returns the number of registered seeds.
func (r *Registry) Len() int {
	return len(r.seeds)
}

func repairSeal(s domain.Seal) domain.Seal {
	if s.SimboloDominante == "" {
		s.SimboloDominante = defaultSeal.SimboloDominante
	}
	if s.Immagine == "" {
		s.Immagine = defaultSeal.Immagine
	}
	if s.Colore == "" {
		s.Colore = defaultSeal.Colore
	}
	if s.Forma == "" {
		s.Forma = defaultSeal.Forma
	}
	if s.CodiceSigillo == "" {
		s.CodiceSigillo = defaultSeal.CodiceSigillo
	}
	return s
}
