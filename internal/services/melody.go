package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/togramago/melodygen/internal/generator"
	"github.com/togramago/melodygen/internal/history"
	"github.com/togramago/melodygen/internal/logger"
	"github.com/togramago/melodygen/internal/metrics"
	"github.com/togramago/melodygen/internal/models"
	"github.com/togramago/melodygen/internal/music"
	"github.com/togramago/melodygen/internal/notation"
	"github.com/togramago/melodygen/internal/presets"
)

// ErrHistoryDisabled is returned by lookups when no store is configured.
var ErrHistoryDisabled = errors.New("history is disabled")

// Metric label for requests rejected before a meter was resolved.
const unknownTimeSignature = "unknown"

// MelodyService resolves requests, generates melodies and keeps history.
// store and recorder may be nil.
type MelodyService struct {
	presets  *presets.Set
	store    history.Store
	maxBars  int
	recorder *metrics.Recorder
}

// NewMelodyService wires the service. A maxBars of zero means no limit.
func NewMelodyService(set *presets.Set, store history.Store, maxBars int, recorder *metrics.Recorder) *MelodyService {
	return &MelodyService{
		presets:  set,
		store:    store,
		maxBars:  maxBars,
		recorder: recorder,
	}
}

// Presets returns the loaded preset set.
func (s *MelodyService) Presets() *presets.Set {
	return s.presets
}

// HistoryEnabled reports whether melodies are persisted.
func (s *MelodyService) HistoryEnabled() bool {
	return s.store != nil
}

// Resolve turns a request into validated generation parameters.
func (s *MelodyService) Resolve(req models.GenerateRequest) (generator.Params, error) {
	base, err := s.presets.Params(req.Preset)
	if err != nil {
		return generator.Params{}, err
	}
	p := req.Apply(base)
	if s.maxBars > 0 && p.Bars > s.maxBars {
		return generator.Params{}, fmt.Errorf("%w: bars must be at most %d, got %d", music.ErrInvalidArgument, s.maxBars, p.Bars)
	}
	return p, p.Validate()
}

// Generate resolves req, generates a melody, and stores it when history is
// enabled. A store failure is logged and leaves the response without an id.
func (s *MelodyService) Generate(ctx context.Context, req models.GenerateRequest, fields logger.Fields) (*models.MelodyResponse, error) {
	p, err := s.Resolve(req)
	if err != nil {
		s.recorder.RecordGeneration(ctx, metrics.Generation{TimeSignature: unknownTimeSignature, Failed: true})
		return nil, err
	}

	start := time.Now()
	melody, err := generator.GenerateMelody(p, generator.WithObserver(logger.GeneratorObserver(fields)))
	duration := time.Since(start)
	if err != nil {
		s.recorder.RecordGeneration(ctx, metrics.Generation{
			TimeSignature: p.TimeSignature,
			Bars:          p.Bars,
			Duration:      duration,
			Failed:        true,
		})
		return nil, err
	}

	logger.LogGenerationRequest(ctx, melody, duration, fields)
	s.recorder.RecordGeneration(ctx, metrics.Generation{
		TimeSignature: melody.TimeSignature,
		Bars:          melody.BarCount(),
		Notes:         melody.NoteCount(),
		PartialBars:   melody.PartialBars(),
		Duration:      duration,
	})

	resp, err := Respond(melody, "")
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		entry, err := s.store.Save(ctx, melody)
		if err != nil {
			logger.Error("Failed to save melody", err, fields)
		} else {
			resp.ID = entry.ID
		}
	}
	return resp, nil
}

// Get loads a stored melody.
func (s *MelodyService) Get(ctx context.Context, id string) (*history.Entry, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	return s.store.Get(ctx, id)
}

// List returns recent history entries.
func (s *MelodyService) List(ctx context.Context, limit int) ([]history.Entry, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	return s.store.List(ctx, limit)
}

// Ping checks the history store. It returns ErrHistoryDisabled when there
// is none.
func (s *MelodyService) Ping(ctx context.Context) error {
	if s.store == nil {
		return ErrHistoryDisabled
	}
	return s.store.Ping(ctx)
}

// Respond builds the API representation of m.
func Respond(m *generator.Melody, id string) (*models.MelodyResponse, error) {
	score, err := notation.BuildScore(m)
	if err != nil {
		return nil, err
	}
	warnings := score.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return &models.MelodyResponse{ID: id, Melody: m, Score: score, Warnings: warnings}, nil
}
