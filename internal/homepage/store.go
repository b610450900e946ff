package homepage

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	recentSaves = 5
	// maxSaveHistory bounds the save attempts kept in memory.
	maxSaveHistory = 50
)

type SaveAttempt struct {
	Timestamp time.Time `json:"timestamp"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

type SaveResult struct {
	Content *Content `json:"content"`
	// Persisted is false when the backend write failed; the content is still
	// served from memory.
	Persisted bool `json:"persisted"`
}

type Info struct {
	Backend          string        `json:"backend"`
	HasData          bool          `json:"hasData"`
	DataTimestamp    *time.Time    `json:"dataTimestamp"`
	SaveHistoryCount int           `json:"saveHistoryCount"`
	LastSaveAttempt  *SaveAttempt  `json:"lastSaveAttempt"`
	RecentSaves      []SaveAttempt `json:"recentSaves"`
}

// Store serves the homepage document from memory and mirrors every change
// to its Backend.
type Store struct {
	backend Backend
	log     *zap.Logger
	now     func() time.Time

	mu      sync.Mutex
	current *Content
	history []SaveAttempt
}

func NewStore(backend Backend, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{backend: backend, log: log, now: time.Now}
}

// Load returns the in-memory document, else the backend's, else the
// defaults. Defaults are not cached so a later backend write is picked up.
func (s *Store) Load(ctx context.Context) *Content {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return s.current.clone()
	}

	stored, err := s.backend.Load(ctx)
	switch {
	case err == nil:
		s.current = stored
		return stored.clone()
	case errors.Is(err, ErrNoContent):
	default:
		s.log.Warn("Load homepage from backend failed",
			zap.String("backend", s.backend.Name()),
			zap.Error(err))
	}

	return Defaults(s.now())
}

// Save replaces the document. The memory copy always succeeds; a backend
// failure is logged and recorded in the save history.
func (s *Store) Save(ctx context.Context, c *Content) SaveResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := c.clone()
	saved.LastUpdated = s.now().UTC()
	s.current = saved

	persisted := s.persist(ctx, saved)

	s.log.Info("Homepage saved",
		zap.String("hero_title", saved.HeroSection.Title),
		zap.Int("features", len(saved.Features)),
		zap.Int("featured_products", len(saved.FeaturedProducts)),
		zap.Bool("persisted", persisted))

	return SaveResult{Content: saved.clone(), Persisted: persisted}
}

// ResetDefaults replaces the document with the defaults.
func (s *Store) ResetDefaults(ctx context.Context) SaveResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	defaults := Defaults(s.now())
	s.current = defaults
	persisted := s.persist(ctx, defaults)

	s.log.Info("Homepage reset to defaults", zap.Bool("persisted", persisted))
	return SaveResult{Content: defaults.clone(), Persisted: persisted}
}

// Clear drops the document and the save history everywhere.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.history = nil

	if err := s.backend.Delete(ctx); err != nil {
		return err
	}
	s.log.Info("Homepage data cleared")
	return nil
}

func (s *Store) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := Info{
		Backend:          s.backend.Name(),
		HasData:          s.current != nil,
		SaveHistoryCount: len(s.history),
		RecentSaves:      []SaveAttempt{},
	}
	if s.current != nil {
		ts := s.current.LastUpdated
		info.DataTimestamp = &ts
	}
	if n := len(s.history); n > 0 {
		last := s.history[n-1]
		info.LastSaveAttempt = &last
		info.RecentSaves = append(info.RecentSaves, s.history[max(0, n-recentSaves):]...)
	}
	return info
}

// persist must be called with mu held.
func (s *Store) persist(ctx context.Context, c *Content) bool {
	attempt := SaveAttempt{Timestamp: s.now().UTC(), Success: true}

	if err := s.backend.Save(ctx, c); err != nil {
		attempt.Success = false
		attempt.Error = err.Error()
		s.log.Warn("Persist homepage failed",
			zap.String("backend", s.backend.Name()),
			zap.Error(err))
	}

	s.history = append(s.history, attempt)
	if over := len(s.history) - maxSaveHistory; over > 0 {
		s.history = append(s.history[:0], s.history[over:]...)
	}
	return attempt.Success
}
