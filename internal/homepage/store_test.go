package homepage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

type brokenBackend struct{ err error }

func (b brokenBackend) Name() string                           { return "broken" }
func (b brokenBackend) Load(context.Context) (*Content, error) { return nil, b.err }
func (b brokenBackend) Save(context.Context, *Content) error   { return b.err }
func (b brokenBackend) Delete(context.Context) error           { return b.err }

func fixedClock(s *Store, t time.Time) {
	s.now = func() time.Time { return t }
}

func TestLoadReturnsDefaultsWhenEmpty(t *testing.T) {
	c := qt.New(t)
	s := NewStore(NewFileBackend(filepath.Join(t.TempDir(), "homepage.json")), nil)

	got := s.Load(context.Background())
	c.Assert(got.HeroSection.Subtitle, qt.Equals, "AR Furniture Visualization")
	c.Assert(got.Features, qt.HasLen, 3)
	c.Assert(s.Info().HasData, qt.IsFalse)
}

func TestSaveThenLoadThroughFreshStore(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	backend := NewFileBackend(filepath.Join(t.TempDir(), "nested", "homepage.json"))

	first := NewStore(backend, nil)
	stamp := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)
	fixedClock(first, stamp)

	content := Defaults(time.Time{})
	content.HeroSection.Title = "Autumn Sale"
	content.Features = content.Features[:1]

	result := first.Save(ctx, content)
	c.Assert(result.Persisted, qt.IsTrue)
	c.Assert(result.Content.LastUpdated.Equal(stamp), qt.IsTrue)

	second := NewStore(backend, nil)
	loaded := second.Load(ctx)
	c.Assert(loaded.HeroSection.Title, qt.Equals, "Autumn Sale")
	c.Assert(loaded.Features, qt.HasLen, 1)
	c.Assert(loaded.LastUpdated.Equal(stamp), qt.IsTrue)
	c.Assert(second.Info().HasData, qt.IsTrue)
}

func TestLoadReturnsCopies(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	s := NewStore(NewFileBackend(filepath.Join(t.TempDir(), "h.json")), nil)
	s.Save(ctx, Defaults(time.Now()))

	got := s.Load(ctx)
	got.Features[0].Title = "mutated"
	got.HeroSection.Title = "mutated"

	again := s.Load(ctx)
	c.Assert(again.Features[0].Title, qt.Equals, "Premium Quality")
	c.Assert(again.HeroSection.Title, qt.Not(qt.Equals), "mutated")
}

func TestSaveSurvivesBackendFailure(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	s := NewStore(brokenBackend{err: errors.New("disk full")}, nil)

	content := Defaults(time.Now())
	content.HeroSection.Title = "Still here"
	result := s.Save(ctx, content)

	c.Assert(result.Persisted, qt.IsFalse)
	c.Assert(s.Load(ctx).HeroSection.Title, qt.Equals, "Still here")

	info := s.Info()
	c.Assert(info.SaveHistoryCount, qt.Equals, 1)
	c.Assert(info.LastSaveAttempt.Success, qt.IsFalse)
	c.Assert(info.LastSaveAttempt.Error, qt.Equals, "disk full")
}

func TestLoadFallsBackToDefaultsOnBackendError(t *testing.T) {
	c := qt.New(t)
	s := NewStore(brokenBackend{err: errors.New("timeout")}, nil)

	got := s.Load(context.Background())
	c.Assert(got.SEOSettings.MetaTitle, qt.Equals, "FurniCraft - Premium AR Furniture Store")
}

func TestInfoKeepsRecentSaves(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	s := NewStore(NewFileBackend(filepath.Join(t.TempDir(), "h.json")), nil)

	for i := 0; i < 7; i++ {
		s.Save(ctx, Defaults(time.Now()))
	}

	info := s.Info()
	c.Assert(info.Backend, qt.Equals, "file")
	c.Assert(info.SaveHistoryCount, qt.Equals, 7)
	c.Assert(info.RecentSaves, qt.HasLen, 5)
	c.Assert(info.DataTimestamp, qt.IsNotNil)
}

func TestSaveHistoryIsCapped(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	s := NewStore(brokenBackend{err: errors.New("disk full")}, nil)

	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < maxSaveHistory+20; i++ {
		fixedClock(s, start.Add(time.Duration(i)*time.Second))
		s.Save(ctx, Defaults(start))
	}

	info := s.Info()
	c.Assert(info.SaveHistoryCount, qt.Equals, maxSaveHistory)
	c.Assert(info.RecentSaves, qt.HasLen, recentSaves)
	c.Assert(info.LastSaveAttempt.Timestamp.Equal(start.Add(time.Duration(maxSaveHistory+19)*time.Second)), qt.IsTrue)

	s.mu.Lock()
	oldest := s.history[0].Timestamp
	s.mu.Unlock()
	c.Assert(oldest.Equal(start.Add(20*time.Second)), qt.IsTrue)
}

func TestClearAndReset(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	backend := NewFileBackend(filepath.Join(t.TempDir(), "h.json"))
	s := NewStore(backend, nil)

	content := Defaults(time.Now())
	content.HeroSection.Title = "Custom"
	s.Save(ctx, content)

	c.Assert(s.Clear(ctx), qt.IsNil)
	info := s.Info()
	c.Assert(info.HasData, qt.IsFalse)
	c.Assert(info.SaveHistoryCount, qt.Equals, 0)
	_, err := backend.Load(ctx)
	c.Assert(err, qt.ErrorIs, ErrNoContent)
	// clearing twice is fine
	c.Assert(s.Clear(ctx), qt.IsNil)

	reset := s.ResetDefaults(ctx)
	c.Assert(reset.Persisted, qt.IsTrue)
	c.Assert(reset.Content.HeroSection.Title, qt.Equals, "Welcome to\nFurniCraft")
	c.Assert(s.Info().HasData, qt.IsTrue)
}
