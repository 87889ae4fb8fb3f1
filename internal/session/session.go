// Package session holds the per-user state of the presentation shell: the
// credential, the text being edited, the last successful result and the
// last error. The extraction core itself keeps no state.
package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	apperrors "jobspec-miner/internal/errors"
	"jobspec-miner/internal/models"
	"jobspec-miner/internal/validators"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("session not found")
	ErrUnknownSection = errors.New("unknown section")
	ErrNoResult       = errors.New("no extraction result in this session")
)

type Extractor interface {
	Extract(ctx context.Context, credential, text, model string) (*models.JobInformation, error)
}

type state struct {
	id          uuid.UUID
	credential  string
	input       string
	status      models.Status
	result      *models.JobInformation
	extractedAt time.Time
	errMsg      string
	expanded    [sectionCount]bool
	lastSeen    time.Time
}

// View is a snapshot of a session safe to hand to renderers. The credential
// is never part of it.
type View struct {
	ID            uuid.UUID              `json:"id"`
	HasCredential bool                   `json:"has_credential"`
	Input         string                 `json:"input"`
	InputStats    validators.Stats       `json:"input_stats"`
	Status        models.Status          `json:"status"`
	Error         string                 `json:"error,omitempty"`
	Result        *models.JobInformation `json:"result,omitempty"`
	ExtractedAt   *time.Time             `json:"extracted_at,omitempty"`
	Summary       *models.Summary        `json:"summary,omitempty"`
	Sections      []SectionView          `json:"sections"`
}

type Manager struct {
	mu        sync.Mutex
	sessions  map[uuid.UUID]*state
	extractor Extractor
	locker    Locker
	ttl       time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Manager)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a session manager. Sessions idle for longer than ttl
// are dropped; a zero ttl keeps them until deleted.
func NewManager(extractor Extractor, locker Locker, ttl time.Duration, logger *slog.Logger, opts ...Option) *Manager {
	if locker == nil {
		locker = NewMemoryLocker()
	}
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		sessions:  make(map[uuid.UUID]*state),
		extractor: extractor,
		locker:    locker,
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Create() (View, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return View{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweepLocked()

	s := &state{
		id:       id,
		expanded: defaultExpanded(),
		lastSeen: m.now(),
	}
	m.sessions[id] = s

	m.logger.Info("session created", slog.String("session_id", id.String()))
	return s.view(), nil
}

func (m *Manager) Get(id uuid.UUID) (View, error) {
	return m.update(id, func(s *state) error { return nil })
}

func (m *Manager) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

// SetCredential stores the API key for this session only. It is kept in
// memory and never rendered back.
func (m *Manager) SetCredential(id uuid.UUID, credential string) (View, error) {
	return m.update(id, func(s *state) error {
		s.credential = credential
		return nil
	})
}

func (m *Manager) SetInput(id uuid.UUID, text string) (View, error) {
	return m.update(id, func(s *state) error {
		s.input = text
		return nil
	})
}

func (m *Manager) ClearInput(id uuid.UUID) (View, error) {
	return m.SetInput(id, "")
}

func (m *Manager) LoadSample(id uuid.UUID) (View, error) {
	return m.SetInput(id, SampleJobDescription)
}

// Extract runs one extraction for the session's current credential and
// input. Input that fails validation is reported without touching state. A
// failed extraction records an error but keeps the previous result.
func (m *Manager) Extract(ctx context.Context, id uuid.UUID, model string) (View, error) {

	var credential, input string
	if _, err := m.update(id, func(s *state) error {
		credential, input = s.credential, s.input
		return nil
	}); err != nil {
		return View{}, err
	}

	if !validators.ValidateCredential(credential) {
		return View{}, apperrors.ErrInvalidCredential
	}
	if !validators.ValidateContent(input) {
		return View{}, apperrors.ErrInvalidContent
	}

	unlock, err := m.locker.TryLock(ctx, id.String())
	if err != nil {
		return View{}, err
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			m.logger.Error("failed to release session lock", slog.String("session_id", id.String()), slog.Any("error", err))
		}
	}()

	if _, err := m.update(id, func(s *state) error {
		s.status = models.StatusExtracting
		return nil
	}); err != nil {
		return View{}, err
	}

	info, extractErr := m.extractor.Extract(ctx, strings.TrimSpace(credential), input, model)

	if extractErr != nil {
		m.logger.Warn("extraction failed",
			slog.String("session_id", id.String()),
			slog.Bool("validation_failure", apperrors.IsValidation(extractErr)),
			slog.Any("error", extractErr),
		)
	}

	view, err := m.update(id, func(s *state) error {
		if extractErr != nil {
			s.status = models.StatusFailed
			s.errMsg = apperrors.UserMessage(extractErr)
			return nil
		}
		s.status = models.StatusCompleted
		s.result = info
		s.extractedAt = m.now()
		s.errMsg = ""
		return nil
	})
	if err != nil {
		return View{}, err
	}

	return view, extractErr
}

// Retry clears the last error so a new attempt can be made. The previous
// result, if any, stays.
func (m *Manager) Retry(id uuid.UUID) (View, error) {
	return m.update(id, func(s *state) error {
		s.errMsg = ""
		if s.status == models.StatusFailed {
			s.status = models.StatusIdle
			if s.result != nil {
				s.status = models.StatusCompleted
			}
		}
		return nil
	})
}

func (m *Manager) ExpandAll(id uuid.UUID) (View, error) {
	return m.setAll(id, true)
}

func (m *Manager) CollapseAll(id uuid.UUID) (View, error) {
	return m.setAll(id, false)
}

func (m *Manager) SetSection(id uuid.UUID, section Section, expanded bool) (View, error) {
	if !section.Valid() {
		return View{}, ErrUnknownSection
	}
	return m.update(id, func(s *state) error {
		s.expanded[section] = expanded
		return nil
	})
}

// Result returns the current result and the time it was extracted.
func (m *Manager) Result(id uuid.UUID) (*models.JobInformation, time.Time, error) {
	var info *models.JobInformation
	var at time.Time

	_, err := m.update(id, func(s *state) error {
		if s.result == nil {
			return ErrNoResult
		}
		info, at = s.result, s.extractedAt
		return nil
	})
	return info, at, err
}

func (m *Manager) setAll(id uuid.UUID, expanded bool) (View, error) {
	return m.update(id, func(s *state) error {
		for i := range s.expanded {
			s.expanded[i] = expanded
		}
		return nil
	})
}

func (m *Manager) update(id uuid.UUID, fn func(s *state) error) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweepLocked()

	s, ok := m.sessions[id]
	if !ok {
		return View{}, ErrNotFound
	}
	s.lastSeen = m.now()

	if err := fn(s); err != nil {
		return View{}, err
	}
	return s.view(), nil
}

func (m *Manager) sweepLocked() {
	if m.ttl <= 0 {
		return
	}
	cutoff := m.now().Add(-m.ttl)
	for id, s := range m.sessions {
		if s.status != models.StatusExtracting && s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			m.logger.Info("session expired", slog.String("session_id", id.String()))
		}
	}
}

func (s *state) view() View {
	v := View{
		ID:            s.id,
		HasCredential: s.credential != "",
		Input:         s.input,
		InputStats:    validators.ContentStats(s.input),
		Status:        s.status,
		Error:         s.errMsg,
		Result:        s.result,
		Sections:      make([]SectionView, 0, sectionCount),
	}

	if s.result != nil {
		at := s.extractedAt
		summary := s.result.Summary()
		v.ExtractedAt = &at
		v.Summary = &summary
	}

	for i := Section(0); i < sectionCount; i++ {
		v.Sections = append(v.Sections, SectionView{
			Index:    i,
			Title:    i.String(),
			Expanded: s.expanded[i],
			Visible:  visible(i, s.result),
		})
	}
	return v
}
