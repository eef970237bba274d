// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/raceboard/internal/adapters/repository"
	"github.com/okian/raceboard/internal/domain/leaderboard"
	"github.com/okian/raceboard/internal/domain/model"
	"github.com/okian/raceboard/internal/domain/scenario"
	"github.com/okian/raceboard/internal/domain/scoring"
	"github.com/okian/raceboard/internal/domain/types"
	"github.com/okian/raceboard/pkg/logger"
	"github.com/okian/raceboard/pkg/metrics"
)

// Default configuration constants.
const (
	defaultMaxRound = 50
)

// Service implements the API dependencies for the scoring race.
type Service struct {
	mu sync.RWMutex

	ledger    repository.Ledger
	scenarios map[string]model.Scenario
	adminCode string
	maxRound  int

	started bool

	logger logger.Logger
	clock  func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLedger sets the submission ledger the service writes to.
func WithLedger(ledger repository.Ledger) Option {
	return func(s *Service) {
		if ledger != nil {
			s.ledger = ledger
		}
	}
}

// WithScenarios sets the loaded scenario document.
func WithScenarios(scenarios map[string]model.Scenario) Option {
	return func(s *Service) {
		if len(scenarios) > 0 {
			s.scenarios = scenarios
		}
	}
}

// WithAdminCode sets the shared secret gating the whole-ledger reset.
func WithAdminCode(code string) Option {
	return func(s *Service) {
		if code != "" {
			s.adminCode = code
		}
	}
}

// WithMaxRound caps the round number accepted on submissions.
func WithMaxRound(max int) Option {
	return func(s *Service) {
		if max > 0 {
			s.maxRound = max
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces the wall clock, for deterministic tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxRound: defaultMaxRound,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start prepares the service: it verifies the wired dependencies and
// idempotently initializes the backing store.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.ledger == nil {
		return errors.New("service requires a ledger")
	}
	if len(s.scenarios) == 0 {
		return errors.New("service requires at least one scenario")
	}
	if s.adminCode == "" {
		return errors.New("service requires an admin code")
	}

	if err := s.ledger.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize submission store: %w", err)
	}

	s.started = true
	s.logger.Info(ctx, "scoring race service started",
		logger.Int("scenarios", len(s.scenarios)),
		logger.Int("maxRound", s.maxRound),
	)
	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "scoring race service stopped")
}

// Submit validates and grades one answer set, appends the resulting record
// to the durable ledger, and returns the computed scores.
func (s *Service) Submit(ctx context.Context, ans model.AnswerSet) (types.Receipt, error) {
	if err := s.ready(); err != nil {
		return types.Receipt{}, err
	}

	ans.Team = strings.TrimSpace(ans.Team)
	sc, err := s.validate(ans)
	if err != nil {
		metrics.RecordSubmissionRejected(rejectReason(err))
		return types.Receipt{}, err
	}

	breakdown, total, err := scoring.Grade(sc, ans)
	if err != nil {
		// Cardinality mismatches are caught by validate; anything left is
		// a caller contract violation.
		metrics.RecordSubmissionRejected("grade")
		return types.Receipt{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	rec := model.SubmissionRecord{
		ID:        uuid.NewString(),
		Timestamp: s.clock().UTC(),
		Round:     ans.Round,
		Team:      ans.Team,
		Scenario:  ans.Scenario,
		Sections:  breakdown,
		Score:     total,
	}

	appendStart := time.Now()
	if err := s.ledger.Append(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrBusy) {
			metrics.RecordLockTimeout()
		}
		metrics.RecordSubmissionRejected("store")
		return types.Receipt{}, err
	}
	metrics.RecordLedgerAppend(time.Since(appendStart).Seconds())
	metrics.RecordSubmissionAccepted(total)

	s.logger.Info(ctx, "submission accepted",
		logger.String("team", rec.Team),
		logger.Int("round", rec.Round),
		logger.String("scenario", rec.Scenario),
		logger.Int("score", total),
	)

	return types.Receipt{
		ID:       rec.ID,
		Team:     rec.Team,
		Round:    rec.Round,
		Scenario: rec.Scenario,
		Score:    total,
		Sections: toWireSections(breakdown),
	}, nil
}

// Leaderboard materializes the ranked view for a round. Round zero selects
// the latest round present in the history; the resolved round is returned
// alongside the rows.
func (s *Service) Leaderboard(ctx context.Context, round int) ([]types.Row, int, error) {
	if err := s.ready(); err != nil {
		return nil, 0, err
	}

	history, err := s.history(ctx)
	if err != nil {
		return nil, 0, err
	}
	if round <= 0 {
		round = leaderboard.LatestRound(history)
	}

	buildStart := time.Now()
	rows := leaderboard.Build(history, round)
	metrics.RecordLeaderboardBuild(time.Since(buildStart).Seconds())

	out := make([]types.Row, len(rows))
	for i, row := range rows {
		out[i] = types.Row{
			Rank:      row.Rank,
			Team:      row.Team,
			Scenario:  row.Scenario,
			Score:     row.Score,
			Submitted: row.Submitted,
		}
	}
	return out, round, nil
}

// Submissions returns the full history for a round in submission order.
// Round zero selects the latest round present.
func (s *Service) Submissions(ctx context.Context, round int) ([]types.Submission, int, error) {
	if err := s.ready(); err != nil {
		return nil, 0, err
	}

	history, err := s.history(ctx)
	if err != nil {
		return nil, 0, err
	}
	if round <= 0 {
		round = leaderboard.LatestRound(history)
	}

	records := leaderboard.Round(history, round)
	out := make([]types.Submission, len(records))
	for i, rec := range records {
		out[i] = types.Submission{
			ID:        rec.ID,
			Submitted: rec.Timestamp,
			Round:     rec.Round,
			Team:      rec.Team,
			Scenario:  rec.Scenario,
			Score:     rec.Score,
			Sections:  toWireSections(rec.Sections),
		}
	}
	return out, round, nil
}

// Scenarios lists the loaded scenarios for form rendering. Answer keys are
// never part of the listing.
func (s *Service) Scenarios(_ context.Context) []types.ScenarioSummary {
	out := make([]types.ScenarioSummary, 0, len(s.scenarios))
	for _, key := range scenario.Keys(s.scenarios) {
		sc := s.scenarios[key]
		summary := types.ScenarioSummary{
			Key:      sc.Key,
			Title:    sc.Title,
			MaxScore: sc.MaxScore(),
		}
		for _, section := range sc.Sections {
			ss := types.SectionSummary{
				ID:       section.ID,
				Kind:     string(section.Kind),
				Question: section.Question,
				Options:  section.Options,
			}
			for _, item := range section.Items {
				ss.Items = append(ss.Items, item.Text)
			}
			summary.Sections = append(summary.Sections, ss)
		}
		out = append(out, summary)
	}
	return out
}

// Reset clears the whole ledger when the provided code matches the
// configured one. Exact match only, compared in constant time; a mismatch
// changes no state.
func (s *Service) Reset(ctx context.Context, code string) error {
	if err := s.ready(); err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(code), []byte(s.adminCode)) != 1 {
		metrics.RecordAdminResetDenied()
		return ErrUnauthorized
	}
	if err := s.ledger.ResetAll(ctx); err != nil {
		if errors.Is(err, repository.ErrBusy) {
			metrics.RecordLockTimeout()
		}
		return err
	}
	metrics.RecordAdminReset()
	s.logger.Warn(ctx, "all submissions cleared by admin")
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":   started,
		"scenarios": len(s.scenarios),
		"maxRound":  s.maxRound,
	}
	if !started {
		return stats
	}

	history, err := s.history(context.Background())
	if err != nil {
		stats["storeError"] = err.Error()
		return stats
	}
	stats["records"] = len(history)
	stats["latestRound"] = leaderboard.LatestRound(history)
	return stats
}

// history reads the full store, recording read latency and record count.
func (s *Service) history(ctx context.Context) ([]model.SubmissionRecord, error) {
	readStart := time.Now()
	history, err := s.ledger.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordLedgerRead(time.Since(readStart).Seconds())
	metrics.UpdateLedgerRecords(len(history))
	return history, nil
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// validate checks an answer set against its scenario before any scoring or
// persistence happens. Everything it rejects maps to the re-prompt path.
func (s *Service) validate(ans model.AnswerSet) (model.Scenario, error) {
	if ans.Team == "" {
		return model.Scenario{}, fmt.Errorf("%w: team name must not be empty", ErrValidation)
	}
	if ans.Round < 1 || ans.Round > s.maxRound {
		return model.Scenario{}, fmt.Errorf("%w: round must be between 1 and %d", ErrValidation, s.maxRound)
	}
	sc, ok := s.scenarios[ans.Scenario]
	if !ok {
		return model.Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, ans.Scenario)
	}

	for _, section := range sc.Sections {
		switch section.Kind {
		case model.SingleChoice:
			idx, answered := ans.Single[section.ID]
			if !answered || idx == model.NoSelection {
				return model.Scenario{}, fmt.Errorf("%w: section %q requires an answer", ErrValidation, section.ID)
			}
			if idx < 0 || idx >= len(section.Options) {
				return model.Scenario{}, fmt.Errorf("%w: section %q selection out of range", ErrValidation, section.ID)
			}
		case model.MultiChoice:
			for _, idx := range ans.Multi[section.ID] {
				if idx < 0 || idx >= len(section.Options) {
					return model.Scenario{}, fmt.Errorf("%w: section %q selection out of range", ErrValidation, section.ID)
				}
			}
		case model.BinaryKeyed:
			if got, want := len(ans.Binary[section.ID]), len(section.Items); got != want {
				return model.Scenario{}, fmt.Errorf("%w: section %q expects %d answers, got %d", ErrValidation, section.ID, want, got)
			}
		}
	}
	return sc, nil
}

func toWireSections(breakdown []model.SectionScore) []types.SectionScore {
	out := make([]types.SectionScore, len(breakdown))
	for i, sec := range breakdown {
		out[i] = types.SectionScore{Section: sec.Section, Points: sec.Points}
	}
	return out
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrUnknownScenario):
		return "unknown_scenario"
	case errors.Is(err, ErrValidation):
		return "validation"
	default:
		return "other"
	}
}
