package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Ba4bes/moodpoodle/internal/adapter/metrics"
	"github.com/Ba4bes/moodpoodle/internal/command"
	"github.com/Ba4bes/moodpoodle/internal/domain"
	"github.com/Ba4bes/moodpoodle/internal/mood"
	"github.com/Ba4bes/moodpoodle/internal/ratelimit"
	"github.com/jonboulle/clockwork"
)

// saveAttempts bounds the reload-and-retry loop around optimistic save
// conflicts before the conflict is surfaced to the caller.
const saveAttempts = 3

const interactionBonusPerEvent = 3

// Service implements domain.AppService.
type Service struct {
	repo     domain.StateRepository
	activity domain.ActivitySource
	notifier domain.Notifier
	display  domain.DisplaySink
	limiter  ratelimit.Limiter
	phrases  command.PhraseSet
	clock    clockwork.Clock
	username string
	metrics  *metrics.AppMetrics

	// Serializes mutating use cases within one process. Cross-process
	// writers are handled by the repository's version check.
	mu sync.Mutex
}

// Options carries the optional collaborators and tunables for NewService.
type Options struct {
	Limiter ratelimit.Limiter
	Phrases command.PhraseSet
	Metrics *metrics.AppMetrics
}

func NewService(repo domain.StateRepository, activity domain.ActivitySource, notifier domain.Notifier, display domain.DisplaySink, clock clockwork.Clock, username string, opts Options) *Service {
	if opts.Limiter.Max == 0 {
		opts.Limiter = ratelimit.NewLimiter(0, 0)
	}
	if len(opts.Phrases.Pet) == 0 && len(opts.Phrases.Feed) == 0 {
		opts.Phrases = command.DefaultPhrases()
	}

	return &Service{
		repo:     repo,
		activity: activity,
		notifier: notifier,
		display:  display,
		limiter:  opts.Limiter,
		phrases:  opts.Phrases,
		clock:    clock,
		username: username,
		metrics:  opts.Metrics,
	}
}

// Refresh runs one scheduled cycle: fetch contribution activity, apply one
// decay step, and recompute the mood from the baseline unless a cooldown is
// holding the ecstatic override.
func (s *Service) Refresh(ctx context.Context) (*domain.MoodView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := s.clock.Now()
	defer func() { s.metrics.ObserveRefresh(s.clock.Now().Sub(started)) }()

	now := s.clock.Now()
	stats := s.fetchStats(ctx, now)

	doc, err := s.commit(ctx, func(doc *domain.Document) (bool, error) {
		doc.Contributions = stats
		doc.Decay.InteractionBonus = mood.DecayBonus(doc.Decay.InteractionBonus)
		doc.Decay.LastDecayApplied = now

		// Mood fields stay frozen while the ecstatic override is live;
		// only decay and the contribution cache move.
		if !doc.Cooldown.Active {
			baseline := mood.ContributionScore(doc.Contributions, now)
			score := mood.ApplyBonus(baseline, doc.Decay.InteractionBonus)
			doc.Mood = domain.MoodState{
				Score:          score,
				State:          mood.Classify(score),
				LastCalculated: now,
			}
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.SetMoodScore(doc.Mood.Score)
	view := s.viewOf(doc, now)
	s.updateDisplay(ctx, view)

	slog.Info("Mood refreshed",
		"score", doc.Mood.Score,
		"state", doc.Mood.State,
		"bonus", doc.Decay.InteractionBonus,
		"cooldown_active", doc.Cooldown.Active)
	return &view, nil
}

// ProcessInteraction handles one pet/feed event end to end: classify, rate
// limit, mutate, persist once, then notify and update the display.
func (s *Service) ProcessInteraction(ctx context.Context, in domain.Interaction) (*domain.InteractionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kind := command.Classify(in.Body, s.phrases)
	if kind == domain.CommandUnrecognized {
		return s.handleUnrecognized(ctx, in), nil
	}

	now := s.clock.Now()
	res := domain.InteractionResult{Kind: kind}

	doc, err := s.commit(ctx, func(doc *domain.Document) (bool, error) {
		decision := s.limiter.Check(doc.RateLimits[in.Username], now)
		if !decision.Allowed {
			res.Outcome = domain.OutcomeRateLimited
			res.Remaining = 0
			return false, nil
		}

		doc.Interactions.Record(domain.InteractionEntry{
			Username:    in.Username,
			Type:        kind.InteractionType(),
			Timestamp:   now,
			IssueNumber: in.IssueNumber,
		})
		doc.Decay.InteractionBonus += interactionBonusPerEvent
		mood.TriggerCooldown(doc, now)
		doc.RateLimits[in.Username] = s.limiter.Consume(decision, now)

		res.Outcome = domain.OutcomeAccepted
		res.Bonus = interactionBonusPerEvent
		res.Remaining = decision.Remaining - 1
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordInteraction(res.Outcome.String(), kind.String())

	if res.Outcome == domain.OutcomeRateLimited {
		s.notify(ctx, in.IssueNumber, rateLimitMessage(in.Username, s.limiter.Window))
		slog.Info("Interaction rate limited", "user", in.Username, "kind", kind.String())
		return &res, nil
	}

	s.metrics.SetMoodScore(doc.Mood.Score)
	s.notify(ctx, in.IssueNumber, thankYouMessage(in.Username, kind, res.Remaining))
	s.updateDisplay(ctx, s.viewOf(doc, now))

	slog.Info("Interaction accepted",
		"user", in.Username,
		"kind", kind.String(),
		"remaining", res.Remaining,
		"stacked_bonus", doc.Cooldown.StackedBonus)
	return &res, nil
}

// ResolveCooldown lands an active ecstatic override at its captured score.
// Resolving with no active cooldown is a no-op, not an error.
func (s *Service) ResolveCooldown(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.resolveCooldown(ctx, nil)
}

// ResolveDueCooldown resolves only when the cooldown has outlived the
// window. Used by the serve-mode resolver timer.
func (s *Service) ResolveDueCooldown(ctx context.Context, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.resolveCooldown(ctx, func(doc *domain.Document, now time.Time) bool {
		return mood.CooldownDue(doc, window, now)
	})
}

// resolveCooldown lands the override. Must run under mu. The due predicate,
// when non-nil, is evaluated against the same snapshot the resolution
// mutates: an interaction that commits between the timer firing and the
// resolve keeps the countdown it just restarted.
func (s *Service) resolveCooldown(ctx context.Context, due func(*domain.Document, time.Time) bool) (bool, error) {
	now := s.clock.Now()
	resolved := false

	doc, err := s.commit(ctx, func(doc *domain.Document) (bool, error) {
		resolved = false
		if due != nil && !due(doc, now) {
			return false, nil
		}
		resolved = mood.ResolveCooldown(doc, now)
		return resolved, nil
	})
	if err != nil {
		return false, err
	}
	if !resolved {
		slog.Debug("Cooldown resolution skipped, none active or not due")
		return false, nil
	}

	s.metrics.SetMoodScore(doc.Mood.Score)
	s.updateDisplay(ctx, s.viewOf(doc, now))

	slog.Info("Cooldown resolved", "score", doc.Mood.Score, "state", doc.Mood.State)
	return true, nil
}

// Render re-renders the display region from the committed state without
// touching it.
func (s *Service) Render(ctx context.Context) (*domain.MoodView, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	view := s.viewOf(doc, s.clock.Now())
	if err := s.display.UpdateMoodSection(ctx, view); err != nil {
		return nil, fmt.Errorf("update display: %w", err)
	}
	return &view, nil
}

// Status returns the committed document.
func (s *Service) Status(ctx context.Context) (*domain.Document, error) {
	return s.repo.Load(ctx)
}

// Seed persists the initial document. Fails when one already exists.
func (s *Service) Seed(ctx context.Context) error {
	return s.repo.Init(ctx, domain.NewDocument(s.clock.Now()))
}

// --- internals ---

// commit runs mutate against a freshly loaded document and saves it when
// mutate asks for it, retrying on optimistic-concurrency conflicts.
func (s *Service) commit(ctx context.Context, mutate func(*domain.Document) (bool, error)) (*domain.Document, error) {
	var lastErr error
	for attempt := 0; attempt < saveAttempts; attempt++ {
		doc, err := s.repo.Load(ctx)
		if err != nil {
			return nil, err
		}

		save, err := mutate(doc)
		if err != nil {
			return nil, err
		}
		if !save {
			return doc, nil
		}

		if err := s.repo.Save(ctx, doc); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				lastErr = err
				slog.Warn("Concurrent state write, retrying", "attempt", attempt+1)
				continue
			}
			return nil, err
		}
		return doc, nil
	}
	return nil, fmt.Errorf("gave up after %d attempts: %w", saveAttempts, lastErr)
}

// fetchStats pulls and aggregates contribution activity. A failing source
// degrades to an all-zero snapshot; it is never fatal.
func (s *Service) fetchStats(ctx context.Context, now time.Time) domain.ContributionStats {
	cal, err := s.activity.FetchActivity(ctx, s.username)
	if err != nil {
		slog.Warn("Activity fetch failed, assuming zero contributions", "user", s.username, "error", err)
		return mood.ZeroStats(now)
	}
	return mood.AggregateCalendar(cal, now)
}

func (s *Service) viewOf(doc *domain.Document, now time.Time) domain.MoodView {
	reason := mood.Reason(doc.Contributions, doc.Decay.InteractionBonus, now)
	if doc.Cooldown.Active {
		if n := len(doc.Interactions.Entries); n > 0 {
			reason = mood.CelebrationReason(doc.Interactions.Entries[n-1].Username)
		}
	}

	return domain.MoodView{
		Mood:       doc.Mood.State,
		Score:      doc.Mood.Score,
		Reason:     reason,
		TotalPets:  doc.Interactions.TotalPets,
		TotalFeeds: doc.Interactions.TotalFeeds,
		UpdatedAt:  doc.Mood.LastCalculated,
	}
}

// handleUnrecognized answers with help and closes freshly opened issues.
// It bypasses rate limiting and never touches state.
func (s *Service) handleUnrecognized(ctx context.Context, in domain.Interaction) *domain.InteractionResult {
	s.metrics.RecordInteraction(domain.OutcomeUnrecognized.String(), domain.CommandUnrecognized.String())
	s.notify(ctx, in.IssueNumber, helpMessage(in.Username, s.phrases))

	if in.FromNewIssue {
		if err := s.notifier.CloseIssue(ctx, in.IssueNumber); err != nil {
			slog.Warn("Failed to close interaction issue", "issue", in.IssueNumber, "error", err)
		}
	}

	slog.Info("Unrecognized command", "user", in.Username, "issue", in.IssueNumber)
	return &domain.InteractionResult{Outcome: domain.OutcomeUnrecognized, Kind: domain.CommandUnrecognized}
}

// notify posts a response. Failures are warnings: the state mutation, if
// any, is already committed and stays committed.
func (s *Service) notify(ctx context.Context, issueNumber int, body string) {
	if err := s.notifier.PostComment(ctx, issueNumber, body); err != nil {
		slog.Warn("Failed to post response", "issue", issueNumber, "error", err)
	}
}

func (s *Service) updateDisplay(ctx context.Context, view domain.MoodView) {
	if err := s.display.UpdateMoodSection(ctx, view); err != nil {
		slog.Warn("Failed to update display", "error", err)
	}
}
