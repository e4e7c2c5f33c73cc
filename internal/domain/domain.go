package domain

import (
	"context"
	"time"
)

// --- Shared value types ---

// ContributionDay is one day of the contribution calendar.
type ContributionDay struct {
	Date  time.Time
	Count int
}

// ContributionCalendar is the raw activity fetched for an account: a span of
// per-day contribution counts plus the number of owned repositories.
type ContributionCalendar struct {
	Days      []ContributionDay
	RepoCount int
}

// MoodView is what the display surface renders. The core emits data only;
// markup belongs to the sink.
type MoodView struct {
	Mood       Mood
	Score      int
	Reason     string
	TotalPets  int
	TotalFeeds int
	UpdatedAt  time.Time
}

// Interaction is one incoming pet/feed attempt.
type Interaction struct {
	Username    string
	Body        string
	IssueNumber int
	// FromNewIssue marks interactions that arrived as a freshly opened issue
	// rather than a comment on an existing thread.
	FromNewIssue bool
}

// --- Interfaces ---

// StateRepository owns the persisted document. Load fails with
// ErrStateMissing when no document exists; Save fails with ErrConflict when
// the on-disk version has moved since the document was loaded.
type StateRepository interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
	Init(ctx context.Context, doc *Document) error
}

// ActivitySource fetches the contribution calendar for an account.
type ActivitySource interface {
	FetchActivity(ctx context.Context, username string) (*ContributionCalendar, error)
}

// Notifier posts responses to the thread an interaction originated from.
type Notifier interface {
	PostComment(ctx context.Context, issueNumber int, body string) error
	CloseIssue(ctx context.Context, issueNumber int) error
}

// DisplaySink receives the rendered mood for display.
type DisplaySink interface {
	UpdateMoodSection(ctx context.Context, view MoodView) error
}

// AppService is the application layer contract; both the CLI and the webhook
// server route all operations through it.
type AppService interface {
	Refresh(ctx context.Context) (*MoodView, error)
	ProcessInteraction(ctx context.Context, in Interaction) (*InteractionResult, error)
	ResolveCooldown(ctx context.Context) (bool, error)
	Render(ctx context.Context) (*MoodView, error)
	Status(ctx context.Context) (*Document, error)
}
